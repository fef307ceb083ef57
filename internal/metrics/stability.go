package metrics

import (
	"github.com/san-kum/trails/internal/particle"
	"github.com/san-kum/trails/internal/sim"
)

// Stability is the fraction of frames in which every live particle stayed
// finite and inside threshold on every axis. Diverged counts particles seen
// outside it at least once.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
	diverged   map[int]struct{}
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
		diverged:  make(map[int]struct{}),
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(f sim.Frame) {
	s.samples++
	bad := false
	f.System.Each(func(p *particle.Particle) {
		pos := p.Position()
		if !pos.IsValid() || pos.MaxAbs() > s.threshold {
			bad = true
			s.diverged[p.ID()] = struct{}{}
		}
	})
	if bad {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Diverged() int { return len(s.diverged) }

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
	s.diverged = make(map[int]struct{})
}
