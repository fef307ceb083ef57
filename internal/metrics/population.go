package metrics

import (
	"github.com/san-kum/trails/internal/particle"
	"github.com/san-kum/trails/internal/sim"
)

// Population is the mean live particle count over observed frames.
type Population struct {
	sum     float64
	samples int
}

func NewPopulation() *Population { return &Population{} }

func (p *Population) Name() string { return "population_mean" }

func (p *Population) Observe(f sim.Frame) {
	p.sum += float64(f.Stats.Live)
	p.samples++
}

func (p *Population) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return p.sum / float64(p.samples)
}

func (p *Population) Reset() { *p = Population{} }

// Peak is the largest live count seen.
type Peak struct{ peak int }

func NewPeak() *Peak { return &Peak{} }

func (p *Peak) Name() string { return "population_peak" }

func (p *Peak) Observe(f sim.Frame) {
	if f.Stats.Live > p.peak {
		p.peak = f.Stats.Live
	}
}

func (p *Peak) Value() float64 { return float64(p.peak) }
func (p *Peak) Reset()         { p.peak = 0 }

// Turnover counts spawns and reaps since the last reset.
type Turnover struct {
	reaped bool
	count  int
}

func NewSpawned() *Turnover { return &Turnover{} }
func NewReaped() *Turnover  { return &Turnover{reaped: true} }

func (t *Turnover) Name() string {
	if t.reaped {
		return "reaped"
	}
	return "spawned"
}

func (t *Turnover) Observe(f sim.Frame) {
	if t.reaped {
		t.count += f.Stats.Reaped
	} else {
		t.count += f.Stats.Spawned
	}
}

func (t *Turnover) Value() float64 { return float64(t.count) }
func (t *Turnover) Reset()         { t.count = 0 }

// MeanLife is the average normalised age of the live set on the last frame.
type MeanLife struct{ last float64 }

func NewMeanLife() *MeanLife { return &MeanLife{} }

func (m *MeanLife) Name() string { return "mean_life" }

func (m *MeanLife) Observe(f sim.Frame) {
	n := f.System.Len()
	if n == 0 {
		m.last = 0
		return
	}
	sum := 0.0
	f.System.Each(func(p *particle.Particle) { sum += p.LifeRatio() })
	m.last = sum / float64(n)
}

func (m *MeanLife) Value() float64 { return m.last }
func (m *MeanLife) Reset()         { m.last = 0 }

// Default returns the metric set the CLI reports.
func Default(threshold float64) []sim.Metric {
	return []sim.Metric{
		NewPopulation(),
		NewPeak(),
		NewSpawned(),
		NewReaped(),
		NewMeanLife(),
		NewStability(threshold),
	}
}
