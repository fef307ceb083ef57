package particle

import (
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/san-kum/trails/internal/dynamo"
	"github.com/san-kum/trails/internal/scene"
)

// Source is a uniform random source on [0,1).
type Source interface {
	Float64() float64
}

// IntRange is the half-open integer interval [Min, Max).
type IntRange struct {
	Min, Max int
}

// Draw maps u in [0,1) to Min + floor(u*(Max-Min)).
func (r IntRange) Draw(u float64) int {
	return r.Min + int(math.Floor(u*float64(r.Max-r.Min)))
}

// Options control spawning.
type Options struct {
	// SpawnProbability is the chance per frame that a spawn batch is drawn.
	SpawnProbability float64
	// CountScale sizes a batch as floor(u*CountScale). With the default of 2
	// a batch is 0 or 1 particles.
	CountScale float64
	// SpawnCount, when > 0, replaces the batch-size draw.
	SpawnCount int
	// Extent is the side of the cube, centred on the origin, spawn
	// positions are drawn from.
	Extent      float64
	MaxAge      IntRange
	TrailLength IntRange
	// MaxParticles caps the live population; 0 means unbounded.
	MaxParticles int
}

func DefaultOptions() Options {
	return Options{
		SpawnProbability: 0.20,
		CountScale:       2,
		Extent:           100,
		MaxAge:           IntRange{180, 480},
		TrailLength:      IntRange{50, 100},
	}
}

// FrameStats summarises one Tick.
type FrameStats struct {
	Spawned int
	Reaped  int
	Live    int
}

type System struct {
	opts    Options
	rng     Source
	stepper Stepper
	port    scene.Port
	log     *log.Logger

	particles []*Particle
	nextID    int
	spawned   int
	reaped    int
}

// NewSystem returns an empty system. port and logger may be nil.
func NewSystem(opts Options, rng Source, stepper Stepper, port scene.Port, logger *log.Logger) *System {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &System{
		opts:    opts,
		rng:     rng,
		stepper: stepper,
		port:    port,
		log:     logger,
	}
}

// Tick runs one frame: spawn, advance every particle, reap expired ones.
func (s *System) Tick(dt float64, clock int64) FrameStats {
	var st FrameStats

	if s.rng.Float64() < s.opts.SpawnProbability {
		n := s.opts.SpawnCount
		if n <= 0 {
			n = int(math.Floor(s.rng.Float64() * s.opts.CountScale))
		}
		for i := 0; i < n; i++ {
			if s.opts.MaxParticles > 0 && len(s.particles) >= s.opts.MaxParticles {
				s.log.Debug("spawn dropped", "live", len(s.particles), "cap", s.opts.MaxParticles)
				break
			}
			s.spawn(clock)
			st.Spawned++
		}
	}

	for _, p := range s.particles {
		p.Tick(dt)
	}

	st.Reaped = s.reap()
	st.Live = len(s.particles)
	return st
}

// Spawn draws one particle's parameters and adds it to the live set.
func (s *System) Spawn(clock int64) *Particle {
	return s.spawn(clock)
}

func (s *System) spawn(clock int64) *Particle {
	spec := s.drawSpec(clock)
	p := New(s.nextID, spec, s.stepper, s.port)
	s.nextID++
	s.spawned++
	s.particles = append(s.particles, p)
	s.log.Debug("spawn", "id", p.id, "pos", spec.Position, "max_age", spec.MaxAge, "length", spec.TrailLength)
	return p
}

// drawSpec consumes six draws: x, y, z, max age, trail length, colour seed.
func (s *System) drawSpec(clock int64) Spec {
	e := s.opts.Extent
	return Spec{
		Position: dynamo.Point3{
			X: (s.rng.Float64() - 0.5) * e,
			Y: (s.rng.Float64() - 0.5) * e,
			Z: (s.rng.Float64() - 0.5) * e,
		},
		MaxAge:      s.opts.MaxAge.Draw(s.rng.Float64()),
		TrailLength: s.opts.TrailLength.Draw(s.rng.Float64()),
		ColorSeed:   s.rng.Float64(),
		SpawnTime:   clock,
	}
}

// reap compacts the live slice in place, keeping spawn order.
func (s *System) reap() int {
	live := s.particles[:0]
	n := 0
	for _, p := range s.particles {
		if p.Expired() {
			p.release()
			n++
			s.log.Debug("reap", "id", p.id, "age", p.age)
			continue
		}
		live = append(live, p)
	}
	for i := len(live); i < len(s.particles); i++ {
		s.particles[i] = nil
	}
	s.particles = live
	s.reaped += n
	return n
}

// Each visits live particles in spawn order.
func (s *System) Each(fn func(*Particle)) {
	for _, p := range s.particles {
		fn(p)
	}
}

func (s *System) Len() int         { return len(s.particles) }
func (s *System) Spawned() int     { return s.spawned }
func (s *System) Reaped() int      { return s.reaped }
func (s *System) Options() Options { return s.opts }
