package experiment

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/san-kum/trails/internal/config"
	"github.com/san-kum/trails/internal/integrators"
	"github.com/san-kum/trails/internal/metrics"
	"github.com/san-kum/trails/internal/particle"
	"github.com/san-kum/trails/internal/physics"
	"github.com/san-kum/trails/internal/scene"
	"github.com/san-kum/trails/internal/sim"
)

// seedStream is the PCG stream selector; only the seed varies between runs.
const seedStream = 0x9e3779b97f4a7c15

type Experiment struct {
	cfg  *config.Config
	loop *sim.Loop
	log  *log.Logger
}

// New wires field, integrator, particle system and loop from cfg. The
// port receives one line per particle and a Render call per frame.
func New(cfg *config.Config, port scene.Port, logger *log.Logger) (*Experiment, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	field, err := physics.New(cfg.Model, cfg.Params)
	if err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}
	integ, err := integrators.New(cfg.Integrator)
	if err != nil {
		return nil, fmt.Errorf("integrator: %w", err)
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, seedStream))
	stepper := integrators.Stepper{Field: field, Integrator: integ}
	sys := particle.NewSystem(cfg.SpawnOptions(), rng, stepper, port, logger.WithPrefix("particles"))

	loop, err := sim.New(cfg.LoopConfig(), sys, port, logger.WithPrefix("loop"))
	if err != nil {
		return nil, err
	}
	for _, m := range metrics.Default(cfg.View.Threshold) {
		loop.AddMetric(m)
	}

	logger.Info("experiment ready",
		"model", cfg.Model,
		"integrator", cfg.Integrator,
		"dt", cfg.Dt,
		"seed", cfg.Seed)

	return &Experiment{cfg: cfg, loop: loop, log: logger}, nil
}

// Run steps cfg.Frames frames, or until ctx is done when Frames is 0.
func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	return e.loop.Run(ctx, e.cfg.Frames)
}

func (e *Experiment) Loop() *sim.Loop        { return e.loop }
func (e *Experiment) Config() *config.Config { return e.cfg }
