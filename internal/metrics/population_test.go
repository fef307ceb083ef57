package metrics

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/san-kum/trails/internal/dynamo"
	"github.com/san-kum/trails/internal/particle"
	"github.com/san-kum/trails/internal/sim"
)

type blowup struct{}

func (blowup) Step(p dynamo.Point3, dt float64) dynamo.Point3 { return p.Scale(2) }

type still struct{}

func (still) Step(p dynamo.Point3, dt float64) dynamo.Point3 { return p }

func run(t *testing.T, step particle.Stepper, frames int, ms ...sim.Metric) *particle.System {
	t.Helper()
	opts := particle.DefaultOptions()
	opts.SpawnProbability = 1
	opts.SpawnCount = 1
	sys := particle.NewSystem(opts, rand.New(rand.NewPCG(4, 2)), step, nil, nil)
	cfg := sim.DefaultConfig()
	cfg.FPS = 0
	loop, err := sim.New(cfg, sys, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range ms {
		m.Reset()
		loop.AddMetric(m)
	}
	for i := 0; i < frames; i++ {
		if _, err := loop.Step(); err != nil {
			t.Fatal(err)
		}
	}
	return sys
}

func TestPopulationMetrics(t *testing.T) {
	pop, peak := NewPopulation(), NewPeak()
	spawned, reaped := NewSpawned(), NewReaped()
	life := NewMeanLife()

	sys := run(t, still{}, 10, pop, peak, spawned, reaped, life)

	// one spawn per frame, nobody dies within 10 frames
	if pop.Value() != 5.5 {
		t.Errorf("expected mean population 5.5, got %v", pop.Value())
	}
	if peak.Value() != 10 {
		t.Errorf("expected peak 10, got %v", peak.Value())
	}
	if spawned.Value() != 10 || reaped.Value() != 0 {
		t.Errorf("expected 10 spawned / 0 reaped, got %v / %v", spawned.Value(), reaped.Value())
	}
	if spawned.Name() != "spawned" || reaped.Name() != "reaped" {
		t.Error("turnover names swapped")
	}

	want := 0.0
	sys.Each(func(p *particle.Particle) { want += p.LifeRatio() })
	want /= float64(sys.Len())
	if math.Abs(life.Value()-want) > 1e-12 {
		t.Errorf("mean life %v, want %v", life.Value(), want)
	}
}

func TestStability(t *testing.T) {
	stable := NewStability(100)
	run(t, still{}, 20, stable)
	if stable.Value() != 1 || stable.Diverged() != 0 {
		t.Errorf("still particles should be stable, got %v (%d diverged)", stable.Value(), stable.Diverged())
	}

	unstable := NewStability(100)
	run(t, blowup{}, 20, unstable)
	if unstable.Value() >= 1 {
		t.Errorf("doubling particles should violate the envelope, got %v", unstable.Value())
	}
	if unstable.Diverged() == 0 {
		t.Error("expected diverged particles")
	}

	unstable.Reset()
	if unstable.Value() != 1 || unstable.Diverged() != 0 {
		t.Error("Reset should clear stability state")
	}
}

func TestDefault(t *testing.T) {
	names := map[string]bool{}
	for _, m := range Default(100) {
		names[m.Name()] = true
	}
	for _, n := range []string{"population_mean", "population_peak", "spawned", "reaped", "mean_life", "stability"} {
		if !names[n] {
			t.Errorf("missing metric %s", n)
		}
	}
}
