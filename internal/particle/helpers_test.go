package particle

import (
	"math/rand/v2"

	"github.com/san-kum/trails/internal/dynamo"
	"github.com/san-kum/trails/internal/integrators"
	"github.com/san-kum/trails/internal/physics"
)

// scripted replays vals in order, then falls back to a seeded PCG.
type scripted struct {
	vals []float64
	next int
	rest *rand.Rand
}

func newScripted(vals ...float64) *scripted {
	return &scripted{vals: vals, rest: rand.New(rand.NewPCG(7, 11))}
}

func (s *scripted) Float64() float64 {
	if s.next < len(s.vals) {
		v := s.vals[s.next]
		s.next++
		return v
	}
	return s.rest.Float64()
}

func lorenzStepper() Stepper {
	return integrators.Stepper{Field: physics.NewLorenz(), Integrator: integrators.NewEuler()}
}

// drift moves every point by +1 on x, which makes trail checks readable.
type drift struct{}

func (drift) Step(p dynamo.Point3, dt float64) dynamo.Point3 {
	return dynamo.Point3{X: p.X + 1, Y: p.Y, Z: p.Z}
}
