package integrators

import (
	"fmt"

	"github.com/san-kum/trails/internal/dynamo"
)

// New returns an integrator by name.
func New(name string) (dynamo.Integrator, error) {
	switch name {
	case "euler", "":
		return NewEuler(), nil
	case "rk4":
		return NewRK4(), nil
	default:
		return nil, fmt.Errorf("%q: %w", name, dynamo.ErrUnknownIntegrator)
	}
}

// Stepper binds a field and an integrator into the single-point step
// particles use.
type Stepper struct {
	Field      dynamo.Field
	Integrator dynamo.Integrator
}

func (s Stepper) Step(p dynamo.Point3, dt float64) dynamo.Point3 {
	return s.Integrator.Step(s.Field, p, dt)
}
