package integrators

import "github.com/san-kum/trails/internal/dynamo"

// Euler is the explicit first-order step x + dt*f(x).
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(f dynamo.Field, p dynamo.Point3, dt float64) dynamo.Point3 {
	return p.AddScaled(f.Derive(p), dt)
}
