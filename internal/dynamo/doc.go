// Package dynamo provides the core primitives shared by the trail simulation.
//
// The package defines the vector type and the small set of interfaces the
// rest of the module is written against:
//
//   - [Point3]: a position (or derivative) in 3D space
//   - [Field]: a time-invariant vector field dX/dt = f(X)
//   - [Integrator]: a single-step numerical integrator over a [Field]
//   - [Configurable]: runtime parameter access for fields
//
// # Example
//
//	field := physics.NewLorenz()
//	step := integrators.NewEuler()
//	p := dynamo.Point3{X: 1, Y: 1, Z: 1}
//	for i := 0; i < 100; i++ {
//	    p = step.Step(field, p, 0.002)
//	}
//
// # Numerical Stability
//
// Integrators never clamp or reject a diverging state. Callers pick a dt that
// keeps the chosen field bounded and may use [Point3.IsValid] to observe
// blow-up after the fact.
package dynamo
