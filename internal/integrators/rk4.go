package integrators

import "github.com/san-kum/trails/internal/dynamo"

type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(f dynamo.Field, p dynamo.Point3, dt float64) dynamo.Point3 {
	k1 := f.Derive(p)
	k2 := f.Derive(p.AddScaled(k1, dt*0.5))
	k3 := f.Derive(p.AddScaled(k2, dt*0.5))
	k4 := f.Derive(p.AddScaled(k3, dt))

	sum := k1.Add(k2.Scale(2)).Add(k3.Scale(2)).Add(k4)
	return p.AddScaled(sum, dt/6.0)
}
