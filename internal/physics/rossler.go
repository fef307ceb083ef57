package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/trails/internal/dynamo"
)

type Rossler struct{ a, b, c float64 }

func NewRossler() *Rossler { return &Rossler{0.2, 0.2, 5.7} }

// Derive calculates the Rossler attractor derivatives.
func (r *Rossler) Derive(p dynamo.Point3) dynamo.Point3 {
	return dynamo.Point3{X: -p.Y - p.Z, Y: p.X + r.a*p.Y, Z: r.b + p.Z*(p.X-r.c)}
}

func (r *Rossler) GetParams() map[string]float64 {
	return map[string]float64{"a": r.a, "b": r.b, "c": r.c}
}

func (r *Rossler) SetParam(n string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("rossler %s=%v: %w", n, v, dynamo.ErrParameterBounds)
	}
	switch n {
	case "a":
		r.a = v
	case "b":
		r.b = v
	case "c":
		r.c = v
	default:
		return fmt.Errorf("rossler has no parameter %q: %w", n, dynamo.ErrParameterBounds)
	}
	return nil
}
