package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/trails/internal/dynamo"
)

// Classic Lorenz parameters.
const (
	LorenzSigma = 10.0
	LorenzRho   = 28.0
	LorenzBeta  = 8.0 / 3.0
)

type Lorenz struct{ sigma, rho, beta float64 }

func NewLorenz() *Lorenz { return &Lorenz{LorenzSigma, LorenzRho, LorenzBeta} }

// Derive calculates the Lorenz attractor derivatives.
func (l *Lorenz) Derive(p dynamo.Point3) dynamo.Point3 {
	return dynamo.Point3{
		X: l.sigma * (p.Y - p.X),
		Y: p.X*(l.rho-p.Z) - p.Y,
		Z: p.X*p.Y - l.beta*p.Z,
	}
}

func (l *Lorenz) GetParams() map[string]float64 {
	return map[string]float64{"sigma": l.sigma, "rho": l.rho, "beta": l.beta}
}

func (l *Lorenz) SetParam(n string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("lorenz %s=%v: %w", n, v, dynamo.ErrParameterBounds)
	}
	switch n {
	case "sigma":
		l.sigma = v
	case "rho":
		l.rho = v
	case "beta":
		l.beta = v
	default:
		return fmt.Errorf("lorenz has no parameter %q: %w", n, dynamo.ErrParameterBounds)
	}
	return nil
}
