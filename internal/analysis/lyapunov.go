package analysis

import (
	"math"

	"github.com/san-kum/trails/internal/dynamo"
)

// Stepper advances a single point by dt.
type Stepper interface {
	Step(p dynamo.Point3, dt float64) dynamo.Point3
}

// LyapunovExponent estimates the largest Lyapunov exponent using the
// trajectory separation method. A positive value indicates chaos.
//
// Algorithm:
// 1. Settle x0 onto the attractor for warmup steps
// 2. Step it and a copy offset by d0 side by side
// 3. After each step accumulate ln(|δ|/d0) and pull the copy back to d0
// 4. λ ≈ Σ ln(|δ|/d0) / (steps*dt)
func LyapunovExponent(s Stepper, x0 dynamo.Point3, dt float64, warmup, steps int, d0 float64) float64 {
	if steps <= 0 || dt <= 0 || d0 <= 0 {
		return 0
	}

	x := x0
	for i := 0; i < warmup; i++ {
		x = s.Step(x, dt)
	}
	xp := x.Add(dynamo.Point3{X: d0})

	sumLog := 0.0
	count := 0
	for i := 0; i < steps; i++ {
		x = s.Step(x, dt)
		xp = s.Step(xp, dt)

		delta := xp.Sub(x)
		sep := delta.Norm()
		if sep == 0 || !x.IsValid() || !xp.IsValid() {
			break
		}
		sumLog += math.Log(sep / d0)
		count++
		xp = x.AddScaled(delta, d0/sep)
	}

	if count == 0 {
		return 0
	}
	return sumLog / (float64(count) * dt)
}
