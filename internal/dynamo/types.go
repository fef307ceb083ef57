package dynamo

import (
	"fmt"
	"math"
)

// Point3 is a real-valued 3D coordinate.
type Point3 struct {
	X, Y, Z float64
}

func (p Point3) Add(o Point3) Point3    { return Point3{p.X + o.X, p.Y + o.Y, p.Z + o.Z} }
func (p Point3) Sub(o Point3) Point3    { return Point3{p.X - o.X, p.Y - o.Y, p.Z - o.Z} }
func (p Point3) Scale(f float64) Point3 { return Point3{p.X * f, p.Y * f, p.Z * f} }
func (p Point3) Norm() float64          { return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z) }
func (p Point3) MaxAbs() float64        { return math.Max(math.Abs(p.X), math.Max(math.Abs(p.Y), math.Abs(p.Z))) }
func (p Point3) String() string         { return fmt.Sprintf("(%.4f, %.4f, %.4f)", p.X, p.Y, p.Z) }
func (p Point3) AddScaled(d Point3, f float64) Point3 {
	return Point3{p.X + f*d.X, p.Y + f*d.Y, p.Z + f*d.Z}
}

// IsValid reports whether every component is finite.
func (p Point3) IsValid() bool {
	for _, v := range [3]float64{p.X, p.Y, p.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Field is an autonomous vector field.
type Field interface {
	Derive(p Point3) Point3
}

type Integrator interface {
	Step(f Field, p Point3, dt float64) Point3
}

// Configurable exposes named parameters of a field for runtime tuning.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}
