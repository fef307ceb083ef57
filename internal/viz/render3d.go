package viz

import (
	"math"

	"github.com/san-kum/trails/internal/dynamo"
	"github.com/san-kum/trails/internal/scene"
)

func dot(a, b dynamo.Point3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }
func cross(a, b dynamo.Point3) dynamo.Point3 {
	return dynamo.Point3{X: a.Y*b.Z - a.Z*b.Y, Y: a.Z*b.X - a.X*b.Z, Z: a.X*b.Y - a.Y*b.X}
}
func normalize(v dynamo.Point3) dynamo.Point3 {
	if l := v.Norm(); l != 0 {
		return v.Scale(1 / l)
	}
	return dynamo.Point3{}
}

// Projector maps world points onto a w x h pixel plane through a
// perspective look-at camera. Screen y grows downwards.
type Projector struct {
	eye, right, up, fwd dynamo.Point3
	near, focal         float64
	w, h                float64
}

func NewProjector(cam scene.Camera, w, h int) Projector {
	fwd := normalize(cam.Target.Sub(cam.Position))
	right := normalize(cross(fwd, cam.Up))
	fov := cam.FOV
	if fov <= 0 {
		fov = scene.DefaultFOV
	}
	return Projector{
		eye:   cam.Position,
		right: right,
		up:    cross(right, fwd),
		fwd:   fwd,
		near:  cam.Near,
		focal: float64(h) / 2 / math.Tan(fov*math.Pi/360),
		w:     float64(w),
		h:     float64(h),
	}
}

// Project returns screen coordinates and view depth of p. ok is false when
// p lies behind the near plane.
func (pr Projector) Project(p dynamo.Point3) (x, y, depth float64, ok bool) {
	d := p.Sub(pr.eye)
	depth = dot(d, pr.fwd)
	if depth <= pr.near {
		return 0, 0, depth, false
	}
	s := pr.focal / depth
	x = pr.w/2 + dot(d, pr.right)*s
	y = pr.h/2 - dot(d, pr.up)*s
	return x, y, depth, true
}

// Segment projects a-b and reports whether any of it can land on screen.
// Segments with an end behind the camera are dropped.
func (pr Projector) Segment(a, b dynamo.Point3) (x0, y0, x1, y1 float64, ok bool) {
	x0, y0, _, ok0 := pr.Project(a)
	x1, y1, _, ok1 := pr.Project(b)
	if !ok0 || !ok1 {
		return 0, 0, 0, 0, false
	}
	if math.Max(x0, x1) < 0 || math.Min(x0, x1) >= pr.w || math.Max(y0, y1) < 0 || math.Min(y0, y1) >= pr.h {
		return 0, 0, 0, 0, false
	}
	return x0, y0, x1, y1, true
}
