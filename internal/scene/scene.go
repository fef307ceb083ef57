package scene

import (
	"math"

	"github.com/san-kum/trails/internal/dynamo"
	"github.com/san-kum/trails/internal/shading"
)

// Uniforms are the per-line scalars fed to the shading model.
type Uniforms struct {
	Life float64 // normalised age in [0,1]
	Seed float64 // per-particle random in [0,1)
	Time float64 // clock value the particle was spawned at
}

type Line interface {
	SetPositions(pts []dynamo.Point3)
	SetUniforms(u Uniforms)
	Remove()
}

type Port interface {
	NewLine(vertices int, ratios []float64) Line
	Render(cam Camera) error
}

// Camera is a perspective look-at pose.
type Camera struct {
	Position dynamo.Point3
	Target   dynamo.Point3
	Up       dynamo.Point3
	FOV      float64 // vertical field of view in degrees
	Near     float64
}

const (
	DefaultFOV  = 75.0
	DefaultNear = 0.1
)

// Orbit places the camera on a horizontal circle around the origin at
// angle clock*speed, looking at the origin.
func Orbit(clock int64, radius, speed float64) Camera {
	a := float64(clock) * speed
	return Camera{
		Position: dynamo.Point3{X: radius * math.Cos(a), Z: radius * math.Sin(a)},
		Up:       dynamo.Point3{Y: 1},
		FOV:      DefaultFOV,
		Near:     DefaultNear,
	}
}

// LineState is the renderer-side copy of one line.
type LineState struct {
	ID        int
	Positions []dynamo.Point3
	Ratios    []float64
	Uniforms  Uniforms

	store   *Store
	removed bool
}

// SetPositions copies pts into the line's fixed vertex buffer.
func (l *LineState) SetPositions(pts []dynamo.Point3) {
	copy(l.Positions, pts)
}

func (l *LineState) SetUniforms(u Uniforms) { l.Uniforms = u }

func (l *LineState) Remove() {
	if l.removed {
		return
	}
	l.removed = true
	l.store.remove(l)
}

// Shade returns the colour of vertex i.
func (l *LineState) Shade(i int) shading.RGBA {
	return shading.Shade(l.Uniforms.Life, l.Ratios[i], l.Uniforms.Seed, l.Uniforms.Time)
}

// Store keeps live lines in allocation order.
type Store struct {
	lines     []*LineState
	nextID    int
	allocated int
	removed   int
}

func (s *Store) NewLine(vertices int, ratios []float64) Line {
	r := make([]float64, vertices)
	copy(r, ratios)
	l := &LineState{
		ID:        s.nextID,
		Positions: make([]dynamo.Point3, vertices),
		Ratios:    r,
		store:     s,
	}
	s.nextID++
	s.allocated++
	s.lines = append(s.lines, l)
	return l
}

func (s *Store) remove(l *LineState) {
	for i, x := range s.lines {
		if x == l {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.removed++
			return
		}
	}
}

func (s *Store) Each(fn func(*LineState)) {
	for _, l := range s.lines {
		fn(l)
	}
}

func (s *Store) Len() int       { return len(s.lines) }
func (s *Store) Allocated() int { return s.allocated }
func (s *Store) Removed() int   { return s.removed }

// Recorder is a headless port that counts frames.
type Recorder struct {
	Store
	Frames int
	Last   Camera
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Render(cam Camera) error {
	r.Frames++
	r.Last = cam
	return nil
}
