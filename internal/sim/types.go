package sim

import (
	"fmt"

	"github.com/san-kum/trails/internal/dynamo"
	"github.com/san-kum/trails/internal/particle"
)

// Frame is what observers and metrics see after each step.
type Frame struct {
	Clock  int64
	Stats  particle.FrameStats
	System *particle.System
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(f Frame)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(f Frame)

func (fn ObserverFunc) OnFrame(f Frame) { fn(f) }

type Config struct {
	Dt          float64
	OrbitRadius float64
	OrbitSpeed  float64
	// FPS paces Run; 0 runs frames back to back.
	FPS int
}

func DefaultConfig() Config {
	return Config{
		Dt:          0.002,
		OrbitRadius: 100,
		OrbitSpeed:  0.01,
		FPS:         60,
	}
}

func (c Config) Validate() error {
	if c.Dt <= 0 {
		return &dynamo.FieldError{Field: "dt", Value: c.Dt, Wrapped: dynamo.ErrInvalidConfig}
	}
	if c.FPS < 0 {
		return &dynamo.FieldError{Field: "fps", Value: c.FPS, Wrapped: dynamo.ErrInvalidConfig}
	}
	if c.OrbitRadius <= 0 {
		return &dynamo.FieldError{Field: "orbit_radius", Value: c.OrbitRadius, Wrapped: dynamo.ErrInvalidConfig}
	}
	return nil
}

type Result struct {
	Frames     int
	Population []float64
	Metrics    map[string]float64
	Errors     []error
}

type RenderError struct {
	Clock   int64
	Wrapped error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render frame %d: %v", e.Clock, e.Wrapped)
}

func (e *RenderError) Unwrap() error { return e.Wrapped }
