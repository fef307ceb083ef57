// Package shading maps a trail vertex to its colour.
//
// Hue rotates along the trail and drifts with a per-particle seed and the
// particle's spawn time; opacity follows a fade envelope driven by the
// particle's life and the vertex position along the trail, so heads and tails
// fade in and out independently. Colours combine additively.
package shading

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/tanema/gween/ease"
)

// Hue mixing weights.
const (
	RatioWeight = 0.4
	SeedWeight  = 0.15
	TimeWeight  = 0.002
)

// Envelope shape.
const (
	LifeGain  = 1.5
	RatioGain = 0.5
	FadeIn    = 0.2
	FadeOut   = 0.8
)

// RGBA is a linear colour with components in [0,1].
type RGBA struct {
	R, G, B, A float64
}

// Hue returns fract(trailRatio*0.4 + seed*0.15 + time*0.002).
func Hue(trailRatio, seed, time float64) float64 {
	h := trailRatio*RatioWeight + seed*SeedWeight + time*TimeWeight
	return h - math.Floor(h)
}

// Envelope is the fade-in/fade-out curve over t in [0,1].
func Envelope(t float64) float64 {
	switch {
	case t < 0 || t > 1:
		return 0
	case t < FadeIn:
		return float64(ease.InOutSine(float32(t), 0, 1, FadeIn))
	case t > FadeOut:
		return float64(ease.InOutSine(float32(t-FadeOut), 1, -1, 1-FadeOut))
	default:
		return 1
	}
}

// Opacity evaluates the envelope at life*1.5 - trailRatio*0.5.
func Opacity(life, trailRatio float64) float64 {
	return Envelope(life*LifeGain - trailRatio*RatioGain)
}

// Shade returns the colour of a trail vertex. life is the particle's
// normalised age, time the global clock value the hue drifts with.
func Shade(life, trailRatio, seed, time float64) RGBA {
	c := colorful.Hsv(Hue(trailRatio, seed, time)*360, 1, 1).Clamped()
	return RGBA{R: c.R, G: c.G, B: c.B, A: Opacity(life, trailRatio)}
}

// Premultiplied returns the colour scaled by its alpha.
func (c RGBA) Premultiplied() RGBA {
	return RGBA{c.R * c.A, c.G * c.A, c.B * c.A, c.A}
}

// Blend adds src onto dst the way an additive framebuffer does: src is
// weighted by its alpha and the sum is clamped to 1.
func Blend(dst, src RGBA) RGBA {
	return RGBA{
		R: clamp01(dst.R + src.R*src.A),
		G: clamp01(dst.G + src.G*src.A),
		B: clamp01(dst.B + src.B*src.A),
		A: clamp01(dst.A + src.A),
	}
}

// RGBA8 converts to 8-bit channels.
func (c RGBA) RGBA8() (r, g, b, a uint8) {
	return to8(c.R), to8(c.G), to8(c.B), to8(c.A)
}

// Hex formats the colour channels as #rrggbb, ignoring alpha.
func (c RGBA) Hex() string {
	r, g, b, _ := c.RGBA8()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// Luma is the Rec. 601 brightness of the colour.
func (c RGBA) Luma() float64 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

func to8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
