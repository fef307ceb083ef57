package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/trails/internal/scene"
	"github.com/san-kum/trails/internal/viz"
)

// SVGPort keeps the live lines and the last camera so the current frame can
// be written as an SVG document at any point.
type SVGPort struct {
	scene.Store
	Width, Height int
	Background    string
	StrokeWidth   float64

	camera scene.Camera
	frames int
}

func NewSVGPort(w, h int) *SVGPort {
	return &SVGPort{Width: w, Height: h, Background: "#000000", StrokeWidth: 1.2}
}

func (s *SVGPort) Render(cam scene.Camera) error {
	s.camera = cam
	s.frames++
	return nil
}

func (s *SVGPort) Frames() int { return s.frames }

// WriteTo writes the last rendered frame. Each visible segment becomes a
// <line> coloured by its newer vertex; plus-lighter blending adds
// overlapping strokes.
func (s *SVGPort) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<g stroke-width="%.2f" stroke-linecap="round" style="mix-blend-mode:plus-lighter;isolation:isolate">
`, s.Width, s.Height, s.Width, s.Height, s.Background, s.StrokeWidth)

	pr := viz.NewProjector(s.camera, s.Width, s.Height)
	s.Each(func(l *scene.LineState) {
		for i := 0; i+1 < len(l.Positions); i++ {
			c := l.Shade(i)
			if c.A <= 0 {
				continue
			}
			x0, y0, x1, y1, ok := pr.Segment(l.Positions[i], l.Positions[i+1])
			if !ok {
				continue
			}
			fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-opacity="%.3f" style="mix-blend-mode:plus-lighter"/>
`, x0, y0, x1, y1, c.Hex(), c.A)
		}
	})

	sb.WriteString("</g>\n</svg>\n")
	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

// SVG returns the last rendered frame as a string.
func (s *SVGPort) SVG() string {
	var sb strings.Builder
	s.WriteTo(&sb)
	return sb.String()
}

// CanvasToSVG converts a braille canvas to SVG, one circle per lit dot in
// its cell's colour.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#000000"/>
`, width, height, width, height)

	dotRadius := math.Max(scale*0.4, 0.1)
	forEachDot(canvas, func(row, col, dx, dy int) {
		cx := float64(col*2+dx)*scale + scale/2
		cy := float64(row*4+dy)*scale + scale/2
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, dotRadius, dotColor(canvas, row, col))
	})

	sb.WriteString("</svg>\n")
	return sb.String()
}

// Braille dot-to-bit mapping
var pixelMap = [4][2]int{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

func forEachDot(canvas *viz.Canvas, fn func(row, col, dx, dy int)) {
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r <= 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						fn(row, col, dx, dy)
					}
				}
			}
		}
	}
}

// dotColor falls back to white for dots set without a colour.
func dotColor(canvas *viz.Canvas, row, col int) string {
	c := canvas.Color[row][col]
	if c.A <= 0 {
		return "#ffffff"
	}
	return c.Hex()
}
