package viz

import (
	"math"

	"github.com/san-kum/trails/internal/scene"
)

// DefaultGain scales each dot's alpha before it is added to its cell.
// Braille cells collect up to eight dots, so full-strength dots saturate.
const DefaultGain = 0.35

// TermPort draws every live line onto a braille canvas.
type TermPort struct {
	scene.Store
	Canvas *Canvas
	Gain   float64

	camera   scene.Camera
	frames   int
	segments int
}

func NewTermPort(w, h int) *TermPort {
	return &TermPort{Canvas: NewCanvas(w, h), Gain: DefaultGain}
}

// Resize replaces the canvas; the next Render fills it.
func (t *TermPort) Resize(w, h int) {
	if w < 1 || h < 1 || (w == t.Canvas.Width && h == t.Canvas.Height) {
		return
	}
	t.Canvas = NewCanvas(w, h)
}

// Render clears the canvas and draws each segment of each line in the
// colour of its newer vertex. Fully transparent segments are skipped.
func (t *TermPort) Render(cam scene.Camera) error {
	t.camera = cam
	t.frames++
	t.segments = 0
	t.Canvas.Clear()

	pw, ph := t.Canvas.PixelSize()
	pr := NewProjector(cam, pw, ph)
	t.Each(func(l *scene.LineState) {
		for i := 0; i+1 < len(l.Positions); i++ {
			col := l.Shade(i)
			if col.A <= 0 {
				continue
			}
			x0, y0, x1, y1, ok := pr.Segment(l.Positions[i], l.Positions[i+1])
			if !ok {
				continue
			}
			col.A *= t.Gain
			t.Canvas.Line(int(math.Floor(x0)), int(math.Floor(y0)), int(math.Floor(x1)), int(math.Floor(y1)), col)
			t.segments++
		}
	})
	return nil
}

func (t *TermPort) Camera() scene.Camera { return t.camera }
func (t *TermPort) Frames() int          { return t.frames }

// Segments is the number of segments drawn by the last Render.
func (t *TermPort) Segments() int { return t.segments }
