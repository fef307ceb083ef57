package export

import (
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"io"

	"github.com/san-kum/trails/internal/scene"
	"github.com/san-kum/trails/internal/viz"
)

const (
	charW = 8
	charH = 16
)

// GIFRecorder wraps a TermPort and captures its canvas after every frame.
type GIFRecorder struct {
	*viz.TermPort
	Delay  int // hundredths of a second between frames
	Every  int // capture every Nth frame
	frames []*image.Paletted
	seen   int
}

func NewGIFRecorder(port *viz.TermPort, delay int) *GIFRecorder {
	return &GIFRecorder{TermPort: port, Delay: delay, Every: 1}
}

func (g *GIFRecorder) Render(cam scene.Camera) error {
	if err := g.TermPort.Render(cam); err != nil {
		return err
	}
	g.seen++
	if g.Every > 1 && (g.seen-1)%g.Every != 0 {
		return nil
	}
	g.frames = append(g.frames, CaptureFrame(g.Canvas))
	return nil
}

// Captured is the number of frames held for encoding.
func (g *GIFRecorder) Captured() int { return len(g.frames) }

// Save encodes every captured frame as a looping animation.
func (g *GIFRecorder) Save(w io.Writer) error {
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range g.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, g.Delay)
	}
	return gif.EncodeAll(w, &anim)
}

// CaptureFrame rasterises the canvas, drawing each braille dot as a
// charW/2 x charH/4 block in its cell's colour.
func CaptureFrame(canvas *viz.Canvas) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, canvas.Width*charW, canvas.Height*charH), palette.Plan9)
	dotW, dotH := charW/2, charH/4
	forEachDot(canvas, func(row, col, dx, dy int) {
		c := canvas.Color[row][col]
		var rgb color.Color = color.White
		if c.A > 0 {
			r, g, b, _ := c.RGBA8()
			rgb = color.RGBA{R: r, G: g, B: b, A: 255}
		}
		idx := uint8(img.Palette.Index(rgb))
		baseX, baseY := col*charW+dx*dotW, row*charH+dy*dotH
		for py := 0; py < dotH; py++ {
			for px := 0; px < dotW; px++ {
				img.SetColorIndex(baseX+px, baseY+py, idx)
			}
		}
	})
	return img
}
