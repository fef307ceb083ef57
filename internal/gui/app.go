package gui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/trails/internal/config"
	"github.com/san-kum/trails/internal/experiment"
	"github.com/san-kum/trails/internal/scene"
	"github.com/san-kum/trails/internal/sim"
)

const (
	screenWidth  = 1280
	screenHeight = 720
	maxTelemetry = 400
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColBg      = rl.NewColor(0, 0, 0, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

// App is a raylib window that doubles as the scene port: every Render call
// from the loop draws one full frame.
type App struct {
	scene.Store

	Title     string
	Font      rl.Font
	Loop      *sim.Loop
	Telemetry []float64

	log *log.Logger
}

func initWindow(title string, fps int) {
	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(screenWidth, screenHeight, title)
	rl.SetTargetFPS(int32(fps))
}

// loadFont loads Liberation Mono when installed and falls back to the
// raylib default font.
func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	if font.Texture.ID == 0 {
		return rl.GetFontDefault()
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// NewApp expects the window to be open.
func NewApp(title string, logger *log.Logger) *App {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &App{
		Title:     title,
		Font:      loadFont(),
		Telemetry: make([]float64, 0, maxTelemetry),
		log:       logger,
	}
}

// Run opens a window, wires an experiment to it and blocks until the
// window is closed.
func Run(cfg *config.Config, logger *log.Logger) error {
	fps := cfg.FPS
	if fps <= 0 {
		fps = config.DefaultFPS
	}
	initWindow("trails", fps)
	defer rl.CloseWindow()

	app := NewApp(cfg.Model, logger)
	exp, err := experiment.New(cfg, app, logger)
	if err != nil {
		return err
	}
	app.Loop = exp.Loop()
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		f, err := a.Loop.Step()
		if err != nil {
			a.log.Warn("frame failed", "err", err)
		}
		if len(a.Telemetry) == maxTelemetry {
			a.Telemetry = a.Telemetry[1:]
		}
		a.Telemetry = append(a.Telemetry, float64(f.Stats.Live))
	}
}

func (a *App) DrawHUD() {
	a.drawText("trails", 30, 30, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: %s", a.Title), 120, 34, 16, ColText)

	a.DrawTelemetry()

	if a.Loop != nil {
		sys := a.Loop.System()
		a.drawText(fmt.Sprintf("LIVE %d  SPAWNED %d  REAPED %d", sys.Len(), sys.Spawned(), sys.Reaped()), 900, 30, 16, ColAccent)
		a.drawText(fmt.Sprintf("FRAME %d", a.Loop.Clock()), 900, 52, 14, ColTextDim)
	}

	a.drawText("[ESC] QUIT", 1150, 680, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, 680, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

// DrawTelemetry plots the live particle count as a line strip.
func (a *App) DrawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}

	rectX, rectY := 30, 600
	width, height := 400, 60

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		minVal, maxVal = min(minVal, v), max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.Telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("N: %.0f", a.Telemetry[len(a.Telemetry)-1]), rectX+width+10, rectY+height-10, 14, ColText)
}
