package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/trails/internal/dynamo"
	"github.com/san-kum/trails/internal/scene"
	"github.com/san-kum/trails/internal/shading"
)

func vec3(p dynamo.Point3) rl.Vector3 {
	return rl.NewVector3(float32(p.X), float32(p.Y), float32(p.Z))
}

func color(c shading.RGBA) rl.Color {
	r, g, b, a := c.RGBA8()
	return rl.NewColor(r, g, b, a)
}

// Camera3D converts a scene camera to raylib's perspective camera.
func Camera3D(cam scene.Camera) rl.Camera3D {
	return rl.NewCamera3D(vec3(cam.Position), vec3(cam.Target), vec3(cam.Up), float32(cam.FOV), rl.CameraPerspective)
}

// Render draws one frame: all live lines with additive blending, then the
// HUD.
func (a *App) Render(cam scene.Camera) error {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	rl.BeginMode3D(Camera3D(cam))
	rl.BeginBlendMode(rl.BlendAdditive)
	a.Each(a.drawLine)
	rl.EndBlendMode()
	rl.EndMode3D()

	a.DrawHUD()
	rl.EndDrawing()
	return nil
}

func (a *App) drawLine(l *scene.LineState) {
	for i := 0; i+1 < len(l.Positions); i++ {
		c := l.Shade(i)
		if c.A <= 0 {
			continue
		}
		rl.DrawLine3D(vec3(l.Positions[i]), vec3(l.Positions[i+1]), color(c))
	}
}
