package particle

import (
	"github.com/san-kum/trails/internal/dynamo"
	"github.com/san-kum/trails/internal/scene"
	"github.com/san-kum/trails/internal/trail"
)

// Stepper advances a single point by dt.
type Stepper interface {
	Step(p dynamo.Point3, dt float64) dynamo.Point3
}

// Spec is everything drawn at spawn time.
type Spec struct {
	Position    dynamo.Point3
	MaxAge      int
	TrailLength int
	ColorSeed   float64
	SpawnTime   int64
}

type Particle struct {
	id        int
	pos       dynamo.Point3
	trail     *trail.Buffer
	age       int
	maxAge    int
	seed      float64
	spawnTime int64

	stepper Stepper
	line    scene.Line
	scratch []dynamo.Point3
}

// New builds a particle at spec.Position. When port is non-nil the particle
// allocates a line with TrailLength vertices and keeps it up to date.
func New(id int, spec Spec, stepper Stepper, port scene.Port) *Particle {
	p := &Particle{
		id:        id,
		pos:       spec.Position,
		trail:     trail.New(spec.TrailLength, spec.Position),
		maxAge:    spec.MaxAge,
		seed:      spec.ColorSeed,
		spawnTime: spec.SpawnTime,
		stepper:   stepper,
	}
	if port != nil {
		p.line = port.NewLine(p.trail.Len(), p.trail.Ratios())
		p.sync()
	}
	return p
}

// Tick ages the particle by one frame and integrates its position.
func (p *Particle) Tick(dt float64) {
	p.age++
	p.pos = p.stepper.Step(p.pos, dt)
	p.trail.Shift(p.pos)
	if p.line != nil {
		p.sync()
	}
}

func (p *Particle) sync() {
	p.scratch = p.trail.Positions(p.scratch)
	p.line.SetPositions(p.scratch)
	p.line.SetUniforms(p.Uniforms())
}

// Expired reports whether age has reached max age.
func (p *Particle) Expired() bool { return p.age >= p.maxAge }

// LifeRatio is age/maxAge clamped to [0,1].
func (p *Particle) LifeRatio() float64 {
	if p.maxAge <= 0 {
		return 1
	}
	r := float64(p.age) / float64(p.maxAge)
	if r > 1 {
		return 1
	}
	return r
}

func (p *Particle) Uniforms() scene.Uniforms {
	return scene.Uniforms{Life: p.LifeRatio(), Seed: p.seed, Time: float64(p.spawnTime)}
}

// release drops the particle's render line.
func (p *Particle) release() {
	if p.line != nil {
		p.line.Remove()
		p.line = nil
	}
}

func (p *Particle) ID() int                 { return p.id }
func (p *Particle) Position() dynamo.Point3 { return p.pos }
func (p *Particle) Trail() *trail.Buffer    { return p.trail }
func (p *Particle) Age() int                { return p.age }
func (p *Particle) MaxAge() int             { return p.maxAge }
func (p *Particle) ColorSeed() float64      { return p.seed }
func (p *Particle) SpawnTime() int64        { return p.spawnTime }
