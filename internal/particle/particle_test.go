package particle

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/trails/internal/dynamo"
	"github.com/san-kum/trails/internal/scene"
)

var _ = Describe("Particle", func() {
	var (
		spec Spec
		p    *Particle
	)

	BeforeEach(func() {
		spec = Spec{
			Position:    dynamo.Point3{X: 1, Y: 1, Z: 1},
			MaxAge:      180,
			TrailLength: 50,
			ColorSeed:   0.25,
			SpawnTime:   42,
		}
		p = New(0, spec, lorenzStepper(), nil)
	})

	It("starts with a degenerate trail at the spawn position", func() {
		Expect(p.Age()).To(Equal(0))
		Expect(p.Trail().Len()).To(Equal(50))
		for i := 0; i < p.Trail().Len(); i++ {
			Expect(p.Trail().At(i)).To(Equal(spec.Position))
		}
	})

	It("shifts the trail and integrates on every tick", func() {
		step := lorenzStepper()
		for n := 0; n < 120; n++ {
			before := p.Trail().Positions(nil)
			want := step.Step(p.Position(), 0.002)

			p.Tick(0.002)

			Expect(p.Position()).To(Equal(want))
			Expect(p.Trail().At(0)).To(Equal(want))
			for i := 1; i < p.Trail().Len(); i++ {
				Expect(p.Trail().At(i)).To(Equal(before[i-1]))
			}
		}
	})

	It("expires exactly after MaxAge ticks", func() {
		for i := 0; i < spec.MaxAge-1; i++ {
			p.Tick(0.002)
			Expect(p.Expired()).To(BeFalse(), "expired early at tick %d", i+1)
		}
		p.Tick(0.002)
		Expect(p.Expired()).To(BeTrue())
		Expect(p.Age()).To(Equal(spec.MaxAge))
		Expect(p.LifeRatio()).To(Equal(1.0))
	})

	It("reports life ratio as age over max age", func() {
		for i := 0; i < 90; i++ {
			p.Tick(0.002)
		}
		Expect(p.LifeRatio()).To(BeNumerically("~", 0.5, 1e-12))
	})

	It("keeps the seed and spawn time fixed", func() {
		for i := 0; i < 10; i++ {
			p.Tick(0.002)
			u := p.Uniforms()
			Expect(u.Seed).To(Equal(0.25))
			Expect(u.Time).To(Equal(42.0))
		}
	})

	Context("with a render port", func() {
		var rec *scene.Recorder

		BeforeEach(func() {
			rec = scene.NewRecorder()
			p = New(3, spec, drift{}, rec)
		})

		It("allocates one line with TrailLength vertices", func() {
			Expect(rec.Len()).To(Equal(1))
			rec.Each(func(l *scene.LineState) {
				Expect(l.Positions).To(HaveLen(spec.TrailLength))
				Expect(l.Ratios[0]).To(Equal(0.0))
				Expect(l.Ratios[spec.TrailLength-1]).To(Equal(1.0))
			})
		})

		It("pushes positions and uniforms each tick", func() {
			p.Tick(0.002)
			p.Tick(0.002)

			rec.Each(func(l *scene.LineState) {
				Expect(l.Positions[0].X).To(Equal(3.0))
				Expect(l.Positions[1].X).To(Equal(2.0))
				Expect(l.Positions[2].X).To(Equal(1.0))
				Expect(l.Uniforms.Life).To(BeNumerically("~", 2.0/180, 1e-12))
			})
		})

		It("removes the line on release", func() {
			p.release()
			p.release()
			Expect(rec.Len()).To(Equal(0))
			Expect(rec.Removed()).To(Equal(1))
		})
	})
})
