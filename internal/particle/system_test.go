package particle

import (
	"math/rand/v2"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/trails/internal/scene"
)

var _ = Describe("System", func() {
	const dt = 0.002

	It("draws spawn parameters inside their ranges", func() {
		sys := NewSystem(DefaultOptions(), rand.New(rand.NewPCG(1, 2)), lorenzStepper(), nil, nil)

		for i := 0; i < 1000; i++ {
			p := sys.Spawn(int64(i))
			Expect(p.MaxAge()).To(And(BeNumerically(">=", 180), BeNumerically("<", 480)))
			Expect(p.Trail().Len()).To(And(BeNumerically(">=", 50), BeNumerically("<", 100)))
			Expect(p.ColorSeed()).To(And(BeNumerically(">=", 0), BeNumerically("<", 1)))
			pos := p.Position()
			for _, v := range []float64{pos.X, pos.Y, pos.Z} {
				Expect(v).To(And(BeNumerically(">=", -50), BeNumerically("<=", 50)))
			}
			Expect(p.SpawnTime()).To(Equal(int64(i)))
		}
		Expect(sys.Len()).To(Equal(1000))
		Expect(sys.Spawned()).To(Equal(1000))
	})

	It("maps extreme draws onto the range edges", func() {
		src := newScripted(0, 0, 0, 0, 0, 0, 0.999999, 0.999999, 0.999999, 0.999999, 0.999999, 0.999999)
		sys := NewSystem(DefaultOptions(), src, drift{}, nil, nil)

		lo := sys.Spawn(0)
		Expect(lo.MaxAge()).To(Equal(180))
		Expect(lo.Trail().Len()).To(Equal(50))
		Expect(lo.Position().X).To(Equal(-50.0))

		hi := sys.Spawn(0)
		Expect(hi.MaxAge()).To(Equal(479))
		Expect(hi.Trail().Len()).To(Equal(99))
	})

	Describe("spawn batch size", func() {
		It("never spawns more than one particle per frame with the default scale", func() {
			// probability draw, then a count draw just under 1
			src := newScripted(0.0, 0.999999)
			sys := NewSystem(DefaultOptions(), src, drift{}, nil, nil)

			st := sys.Tick(dt, 1)
			Expect(st.Spawned).To(Equal(1))

			for clock := int64(2); clock < 2000; clock++ {
				st = sys.Tick(dt, clock)
				Expect(st.Spawned).To(BeNumerically("<=", 1))
			}
		})

		It("spawns nothing when the count draw is below one half", func() {
			src := newScripted(0.0, 0.49)
			sys := NewSystem(DefaultOptions(), src, drift{}, nil, nil)

			Expect(sys.Tick(dt, 1).Spawned).To(Equal(0))
			Expect(sys.Len()).To(Equal(0))
		})

		It("skips the batch when the probability draw fails", func() {
			src := newScripted(0.2)
			sys := NewSystem(DefaultOptions(), src, drift{}, nil, nil)

			Expect(sys.Tick(dt, 1).Spawned).To(Equal(0))
		})
	})

	It("ticks particles spawned in the same frame", func() {
		opts := DefaultOptions()
		opts.SpawnProbability = 1
		opts.SpawnCount = 1
		sys := NewSystem(opts, rand.New(rand.NewPCG(3, 4)), drift{}, nil, nil)

		sys.Tick(dt, 1)
		sys.Each(func(p *Particle) {
			Expect(p.Age()).To(Equal(1))
		})
	})

	It("reaps strictly after ticking and keeps spawn order", func() {
		opts := DefaultOptions()
		opts.SpawnProbability = 0
		sys := NewSystem(opts, newScripted(), drift{}, nil, nil)

		ages := []int{3, 1, 2, 1, 4}
		for i, age := range ages {
			p := sys.Spawn(int64(i))
			p.maxAge = age
		}

		st := sys.Tick(dt, 10)
		Expect(st.Reaped).To(Equal(2))

		var ids []int
		sys.Each(func(p *Particle) {
			ids = append(ids, p.ID())
			Expect(p.Age()).To(Equal(1))
		})
		Expect(ids).To(Equal([]int{0, 2, 4}))

		sys.Tick(dt, 11)
		sys.Tick(dt, 12)
		Expect(sys.Len()).To(Equal(1))
		Expect(sys.Reaped()).To(Equal(4))
	})

	It("drops spawns beyond MaxParticles", func() {
		opts := DefaultOptions()
		opts.SpawnProbability = 1
		opts.SpawnCount = 3
		opts.MaxParticles = 5
		sys := NewSystem(opts, rand.New(rand.NewPCG(5, 6)), drift{}, nil, nil)

		for clock := int64(1); clock <= 10; clock++ {
			sys.Tick(dt, clock)
			Expect(sys.Len()).To(BeNumerically("<=", 5))
		}
		Expect(sys.Spawned()).To(Equal(5))
	})

	It("keeps the render port in step with the live set", func() {
		opts := DefaultOptions()
		opts.SpawnProbability = 1
		opts.SpawnCount = 1
		rec := scene.NewRecorder()
		sys := NewSystem(opts, rand.New(rand.NewPCG(9, 9)), lorenzStepper(), rec, nil)

		for clock := int64(1); clock <= 600; clock++ {
			sys.Tick(dt, clock)
			Expect(rec.Len()).To(Equal(sys.Len()))
		}
		Expect(rec.Allocated()).To(Equal(sys.Spawned()))
		Expect(rec.Removed()).To(Equal(sys.Reaped()))
		Expect(sys.Reaped()).To(BeNumerically(">", 0))
	})
})

func TestSystemEndToEnd(t *testing.T) {
	opts := DefaultOptions()
	opts.SpawnProbability = 1.0
	opts.SpawnCount = 1
	sys := NewSystem(opts, rand.New(rand.NewPCG(2024, 1)), lorenzStepper(), nil, nil)

	issued := 0
	for i := 0; i < 500; i++ {
		st := sys.Tick(0.002, 0)
		issued += st.Spawned

		if sys.Len() < 0 || sys.Len() > issued {
			t.Fatalf("tick %d: live=%d outside [0, %d]", i, sys.Len(), issued)
		}
		if sys.Len() != sys.Spawned()-sys.Reaped() {
			t.Fatalf("tick %d: live=%d, spawned-reaped=%d", i, sys.Len(), sys.Spawned()-sys.Reaped())
		}
	}

	if issued != 500 {
		t.Errorf("expected one spawn per tick, got %d", issued)
	}
	// the shortest life is 180 ticks, so at least 500-479 have been reaped
	// and nobody spawned in the last 179 ticks can be gone
	if sys.Reaped() < 500-479 || sys.Len() < 179 {
		t.Errorf("unexpected population: live=%d reaped=%d", sys.Len(), sys.Reaped())
	}
}

func TestIntRangeDraw(t *testing.T) {
	r := IntRange{50, 100}
	tests := []struct {
		u    float64
		want int
	}{
		{0, 50},
		{0.5, 75},
		{0.99999, 99},
	}
	for _, tt := range tests {
		if got := r.Draw(tt.u); got != tt.want {
			t.Errorf("Draw(%v) = %d, want %d", tt.u, got, tt.want)
		}
	}
}
