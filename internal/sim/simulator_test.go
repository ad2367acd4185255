package sim

import (
	"errors"
	"io"
	"math"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ballsim/internal/config"
	"github.com/san-kum/ballsim/internal/control"
	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/particles"
)

func quiet() Option {
	return WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Capacity = 500
	cfg.Seed = 1
	return cfg
}

func press(s *Simulator, kinds ...control.Kind) {
	for _, k := range kinds {
		s.Submit(control.Pressed(k))
	}
}

func release(s *Simulator, kinds ...control.Kind) {
	for _, k := range kinds {
		s.Submit(control.Released(k))
	}
}

var _ = Describe("Simulator", func() {
	var (
		cfg   *config.Config
		clock *ManualClock
		s     *Simulator
	)

	BeforeEach(func() {
		cfg = testConfig()
		clock = NewManualClock(1000)
	})

	JustBeforeEach(func() {
		var err error
		s, err = New(cfg, clock, quiet())
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("construction", func() {
		Context("with an invalid config", func() {
			It("returns a parameter bounds error", func() {
				bad := testConfig()
				bad.SubSteps = 0
				_, err := New(bad, clock)
				Expect(err).To(MatchError(dynamo.ErrParameterBounds))
			})
		})

		It("starts empty and idle", func() {
			Expect(s.Count()).To(BeZero())
			Expect(s.Frames()).To(BeZero())
			Expect(s.Phase()).To(Equal(Idle))
			Expect(s.Settings().CollisionsEnabled).To(BeTrue())
		})
	})

	Describe("frame gate", func() {
		It("admits a frame only after a full period", func() {
			Expect(s.Update()).To(BeFalse())

			clock.Tick(15)
			Expect(s.Update()).To(BeFalse())
			Expect(s.Frames()).To(BeZero())

			clock.Tick(1)
			Expect(s.Update()).To(BeTrue())
			Expect(s.Frames()).To(Equal(1))

			Expect(s.Update()).To(BeFalse())
			clock.Tick(16)
			Expect(s.Update()).To(BeTrue())
			Expect(s.Frames()).To(Equal(2))
		})

		It("keeps commands queued until a frame is admitted", func() {
			press(s, control.Spawn)
			Expect(s.Update()).To(BeFalse())
			Expect(s.Settings().SpawnHeld).To(BeFalse())
			Expect(s.Count()).To(BeZero())

			clock.Tick(16)
			Expect(s.Update()).To(BeTrue())
			Expect(s.Settings().SpawnHeld).To(BeTrue())
			Expect(s.Count()).To(Equal(1))
		})
	})

	Describe("spawning", func() {
		BeforeEach(func() {
			cfg.Capacity = 10
			cfg.Initial.SpawnRate = 4
		})

		It("never exceeds capacity and keeps ids dense", func() {
			press(s, control.Spawn)
			for i := 0; i < 5; i++ {
				s.Step()
			}
			Expect(s.Count()).To(Equal(10))
			for i, p := range s.Particles() {
				Expect(p.ID).To(Equal(i))
				Expect(p.Color.A).To(Equal(uint8(255)))
			}
		})

		It("spawns at the spawn point with the configured radius", func() {
			press(s, control.Spawn)
			s.Step()
			Expect(s.Count()).To(Equal(4))
			for _, p := range s.Particles() {
				Expect(p.Radius).To(Equal(cfg.ParticleRadius))
				Expect(p.Prev.X).To(Equal(cfg.Spawn.X))
			}
		})
	})

	Describe("despawning", func() {
		It("removes the newest particle once per frame", func() {
			press(s, control.Spawn)
			s.Step()
			s.Step()
			s.Step()
			release(s, control.Spawn)
			press(s, control.Despawn)
			s.Step()

			Expect(s.Count()).To(Equal(2))
			ids := []int{}
			for _, p := range s.Particles() {
				ids = append(ids, p.ID)
			}
			Expect(ids).To(Equal([]int{0, 1}))
		})

		It("is a no-op on an empty store", func() {
			press(s, control.Despawn)
			s.Step()
			Expect(s.Count()).To(BeZero())
		})
	})

	Describe("collision toggle", func() {
		It("flips once per press however long the key is held", func() {
			press(s, control.ToggleCollisions)
			s.Step()
			s.Step()
			Expect(s.Settings().CollisionsEnabled).To(BeFalse())

			press(s, control.ToggleCollisions)
			s.Step()
			Expect(s.Settings().CollisionsEnabled).To(BeFalse())

			release(s, control.ToggleCollisions)
			press(s, control.ToggleCollisions)
			s.Step()
			Expect(s.Settings().CollisionsEnabled).To(BeTrue())
		})
	})

	Describe("toggling collisions off and on between frames", func() {
		var ref *Simulator

		settle := func(sim *Simulator) {
			press(sim, control.Spawn)
			for i := 0; i < 40; i++ {
				sim.Step()
			}
			release(sim, control.Spawn)
			sim.Step()
		}

		JustBeforeEach(func() {
			var err error
			ref, err = New(cfg, NewManualClock(1000), quiet())
			Expect(err).NotTo(HaveOccurred())
			settle(s)
			settle(ref)
		})

		It("leaves positions untouched until the next frame", func() {
			before := append([]particles.Particle(nil), s.Particles()...)

			press(s, control.ToggleCollisions)
			release(s, control.ToggleCollisions)
			press(s, control.ToggleCollisions)
			release(s, control.ToggleCollisions)
			Expect(s.Particles()).To(Equal(before))
			Expect(s.Frames()).To(Equal(ref.Frames()))

			clock.Tick(16)
			Expect(s.Update()).To(BeTrue())
			ref.Step()

			Expect(s.Settings().CollisionsEnabled).To(BeTrue())
			Expect(s.Particles()).To(Equal(ref.Particles()))
		})
	})

	Describe("reset", func() {
		It("empties the store and keeps settings", func() {
			press(s, control.Spawn, control.RateUp)
			s.Step()
			s.Step()
			Expect(s.Count()).To(Equal(4))

			release(s, control.Spawn, control.RateUp)
			press(s, control.Reset)
			s.Step()
			Expect(s.Count()).To(BeZero())
			Expect(s.Settings().SpawnRate).To(Equal(2))

			press(s, control.Spawn)
			s.Step()
			Expect(s.Particles()[0].ID).To(BeZero())
		})
	})

	Describe("forces", func() {
		It("replaces gravity with the attractor", func() {
			press(s, control.Spawn, control.Attractor)
			s.Step()
			release(s, control.Spawn)
			for i := 0; i < 10; i++ {
				s.Step()
			}

			p := s.Particles()[0]
			Expect(p.Pos.Y).To(Equal(cfg.Spawn.Y))
			Expect(p.Pos.X).To(BeNumerically(">", cfg.Spawn.X))
		})

		It("pulls particles down with gravity alone", func() {
			press(s, control.Spawn)
			s.Step()
			s.Step()
			Expect(s.Particles()[0].Pos.Y).To(BeNumerically(">", cfg.Spawn.Y))
		})

		It("lifts particles while thrust is held", func() {
			press(s, control.Spawn, control.Thrust)
			s.Step()
			s.Step()
			Expect(s.Particles()[0].Pos.Y).To(BeNumerically("<", cfg.Spawn.Y))
		})
	})

	Describe("containment", func() {
		It("keeps a settling pile clear of the boundary wall", func() {
			press(s, control.Spawn)
			for i := 0; i < 150; i++ {
				s.Step()
			}
			release(s, control.Spawn)
			for i := 0; i < 300; i++ {
				s.Step()
			}

			c := s.Boundary().Circle()
			for _, p := range s.Particles() {
				Expect(dynamo.IsValid(p.Pos)).To(BeTrue())
				Expect(c.Contains(p.Pos)).To(BeTrue())
				// End-of-frame positions come after the last collision pass and
				// integration, so allow half a radius past the clamp limit.
				Expect(dynamo.Norm(dynamo.Sub(p.Pos, c.Center))).To(BeNumerically("<=", c.Radius-p.Radius/2))
			}
		})
	})

	Describe("validation", func() {
		It("reports no error for a healthy run", func() {
			press(s, control.Spawn)
			for i := 0; i < 20; i++ {
				s.Step()
			}
			Expect(s.Err()).NotTo(HaveOccurred())
		})

		Context("when positions blow up", func() {
			BeforeEach(func() {
				cfg.Gravity = math.Inf(1)
			})

			It("records the first invalid frame", func() {
				press(s, control.Spawn)
				s.Step()
				s.Step()

				var fe *dynamo.FrameError
				Expect(errors.As(s.Err(), &fe)).To(BeTrue())
				Expect(fe.Frame).To(Equal(0))
				Expect(s.Err()).To(MatchError(dynamo.ErrInvalidState))
			})
		})
	})

	Describe("observers", func() {
		It("receives one frame view per admitted frame", func() {
			var seen []Frame
			s.AddObserver(ObserverFunc(func(f Frame) { seen = append(seen, f) }))

			press(s, control.Spawn)
			clock.Tick(10)
			s.Update()
			clock.Tick(10)
			s.Update()
			s.Step()

			Expect(seen).To(HaveLen(2))
			Expect(seen[0].Index).To(Equal(0))
			Expect(seen[1].Index).To(Equal(1))
			Expect(seen[1].Particles).To(HaveLen(2))
			Expect(seen[1].Settings.SpawnHeld).To(BeTrue())
		})
	})
})
