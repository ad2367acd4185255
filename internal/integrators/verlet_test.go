package integrators

import (
	"image/color"
	"math"
	"testing"

	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/particles"
	"github.com/san-kum/ballsim/internal/physics"
)

const frame = 0.016

func single(pos dynamo.Vec) *particles.Store {
	s := particles.New(1)
	s.Spawn(pos, 2, color.RGBA{A: 255})
	return s
}

func TestVerletStillness(t *testing.T) {
	s := single(dynamo.V(660, 400))
	integ := NewVerlet(0)

	for i := 0; i < 10000; i++ {
		integ.Step(s.All(), frame/8)
	}

	p := s.All()[0]
	if p.Pos != dynamo.V(660, 400) {
		t.Errorf("particle at rest drifted to %v", p.Pos)
	}
}

func TestVerletProjectile(t *testing.T) {
	const g = 1000.0
	dt := frame / 8
	s := single(dynamo.V(0, 0))
	integ := NewVerlet(0)

	steps := int(3.0 / dt)
	for i := 1; i <= steps; i++ {
		physics.ApplyGravity(s.All(), g)
		integ.Step(s.All(), dt)

		if i%500 != 0 {
			continue
		}
		tm := float64(i) * dt
		want := 0.5 * g * tm * tm
		got := s.All()[0].Pos.Y
		// position Verlet from rest leads the exact curve by 0.5*g*dt*t
		bound := 0.5*g*dt*tm + 1e-6
		if math.Abs(got-want) > bound {
			t.Fatalf("t=%.3f: expected y~%.4f (+-%.4f), got %.4f", tm, want, bound, got)
		}
	}
	if x := s.All()[0].Pos.X; x != 0 {
		t.Errorf("horizontal drift: %v", x)
	}
}

func TestVerletClearsAccumulator(t *testing.T) {
	s := single(dynamo.V(10, 10))
	s.All()[0].Accelerate(dynamo.V(3, 4))
	NewVerlet(0).Step(s.All(), 0.1)

	p := s.All()[0]
	if p.Acc != (dynamo.Vec{}) {
		t.Errorf("accumulator not cleared: %v", p.Acc)
	}
	if p.Prev != dynamo.V(10, 10) {
		t.Errorf("previous position should snapshot the old current, got %v", p.Prev)
	}
	want := dynamo.V(10+3*0.01, 10+4*0.01)
	if math.Abs(p.Pos.X-want.X) > 1e-12 || math.Abs(p.Pos.Y-want.Y) > 1e-12 {
		t.Errorf("expected %v, got %v", want, p.Pos)
	}
}

func TestVerletDragAttenuates(t *testing.T) {
	s := single(dynamo.V(0, 0))
	p := &s.All()[0]
	p.Prev = dynamo.V(-2, 0) // velocity (2, 0)

	NewVerlet(0.1).Step(s.All(), 0.1)

	// factor 1 - 0.1*2 = 0.8
	if got := p.Pos.X; math.Abs(got-1.6) > 1e-12 {
		t.Errorf("expected x=1.6, got %v", got)
	}
}

func TestVerletDragCanReverse(t *testing.T) {
	s := single(dynamo.V(0, 0))
	p := &s.All()[0]
	p.Prev = dynamo.V(-20, 0) // velocity (20, 0)

	NewVerlet(0.1).Step(s.All(), 0.1)

	// factor 1 - 0.1*20 = -1: the particle moves backwards
	if got := p.Pos.X; math.Abs(got+20) > 1e-12 {
		t.Errorf("expected reversal to x=-20, got %v", got)
	}
}

func TestDampingTable(t *testing.T) {
	tests := []struct {
		drag float64
		vel  dynamo.Vec
		want float64
	}{
		{0, dynamo.V(5, 5), 1},
		{0.0001, dynamo.V(3, 4), 0.9995},
		{0.5, dynamo.V(0, 4), -1},
		{1, dynamo.Vec{}, 1},
	}
	for _, tt := range tests {
		if got := Damping(tt.drag, tt.vel); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Damping(%v, %v) = %v, want %v", tt.drag, tt.vel, got, tt.want)
		}
	}
}
