package integrators

import (
	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/particles"
)

// Verlet advances positions with the implicit-velocity scheme and a
// speed-dependent drag. The damping factor 1 - Drag*|v| is not clamped: once
// Drag*|v| exceeds 1 the velocity reverses.
type Verlet struct {
	Drag float64
}

func NewVerlet(drag float64) *Verlet {
	return &Verlet{Drag: drag}
}

// Step moves every particle forward by dt and clears its accumulator.
func (v *Verlet) Step(ps []particles.Particle, dt float64) {
	dt2 := dt * dt
	for i := range ps {
		p := &ps[i]
		vel := dynamo.Sub(p.Pos, p.Prev)
		vel = dynamo.Scale(Damping(v.Drag, vel), vel)
		p.Prev = p.Pos
		p.Pos = dynamo.Add(p.Pos, dynamo.Add(vel, dynamo.Scale(dt2, p.Acc)))
		p.Acc = dynamo.Vec{}
	}
}

// Damping returns the factor applied to a per-step velocity.
func Damping(drag float64, vel dynamo.Vec) float64 {
	return 1 - drag*dynamo.Norm(vel)
}
