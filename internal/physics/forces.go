package physics

import (
	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/particles"
)

// ApplyGravity adds a constant downward acceleration. Screen coordinates:
// +y points down.
func ApplyGravity(ps []particles.Particle, g float64) {
	a := dynamo.V(0, g)
	for i := range ps {
		ps[i].Accelerate(a)
	}
}

// ApplyThrust adds a constant upward acceleration.
func ApplyThrust(ps []particles.Particle, t float64) {
	a := dynamo.V(0, -t)
	for i := range ps {
		ps[i].Accelerate(a)
	}
}

// ApplyAttractor pulls every particle toward center with a fixed magnitude,
// independent of distance. A particle exactly at center has no direction and
// is skipped.
func ApplyAttractor(ps []particles.Particle, center dynamo.Vec, magnitude float64) {
	for i := range ps {
		d := dynamo.Sub(center, ps[i].Pos)
		dist := dynamo.Norm(d)
		if dist == 0 {
			continue
		}
		ps[i].Accelerate(dynamo.Scale(magnitude/dist, d))
	}
}

// Forces holds the tuning constants of the force field.
type Forces struct {
	Gravity   float64
	Thrust    float64
	Attractor float64
	Center    dynamo.Vec
}

// Toggles selects which forces act during a sub-step.
type Toggles struct {
	Thrust    bool
	Attractor bool
}

// Apply runs one force pass: gravity unless the attractor is on, then thrust
// if held, then the attractor.
func (f Forces) Apply(ps []particles.Particle, on Toggles) {
	if !on.Attractor {
		ApplyGravity(ps, f.Gravity)
	}
	if on.Thrust {
		ApplyThrust(ps, f.Thrust)
	}
	if on.Attractor {
		ApplyAttractor(ps, f.Center, f.Attractor)
	}
}
