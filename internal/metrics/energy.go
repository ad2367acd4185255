package metrics

import (
	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/particles"
	"github.com/san-kum/ballsim/internal/sim"
)

// KineticEnergy is the mean over frames of the total kinetic energy, taking
// unit mass and the implicit Verlet velocity (Pos-Prev)/dt.
type KineticEnergy struct {
	name    string
	total   float64
	last    float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (k *KineticEnergy) Name() string { return k.name }

func (k *KineticEnergy) Observe(f sim.Frame) {
	k.last = Kinetic(f.Particles, f.Dt)
	k.total += k.last
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

// Last is the energy of the most recent frame.
func (k *KineticEnergy) Last() float64 { return k.last }

func (k *KineticEnergy) Reset() {
	k.total = 0
	k.last = 0
	k.samples = 0
}

func Kinetic(ps []particles.Particle, dt float64) float64 {
	if dt <= 0 {
		return 0
	}
	e := 0.0
	for i := range ps {
		e += 0.5 * dynamo.Norm2(ps[i].Velocity()) / (dt * dt)
	}
	return e
}

// PeakCount tracks the largest live population seen.
type PeakCount struct {
	name string
	peak int
}

func NewPeakCount() *PeakCount { return &PeakCount{name: "peak_count"} }

func (p *PeakCount) Name() string { return p.name }

func (p *PeakCount) Observe(f sim.Frame) {
	if n := len(f.Particles); n > p.peak {
		p.peak = n
	}
}

func (p *PeakCount) Value() float64 { return float64(p.peak) }
func (p *PeakCount) Reset()         { p.peak = 0 }
