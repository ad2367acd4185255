package metrics

import (
	"github.com/san-kum/ballsim/internal/sim"
	"github.com/san-kum/ballsim/internal/spatial"
)

// Sample is one row of per-frame telemetry.
type Sample struct {
	Frame          int     `csv:"frame"`
	Count          int     `csv:"count"`
	KineticEnergy  float64 `csv:"kinetic_energy"`
	MaxOverlap     float64 `csv:"max_overlap"`
	BoundaryExcess float64 `csv:"boundary_excess"`
	Corrections    int     `csv:"corrections"`
	Drag           float64 `csv:"drag"`
	SpawnRate      int     `csv:"spawn_rate"`
	Collisions     bool    `csv:"collisions"`
	Attractor      bool    `csv:"attractor"`
}

// Recorder keeps a Sample for every Nth observed frame.
type Recorder struct {
	grid    *spatial.Grid
	every   int
	samples []Sample
}

func NewRecorder(capacity int, cellSize float64, every int) *Recorder {
	if every < 1 {
		every = 1
	}
	return &Recorder{
		grid:  spatial.New(capacity, cellSize),
		every: every,
	}
}

func (r *Recorder) OnFrame(f sim.Frame) {
	if f.Index%r.every != 0 {
		return
	}
	r.samples = append(r.samples, Sample{
		Frame:          f.Index,
		Count:          len(f.Particles),
		KineticEnergy:  Kinetic(f.Particles, f.Dt),
		MaxOverlap:     Overlap(f.Particles, r.grid),
		BoundaryExcess: Excess(f.Particles, f.Boundary),
		Corrections:    f.Corrections,
		Drag:           f.Settings.Drag,
		SpawnRate:      f.Settings.SpawnRate,
		Collisions:     f.Settings.CollisionsEnabled,
		Attractor:      f.Settings.AttractorEnabled,
	})
}

func (r *Recorder) Samples() []Sample { return r.samples }
func (r *Recorder) Reset()            { r.samples = r.samples[:0] }
