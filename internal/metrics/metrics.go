package metrics

import "github.com/san-kum/ballsim/internal/sim"

// Metric accumulates one scalar across observed frames.
type Metric interface {
	Name() string
	Observe(f sim.Frame)
	Value() float64
	Reset()
}

// Set fans frames out to several metrics. It satisfies sim.Observer.
type Set []Metric

func (s Set) OnFrame(f sim.Frame) {
	for _, m := range s {
		m.Observe(f)
	}
}

func (s Set) Reset() {
	for _, m := range s {
		m.Reset()
	}
}

// Values returns the current value of every metric keyed by name.
func (s Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s))
	for _, m := range s {
		out[m.Name()] = m.Value()
	}
	return out
}

// Standard returns the metric set recorded by headless runs.
func Standard(capacity int, cellSize float64) Set {
	return Set{
		NewPeakCount(),
		NewKineticEnergy(),
		NewMaxOverlap(capacity, cellSize),
		NewBoundaryExcess(),
		NewCorrections(),
	}
}
