package metrics

import (
	"math"

	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/particles"
	"github.com/san-kum/ballsim/internal/physics"
	"github.com/san-kum/ballsim/internal/sim"
	"github.com/san-kum/ballsim/internal/spatial"
)

// MaxOverlap records the deepest penetration between any two particles at the
// end of a frame. It keeps its own index so it never touches the
// simulator's.
type MaxOverlap struct {
	name string
	grid *spatial.Grid
	max  float64
	last float64
}

func NewMaxOverlap(capacity int, cellSize float64) *MaxOverlap {
	return &MaxOverlap{
		name: "max_overlap",
		grid: spatial.New(capacity, cellSize),
	}
}

func (m *MaxOverlap) Name() string { return m.name }

func (m *MaxOverlap) Observe(f sim.Frame) {
	m.last = Overlap(f.Particles, m.grid)
	m.max = math.Max(m.max, m.last)
}

func (m *MaxOverlap) Value() float64 { return m.max }
func (m *MaxOverlap) Last() float64  { return m.last }

func (m *MaxOverlap) Reset() {
	m.max = 0
	m.last = 0
}

// Overlap returns the largest contact-distance shortfall among neighboring
// pairs. Coincident pairs count with their full contact distance.
func Overlap(ps []particles.Particle, grid *spatial.Grid) float64 {
	grid.Build(ps)
	defer grid.Teardown()

	worst := 0.0
	for i := range ps {
		p := &ps[i]
		for _, b := range grid.Neighborhood(p.Pos) {
			for _, j := range grid.Bucket(b) {
				if int(j) <= i {
					continue
				}
				q := &ps[j]
				depth := p.Radius + q.Radius - dynamo.Norm(dynamo.Sub(p.Pos, q.Pos))
				if depth > worst {
					worst = depth
				}
			}
		}
	}
	return worst
}

// BoundaryExcess records how far any particle sits beyond the containment
// radius at the end of a frame.
type BoundaryExcess struct {
	name string
	max  float64
}

func NewBoundaryExcess() *BoundaryExcess {
	return &BoundaryExcess{name: "boundary_excess"}
}

func (b *BoundaryExcess) Name() string { return b.name }

func (b *BoundaryExcess) Observe(f sim.Frame) {
	b.max = math.Max(b.max, Excess(f.Particles, f.Boundary))
}

func (b *BoundaryExcess) Value() float64 { return b.max }
func (b *BoundaryExcess) Reset()         { b.max = 0 }

func Excess(ps []particles.Particle, boundary physics.Boundary) float64 {
	c := boundary.Circle()
	worst := 0.0
	for i := range ps {
		d := dynamo.Norm(dynamo.Sub(ps[i].Pos, c.Center)) - (c.Radius - ps[i].Radius)
		if d > worst {
			worst = d
		}
	}
	return worst
}

// Corrections is the mean number of collision corrections per frame.
type Corrections struct {
	name    string
	sum     int
	samples int
}

func NewCorrections() *Corrections {
	return &Corrections{name: "corrections"}
}

func (c *Corrections) Name() string { return c.name }

func (c *Corrections) Observe(f sim.Frame) {
	c.sum += f.Corrections
	c.samples++
}

func (c *Corrections) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return float64(c.sum) / float64(c.samples)
}

func (c *Corrections) Reset() {
	c.sum = 0
	c.samples = 0
}
