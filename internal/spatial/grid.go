// Package spatial provides the uniform spatial hash used for neighbor lookup.
package spatial

import (
	"math"

	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/particles"
)

// Hash multipliers, odd and large so the two axes decorrelate.
const (
	hashX uint32 = 92837111
	hashY uint32 = 689287499
)

// Grid maps hashed cells to the particles occupying them. It is a flat
// counting-sort index: bucket b holds items[offsets[b]:offsets[b+1]].
// Both arrays are allocated once and rebuilt in place every frame.
//
// Cell size must be at least the largest contact distance (two radii),
// otherwise contacts across non-adjacent probe points are missed.
type Grid struct {
	cellSize float64
	buckets  uint32
	offsets  []int32
	items    []int32
	keys     []uint32
	built    bool
}

// New creates a grid for up to capacity particles with 2*capacity buckets.
func New(capacity int, cellSize float64) *Grid {
	if capacity < 1 {
		capacity = 1
	}
	buckets := 2 * capacity
	return &Grid{
		cellSize: cellSize,
		buckets:  uint32(buckets),
		offsets:  make([]int32, buckets+1),
		items:    make([]int32, capacity),
		keys:     make([]uint32, capacity),
	}
}

func (g *Grid) CellSize() float64 { return g.cellSize }
func (g *Grid) Buckets() int      { return int(g.buckets) }
func (g *Grid) Built() bool       { return g.built }

// cell floors a coordinate to its signed cell index and reinterprets it as
// unsigned, wrapping negatives.
func (g *Grid) cell(v float64) uint32 {
	return uint32(int64(math.Floor(v / g.cellSize)))
}

// Hash returns the bucket for a position.
func (g *Grid) Hash(pos dynamo.Vec) uint32 {
	h := (g.cell(pos.X) * hashX) ^ (g.cell(pos.Y) * hashY)
	return h % g.buckets
}

// Build indexes every particle by its current position. Within a bucket
// particles appear in ascending id order.
func (g *Grid) Build(ps []particles.Particle) {
	if len(ps) > len(g.items) {
		ps = ps[:len(g.items)]
	}
	clear(g.offsets)

	for i := range ps {
		k := g.Hash(ps[i].Pos)
		g.keys[i] = k
		g.offsets[k+1]++
	}
	for b := uint32(1); b <= g.buckets; b++ {
		g.offsets[b] += g.offsets[b-1]
	}

	// offsets[k] doubles as the write cursor; it ends at the old offsets[k+1]
	// and is shifted back below.
	for i := range ps {
		k := g.keys[i]
		g.items[g.offsets[k]] = int32(i)
		g.offsets[k]++
	}
	for b := g.buckets; b > 0; b-- {
		g.offsets[b] = g.offsets[b-1]
	}
	g.offsets[0] = 0

	g.built = true
}

// Teardown empties every bucket. Queries until the next Build see nothing.
func (g *Grid) Teardown() {
	clear(g.offsets)
	g.built = false
}

// Bucket returns the particle indices stored in bucket b. The slice aliases
// the grid and is only valid until the next Build or Teardown.
func (g *Grid) Bucket(b uint32) []int32 {
	if b >= g.buckets {
		return nil
	}
	return g.items[g.offsets[b]:g.offsets[b+1]]
}

// Neighborhood returns the buckets of the 3x3 cell block around pos, x-major.
// Sample points are cell centers offset by one cell from the cell holding the
// truncated position. Buckets may repeat when distinct cells share a bucket.
func (g *Grid) Neighborhood(pos dynamo.Vec) [9]uint32 {
	var out [9]uint32
	bx := float64(int(pos.X))
	by := float64(int(pos.Y))
	half := float64(int(g.cellSize / 2))

	n := 0
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			sx := float64(int(math.Floor((bx+g.cellSize*float64(dx))/g.cellSize)*g.cellSize)) + half
			sy := float64(int(math.Floor((by+g.cellSize*float64(dy))/g.cellSize)*g.cellSize)) + half
			out[n] = g.Hash(dynamo.V(sx, sy))
			n++
		}
	}
	return out
}

// Stats describes bucket occupancy of the current build.
type Stats struct {
	Indexed  int
	Occupied int
	Largest  int
}

// Stats scans the buckets. It is O(buckets) and meant for telemetry, not the
// per-step path.
func (g *Grid) Stats() Stats {
	var s Stats
	if !g.built {
		return s
	}
	s.Indexed = int(g.offsets[g.buckets])
	for b := uint32(0); b < g.buckets; b++ {
		n := int(g.offsets[b+1] - g.offsets[b])
		if n == 0 {
			continue
		}
		s.Occupied++
		if n > s.Largest {
			s.Largest = n
		}
	}
	return s
}
