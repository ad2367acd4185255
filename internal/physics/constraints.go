package physics

import (
	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/particles"
	"github.com/san-kum/ballsim/internal/spatial"
)

// Boundary is the circular container.
type Boundary dynamo.Circle

// Contain clamps each particle so its disc stays inside the boundary.
// Particles already inside are untouched.
func (b Boundary) Contain(ps []particles.Particle) {
	for i := range ps {
		p := &ps[i]
		limit := b.Radius - p.Radius
		d := dynamo.Sub(p.Pos, b.Center)
		dist := dynamo.Norm(d)
		if dist > limit {
			p.Pos = dynamo.Add(b.Center, dynamo.Scale(limit/dist, d))
		}
	}
}

// Circle returns the boundary as a plain circle for renderers.
func (b Boundary) Circle() dynamo.Circle { return dynamo.Circle(b) }

// SolveCollisions separates overlapping pairs found through the grid.
//
// Particles are visited in id order and corrections are written in place as
// they are found, so later checks see earlier corrections. Each overlapping
// pair is pushed apart by half the overlap each along the separation axis.
// Pairs at exactly the same position have no axis and are left alone.
// The grid must be built; its buckets reflect positions at build time.
// Returns the number of corrections applied.
func SolveCollisions(ps []particles.Particle, grid *spatial.Grid) int {
	corrections := 0
	for i := range ps {
		p := &ps[i]
		for _, b := range grid.Neighborhood(p.Pos) {
			for _, j := range grid.Bucket(b) {
				q := &ps[j]
				if q.ID == p.ID {
					continue
				}
				d := dynamo.Sub(p.Pos, q.Pos)
				dist := dynamo.Norm(d)
				contact := p.Radius + q.Radius
				if dist >= contact || dist == 0 {
					continue
				}
				push := dynamo.Scale(0.5*(contact-dist)/dist, d)
				p.Pos = dynamo.Add(p.Pos, push)
				q.Pos = dynamo.Sub(q.Pos, push)
				corrections++
			}
		}
	}
	return corrections
}
