package dynamo

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vec is a 2-D value: a position, a displacement or an acceleration.
type Vec = r2.Vec

// V builds a Vec from components.
func V(x, y float64) Vec { return Vec{X: x, Y: y} }

func Add(a, b Vec) Vec           { return r2.Add(a, b) }
func Sub(a, b Vec) Vec           { return r2.Sub(a, b) }
func Scale(f float64, v Vec) Vec { return r2.Scale(f, v) }
func Norm(v Vec) float64         { return r2.Norm(v) }
func Norm2(v Vec) float64        { return r2.Norm2(v) }

// IsValid reports whether both components are finite.
func IsValid(v Vec) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Circle is a center and a radius. It describes both the containment
// boundary and the disc a renderer draws for a particle.
type Circle struct {
	Center Vec
	Radius float64
}

// Contains reports whether p lies inside or on the circle.
func (c Circle) Contains(p Vec) bool {
	return Norm(Sub(p, c.Center)) <= c.Radius
}
