// Package dynamo provides the shared primitives of the particle simulation.
//
//   - [Vec]: 2-D vector value (gonum r2) with add, sub, scale and norms
//   - [Circle]: center/radius pair used for the containment boundary
//   - sentinel errors for configuration, scripting and telemetry
//
// # Example
//
//	d := dynamo.Sub(p.Pos, boundary.Center)
//	if dynamo.Norm(d) > boundary.Radius-p.Radius {
//	    // outside
//	}
//
// Everything here is a value type; nothing holds references between frames.
package dynamo
