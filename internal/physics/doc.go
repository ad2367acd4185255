// Package physics implements the force field and the constraint solver.
//
// Forces only write acceleration accumulators:
//
//   - [ApplyGravity]: constant downward pull
//   - [ApplyThrust]: constant upward push while held
//   - [ApplyAttractor]: constant-magnitude pull toward the boundary center
//
// Constraints move positions directly:
//
//   - [Boundary.Contain]: clamps discs inside the container circle
//   - [SolveCollisions]: sequential pairwise overlap relaxation via the grid
//
// Relaxation is sequential in id order, so the outcome depends on that order
// and is deterministic for a given state.
package physics
