// Package particles holds the live particle records of a simulation.
package particles

import (
	"image/color"

	"github.com/san-kum/ballsim/internal/dynamo"
)

// Particle is one disc. Velocity is implicit: Pos - Prev.
type Particle struct {
	ID     int
	Pos    dynamo.Vec
	Prev   dynamo.Vec
	Acc    dynamo.Vec
	Radius float64
	Color  color.RGBA
}

// Velocity returns the per-step displacement.
func (p *Particle) Velocity() dynamo.Vec {
	return dynamo.Sub(p.Pos, p.Prev)
}

// Accelerate adds a to the accumulator.
func (p *Particle) Accelerate(a dynamo.Vec) {
	p.Acc = dynamo.Add(p.Acc, a)
}

// Store is a fixed-capacity arena. Slots 0..Len()-1 are live and a
// particle's ID always equals its slot, so live ids form a dense prefix.
// Only the most recently created particle can be removed.
type Store struct {
	slots []Particle
	n     int
}

// New allocates a store for up to capacity particles.
func New(capacity int) *Store {
	if capacity < 0 {
		capacity = 0
	}
	return &Store{slots: make([]Particle, capacity)}
}

func (s *Store) Len() int   { return s.n }
func (s *Store) Cap() int   { return len(s.slots) }
func (s *Store) Full() bool { return s.n == len(s.slots) }

// Spawn appends a particle at rest. It is a no-op returning ok=false when
// the store is full.
func (s *Store) Spawn(pos dynamo.Vec, radius float64, c color.RGBA) (id int, ok bool) {
	if s.n == len(s.slots) {
		return -1, false
	}
	id = s.n
	s.slots[id] = Particle{
		ID:     id,
		Pos:    pos,
		Prev:   pos,
		Radius: radius,
		Color:  c,
	}
	s.n++
	return id, true
}

// DespawnLast removes the particle with the highest id. It is a no-op
// returning false when the store is empty.
func (s *Store) DespawnLast() bool {
	if s.n == 0 {
		return false
	}
	s.n--
	s.slots[s.n] = Particle{}
	return true
}

// Reset removes every particle.
func (s *Store) Reset() {
	clear(s.slots[:s.n])
	s.n = 0
}

// All returns the live particles in id order. The slice aliases the store;
// physics mutates particles through it.
func (s *Store) All() []Particle {
	return s.slots[:s.n]
}

// At returns the live particle with the given id.
func (s *Store) At(id int) (*Particle, bool) {
	if id < 0 || id >= s.n {
		return nil, false
	}
	return &s.slots[id], true
}

// Each calls fn for every live particle in id order.
func (s *Store) Each(fn func(p *Particle)) {
	for i := 0; i < s.n; i++ {
		fn(&s.slots[i])
	}
}
