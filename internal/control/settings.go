package control

import "log/slog"

// Settings is the mutable run configuration the host steers. The loop reads
// a copy taken at the start of each frame.
type Settings struct {
	CollisionsEnabled bool
	AttractorEnabled  bool
	ThrustHeld        bool
	SpawnHeld         bool
	DespawnHeld       bool
	Drag              float64
	DragStep          float64
	SpawnRate         int

	// Debounce latches: an edge command fires only while its latch is armed,
	// disarms it, and the matching release re-arms it. Drag up/down share one
	// latch, as do rate up/down.
	collisionsArmed bool
	resetArmed      bool
	dragArmed       bool
	rateArmed       bool
}

// NewSettings returns settings with every latch armed.
func NewSettings(collisions bool, drag, dragStep float64, spawnRate int) Settings {
	if spawnRate < 1 {
		spawnRate = 1
	}
	return Settings{
		CollisionsEnabled: collisions,
		Drag:              drag,
		DragStep:          dragStep,
		SpawnRate:         spawnRate,
		collisionsArmed:   true,
		resetArmed:        true,
		dragArmed:         true,
		rateArmed:         true,
	}
}

// Effect reports side effects a command asks the loop to perform.
type Effect uint8

const (
	EffectReset Effect = 1 << iota
	EffectReport
	EffectDragChanged
	EffectRateChanged
	EffectCollisionsToggled
)

func (e Effect) Has(f Effect) bool { return e&f != 0 }

// Apply performs the state transition for one command.
func (s *Settings) Apply(c Command) Effect {
	press := c.Action == Press

	switch c.Kind {
	case Spawn:
		s.SpawnHeld = press
	case Despawn:
		s.DespawnHeld = press
	case Thrust:
		s.ThrustHeld = press
	case Attractor:
		s.AttractorEnabled = press

	case ToggleCollisions:
		if !press {
			s.collisionsArmed = true
			return 0
		}
		if s.collisionsArmed {
			s.collisionsArmed = false
			s.CollisionsEnabled = !s.CollisionsEnabled
			return EffectCollisionsToggled
		}

	case Reset:
		if !press {
			s.resetArmed = true
			return 0
		}
		if s.resetArmed {
			s.resetArmed = false
			return EffectReset
		}

	case DragUp, DragDown:
		if !press {
			s.dragArmed = true
			return 0
		}
		if !s.dragArmed {
			return 0
		}
		s.dragArmed = false
		if c.Kind == DragUp {
			s.Drag += s.DragStep
		} else if s.Drag > 0 {
			s.Drag -= s.DragStep
		}
		return EffectDragChanged

	case RateUp, RateDown:
		if !press {
			s.rateArmed = true
			return 0
		}
		if !s.rateArmed {
			return 0
		}
		s.rateArmed = false
		if c.Kind == RateUp {
			s.SpawnRate++
		} else if s.SpawnRate > 1 {
			s.SpawnRate--
		}
		return EffectRateChanged

	case ReportCount:
		if !press {
			return EffectReport
		}
	}
	return 0
}

func (s Settings) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("collisions", s.CollisionsEnabled),
		slog.Bool("attractor", s.AttractorEnabled),
		slog.Float64("drag", s.Drag),
		slog.Int("spawn_rate", s.SpawnRate),
	)
}
