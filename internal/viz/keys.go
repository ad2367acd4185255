package viz

import "github.com/san-kum/ballsim/internal/control"

// Terminals deliver key presses but never releases, so held and level keys
// latch: the first press sends Press and the next sends Release. Edge keys
// send a Press immediately followed by its Release.
var keyKinds = map[string]control.Kind{
	"w": control.Spawn,
	"s": control.Despawn,
	" ": control.Thrust,
	"g": control.Attractor,
	"h": control.ToggleCollisions,
	"r": control.Reset,
	"o": control.DragUp,
	"l": control.DragDown,
	"i": control.RateUp,
	"k": control.RateDown,
	"p": control.ReportCount,
}

func latching(k control.Kind) bool {
	switch k {
	case control.Spawn, control.Despawn, control.Thrust, control.Attractor:
		return true
	}
	return false
}

// Keys turns terminal key strings into simulation commands.
type Keys struct {
	down map[control.Kind]bool
}

func NewKeys() *Keys {
	return &Keys{down: make(map[control.Kind]bool)}
}

// Translate returns the commands for one key press, or nil for unmapped keys.
func (k *Keys) Translate(key string) []control.Command {
	kind, ok := keyKinds[key]
	if !ok {
		return nil
	}
	if !latching(kind) {
		return []control.Command{control.Pressed(kind), control.Released(kind)}
	}
	if k.down[kind] {
		k.down[kind] = false
		return []control.Command{control.Released(kind)}
	}
	k.down[kind] = true
	return []control.Command{control.Pressed(kind)}
}

// Held reports whether a latching key is currently down.
func (k *Keys) Held(kind control.Kind) bool { return k.down[kind] }

// ReleaseAll releases every latched key, e.g. on reset.
func (k *Keys) ReleaseAll() []control.Command {
	var out []control.Command
	for _, kind := range control.Kinds() {
		if k.down[kind] {
			k.down[kind] = false
			out = append(out, control.Released(kind))
		}
	}
	return out
}
