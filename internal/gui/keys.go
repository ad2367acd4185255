package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/ballsim/internal/control"
)

// KeyState reports key edges for the current frame.
type KeyState interface {
	Pressed(key int32) bool
	Released(key int32) bool
}

type rlKeys struct{}

func (rlKeys) Pressed(key int32) bool  { return rl.IsKeyPressed(key) }
func (rlKeys) Released(key int32) bool { return rl.IsKeyReleased(key) }

type binding struct {
	key  int32
	kind control.Kind
}

var bindings = []binding{
	{rl.KeyW, control.Spawn},
	{rl.KeyS, control.Despawn},
	{rl.KeySpace, control.Thrust},
	{rl.KeyH, control.ToggleCollisions},
	{rl.KeyR, control.Reset},
	{rl.KeyG, control.Attractor},
	{rl.KeyO, control.DragUp},
	{rl.KeyL, control.DragDown},
	{rl.KeyI, control.RateUp},
	{rl.KeyK, control.RateDown},
	{rl.KeyP, control.ReportCount},
}

// Poll turns this frame's key edges into commands, presses before releases
// for each key.
func Poll(ks KeyState) []control.Command {
	var out []control.Command
	for _, b := range bindings {
		if ks.Pressed(b.key) {
			out = append(out, control.Pressed(b.kind))
		}
		if ks.Released(b.key) {
			out = append(out, control.Released(b.kind))
		}
	}
	return out
}
