package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	gui "github.com/gen2brain/raylib-go/raygui"

	"github.com/san-kum/ballsim/internal/control"
)

type button struct {
	label string
	kind  control.Kind
}

// Clicks are edges, so each sends a press and its release.
var panelButtons = [][]button{
	{{"Reset", control.Reset}, {"Collisions", control.ToggleCollisions}},
	{{"Drag -", control.DragDown}, {"Drag +", control.DragUp}},
	{{"Rate -", control.RateDown}, {"Rate +", control.RateUp}},
	{{"Count", control.ReportCount}},
}

// drawPanel draws the mouse controls in the top-right corner and submits
// the commands of any clicked button.
func (a *App) drawPanel() {
	x := float32(a.Width) - 270
	y := float32(50)
	for _, row := range panelButtons {
		for i, b := range row {
			bounds := rl.Rectangle{X: x + float32(i)*130, Y: y, Width: 120, Height: 30}
			if gui.Button(bounds, b.label) {
				a.Sim.Submit(control.Pressed(b.kind))
				a.Sim.Submit(control.Released(b.kind))
			}
		}
		y += 40
	}
}
