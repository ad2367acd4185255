package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/ballsim/internal/sim"
)

var (
	ColBg       = rl.NewColor(0, 0, 0, 255)
	ColBoundary = rl.NewColor(230, 41, 55, 255)
	ColText     = rl.NewColor(140, 140, 140, 255)
	ColTextDim  = rl.NewColor(60, 60, 60, 255)
)

// App is the windowed host. The simulator gates frames itself, so the
// window runs uncapped and redraws every iteration.
type App struct {
	Sim    *sim.Simulator
	Keys   KeyState
	Width  int32
	Height int32
}

func NewApp(s *sim.Simulator) *App {
	cfg := s.Config()
	return &App{
		Sim:    s,
		Keys:   rlKeys{},
		Width:  int32(cfg.Window.Width),
		Height: int32(cfg.Window.Height),
	}
}

func initWindow(w, h int32) {
	rl.InitWindow(w, h, "ballsim")
	rl.SetExitKey(rl.KeyEscape)
}

// Run opens the window and blocks until it is closed.
func Run(s *sim.Simulator) {
	app := NewApp(s)
	initWindow(app.Width, app.Height)
	defer rl.CloseWindow()
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	for _, c := range Poll(a.Keys) {
		a.Sim.Submit(c)
	}
	a.Sim.Update()
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)
	a.drawParticles()
	a.drawBoundary()
	a.DrawHUD()
	a.drawPanel()
	rl.EndDrawing()
}

func (a *App) drawParticles() {
	filled := a.Sim.Settings().CollisionsEnabled
	for _, p := range a.Sim.Particles() {
		pos := rl.NewVector2(float32(p.Pos.X), float32(p.Pos.Y))
		col := rl.NewColor(p.Color.R, p.Color.G, p.Color.B, p.Color.A)
		if filled {
			rl.DrawCircleV(pos, float32(p.Radius), col)
		} else {
			rl.DrawCircleLinesV(pos, float32(p.Radius), col)
		}
	}
}

func (a *App) drawBoundary() {
	c := a.Sim.Boundary().Circle()
	rl.DrawCircleLinesV(rl.NewVector2(float32(c.Center.X), float32(c.Center.Y)), float32(c.Radius), ColBoundary)
}

func (a *App) DrawHUD() {
	st := a.Sim.Settings()
	rl.DrawText(fmt.Sprintf("%d / %d", a.Sim.Count(), a.Sim.Capacity()), 20, 20, 20, ColText)
	rl.DrawText(fmt.Sprintf("drag %.4f  rate %d", st.Drag, st.SpawnRate), 20, 46, 16, ColText)

	flags := ""
	if !st.CollisionsEnabled {
		flags += "COLLISIONS OFF  "
	}
	if st.AttractorEnabled {
		flags += "ATTRACTOR"
	}
	rl.DrawText(flags, 20, 68, 16, ColText)

	rl.DrawText("[W] SPAWN  [S] DESPAWN  [SPACE] THRUST  [G] ATTRACT  [H] COLLIDE  [R] RESET  [O/L] DRAG  [I/K] RATE  [P] COUNT",
		20, a.Height-24, 14, ColTextDim)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), a.Width-90, 20, 14, ColTextDim)
}
