package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/ballsim/internal/control"
	"github.com/san-kum/ballsim/internal/sim"
)

const (
	width           = 80
	height          = 30
	historyCapacity = 300
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().MarginTop(1)
)

type TickMsg time.Time

// Model hosts a simulator in a terminal. The simulator owns the frame gate;
// the model only ticks faster than it.
type Model struct {
	sim          *sim.Simulator
	keys         *Keys
	canvas       *Canvas
	countHistory []float64
	showHelp     bool
}

func NewModel(s *sim.Simulator) Model {
	return Model{
		sim:          s,
		keys:         NewKeys(),
		canvas:       NewCanvas(width, height),
		countHistory: make([]float64, 0, historyCapacity),
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/120, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "?":
			m.showHelp = !m.showHelp
		case "t":
			names := ThemeNames()
			for i, name := range names {
				if name == CurrentTheme.Name {
					SetTheme(names[(i+1)%len(names)])
					break
				}
			}
		case "esc":
			m.submit(m.keys.ReleaseAll())
		default:
			m.submit(m.keys.Translate(key))
		}
	case TickMsg:
		if m.sim.Update() {
			m.record()
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) submit(cmds []control.Command) {
	for _, c := range cmds {
		m.sim.Submit(c)
	}
}

func (m *Model) record() {
	m.countHistory = append(m.countHistory, float64(m.sim.Count()))
	if len(m.countHistory) > historyCapacity {
		m.countHistory = m.countHistory[1:]
	}
}

// viewport maps world coordinates onto canvas sub-pixels so the boundary
// circle fills the shorter canvas side.
type viewport struct {
	scale, cx, cy, ox, oy float64
}

func newViewport(c *Canvas, s *sim.Simulator) viewport {
	b := s.Boundary().Circle()
	w, h := float64(c.Width*2), float64(c.Height*4)
	scale := math.Min(w, h) / (2 * b.Radius)
	return viewport{scale: scale, cx: b.Center.X, cy: b.Center.Y, ox: w / 2, oy: h / 2}
}

func (v viewport) project(x, y float64) (int, int) {
	return int(math.Round(v.ox + (x-v.cx)*v.scale)), int(math.Round(v.oy + (y-v.cy)*v.scale))
}

// Draw renders the current frame onto c. Particles are filled while
// collisions are on and outlined while they are off.
func Draw(c *Canvas, s *sim.Simulator) {
	c.Clear()
	vp := newViewport(c, s)
	b := s.Boundary().Circle()

	bx, by := vp.project(b.Center.X, b.Center.Y)
	c.DrawCircle(bx, by, int(math.Round(b.Radius*vp.scale)))

	filled := s.Settings().CollisionsEnabled
	for _, p := range s.Particles() {
		x, y := vp.project(p.Pos.X, p.Pos.Y)
		r := int(p.Radius * vp.scale)
		if filled {
			c.FillCircle(x, y, r)
		} else {
			c.DrawCircle(x, y, r)
		}
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (m Model) View() string {
	Draw(m.canvas, m.sim)
	canvasView := canvasStyle.Render(lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Render(m.canvas.String()))

	st := m.sim.Settings()
	var s strings.Builder
	s.WriteString(headerStyle.Render("BALLSIM") + "\n")

	if len(m.countHistory) > 1 {
		chart := asciigraph.Plot(m.countHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Particles"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	rows := [][2]string{
		{"Particles", fmt.Sprintf("%d / %d", m.sim.Count(), m.sim.Capacity())},
		{"Frame", fmt.Sprintf("%d", m.sim.Frames())},
		{"Drag", fmt.Sprintf("%.4f", st.Drag)},
		{"Rate", fmt.Sprintf("%d", st.SpawnRate)},
		{"Collisions", onOff(st.CollisionsEnabled)},
		{"Attractor", onOff(st.AttractorEnabled)},
		{"Spawn", onOff(m.keys.Held(control.Spawn))},
		{"Thrust", onOff(m.keys.Held(control.Thrust))},
	}
	for _, r := range rows {
		s.WriteString(labelStyle.Render(r[0]) + valueStyle.Render(r[1]) + "\n")
	}

	s.WriteString(helpStyle.Foreground(CurrentTheme.Muted).Render("\n─────────────────────\nW:Spawn S:Despawn SP:Thrust\nG:Attract H:Collide R:Reset\n?:Help Q:Quit"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView(s.String()))

	if m.showHelp {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

func statsView(s string) string { return statsStyle.Render(s) }

const helpOverlay = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  W      - Spawn on/off               ║
║  S      - Despawn on/off             ║
║  Space  - Thrust on/off              ║
║  G      - Attractor on/off           ║
║  H      - Toggle collisions          ║
║  R      - Reset                      ║
║  O / L  - Drag up / down             ║
║  I / K  - Spawn rate up / down       ║
║  P      - Log particle count         ║
║  Esc    - Release held keys          ║
║  T      - Cycle themes               ║
║  Q      - Quit                       ║
╚══════════════════════════════════════╝`

// Run starts the terminal host and blocks until the user quits.
func Run(s *sim.Simulator) error {
	_, err := tea.NewProgram(NewModel(s), tea.WithAltScreen()).Run()
	return err
}
