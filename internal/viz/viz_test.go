package viz

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ballsim/internal/config"
	"github.com/san-kum/ballsim/internal/control"
	"github.com/san-kum/ballsim/internal/sim"
)

func TestCanvasSet(t *testing.T) {
	g := NewWithT(t)
	c := NewCanvas(2, 1)

	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(4, 0)

	g.Expect(c.IsSet(0, 0)).To(BeTrue())
	g.Expect(c.IsSet(3, 3)).To(BeTrue())
	g.Expect(c.IsSet(1, 0)).To(BeFalse())
	g.Expect(c.Grid[0][0]).To(Equal(rune(0x2801)))
	g.Expect(c.Grid[0][1]).To(Equal(rune(0x2880)))

	c.Clear()
	g.Expect(c.IsSet(0, 0)).To(BeFalse())
	g.Expect(c.String()).To(Equal("\u2800\u2800\n"))
}

func TestCanvasCircles(t *testing.T) {
	g := NewWithT(t)
	c := NewCanvas(10, 5)

	c.DrawCircle(10, 10, 4)
	g.Expect(c.IsSet(14, 10)).To(BeTrue())
	g.Expect(c.IsSet(10, 6)).To(BeTrue())
	g.Expect(c.IsSet(10, 10)).To(BeFalse())

	c.Clear()
	c.FillCircle(10, 10, 2)
	g.Expect(c.IsSet(10, 10)).To(BeTrue())
	g.Expect(c.IsSet(11, 11)).To(BeTrue())
	g.Expect(c.IsSet(12, 12)).To(BeFalse())
}

func TestKeysLatchHoldKeys(t *testing.T) {
	g := NewWithT(t)
	k := NewKeys()

	g.Expect(k.Translate("w")).To(Equal([]control.Command{control.Pressed(control.Spawn)}))
	g.Expect(k.Held(control.Spawn)).To(BeTrue())
	g.Expect(k.Translate("w")).To(Equal([]control.Command{control.Released(control.Spawn)}))
	g.Expect(k.Held(control.Spawn)).To(BeFalse())
}

func TestKeysPulseEdgeKeys(t *testing.T) {
	g := NewWithT(t)
	k := NewKeys()

	want := []control.Command{control.Pressed(control.ToggleCollisions), control.Released(control.ToggleCollisions)}
	g.Expect(k.Translate("h")).To(Equal(want))
	g.Expect(k.Translate("h")).To(Equal(want))
	g.Expect(k.Translate("x")).To(BeNil())
}

func TestKeysReleaseAll(t *testing.T) {
	g := NewWithT(t)
	k := NewKeys()
	k.Translate(" ")
	k.Translate("g")

	g.Expect(k.ReleaseAll()).To(ConsistOf(control.Released(control.Thrust), control.Released(control.Attractor)))
	g.Expect(k.ReleaseAll()).To(BeEmpty())
}

func newSim(t *testing.T) (*sim.Simulator, *sim.ManualClock) {
	cfg := config.GetPreset("small")
	cfg.Seed = 3
	clock := sim.NewManualClock(1000)
	s, err := sim.New(cfg, clock, sim.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err != nil {
		t.Fatal(err)
	}
	return s, clock
}

func TestModelDrivesSimulator(t *testing.T) {
	g := NewWithT(t)
	s, clock := newSim(t)
	var m tea.Model = NewModel(s)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("w")})
	clock.Tick(16)
	m, cmd := m.Update(TickMsg{})
	g.Expect(cmd).NotTo(BeNil())
	g.Expect(s.Count()).To(Equal(1))

	view := m.View()
	g.Expect(view).To(ContainSubstring("BALLSIM"))
	g.Expect(view).To(ContainSubstring("1 / 2000"))

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	g.Expect(cmd).NotTo(BeNil())
}

func TestDrawBoundary(t *testing.T) {
	s, _ := newSim(t)
	c := NewCanvas(width, height)
	Draw(c, s)
	if !strings.ContainsFunc(c.String(), func(r rune) bool { return r > 0x2800 && r <= 0x28ff }) {
		t.Error("expected boundary ring on canvas")
	}
}
