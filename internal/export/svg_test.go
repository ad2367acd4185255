package export

import (
	"image/color"
	"strings"
	"testing"

	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/particles"
	"github.com/san-kum/ballsim/internal/physics"
)

func TestSnapshotToSVG(t *testing.T) {
	ps := []particles.Particle{
		{ID: 0, Pos: dynamo.V(10, 20), Radius: 2, Color: color.RGBA{R: 255, G: 16, B: 1, A: 255}},
		{ID: 1, Pos: dynamo.V(30, 40), Radius: 2, Color: color.RGBA{A: 255}},
	}
	b := physics.Boundary{Center: dynamo.V(50, 50), Radius: 50}

	filled := SnapshotToSVG(ps, b, 100, 100, true)
	if !strings.Contains(filled, `stroke="#ff0000"`) {
		t.Error("expected red boundary ring")
	}
	if !strings.Contains(filled, `fill="#ff1001"`) {
		t.Error("expected particle fill color")
	}
	if n := strings.Count(filled, "<circle"); n != 3 {
		t.Errorf("expected 3 circles, got %d", n)
	}

	outline := SnapshotToSVG(ps, b, 100, 100, false)
	if strings.Contains(outline, `fill="#ff1001"`) {
		t.Error("outline mode should not fill particles")
	}
	if !strings.Contains(outline, `stroke="#ff1001"`) {
		t.Error("expected particle outline color")
	}
}

func TestSeriesToSVG(t *testing.T) {
	if SeriesToSVG([]float64{1}, 100, 50, "#fff") != "" {
		t.Error("expected empty output for a single point")
	}

	svg := SeriesToSVG([]float64{0, 1, 2, 2}, 300, 100, "#00ff00")
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Error("expected complete svg document")
	}
	if n := strings.Count(svg, " L"); n != 3 {
		t.Errorf("expected 3 line segments, got %d", n)
	}
}
