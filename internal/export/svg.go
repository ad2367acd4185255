package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/ballsim/internal/particles"
	"github.com/san-kum/ballsim/internal/physics"
)

// SnapshotToSVG draws one frame: particles as filled discs (or outlines when
// filled is false) and the boundary as a red ring.
func SnapshotToSVG(ps []particles.Particle, boundary physics.Boundary, width, height int, filled bool) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#000000"/>
`, width, height, width, height))

	c := boundary.Circle()
	sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="#ff0000"/>
`, c.Center.X, c.Center.Y, c.Radius))

	sb.WriteString("<g>\n")
	for i := range ps {
		p := &ps[i]
		hex := fmt.Sprintf("#%02x%02x%02x", p.Color.R, p.Color.G, p.Color.B)
		if filled {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.1f" fill="%s"/>
`, p.Pos.X, p.Pos.Y, p.Radius, hex))
		} else {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.1f" fill="none" stroke="%s"/>
`, p.Pos.X, p.Pos.Y, p.Radius, hex))
		}
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// SeriesToSVG plots a telemetry column as a polyline, x being the sample index.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		minY = math.Min(minY, v)
		maxY = math.Max(maxY, v)
	}
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	rangeY *= 1.2
	stepX := float64(width) / float64(len(values)-1)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, v := range values {
		x := float64(i) * stepX
		y := float64(height) - (v-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
