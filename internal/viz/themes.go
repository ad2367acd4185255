package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the canvas and the help text.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Muted   lipgloss.Color
}

var (
	ThemeClassic = Theme{Name: "classic", Primary: lipgloss.Color("#ffffff"), Muted: lipgloss.Color("#888888")}
	ThemeRetro   = Theme{Name: "retro", Primary: lipgloss.Color("#00ff00"), Muted: lipgloss.Color("#005500")}
	ThemeNeon    = Theme{Name: "neon", Primary: lipgloss.Color("#ff00ff"), Muted: lipgloss.Color("#666666")}

	CurrentTheme = ThemeClassic

	Themes = []Theme{ThemeClassic, ThemeRetro, ThemeNeon}
)

// GetTheme returns the named theme, falling back to classic.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
