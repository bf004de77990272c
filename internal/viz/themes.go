package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme for the preview
type Theme struct {
	Name      string
	Spiral    lipgloss.Color
	Ring      lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Recording lipgloss.Color
}

// Available themes
var (
	ThemeEmber = Theme{
		Name:      "ember",
		Spiral:    lipgloss.Color("#ff6b35"),
		Ring:      lipgloss.Color("#ff0000"),
		Accent:    lipgloss.Color("#ffd166"),
		Text:      lipgloss.Color("#fff5f5"),
		Muted:     lipgloss.Color("#8b6b6b"),
		Recording: lipgloss.Color("#ff4757"),
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Spiral:    lipgloss.Color("#00a8cc"),
		Ring:      lipgloss.Color("#ff4444"),
		Accent:    lipgloss.Color("#ffd700"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Recording: lipgloss.Color("#ff4444"),
	}

	ThemeRetroGreen = Theme{
		Name:      "retro",
		Spiral:    lipgloss.Color("#00ff00"), // Green phosphor
		Ring:      lipgloss.Color("#88ff88"),
		Accent:    lipgloss.Color("#ffff00"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
		Recording: lipgloss.Color("#ff0000"),
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Spiral:    lipgloss.Color("#ffffff"),
		Ring:      lipgloss.Color("#cccccc"),
		Accent:    lipgloss.Color("#0088ff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Recording: lipgloss.Color("#ff0000"),
	}

	// All available themes
	Themes = []Theme{
		ThemeEmber,
		ThemeOcean,
		ThemeRetroGreen,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name, falling back to the first theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeEmber
}

// NextTheme returns the theme after t, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
