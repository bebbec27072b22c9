package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the terminal colour scheme. Secondary also strokes exported
// trajectory SVGs, so it must read on a white page.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
}

var (
	// ThemeField follows the pole colours of a bar magnet.
	ThemeField = Theme{
		Name:      "field",
		Primary:   lipgloss.Color("#e4572e"),
		Secondary: lipgloss.Color("#2e86ab"),
		Text:      lipgloss.Color("#eaeaea"),
		Muted:     lipgloss.Color("#7a7a7a"),
		Success:   lipgloss.Color("#76b041"),
		Warning:   lipgloss.Color("#f3a712"),
		Error:     lipgloss.Color("#d7263d"),
	}

	ThemeLight = Theme{
		Name:      "light",
		Primary:   lipgloss.Color("#a23b12"),
		Secondary: lipgloss.Color("#1d4e89"),
		Text:      lipgloss.Color("#1a1a1a"),
		Muted:     lipgloss.Color("#8c8c8c"),
		Success:   lipgloss.Color("#2d6a1f"),
		Warning:   lipgloss.Color("#9a6700"),
		Error:     lipgloss.Color("#b00020"),
	}

	// ThemeMono is for logs and terminals without colour.
	ThemeMono = Theme{
		Name:      "mono",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#b0b0b0"),
		Text:      lipgloss.Color("#d0d0d0"),
		Muted:     lipgloss.Color("#707070"),
		Success:   lipgloss.Color("#ffffff"),
		Warning:   lipgloss.Color("#d0d0d0"),
		Error:     lipgloss.Color("#ffffff"),
	}

	CurrentTheme = ThemeField

	Themes = []Theme{ThemeField, ThemeLight, ThemeMono}
)

// GetTheme returns a theme by name, falling back to field.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeField
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
