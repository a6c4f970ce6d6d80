// Package theme defines color themes for the nestegg TUI dashboard.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name         string
	Background   lipgloss.Color // Main app background
	Surface      lipgloss.Color // Card/panel backgrounds
	SurfaceHover lipgloss.Color // Selected row
	Border       lipgloss.Color // Subtle borders
	BorderAccent lipgloss.Color // Focused card borders
	TextDim      lipgloss.Color // Hints, disabled
	TextMuted    lipgloss.Color // Labels, metadata
	TextPrimary  lipgloss.Color
	Accent       lipgloss.Color
	AccentBright lipgloss.Color
	Green        lipgloss.Color
	Orange       lipgloss.Color
	Red          lipgloss.Color
	Blue         lipgloss.Color
	Yellow       lipgloss.Color
	Magenta      lipgloss.Color
	Cyan         lipgloss.Color
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default theme.
var FlexokiDark = Theme{
	Name:         "flexoki-dark",
	Background:   lipgloss.Color("#100F0F"),
	Surface:      lipgloss.Color("#1C1B1A"),
	SurfaceHover: lipgloss.Color("#282726"),
	Border:       lipgloss.Color("#403E3C"),
	BorderAccent: lipgloss.Color("#3AA99F"),
	TextDim:      lipgloss.Color("#575653"),
	TextMuted:    lipgloss.Color("#878580"),
	TextPrimary:  lipgloss.Color("#FFFCF0"),
	Accent:       lipgloss.Color("#3AA99F"),
	AccentBright: lipgloss.Color("#5BC8BE"),
	Green:        lipgloss.Color("#879A39"),
	Orange:       lipgloss.Color("#DA702C"),
	Red:          lipgloss.Color("#D14D41"),
	Blue:         lipgloss.Color("#4385BE"),
	Yellow:       lipgloss.Color("#D0A215"),
	Magenta:      lipgloss.Color("#CE5D97"),
	Cyan:         lipgloss.Color("#24837B"),
}

// CatppuccinMocha is a soft pastel theme.
var CatppuccinMocha = Theme{
	Name:         "catppuccin-mocha",
	Background:   lipgloss.Color("#1E1E2E"),
	Surface:      lipgloss.Color("#313244"),
	SurfaceHover: lipgloss.Color("#45475A"),
	Border:       lipgloss.Color("#585B70"),
	BorderAccent: lipgloss.Color("#89B4FA"),
	TextDim:      lipgloss.Color("#6C7086"),
	TextMuted:    lipgloss.Color("#A6ADC8"),
	TextPrimary:  lipgloss.Color("#CDD6F4"),
	Accent:       lipgloss.Color("#89B4FA"),
	AccentBright: lipgloss.Color("#B4D0FB"),
	Green:        lipgloss.Color("#A6E3A1"),
	Orange:       lipgloss.Color("#FAB387"),
	Red:          lipgloss.Color("#F38BA8"),
	Blue:         lipgloss.Color("#89B4FA"),
	Yellow:       lipgloss.Color("#F9E2AF"),
	Magenta:      lipgloss.Color("#F5C2E7"),
	Cyan:         lipgloss.Color("#94E2D5"),
}

// Terminal uses ANSI 16 colors only.
var Terminal = Theme{
	Name:         "terminal",
	Background:   lipgloss.Color("0"),
	Surface:      lipgloss.Color("0"),
	SurfaceHover: lipgloss.Color("8"),
	Border:       lipgloss.Color("8"),
	BorderAccent: lipgloss.Color("6"),
	TextDim:      lipgloss.Color("8"),
	TextMuted:    lipgloss.Color("7"),
	TextPrimary:  lipgloss.Color("15"),
	Accent:       lipgloss.Color("6"),
	AccentBright: lipgloss.Color("14"),
	Green:        lipgloss.Color("2"),
	Orange:       lipgloss.Color("3"),
	Red:          lipgloss.Color("1"),
	Blue:         lipgloss.Color("4"),
	Yellow:       lipgloss.Color("3"),
	Magenta:      lipgloss.Color("5"),
	Cyan:         lipgloss.Color("6"),
}

// All available themes.
var All = []Theme{FlexokiDark, CatppuccinMocha, Terminal}

// Names lists every theme name in display order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}

// Health maps a goal health state to its color.
func (t Theme) Health(status string) lipgloss.Color {
	switch status {
	case "completed":
		return t.Blue
	case "on_track":
		return t.Green
	case "at_risk":
		return t.Yellow
	case "off_track":
		return t.Orange
	default:
		return t.Red
	}
}

// Severity maps a conflict severity or insight priority to its color.
func (t Theme) Severity(level string) lipgloss.Color {
	switch level {
	case "critical":
		return t.Magenta
	case "high":
		return t.Red
	case "medium":
		return t.Orange
	default:
		return t.TextMuted
	}
}
