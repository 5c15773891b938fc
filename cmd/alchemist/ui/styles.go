// Package ui implements the interactive terminal interface for alchemist:
// the entity browser, rule builder, validation/fix view and upload page,
// plus the shared styling and table rendering the CLI commands reuse.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Palette colors.
var (
	colorAmethyst = lipgloss.Color("#7C5CBF")
	colorGold     = lipgloss.Color("#D4A017")
	colorSlate    = lipgloss.Color("#6B7280")
	colorInk      = lipgloss.Color("#1F2430")
	colorPaper    = lipgloss.Color("#F5F2EA")
	colorGreen    = lipgloss.Color("#3FA34D")
	colorRed      = lipgloss.Color("#D64545")
	colorAmber    = lipgloss.Color("#E8A33D")
	colorBlue     = lipgloss.Color("#3B82C4")
)

// Theme holds the color scheme for one terminal background.
type Theme struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light background theme.
func LightTheme() Theme {
	return Theme{
		Foreground: colorInk,
		Primary:    colorAmethyst,
		Accent:     colorGold,
		Muted:      colorSlate,
		Border:     lipgloss.Color("#D1D5DB"),
		IsDark:     false,
	}
}

// DarkTheme returns the dark background theme.
func DarkTheme() Theme {
	return Theme{
		Foreground: colorPaper,
		Primary:    colorGold,
		Accent:     colorAmethyst,
		Muted:      lipgloss.Color("#9CA3AF"),
		Border:     lipgloss.Color("#3A4150"),
		IsDark:     true,
	}
}

// ThemeByName resolves a configured theme name. "auto" checks the
// ALCHEMIST_DARK_MODE environment variable and falls back to dark, the
// common terminal default.
func ThemeByName(name string) Theme {
	switch name {
	case "light":
		return LightTheme()
	case "dark":
		return DarkTheme()
	default:
		if os.Getenv("ALCHEMIST_DARK_MODE") == "0" {
			return LightTheme()
		}
		return DarkTheme()
	}
}

// Styles holds the styled components shared by all pages.
type Styles struct {
	Theme Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	Header  lipgloss.Style
	Footer  lipgloss.Style
	Divider lipgloss.Style
	Badge   lipgloss.Style
	Panel   lipgloss.Style
}

// NewStyles creates the style set for a theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Success: lipgloss.NewStyle().Foreground(colorGreen),
		Error:   lipgloss.NewStyle().Foreground(colorRed).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(colorAmber),
		Info:    lipgloss.NewStyle().Foreground(colorBlue),

		Header: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(theme.Border),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		Divider: lipgloss.NewStyle().Foreground(theme.Border),

		Badge: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true).
			Padding(0, 1),

		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
	}
}

// DefaultStyles returns the styles for the auto-detected theme.
func DefaultStyles() Styles {
	return NewStyles(ThemeByName("auto"))
}
