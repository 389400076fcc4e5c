// Package themes defines the visual styles for the TUI.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the sorting screen. The engine only
// exposes armed/idle state; how that maps to glow is decided here.
type Theme struct {
	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Normal     lipgloss.Style
	Help       lipgloss.Style
	ErrorText  lipgloss.Style
	PanelBox   lipgloss.Style
	Button     lipgloss.Style
	ArmedA     lipgloss.Style
	ArmedB     lipgloss.Style
	ArmedSkip  lipgloss.Style
	CountStyle lipgloss.Style
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Success    lipgloss.Color
	Error      lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
}

// Neon is the default theme, after the original hardware rig's styling:
// saturated cyan and magenta on near-black.
var Neon = Theme{
	Primary:   lipgloss.Color("#00f5ff"),
	Secondary: lipgloss.Color("#ff00e5"),
	Success:   lipgloss.Color("#39ff14"),
	Error:     lipgloss.Color("#ff3131"),
	Muted:     lipgloss.Color("#6b6b6b"),
	Border:    lipgloss.Color("#2e2e2e"),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00f5ff")),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#9e9e9e")),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fafafa")),
	Help: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6b6b6b")),
	ErrorText: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ff3131")),
	PanelBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#2e2e2e")).
		Padding(1, 2),
	Button: lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#2e2e2e")).
		Foreground(lipgloss.Color("#9e9e9e")).
		Padding(0, 2),
	ArmedA: lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(lipgloss.Color("#00f5ff")).
		Foreground(lipgloss.Color("#00f5ff")).
		Bold(true).
		Padding(0, 2),
	ArmedSkip: lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(lipgloss.Color("#39ff14")).
		Foreground(lipgloss.Color("#39ff14")).
		Bold(true).
		Padding(0, 2),
	ArmedB: lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(lipgloss.Color("#ff00e5")).
		Foreground(lipgloss.Color("#ff00e5")).
		Bold(true).
		Padding(0, 2),
	CountStyle: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")),
}

// Armed returns the armed button style for one of the three label slots
// (0 = a, 1 = unknown, 2 = b).
func (t Theme) Armed(slot int) lipgloss.Style {
	switch slot {
	case 0:
		return t.ArmedA
	case 2:
		return t.ArmedB
	default:
		return t.ArmedSkip
	}
}
