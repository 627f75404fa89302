// Package styles provides shared lipgloss v2 styles for the TUI.
package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports. Rebuilt by SetTheme; call it before the TUI starts.
var (
	HeaderStyle lipgloss.Style
	TextStyle   lipgloss.Style
	HelpStyle   lipgloss.Style
	MutedStyle  lipgloss.Style

	ToastSuccessStyle lipgloss.Style
	ToastErrorStyle   lipgloss.Style
	ToastWarningStyle lipgloss.Style
	ToastInfoStyle    lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	HeaderStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	TextStyle = lipgloss.NewStyle().
		Foreground(p.Foreground)
	HelpStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		MarginTop(1)
	MutedStyle = lipgloss.NewStyle().
		Foreground(p.Muted)

	ToastSuccessStyle = toastStyle(p, p.Success)
	ToastErrorStyle = toastStyle(p, p.Error)
	ToastWarningStyle = toastStyle(p, p.Warning)
	ToastInfoStyle = toastStyle(p, p.Info)
}

func toastStyle(p Palette, accent color.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Foreground(p.Foreground).
		Padding(0, 1)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
