package cmd

import "github.com/charmbracelet/lipgloss"

type styles struct {
	header       lipgloss.Style
	connected    lipgloss.Style
	disconnected lipgloss.Style
	value        lipgloss.Style
	pressed      lipgloss.Style
}

// ANSI colors: 1 red, 2 green, 3 yellow, 6 cyan, 8 gray.
func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{header: plain, connected: plain, disconnected: plain, value: plain, pressed: plain}
	}
	return styles{
		header:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(6)),
		connected:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(2)),
		disconnected: lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(8)),
		value:        lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(3)),
		pressed:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(1)),
	}
}
