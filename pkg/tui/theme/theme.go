package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Footer FooterTheme
	Panel  PanelTheme
	Dots   DotsTheme
	Toast  ToastTheme
}

// FooterTheme groups styles used by the bottom help and prompt lines.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Prompt lipgloss.Style
}

// PanelTheme styles the framed page strip and the header above it.
type PanelTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Stage lipgloss.Style
	Extra lipgloss.Style
}

// DotsTheme styles the page indicator.
type DotsTheme struct {
	Current lipgloss.Style
	Other   lipgloss.Style
}

// ToastTheme styles completion notices by level.
type ToastTheme struct {
	Info lipgloss.Style
	Warn lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	return Theme{
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(0, 1),
			Title: lipgloss.NewStyle().Bold(true),
			Stage: lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
			Extra: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		},
		Dots: DotsTheme{
			Current: lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
			Other:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		},
		Toast: ToastTheme{
			Info: lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
			Warn: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		},
	}
}
