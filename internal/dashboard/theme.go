package dashboard

import "github.com/charmbracelet/lipgloss"

// Theme holds the styles used by the Renderer.
type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Income   lipgloss.Style
	Expense  lipgloss.Style
	Savings  lipgloss.Style
	Card     lipgloss.Style
	Header   lipgloss.Style
	Current  lipgloss.Style
	Bar      lipgloss.Style
	Border   lipgloss.Color
}

// DefaultTheme is the terminal palette of the dashboard.
var DefaultTheme = Theme{
	Border: lipgloss.Color("#404040"),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")),
	Subtitle: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#a78bfa")),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fafafa")),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#737373")),
	Income: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10b981")),
	Expense: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ef4444")),
	Savings: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#3b82f6")),
	Card: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#404040")).
		Padding(0, 1).
		MarginRight(1),
	Header: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("86")).
		Padding(0, 1),
	Current: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7c3aed")),
	Bar: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7c3aed")),
}
