package tui

import "github.com/charmbracelet/lipgloss"

var (
	HeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA"))
	SubtextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	BorderStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#555555"))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))

	// Verdict colors
	AcceptedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")).Bold(true)
	RejectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))

	// Direction colors
	DirectionBuyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")).Bold(true)
	DirectionSellStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true)
	DirectionNoneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00"))
)
