package statsui

import "github.com/charmbracelet/lipgloss"

// Table felt and chip gold.
var (
	felt  = lipgloss.Color("#1F5E3A")
	gold  = lipgloss.Color("#D4AF37")
	ivory = lipgloss.Color("#F2EBD3")
	muted = lipgloss.Color("#8A9A8E")
	red   = lipgloss.Color("#E0524B")
)

var (
	tabActiveStyle   = lipgloss.NewStyle().Background(gold).Foreground(felt).Bold(true).Padding(0, 2)
	tabInactiveStyle = lipgloss.NewStyle().Background(felt).Foreground(ivory).Padding(0, 2)
	tabGapStyle      = lipgloss.NewStyle().Background(felt)
	titleStyle       = lipgloss.NewStyle().Foreground(gold).Bold(true)
	subtleStyle      = lipgloss.NewStyle().Foreground(muted)
	errorStyle       = lipgloss.NewStyle().Foreground(red)
	chipStyle        = lipgloss.NewStyle().
				Padding(0, 2).
				Border(lipgloss.ThickBorder(), false, false, false, true).
				BorderForeground(gold)
	chipLabelStyle = lipgloss.NewStyle().Foreground(muted)
	chipValueStyle = lipgloss.NewStyle().Foreground(ivory).Bold(true)
	gainStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#7BD88F")).Bold(true)
	lossStyle      = lipgloss.NewStyle().Foreground(red).Bold(true)
)
