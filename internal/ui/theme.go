package ui

import "github.com/charmbracelet/lipgloss"

// tally's palette: ink and paper, with one loud color per urgency level.
var (
	Ink      = lipgloss.Color("#F5F1E6")
	Graphite = lipgloss.Color("#6B6B6B")
	Slate    = lipgloss.Color("#9AA5B1")
	Marigold = lipgloss.Color("#F2A900")
	Coral    = lipgloss.Color("#FF5A5F")
	Teal     = lipgloss.Color("#2BB3A3")
	Cobalt   = lipgloss.Color("#3D6BE0")
	Violet   = lipgloss.Color("#8E6CEF")

	// Semantic styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Marigold)

	Success = lipgloss.NewStyle().
		Foreground(Teal)

	Error = lipgloss.NewStyle().
		Foreground(Coral)

	Warning = lipgloss.NewStyle().
		Foreground(Marigold)

	Info = lipgloss.NewStyle().
		Foreground(Cobalt)

	Muted = lipgloss.NewStyle().
		Foreground(Graphite)

	Accent = lipgloss.NewStyle().
		Foreground(Marigold).
		Bold(true)

	KeyStyle = lipgloss.NewStyle().
			Foreground(Slate).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(Ink)

	// Category styles, one per task bucket.
	CollectedStyle = lipgloss.NewStyle().Foreground(Violet)
	OverdueStyle   = lipgloss.NewStyle().Foreground(Coral).Bold(true)
	TodayStyle     = lipgloss.NewStyle().Foreground(Marigold).Bold(true)
	TomorrowStyle  = lipgloss.NewStyle().Foreground(Cobalt)
	NoDateStyle    = lipgloss.NewStyle().Foreground(Slate)
	FutureStyle    = lipgloss.NewStyle().Foreground(Teal)
)

// Icon constants.
const (
	IconTally   = "▮▮ "
	IconTask    = "📋"
	IconInbox   = "📥"
	IconOverdue = "🔴"
	IconToday   = "☀️ "
	IconPoints  = "◆"
	IconWarn    = "⚠️ "
	IconError   = "✗ "
	IconOk      = "✓ "
	IconArrow   = "→"
	IconDot     = "·"
)
