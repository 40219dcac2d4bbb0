package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#8B5CF6")
	ColorAccent    = lipgloss.Color("#06B6D4")
	ColorError     = lipgloss.Color("#EF4444")
	ColorMuted     = lipgloss.Color("#6B7280")
	ColorText      = lipgloss.Color("#F8FAFC")
	ColorTextMuted = lipgloss.Color("#94A3B8")
	ColorBgPanel   = lipgloss.Color("#1E293B")
	ColorBgCursor  = lipgloss.Color("#3B0764")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	HeaderCellStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Align(lipgloss.Center)

	CellStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Align(lipgloss.Right)

	CursorCellStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(ColorBgCursor).
			Bold(true).
			Align(lipgloss.Right)

	ErrorCellStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true).
			Align(lipgloss.Right)

	GridStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Background(ColorBgPanel).
			Foreground(ColorText).
			Padding(0, 1)

	StatusErrorStyle = lipgloss.NewStyle().
				Background(ColorBgPanel).
				Foreground(ColorError).
				Bold(true).
				Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			MarginTop(1)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	ExpressionStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)

// RenderKeyHint renders one keyboard shortcut for the help line.
func RenderKeyHint(key, description string) string {
	return HelpKeyStyle.Render(key) + " " + HelpStyle.Render(description)
}
