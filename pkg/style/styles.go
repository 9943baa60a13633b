package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles for the markup tags action messages use
var (
	InfoStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	CommentStyle = lipgloss.NewStyle().
			Foreground(CommentColor)

	QuestionStyle = lipgloss.NewStyle().
			Foreground(QuestionColor)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)
)

// Styles for CLI reports
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)
)
