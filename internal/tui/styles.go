package tui

import "github.com/charmbracelet/lipgloss"

var (
	QuestionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	PromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	TextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)
