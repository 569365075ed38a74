package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// inputModel asks a single question and collects one line of input
type inputModel struct {
	question  string
	input     textinput.Model
	done      bool
	cancelled bool
}

func newInputModel(question, placeholder string) inputModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "> "
	ti.CharLimit = 64
	ti.Width = 40
	ti.PromptStyle = PromptStyle
	ti.TextStyle = TextStyle
	ti.Focus()

	return inputModel{question: question, input: ti}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done || m.cancelled {
		// Leave the answered question in the scrollback
		return QuestionStyle.Render(m.question) + " " + m.input.Value() + "\n"
	}

	var b strings.Builder
	b.WriteString(QuestionStyle.Render(m.question))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("enter to submit, esc to quit"))
	b.WriteString("\n")
	return b.String()
}

// Reply returns the submitted text
func (m inputModel) Reply() string {
	return m.input.Value()
}
