package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(t *testing.T, m tea.Model, text string) tea.Model {
	t.Helper()
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestInputModelSubmit(t *testing.T) {
	var m tea.Model = newInputModel("What is your name?", "Player")
	m = typeText(t, m, "Ada")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	im := m.(inputModel)
	assert.True(t, im.done)
	assert.False(t, im.cancelled)
	assert.Equal(t, "Ada", im.Reply())
	assert.Contains(t, im.View(), "Ada")
}

func TestInputModelEmptySubmit(t *testing.T) {
	var m tea.Model = newInputModel("How much would you like to bet?", "10")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	im := m.(inputModel)
	assert.True(t, im.done)
	assert.Equal(t, "", im.Reply(), "placeholder is not the reply")
}

func TestInputModelCancel(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		var m tea.Model = newInputModel("Do you want to play again, Ada?", "y/n")
		m = typeText(t, m, "y")

		m, cmd := m.Update(tea.KeyMsg{Type: key})
		require.NotNil(t, cmd)

		im := m.(inputModel)
		assert.True(t, im.cancelled)
		assert.False(t, im.done)
	}
}

func TestInputModelViewShowsQuestion(t *testing.T) {
	m := newInputModel("Ada, please state your choice", "hit or stand")

	view := m.View()
	assert.Contains(t, view, "Ada, please state your choice")
	assert.Contains(t, view, "esc to quit")
}
