// Package tui binds the game's input boundary to bubbletea: every question
// runs a short-lived inline program around a text input.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// ErrCancelled is returned when the player presses ctrl+c or esc
var ErrCancelled = errors.New("input cancelled")

// Prompter implements game.Prompter with bubbletea text inputs
type Prompter struct {
	in     io.Reader
	out    io.Writer
	logger *log.Logger
}

// NewPrompter creates a prompter reading keys from in and drawing to out
func NewPrompter(in io.Reader, out io.Writer, logger *log.Logger) *Prompter {
	return &Prompter{in: in, out: out, logger: logger.WithPrefix("tui")}
}

func (p *Prompter) AskName(ctx context.Context, defaultName string) (string, error) {
	return p.ask(ctx, "What is your name?", defaultName)
}

func (p *Prompter) AskWager(ctx context.Context, currentWager int) (string, error) {
	return p.ask(ctx, "How much would you like to bet?", fmt.Sprintf("%d", currentWager))
}

func (p *Prompter) AskAction(ctx context.Context, playerName string) (string, error) {
	return p.ask(ctx, fmt.Sprintf("%s, please state your choice", playerName), "hit or stand")
}

func (p *Prompter) AskPlayAgain(ctx context.Context, playerName string) (string, error) {
	return p.ask(ctx, fmt.Sprintf("Do you want to play again, %s?", playerName), "y/n")
}

func (p *Prompter) ask(ctx context.Context, question, placeholder string) (string, error) {
	program := tea.NewProgram(
		newInputModel(question, placeholder),
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)

	final, err := program.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	if err != nil {
		return "", fmt.Errorf("run input program: %w", err)
	}

	m, ok := final.(inputModel)
	if !ok {
		return "", fmt.Errorf("unexpected model %T", final)
	}
	if m.cancelled {
		return "", ErrCancelled
	}

	p.logger.Debug("Reply", "question", question, "reply", m.Reply())
	return m.Reply(), nil
}
