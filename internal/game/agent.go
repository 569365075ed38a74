package game

import (
	"context"

	"github.com/lox/twentyone/internal/deck"
)

// Action is a decision a participant can take on its turn
type Action int

const (
	// Invalid is the classification of a reply that is neither hit nor stand
	Invalid Action = iota
	Hit
	Stand
)

func (a Action) String() string {
	switch a {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	default:
		return "invalid"
	}
}

// TurnView is the read-only state an agent decides from
type TurnView struct {
	RoundID       string
	Name          string
	Score         int
	Cards         []deck.Card
	Threshold     int
	Balance       int
	Wager         int
	OpponentName  string
	OpponentScore int
}

// Agent represents any entity (human or automated) that decides for a participant.
// Agents receive immutable state and return a decision; the round applies it.
type Agent interface {
	Decide(ctx context.Context, view TurnView) (Action, error)
}

// ShouldDraw is the automated decision rule: draw while the score is
// strictly below the threshold.
func ShouldDraw(score, threshold int) bool {
	return score < threshold
}

// ComputerAgent plays by the threshold rule and never asks anyone
type ComputerAgent struct{}

// NewComputerAgent creates a threshold-rule agent
func NewComputerAgent() *ComputerAgent {
	return &ComputerAgent{}
}

// Decide hits below the participant's threshold and stands at or above it
func (a *ComputerAgent) Decide(_ context.Context, view TurnView) (Action, error) {
	if ShouldDraw(view.Score, view.Threshold) {
		return Hit, nil
	}
	return Stand, nil
}
