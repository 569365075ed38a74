package game

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Prompter is the input boundary. Each method blocks until the person
// replies; an error means no reply was obtained and nothing changes.
type Prompter interface {
	// AskName offers defaultName; a blank reply keeps it
	AskName(ctx context.Context, defaultName string) (string, error)
	// AskWager offers currentWager; a blank reply keeps it
	AskWager(ctx context.Context, currentWager int) (string, error)
	// AskAction asks the named player to hit or stand
	AskAction(ctx context.Context, playerName string) (string, error)
	// AskPlayAgain asks the named player whether to play another round
	AskPlayAgain(ctx context.Context, playerName string) (string, error)
}

// Prompt identifies which question a reply answered
type Prompt string

const (
	PromptName      Prompt = "name"
	PromptWager     Prompt = "wager"
	PromptAction    Prompt = "action"
	PromptPlayAgain Prompt = "play_again"
)

// ParseAction classifies a reply: hit if it starts with "h", stand if it
// starts with "s" (case-insensitive), otherwise Invalid.
func ParseAction(reply string) Action {
	reply = strings.ToLower(strings.TrimSpace(reply))
	switch {
	case strings.HasPrefix(reply, "h"):
		return Hit
	case strings.HasPrefix(reply, "s"):
		return Stand
	default:
		return Invalid
	}
}

// ParsePlayAgain returns true if the reply starts with "y" (case-insensitive)
func ParsePlayAgain(reply string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(reply)), "y")
}

// ParseName returns reply, or defaultName when reply is blank
func ParseName(reply, defaultName string) string {
	if name := strings.TrimSpace(reply); name != "" {
		return name
	}
	return defaultName
}

// ParseWager classifies a wager reply. A blank reply keeps current. A reply
// that is not a positive whole number returns ErrInvalidInput. An amount over
// balance is clamped to balance and returned together with an
// *OverBalanceError.
func ParseWager(reply string, current, balance int) (int, error) {
	amount := current
	if reply = strings.TrimSpace(reply); reply != "" {
		n, err := strconv.Atoi(reply)
		if err != nil {
			return current, fmt.Errorf("%w: %q is not a whole number", ErrInvalidInput, reply)
		}
		if n <= 0 {
			return current, fmt.Errorf("%w: wager must be positive, got %d", ErrInvalidInput, n)
		}
		amount = n
	}

	if amount > balance {
		return balance, &OverBalanceError{Requested: amount, Balance: balance}
	}
	return amount, nil
}
