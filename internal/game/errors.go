package game

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks a reply that could not be classified. It is
	// recovered by asking again.
	ErrInvalidInput = errors.New("invalid input")

	// ErrOverBalanceWager marks a wager above the player's balance. It is
	// recovered by clamping the wager to the balance.
	ErrOverBalanceWager = errors.New("wager exceeds balance")

	// ErrBroke is returned when a round is started for a player with no balance
	ErrBroke = errors.New("player is broke")
)

// OverBalanceError reports a requested wager that was clamped to the balance
type OverBalanceError struct {
	Requested int
	Balance   int
}

func (e *OverBalanceError) Error() string {
	return fmt.Sprintf("wager %d exceeds balance %d", e.Requested, e.Balance)
}

// Is makes errors.Is(err, ErrOverBalanceWager) match
func (e *OverBalanceError) Is(target error) bool {
	return target == ErrOverBalanceWager
}
