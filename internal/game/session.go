package game

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lox/twentyone/internal/deck"
)

// Summary describes a finished session
type Summary struct {
	PlayerName   string
	Rounds       int
	Wins         int
	Losses       int
	Pushes       int
	FinalBalance int
	Broke        bool
}

// Session owns the two participants and the wager across rounds
type Session struct {
	human         *Participant
	computer      *Participant
	humanAgent    Agent
	computerAgent Agent
	prompter      Prompter
	wager         int
	maxRounds     int
	newDeck       func() *deck.Deck
	bus           EventBus
	logger        *log.Logger
	summary       Summary
}

// NewSession creates a session. The RNG drives every round's deck and is
// required so that deals are reproducible from a seed.
func NewSession(rng *rand.Rand, prompter Prompter, opts ...SessionOption) *Session {
	if rng == nil {
		panic("rng is required for session creation")
	}
	if prompter == nil {
		panic("prompter is required for session creation")
	}

	cfg := defaultSessionConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.bus == nil {
		cfg.bus = NewEventBus()
	}
	if cfg.newDeck == nil {
		cfg.newDeck = func() *deck.Deck { return deck.NewDeck(rng) }
	}

	s := &Session{
		human:         NewParticipant(cfg.playerName, Human, cfg.startingBalance, cfg.playerThreshold),
		computer:      NewParticipant(cfg.computerName, Computer, cfg.startingBalance, cfg.threshold),
		humanAgent:    cfg.humanAgent,
		computerAgent: NewComputerAgent(),
		prompter:      prompter,
		wager:         cfg.wager,
		maxRounds:     cfg.maxRounds,
		newDeck:       cfg.newDeck,
		bus:           cfg.bus,
		logger:        cfg.logger.WithPrefix("session"),
	}
	if s.humanAgent == nil {
		s.humanAgent = NewHumanAgent(prompter, s.bus, cfg.logger)
	}
	return s
}

// Human returns the human participant
func (s *Session) Human() *Participant { return s.human }

// Computer returns the computer participant
func (s *Session) Computer() *Participant { return s.computer }

// Wager returns the wager for the next round
func (s *Session) Wager() int { return s.wager }

// Summary returns the running session summary
func (s *Session) Summary() Summary {
	summary := s.summary
	summary.PlayerName = s.human.Name
	summary.FinalBalance = s.human.Balance
	return summary
}

// Run asks for the player's name, then plays rounds until the player declines
// or is broke. A prompter error stops the session; an unfinished round is
// not settled.
func (s *Session) Run(ctx context.Context) (Summary, error) {
	if err := s.PromptName(ctx); err != nil {
		return s.Summary(), err
	}
	s.bus.Publish(NewSessionStartEvent(s.human.Name, s.computer.Name, s.human.Balance, s.wager))
	s.logger.Info("Session started", "player", s.human.Name, "balance", s.human.Balance, "wager", s.wager)

	for {
		// A broke player never starts a round, including the first
		if s.human.IsBroke() {
			s.summary.Broke = true
			s.bus.Publish(NewBrokeEvent(s.human.Name, s.human.Balance))
			s.logger.Info("Player is broke", "player", s.human.Name, "balance", s.human.Balance)
			break
		}

		if _, err := s.PlayRound(ctx); err != nil {
			return s.Summary(), err
		}

		if s.maxRounds > 0 && s.summary.Rounds >= s.maxRounds {
			break
		}

		reply, err := s.prompter.AskPlayAgain(ctx, s.human.Name)
		if err != nil {
			return s.Summary(), fmt.Errorf("ask play again: %w", err)
		}
		if !ParsePlayAgain(reply) {
			break
		}
	}

	summary := s.Summary()
	s.bus.Publish(NewSessionEndEvent(summary))
	s.logger.Info("Session ended", "rounds", summary.Rounds, "balance", summary.FinalBalance, "broke", summary.Broke)
	return summary, nil
}

// PromptName asks for the player's display name; a blank reply keeps the default
func (s *Session) PromptName(ctx context.Context) error {
	reply, err := s.prompter.AskName(ctx, s.human.Name)
	if err != nil {
		return fmt.Errorf("ask name: %w", err)
	}
	s.human.Name = ParseName(reply, s.human.Name)
	return nil
}

// PromptWager asks for the wager until the reply is blank or a positive
// whole number. Amounts over the balance are clamped to it.
func (s *Session) PromptWager(ctx context.Context) error {
	for {
		reply, err := s.prompter.AskWager(ctx, s.wager)
		if err != nil {
			return fmt.Errorf("ask wager: %w", err)
		}

		wager, err := ParseWager(reply, s.wager, s.human.Balance)
		var over *OverBalanceError
		switch {
		case errors.As(err, &over):
			s.bus.Publish(NewWagerClampedEvent(over.Requested, over.Balance, wager))
			s.logger.Debug("Wager clamped", "requested", over.Requested, "balance", over.Balance)
		case errors.Is(err, ErrInvalidInput):
			s.bus.Publish(NewInvalidInputEvent(PromptWager, reply))
			continue
		case err != nil:
			return err
		}

		s.wager = wager
		return nil
	}
}

// PlayRound resets both hands, asks for the wager, plays a round on a fresh
// deck and settles it. A broke player cannot start a round.
func (s *Session) PlayRound(ctx context.Context) (*Outcome, error) {
	if s.human.IsBroke() {
		return nil, fmt.Errorf("%w: %s has balance %d", ErrBroke, s.human.Name, s.human.Balance)
	}
	s.human.ResetHand()
	s.computer.ResetHand()
	s.bus.Publish(NewRoundStartEvent(s.summary.Rounds + 1))

	if err := s.PromptWager(ctx); err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("round id: %w", err)
	}

	round := NewRound(id.String(), s.newDeck(),
		Seat{Participant: s.human, Agent: s.humanAgent},
		Seat{Participant: s.computer, Agent: s.computerAgent},
		s.wager, s.bus, s.logger)

	outcome, err := round.Play(ctx)
	if err != nil {
		return nil, fmt.Errorf("round %s: %w", round.ID(), err)
	}

	changes := outcome.Settle()
	s.record(outcome)
	s.bus.Publish(NewSettlementEvent(outcome.RoundID, changes))
	s.bus.Publish(NewStatusEvent(outcome.RoundID, s.human, s.computer))

	s.logger.Info("Round over",
		"round", outcome.RoundID,
		"result", outcome.Result,
		"reason", outcome.Reason,
		"wager", outcome.Wager,
		"balance", s.human.Balance)
	return outcome, nil
}

func (s *Session) record(o *Outcome) {
	s.summary.Rounds++
	switch o.Result {
	case HumanWin:
		s.summary.Wins++
	case ComputerWin:
		s.summary.Losses++
	case Push:
		s.summary.Pushes++
	}
}
