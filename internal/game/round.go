package game

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/twentyone/internal/deck"
)

// RoundState is a state of the round state machine
type RoundState int

const (
	DealingOpening RoundState = iota
	TurnLoop
	Resolving
	Done
)

func (s RoundState) String() string {
	switch s {
	case DealingOpening:
		return "dealing_opening"
	case TurnLoop:
		return "turn_loop"
	case Resolving:
		return "resolving"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// Seat pairs a participant with the agent deciding for it
type Seat struct {
	Participant *Participant
	Agent       Agent
}

// Result is who took the wager
type Result int

const (
	HumanWin Result = iota
	ComputerWin
	Push
)

func (r Result) String() string {
	switch r {
	case HumanWin:
		return "human_win"
	case ComputerWin:
		return "computer_win"
	case Push:
		return "push"
	default:
		return "unknown"
	}
}

// Reason is why the round was decided the way it was
type Reason int

const (
	ReasonBust Reason = iota
	ReasonScore
)

func (r Reason) String() string {
	switch r {
	case ReasonBust:
		return "bust"
	case ReasonScore:
		return "score"
	default:
		return "unknown"
	}
}

// BalanceChange is one participant's settlement for a round
type BalanceChange struct {
	Name    string
	Delta   int
	Balance int
}

// Outcome is the result of a completed round. Winner and Loser are nil on a push.
type Outcome struct {
	RoundID       string
	Result        Result
	Reason        Reason
	Winner        *Participant
	Loser         *Participant
	Wager         int
	Rotations     int
	HumanScore    int
	ComputerScore int
	settled       bool
}

// Settle moves the wager from loser to winner and returns the changes. A push
// changes nothing. Settling twice is a no-op.
func (o *Outcome) Settle() []BalanceChange {
	if o.settled || o.Result == Push {
		o.settled = true
		return nil
	}
	o.settled = true

	o.Winner.AdjustBalance(o.Wager)
	o.Loser.AdjustBalance(-o.Wager)

	return []BalanceChange{
		{Name: o.Winner.Name, Delta: o.Wager, Balance: o.Winner.Balance},
		{Name: o.Loser.Name, Delta: -o.Wager, Balance: o.Loser.Balance},
	}
}

// HumanNet returns the human's balance change for the round
func (o *Outcome) HumanNet() int {
	switch o.Result {
	case HumanWin:
		return o.Wager
	case ComputerWin:
		return -o.Wager
	default:
		return 0
	}
}

// Round plays one hand between the human seat and the computer seat. It is
// driven from a single goroutine; Step and Play must not be called
// concurrently.
type Round struct {
	id        string
	deck      *deck.Deck
	seats     [2]Seat
	wager     int
	state     RoundState
	rotations int
	outcome   *Outcome
	bus       EventBus
	logger    *log.Logger
}

// NewRound creates a round in the DealingOpening state. Both participants'
// hands must already be reset.
func NewRound(id string, d *deck.Deck, human, computer Seat, wager int, bus EventBus, logger *log.Logger) *Round {
	if bus == nil {
		bus = NewEventBus()
	}
	return &Round{
		id:     id,
		deck:   d,
		seats:  [2]Seat{human, computer},
		wager:  wager,
		state:  DealingOpening,
		bus:    bus,
		logger: logger.With("round", id),
	}
}

// ID returns the round identifier
func (r *Round) ID() string { return r.id }

// State returns the current state
func (r *Round) State() RoundState { return r.state }

// Rotations returns how many full rotations of the turn loop have run
func (r *Round) Rotations() int { return r.rotations }

// Outcome returns the outcome once the round is Done, nil before
func (r *Round) Outcome() *Outcome { return r.outcome }

// Play steps the round until it is Done and returns the outcome
func (r *Round) Play(ctx context.Context) (*Outcome, error) {
	for r.state != Done {
		if err := r.Step(ctx); err != nil {
			return nil, err
		}
	}
	return r.outcome, nil
}

// Step advances the state machine by one state. In TurnLoop a step is one
// full rotation. Stepping a Done round does nothing.
func (r *Round) Step(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch r.state {
	case DealingOpening:
		for _, seat := range r.seats {
			if _, err := r.deal(seat.Participant); err != nil {
				return err
			}
		}
		r.transition(TurnLoop)

	case TurnLoop:
		if err := r.rotate(ctx); err != nil {
			return err
		}
		if r.isTerminal() {
			r.transition(Resolving)
		}

	case Resolving:
		r.outcome = r.resolve()
		r.transition(Done)
		r.logger.Debug("Round resolved",
			"result", r.outcome.Result,
			"reason", r.outcome.Reason,
			"human", r.outcome.HumanScore,
			"computer", r.outcome.ComputerScore)
		r.bus.Publish(NewOutcomeEvent(*r.outcome))
	}
	return nil
}

func (r *Round) transition(to RoundState) {
	r.logger.Debug("Round state", "from", r.state, "to", to)
	r.state = to
}

// rotate offers each participant that is neither standing nor busted exactly
// one decision, human first.
func (r *Round) rotate(ctx context.Context) error {
	r.rotations++
	r.bus.Publish(NewStatusEvent(r.id, r.human(), r.computer()))

	for i, seat := range r.seats {
		p := seat.Participant
		hand := p.Hand()
		if hand.IsStanding() || hand.IsBusted() {
			continue
		}

		action, err := seat.Agent.Decide(ctx, r.view(i))
		if err != nil {
			return fmt.Errorf("decision for %s: %w", p.Name, err)
		}

		switch action {
		case Hit:
			card, err := r.deal(p)
			if err != nil {
				return err
			}
			r.bus.Publish(NewPlayerActionEvent(r.id, p.Name, Hit, card, hand.Score()))
		case Stand:
			hand.SetStanding(true)
			r.bus.Publish(NewPlayerActionEvent(r.id, p.Name, Stand, deck.Card{}, hand.Score()))
		default:
			return fmt.Errorf("decision for %s: unexpected action %s", p.Name, action)
		}

		r.logger.Debug("Player action", "player", p.Name, "action", action, "score", hand.Score())
	}
	return nil
}

// isTerminal checks, in order, for a bust and then for both hands standing
func (r *Round) isTerminal() bool {
	busted := false
	for _, seat := range r.seats {
		if hand := seat.Participant.Hand(); hand.IsBusted() {
			r.bus.Publish(NewBustEvent(r.id, seat.Participant.Name, hand.Score()))
			busted = true
		}
	}
	if busted {
		return true
	}

	if r.human().Hand().IsStanding() && r.computer().Hand().IsStanding() {
		r.bus.Publish(NewBothStandingEvent(r.id))
		return true
	}
	return false
}

// resolve decides the round. A bust loses regardless of the other score;
// if both busted in the same rotation the human's bust is checked first.
func (r *Round) resolve() *Outcome {
	human, computer := r.human(), r.computer()
	hs, cs := human.Hand().Score(), computer.Hand().Score()

	o := &Outcome{
		RoundID:       r.id,
		Wager:         r.wager,
		Rotations:     r.rotations,
		HumanScore:    hs,
		ComputerScore: cs,
	}

	switch {
	case human.Hand().IsBusted():
		o.Result, o.Reason, o.Winner, o.Loser = ComputerWin, ReasonBust, computer, human
	case computer.Hand().IsBusted():
		o.Result, o.Reason, o.Winner, o.Loser = HumanWin, ReasonBust, human, computer
	case hs > cs:
		o.Result, o.Reason, o.Winner, o.Loser = HumanWin, ReasonScore, human, computer
	case cs > hs:
		o.Result, o.Reason, o.Winner, o.Loser = ComputerWin, ReasonScore, computer, human
	default:
		o.Result, o.Reason = Push, ReasonScore
	}
	return o
}

func (r *Round) deal(p *Participant) (deck.Card, error) {
	card, err := r.deck.Draw()
	if err != nil {
		return deck.Card{}, fmt.Errorf("deal to %s: %w", p.Name, err)
	}
	p.Hand().AddCard(card)
	return card, nil
}

func (r *Round) view(seat int) TurnView {
	p := r.seats[seat].Participant
	opp := r.seats[1-seat].Participant
	return TurnView{
		RoundID:       r.id,
		Name:          p.Name,
		Score:         p.Hand().Score(),
		Cards:         p.Hand().Cards(),
		Threshold:     p.Threshold,
		Balance:       p.Balance,
		Wager:         r.wager,
		OpponentName:  opp.Name,
		OpponentScore: opp.Hand().Score(),
	}
}

func (r *Round) human() *Participant    { return r.seats[0].Participant }
func (r *Round) computer() *Participant { return r.seats[1].Participant }
