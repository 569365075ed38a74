package game

import "github.com/lox/twentyone/internal/deck"

// Kind distinguishes human-controlled from computer-controlled participants
type Kind int

const (
	Human Kind = iota
	Computer
)

func (k Kind) String() string {
	switch k {
	case Human:
		return "human"
	case Computer:
		return "computer"
	default:
		return "unknown"
	}
}

// Participant is one side of the table. It persists across rounds; its hand
// is replaced at the start of every round.
type Participant struct {
	Name    string
	Kind    Kind
	Balance int

	// Threshold is the score below which an automated participant draws
	Threshold int

	hand *Hand
}

// NewParticipant creates a participant with an empty hand
func NewParticipant(name string, kind Kind, balance, threshold int) *Participant {
	return &Participant{
		Name:      name,
		Kind:      kind,
		Balance:   balance,
		Threshold: threshold,
		hand:      NewHand(),
	}
}

// Hand returns the participant's hand for the current round
func (p *Participant) Hand() *Hand {
	return p.hand
}

// ResetHand replaces the hand with an empty one
func (p *Participant) ResetHand() {
	p.hand = NewHand()
}

// AdjustBalance applies a signed settlement to the balance
func (p *Participant) AdjustBalance(delta int) {
	p.Balance += delta
}

// IsBroke returns true if the participant has nothing left to wager
func (p *Participant) IsBroke() bool {
	return p.Balance <= 0
}

// IsHuman returns true for the human-controlled participant
func (p *Participant) IsHuman() bool {
	return p.Kind == Human
}

// ParticipantSnapshot is a read-only copy of a participant's state
type ParticipantSnapshot struct {
	Name     string
	Kind     Kind
	Score    int
	Cards    []deck.Card
	Balance  int
	Standing bool
	Busted   bool
}

// Snapshot captures the participant's current state for reporting
func (p *Participant) Snapshot() ParticipantSnapshot {
	return ParticipantSnapshot{
		Name:     p.Name,
		Kind:     p.Kind,
		Score:    p.hand.Score(),
		Cards:    p.hand.Cards(),
		Balance:  p.Balance,
		Standing: p.hand.IsStanding(),
		Busted:   p.hand.IsBusted(),
	}
}
