package game

import (
	"github.com/lox/twentyone/internal/deck"
)

// BustLimit is the highest score a hand can hold without busting
const BustLimit = 21

// aceHigh is the value an ace takes until it would bust the hand
const aceHigh = 11

// Hand is the sequence of cards dealt to one participant in a round.
// Score is always the sum of Values.
type Hand struct {
	cards    []deck.Card
	values   []int
	score    int
	standing bool
}

// NewHand creates an empty hand
func NewHand() *Hand {
	return &Hand{}
}

// AddCard appends a card and rescores the hand
func (h *Hand) AddCard(card deck.Card) {
	h.cards = append(h.cards, card)
	h.assignValues()
}

// assignValues values every card at its base value, then demotes aces from
// 11 to 1 one at a time, in hand order, while the hand is over the limit.
func (h *Hand) assignValues() {
	h.values = h.values[:0]
	for _, card := range h.cards {
		h.values = append(h.values, card.Rank.Value())
	}
	h.sum()

	for h.score > BustLimit {
		idx := h.firstHighAce()
		if idx < 0 {
			break
		}
		h.values[idx] = 1
		h.sum()
	}
}

func (h *Hand) firstHighAce() int {
	for i, card := range h.cards {
		if card.IsAce() && h.values[i] == aceHigh {
			return i
		}
	}
	return -1
}

func (h *Hand) sum() {
	h.score = 0
	for _, v := range h.values {
		h.score += v
	}
}

// Cards returns a copy of the cards in deal order
func (h *Hand) Cards() []deck.Card {
	return slices.Clone(h.cards)
}

// Values returns a copy of the per-card values used for the score
func (h *Hand) Values() []int {
	return slices.Clone(h.values)
}

// Score returns the current hand value
func (h *Hand) Score() int {
	return h.score
}

// Len returns the number of cards in the hand
func (h *Hand) Len() int {
	return len(h.cards)
}

// IsBusted returns true if the score is over the bust limit
func (h *Hand) IsBusted() bool {
	return h.score > BustLimit
}

// SetStanding marks whether the hand takes no more cards this round
func (h *Hand) SetStanding(standing bool) {
	h.standing = standing
}

// IsStanding returns true once the participant has stood
func (h *Hand) IsStanding() bool {
	return h.standing
}
