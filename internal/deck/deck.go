package deck

import (
	"errors"
	rand "math/rand/v2"
)

// ErrEmptyDeck is returned when a card is drawn from a deck with none left
var ErrEmptyDeck = errors.New("deck is empty")

// Size is the number of cards in a full deck
const Size = 52

// Deck holds the cards not yet dealt in a round
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// NewDeck creates a full 52-card deck. Draws pick uniformly at random from
// the remaining cards using rng.
func NewDeck(rng *rand.Rand) *Deck {
	deck := &Deck{
		cards: make([]Card, 0, Size),
		rng:   rng,
	}

	for _, suit := range Suits {
		for rank := Two; rank <= Ace; rank++ {
			deck.cards = append(deck.cards, NewCard(suit, rank))
		}
	}

	return deck
}

// NewStackedDeck creates a deck that deals the given cards in order.
// Useful for deterministic tests.
func NewStackedDeck(cards ...Card) *Deck {
	stacked := make([]Card, len(cards))
	copy(stacked, cards)
	return &Deck{cards: stacked}
}

// Draw removes a card from the deck and returns it
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}

	idx := 0
	if d.rng != nil {
		idx = d.rng.IntN(len(d.cards))
	}

	card := d.cards[idx]
	d.cards = append(d.cards[:idx], d.cards[idx+1:]...)
	return card, nil
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}
