package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit int

const (
	Hearts Suit = iota
	Spades
	Clubs
	Diamonds
)

// Suits lists every suit in deck construction order
var Suits = []Suit{Hearts, Spades, Clubs, Diamonds}

// String returns the name of the suit (e.g. "Hearts")
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "Hearts"
	case Spades:
		return "Spades"
	case Clubs:
		return "Clubs"
	case Diamonds:
		return "Diamonds"
	default:
		return "?"
	}
}

// Symbol returns the single-glyph form of the suit
func (s Suit) Symbol() string {
	switch s {
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the display name of a rank: numbers for pip cards, words for
// court cards and the ace.
func (r Rank) String() string {
	switch r {
	case Jack:
		return "Jack"
	case Queen:
		return "Queen"
	case King:
		return "King"
	case Ace:
		return "Ace"
	}
	if r >= Two && r <= Ten {
		return fmt.Sprintf("%d", int(r))
	}
	return "?"
}

// Short returns the one or two character form of a rank ("2".."10", "J", "Q", "K", "A")
func (r Rank) Short() string {
	switch r {
	case Jack, Queen, King, Ace:
		return r.String()[:1]
	}
	return r.String()
}

// Value returns the base blackjack value of the rank. Aces count 11 here;
// demotion to 1 is the hand's concern.
func (r Rank) Value() int {
	switch {
	case r == Ace:
		return 11
	case r >= Jack:
		return 10
	default:
		return int(r)
	}
}

// Card represents a playing card
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the long form of a card (e.g. "Ace of Spades")
func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.Rank, c.Suit)
}

// Short returns the compact form of a card (e.g. "A♠")
func (c Card) Short() string {
	return c.Rank.Short() + c.Suit.Symbol()
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// ParseCard parses a compact card such as "Ah", "Td", "10s" or "kc".
func ParseCard(s string) (Card, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 2 {
		return Card{}, fmt.Errorf("invalid card %q", s)
	}

	rankPart, suitPart := s[:len(s)-1], s[len(s)-1:]

	var rank Rank
	switch rankPart {
	case "2", "3", "4", "5", "6", "7", "8", "9":
		rank = Rank(rankPart[0] - '0')
	case "t", "10":
		rank = Ten
	case "j":
		rank = Jack
	case "q":
		rank = Queen
	case "k":
		rank = King
	case "a":
		rank = Ace
	default:
		return Card{}, fmt.Errorf("invalid rank in card %q", s)
	}

	var suit Suit
	switch suitPart {
	case "h":
		suit = Hearts
	case "s":
		suit = Spades
	case "c":
		suit = Clubs
	case "d":
		suit = Diamonds
	default:
		return Card{}, fmt.Errorf("invalid suit in card %q", s)
	}

	return NewCard(suit, rank), nil
}

// ParseCards parses a whitespace separated list of compact cards
func ParseCards(s string) ([]Card, error) {
	fields := strings.Fields(s)
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		card, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// MustParseCards is like ParseCards but panics on error. Intended for tests.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}
