// Package cards models the playing cards and the counted shoe they are dealt from.
package cards

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidCard reports a rank or suit outside the standard 52-card domain.
var ErrInvalidCard = errors.New("invalid card")

// Suit is one of the four French suits.
type Suit uint8

// Suits in build order.
const (
	Hearts Suit = iota + 1
	Diamonds
	Clubs
	Spades
)

// Rank is a card rank from Two to Ace.
type Rank uint8

// Ranks in build order.
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

// AllSuits lists every suit.
var AllSuits = []Suit{Hearts, Diamonds, Clubs, Spades}

// AllRanks lists every rank.
var AllRanks = []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// Valid reports whether s is a known suit.
func (s Suit) Valid() bool {
	return s >= Hearts && s <= Spades
}

func (s Suit) String() string {
	switch s {
	case Hearts:
		return "Hearts"
	case Diamonds:
		return "Diamonds"
	case Clubs:
		return "Clubs"
	case Spades:
		return "Spades"
	default:
		return fmt.Sprintf("Suit(%d)", uint8(s))
	}
}

// Symbol returns the suit glyph.
func (s Suit) Symbol() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// Red reports whether the suit is printed in red.
func (s Suit) Red() bool {
	return s == Hearts || s == Diamonds
}

// Valid reports whether r is a known rank.
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

func (r Rank) String() string {
	switch r {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	}
	if r.Valid() {
		return strconv.Itoa(int(r))
	}
	return fmt.Sprintf("Rank(%d)", uint8(r))
}

// HardValue is the blackjack value of the rank with an Ace counted as 11.
// It panics on a rank outside the domain, which only a construction bug can produce.
func (r Rank) HardValue() int {
	switch {
	case r == Ace:
		return 11
	case r >= Ten && r <= King:
		return 10
	case r >= Two && r <= Nine:
		return int(r)
	default:
		panic(fmt.Errorf("%w: rank %d", ErrInvalidCard, uint8(r)))
	}
}

// HiLo is the Hi-Lo tag of the rank: +1 for 2-6, -1 for tens and aces, 0 for 7-9.
func (r Rank) HiLo() int {
	switch {
	case r >= Two && r <= Six:
		return 1
	case r >= Seven && r <= Nine:
		return 0
	case r >= Ten && r <= Ace:
		return -1
	default:
		panic(fmt.Errorf("%w: rank %d", ErrInvalidCard, uint8(r)))
	}
}

// Card is an immutable rank and suit pair.
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard validates rank and suit.
func NewCard(rank Rank, suit Suit) (Card, error) {
	if !rank.Valid() || !suit.Valid() {
		return Card{}, fmt.Errorf("%w: rank %d suit %d", ErrInvalidCard, uint8(rank), uint8(suit))
	}
	return Card{Rank: rank, Suit: suit}, nil
}

// Valid reports whether both rank and suit are in range.
func (c Card) Valid() bool {
	return c.Rank.Valid() && c.Suit.Valid()
}

func (c Card) String() string {
	return c.Rank.String() + " of " + c.Suit.String()
}

// Short renders the card as rank and suit glyph, e.g. "10♥".
func (c Card) Short() string {
	return c.Rank.String() + c.Suit.Symbol()
}

// MarshalText renders the card in its short form.
func (c Card) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: rank %d suit %d", ErrInvalidCard, uint8(c.Rank), uint8(c.Suit))
	}
	return []byte(c.Short()), nil
}
