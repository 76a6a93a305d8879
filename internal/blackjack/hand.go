// Package blackjack implements hand valuation, the dealer and player decision
// rules, and round resolution.
package blackjack

import (
	"errors"
	"fmt"
	"strings"

	"github.com/verte-zerg/hilo/internal/cards"
)

// ErrHandFinished is returned when a card is added to a bust or stood hand.
var ErrHandFinished = errors.New("hand is finished")

// Bust is the highest non-busting total.
const Bust = 21

// Hand accumulates the cards of one party for one round.
type Hand struct {
	cards    []cards.Card
	value    int
	softAces int
	stood    bool
}

// NewHand returns a hand holding the given cards.
func NewHand(cs ...cards.Card) (*Hand, error) {
	h := &Hand{}
	for _, c := range cs {
		if err := h.AddCard(c); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// AddCard appends c and re-derives the value. Aces enter as 11 and are
// reduced to 1, one at a time, while the total is over 21.
func (h *Hand) AddCard(c cards.Card) error {
	if h.Finished() {
		return fmt.Errorf("add %s: %w", c, ErrHandFinished)
	}
	h.cards = append(h.cards, c)
	h.value += c.Rank.HardValue()
	if c.Rank == cards.Ace {
		h.softAces++
	}
	for h.value > Bust && h.softAces > 0 {
		h.value -= 10
		h.softAces--
	}
	return nil
}

// Value is the ace-adjusted total.
func (h *Hand) Value() int {
	return h.value
}

// SoftAces counts aces still valued at 11.
func (h *Hand) SoftAces() int {
	return h.softAces
}

// IsSoft reports whether an ace is currently counted as 11.
func (h *Hand) IsSoft() bool {
	return h.softAces > 0
}

// IsBust reports a total over 21.
func (h *Hand) IsBust() bool {
	return h.value > Bust
}

// Stand closes the hand.
func (h *Hand) Stand() {
	h.stood = true
}

// Finished reports whether the hand is bust or stood.
func (h *Hand) Finished() bool {
	return h.stood || h.IsBust()
}

// Len returns the number of cards held.
func (h *Hand) Len() int {
	return len(h.cards)
}

// Cards returns a copy of the held cards in deal order.
func (h *Hand) Cards() []cards.Card {
	out := make([]cards.Card, len(h.cards))
	copy(out, h.cards)
	return out
}

func (h *Hand) String() string {
	parts := make([]string, 0, len(h.cards))
	for _, c := range h.cards {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, ", ")
}
