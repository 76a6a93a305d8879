package blackjack

import (
	"fmt"

	"github.com/verte-zerg/hilo/internal/cards"
)

// DrawFunc deals the next card from the shoe.
type DrawFunc func() (cards.Card, error)

// Action is a player move.
type Action int

// Player moves.
const (
	Stand Action = iota
	Hit
)

func (a Action) String() string {
	switch a {
	case Stand:
		return "stand"
	case Hit:
		return "hit"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Decision is an action together with the rule that produced it.
type Decision struct {
	Action Action
	Value  int
	Reason string
}

// Strategy decides the player's next move.
type Strategy interface {
	Decide(value int, soft bool, dealerUp int) Decision
}

// BasicStrategy is the fixed hit/stand table: stand on 17+, hit on 11 or less,
// and on 12-16 hit only against a dealer upcard of 7 or higher.
type BasicStrategy struct {
	// HitSoft17 makes a soft 17 draw instead of standing.
	HitSoft17 bool
}

// Decide implements Strategy.
func (b BasicStrategy) Decide(value int, soft bool, dealerUp int) Decision {
	switch {
	case b.HitSoft17 && value == 17 && soft:
		return Decision{Action: Hit, Value: value, Reason: "soft 17"}
	case value >= 17:
		return Decision{Action: Stand, Value: value, Reason: "17 or more"}
	case value <= 11:
		return Decision{Action: Hit, Value: value, Reason: "11 or less"}
	case dealerUp >= 7:
		return Decision{Action: Hit, Value: value, Reason: "strong dealer card"}
	default:
		return Decision{Action: Stand, Value: value, Reason: "weak dealer card"}
	}
}

// UpcardValue is the dealer upcard as the strategy sees it: J/Q/K are 10, A is 11.
func UpcardValue(c cards.Card) int {
	return c.Rank.HardValue()
}

// PlayPlayer drives h with s until it stands or busts, returning each decision taken.
func PlayPlayer(h *Hand, dealerUp cards.Card, s Strategy, draw DrawFunc) ([]Decision, error) {
	up := UpcardValue(dealerUp)
	var decisions []Decision
	for !h.Finished() {
		d := s.Decide(h.Value(), h.IsSoft(), up)
		decisions = append(decisions, d)
		if d.Action == Stand {
			h.Stand()
			break
		}
		c, err := draw()
		if err != nil {
			return decisions, err
		}
		if err := h.AddCard(c); err != nil {
			return decisions, err
		}
	}
	return decisions, nil
}
