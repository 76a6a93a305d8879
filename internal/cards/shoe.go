package cards

import (
	"errors"
	"fmt"
	"strings"
)

// ErrShoeExhausted is returned when a non-reshuffling shoe has no cards left.
var ErrShoeExhausted = errors.New("shoe exhausted")

// DeckSize is the number of cards in one full deck.
const DeckSize = 52

// DefaultReshuffleBelow is the continuous-mode rebuild threshold.
const DefaultReshuffleBelow = 15

// Mode selects how a shoe is replenished.
type Mode string

// Shoe modes.
const (
	// Continuous rebuilds the shoe before a draw once fewer than the threshold remain.
	Continuous Mode = "continuous"
	// Finite never rebuilds; drawing from an empty shoe fails.
	Finite Mode = "finite"
	// PerRound is finite within a round; the session rebuilds it before every round.
	PerRound Mode = "per-round"
)

// ParseMode validates a mode name. An empty name is Continuous.
func ParseMode(name string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(name))) {
	case "", Continuous:
		return Continuous, nil
	case Finite:
		return Finite, nil
	case PerRound:
		return PerRound, nil
	default:
		return "", fmt.Errorf("unknown shoe mode %q (available: %s, %s, %s)", name, Continuous, Finite, PerRound)
	}
}

// Shuffler is the random source a shoe shuffles with. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Shoe is an ordered pool of cards with a running Hi-Lo count.
type Shoe struct {
	cards          []Card
	running        int
	mode           Mode
	reshuffleBelow int
	rnd            Shuffler
	builds         int
}

// NewShoe returns a freshly built shoe. The mode name is normalized with
// ParseMode and an unknown one falls back to Continuous. A non-positive
// threshold uses DefaultReshuffleBelow.
func NewShoe(mode Mode, reshuffleBelow int, rnd Shuffler) *Shoe {
	if reshuffleBelow <= 0 {
		reshuffleBelow = DefaultReshuffleBelow
	}
	parsed, err := ParseMode(string(mode))
	if err != nil {
		parsed = Continuous
	}
	mode = parsed
	s := &Shoe{mode: mode, reshuffleBelow: reshuffleBelow, rnd: rnd}
	s.Build()
	return s
}

// Build replaces the contents with all 52 cards in random order and resets the count.
func (s *Shoe) Build() {
	if cap(s.cards) < DeckSize {
		s.cards = make([]Card, 0, DeckSize)
	}
	s.cards = s.cards[:0]
	for _, rank := range AllRanks {
		for _, suit := range AllSuits {
			s.cards = append(s.cards, Card{Rank: rank, Suit: suit})
		}
	}
	s.rnd.Shuffle(len(s.cards), func(i, j int) {
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	})
	s.running = 0
	s.builds++
}

// Draw removes the top card and applies its Hi-Lo tag to the running count.
func (s *Shoe) Draw() (Card, error) {
	if s.mode == Continuous && len(s.cards) < s.reshuffleBelow {
		s.Build()
	}
	if len(s.cards) == 0 {
		return Card{}, ErrShoeExhausted
	}
	last := len(s.cards) - 1
	card := s.cards[last]
	s.cards = s.cards[:last]
	s.running += card.Rank.HiLo()
	return card, nil
}

// TrueCount is the running count per full deck remaining, with the deck divisor floored at one.
func (s *Shoe) TrueCount() float64 {
	decks := float64(len(s.cards)) / DeckSize
	if decks < 1 {
		decks = 1
	}
	return float64(s.running) / decks
}

// RunningCount returns the Hi-Lo running count.
func (s *Shoe) RunningCount() int {
	return s.running
}

// Remaining returns the number of undealt cards.
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// Mode returns the replenishment mode.
func (s *Shoe) Mode() Mode {
	return s.mode
}

// Reshuffles counts rebuilds after the initial one.
func (s *Shoe) Reshuffles() int {
	if s.builds == 0 {
		return 0
	}
	return s.builds - 1
}

// Peek returns the undealt cards, next card first.
func (s *Shoe) Peek() []Card {
	out := make([]Card, len(s.cards))
	for i := range s.cards {
		out[i] = s.cards[len(s.cards)-1-i]
	}
	return out
}

// Stack replaces the contents with order, next card first, and resets the count.
// Later draws still follow the shoe's mode once the stack runs low.
func (s *Shoe) Stack(order []Card) {
	s.cards = s.cards[:0]
	for i := len(order) - 1; i >= 0; i-- {
		s.cards = append(s.cards, order[i])
	}
	s.running = 0
}
