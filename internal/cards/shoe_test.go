package cards

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildHas52UniqueCards(t *testing.T) {
	s := NewShoe(Finite, 0, rand.New(rand.NewSource(1)))
	require.Equal(t, DeckSize, s.Remaining())
	seen := map[Card]struct{}{}
	for _, c := range s.Peek() {
		require.True(t, c.Valid())
		seen[c] = struct{}{}
	}
	assert.Len(t, seen, DeckSize)
	assert.Zero(t, s.RunningCount())
}

func TestFullDealReturnsCountToZero(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		s := NewShoe(Finite, 0, rand.New(rand.NewSource(seed)))
		for i := 0; i < DeckSize; i++ {
			_, err := s.Draw()
			require.NoError(t, err)
		}
		assert.Zero(t, s.RunningCount(), "seed %d", seed)
		assert.Zero(t, s.Remaining())
	}
}

func TestFiniteShoeExhausts(t *testing.T) {
	s := NewShoe(Finite, 0, rand.New(rand.NewSource(3)))
	for i := 0; i < DeckSize; i++ {
		_, err := s.Draw()
		require.NoError(t, err)
	}
	_, err := s.Draw()
	assert.ErrorIs(t, err, ErrShoeExhausted)
}

func TestContinuousShoeReshufflesBelowThreshold(t *testing.T) {
	s := NewShoe(Continuous, 15, rand.New(rand.NewSource(4)))
	for i := 0; i < DeckSize-14; i++ {
		_, err := s.Draw()
		require.NoError(t, err)
	}
	require.Equal(t, 14, s.Remaining())
	require.Zero(t, s.Reshuffles())

	card, err := s.Draw()
	require.NoError(t, err)
	assert.Equal(t, DeckSize-1, s.Remaining())
	assert.Equal(t, 1, s.Reshuffles())
	assert.Equal(t, card.Rank.HiLo(), s.RunningCount())
}

func TestContinuousShoeNeverExhausts(t *testing.T) {
	s := NewShoe(Continuous, 0, rand.New(rand.NewSource(5)))
	for i := 0; i < DeckSize*10; i++ {
		_, err := s.Draw()
		require.NoError(t, err)
	}
	assert.GreaterOrEqual(t, s.Remaining(), DefaultReshuffleBelow-1)
}

func TestTrueCount(t *testing.T) {
	s := NewShoe(Finite, 0, rand.New(rand.NewSource(6)))
	s.cards = s.cards[:26]
	s.running = -4
	// Half a deck left still divides by one.
	assert.InDelta(t, -4.0, s.TrueCount(), 1e-9)

	full := NewShoe(Finite, 0, rand.New(rand.NewSource(6)))
	full.cards = append(full.cards, full.cards...)
	full.running = -4
	assert.InDelta(t, -2.0, full.TrueCount(), 1e-9)

	s.cards = s.cards[:0]
	s.running = 3
	assert.InDelta(t, 3.0, s.TrueCount(), 1e-9)

	s.Build()
	s.running = 6
	assert.InDelta(t, 6.0, s.TrueCount(), 1e-9)
}

func TestTrueCountMatchesFormulaThroughDeal(t *testing.T) {
	s := NewShoe(Finite, 0, rand.New(rand.NewSource(7)))
	for s.Remaining() > 0 {
		decks := float64(s.Remaining()) / DeckSize
		if decks < 1 {
			decks = 1
		}
		assert.InDelta(t, float64(s.RunningCount())/decks, s.TrueCount(), 1e-9)
		_, err := s.Draw()
		require.NoError(t, err)
	}
	assert.InDelta(t, float64(s.RunningCount()), s.TrueCount(), 1e-9)
}

func TestStackDealsInOrder(t *testing.T) {
	s := NewShoe(Finite, 0, rand.New(rand.NewSource(8)))
	order := []Card{{Ace, Hearts}, {Two, Clubs}, {King, Spades}}
	s.Stack(order)
	for _, want := range order {
		got, err := s.Draw()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, -1, s.RunningCount())
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode(" Per-Round ")
	require.NoError(t, err)
	assert.Equal(t, PerRound, m)
	_, err = ParseMode("bogus")
	assert.Error(t, err)

	m, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, Continuous, m)
}

func TestNewShoeNormalizesMode(t *testing.T) {
	tests := []struct {
		in   Mode
		want Mode
	}{
		{"Continuous", Continuous},
		{" FINITE ", Finite},
		{"", Continuous},
		{"six-deck", Continuous},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			s := NewShoe(tt.in, 0, rand.New(rand.NewSource(9)))
			assert.Equal(t, tt.want, s.Mode())
		})
	}
}
