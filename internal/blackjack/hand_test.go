package blackjack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/hilo/internal/cards"
)

func card(r cards.Rank) cards.Card {
	return cards.Card{Rank: r, Suit: cards.Spades}
}

func hand(t *testing.T, ranks ...cards.Rank) *Hand {
	t.Helper()
	h := &Hand{}
	for _, r := range ranks {
		require.NoError(t, h.AddCard(card(r)))
	}
	return h
}

func TestAddCardAceSequence(t *testing.T) {
	h := &Hand{}
	var values []int
	for _, r := range []cards.Rank{cards.Ace, cards.Ace, cards.Nine} {
		require.NoError(t, h.AddCard(card(r)))
		values = append(values, h.Value())
	}
	assert.Equal(t, []int{11, 12, 21}, values)
	assert.Equal(t, 21, h.Value())
	assert.Equal(t, 1, h.SoftAces())
	assert.True(t, h.IsSoft())
}

func TestHandValues(t *testing.T) {
	tests := []struct {
		name  string
		ranks []cards.Rank
		value int
		soft  int
		bust  bool
	}{
		{"pair of tens", []cards.Rank{cards.Ten, cards.King}, 20, 0, false},
		{"blackjack", []cards.Rank{cards.Ace, cards.Queen}, 21, 1, false},
		{"soft 17", []cards.Rank{cards.Ace, cards.Six}, 17, 1, false},
		{"double ace", []cards.Rank{cards.Ace, cards.Ace}, 12, 1, false},
		{"ace rescued", []cards.Rank{cards.Ace, cards.Five, cards.Eight}, 14, 0, false},
		{"four aces", []cards.Rank{cards.Ace, cards.Ace, cards.Ace, cards.Ace}, 14, 1, false},
		{"hard bust", []cards.Rank{cards.Ten, cards.Five, cards.Eight}, 23, 0, true},
		{"second ace reduced by king", []cards.Rank{cards.Ace, cards.Ace, cards.Nine, cards.King}, 21, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := hand(t, tt.ranks...)
			assert.Equal(t, tt.value, h.Value())
			assert.Equal(t, tt.soft, h.SoftAces())
			assert.Equal(t, tt.bust, h.IsBust())
		})
	}
}

func TestAceReductionInvariant(t *testing.T) {
	for _, first := range cards.AllRanks {
		for _, second := range cards.AllRanks {
			for _, third := range cards.AllRanks {
				h := &Hand{}
				for _, r := range []cards.Rank{first, second, third} {
					if h.Finished() {
						break
					}
					require.NoError(t, h.AddCard(card(r)))
					require.True(t, h.Value() <= Bust || h.SoftAces() == 0)
					require.Positive(t, h.Value())
				}
			}
		}
	}
}

func TestFinishedHandRejectsCards(t *testing.T) {
	h := hand(t, cards.King, cards.Queen, cards.Five)
	require.True(t, h.IsBust())
	assert.ErrorIs(t, h.AddCard(card(cards.Two)), ErrHandFinished)

	s := hand(t, cards.Ten, cards.Seven)
	s.Stand()
	assert.ErrorIs(t, s.AddCard(card(cards.Two)), ErrHandFinished)
	assert.Equal(t, 2, s.Len())
}

func TestHandString(t *testing.T) {
	h := hand(t, cards.Ace, cards.Ten)
	assert.Equal(t, "A of Spades, 10 of Spades", h.String())
}
