package blackjack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/hilo/internal/cards"
)

func TestBasicStrategyDecide(t *testing.T) {
	tests := []struct {
		name      string
		hitSoft17 bool
		value     int
		soft      bool
		up        int
		want      Action
	}{
		{"16 vs king hits", false, 16, false, 10, Hit},
		{"12 vs four stands", false, 12, false, 4, Stand},
		{"12 vs seven hits", false, 12, false, 7, Hit},
		{"16 vs six stands", false, 16, false, 6, Stand},
		{"11 always hits", false, 11, false, 2, Hit},
		{"hard 17 stands", false, 17, false, 11, Stand},
		{"soft 17 stands by default", false, 17, true, 10, Stand},
		{"soft 17 hits when enabled", true, 17, true, 10, Hit},
		{"hard 17 stands when soft rule enabled", true, 17, false, 10, Stand},
		{"soft 18 stands when soft rule enabled", true, 18, true, 10, Stand},
		{"12 vs ace hits", false, 12, false, 11, Hit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := BasicStrategy{HitSoft17: tt.hitSoft17}.Decide(tt.value, tt.soft, tt.up)
			assert.Equal(t, tt.want, d.Action)
			assert.Equal(t, tt.value, d.Value)
			assert.NotEmpty(t, d.Reason)
		})
	}
}

func TestUpcardValue(t *testing.T) {
	assert.Equal(t, 10, UpcardValue(card(cards.King)))
	assert.Equal(t, 10, UpcardValue(card(cards.Jack)))
	assert.Equal(t, 11, UpcardValue(card(cards.Ace)))
	assert.Equal(t, 4, UpcardValue(card(cards.Four)))
}

func drawFrom(ranks ...cards.Rank) DrawFunc {
	i := 0
	return func() (cards.Card, error) {
		if i >= len(ranks) {
			return cards.Card{}, cards.ErrShoeExhausted
		}
		c := card(ranks[i])
		i++
		return c, nil
	}
}

func TestPlayPlayerHitsUntilStand(t *testing.T) {
	h := hand(t, cards.Two, cards.Three)
	decisions, err := PlayPlayer(h, card(cards.King), BasicStrategy{}, drawFrom(cards.Four, cards.Eight))
	require.NoError(t, err)
	require.Len(t, decisions, 3)
	assert.Equal(t, Hit, decisions[0].Action)
	assert.Equal(t, Hit, decisions[1].Action)
	assert.Equal(t, Stand, decisions[2].Action)
	assert.Equal(t, 17, h.Value())
	assert.True(t, h.Finished())
}

func TestPlayPlayerStopsOnBust(t *testing.T) {
	h := hand(t, cards.Ten, cards.Six)
	decisions, err := PlayPlayer(h, card(cards.Nine), BasicStrategy{}, drawFrom(cards.Queen))
	require.NoError(t, err)
	require.Len(t, decisions, 1)
	assert.True(t, h.IsBust())
}

func TestPlayPlayerPropagatesDrawError(t *testing.T) {
	h := hand(t, cards.Two, cards.Three)
	_, err := PlayPlayer(h, card(cards.Ten), BasicStrategy{}, drawFrom())
	assert.ErrorIs(t, err, cards.ErrShoeExhausted)
}
