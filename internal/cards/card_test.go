package cards

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankValues(t *testing.T) {
	tests := []struct {
		rank Rank
		hard int
		tag  int
	}{
		{Two, 2, 1},
		{Six, 6, 1},
		{Seven, 7, 0},
		{Nine, 9, 0},
		{Ten, 10, -1},
		{Jack, 10, -1},
		{Queen, 10, -1},
		{King, 10, -1},
		{Ace, 11, -1},
	}
	for _, tt := range tests {
		t.Run(tt.rank.String(), func(t *testing.T) {
			assert.Equal(t, tt.hard, tt.rank.HardValue())
			assert.Equal(t, tt.tag, tt.rank.HiLo())
		})
	}
}

func TestNewCardRejectsOutOfDomain(t *testing.T) {
	_, err := NewCard(Rank(1), Hearts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidCard))

	_, err = NewCard(Ace, Suit(9))
	assert.ErrorIs(t, err, ErrInvalidCard)

	c, err := NewCard(Queen, Spades)
	require.NoError(t, err)
	assert.Equal(t, "Q of Spades", c.String())
	assert.Equal(t, "Q♠", c.Short())
}

func TestInvalidRankValuationPanics(t *testing.T) {
	assert.Panics(t, func() { Rank(0).HardValue() })
	assert.Panics(t, func() { Rank(15).HiLo() })
}
