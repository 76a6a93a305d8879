package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/hilo/internal/cards"
)

func TestBuildCardTokensStyleBySuit(t *testing.T) {
	tokens := buildCardTokens([]cards.Card{
		{Rank: cards.Ten, Suit: cards.Hearts},
		{Rank: cards.Ace, Suit: cards.Spades},
	})
	require.Len(t, tokens, 2)
	assert.Equal(t, redCardStyle.Render("10♥"), tokens[0].s)
	assert.Equal(t, blackCardStyle.Render("A♠"), tokens[1].s)
	assert.Equal(t, 5, tokens[0].width)
	assert.Equal(t, 4, tokens[1].width)
}

func TestWrapTokens(t *testing.T) {
	tokens := []styledToken{{s: "aa", width: 2}, {s: "bb", width: 2}, {s: "cc", width: 2}}
	assert.Equal(t, "aa bb cc", wrapTokens(tokens, 0))
	assert.Equal(t, "aa bb cc", wrapTokens(tokens, 8))
	assert.Equal(t, "aa bb\ncc", wrapTokens(tokens, 5))
	assert.Equal(t, "aa\nbb\ncc", wrapTokens(tokens, 1))
	assert.Equal(t, 3, len(strings.Split(wrapTokens(tokens, 4), "\n")))
}
