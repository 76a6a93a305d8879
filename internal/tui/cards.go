package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/hilo/internal/cards"
)

type styledToken struct {
	s     string
	width int
}

func buildCardTokens(cs []cards.Card) []styledToken {
	out := make([]styledToken, 0, len(cs))
	for _, c := range cs {
		label := c.Short()
		style := blackCardStyle
		if c.Suit.Red() {
			style = redCardStyle
		}
		out = append(out, styledToken{
			s:     style.Render(label),
			width: runewidth.StringWidth(label) + cardStyleFrame,
		})
	}
	return out
}

func renderTokens(tokens []styledToken) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.s
	}
	return strings.Join(parts, " ")
}

// wrapTokens lays tokens out with single spaces, starting a new line before
// any token that would cross width. A token wider than width sits alone.
func wrapTokens(tokens []styledToken, width int) string {
	if width <= 0 {
		return renderTokens(tokens)
	}
	var out strings.Builder
	line := make([]styledToken, 0, len(tokens))
	lineWidth := 0
	for _, t := range tokens {
		next := t.width
		if len(line) > 0 {
			next++
		}
		if lineWidth+next > width && len(line) > 0 {
			out.WriteString(renderTokens(line))
			out.WriteRune('\n')
			line = line[:0]
			lineWidth = 0
			next = t.width
		}
		line = append(line, t)
		lineWidth += next
	}
	out.WriteString(renderTokens(line))
	return out.String()
}
