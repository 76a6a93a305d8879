package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/verte-zerg/hilo/internal/cards"
)

func TestRenderFooterFormats(t *testing.T) {
	m := newTable(t, nil, cards.Ten, cards.King, cards.Ten, cards.Eight)
	m.hasLast = true
	m.lastNet = -40
	m.pastRuns = 3

	press(m, "enter")
	out := m.renderFooter()
	for _, want := range []string{"Round 1", "Chips 1010", "RC -3", "TC -3.00", "Shoe 0", "Last run -40", "3 runs"} {
		assert.Contains(t, out, want)
	}
}
