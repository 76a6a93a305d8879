package tui

import (
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/hilo/internal/cards"
	"github.com/verte-zerg/hilo/internal/model"
	"github.com/verte-zerg/hilo/internal/session"
	"github.com/verte-zerg/hilo/internal/store"
)

func newTable(t *testing.T, st *store.Store, ranks ...cards.Rank) *Model {
	t.Helper()
	cfg := session.DefaultConfig()
	cfg.ShoeMode = cards.Finite
	cfg.Seed = 1
	sess, err := session.New(cfg)
	require.NoError(t, err)
	order := make([]cards.Card, len(ranks))
	for i, r := range ranks {
		order[i] = cards.Card{Rank: r, Suit: cards.Hearts}
	}
	sess.Shoe().Stack(order)
	log, _ := test.NewNullLogger()
	return NewModel(sess, st, log)
}

func press(m *Model, key string) tea.Cmd {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	_, cmd := m.Update(msg)
	return cmd
}

func TestEnterDealsOneRound(t *testing.T) {
	m := newTable(t, nil, cards.Ten, cards.King, cards.Ten, cards.Eight)
	assert.Contains(t, m.View(), "Press enter to deal")

	press(m, "enter")
	require.Len(t, m.Events(), 1)
	ev := m.Events()[0]
	assert.Equal(t, 20, ev.PlayerValue)
	assert.Equal(t, 1010, ev.ChipsAfter)
	assert.False(t, m.done)

	view := m.View()
	assert.Contains(t, view, "Player wins")
	assert.Contains(t, view, "stand on 20 (17 or more)")
	assert.Contains(t, view, "Another round?")
}

func TestDecliningClosesTableAndSavesRun(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "hilo.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	m := newTable(t, st, cards.Ten, cards.King, cards.Ten, cards.Eight)

	press(m, "enter")
	assert.Nil(t, press(m, "n"))
	assert.True(t, m.done)
	assert.False(t, m.sess.ShouldContinue())
	assert.Contains(t, m.View(), "Final Statistics")
	assert.NotNil(t, press(m, "x"))

	runs, err := st.ListRuns(context.Background(), model.StatsConfig{})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, model.ModeInteractive, runs[0].Mode)
	assert.Equal(t, 1010, runs[0].EndChips)
	rounds, err := st.ListRounds(context.Background(), runs[0].ID)
	require.NoError(t, err)
	assert.Len(t, rounds, 1)
}

func TestExhaustedShoeEndsTable(t *testing.T) {
	m := newTable(t, nil, cards.Ten, cards.King, cards.Ten, cards.Eight)
	press(m, "enter")
	press(m, "enter")
	assert.True(t, m.done)
	require.Error(t, m.Err())
	assert.ErrorIs(t, m.Err(), cards.ErrShoeExhausted)
	assert.Len(t, m.Events(), 1)
	assert.Contains(t, m.View(), "Table closed")
}

func TestCtrlCQuits(t *testing.T) {
	m := newTable(t, nil, cards.Ten, cards.King, cards.Ten, cards.Eight)
	assert.NotNil(t, press(m, "ctrl+c"))
	assert.True(t, m.done)
}
