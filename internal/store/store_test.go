package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/hilo/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "hilo.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func sampleRun(i int, policy string) model.RunStats {
	start := time.Unix(0, 0).Add(time.Duration(i) * time.Minute).UTC()
	return model.RunStats{
		StartedAt:        start,
		EndedAt:          start.Add(10 * time.Second),
		Mode:             model.ModeBatch,
		Policy:           policy,
		ShoeMode:         "continuous",
		Seed:             int64(100 + i),
		BaseBet:          10,
		DealerHitSoft17:  true,
		PayoutMultiplier: 2,
		StartChips:       1000,
		EndChips:         990,
		PeakChips:        1010,
		LowChips:         990,
		Rounds:           2,
		Wins:             1,
		Losses:           1,
		TotalWagered:     30,
	}
}

func sampleRounds() []model.RoundRecord {
	return []model.RoundRecord{
		{Round: 1, Bet: 10, TrueCount: 0, PlayerCards: "10♣ K♣", PlayerValue: 20, DealerCards: "10♥ 8♥", DealerValue: 18, Outcome: "player_win", Payout: 20, ChipsAfter: 1010},
		{Round: 2, Bet: 20, TrueCount: 2.5, PlayerCards: "10♣ 6♣ K♦", PlayerValue: 26, DealerCards: "9♥ 8♥", DealerValue: 17, Outcome: "player_bust", ChipsAfter: 990},
	}
}

func TestInsertAndListRuns(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	saved, err := st.InsertRun(ctx, sampleRun(0, "aggressive"), sampleRounds())
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)
	assert.Len(t, saved.UUID, 36)

	_, err = st.InsertRun(ctx, sampleRun(1, "conservative"), nil)
	require.NoError(t, err)

	runs, err := st.ListRuns(ctx, model.StatsConfig{})
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, saved.ID, runs[0].ID)
	assert.Equal(t, saved.UUID, runs[0].UUID)
	assert.True(t, runs[0].DealerHitSoft17)
	assert.False(t, runs[0].PlayerHitSoft17)
	assert.Equal(t, int64(100), runs[0].Seed)
	assert.True(t, runs[0].StartedAt.Equal(saved.StartedAt))

	filtered, err := st.ListRuns(ctx, model.StatsConfig{Policy: "conservative"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "conservative", filtered[0].Policy)

	since := time.Unix(30, 0)
	recent, err := st.ListRuns(ctx, model.StatsConfig{Since: &since})
	require.NoError(t, err)
	require.Len(t, recent, 1)
}

func TestListRoundsAndOutcomes(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	saved, err := st.InsertRun(ctx, sampleRun(0, "aggressive"), sampleRounds())
	require.NoError(t, err)

	rounds, err := st.ListRounds(ctx, saved.ID)
	require.NoError(t, err)
	require.Len(t, rounds, 2)
	assert.Equal(t, sampleRounds(), rounds)

	counts, err := st.OutcomeCounts(ctx, []int64{saved.ID})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"player_win": 1, "player_bust": 1}, counts)
}

func TestGetRun(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	saved, err := st.InsertRun(ctx, sampleRun(0, "aggressive"), nil)
	require.NoError(t, err)

	byID, err := st.GetRun(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, saved.UUID, byID.UUID)

	byPrefix, err := st.GetRun(ctx, saved.UUID[:8])
	require.NoError(t, err)
	assert.Equal(t, saved.ID, byPrefix.ID)

	_, err = st.GetRun(ctx, "42")
	assert.ErrorIs(t, err, ErrRunNotFound)
}
