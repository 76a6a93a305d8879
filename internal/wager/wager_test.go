package wager

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggressiveSize(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want int
	}{
		{"favorable doubles current", Input{TrueCount: 2.5, Chips: 300, BaseBet: 10, CurrentBet: 10}, 20},
		{"favorable capped at a third", Input{TrueCount: 3, Chips: 90, BaseBet: 10, CurrentBet: 40}, 30},
		{"unfavorable halves base with floor", Input{TrueCount: 0, Chips: 300, BaseBet: 10, CurrentBet: 40}, 10},
		{"unfavorable halves large base", Input{TrueCount: -1.5, Chips: 300, BaseBet: 50, CurrentBet: 40}, 25},
		{"neutral holds larger", Input{TrueCount: 1, Chips: 300, BaseBet: 10, CurrentBet: 40}, 40},
		{"neutral restores base", Input{TrueCount: 1.99, Chips: 300, BaseBet: 25, CurrentBet: 10}, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Aggressive{}.Size(tt.in))
		})
	}
}

func TestConservativeSize(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want int
	}{
		{"losing streak halves base", Input{TrueCount: 5, LoseStreak: 5, Chips: 300, BaseBet: 30}, 15},
		{"losing streak floor", Input{TrueCount: 5, LoseStreak: 7, Chips: 300, BaseBet: 6}, 5},
		{"favorable one and a half", Input{TrueCount: 2, Chips: 300, BaseBet: 10}, 15},
		{"favorable capped at a quarter", Input{TrueCount: 4, Chips: 40, BaseBet: 20}, 10},
		{"unfavorable third of base", Input{TrueCount: -2, Chips: 300, BaseBet: 30}, 10},
		{"unfavorable floor", Input{TrueCount: 0, Chips: 300, BaseBet: 10}, 5},
		{"neutral base", Input{TrueCount: 0.5, LoseStreak: 4, Chips: 300, BaseBet: 10}, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Conservative{}.Size(tt.in))
		})
	}
}

func TestBetClampsToChips(t *testing.T) {
	assert.Equal(t, 20, Bet(Aggressive{}, Input{TrueCount: 2.5, Chips: 300, BaseBet: 10, CurrentBet: 10}))
	assert.Equal(t, 7, Bet(Aggressive{}, Input{TrueCount: 0, Chips: 7, BaseBet: 10, CurrentBet: 10}))
	assert.Equal(t, 2, Bet(Aggressive{}, Input{TrueCount: 3, Chips: 2, BaseBet: 10, CurrentBet: 10}))
	assert.Zero(t, Bet(Conservative{}, Input{Chips: 0, BaseBet: 10}))
}

func TestBetRaisesFavorableCapToFloor(t *testing.T) {
	tests := []struct {
		name string
		p    Policy
		in   Input
		want int
	}{
		{"aggressive third below floor", Aggressive{}, Input{TrueCount: 3, Chips: 29, BaseBet: 10, CurrentBet: 10}, 10},
		{"conservative quarter below floor", Conservative{}, Input{TrueCount: 3, Chips: 19, BaseBet: 10}, 5},
		{"aggressive bankroll below floor", Aggressive{}, Input{TrueCount: 3, Chips: 8, BaseBet: 10, CurrentBet: 10}, 8},
		{"conservative bankroll below floor", Conservative{}, Input{TrueCount: 3, Chips: 3, BaseBet: 10}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Bet(tt.p, tt.in))
		})
	}
}

func TestBetWithinChipsAndFloor(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))
	for _, p := range []Policy{Aggressive{}, Conservative{}} {
		for i := 0; i < 2000; i++ {
			in := Input{
				TrueCount:  rnd.Float64()*12 - 6,
				LoseStreak: rnd.Intn(9),
				WinStreak:  rnd.Intn(9),
				Chips:      1 + rnd.Intn(5000),
				BaseBet:    1 + rnd.Intn(50),
				CurrentBet: 1 + rnd.Intn(200),
			}
			bet := Bet(p, in)
			require.LessOrEqual(t, bet, in.Chips, "%s %+v", p.Name(), in)
			require.GreaterOrEqual(t, bet, min(p.Floor(), in.Chips), "%s %+v", p.Name(), in)
		}
	}
}

func TestByName(t *testing.T) {
	p, err := ByName(" Conservative")
	require.NoError(t, err)
	assert.Equal(t, ConservativeName, p.Name())

	_, err = ByName("martingale")
	assert.Error(t, err)
}
