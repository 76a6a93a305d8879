// Package wager sizes the player's stake from the count, streaks, and bankroll.
package wager

import (
	"fmt"
	"strings"
)

// Favorable and unfavorable true-count thresholds shared by the policies.
const (
	FavorableCount   = 2.0
	UnfavorableCount = 0.0
)

// Input is everything a policy may look at when sizing the next bet.
type Input struct {
	TrueCount  float64
	WinStreak  int
	LoseStreak int
	Chips      int
	BaseBet    int
	CurrentBet int
}

// Policy computes an unclamped bet size.
type Policy interface {
	Name() string
	// Floor is the smallest bet the policy sizes to when chips allow it.
	Floor() int
	Size(in Input) int
}

// Bet sizes the next stake with p, raises it to the policy floor, and clamps
// it to the available chips. A bankroll below the floor is staked in full.
func Bet(p Policy, in Input) int {
	if in.Chips <= 0 {
		return 0
	}
	bet := max(p.Size(in), min(max(p.Floor(), 1), in.Chips))
	if bet > in.Chips {
		bet = in.Chips
	}
	return bet
}

// Names lists the registered policy names.
func Names() []string {
	return []string{AggressiveName, ConservativeName}
}

// ByName returns the policy registered under name.
func ByName(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case AggressiveName:
		return Aggressive{}, nil
	case ConservativeName:
		return Conservative{}, nil
	default:
		return nil, fmt.Errorf("unknown wager policy %q (available: %s)", name, strings.Join(Names(), ", "))
	}
}
