// Package model defines shared data structures.
package model

import "time"

// Run modes recorded with each saved run.
const (
	ModeBatch       = "batch"
	ModeInteractive = "interactive"
)

// Config defines simulation settings.
type Config struct {
	StartChips       int
	BaseBet          int
	Policy           string
	ShoeMode         string
	ReshuffleBelow   int
	PlayerHitSoft17  bool
	DealerHitSoft17  bool
	PayoutMultiplier int
	Seed             int64
	Rounds           int
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Policy      string
	Since       *time.Time
	Last        int
	CurveWindow int
	Run         string
}

// RunStats captures a finished session.
type RunStats struct {
	ID               int64
	UUID             string
	StartedAt        time.Time
	EndedAt          time.Time
	Mode             string
	Policy           string
	ShoeMode         string
	Seed             int64
	BaseBet          int
	PlayerHitSoft17  bool
	DealerHitSoft17  bool
	PayoutMultiplier int
	StartChips       int
	EndChips         int
	PeakChips        int
	LowChips         int
	Rounds           int
	Wins             int
	Losses           int
	Pushes           int
	PlayerBusts      int
	DealerBusts      int
	TotalWagered     int
}

// RoundRecord stores one round of a run.
type RoundRecord struct {
	Round       int
	Bet         int
	TrueCount   float64
	PlayerCards string
	PlayerValue int
	DealerCards string
	DealerValue int
	Outcome     string
	Payout      int
	ChipsAfter  int
}
