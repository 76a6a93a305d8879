package wager

// Policy names.
const (
	AggressiveName   = "aggressive"
	ConservativeName = "conservative"
)

// Aggressive doubles into a favorable count and backs off to half the base bet
// when the count turns against the player.
type Aggressive struct{}

// Name implements Policy.
func (Aggressive) Name() string { return AggressiveName }

// Floor implements Policy.
func (Aggressive) Floor() int { return 10 }

// Size implements Policy.
func (a Aggressive) Size(in Input) int {
	switch {
	case in.TrueCount >= FavorableCount:
		return min(in.CurrentBet*2, in.Chips/3)
	case in.TrueCount <= UnfavorableCount:
		return max(in.BaseBet/2, a.Floor())
	default:
		return max(in.BaseBet, in.CurrentBet)
	}
}

// Conservative cuts the stake after a losing streak and only modestly presses
// a favorable count.
type Conservative struct{}

// LosingStreak is the streak length that triggers the conservative cut.
const LosingStreak = 5

// Name implements Policy.
func (Conservative) Name() string { return ConservativeName }

// Floor implements Policy.
func (Conservative) Floor() int { return 5 }

// Size implements Policy.
func (c Conservative) Size(in Input) int {
	switch {
	case in.LoseStreak >= LosingStreak:
		return max(in.BaseBet/2, c.Floor())
	case in.TrueCount >= FavorableCount:
		return min(in.BaseBet*3/2, in.Chips/4)
	case in.TrueCount <= UnfavorableCount:
		return max(in.BaseBet/3, c.Floor())
	default:
		return in.BaseBet
	}
}
