package stats

import "github.com/verte-zerg/hilo/internal/model"

var (
	winOutcomes  = map[string]bool{"player_win": true, "dealer_bust": true}
	lossOutcomes = map[string]bool{"dealer_win": true, "player_bust": true}
)

// Streaks holds the longest consecutive win and loss runs of a session.
type Streaks struct {
	LongestWin  int
	LongestLoss int
}

// LongestStreaks scans rounds in order. A push leaves the current streak intact.
func LongestStreaks(rounds []model.RoundRecord) Streaks {
	var s Streaks
	win, loss := 0, 0
	for _, r := range rounds {
		switch {
		case winOutcomes[r.Outcome]:
			win++
			loss = 0
		case lossOutcomes[r.Outcome]:
			loss++
			win = 0
		}
		s.LongestWin = max(s.LongestWin, win)
		s.LongestLoss = max(s.LongestLoss, loss)
	}
	return s
}
