package session

import (
	"github.com/shopspring/decimal"

	"github.com/verte-zerg/hilo/internal/blackjack"
)

// Stats aggregates the rounds of one session.
type Stats struct {
	Rounds       int `json:"rounds" yaml:"rounds"`
	Wins         int `json:"wins" yaml:"wins"`
	Losses       int `json:"losses" yaml:"losses"`
	Pushes       int `json:"pushes" yaml:"pushes"`
	PlayerBusts  int `json:"player_busts" yaml:"player_busts"`
	DealerBusts  int `json:"dealer_busts" yaml:"dealer_busts"`
	TotalWagered int `json:"total_wagered" yaml:"total_wagered"`
	StartChips   int `json:"start_chips" yaml:"start_chips"`
	EndChips     int `json:"end_chips" yaml:"end_chips"`
	PeakChips    int `json:"peak_chips" yaml:"peak_chips"`
	LowChips     int `json:"low_chips" yaml:"low_chips"`
	Reshuffles   int `json:"reshuffles" yaml:"reshuffles"`
}

func newStats(chips int) Stats {
	return Stats{StartChips: chips, EndChips: chips, PeakChips: chips, LowChips: chips}
}

func (s *Stats) record(ev RoundEvent) {
	s.Rounds++
	s.TotalWagered += ev.Bet
	switch {
	case ev.Outcome.IsWin():
		s.Wins++
	case ev.Outcome.IsLoss():
		s.Losses++
	case ev.Outcome == blackjack.Push:
		s.Pushes++
	}
	switch ev.Outcome {
	case blackjack.PlayerBust:
		s.PlayerBusts++
	case blackjack.DealerBust:
		s.DealerBusts++
	}
	s.EndChips = ev.ChipsAfter
	s.PeakChips = max(s.PeakChips, ev.ChipsAfter)
	s.LowChips = min(s.LowChips, ev.ChipsAfter)
	if ev.Reshuffled {
		s.Reshuffles++
	}
}

// AverageBet is the mean stake per round, rounded to cents.
func (s Stats) AverageBet() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return decimal.NewFromInt(int64(s.TotalWagered)).
		Div(decimal.NewFromInt(int64(s.Rounds))).
		Round(2).
		InexactFloat64()
}

// Net is the chip gain or loss over the session.
func (s Stats) Net() int {
	return s.EndChips - s.StartChips
}

// WinRate is wins over decided rounds, pushes excluded.
func (s Stats) WinRate() float64 {
	decided := s.Wins + s.Losses
	if decided == 0 {
		return 0
	}
	return float64(s.Wins) / float64(decided)
}
