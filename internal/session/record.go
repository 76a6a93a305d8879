package session

import (
	"strings"
	"time"

	"github.com/verte-zerg/hilo/internal/cards"
	"github.com/verte-zerg/hilo/internal/model"
)

// Record flattens the event for storage.
func (ev RoundEvent) Record() model.RoundRecord {
	return model.RoundRecord{
		Round:       ev.Round,
		Bet:         ev.Bet,
		TrueCount:   ev.TrueCount,
		PlayerCards: joinCards(ev.PlayerCards),
		PlayerValue: ev.PlayerValue,
		DealerCards: joinCards(ev.DealerCards),
		DealerValue: ev.DealerValue,
		Outcome:     ev.OutcomeName,
		Payout:      ev.Payout,
		ChipsAfter:  ev.ChipsAfter,
	}
}

// Records flattens a list of events.
func Records(events []RoundEvent) []model.RoundRecord {
	out := make([]model.RoundRecord, len(events))
	for i, ev := range events {
		out[i] = ev.Record()
	}
	return out
}

// RunRecord describes the session as a stored run.
func (s *Session) RunRecord(mode string, startedAt, endedAt time.Time) model.RunStats {
	st := s.stats
	return model.RunStats{
		StartedAt:        startedAt,
		EndedAt:          endedAt,
		Mode:             mode,
		Policy:           s.wager.Name(),
		ShoeMode:         string(s.cfg.ShoeMode),
		Seed:             s.cfg.Seed,
		BaseBet:          s.cfg.BaseBet,
		PlayerHitSoft17:  s.cfg.PlayerHitSoft17,
		DealerHitSoft17:  s.cfg.DealerHitSoft17,
		PayoutMultiplier: s.cfg.PayoutMultiplier,
		StartChips:       st.StartChips,
		EndChips:         st.EndChips,
		PeakChips:        st.PeakChips,
		LowChips:         st.LowChips,
		Rounds:           st.Rounds,
		Wins:             st.Wins,
		Losses:           st.Losses,
		Pushes:           st.Pushes,
		PlayerBusts:      st.PlayerBusts,
		DealerBusts:      st.DealerBusts,
		TotalWagered:     st.TotalWagered,
	}
}

func joinCards(cs []cards.Card) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.Short()
	}
	return strings.Join(parts, " ")
}
