package logging

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/hilo/internal/session"
)

// RoundSink logs every round at debug level and notable rounds at info.
func RoundSink(log logrus.FieldLogger) session.Sink {
	return session.SinkFunc(func(_ context.Context, ev session.RoundEvent) error {
		entry := log.WithFields(logrus.Fields{
			"round":        ev.Round,
			"bet":          ev.Bet,
			"true_count":   ev.TrueCount,
			"player_value": ev.PlayerValue,
			"dealer_value": ev.DealerValue,
			"outcome":      ev.OutcomeName,
			"chips":        ev.ChipsAfter,
		})
		entry.Debug("round resolved")
		if ev.Reshuffled {
			entry.Info("shoe reshuffled")
		}
		if ev.BankrollExhausted {
			entry.Info("bankroll exhausted")
		}
		return nil
	})
}
