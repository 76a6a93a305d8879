package session

import (
	"context"
	"errors"

	"github.com/verte-zerg/hilo/internal/blackjack"
	"github.com/verte-zerg/hilo/internal/cards"
)

// RoundEvent describes one finished round.
type RoundEvent struct {
	Round             int                  `json:"round" yaml:"round"`
	Bet               int                  `json:"bet" yaml:"bet"`
	TrueCount         float64              `json:"true_count" yaml:"true_count"`
	RunningCount      int                  `json:"running_count" yaml:"running_count"`
	PlayerCards       []cards.Card         `json:"player_cards" yaml:"player_cards"`
	PlayerValue       int                  `json:"player_value" yaml:"player_value"`
	Decisions         []blackjack.Decision `json:"-" yaml:"-"`
	DealerCards       []cards.Card         `json:"dealer_cards" yaml:"dealer_cards"`
	DealerValue       int                  `json:"dealer_value" yaml:"dealer_value"`
	DealerPlayed      bool                 `json:"dealer_played" yaml:"dealer_played"`
	Outcome           blackjack.Outcome    `json:"-" yaml:"-"`
	OutcomeName       string               `json:"outcome" yaml:"outcome"`
	Payout            int                  `json:"payout" yaml:"payout"`
	ChipsAfter        int                  `json:"chips_after" yaml:"chips_after"`
	WinStreak         int                  `json:"win_streak" yaml:"win_streak"`
	LoseStreak        int                  `json:"lose_streak" yaml:"lose_streak"`
	Reshuffled        bool                 `json:"reshuffled" yaml:"reshuffled"`
	BankrollExhausted bool                 `json:"bankroll_exhausted" yaml:"bankroll_exhausted"`
}

// Sink receives round events as they are resolved.
type Sink interface {
	Publish(ctx context.Context, ev RoundEvent) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, ev RoundEvent) error

// Publish implements Sink.
func (f SinkFunc) Publish(ctx context.Context, ev RoundEvent) error {
	return f(ctx, ev)
}

// Sinks fans an event out to every sink and joins their errors.
func Sinks(sinks ...Sink) Sink {
	return SinkFunc(func(ctx context.Context, ev RoundEvent) error {
		var errs []error
		for _, s := range sinks {
			if s == nil {
				continue
			}
			if err := s.Publish(ctx, ev); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}

// Collector keeps every published event in memory.
type Collector struct {
	Events []RoundEvent
}

// Publish implements Sink.
func (c *Collector) Publish(_ context.Context, ev RoundEvent) error {
	c.Events = append(c.Events, ev)
	return nil
}

// Chips returns the bankroll after each collected round.
func (c *Collector) Chips() []int {
	out := make([]int, len(c.Events))
	for i, ev := range c.Events {
		out[i] = ev.ChipsAfter
	}
	return out
}
