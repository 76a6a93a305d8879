// Package session runs rounds of blackjack against a shoe, a strategy, and a
// wager policy, and keeps the resulting bankroll and statistics.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/verte-zerg/hilo/internal/blackjack"
	"github.com/verte-zerg/hilo/internal/cards"
	"github.com/verte-zerg/hilo/internal/rng"
	"github.com/verte-zerg/hilo/internal/wager"
)

var (
	// ErrNoChips is returned when a round is requested with an empty bankroll.
	ErrNoChips = errors.New("no chips left to bet")
	// ErrHalted is returned after a fatal round error stopped the session.
	ErrHalted = errors.New("session halted")
)

// Config holds the table rules and starting bankroll.
type Config struct {
	StartChips       int
	BaseBet          int
	PayoutMultiplier int
	ShoeMode         cards.Mode
	ReshuffleBelow   int
	PlayerHitSoft17  bool
	DealerHitSoft17  bool
	Seed             int64
}

// DefaultConfig is a 1000-chip bankroll, 10-chip base bet, continuous shoe.
func DefaultConfig() Config {
	return Config{
		StartChips:       1000,
		BaseBet:          10,
		PayoutMultiplier: blackjack.DefaultPayoutMultiplier,
		ShoeMode:         cards.Continuous,
		ReshuffleBelow:   cards.DefaultReshuffleBelow,
	}
}

// Validate checks the configuration ranges.
func (c Config) Validate() error {
	if c.StartChips <= 0 {
		return fmt.Errorf("start chips must be > 0")
	}
	if c.BaseBet <= 0 {
		return fmt.Errorf("base bet must be > 0")
	}
	if c.PayoutMultiplier < 1 {
		return fmt.Errorf("payout multiplier must be >= 1")
	}
	if c.ReshuffleBelow < 4 {
		return fmt.Errorf("reshuffle threshold must be >= 4")
	}
	if _, err := cards.ParseMode(string(c.ShoeMode)); err != nil {
		return err
	}
	return nil
}

// Option customizes a Session.
type Option func(*Session)

// WithWager sets the bet-sizing policy.
func WithWager(p wager.Policy) Option {
	return func(s *Session) { s.wager = p }
}

// WithStrategy replaces the player decision rule.
func WithStrategy(st blackjack.Strategy) Option {
	return func(s *Session) { s.strategy = st }
}

// WithDealer replaces the dealer drawing rule.
func WithDealer(d blackjack.DealerPolicy) Option {
	return func(s *Session) { s.dealer = d }
}

// WithTermination sets the continuation policy.
func WithTermination(t TerminationPolicy) Option {
	return func(s *Session) { s.termination = t }
}

// WithSink sets where round events are published.
func WithSink(sink Sink) Option {
	return func(s *Session) { s.sink = sink }
}

// WithShuffler overrides the random source built from Config.Seed.
func WithShuffler(r cards.Shuffler) Option {
	return func(s *Session) { s.rnd = r }
}

// Session owns the shoe, the player, and the statistics for a run of rounds.
type Session struct {
	cfg         Config
	shoe        *cards.Shoe
	rnd         cards.Shuffler
	player      Player
	stats       Stats
	wager       wager.Policy
	strategy    blackjack.Strategy
	dealer      blackjack.DealerPolicy
	termination TerminationPolicy
	sink        Sink

	round   int
	stopped bool
	halted  bool
}

// New builds a session. Without options it bets aggressively, plays basic
// strategy, and stops only when the bankroll is gone.
func New(cfg Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session config: %w", err)
	}
	mode, err := cards.ParseMode(string(cfg.ShoeMode))
	if err != nil {
		return nil, fmt.Errorf("invalid session config: %w", err)
	}
	cfg.ShoeMode = mode
	s := &Session{
		cfg:         cfg,
		player:      newPlayer(cfg.StartChips, cfg.BaseBet),
		stats:       newStats(cfg.StartChips),
		wager:       wager.Aggressive{},
		strategy:    blackjack.BasicStrategy{HitSoft17: cfg.PlayerHitSoft17},
		dealer:      blackjack.DealerPolicy{HitSoft17: cfg.DealerHitSoft17},
		termination: BankrollExhausted(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rnd == nil {
		s.cfg.Seed = rng.Resolve(cfg.Seed)
		s.rnd = rng.New(s.cfg.Seed)
	}
	s.shoe = cards.NewShoe(cfg.ShoeMode, cfg.ReshuffleBelow, s.rnd)
	return s, nil
}

// Shoe exposes the session's shoe.
func (s *Session) Shoe() *cards.Shoe {
	return s.shoe
}

// Player returns a copy of the bankroll state.
func (s *Session) Player() Player {
	return s.player
}

// Stats returns a copy of the aggregated statistics.
func (s *Session) Stats() Stats {
	return s.stats
}

// Config returns the session configuration.
func (s *Session) Config() Config {
	return s.cfg
}

// WagerPolicy returns the bet-sizing policy in use.
func (s *Session) WagerPolicy() wager.Policy {
	return s.wager
}

// Stop ends the session after the current round. Interactive drivers call it
// when the user declines another round.
func (s *Session) Stop() {
	s.stopped = true
}

// ShouldContinue reports whether another round may be played.
func (s *Session) ShouldContinue() bool {
	if s.stopped || s.halted || s.player.Chips <= 0 {
		return false
	}
	return s.termination.Continue(Snapshot{Rounds: s.round, Chips: s.player.Chips})
}

// PlayRound plays one complete round: bet, deal, player turn, dealer turn,
// resolution. The event is published to the sink before it is returned.
func (s *Session) PlayRound(ctx context.Context) (RoundEvent, error) {
	if s.halted {
		return RoundEvent{}, ErrHalted
	}
	if s.player.Chips <= 0 {
		return RoundEvent{}, ErrNoChips
	}

	reshufflesBefore := s.shoe.Reshuffles()
	if s.shoe.Mode() == cards.PerRound && s.round > 0 {
		s.shoe.Build()
	}

	trueCount := roundCount(s.shoe.TrueCount())
	bet := wager.Bet(s.wager, wager.Input{
		TrueCount:  trueCount,
		WinStreak:  s.player.WinStreak,
		LoseStreak: s.player.LoseStreak,
		Chips:      s.player.Chips,
		BaseBet:    s.player.BaseBet,
		CurrentBet: s.player.CurrentBet,
	})
	s.player.place(bet)

	ev, err := s.deal()
	if err != nil {
		s.player.refund()
		s.halted = true
		return RoundEvent{}, fmt.Errorf("round %d: %w", s.round+1, err)
	}

	s.round++
	ev.Round = s.round
	ev.Bet = bet
	ev.TrueCount = trueCount
	ev.Payout = blackjack.Payout(ev.Outcome, bet, s.cfg.PayoutMultiplier)
	s.player.settle(ev.Outcome, ev.Payout)
	ev.ChipsAfter = s.player.Chips
	ev.WinStreak = s.player.WinStreak
	ev.LoseStreak = s.player.LoseStreak
	ev.RunningCount = s.shoe.RunningCount()
	ev.Reshuffled = s.shoe.Mode() == cards.Continuous && s.shoe.Reshuffles() > reshufflesBefore
	ev.BankrollExhausted = s.player.Chips <= 0
	s.stats.record(ev)

	if s.sink != nil {
		if err := s.sink.Publish(ctx, ev); err != nil {
			return ev, fmt.Errorf("publish round %d: %w", ev.Round, err)
		}
	}
	return ev, nil
}

// deal runs the card-handling part of a round on a stake already placed.
func (s *Session) deal() (RoundEvent, error) {
	player := &blackjack.Hand{}
	dealer := &blackjack.Hand{}
	for _, h := range []*blackjack.Hand{player, player, dealer, dealer} {
		c, err := s.shoe.Draw()
		if err != nil {
			return RoundEvent{}, err
		}
		if err := h.AddCard(c); err != nil {
			return RoundEvent{}, err
		}
	}
	upcard := dealer.Cards()[0]

	decisions, err := blackjack.PlayPlayer(player, upcard, s.strategy, s.shoe.Draw)
	if err != nil {
		return RoundEvent{}, err
	}

	var outcome blackjack.Outcome
	dealerPlayed := false
	if player.IsBust() {
		outcome, err = blackjack.Resolve(player, nil)
	} else {
		if err := s.dealer.Play(dealer, s.shoe.Draw); err != nil {
			return RoundEvent{}, err
		}
		dealerPlayed = true
		outcome, err = blackjack.Resolve(player, dealer)
	}
	if err != nil {
		return RoundEvent{}, err
	}

	return RoundEvent{
		PlayerCards:  player.Cards(),
		PlayerValue:  player.Value(),
		Decisions:    decisions,
		DealerCards:  dealer.Cards(),
		DealerValue:  dealer.Value(),
		DealerPlayed: dealerPlayed,
		Outcome:      outcome,
		OutcomeName:  outcome.String(),
	}, nil
}

// Run plays rounds until the termination policy, Stop, or ctx ends the session.
func (s *Session) Run(ctx context.Context) (Stats, error) {
	for s.ShouldContinue() {
		if err := ctx.Err(); err != nil {
			return s.stats, err
		}
		if _, err := s.PlayRound(ctx); err != nil {
			return s.stats, err
		}
	}
	return s.stats, nil
}

// roundCount rounds the true count to two decimals before it is used for sizing.
func roundCount(tc float64) float64 {
	return decimal.NewFromFloat(tc).Round(2).InexactFloat64()
}
