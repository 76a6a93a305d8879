// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/hilo/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrRunNotFound is returned when a run lookup matches nothing.
var ErrRunNotFound = errors.New("run not found")

// Store wraps SQLite access for run history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			uuid TEXT NOT NULL UNIQUE,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			mode TEXT NOT NULL,
			policy TEXT NOT NULL,
			shoe_mode TEXT NOT NULL,
			seed INTEGER NOT NULL,
			base_bet INTEGER NOT NULL,
			player_hit_soft17 INTEGER NOT NULL,
			dealer_hit_soft17 INTEGER NOT NULL,
			payout_multiplier INTEGER NOT NULL,
			start_chips INTEGER NOT NULL,
			end_chips INTEGER NOT NULL,
			peak_chips INTEGER NOT NULL,
			low_chips INTEGER NOT NULL,
			rounds INTEGER NOT NULL,
			wins INTEGER NOT NULL,
			losses INTEGER NOT NULL,
			pushes INTEGER NOT NULL,
			player_busts INTEGER NOT NULL,
			dealer_busts INTEGER NOT NULL,
			total_wagered INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS run_rounds (
			run_id INTEGER NOT NULL,
			round INTEGER NOT NULL,
			bet INTEGER NOT NULL,
			true_count REAL NOT NULL,
			player_cards TEXT NOT NULL,
			player_value INTEGER NOT NULL,
			dealer_cards TEXT NOT NULL,
			dealer_value INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			payout INTEGER NOT NULL,
			chips_after INTEGER NOT NULL,
			PRIMARY KEY (run_id, round)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ended_at ON runs(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_policy ON runs(policy);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun stores a finished run and its rounds. An empty UUID is generated.
func (s *Store) InsertRun(ctx context.Context, run model.RunStats, rounds []model.RoundRecord) (_ model.RunStats, err error) {
	if run.UUID == "" {
		run.UUID = uuid.NewString()
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return run, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (uuid, started_at, ended_at, mode, policy, shoe_mode, seed, base_bet,
			player_hit_soft17, dealer_hit_soft17, payout_multiplier, start_chips, end_chips, peak_chips, low_chips,
			rounds, wins, losses, pushes, player_busts, dealer_busts, total_wagered)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.UUID,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.EndedAt.UTC().Format(time.RFC3339Nano),
		run.Mode,
		run.Policy,
		run.ShoeMode,
		run.Seed,
		run.BaseBet,
		run.PlayerHitSoft17,
		run.DealerHitSoft17,
		run.PayoutMultiplier,
		run.StartChips,
		run.EndChips,
		run.PeakChips,
		run.LowChips,
		run.Rounds,
		run.Wins,
		run.Losses,
		run.Pushes,
		run.PlayerBusts,
		run.DealerBusts,
		run.TotalWagered,
	)
	if err != nil {
		return run, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return run, err
	}

	if len(rounds) > 0 {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO run_rounds (run_id, round, bet, true_count, player_cards, player_value, dealer_cards, dealer_value, outcome, payout, chips_after)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return run, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, r := range rounds {
			if _, err := stmt.ExecContext(ctx, id, r.Round, r.Bet, r.TrueCount, r.PlayerCards, r.PlayerValue,
				r.DealerCards, r.DealerValue, r.Outcome, r.Payout, r.ChipsAfter); err != nil {
				return run, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return run, err
	}
	run.ID = id
	return run, nil
}

const runColumns = `id, uuid, started_at, ended_at, mode, policy, shoe_mode, seed, base_bet,
	player_hit_soft17, dealer_hit_soft17, payout_multiplier, start_chips, end_chips, peak_chips, low_chips,
	rounds, wins, losses, pushes, player_busts, dealer_busts, total_wagered`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (model.RunStats, error) {
	var run model.RunStats
	var startedAt, endedAt string
	if err := row.Scan(&run.ID, &run.UUID, &startedAt, &endedAt, &run.Mode, &run.Policy, &run.ShoeMode, &run.Seed,
		&run.BaseBet, &run.PlayerHitSoft17, &run.DealerHitSoft17, &run.PayoutMultiplier, &run.StartChips,
		&run.EndChips, &run.PeakChips, &run.LowChips, &run.Rounds, &run.Wins, &run.Losses, &run.Pushes,
		&run.PlayerBusts, &run.DealerBusts, &run.TotalWagered); err != nil {
		return run, err
	}
	var err error
	if run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return run, err
	}
	if run.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
		return run, err
	}
	return run, nil
}

// ListRuns returns runs filtered by stats config, oldest first.
func (s *Store) ListRuns(ctx context.Context, cfg model.StatsConfig) ([]model.RunStats, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Policy != "" {
		clauses = append(clauses, "policy = ?")
		args = append(args, cfg.Policy)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.UTC().Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT %s
		FROM runs
		WHERE %s
		ORDER BY ended_at ASC, id ASC`, runColumns, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []model.RunStats
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// GetRun looks a run up by numeric id or UUID (a unique UUID prefix is enough).
func (s *Store) GetRun(ctx context.Context, ref string) (model.RunStats, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.RunStats{}, ErrRunNotFound
	}
	var row *sql.Row
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		row = s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	} else {
		row = s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE uuid LIKE ? || '%' ORDER BY id DESC LIMIT 1`, ref)
	}
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.RunStats{}, fmt.Errorf("%w: %s", ErrRunNotFound, ref)
	}
	return run, err
}

// ListRounds returns the rounds of a run in play order.
func (s *Store) ListRounds(ctx context.Context, runID int64) ([]model.RoundRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT round, bet, true_count, player_cards, player_value, dealer_cards, dealer_value, outcome, payout, chips_after
		FROM run_rounds
		WHERE run_id = ?
		ORDER BY round ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.RoundRecord
	for rows.Next() {
		var r model.RoundRecord
		if err := rows.Scan(&r.Round, &r.Bet, &r.TrueCount, &r.PlayerCards, &r.PlayerValue,
			&r.DealerCards, &r.DealerValue, &r.Outcome, &r.Payout, &r.ChipsAfter); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// OutcomeCounts tallies outcomes across the given runs.
func (s *Store) OutcomeCounts(ctx context.Context, runIDs []int64) (map[string]int, error) {
	if len(runIDs) == 0 {
		return map[string]int{}, nil
	}
	placeholders := make([]string, len(runIDs))
	args := make([]any, len(runIDs))
	for i, id := range runIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT outcome, COUNT(*)
		FROM run_rounds
		WHERE run_id IN (%s)
		GROUP BY outcome`, strings.Join(placeholders, ","))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	result := map[string]int{}
	for rows.Next() {
		var outcome string
		var n int
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, err
		}
		result[outcome] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
