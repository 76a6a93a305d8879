// Package main provides the CLI entrypoint for hilo.
package main

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/hilo/internal/blackjack"
	"github.com/verte-zerg/hilo/internal/cards"
	"github.com/verte-zerg/hilo/internal/config"
	"github.com/verte-zerg/hilo/internal/logging"
	"github.com/verte-zerg/hilo/internal/model"
	"github.com/verte-zerg/hilo/internal/session"
	"github.com/verte-zerg/hilo/internal/stats"
	"github.com/verte-zerg/hilo/internal/statsui"
	"github.com/verte-zerg/hilo/internal/store"
	"github.com/verte-zerg/hilo/internal/tui"
	"github.com/verte-zerg/hilo/internal/wager"
)

const (
	defaultChips          = 1000
	defaultBaseBet        = 10
	defaultPolicy         = wager.AggressiveName
	defaultShoe           = string(cards.Continuous)
	defaultSimRounds      = 50
	defaultCurveWindow    = 5
	defaultLogLevel       = "info"
	defaultPlotHeight     = 10
	defaultEnvFile        = ".env"
	formatText            = "text"
	formatYAML            = "yaml"
	formatJSON            = "json"
	defaultPayoutMultiple = blackjack.DefaultPayoutMultiplier
)

// tableFlags are the rule and bankroll flags shared by play and sim.
type tableFlags struct {
	chips           int
	baseBet         int
	policy          string
	shoe            string
	reshuffleBelow  int
	hitSoft17       bool
	dealerHitSoft17 bool
	payout          int
	seed            int64
	rounds          int
	save            bool
	logLevel        string
	logFile         string
}

var (
	playFlags tableFlags
	simFlags  tableFlags

	simFormat string
	simPlot   bool
	simTable  bool

	statsPolicy      string
	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsRun         string
	statsText        bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "hilo",
		Short:         "Blackjack table with Hi-Lo counting",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}
	addTableFlags(rootCmd, &playFlags, 0, true)

	rootCmd.AddCommand(newSimCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newConfigCmd())
	return rootCmd
}

func addTableFlags(cmd *cobra.Command, f *tableFlags, defaultRounds int, defaultSave bool) {
	cmd.Flags().IntVar(&f.chips, "chips", defaultChips, "starting bankroll")
	cmd.Flags().IntVar(&f.baseBet, "base-bet", defaultBaseBet, "base bet size")
	cmd.Flags().StringVar(&f.policy, "policy", defaultPolicy, "wager policy ("+strings.Join(wager.Names(), "|")+")")
	cmd.Flags().StringVar(&f.shoe, "shoe", defaultShoe, "shoe mode (continuous|finite|per-round)")
	cmd.Flags().IntVar(&f.reshuffleBelow, "reshuffle-below", cards.DefaultReshuffleBelow, "rebuild a continuous shoe below this many cards")
	cmd.Flags().BoolVar(&f.hitSoft17, "hit-soft17", false, "player hits soft 17")
	cmd.Flags().BoolVar(&f.dealerHitSoft17, "dealer-hit-soft17", false, "dealer hits soft 17")
	cmd.Flags().IntVar(&f.payout, "payout", defaultPayoutMultiple, "payout multiplier on a win, stake included")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "random seed (0 = time based)")
	cmd.Flags().IntVar(&f.rounds, "rounds", defaultRounds, "round limit (0 = until the bankroll is gone)")
	cmd.Flags().BoolVar(&f.save, "save", defaultSave, "save the run to history")
	cmd.Flags().StringVar(&f.logLevel, "log-level", defaultLogLevel, "log level (debug|info|warn|error)")
	cmd.Flags().StringVar(&f.logFile, "log-file", "", "rotating log file")
}

func newSimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Run a batch simulation",
		Args:  cobra.NoArgs,
		RunE:  runSimCmd,
	}
	addTableFlags(cmd, &simFlags, defaultSimRounds, false)
	cmd.Flags().StringVar(&simFormat, "format", formatText, "output format (text|yaml|json)")
	cmd.Flags().BoolVar(&simPlot, "plot", false, "plot the bankroll curve")
	cmd.Flags().BoolVar(&simTable, "table", false, "print every round")
	return cmd
}

// settings is the fully resolved configuration of one command run.
type settings struct {
	table  model.Config
	save   bool
	log    logging.Config
	dbPath string
}

// resolveSettings layers the config file, then .env overrides, then explicit flags.
func resolveSettings(cmd *cobra.Command, f *tableFlags) (settings, error) {
	env, err := config.LoadEnv(defaultEnvFile)
	if err != nil {
		return settings{}, fmt.Errorf("failed to load env: %w", err)
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return settings{}, fmt.Errorf("failed to load config: %w", err)
	}
	sim := fileCfg.Sim
	overlay(cmd, "chips", &f.chips, sim.Chips)
	overlay(cmd, "base-bet", &f.baseBet, sim.BaseBet)
	overlay(cmd, "policy", &f.policy, sim.Policy)
	overlay(cmd, "shoe", &f.shoe, sim.Shoe)
	overlay(cmd, "reshuffle-below", &f.reshuffleBelow, sim.ReshuffleBelow)
	overlay(cmd, "hit-soft17", &f.hitSoft17, sim.HitSoft17)
	overlay(cmd, "dealer-hit-soft17", &f.dealerHitSoft17, sim.DealerHitSoft17)
	overlay(cmd, "payout", &f.payout, sim.Payout)
	overlay(cmd, "seed", &f.seed, sim.Seed)
	overlay(cmd, "rounds", &f.rounds, sim.Rounds)
	if cmd.Name() == "sim" {
		overlay(cmd, "save", &f.save, sim.Save)
	}
	overlay(cmd, "log-level", &f.logLevel, fileCfg.Log.Level)
	overlay(cmd, "log-file", &f.logFile, fileCfg.Log.File)
	overlay(cmd, "log-level", &f.logLevel, nonEmpty(env.LogLevel))
	overlay(cmd, "log-file", &f.logFile, nonEmpty(env.LogFile))

	out := settings{
		table: model.Config{
			StartChips:       f.chips,
			BaseBet:          f.baseBet,
			Policy:           strings.ToLower(strings.TrimSpace(f.policy)),
			ShoeMode:         strings.ToLower(strings.TrimSpace(f.shoe)),
			ReshuffleBelow:   f.reshuffleBelow,
			PlayerHitSoft17:  f.hitSoft17,
			DealerHitSoft17:  f.dealerHitSoft17,
			PayoutMultiplier: f.payout,
			Seed:             f.seed,
			Rounds:           f.rounds,
		},
		save: f.save,
		log: logging.Config{
			Level:      f.logLevel,
			File:       f.logFile,
			MaxSizeMB:  derefInt(fileCfg.Log.MaxSizeMB),
			MaxBackups: derefInt(fileCfg.Log.MaxBackups),
			MaxAgeDays: derefInt(fileCfg.Log.MaxAgeDays),
			Compress:   fileCfg.Log.Compress != nil && *fileCfg.Log.Compress,
		},
		dbPath: env.DBPathOrDefault(),
	}
	if err := validateConfig(out.table); err != nil {
		return settings{}, err
	}
	return out, nil
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	s, err := resolveSettings(cmd, &playFlags)
	if err != nil {
		return err
	}
	// The table owns the terminal, so logs only go to a file.
	if s.log.File == "" {
		s.log.File = config.DefaultLogPath()
	}
	logger, err := logging.New(s.log, io.Discard)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer func() {
		if cerr := logger.Close(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
	}()

	var st *store.Store
	if s.save {
		st, err = store.Open(s.dbPath)
		if err != nil {
			return fmt.Errorf("failed to open history %s: %w", s.dbPath, err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
	}

	sess, err := newSession(s.table, logging.RoundSink(logger))
	if err != nil {
		return err
	}
	logger.WithField("seed", sess.Config().Seed).Info("table opened")

	m := tui.NewModel(sess, st, logger)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if err := m.Err(); err != nil {
		return err
	}
	return nil
}

// simReport is the machine-readable result of a batch run.
type simReport struct {
	RunID      string               `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Seed       int64                `json:"seed" yaml:"seed"`
	Policy     string               `json:"policy" yaml:"policy"`
	Shoe       string               `json:"shoe" yaml:"shoe"`
	Stats      session.Stats        `json:"stats" yaml:"stats"`
	AverageBet float64              `json:"average_bet" yaml:"average_bet"`
	WinRate    float64              `json:"win_rate" yaml:"win_rate"`
	Rounds     []session.RoundEvent `json:"rounds,omitempty" yaml:"rounds,omitempty"`
}

func runSimCmd(cmd *cobra.Command, _ []string) error {
	switch simFormat {
	case formatText, formatYAML, formatJSON:
	default:
		return fmt.Errorf("--format must be one of text, yaml, json")
	}
	s, err := resolveSettings(cmd, &simFlags)
	if err != nil {
		return err
	}
	logger, err := logging.New(s.log, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer func() {
		if cerr := logger.Close(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
	}()

	collector := &session.Collector{}
	sess, err := newSession(s.table, session.Sinks(collector, logging.RoundSink(logger)))
	if err != nil {
		return err
	}

	startedAt := time.Now()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	_, runErr := sess.Run(ctx)
	if runErr != nil {
		logger.WithError(runErr).Error("simulation stopped early")
	}
	endedAt := time.Now()

	run := sess.RunRecord(model.ModeBatch, startedAt, endedAt)
	rounds := session.Records(collector.Events)
	if s.save && len(rounds) > 0 {
		if err := saveRun(ctx, s.dbPath, &run, rounds); err != nil {
			return err
		}
		logger.WithField("run", run.UUID).Info("run saved")
	}

	out := cmd.OutOrStdout()
	switch simFormat {
	case formatYAML, formatJSON:
		st := sess.Stats()
		report := simReport{
			RunID:      run.UUID,
			Seed:       run.Seed,
			Policy:     run.Policy,
			Shoe:       run.ShoeMode,
			Stats:      st,
			AverageBet: st.AverageBet(),
			WinRate:    st.WinRate(),
		}
		if simTable {
			report.Rounds = collector.Events
		}
		if err := writeReport(out, simFormat, report); err != nil {
			return err
		}
	default:
		if err := stats.RenderRunSummary(out, run); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if simPlot {
			if err := stats.RenderBankrollCurve(out, run.StartChips, rounds, defaultCurveWindow, 0, defaultPlotHeight, false); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
		if simTable {
			if err := stats.RenderRoundTable(out, rounds); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
	}
	return runErr
}

func writeReport(w io.Writer, format string, report simReport) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
	}
	return nil
}

// withStore opens the history database for the duration of fn.
func withStore(path string, fn func(st *store.Store) error) error {
	st, err := store.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open history %s: %w", path, err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close history: %v\n", cerr)
		}
	}()
	return fn(st)
}

func saveRun(ctx context.Context, dbPath string, run *model.RunStats, rounds []model.RoundRecord) error {
	return withStore(dbPath, func(st *store.Store) error {
		saved, err := st.InsertRun(ctx, *run, rounds)
		if err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
		*run = saved
		return nil
	})
}

// newSession wires the wager policy and termination rule named by cfg.
func newSession(cfg model.Config, sink session.Sink) (*session.Session, error) {
	policy, err := wager.ByName(cfg.Policy)
	if err != nil {
		return nil, err
	}
	mode, err := cards.ParseMode(cfg.ShoeMode)
	if err != nil {
		return nil, err
	}
	termination := session.BankrollExhausted()
	if cfg.Rounds > 0 {
		termination = session.All(session.RoundLimit(cfg.Rounds), termination)
	}
	return session.New(session.Config{
		StartChips:       cfg.StartChips,
		BaseBet:          cfg.BaseBet,
		PayoutMultiplier: cfg.PayoutMultiplier,
		ShoeMode:         mode,
		ReshuffleBelow:   cfg.ReshuffleBelow,
		PlayerHitSoft17:  cfg.PlayerHitSoft17,
		DealerHitSoft17:  cfg.DealerHitSoft17,
		Seed:             cfg.Seed,
	},
		session.WithWager(policy),
		session.WithTermination(termination),
		session.WithSink(sink),
	)
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show saved runs",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsPolicy, "policy", "", "wager policy filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N runs")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().StringVar(&statsRun, "run", "", "run id or uuid prefix to open")
	cmd.Flags().BoolVar(&statsText, "text", false, "print a text report instead of the TUI")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	since, err := parseDay(statsSince)
	if err != nil {
		return fmt.Errorf("invalid --since value: %w", err)
	}
	if statsCurveWindow < 1 {
		return fmt.Errorf("--curve-window must be >= 1")
	}
	env, err := config.LoadEnv(defaultEnvFile)
	if err != nil {
		return fmt.Errorf("failed to load env: %w", err)
	}
	filter := model.StatsConfig{
		Policy:      strings.ToLower(strings.TrimSpace(statsPolicy)),
		Since:       since,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
		Run:         statsRun,
	}
	return withStore(env.DBPathOrDefault(), func(st *store.Store) error {
		if statsText {
			return renderStatsText(cmd.Context(), cmd.OutOrStdout(), st, filter)
		}
		if _, err := tea.NewProgram(statsui.NewModel(st, filter), tea.WithAltScreen()).Run(); err != nil {
			return fmt.Errorf("failed to run history browser: %w", err)
		}
		return nil
	})
}

// parseDay reads a local YYYY-MM-DD date; empty means no bound.
func parseDay(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	day, err := time.ParseInLocation(time.DateOnly, value, time.Local)
	if err != nil {
		return nil, err
	}
	return &day, nil
}

func renderStatsText(ctx context.Context, w io.Writer, st *store.Store, cfg model.StatsConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}
	report, err := stats.BuildReport(ctx, st, cfg)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	if err := stats.RenderSummary(w, report.Runs); err != nil {
		return err
	}
	if err := stats.RenderNetCurve(w, report.Runs, cfg.CurveWindow, 0, defaultPlotHeight, false); err != nil {
		return err
	}
	if err := stats.RenderOutcomeTable(w, report.Outcomes); err != nil {
		return err
	}
	if !report.HasSelection() {
		return nil
	}
	if err := stats.RenderRunSummary(w, report.Selected); err != nil {
		return err
	}
	return stats.RenderBankrollCurve(w, report.Selected.StartChips, report.Rounds, cfg.CurveWindow, 0, defaultPlotHeight, false)
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}
	editor := strings.Fields(cmp.Or(os.Getenv("VISUAL"), os.Getenv("EDITOR"), "vi"))
	if len(editor) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	edit := exec.Command(editor[0], append(editor[1:], path)...)
	edit.Stdin, edit.Stdout, edit.Stderr = os.Stdin, os.Stdout, os.Stderr
	if err := edit.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// ensureConfigFile writes the commented template unless a config already exists.
func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}
	_, werr := io.WriteString(f, defaultConfigTemplate())
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return fmt.Errorf("failed to write config: %w", werr)
	}
	return nil
}

// overlay copies a config value into target unless the flag was set explicitly.
func overlay[T any](cmd *cobra.Command, name string, target, value *T) {
	if value != nil && !cmd.Flags().Changed(name) {
		*target = *value
	}
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# hilo configuration
# Uncomment a value to enable it. CLI flags override config values.

[sim]
# chips = %d                 # Starting bankroll
# base-bet = %d                # Base bet size
# policy = %q       # Wager policy: aggressive or conservative
# shoe = %q         # continuous, finite, or per-round
# reshuffle-below = %d         # Rebuild a continuous shoe below this many cards
# hit-soft17 = false           # Player hits soft 17
# dealer-hit-soft17 = false    # Dealer hits soft 17
# payout = %d                   # Win multiplier, stake included
# rounds = %d                  # Round limit for sim (0 = until broke)
# seed = 0                     # Random seed (0 = time based)
# save = false                 # Save sim runs to history

[log]
# level = %q               # debug, info, warn, error
# file = ""                    # Rotating log file
# max-size-mb = 10
# max-backups = 3
# max-age-days = 28
# compress = false
`,
		defaultChips,
		defaultBaseBet,
		defaultPolicy,
		defaultShoe,
		cards.DefaultReshuffleBelow,
		defaultPayoutMultiple,
		defaultSimRounds,
		defaultLogLevel,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.StartChips <= 0 {
		return fmt.Errorf("--chips must be > 0")
	}
	if cfg.BaseBet <= 0 {
		return fmt.Errorf("--base-bet must be > 0")
	}
	if cfg.PayoutMultiplier < 1 {
		return fmt.Errorf("--payout must be >= 1")
	}
	if cfg.ReshuffleBelow < 4 {
		return fmt.Errorf("--reshuffle-below must be >= 4")
	}
	if cfg.Rounds < 0 {
		return fmt.Errorf("--rounds must be >= 0")
	}
	if _, err := wager.ByName(cfg.Policy); err != nil {
		return fmt.Errorf("--policy: %w", err)
	}
	if _, err := cards.ParseMode(cfg.ShoeMode); err != nil {
		return fmt.Errorf("--shoe: %w", err)
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
