// Package tui provides the Bubble Tea blackjack table.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/hilo/internal/blackjack"
	"github.com/verte-zerg/hilo/internal/model"
	"github.com/verte-zerg/hilo/internal/session"
	statsPkg "github.com/verte-zerg/hilo/internal/stats"
	"github.com/verte-zerg/hilo/internal/store"
)

// Model implements the interactive table: one keypress deals one round and
// the player decides after each round whether to continue.
type Model struct {
	sess      *session.Session
	store     *store.Store
	log       logrus.FieldLogger
	startedAt time.Time

	width  int
	height int

	events []session.RoundEvent
	err    error
	done   bool
	saved  bool

	hasLast  bool
	lastNet  int
	pastRuns int
}

// cardStyleFrame is the horizontal padding added by the card styles.
const cardStyleFrame = 2

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	redCardStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Background(lipgloss.Color("#F0F0F0")).Padding(0, 1)
	blackCardStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#1F1F1F")).Background(lipgloss.Color("#F0F0F0")).Padding(0, 1)
	winStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#52C41A"))
	lossStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF4D4F"))
	pushStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F0F0F0"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs the table UI around a ready session. The store may be
// nil, in which case the run is not saved.
func NewModel(sess *session.Session, st *store.Store, log logrus.FieldLogger) *Model {
	m := &Model{
		sess:      sess,
		store:     st,
		log:       log,
		startedAt: time.Now(),
	}
	m.loadFooterStats()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.sess.Stop()
			m.finish()
			return m, tea.Quit
		}
		if m.done {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter", " ", "y", "d":
			m.playRound()
		case "n", "q", "esc":
			m.sess.Stop()
			m.finish()
		}
		return m, nil
	default:
		return m, nil
	}
}

// Events returns the rounds played so far.
func (m *Model) Events() []session.RoundEvent {
	return m.events
}

// Err returns the error that ended the session, if any.
func (m *Model) Err() error {
	return m.err
}

func (m *Model) playRound() {
	if !m.sess.ShouldContinue() {
		m.finish()
		return
	}
	ev, err := m.sess.PlayRound(context.Background())
	if err != nil {
		m.err = err
		m.log.WithError(err).Error("round failed")
		// A sink failure still resolved the round.
		if ev.Round > 0 {
			m.events = append(m.events, ev)
		}
		m.finish()
		return
	}
	m.events = append(m.events, ev)
	if !m.sess.ShouldContinue() {
		m.finish()
	}
}

func (m *Model) finish() {
	m.done = true
	if m.saved {
		return
	}
	m.saved = true
	if m.store == nil || len(m.events) == 0 {
		return
	}
	run := m.sess.RunRecord(model.ModeInteractive, m.startedAt, time.Now())
	saved, err := m.store.InsertRun(context.Background(), run, session.Records(m.events))
	if err != nil {
		m.log.WithError(err).Error("failed to save run")
		return
	}
	m.log.WithFields(logrus.Fields{"run": saved.UUID, "rounds": saved.Rounds}).Info("run saved")
}

func (m *Model) loadFooterStats() {
	if m.store == nil {
		return
	}
	runs, err := m.store.ListRuns(context.Background(), model.StatsConfig{})
	if err != nil {
		m.log.WithError(err).Warn("failed to load run history")
		return
	}
	if len(runs) == 0 {
		return
	}
	last := runs[len(runs)-1]
	m.hasLast = true
	m.lastNet = statsPkg.RunMetrics(last).Net
	m.pastRuns = len(runs)
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	if m.done {
		body = m.renderSummary()
	} else {
		body = m.renderTable()
	}
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return body + "\n\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	content := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, body)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return content + "\n" + footerLine
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 0
	}
	return max(1, int(float64(m.width)*0.70))
}

func (m *Model) renderTable() string {
	lines := []string{titleStyle.Render("Hi-Lo Blackjack")}
	if len(m.events) == 0 {
		lines = append(lines, "", labelStyle.Render("Press enter to deal, n to leave the table."))
		return strings.Join(lines, "\n")
	}
	ev := m.events[len(m.events)-1]
	width := m.contentWidth()
	lines = append(lines,
		labelStyle.Render(fmt.Sprintf("Round %d  ·  bet %d  ·  true count %+.2f", ev.Round, ev.Bet, ev.TrueCount)),
		"",
		fmt.Sprintf("%s %d", labelStyle.Render("Dealer"), ev.DealerValue),
		wrapTokens(buildCardTokens(ev.DealerCards), width),
		"",
		fmt.Sprintf("%s %d", labelStyle.Render("Player"), ev.PlayerValue),
		wrapTokens(buildCardTokens(ev.PlayerCards), width),
		"",
	)
	for _, d := range ev.Decisions {
		lines = append(lines, labelStyle.Render(describeDecision(d)))
	}
	if !ev.DealerPlayed {
		lines = append(lines, labelStyle.Render("Dealer does not draw."))
	}
	lines = append(lines, "", renderOutcome(ev), "", labelStyle.Render("Another round? enter to deal, n to stop."))
	return strings.Join(lines, "\n")
}

func (m *Model) renderSummary() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Table closed"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n\n")
	}
	run := m.sess.RunRecord(model.ModeInteractive, m.startedAt, time.Now())
	if err := statsPkg.RenderRunSummary(&b, run); err != nil {
		return err.Error()
	}
	streaks := statsPkg.LongestStreaks(session.Records(m.events))
	b.WriteString(fmt.Sprintf("Longest win streak: %d  Longest losing streak: %d\n\n", streaks.LongestWin, streaks.LongestLoss))
	b.WriteString(labelStyle.Render("Press any key to exit."))
	return b.String()
}

func (m *Model) renderFooter() string {
	shoe := m.sess.Shoe()
	p := m.sess.Player()
	segments := []string{
		fmt.Sprintf("Round %d", len(m.events)),
		fmt.Sprintf("Chips %d", p.Chips),
		fmt.Sprintf("RC %+d · TC %+.2f", shoe.RunningCount(), shoe.TrueCount()),
		fmt.Sprintf("Shoe %d", shoe.Remaining()),
	}
	if m.hasLast {
		segments = append(segments, fmt.Sprintf("Last run %+d · %d runs", m.lastNet, m.pastRuns))
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func describeDecision(d blackjack.Decision) string {
	return fmt.Sprintf("%s on %d (%s)", d.Action, d.Value, d.Reason)
}

func renderOutcome(ev session.RoundEvent) string {
	label := fmt.Sprintf("%s  ·  chips %d", ev.Outcome.Label(), ev.ChipsAfter)
	switch {
	case ev.Outcome.IsWin():
		return winStyle.Render(label)
	case ev.Outcome.IsLoss():
		return lossStyle.Render(label)
	default:
		return pushStyle.Render(label)
	}
}
