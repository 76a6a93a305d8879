// Package statsui provides the Bubble Tea run history interface.
package statsui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/hilo/internal/model"
	"github.com/verte-zerg/hilo/internal/stats"
	"github.com/verte-zerg/hilo/internal/store"
)

type tab int

const (
	tabOverview tab = iota
	tabRuns
	tabRounds
	tabCount
)

func (t tab) String() string {
	switch t {
	case tabOverview:
		return "Overview"
	case tabRuns:
		return "Runs"
	case tabRounds:
		return "Rounds"
	}
	return "?"
}

// shift moves delta tabs, wrapping at both ends.
func (t tab) shift(delta int) tab {
	n := int(tabCount)
	return tab(((int(t)+delta)%n + n) % n)
}

// Model implements the Bubble Tea run history UI.
type Model struct {
	store *store.Store
	cfg   model.StatsConfig

	report stats.Report
	errMsg string

	active   tab
	overview viewport.Model
	rounds   viewport.Model
	runs     table.Model
	form     filterForm

	keys keyMap
	help help.Model

	width  int
	height int
}

// NewModel constructs a run history UI model.
func NewModel(st *store.Store, cfg model.StatsConfig) *Model {
	m := &Model{
		store:    st,
		cfg:      cfg,
		overview: viewport.New(0, 0),
		rounds:   viewport.New(0, 0),
		runs:     newRunTable(),
		form:     newFilterForm(),
		keys:     newKeyMap(),
		help:     help.New(),
	}
	m.setTab(tabOverview)
	m.refreshReport()
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
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		m.renderContent()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.form.active {
			return m, m.updateForm(msg)
		}
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.PrevTab):
		m.setTab(m.active.shift(-1))
		return tea.ClearScreen
	case key.Matches(msg, m.keys.NextTab):
		m.setTab(m.active.shift(1))
		return tea.ClearScreen
	case key.Matches(msg, m.keys.Wider):
		m.cfg.CurveWindow = widerWindow(m.cfg.CurveWindow)
		m.renderContent()
		return nil
	case key.Matches(msg, m.keys.Narrower):
		m.cfg.CurveWindow = narrowerWindow(m.cfg.CurveWindow)
		m.renderContent()
		return nil
	case key.Matches(msg, m.keys.Settings):
		return m.form.open(m.cfg)
	case key.Matches(msg, m.keys.Open):
		m.selectRun()
		return nil
	case key.Matches(msg, m.keys.Top):
		if vp := m.viewport(); vp != nil {
			vp.GotoTop()
		} else {
			m.runs.GotoTop()
		}
		return nil
	case key.Matches(msg, m.keys.Bottom):
		if vp := m.viewport(); vp != nil {
			vp.GotoBottom()
		} else {
			m.runs.GotoBottom()
		}
		return nil
	}
	var cmd tea.Cmd
	if vp := m.viewport(); vp != nil {
		*vp, cmd = vp.Update(msg)
	} else {
		m.runs, cmd = m.runs.Update(msg)
	}
	return cmd
}

func (m *Model) updateForm(msg tea.KeyMsg) tea.Cmd {
	cmd, submitted := m.form.handle(msg)
	if !submitted {
		return cmd
	}
	cfg, err := m.form.apply(m.cfg)
	if err != nil {
		m.form.err = err.Error()
		return nil
	}
	m.form.close()
	m.cfg = cfg
	m.refreshReport()
	return nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	header := m.headerView()
	footer := m.footerView()
	bodyHeight := max(1, m.height-lipgloss.Height(header)-lipgloss.Height(footer))
	return lipgloss.JoinVertical(lipgloss.Left, header, fit(m.bodyView(), m.width, bodyHeight), footer)
}

func (m *Model) headerView() string {
	var parts []string
	for t := tabOverview; t < tabCount; t++ {
		if t == m.active {
			parts = append(parts, tabActiveStyle.Render(t.String()))
		} else {
			parts = append(parts, tabInactiveStyle.Render(t.String()))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if gap := m.width - lipgloss.Width(bar); gap > 0 {
		bar += tabGapStyle.Render(strings.Repeat(" ", gap))
	}
	return bar + "\n" + subtleStyle.Render(runewidth.Truncate(m.settingsSummary(), m.width, "…"))
}

func (m *Model) settingsSummary() string {
	policy, since, last := "any", "any", "all"
	if m.cfg.Policy != "" {
		policy = m.cfg.Policy
	}
	if m.cfg.Since != nil {
		since = m.cfg.Since.Format(dateLayout)
	}
	if m.cfg.Last > 0 {
		last = fmt.Sprint(m.cfg.Last)
	}
	return fmt.Sprintf("policy=%s  since=%s  last=%s  window=%d", policy, since, last, m.cfg.CurveWindow)
}

func (m *Model) bodyView() string {
	if m.form.active {
		return m.form.view()
	}
	if vp := m.viewport(); vp != nil {
		return vp.View()
	}
	if len(m.report.Runs) == 0 {
		return noRunsMsg
	}
	return m.runs.View()
}

func (m *Model) footerView() string {
	var footer string
	if m.form.active {
		footer = m.help.View(m.form.keys)
	} else {
		footer = m.help.View(m.keys)
	}
	if !m.form.active && m.errMsg != "" {
		footer += "\n" + errorStyle.Render(m.errMsg)
	}
	return footer
}

// viewport returns the scroll area of the active tab, or nil on the runs table.
func (m *Model) viewport() *viewport.Model {
	switch m.active {
	case tabOverview:
		return &m.overview
	case tabRounds:
		return &m.rounds
	}
	return nil
}

func (m *Model) setTab(t tab) {
	m.active = t
	m.keys.Open.SetEnabled(t == tabRuns)
	if t == tabRuns {
		m.runs.Focus()
	} else {
		m.runs.Blur()
	}
}

func (m *Model) resize() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	m.help.Width = m.width
	// Tab bar and settings line above, help below.
	bodyHeight := max(1, m.height-3)
	for _, vp := range []*viewport.Model{&m.overview, &m.rounds} {
		vp.Width = m.width
		vp.Height = bodyHeight
	}
	m.runs.SetWidth(m.width)
	m.runs.SetHeight(bodyHeight)
	m.form.resize(m.width)
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(context.Background(), m.store, m.cfg)
	if err != nil {
		m.errMsg = err.Error()
		m.renderContent()
		return
	}
	m.errMsg = ""
	m.report = report
	m.runs.SetRows(runRows(report.Runs))
	if n := len(report.Runs); n > 0 {
		m.runs.SetCursor(n - 1)
	}
	m.renderContent()
}

// selectRun loads the rounds of the run under the table cursor.
func (m *Model) selectRun() {
	idx := m.runs.Cursor()
	if idx < 0 || idx >= len(m.report.Runs) {
		return
	}
	run := m.report.Runs[idx]
	rounds, err := m.store.ListRounds(context.Background(), run.ID)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	m.report.Selected = run
	m.report.Rounds = rounds
	m.cfg.Run = run.UUID
	m.renderContent()
	m.setTab(tabRounds)
	m.rounds.GotoTop()
}

func (m *Model) renderContent() {
	if m.errMsg != "" {
		m.overview.SetContent(loadFailedMsg)
		m.rounds.SetContent(loadFailedMsg)
		return
	}
	width := m.width
	if width <= 0 {
		width = narrowWidth
	}
	m.overview.SetContent(overviewContent(m.report, m.cfg.CurveWindow, width))
	m.rounds.SetContent(roundsContent(m.report, m.cfg.CurveWindow, width))
}
