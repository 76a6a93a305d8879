package statsui

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/hilo/internal/model"
	"github.com/verte-zerg/hilo/internal/stats"
)

const (
	chartHeight   = 10
	tilesPerRow   = 3
	narrowWidth   = 80
	timeLayout    = "2006-01-02 15:04"
	loadFailedMsg = "Failed to load stats."
	noRunsMsg     = "No runs found."
)

// tile is one headline figure on the overview.
type tile struct {
	label string
	value string
	style lipgloss.Style
}

func (t tile) render() string {
	return chipStyle.Render(chipLabelStyle.Render(t.label) + "\n" + t.style.Render(t.value))
}

func signedStyle(n int) lipgloss.Style {
	switch {
	case n > 0:
		return gainStyle
	case n < 0:
		return lossStyle
	}
	return chipValueStyle
}

// historyTiles sums every listed run into the overview headline.
func historyTiles(runs []model.RunStats) []tile {
	var total model.RunStats
	bestNet := runs[0].EndChips - runs[0].StartChips
	busts := 0
	for _, r := range runs {
		net := stats.RunMetrics(r).Net
		bestNet = max(bestNet, net)
		if r.EndChips == 0 {
			busts++
		}
		total.Rounds += r.Rounds
		total.Wins += r.Wins
		total.Losses += r.Losses
		total.TotalWagered += r.TotalWagered
		total.EndChips += net
	}
	agg := stats.RunMetrics(total)
	return []tile{
		{"Runs", strconv.Itoa(len(runs)), chipValueStyle},
		{"Rounds", strconv.Itoa(total.Rounds), chipValueStyle},
		{"Busts", strconv.Itoa(busts), chipValueStyle},
		{"Total net", fmt.Sprintf("%+d", total.EndChips), signedStyle(total.EndChips)},
		{"Best net", fmt.Sprintf("%+d", bestNet), signedStyle(bestNet)},
		{"Win rate", fmt.Sprintf("%.1f%%", agg.WinRate*100), chipValueStyle},
		{"Avg bet", fmt.Sprintf("%.2f", agg.AverageBet), chipValueStyle},
	}
}

func layoutTiles(tiles []tile, width int) string {
	rendered := make([]string, len(tiles))
	for i, t := range tiles {
		rendered[i] = t.render()
	}
	if width < narrowWidth {
		return lipgloss.JoinVertical(lipgloss.Left, rendered...)
	}
	var rows []string
	for start := 0; start < len(rendered); start += tilesPerRow {
		end := min(start+tilesPerRow, len(rendered))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered[start:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// overviewContent shows the history headline, the net curve, and outcome counts.
func overviewContent(report stats.Report, window, width int) string {
	if len(report.Runs) == 0 {
		return noRunsMsg
	}
	var buf bytes.Buffer
	buf.WriteString(layoutTiles(historyTiles(report.Runs), width))
	buf.WriteString("\n\n")
	if err := stats.RenderNetCurve(&buf, report.Runs, window, width, chartHeight, true); err != nil {
		return fmt.Sprintf("Failed to render net curve: %v", err)
	}
	if err := stats.RenderOutcomeTable(&buf, report.Outcomes); err != nil {
		return fmt.Sprintf("Failed to render outcomes: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

// roundsContent shows the selected run round by round.
func roundsContent(report stats.Report, window, width int) string {
	if !report.HasSelection() {
		return "No run selected. Pick one on the Runs tab."
	}
	run := report.Selected
	var buf bytes.Buffer
	buf.WriteString(titleStyle.Render(fmt.Sprintf("Run %d", run.ID)))
	buf.WriteString(subtleStyle.Render(fmt.Sprintf("  %s  %s  %s", shortUUID(run.UUID), run.Policy, run.StartedAt.Local().Format(timeLayout))))
	buf.WriteString("\n\n")
	if err := stats.RenderRunSummary(&buf, run); err != nil {
		return fmt.Sprintf("Failed to render run: %v", err)
	}
	if err := stats.RenderBankrollCurve(&buf, run.StartChips, report.Rounds, window, width, chartHeight, true); err != nil {
		return fmt.Sprintf("Failed to render bankroll: %v", err)
	}
	if err := stats.RenderRoundTable(&buf, report.Rounds); err != nil {
		return fmt.Sprintf("Failed to render rounds: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

// runField is one column of the runs table.
type runField struct {
	title string
	width int
	cell  func(r model.RunStats) string
}

var runFields = []runField{
	{"ID", 5, func(r model.RunStats) string { return strconv.FormatInt(r.ID, 10) }},
	{"Run", 9, func(r model.RunStats) string { return shortUUID(r.UUID) }},
	{"Ended", 16, func(r model.RunStats) string { return r.EndedAt.Local().Format(timeLayout) }},
	{"Shoe", 11, func(r model.RunStats) string { return r.Mode }},
	{"Policy", 12, func(r model.RunStats) string { return r.Policy }},
	{"Rounds", 6, func(r model.RunStats) string { return strconv.Itoa(r.Rounds) }},
	{"End chips", 9, func(r model.RunStats) string { return strconv.Itoa(r.EndChips) }},
	{"Net", 7, func(r model.RunStats) string { return fmt.Sprintf("%+d", stats.RunMetrics(r).Net) }},
	{"Low/Peak", 12, func(r model.RunStats) string {
		return stats.Sparkline([]float64{float64(r.LowChips), float64(r.StartChips), float64(r.PeakChips), float64(r.EndChips)})
	}},
}

func runRows(runs []model.RunStats) []table.Row {
	rows := make([]table.Row, 0, len(runs))
	for _, r := range runs {
		row := make(table.Row, len(runFields))
		for i, f := range runFields {
			row[i] = f.cell(r)
		}
		rows = append(rows, row)
	}
	return rows
}

func newRunTable() table.Model {
	cols := make([]table.Column, len(runFields))
	for i, f := range runFields {
		cols[i] = table.Column{Title: f.title, Width: f.width}
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(felt).
		Foreground(gold).
		Bold(true)
	styles.Selected = styles.Selected.Foreground(felt).Background(gold).Bold(true)
	return table.New(table.WithColumns(cols), table.WithStyles(styles))
}

func shortUUID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
