// Package stats derives bankroll metrics and renders text reports.
package stats

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/verte-zerg/hilo/internal/model"
)

var sparkBars = []rune("▁▂▃▄▅▆▇█")

// Metrics are the derived figures of one run.
type Metrics struct {
	Net        int
	AverageBet float64
	WinRate    float64
	ROI        float64
}

// RunMetrics computes net result, average bet, win rate, and return on
// wagered chips for a run. Money ratios are rounded to two decimals.
func RunMetrics(run model.RunStats) Metrics {
	m := Metrics{Net: run.EndChips - run.StartChips}
	if run.Rounds > 0 {
		m.AverageBet = ratio(run.TotalWagered, run.Rounds, 2)
	}
	if decided := run.Wins + run.Losses; decided > 0 {
		m.WinRate = ratio(run.Wins, decided, 4)
	}
	if run.TotalWagered > 0 {
		m.ROI = ratio(m.Net, run.TotalWagered, 4)
	}
	return m
}

func ratio(num, den int, places int32) float64 {
	return decimal.NewFromInt(int64(num)).
		Div(decimal.NewFromInt(int64(den))).
		Round(places).
		InexactFloat64()
}

// writeLines prints each line followed by a newline.
func writeLines(w io.Writer, lines []string) error {
	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

// MovingAverage smooths values with a trailing mean of window points. The
// first points average everything seen so far.
func MovingAverage(values []float64, window int) []float64 {
	window = max(window, 1)
	out := make([]float64, len(values))
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		out[i] = sum / float64(min(i+1, window))
	}
	return out
}

// Sparkline draws values as one row of block bars scaled to their own range.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := slices.Min(values), slices.Max(values)
	top := len(sparkBars) - 1
	bars := make([]rune, len(values))
	for i, v := range values {
		level := top / 2
		if hi-lo >= 1e-9 {
			level = int(math.Round((v - lo) / (hi - lo) * float64(top)))
		}
		bars[i] = sparkBars[level]
	}
	return string(bars)
}

// Chips returns the bankroll after each round, starting with the opening stack.
func Chips(startChips int, rounds []model.RoundRecord) []float64 {
	out := make([]float64, 0, len(rounds)+1)
	out = append(out, float64(startChips))
	for _, r := range rounds {
		out = append(out, float64(r.ChipsAfter))
	}
	return out
}

// RenderRunSummary prints the final performance statistics of a run.
func RenderRunSummary(w io.Writer, run model.RunStats) error {
	m := RunMetrics(run)
	lines := []string{
		"Final Statistics",
		fmt.Sprintf("Policy: %s (%s shoe)", run.Policy, run.ShoeMode),
		fmt.Sprintf("Rounds: %d", run.Rounds),
		fmt.Sprintf("Wins: %d  Losses: %d  Ties: %d", run.Wins, run.Losses, run.Pushes),
		fmt.Sprintf("Player busts: %d  Dealer busts: %d", run.PlayerBusts, run.DealerBusts),
		fmt.Sprintf("Win rate: %.2f%%", m.WinRate*100),
		fmt.Sprintf("Final chips: %d (net %+d)", run.EndChips, m.Net),
		fmt.Sprintf("Peak chips: %d  Low chips: %d", run.PeakChips, run.LowChips),
		fmt.Sprintf("Average bet: %.2f", m.AverageBet),
		fmt.Sprintf("Return on wagered: %.2f%%", m.ROI*100),
		fmt.Sprintf("Seed: %d", run.Seed),
		"",
	}
	return writeLines(w, lines)
}

// RenderSummary prints a summary across stored runs.
func RenderSummary(w io.Writer, runs []model.RunStats) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs found.")
		return err
	}
	var totalNet, totalRounds, totalWins, totalLosses, busted int
	bestNet := math.MinInt
	for _, r := range runs {
		net := r.EndChips - r.StartChips
		totalNet += net
		totalRounds += r.Rounds
		totalWins += r.Wins
		totalLosses += r.Losses
		if net > bestNet {
			bestNet = net
		}
		if r.EndChips <= 0 {
			busted++
		}
	}
	winRate := 0.0
	if totalWins+totalLosses > 0 {
		winRate = ratio(totalWins, totalWins+totalLosses, 4)
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Runs: %d", len(runs)),
		fmt.Sprintf("Rounds: %d", totalRounds),
		fmt.Sprintf("Avg net: %.2f", ratio(totalNet, len(runs), 2)),
		fmt.Sprintf("Best net: %+d", bestNet),
		fmt.Sprintf("Win rate: %.2f%%", winRate*100),
		fmt.Sprintf("Busted runs: %d", busted),
		"",
	}
	return writeLines(w, lines)
}

// RenderBankrollCurve plots the bankroll after every round and the smoothed
// bet size on one chip axis, with the opening stack as a guide.
func RenderBankrollCurve(w io.Writer, startChips int, rounds []model.RoundRecord, window, totalWidth, height int, useColor bool) error {
	if len(rounds) == 0 {
		return nil
	}
	bets := make([]float64, len(rounds))
	for i, r := range rounds {
		bets[i] = float64(r.Bet)
	}
	smoothed := MovingAverage(bets, window)
	// Round 0 has no bet; repeat the first so both lines span the same rounds.
	betLine := append([]float64{smoothed[0]}, smoothed...)
	start := float64(startChips)
	return Chart{
		Title:  "Bankroll",
		XLabel: "round",
		Lines: []Line{
			{Name: "Chips", Values: Chips(startChips, rounds)},
			{Name: "Avg bet", Values: betLine},
		},
		Reference:     &start,
		ReferenceName: "Start",
		TotalWidth:    totalWidth,
		Height:        height,
		Color:         useColor,
	}.Render(w)
}

// RenderNetCurve plots the smoothed net result of each run against break-even.
func RenderNetCurve(w io.Writer, runs []model.RunStats, window, totalWidth, height int, useColor bool) error {
	if len(runs) == 0 {
		return nil
	}
	nets := make([]float64, len(runs))
	for i, r := range runs {
		nets[i] = float64(r.EndChips - r.StartChips)
	}
	zero := 0.0
	return Chart{
		Title:         "Net per Run",
		XLabel:        "run",
		XStart:        1,
		Lines:         []Line{{Name: "Net", Values: MovingAverage(nets, window)}},
		Reference:     &zero,
		ReferenceName: "Break-even",
		TotalWidth:    totalWidth,
		Height:        height,
		Color:         useColor,
	}.Render(w)
}

// RenderRoundTable prints one line per round.
func RenderRoundTable(w io.Writer, rounds []model.RoundRecord) error {
	if len(rounds) == 0 {
		_, err := fmt.Fprintln(w, "No rounds played.")
		return err
	}
	t := newTextTable(
		column{title: "#", right: true},
		column{title: "Bet", right: true},
		column{title: "TC", right: true},
		column{title: "Player"},
		column{title: "P", right: true},
		column{title: "Dealer"},
		column{title: "D", right: true},
		column{title: "Outcome"},
		column{title: "Chips", right: true},
	)
	for _, r := range rounds {
		t.add(
			fmt.Sprintf("%d", r.Round),
			fmt.Sprintf("%d", r.Bet),
			fmt.Sprintf("%+.2f", r.TrueCount),
			r.PlayerCards,
			fmt.Sprintf("%d", r.PlayerValue),
			r.DealerCards,
			fmt.Sprintf("%d", r.DealerValue),
			r.Outcome,
			fmt.Sprintf("%d", r.ChipsAfter),
		)
	}
	return t.write(w)
}

// RenderOutcomeTable prints outcome counts, most frequent first.
func RenderOutcomeTable(w io.Writer, counts map[string]int) error {
	shares := OutcomeShares(counts)
	if len(shares) == 0 {
		_, err := fmt.Fprintln(w, "No outcomes recorded.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Outcomes"); err != nil {
		return err
	}
	t := newTextTable(
		column{title: "Outcome"},
		column{title: "Count", right: true},
		column{title: "Share", right: true},
	)
	for _, sh := range shares {
		t.add(sh.Outcome, fmt.Sprintf("%d", sh.Count), fmt.Sprintf("%.2f%%", sh.Share*100))
	}
	return t.write(w)
}
