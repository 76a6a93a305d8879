package stats

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/hilo/internal/model"
)

func renderChart(t *testing.T, c Chart) []string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(&buf))
	return strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
}

func TestChartSharesOneChipAxis(t *testing.T) {
	lines := renderChart(t, Chart{
		Title:  "Test",
		XLabel: "round",
		Lines: []Line{
			{Name: "Rise", Values: []float64{0, 50, 100}},
			{Name: "Flat", Values: []float64{10, 10, 10}},
		},
		TotalWidth: 40,
		Height:     4,
	})
	require.Len(t, lines, 1+4+3)
	assert.Equal(t, "Test (chips)", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "100 ┤"), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "    │"), lines[2])
	assert.True(t, strings.HasPrefix(lines[3], " 37 ┤"), lines[3])
	assert.True(t, strings.HasPrefix(lines[4], "  0 ┤"), lines[4])
	for _, row := range lines[1:5] {
		assert.Equal(t, 40, utf8.RuneCountInString(row))
	}

	// The flat line sits at 10 chips, in the bottom row, on the same scale as the rising one.
	assert.NotContains(t, strings.TrimPrefix(lines[4], "  0 ┤"), string(emptyCell))
	assert.Contains(t, lines[1], string(emptyCell))

	assert.Equal(t, "    └"+strings.Repeat("─", 35), lines[5])
	assert.True(t, strings.HasSuffix(lines[6], "2 rounds"), lines[6])
	assert.Equal(t, "Legend: ━ Rise  ╍ Flat", lines[7])
}

func TestChartReferenceWidensRange(t *testing.T) {
	lines := renderChart(t, Chart{
		Lines:         []Line{{Name: "Net", Values: []float64{20, 40}}},
		Reference:     func() *float64 { v := 0.0; return &v }(),
		ReferenceName: "Break-even",
		XStart:        1,
		XLabel:        "run",
		TotalWidth:    30,
		Height:        3,
	})
	require.Len(t, lines, 3+3)
	assert.True(t, strings.HasPrefix(lines[0], "40 ┤"), lines[0])
	assert.True(t, strings.HasPrefix(lines[2], " 0 ┤"), lines[2])
	assert.True(t, strings.HasSuffix(lines[4], "2 runs"), lines[4])
	assert.True(t, strings.HasPrefix(strings.TrimSpace(lines[4]), "1 "), lines[4])
	assert.Equal(t, "Legend: ━ Net  ┄ Break-even 0", lines[5])
}

func TestChartFlatSeriesGetsRange(t *testing.T) {
	lines := renderChart(t, Chart{
		Lines:      []Line{{Name: "Chips", Values: []float64{7, 7}}},
		TotalWidth: 30,
		Height:     2,
	})
	assert.True(t, strings.HasPrefix(lines[0], "8.0 ┤"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "6.0 ┤"), lines[1])
}

func TestChartColorMarksLines(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	var buf bytes.Buffer
	require.NoError(t, Chart{
		Lines:      []Line{{Name: "Chips", Values: []float64{1, 5, 3}}},
		TotalWidth: 30,
		Height:     3,
		Color:      true,
	}.Render(&buf))
	assert.Contains(t, buf.String(), lineColors[0])
	assert.Contains(t, buf.String(), ansiReset)
}

func TestChartSkipsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Chart{Title: "Empty", Lines: []Line{{Name: "A"}}}.Render(&buf))
	assert.Empty(t, buf.String())
}

func TestResample(t *testing.T) {
	assert.Equal(t, []float64{1.5, 3.5}, resample([]float64{1, 2, 3, 4}, 2))
	assert.Equal(t, []float64{0, 5, 10}, resample([]float64{0, 10}, 3))
	assert.Equal(t, []float64{4, 4, 4}, resample([]float64{4}, 3))
}

func TestRenderBankrollCurveUsesChipAxis(t *testing.T) {
	var buf bytes.Buffer
	rounds := sampleRecords()
	require.NoError(t, RenderBankrollCurve(&buf, 1000, rounds, 2, 60, 4, false))
	out := buf.String()
	assert.Contains(t, out, "Bankroll (chips)")
	assert.Contains(t, out, "Avg bet")
	assert.Contains(t, out, "┄ Start 1000")
	assert.Contains(t, out, "4 rounds")
}

func sampleRecords() []model.RoundRecord {
	return []model.RoundRecord{
		{Round: 1, Bet: 10, Outcome: "player_win", ChipsAfter: 1010},
		{Round: 2, Bet: 20, Outcome: "dealer_win", ChipsAfter: 990},
		{Round: 3, Bet: 10, Outcome: "push", ChipsAfter: 990},
		{Round: 4, Bet: 10, Outcome: "dealer_bust", ChipsAfter: 1000},
	}
}
