package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const (
	defaultPlotHeight = 10
	minPlotWidth      = 10
	fallbackTermWidth = 80
	ansiReset         = "\x1b[0m"
	emptyCell         = '\u2800'
)

// Line is one chip-valued series on a chart.
type Line struct {
	Name   string
	Values []float64
}

// Chart draws lines with braille dots against one shared chip axis.
type Chart struct {
	Title string
	// XLabel names one step of the x axis, e.g. "round".
	XLabel string
	// XStart is the x value of the first point.
	XStart int
	Lines  []Line
	// Reference is drawn as a dotted guide when set.
	Reference     *float64
	ReferenceName string
	// TotalWidth includes the axis labels; zero fits the terminal.
	TotalWidth int
	Height     int
	// Color forces ANSI colors even when w is not a terminal.
	Color bool
}

type dash struct {
	glyph  string
	period int
	on     int
}

var (
	solid      = dash{glyph: "━", period: 1, on: 1}
	dashed     = dash{glyph: "╍", period: 6, on: 4}
	dotted     = dash{glyph: "┄", period: 4, on: 1}
	lineDashes = []dash{solid, dashed}
	lineColors = []string{"\x1b[36m", "\x1b[33m", "\x1b[35m", "\x1b[32m"}
)

// brailleBits maps a dot at (row%4, col%2) inside a cell to its bit.
var brailleBits = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

func (d dash) draws(x int) bool {
	return d.period <= 1 || x%d.period < d.on
}

// Render writes the chart. Charts without values write nothing.
func (c Chart) Render(w io.Writer) error {
	lines := make([]Line, 0, len(c.Lines))
	steps := 0
	for _, l := range c.Lines {
		if len(l.Values) == 0 {
			continue
		}
		lines = append(lines, l)
		steps = max(steps, len(l.Values))
	}
	if len(lines) == 0 {
		return nil
	}

	height := c.Height
	if height <= 0 {
		height = defaultPlotHeight
	}
	lo, hi := c.bounds(lines)
	labels := axisLabels(lo, hi, height)
	labelWidth := 0
	for _, l := range labels {
		labelWidth = max(labelWidth, runewidth.StringWidth(l))
	}
	total := c.TotalWidth
	if total <= 0 {
		total = terminalWidth()
	}
	width := max(total-labelWidth-2, minPlotWidth)

	cv := newCanvas(width, height)
	for i, l := range lines {
		cv.plot(l.Values, lo, hi, i, lineDashes[i%len(lineDashes)])
	}
	if c.Reference != nil {
		cv.plot([]float64{*c.Reference, *c.Reference}, lo, hi, len(lines), dotted)
	}

	color := useColor(w, c.Color)
	var b strings.Builder
	if c.Title != "" {
		b.WriteString(c.Title)
		b.WriteString(" (chips)\n")
	}
	for y := 0; y < height; y++ {
		tick := "│"
		if labels[y] != "" {
			tick = "┤"
		}
		b.WriteString(fmt.Sprintf("%*s %s", labelWidth, labels[y], tick))
		for x := 0; x < width; x++ {
			glyph := rune(emptyCell) + rune(cv.mask[y][x])
			owner := cv.owner[y][x]
			if color && owner >= 0 && owner < len(lines) {
				b.WriteString(lineColors[owner%len(lineColors)])
				b.WriteRune(glyph)
				b.WriteString(ansiReset)
				continue
			}
			b.WriteRune(glyph)
		}
		b.WriteByte('\n')
	}
	pad := strings.Repeat(" ", labelWidth+1)
	b.WriteString(pad + "└" + strings.Repeat("─", width) + "\n")
	b.WriteString(pad + " " + c.xCaption(steps, width) + "\n")
	b.WriteString(c.legend(lines, color, hi-lo) + "\n\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func (c Chart) bounds(lines []Line) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, l := range lines {
		for _, v := range l.Values {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if c.Reference != nil {
		lo = math.Min(lo, *c.Reference)
		hi = math.Max(hi, *c.Reference)
	}
	if hi-lo < 1e-9 {
		lo--
		hi++
	}
	return lo, hi
}

func (c Chart) xCaption(steps, width int) string {
	first := fmt.Sprintf("%d", c.XStart)
	last := fmt.Sprintf("%d", c.XStart+steps-1)
	if c.XLabel != "" {
		last += " " + c.XLabel + "s"
	}
	gap := width - runewidth.StringWidth(first) - runewidth.StringWidth(last)
	if gap < 1 {
		gap = 1
	}
	return first + strings.Repeat(" ", gap) + last
}

func (c Chart) legend(lines []Line, color bool, span float64) string {
	parts := make([]string, 0, len(lines)+1)
	for i, l := range lines {
		label := lineDashes[i%len(lineDashes)].glyph + " " + l.Name
		if color {
			label = lineColors[i%len(lineColors)] + label + ansiReset
		}
		parts = append(parts, label)
	}
	if c.Reference != nil {
		parts = append(parts, fmt.Sprintf("%s %s %s", dotted.glyph, c.ReferenceName, formatChips(*c.Reference, span)))
	}
	return "Legend: " + strings.Join(parts, "  ")
}

// axisLabels marks the top, middle, and bottom rows with the chip value they show.
func axisLabels(lo, hi float64, height int) []string {
	labels := make([]string, height)
	span := hi - lo
	labels[0] = formatChips(hi, span)
	if height > 1 {
		labels[height-1] = formatChips(lo, span)
	}
	if height > 2 {
		mid := height / 2
		dotRows := float64(height*4 - 1)
		labels[mid] = formatChips(hi-(float64(mid*4)+1.5)/dotRows*span, span)
	}
	return labels
}

func formatChips(v, span float64) string {
	if span < 10 {
		return fmt.Sprintf("%.1f", v)
	}
	if math.Abs(v) < 0.5 {
		v = 0
	}
	return fmt.Sprintf("%.0f", v)
}

// canvas holds braille cells; each cell remembers the first line that dotted it.
type canvas struct {
	width  int
	height int
	mask   [][]uint8
	owner  [][]int
}

func newCanvas(width, height int) *canvas {
	cv := &canvas{width: width, height: height}
	cv.mask = make([][]uint8, height)
	cv.owner = make([][]int, height)
	for y := range cv.mask {
		cv.mask[y] = make([]uint8, width)
		cv.owner[y] = make([]int, width)
		for x := range cv.owner[y] {
			cv.owner[y][x] = -1
		}
	}
	return cv
}

func (cv *canvas) plot(values []float64, lo, hi float64, layer int, d dash) {
	dotCols := cv.width * 2
	dotRows := cv.height * 4
	prevX, prevY := -1, -1
	for x, v := range resample(values, dotCols) {
		row := int(math.Round((hi - v) / (hi - lo) * float64(dotRows-1)))
		row = min(max(row, 0), dotRows-1)
		if prevX < 0 {
			if d.draws(x) {
				cv.set(x, row, layer)
			}
		} else {
			cv.segment(prevX, prevY, x, row, layer, d)
		}
		prevX, prevY = x, row
	}
}

// segment joins two dots with Bresenham's line.
func (cv *canvas) segment(x0, y0, x1, y1, layer int, d dash) {
	dx := x1 - x0
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y0
	if dy > 0 {
		dy = -dy
	}
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		if d.draws(x0) {
			cv.set(x0, y0, layer)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (cv *canvas) set(x, y, layer int) {
	cx, cy := x/2, y/4
	if x < 0 || y < 0 || cx >= cv.width || cy >= cv.height {
		return
	}
	cv.mask[cy][cx] |= brailleBits[y%4][x%2]
	if cv.owner[cy][cx] < 0 {
		cv.owner[cy][cx] = layer
	}
}

// resample stretches or averages values onto n evenly spaced points.
func resample(values []float64, n int) []float64 {
	out := make([]float64, n)
	switch {
	case len(values) == 1:
		for i := range out {
			out[i] = values[0]
		}
	case len(values) > n:
		for i := range out {
			start := i * len(values) / n
			end := max((i+1)*len(values)/n, start+1)
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
	default:
		for i := range out {
			pos := float64(i) * float64(len(values)-1) / float64(max(n-1, 1))
			idx := min(int(pos), len(values)-2)
			frac := pos - float64(idx)
			out[i] = values[idx]*(1-frac) + values[idx+1]*frac
		}
	}
	return out
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallbackTermWidth
	}
	return width
}

func useColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
