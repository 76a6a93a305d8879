package statsui

import "github.com/charmbracelet/lipgloss"

// fit pads or clips s to exactly width x height cells.
func fit(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	return lipgloss.NewStyle().
		Width(width).
		MaxWidth(width).
		Height(height).
		MaxHeight(height).
		Render(s)
}

// windowLadder is the set of smoothing windows the -/= keys step through.
var windowLadder = []int{1, 3, 5, 10, 20, 50}

func widerWindow(n int) int {
	for _, w := range windowLadder {
		if w > n {
			return w
		}
	}
	return windowLadder[len(windowLadder)-1]
}

func narrowerWindow(n int) int {
	for i := len(windowLadder) - 1; i >= 0; i-- {
		if windowLadder[i] < n {
			return windowLadder[i]
		}
	}
	return windowLadder[0]
}
