package statsui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/hilo/internal/model"
	"github.com/verte-zerg/hilo/internal/wager"
)

const dateLayout = "2006-01-02"

// filterField binds one form input to a StatsConfig setting.
type filterField struct {
	label string
	read  func(cfg model.StatsConfig) string
	write func(cfg *model.StatsConfig, value string) error
}

var filterFields = []filterField{
	{
		label: "Policy",
		read:  func(cfg model.StatsConfig) string { return cfg.Policy },
		write: func(cfg *model.StatsConfig, value string) error {
			if value == "" {
				cfg.Policy = ""
				return nil
			}
			p, err := wager.ByName(value)
			if err != nil {
				return err
			}
			cfg.Policy = p.Name()
			return nil
		},
	},
	{
		label: "Since (YYYY-MM-DD)",
		read: func(cfg model.StatsConfig) string {
			if cfg.Since == nil {
				return ""
			}
			return cfg.Since.Format(dateLayout)
		},
		write: func(cfg *model.StatsConfig, value string) error {
			cfg.Since = nil
			if value == "" {
				return nil
			}
			parsed, err := time.ParseInLocation(dateLayout, value, time.Local)
			if err != nil {
				return fmt.Errorf("expected YYYY-MM-DD")
			}
			cfg.Since = &parsed
			return nil
		},
	},
	{
		label: "Last runs",
		read: func(cfg model.StatsConfig) string {
			if cfg.Last <= 0 {
				return ""
			}
			return strconv.Itoa(cfg.Last)
		},
		write: func(cfg *model.StatsConfig, value string) error {
			cfg.Last = 0
			if value == "" {
				return nil
			}
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return fmt.Errorf("use 0 or a positive integer")
			}
			cfg.Last = n
			return nil
		},
	},
	{
		label: "Curve window",
		read:  func(cfg model.StatsConfig) string { return strconv.Itoa(cfg.CurveWindow) },
		write: func(cfg *model.StatsConfig, value string) error {
			cfg.CurveWindow = 1
			if value == "" {
				return nil
			}
			n, err := strconv.Atoi(value)
			if err != nil || n < 1 {
				return fmt.Errorf("use an integer >= 1")
			}
			cfg.CurveWindow = n
			return nil
		},
	},
}

// filterForm edits the history filters in place of the tab body.
type filterForm struct {
	active bool
	inputs []textinput.Model
	focus  int
	err    string
	keys   formKeyMap
}

func newFilterForm() filterForm {
	f := filterForm{keys: newFormKeyMap()}
	for _, field := range filterFields {
		in := textinput.New()
		in.Prompt = field.label + ": "
		in.Cursor.SetMode(cursor.CursorBlink)
		f.inputs = append(f.inputs, in)
	}
	return f
}

// open loads cfg into the inputs and focuses the first one.
func (f *filterForm) open(cfg model.StatsConfig) tea.Cmd {
	f.active = true
	f.err = ""
	for i, field := range filterFields {
		f.inputs[i].SetValue(field.read(cfg))
	}
	return f.focusField(0)
}

func (f *filterForm) close() {
	f.active = false
	f.err = ""
}

func (f *filterForm) focusField(idx int) tea.Cmd {
	n := len(f.inputs)
	f.focus = (idx%n + n) % n
	var cmd tea.Cmd
	for i := range f.inputs {
		if i == f.focus {
			cmd = f.inputs[i].Focus()
			continue
		}
		f.inputs[i].Blur()
	}
	return cmd
}

// apply returns cfg with every field written from the inputs. The selected
// run is dropped so the newest matching run is shown.
func (f *filterForm) apply(cfg model.StatsConfig) (model.StatsConfig, error) {
	cfg.Run = ""
	for i, field := range filterFields {
		if err := field.write(&cfg, strings.TrimSpace(f.inputs[i].Value())); err != nil {
			return cfg, fmt.Errorf("%s: %w", strings.ToLower(field.label), err)
		}
	}
	return cfg, nil
}

// handle routes a key to the form. submitted is true when enter was pressed.
func (f *filterForm) handle(msg tea.KeyMsg) (cmd tea.Cmd, submitted bool) {
	switch {
	case key.Matches(msg, f.keys.Cancel):
		f.close()
		return nil, false
	case key.Matches(msg, f.keys.Apply):
		return nil, true
	case key.Matches(msg, f.keys.Next):
		return f.focusField(f.focus + 1), false
	case key.Matches(msg, f.keys.Prev):
		return f.focusField(f.focus - 1), false
	}
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd, false
}

func (f *filterForm) resize(width int) {
	for i := range f.inputs {
		f.inputs[i].Width = max(10, width-len(f.inputs[i].Prompt)-2)
	}
}

func (f *filterForm) view() string {
	lines := []string{titleStyle.Render("Filters")}
	for _, in := range f.inputs {
		lines = append(lines, in.View())
	}
	if f.err != "" {
		lines = append(lines, errorStyle.Render(f.err))
	}
	return strings.Join(lines, "\n")
}
