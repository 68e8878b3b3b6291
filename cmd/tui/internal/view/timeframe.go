package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Timeframe is a predefined or custom window over transaction dates.
type Timeframe int

const (
	TimeframeAll Timeframe = iota
	TimeframeThisMonth
	TimeframeLastMonth
	TimeframeLastSixMonths
	TimeframeThisYear
	TimeframeCustom
)

func (t Timeframe) String() string {
	switch t {
	case TimeframeAll:
		return "All Time"
	case TimeframeThisMonth:
		return "This Month"
	case TimeframeLastMonth:
		return "Last Month"
	case TimeframeLastSixMonths:
		return "Last 6 Months"
	case TimeframeThisYear:
		return "This Year"
	case TimeframeCustom:
		return "Custom Range"
	}

	return "Unknown"
}

// Range is an inclusive span of calendar days. The zero Range matches everything.
type Range struct {
	Label string
	Start time.Time
	End   time.Time
}

func (r Range) All() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Contains compares calendar days only.
func (r Range) Contains(t time.Time) bool {
	if r.All() {
		return true
	}

	day := dayOf(t)

	return !day.Before(r.Start) && !day.After(r.End)
}

func (r Range) String() string {
	if r.All() {
		return TimeframeAll.String()
	}

	if r.Label != "" {
		return r.Label
	}

	return FormatDate(r.Start) + " to " + FormatDate(r.End)
}

// RangeFor resolves a predefined timeframe against now.
func RangeFor(tf Timeframe, now time.Time) Range {
	today := dayOf(now)
	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	switch tf {
	case TimeframeThisMonth:
		return Range{Label: tf.String(), Start: first, End: today}
	case TimeframeLastMonth:
		return Range{Label: tf.String(), Start: first.AddDate(0, -1, 0), End: first.AddDate(0, 0, -1)}
	case TimeframeLastSixMonths:
		return Range{Label: tf.String(), Start: first.AddDate(0, -5, 0), End: today}
	case TimeframeThisYear:
		return Range{Label: tf.String(), Start: time.Date(today.Year(), 1, 1, 0, 0, 0, 0, time.UTC), End: today}
	}

	return Range{}
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// parseRange validates a custom range typed by the user.
func parseRange(start, end string) (Range, error) {
	s, err := time.Parse(time.DateOnly, strings.TrimSpace(start))
	if err != nil {
		return Range{}, errors.New("invalid start date (YYYY-MM-DD)")
	}

	e, err := time.Parse(time.DateOnly, strings.TrimSpace(end))
	if err != nil {
		return Range{}, errors.New("invalid end date (YYYY-MM-DD)")
	}

	if e.Before(s) {
		return Range{}, errors.New("end date is before start date")
	}

	return Range{Start: s, End: e}, nil
}

// RangeSelectedMsg is emitted when the user confirms a range.
type RangeSelectedMsg struct {
	Range Range
}

type pickerState int

const (
	pickerStateSelect pickerState = iota
	pickerStateCustom
)

// TimeframePicker selects the date range the transaction list is filtered by.
type TimeframePicker struct {
	state    pickerState
	selected Timeframe
	now      func() time.Time

	startInput textinput.Model
	endInput   textinput.Model
	focusIndex int

	err error
}

func NewTimeframePicker(now func() time.Time) TimeframePicker {
	si := textinput.New()
	si.Placeholder = "YYYY-MM-DD"
	si.CharLimit = 10
	si.Width = 12
	si.Prompt = "Start Date: "

	ei := textinput.New()
	ei.Placeholder = "YYYY-MM-DD"
	ei.CharLimit = 10
	ei.Width = 12
	ei.Prompt = "End Date:   "

	return TimeframePicker{
		state:      pickerStateSelect,
		selected:   TimeframeAll,
		now:        now,
		startInput: si,
		endInput:   ei,
	}
}

func (m TimeframePicker) Update(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		if m.state == pickerStateSelect {
			return m.updateSelect(key)
		}

		if next, cmd, handled := m.updateCustom(key); handled {
			return next, cmd
		}
	}

	if m.state == pickerStateCustom {
		return m.updateInputs(msg)
	}

	return m, nil
}

func (m TimeframePicker) updateSelect(msg tea.KeyMsg) (TimeframePicker, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.selected > TimeframeAll {
			m.selected--
		}
	case "down", "j":
		if m.selected < TimeframeCustom {
			m.selected++
		}
	case "enter":
		if m.selected == TimeframeCustom {
			m.state = pickerStateCustom
			m.focusIndex = 0
			m.startInput.Focus()
			m.endInput.Blur()

			return m, textinput.Blink
		}

		r := RangeFor(m.selected, m.now())

		return m, func() tea.Msg { return RangeSelectedMsg{Range: r} }
	}

	return m, nil
}

func (m TimeframePicker) updateCustom(msg tea.KeyMsg) (TimeframePicker, tea.Cmd, bool) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.focusIndex = (m.focusIndex + 1) % 2
		m.startInput.Blur()
		m.endInput.Blur()

		if m.focusIndex == 0 {
			m.startInput.Focus()
		} else {
			m.endInput.Focus()
		}

		return m, textinput.Blink, true

	case "enter":
		r, err := parseRange(m.startInput.Value(), m.endInput.Value())
		if err != nil {
			m.err = err
			return m, nil, true
		}

		m.err = nil

		return m, func() tea.Msg { return RangeSelectedMsg{Range: r} }, true

	case "esc":
		m.state = pickerStateSelect
		m.err = nil

		return m, nil, true
	}

	return m, nil, false
}

func (m TimeframePicker) updateInputs(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	var cmds []tea.Cmd
	var c tea.Cmd

	m.startInput, c = m.startInput.Update(msg)
	cmds = append(cmds, c)
	m.endInput, c = m.endInput.Update(msg)
	cmds = append(cmds, c)

	return m, tea.Batch(cmds...)
}

func (m TimeframePicker) View() string {
	var b strings.Builder

	if m.state == pickerStateCustom {
		fmt.Fprintf(&b, "Enter Custom Range:\n\n%s\n%s\n\n", m.startInput.View(), m.endInput.View())
		b.WriteString(faintStyle.Render("(Enter to confirm, Tab to switch, Esc to back)"))
	} else {
		b.WriteString("Select Timeframe:\n\n")

		for tf := TimeframeAll; tf <= TimeframeCustom; tf++ {
			if m.selected == tf {
				b.WriteString(activeStyle("> " + tf.String()))
			} else {
				b.WriteString("  " + tf.String())
			}

			b.WriteString("\n")
		}

		b.WriteString("\n" + faintStyle.Render("(Enter to select, Esc to back)"))
	}

	if m.err != nil {
		b.WriteString("\n\n" + errorLine(m.err.Error()))
	}

	return b.String()
}

// IsSelecting reports whether the picker is on its list rather than the custom inputs.
func (m TimeframePicker) IsSelecting() bool {
	return m.state == pickerStateSelect
}

func (m *TimeframePicker) Reset() {
	m.state = pickerStateSelect
	m.err = nil
	m.startInput.SetValue("")
	m.endInput.SetValue("")
}
