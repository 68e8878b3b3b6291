package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/MrJamesThe3rd/finny/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/finny/internal/state"
	"github.com/MrJamesThe3rd/finny/internal/store"
)

var errNoSession = errors.New("no saved session, sign in with the TUI first")

// printSummary runs the client headless: it waits for the saved session to
// be checked, loads the dashboard and the reports window, and writes the
// aggregates to w.
func printSummary(ctx context.Context, w io.Writer, app state.Model, now time.Time) error {
	ctx, cancel := context.WithCancel(ctx)

	s := store.New(app)

	updates, unsubscribe := s.Subscribe()
	defer unsubscribe()

	done := make(chan struct{})

	go func() {
		defer close(done)
		_ = s.Run(ctx)
	}()

	defer func() {
		cancel()
		<-done
	}()

	m, err := settled(ctx, s, updates)
	if err != nil {
		return err
	}

	if !m.Session.Authenticated() {
		if m.Session.Error != "" {
			return fmt.Errorf("%w: %s", errNoSession, m.Session.Error)
		}

		return errNoSession
	}

	if err := s.Await(ctx, state.LoadDashboard{}); err != nil {
		return fmt.Errorf("loading dashboard: %w", err)
	}

	if err := s.Await(ctx, state.RefreshReports{}); err != nil {
		return fmt.Errorf("loading reports: %w", err)
	}

	m = s.Snapshot()

	_, err = io.WriteString(w, renderSummary(m, now))

	return err
}

// settled blocks until the startup session check has an outcome.
func settled(ctx context.Context, s *store.Store, updates <-chan state.Model) (state.Model, error) {
	m := s.Snapshot()

	for m.Session.Initializing() {
		select {
		case next, ok := <-updates:
			if !ok {
				return m, store.ErrStopped
			}

			m = next
		case <-ctx.Done():
			return m, ctx.Err()
		}
	}

	return m, nil
}

func renderSummary(m state.Model, now time.Time) string {
	d := m.Summary(now)
	bold := lipgloss.NewStyle().Bold(true)

	var b strings.Builder

	fmt.Fprintf(&b, "%s\n\n", bold.Render("Finny summary for "+m.Session.User.DisplayName))

	fmt.Fprintln(&b, table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Income", "Expenses", "Net", "Forecast", "Overdue").
		Row(
			view.FormatAmount(d.Totals.Income),
			view.FormatAmount(d.Totals.Expense),
			view.FormatAmount(d.Totals.Net),
			view.FormatAmount(d.ForecastTotal),
			fmt.Sprint(d.Overdue),
		).
		Render())

	reports := table.New().Border(lipgloss.NormalBorder()).Headers("Month", "Income", "Expense", "Net")
	for _, r := range m.Reports.Items {
		reports.Row(r.Month, view.FormatAmount(r.Income), view.FormatAmount(r.Expense), view.FormatAmount(r.Net()))
	}

	fmt.Fprintln(&b, reports.Render())

	if len(d.Budgets) > 0 {
		budgets := table.New().Border(lipgloss.NormalBorder()).Headers("Budget", "Spent", "Limit", "")
		for _, u := range d.Budgets {
			flag := ""
			if u.Over() {
				flag = "over"
			}

			budgets.Row(u.Category, view.FormatAmount(u.Spent), view.FormatAmount(u.Limit), flag)
		}

		fmt.Fprintln(&b, budgets.Render())
	}

	return b.String()
}
