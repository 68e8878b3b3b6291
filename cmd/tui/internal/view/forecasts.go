package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/finny/internal/forecast"
	"github.com/MrJamesThe3rd/finny/internal/state"
	"github.com/MrJamesThe3rd/finny/internal/summary"
)

type ForecastModel struct {
	CommonModel

	table table.Model
	now   func() time.Time
}

func NewForecastModel(now func() time.Time) ForecastModel {
	columns := []table.Column{
		{Title: "Due", Width: 12},
		{Title: "Title", Width: 24},
		{Title: "Category", Width: 16},
		{Title: "Amount", Width: 14},
		{Title: "Status", Width: 10},
	}

	return ForecastModel{
		table: newTable(columns, 12),
		now:   now,
	}
}

func (m ForecastModel) Title() string     { return "Upcoming Expenses" }
func (m ForecastModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m ForecastModel) Update(msg tea.Msg, app state.Model) (View, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-12, 5))
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, Dispatch(state.FetchForecast{})
		}

		m.table, cmd = m.table.Update(msg)
	}

	m.refreshTable(app.Forecasts.Items)

	return m, cmd
}

func (m *ForecastModel) refreshTable(fs []forecast.Forecast) {
	now := m.now()
	rows := make([]table.Row, 0, len(fs))

	for _, f := range fs {
		status := forecast.StatusAt(f, now)

		label := status.String()
		switch status {
		case forecast.StatusOverdue:
			label = expenseStyle.Render(label)
		case forecast.StatusDueToday:
			label = activeStyle(label)
		}

		rows = append(rows, table.Row{
			FormatDate(f.ProjectedDate),
			f.Title,
			f.Category,
			FormatAmount(f.Amount),
			label,
		})
	}

	m.table.SetRows(rows)
}

func (m ForecastModel) View(app state.Model) string {
	list := app.Forecasts

	if list.Loading && len(list.Items) == 0 {
		return lipgloss.NewStyle().Padding(2).Render("Loading forecast...")
	}

	if len(list.Items) == 0 {
		body := "No upcoming expenses."
		if line := errorLine(list.Error); line != "" {
			body += "\n\n" + line
		}

		return lipgloss.NewStyle().Padding(2).Render(body)
	}

	parts := []string{
		boxed(m.table.View()),
		fmt.Sprintf("Total projected: %s", expenseStyle.Render(FormatAmount(summary.ForecastTotal(list.Items)))),
	}

	if line := errorLine(list.Error); line != "" {
		parts = append(parts, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
