package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/finny/internal/session"
	"github.com/MrJamesThe3rd/finny/internal/state"
)

var cardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 2).
	MarginRight(1)

// DashboardModel is the landing screen once signed in.
type DashboardModel struct {
	CommonModel
	now func() time.Time
}

func NewDashboardModel(now func() time.Time) DashboardModel {
	return DashboardModel{now: now}
}

func (m DashboardModel) Title() string { return "Dashboard" }

func (m DashboardModel) ShortHelp() string {
	return "r: refresh | t: transactions | f: forecast | p: profile | l: logout | q: quit"
}

func (m DashboardModel) Update(msg tea.Msg, _ state.Model) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return m, Dispatch(state.LoadDashboard{})
		case "t":
			return m, Navigate(ScreenTransactions)
		case "f":
			return m, Navigate(ScreenForecast)
		case "p":
			return m, Navigate(ScreenProfile)
		case "l":
			return m, Dispatch(session.Logout{})
		}
	}

	return m, nil
}

func (m DashboardModel) View(app state.Model) string {
	now := m.now()
	d := app.Summary(now)

	name := ""
	if app.Session.User != nil {
		name = app.Session.User.DisplayName
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		cardStyle.Render("Income\n"+incomeStyle.Render(FormatAmount(d.Totals.Income))),
		cardStyle.Render("Expenses\n"+expenseStyle.Render(FormatAmount(d.Totals.Expense))),
		cardStyle.Render("Net\n"+FormatAmount(d.Totals.Net)),
		cardStyle.Render(fmt.Sprintf("Upcoming\n%s (%d overdue)", FormatAmount(d.ForecastTotal), d.Overdue)),
	)

	var b strings.Builder

	fmt.Fprintf(&b, "%s\n\n", titleStyle.Render("Welcome back, "+name))
	b.WriteString(cards + "\n\n")

	b.WriteString(titleStyle.Render("Monthly reports") + "\n")
	b.WriteString(m.reports(app) + "\n")

	b.WriteString(titleStyle.Render("Spending by category") + "\n")
	if len(d.Categories) == 0 {
		b.WriteString(faintStyle.Render("No expenses yet.") + "\n")
	}

	for _, c := range d.Categories {
		fmt.Fprintf(&b, "  %-18s %14s\n", c.Category, FormatAmount(c.Amount))
	}

	b.WriteString("\n" + titleStyle.Render("Budgets") + "\n")
	if len(d.Budgets) == 0 {
		b.WriteString(faintStyle.Render("No budgets set.") + "\n")
	}

	for _, u := range d.Budgets {
		line := fmt.Sprintf("  %-18s %14s of %s", u.Category, FormatAmount(u.Spent), FormatAmount(u.Limit))
		if u.Over() {
			line = expenseStyle.Render(line + "  over budget")
		}

		b.WriteString(line + "\n")
	}

	for _, e := range []string{app.Transactions.Error, app.Budgets.Error, app.Forecasts.Error, app.Reports.Error} {
		if line := errorLine(e); line != "" {
			b.WriteString("\n" + line)
		}
	}

	if app.Transactions.Loading || app.Budgets.Loading || app.Forecasts.Loading || app.Reports.Loading {
		b.WriteString("\n" + faintStyle.Render("Loading..."))
	}

	return b.String()
}

// reports lists one line per loaded month. Items are kept in month order.
func (m DashboardModel) reports(app state.Model) string {
	if len(app.Reports.Items) == 0 {
		return faintStyle.Render("No reports loaded.") + "\n"
	}

	var b strings.Builder

	for _, r := range app.Reports.Items {
		fmt.Fprintf(&b, "  %s  %14s  %14s  %14s\n",
			r.Month,
			incomeStyle.Render(FormatAmount(r.Income)),
			expenseStyle.Render(FormatAmount(r.Expense)),
			FormatAmount(r.Net()),
		)
	}

	return b.String()
}
