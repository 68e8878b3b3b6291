// Package state composes the session and every resource collection into one
// state tree with a single Update entry point.
package state

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/finny/internal/api"
	"github.com/MrJamesThe3rd/finny/internal/budget"
	"github.com/MrJamesThe3rd/finny/internal/forecast"
	"github.com/MrJamesThe3rd/finny/internal/report"
	"github.com/MrJamesThe3rd/finny/internal/resource"
	"github.com/MrJamesThe3rd/finny/internal/session"
	"github.com/MrJamesThe3rd/finny/internal/summary"
	"github.com/MrJamesThe3rd/finny/internal/transaction"
)

const (
	msgTransactionsFailed = "Failed to fetch transactions"
	msgReportFailed       = "Failed to fetch report"
	msgBudgetsFailed      = "Failed to fetch budgets"
	msgForecastFailed     = "Failed to fetch forecast data"

	DefaultReportWindow = 6
)

// Start leaves the uninitialized phase: a persisted token is verified, an
// absent one ends initialization as anonymous.
type Start struct{}

type FetchTransactions struct{}

type FetchBudgets struct{}

type FetchForecast struct{}

// RefreshReports clears the reports and refetches the window ending with the
// current month, one request per month, oldest first.
type RefreshReports struct{}

type ClearReports struct{}

// FetchReport fetches a single month outside the refresh window.
type FetchReport struct {
	Month string
}

func (f FetchReport) Validate() error {
	if !report.ValidMonth(f.Month) {
		return &api.ValidationError{Reason: "Month must be in YYYY-MM format."}
	}

	return nil
}

// LoadDashboard fetches transactions, budgets and the forecast together.
// Reports follow from the transactions.
type LoadDashboard struct{}

type env struct {
	manager *session.Manager
	finance Finance
	window  int
	timeout time.Duration
	now     func() time.Time
	logger  *slog.Logger
}

// Model is the whole client state. It is a value; Update returns the next one.
type Model struct {
	Session      session.State
	Transactions resource.List[transaction.Transaction]
	Reports      resource.Keyed[report.Report]
	Budgets      resource.List[budget.Budget]
	Forecasts    resource.List[forecast.Forecast]

	// reportsFor is the Transactions version the reports window was last
	// built for.
	reportsFor uint64

	env *env
}

type Option func(*env)

// WithReportWindow sets how many months RefreshReports covers.
func WithReportWindow(months int) Option {
	return func(e *env) {
		if months > 0 {
			e.window = months
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(e *env) { e.timeout = d }
}

func WithClock(now func() time.Time) Option {
	return func(e *env) { e.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *env) { e.logger = l }
}

// New restores the persisted session and returns the process-start model.
func New(manager *session.Manager, finance Finance, opts ...Option) Model {
	e := &env{
		manager: manager,
		finance: finance,
		window:  DefaultReportWindow,
		timeout: 30 * time.Second,
		now:     time.Now,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return Model{Session: manager.Restore(), env: e}
}

func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return Start{} }
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case Start:
		var cmd tea.Cmd
		m.Session, cmd = m.env.manager.Init(m.Session)

		return m, cmd
	case LoadDashboard, FetchTransactions, FetchBudgets, FetchForecast, RefreshReports, FetchReport:
		if m.Session.Token == "" {
			return m.refuse(msg), nil
		}
	}

	switch msg := msg.(type) {
	case LoadDashboard:
		var cmds [3]tea.Cmd
		m, cmds[0] = m.fetchTransactions()
		m, cmds[1] = m.fetchBudgets()
		m, cmds[2] = m.fetchForecast()

		return m, tea.Batch(cmds[:]...)
	case FetchTransactions:
		return m.fetchTransactions()
	case FetchBudgets:
		return m.fetchBudgets()
	case FetchForecast:
		return m.fetchForecast()
	case RefreshReports:
		return m.refreshReports()
	case ClearReports:
		m.Reports = m.Reports.Clear()
		return m, nil
	case FetchReport:
		if err := msg.Validate(); err != nil {
			m.Reports.Error = api.Message(err, msgReportFailed)
			return m, nil
		}

		return m.fetchReport(msg.Month)
	case resource.Result[transaction.Transaction]:
		var applied bool
		m.Transactions, applied = m.Transactions.Apply(msg, msgTransactionsFailed)
		m.logDiscarded("transactions", applied)

		return m.syncReports()
	case resource.KeyedResult[report.Report]:
		var applied bool
		m.Reports, applied = m.Reports.Apply(msg, msgReportFailed)
		m.logDiscarded("reports", applied)

		return m, nil
	case resource.Result[budget.Budget]:
		var applied bool
		m.Budgets, applied = m.Budgets.Apply(msg, msgBudgetsFailed)
		m.logDiscarded("budgets", applied)

		return m, nil
	case resource.Result[forecast.Forecast]:
		var applied bool
		m.Forecasts, applied = m.Forecasts.Apply(msg, msgForecastFailed)
		m.logDiscarded("forecast", applied)

		return m, nil
	}

	prev := m.Session.Token

	var cmd tea.Cmd
	m.Session, cmd = m.env.manager.Update(m.Session, msg)

	// A different identity, or none, must not see the previous user's data.
	if m.Session.Token != prev {
		m = m.resetData()
	}

	return m, cmd
}

// Summary computes the dashboard aggregates from the current collections.
func (m Model) Summary(now time.Time) summary.Dashboard {
	return summary.Compute(m.Transactions.Items, m.Forecasts.Items, m.Budgets.Items, now)
}

func (m Model) fetchTransactions() (Model, tea.Cmd) {
	var cmd tea.Cmd

	m.Transactions, cmd = m.Transactions.Fetch(bind(m, m.env.finance.ListTransactions))

	return m, cmd
}

func (m Model) fetchBudgets() (Model, tea.Cmd) {
	var cmd tea.Cmd

	m.Budgets, cmd = m.Budgets.Fetch(bind(m, m.env.finance.ListBudgets))

	return m, cmd
}

func (m Model) fetchForecast() (Model, tea.Cmd) {
	list := bind(m, m.env.finance.Forecast)

	var cmd tea.Cmd

	m.Forecasts, cmd = m.Forecasts.Fetch(func() ([]forecast.Forecast, error) {
		fs, err := list()
		if err != nil {
			return nil, err
		}

		return forecast.SortByProjectedDate(fs), nil
	})

	return m, cmd
}

func (m Model) fetchReport(month string) (Model, tea.Cmd) {
	finance, token, timeout := m.env.finance, m.Session.Token, m.env.timeout

	var cmd tea.Cmd

	m.Reports, cmd = m.Reports.Fetch(month, func() (report.Report, error) {
		ctx, cancel := requestContext(token, timeout)
		defer cancel()

		r, err := finance.MonthlyReport(ctx, month)
		if err != nil {
			return report.Report{}, err
		}

		return *r, nil
	})

	return m, cmd
}

func (m Model) refreshReports() (Model, tea.Cmd) {
	m.Reports = m.Reports.Clear()
	m.reportsFor = m.Transactions.Version

	months := report.Window(m.env.now(), m.env.window)
	cmds := make([]tea.Cmd, 0, len(months))

	for _, month := range months {
		var cmd tea.Cmd
		m, cmd = m.fetchReport(month)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// syncReports rebuilds the reports window whenever the transactions it was
// built from have changed.
func (m Model) syncReports() (Model, tea.Cmd) {
	if m.Transactions.Version == m.reportsFor {
		return m, nil
	}

	return m.refreshReports()
}

// refuse records why a fetch was not issued on the collection it targets.
func (m Model) refuse(msg tea.Msg) Model {
	reason := session.ErrNotSignedIn.Reason

	switch msg.(type) {
	case LoadDashboard:
		m.Transactions.Error = reason
		m.Budgets.Error = reason
		m.Forecasts.Error = reason
	case FetchTransactions:
		m.Transactions.Error = reason
	case FetchBudgets:
		m.Budgets.Error = reason
	case FetchForecast:
		m.Forecasts.Error = reason
	case RefreshReports, FetchReport:
		m.Reports.Error = reason
	}

	m.env.logger.Debug("refusing fetch without a session", "action", fmt.Sprintf("%T", msg))

	return m
}

func (m Model) resetData() Model {
	m.Transactions = m.Transactions.Reset()
	m.Budgets = m.Budgets.Reset()
	m.Forecasts = m.Forecasts.Reset()
	m.Reports = m.Reports.Clear()
	m.reportsFor = m.Transactions.Version

	return m
}

func (m Model) logDiscarded(kind string, applied bool) {
	if !applied {
		m.env.logger.Debug("discarding stale fetch result", "collection", kind)
	}
}

// bind captures the current token so the request is made on behalf of the
// session that issued it.
func bind[T any](m Model, call func(context.Context) ([]T, error)) func() ([]T, error) {
	token, timeout := m.Session.Token, m.env.timeout

	return func() ([]T, error) {
		ctx, cancel := requestContext(token, timeout)
		defer cancel()

		return call(ctx)
	}
}

func requestContext(token string, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	return api.WithToken(ctx, token), cancel
}
