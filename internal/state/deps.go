package state

import (
	"context"

	"github.com/MrJamesThe3rd/finny/internal/budget"
	"github.com/MrJamesThe3rd/finny/internal/forecast"
	"github.com/MrJamesThe3rd/finny/internal/report"
	"github.com/MrJamesThe3rd/finny/internal/transaction"
)

//go:generate mockgen -source=deps.go -destination=deps_mock.go -package=state

// Finance is the subset of the API client the resource collections need.
type Finance interface {
	ListTransactions(ctx context.Context) ([]transaction.Transaction, error)
	MonthlyReport(ctx context.Context, month string) (*report.Report, error)
	ListBudgets(ctx context.Context) ([]budget.Budget, error)
	Forecast(ctx context.Context) ([]forecast.Forecast, error)
}
