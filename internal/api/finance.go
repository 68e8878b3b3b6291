package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/MrJamesThe3rd/finny/internal/budget"
	"github.com/MrJamesThe3rd/finny/internal/forecast"
	"github.com/MrJamesThe3rd/finny/internal/report"
	"github.com/MrJamesThe3rd/finny/internal/transaction"
)

func (c *Client) ListTransactions(ctx context.Context) ([]transaction.Transaction, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/transactions", nil, nil)
	if err != nil {
		return nil, err
	}

	return parseTransactions(data)
}

// MonthlyReport fetches the report for month (YYYY-MM).
func (c *Client) MonthlyReport(ctx context.Context, month string) (*report.Report, error) {
	if !report.ValidMonth(month) {
		return nil, &ValidationError{Reason: fmt.Sprintf("invalid report month %q", month)}
	}

	data, err := c.do(ctx, http.MethodGet, "/api/reports/monthly", url.Values{"month": {month}}, nil)
	if err != nil {
		return nil, err
	}

	r, err := parseReport(gjson.ParseBytes(data), month)
	if err != nil {
		return nil, err
	}

	return &r, nil
}

func (c *Client) ListBudgets(ctx context.Context) ([]budget.Budget, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/budgets", nil, nil)
	if err != nil {
		return nil, err
	}

	return parseBudgets(data)
}

// Forecast lists the projected expenses in the order the backend returned them.
func (c *Client) Forecast(ctx context.Context) ([]forecast.Forecast, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/analytics/forecast", nil, nil)
	if err != nil {
		return nil, err
	}

	return parseForecasts(data)
}
