package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"

	"github.com/MrJamesThe3rd/finny/internal/budget"
	"github.com/MrJamesThe3rd/finny/internal/forecast"
	"github.com/MrJamesThe3rd/finny/internal/report"
	"github.com/MrJamesThe3rd/finny/internal/transaction"
)

// Raw payloads are only trusted up to this file. Everything past it works
// with typed records.

func parseProfile(v gjson.Result) (Profile, error) {
	if !v.IsObject() {
		return Profile{}, fmt.Errorf("%w: profile is not an object", ErrInvalidPayload)
	}

	id, err := parseID(v)
	if err != nil {
		return Profile{}, fmt.Errorf("profile: %w", err)
	}

	return Profile{
		ID:       id,
		Username: v.Get("username").String(),
		Email:    v.Get("email").String(),
	}, nil
}

func parseTransactions(data []byte) ([]transaction.Transaction, error) {
	items, err := listOf(data)
	if err != nil {
		return nil, err
	}

	txs := make([]transaction.Transaction, 0, len(items))

	for i, v := range items {
		id, err := parseID(v)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}

		amount, err := parseAmount(v.Get("amount"))
		if err != nil {
			return nil, fmt.Errorf("transaction %s: %w", id, err)
		}

		date, err := parseDate(v.Get("date"))
		if err != nil {
			return nil, fmt.Errorf("transaction %s: %w", id, err)
		}

		txs = append(txs, transaction.Transaction{
			ID:          id,
			Type:        transaction.Type(v.Get("type").String()),
			Category:    v.Get("category").String(),
			Description: v.Get("description").String(),
			Amount:      amount,
			Date:        date,
		})
	}

	return txs, nil
}

func parseReport(v gjson.Result, requested string) (report.Report, error) {
	if !v.IsObject() {
		return report.Report{}, fmt.Errorf("%w: report is not an object", ErrInvalidPayload)
	}

	// The report belongs to the month that was asked for. An echoed month in
	// any other form would give the same month two slots.
	month := requested
	if echoed := v.Get("month").String(); echoed != "" && echoed != requested {
		return report.Report{}, fmt.Errorf("%w: report for %q returned month %q", ErrInvalidPayload, requested, echoed)
	}

	income, err := parseAmount(first(v, "income", "totalIncome"))
	if err != nil {
		return report.Report{}, fmt.Errorf("report %s income: %w", month, err)
	}

	expense, err := parseAmount(first(v, "expense", "totalExpense"))
	if err != nil {
		return report.Report{}, fmt.Errorf("report %s expense: %w", month, err)
	}

	return report.Report{Month: month, Income: income, Expense: expense}, nil
}

func parseBudgets(data []byte) ([]budget.Budget, error) {
	items, err := listOf(data)
	if err != nil {
		return nil, err
	}

	budgets := make([]budget.Budget, 0, len(items))

	for i, v := range items {
		id, err := parseID(v)
		if err != nil {
			return nil, fmt.Errorf("budget %d: %w", i, err)
		}

		limit, err := parseAmount(first(v, "limit", "amount"))
		if err != nil {
			return nil, fmt.Errorf("budget %s: %w", id, err)
		}

		budgets = append(budgets, budget.Budget{
			ID:       id,
			Category: v.Get("category").String(),
			Limit:    limit,
			Month:    v.Get("month").String(),
		})
	}

	return budgets, nil
}

func parseForecasts(data []byte) ([]forecast.Forecast, error) {
	items, err := listOf(data)
	if err != nil {
		return nil, err
	}

	forecasts := make([]forecast.Forecast, 0, len(items))

	for i, v := range items {
		amount, err := parseAmount(v.Get("amount"))
		if err != nil {
			return nil, fmt.Errorf("forecast %d: %w", i, err)
		}

		date, err := parseDate(v.Get("projectedDate"))
		if err != nil {
			return nil, fmt.Errorf("forecast %d: %w", i, err)
		}

		forecasts = append(forecasts, forecast.Forecast{
			Title:         v.Get("title").String(),
			Category:      v.Get("category").String(),
			Amount:        amount,
			ProjectedDate: date,
		})
	}

	return forecasts, nil
}

func listOf(data []byte) ([]gjson.Result, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidPayload)
	}

	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		root = root.Get("data")
	}

	if !root.IsArray() {
		return nil, fmt.Errorf("%w: expected a list", ErrInvalidPayload)
	}

	return root.Array(), nil
}

func first(v gjson.Result, keys ...string) gjson.Result {
	for _, k := range keys {
		if r := v.Get(k); r.Exists() {
			return r
		}
	}

	return gjson.Result{}
}

// parseID accepts numeric and string ids under "id" or "_id".
func parseID(v gjson.Result) (string, error) {
	r := first(v, "id", "_id")

	var id string

	switch r.Type {
	case gjson.Number:
		id = r.Raw
	case gjson.String:
		id = strings.TrimSpace(r.Str)
	}

	if id == "" {
		return "", fmt.Errorf("%w: missing id", ErrInvalidPayload)
	}

	return id, nil
}

func parseAmount(v gjson.Result) (decimal.Decimal, error) {
	var raw string

	switch v.Type {
	case gjson.Number:
		raw = v.Raw
	case gjson.String:
		raw = strings.TrimSpace(v.Str)
	default:
		return decimal.Zero, fmt.Errorf("%w: missing amount", ErrInvalidPayload)
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount %q: %w", ErrInvalidPayload, raw, err)
	}

	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: negative amount %s", ErrInvalidPayload, d)
	}

	return d, nil
}

func parseDate(v gjson.Result) (time.Time, error) {
	s := strings.TrimSpace(v.String())
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: missing date", ErrInvalidPayload)
	}

	for _, layout := range []string{time.DateOnly, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: date %q", ErrInvalidPayload, s)
}
