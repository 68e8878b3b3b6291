// Package summary computes the dashboard aggregates from fetched records.
// Every function is pure: the same input always yields the same output.
package summary

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finny/internal/budget"
	"github.com/MrJamesThe3rd/finny/internal/forecast"
	"github.com/MrJamesThe3rd/finny/internal/report"
	"github.com/MrJamesThe3rd/finny/internal/transaction"
)

type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
}

func ComputeTotals(txs []transaction.Transaction) Totals {
	var t Totals

	for _, tx := range txs {
		switch {
		case tx.Type.Is(transaction.TypeIncome):
			t.Income = t.Income.Add(tx.Amount)
		case tx.Type.Is(transaction.TypeExpense):
			t.Expense = t.Expense.Add(tx.Amount)
		}
	}

	t.Net = t.Income.Sub(t.Expense)

	return t
}

type CategoryAmount struct {
	Category string
	Amount   decimal.Decimal
}

// ExpenseByCategory sums expenses per category. Categories appear in the order
// they are first seen in txs.
func ExpenseByCategory(txs []transaction.Transaction) []CategoryAmount {
	var out []CategoryAmount

	index := make(map[string]int)

	for _, tx := range txs {
		if !tx.Type.Is(transaction.TypeExpense) {
			continue
		}

		i, ok := index[tx.Category]
		if !ok {
			i = len(out)
			index[tx.Category] = i
			out = append(out, CategoryAmount{Category: tx.Category})
		}

		out[i].Amount = out[i].Amount.Add(tx.Amount)
	}

	return out
}

// ForecastTotal sums every forecast the backend returned, regardless of date.
func ForecastTotal(fs []forecast.Forecast) decimal.Decimal {
	total := decimal.Zero
	for _, f := range fs {
		total = total.Add(f.Amount)
	}

	return total
}

type BudgetUsage struct {
	Category  string
	Limit     decimal.Decimal
	Spent     decimal.Decimal
	Remaining decimal.Decimal // negative when over budget
}

func (u BudgetUsage) Over() bool {
	return u.Spent.GreaterThan(u.Limit)
}

// ComputeBudgetUsage matches expenses to budgets by category, ignoring case.
// A budget bound to a month only counts expenses dated in that month.
func ComputeBudgetUsage(budgets []budget.Budget, txs []transaction.Transaction) []BudgetUsage {
	out := make([]BudgetUsage, 0, len(budgets))

	for _, b := range budgets {
		spent := decimal.Zero

		for _, tx := range txs {
			if !tx.Type.Is(transaction.TypeExpense) || !strings.EqualFold(tx.Category, b.Category) {
				continue
			}

			if b.Month != "" && tx.Date.UTC().Format(report.MonthLayout) != b.Month {
				continue
			}

			spent = spent.Add(tx.Amount)
		}

		out = append(out, BudgetUsage{
			Category:  b.Category,
			Limit:     b.Limit,
			Spent:     spent,
			Remaining: b.Limit.Sub(spent),
		})
	}

	return out
}

// Dashboard bundles every aggregate a dashboard view renders.
type Dashboard struct {
	Totals        Totals
	Categories    []CategoryAmount
	ForecastTotal decimal.Decimal
	Budgets       []BudgetUsage
	Overdue       int
}

func Compute(txs []transaction.Transaction, fs []forecast.Forecast, budgets []budget.Budget, now time.Time) Dashboard {
	overdue := 0

	for _, f := range fs {
		if forecast.StatusAt(f, now) == forecast.StatusOverdue {
			overdue++
		}
	}

	return Dashboard{
		Totals:        ComputeTotals(txs),
		Categories:    ExpenseByCategory(txs),
		ForecastTotal: ForecastTotal(fs),
		Budgets:       ComputeBudgetUsage(budgets, txs),
		Overdue:       overdue,
	}
}
