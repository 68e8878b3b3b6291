package summary_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finny/internal/budget"
	"github.com/MrJamesThe3rd/finny/internal/forecast"
	"github.com/MrJamesThe3rd/finny/internal/summary"
	"github.com/MrJamesThe3rd/finny/internal/transaction"
)

func tx(typ, category string, amount int64, date string) transaction.Transaction {
	d, _ := time.Parse(time.DateOnly, date)

	return transaction.Transaction{
		Type:     transaction.Type(typ),
		Category: category,
		Amount:   decimal.NewFromInt(amount),
		Date:     d,
	}
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name string
		txs  []transaction.Transaction
		want summary.Totals
	}{
		{
			name: "CaseInsensitive",
			txs: []transaction.Transaction{
				tx("Income", "salary", 100, "2024-01-01"),
				tx("expense", "food", 40, "2024-01-02"),
			},
			want: summary.Totals{
				Income:  decimal.NewFromInt(100),
				Expense: decimal.NewFromInt(40),
				Net:     decimal.NewFromInt(60),
			},
		},
		{
			name: "UnknownTypeIgnored",
			txs: []transaction.Transaction{
				tx("EXPENSE", "rent", 500, "2024-01-01"),
				tx("transfer", "savings", 1000, "2024-01-01"),
			},
			want: summary.Totals{
				Income:  decimal.Zero,
				Expense: decimal.NewFromInt(500),
				Net:     decimal.NewFromInt(-500),
			},
		},
		{
			name: "Empty",
			want: summary.Totals{Income: decimal.Zero, Expense: decimal.Zero, Net: decimal.Zero},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := summary.ComputeTotals(tt.txs)

			assert.True(t, tt.want.Income.Equal(got.Income), "income %s", got.Income)
			assert.True(t, tt.want.Expense.Equal(got.Expense), "expense %s", got.Expense)
			assert.True(t, tt.want.Net.Equal(got.Net), "net %s", got.Net)
		})
	}
}

func TestExpenseByCategory(t *testing.T) {
	txs := []transaction.Transaction{
		tx("expense", "food", 10, "2024-01-01"),
		tx("income", "salary", 1000, "2024-01-01"),
		tx("Expense", "rent", 500, "2024-01-02"),
		tx("EXPENSE", "food", 15, "2024-01-03"),
	}

	got := summary.ExpenseByCategory(txs)

	require.Len(t, got, 2)
	assert.Equal(t, "food", got[0].Category)
	assert.True(t, decimal.NewFromInt(25).Equal(got[0].Amount))
	assert.Equal(t, "rent", got[1].Category)
	assert.True(t, decimal.NewFromInt(500).Equal(got[1].Amount))

	assert.Equal(t, got, summary.ExpenseByCategory(txs), "stable for the same input")
}

func TestForecastTotal(t *testing.T) {
	fs := []forecast.Forecast{
		{Title: "Rent", Amount: decimal.RequireFromString("500.50")},
		{Title: "Gym", Amount: decimal.RequireFromString("30.25"), ProjectedDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	assert.Equal(t, "530.75", summary.ForecastTotal(fs).StringFixed(2))
	assert.True(t, summary.ForecastTotal(nil).IsZero())
}

func TestComputeBudgetUsage(t *testing.T) {
	budgets := []budget.Budget{
		{Category: "Food", Limit: decimal.NewFromInt(100)},
		{Category: "rent", Limit: decimal.NewFromInt(400), Month: "2024-02"},
	}

	txs := []transaction.Transaction{
		tx("expense", "food", 60, "2024-01-10"),
		tx("expense", "FOOD", 50, "2024-02-10"),
		tx("income", "food", 999, "2024-02-10"),
		tx("expense", "rent", 500, "2024-01-01"),
		tx("expense", "rent", 350, "2024-02-01"),
	}

	got := summary.ComputeBudgetUsage(budgets, txs)
	require.Len(t, got, 2)

	assert.True(t, decimal.NewFromInt(110).Equal(got[0].Spent))
	assert.True(t, decimal.NewFromInt(-10).Equal(got[0].Remaining))
	assert.True(t, got[0].Over())

	assert.True(t, decimal.NewFromInt(350).Equal(got[1].Spent), "only February counts")
	assert.False(t, got[1].Over())
}

func TestCompute(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

	fs := []forecast.Forecast{
		{Title: "a", Amount: decimal.NewFromInt(1), ProjectedDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{Title: "b", Amount: decimal.NewFromInt(2), ProjectedDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{Title: "c", Amount: decimal.NewFromInt(3), ProjectedDate: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)},
	}

	d := summary.Compute([]transaction.Transaction{tx("income", "salary", 10, "2024-03-01")}, fs, nil, now)

	assert.Equal(t, 1, d.Overdue)
	assert.True(t, decimal.NewFromInt(6).Equal(d.ForecastTotal))
	assert.True(t, decimal.NewFromInt(10).Equal(d.Totals.Net))
	assert.Empty(t, d.Categories)
	assert.Empty(t, d.Budgets)
}
