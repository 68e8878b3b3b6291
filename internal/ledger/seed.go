package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finny/internal/budget"
	"github.com/MrJamesThe3rd/finny/internal/report"
	"github.com/MrJamesThe3rd/finny/internal/transaction"
)

// Seed creates a demo account with six months of activity ending at now.
func (l *Ledger) Seed(username, password string, now time.Time) (User, error) {
	u, err := l.Register(username, username+"@example.com", password)
	if err != nil {
		return User{}, fmt.Errorf("registering demo user: %w", err)
	}

	months := report.Window(now, 6)

	for i, month := range months {
		first, _ := time.Parse(report.MonthLayout, month)

		entries := []transaction.Transaction{
			{Type: transaction.TypeIncome, Category: "salary", Description: "Salary", Amount: decimal.NewFromInt(2500), Date: first},
			{Type: transaction.TypeExpense, Category: "rent", Description: "Rent", Amount: decimal.NewFromInt(900), Date: first.AddDate(0, 0, 1)},
			{Type: transaction.TypeExpense, Category: "groceries", Description: "Supermarket", Amount: decimal.NewFromInt(int64(180 + 15*i)), Date: first.AddDate(0, 0, 9)},
			{Type: transaction.TypeExpense, Category: "utilities", Description: "Electricity", Amount: decimal.RequireFromString("64.90"), Date: first.AddDate(0, 0, 14)},
		}

		for _, tx := range entries {
			if tx.Date.After(now) {
				continue
			}

			if err := l.AddTransaction(u.ID, tx); err != nil {
				return User{}, err
			}
		}
	}

	budgets := []budget.Budget{
		{Category: "groceries", Limit: decimal.NewFromInt(250)},
		{Category: "utilities", Limit: decimal.NewFromInt(80), Month: months[len(months)-1]},
	}

	for _, b := range budgets {
		if err := l.SetBudget(u.ID, b); err != nil {
			return User{}, err
		}
	}

	recurring := []Recurring{
		{Title: "Rent", Category: "rent", Amount: decimal.NewFromInt(900), Day: 2},
		{Title: "Electricity", Category: "utilities", Amount: decimal.RequireFromString("64.90"), Day: 15},
		{Title: "Streaming", Category: "entertainment", Amount: decimal.RequireFromString("12.99"), Day: 28},
	}

	for _, r := range recurring {
		if err := l.AddRecurring(u.ID, r); err != nil {
			return User{}, err
		}
	}

	return u, nil
}
