package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthLayout is the YYYY-MM key every report is addressed by.
const MonthLayout = "2006-01"

// Report is the income/expense summary the backend generates for one month.
type Report struct {
	Month   string
	Income  decimal.Decimal
	Expense decimal.Decimal
}

func (r Report) Net() decimal.Decimal {
	return r.Income.Sub(r.Expense)
}

// Key returns the month the report belongs to.
func (r Report) Key() string { return r.Month }

// Window returns the n months ending with the UTC month of now, oldest first.
// Months are computed from the first of the month so that day overflow
// (e.g. March 31 minus one month) never skips a month.
func Window(now time.Time, n int) []string {
	if n <= 0 {
		return nil
	}

	now = now.UTC()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	months := make([]string, 0, n)

	for offset := n - 1; offset >= 0; offset-- {
		months = append(months, first.AddDate(0, -offset, 0).Format(MonthLayout))
	}

	return months
}

// ValidMonth reports whether s is a YYYY-MM month key.
func ValidMonth(s string) bool {
	_, err := time.Parse(MonthLayout, s)
	return err == nil && len(s) == len(MonthLayout)
}
