package budget

import "github.com/shopspring/decimal"

// Budget is a spending limit for one category.
type Budget struct {
	ID       string
	Category string
	Limit    decimal.Decimal
	Month    string // YYYY-MM, empty for recurring budgets
}
