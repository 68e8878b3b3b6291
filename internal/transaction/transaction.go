package transaction

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Type represents the type of transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Is reports whether t and other name the same type. Backends disagree on casing
// ("Income", "EXPENSE"), so this is the only comparison callers should use.
func (t Type) Is(other Type) bool {
	return strings.EqualFold(strings.TrimSpace(string(t)), string(other))
}

// Transaction is a single income or expense entry as reported by the backend.
// Values are immutable once fetched.
type Transaction struct {
	ID          string
	Type        Type
	Category    string
	Description string
	Amount      decimal.Decimal // never negative
	Date        time.Time
}
