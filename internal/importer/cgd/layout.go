package cgd

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finny/internal/transaction"
)

const dateLayout = "02-01-2006"

type column int

const (
	colDate column = iota
	colDescription
	colSigned // one signed amount, negative when money leaves the account
	colDebit
	colCredit
)

// layout names the header of every column one export format needs.
type layout struct {
	name    string
	headers map[column]string
}

// First match wins.
var layouts = []layout{
	{
		name: "cartão",
		headers: map[column]string{
			colDate:        "Data",
			colDescription: "Descrição",
			colDebit:       "Débito",
			colCredit:      "Crédito",
		},
	},
	{
		name: "extrato",
		headers: map[column]string{
			colDate:        "Data mov.",
			colDescription: "Descrição",
			colSigned:      "Movimento",
		},
	},
	{
		name: "conta",
		headers: map[column]string{
			colDate:        "Data mov.",
			colDescription: "Descrição",
			colSigned:      "Montante",
		},
	},
}

// binding is a layout resolved against the positions of an actual header row.
type binding struct {
	layout string
	index  map[column]int
}

// bindHeader returns nil when rec is not the header of any known layout.
func bindHeader(rec []string) *binding {
	pos := make(map[string]int, len(rec))

	for i, cell := range rec {
		name := strings.TrimSpace(cell)
		if _, seen := pos[name]; name != "" && !seen {
			pos[name] = i
		}
	}

	for _, l := range layouts {
		if b, ok := l.bind(pos); ok {
			return b
		}
	}

	return nil
}

func (l layout) bind(pos map[string]int) (*binding, bool) {
	index := make(map[column]int, len(l.headers))

	for col, header := range l.headers {
		i, ok := pos[header]
		if !ok {
			return nil, false
		}

		index[col] = i
	}

	return &binding{layout: l.name, index: index}, true
}

func (b *binding) cell(rec []string, col column) string {
	i, ok := b.index[col]
	if !ok || i >= len(rec) {
		return ""
	}

	return strings.TrimSpace(rec[i])
}

// transaction maps one statement row onto a dashboard transaction. ok is
// false for rows that are not movements.
func (b *binding) transaction(rec []string) (tx transaction.Transaction, ok bool, err error) {
	date, err := time.Parse(dateLayout, b.cell(rec, colDate))
	if err != nil {
		return tx, false, nil
	}

	desc := b.cell(rec, colDescription)
	if desc == "" {
		return tx, false, errNoDescription
	}

	amount, typ, ok := b.movement(rec)
	if !ok {
		return tx, false, nil
	}

	return transaction.Transaction{
		Type:        typ,
		Description: desc,
		Amount:      amount,
		Date:        date,
	}, true, nil
}

// movement returns the unsigned amount of a row and which way it went.
func (b *binding) movement(rec []string) (decimal.Decimal, transaction.Type, bool) {
	if _, signed := b.index[colSigned]; signed {
		d, ok := euros(b.cell(rec, colSigned))
		if !ok {
			return decimal.Zero, "", false
		}

		if d.IsNegative() {
			return d.Neg(), transaction.TypeExpense, true
		}

		return d, transaction.TypeIncome, true
	}

	if d, ok := euros(b.cell(rec, colDebit)); ok {
		return d.Abs(), transaction.TypeExpense, true
	}

	if d, ok := euros(b.cell(rec, colCredit)); ok {
		return d.Abs(), transaction.TypeIncome, true
	}

	return decimal.Zero, "", false
}

// euros parses a non-zero Portuguese amount such as "-1.234,56".
func euros(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(strings.ReplaceAll(strings.ReplaceAll(s, ".", ""), ",", "."))
	if err != nil || d.IsZero() {
		return decimal.Zero, false
	}

	return d.Round(2), true
}
