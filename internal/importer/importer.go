// Package importer turns bank statement exports into ledger transactions.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MrJamesThe3rd/finny/internal/encoding"
	"github.com/MrJamesThe3rd/finny/internal/transaction"
)

type Bank string

const (
	BankCGD Bank = "cgd"
)

var ErrUnknownBank = errors.New("unknown bank")

func ParseBank(s string) (Bank, error) {
	switch b := Bank(strings.ToLower(strings.TrimSpace(s))); b {
	case BankCGD:
		return b, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownBank, s)
}

// Parser reads one bank's UTF-8 export.
type Parser interface {
	Parse(r io.Reader) ([]transaction.Transaction, error)
}

// Categorizer assigns a category from a bank description.
type Categorizer interface {
	Suggest(ctx context.Context, description string) (string, error)
}

type Result struct {
	Transactions []transaction.Transaction
	Charset      encoding.Charset
}
