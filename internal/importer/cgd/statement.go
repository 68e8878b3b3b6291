// Package cgd reads the CSV statements Caixa Geral de Depósitos exports for
// current accounts and debit cards.
package cgd

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/finny/internal/transaction"
)

var (
	ErrUnknownFormat = errors.New("cgd: no known statement header found")

	errNoDescription = errors.New("movement has no description")
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse reads a UTF-8 statement. Everything above the header row (account
// details, query filters) is ignored, as are rows below it without a date,
// such as page markers and totals. Categories are left for the caller.
func (p *Parser) Parse(r io.Reader) ([]transaction.Transaction, error) {
	rd := csv.NewReader(r)
	rd.Comma = ';'
	rd.FieldsPerRecord = -1
	rd.LazyQuotes = true

	var (
		cols *binding
		txs  []transaction.Transaction
	)

	for {
		rec, err := rd.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("reading statement: %w", err)
		}

		if cols == nil {
			cols = bindHeader(rec)
			continue
		}

		tx, ok, err := cols.transaction(rec)
		if err != nil {
			line, _ := rd.FieldPos(0)
			return nil, fmt.Errorf("%s statement line %d: %w", cols.layout, line, err)
		}

		if ok {
			txs = append(txs, tx)
		}
	}

	if cols == nil {
		return nil, ErrUnknownFormat
	}

	return txs, nil
}
