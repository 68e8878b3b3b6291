package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/finny/internal/encoding"
	"github.com/MrJamesThe3rd/finny/internal/importer/cgd"
)

type Service struct {
	parsers     map[Bank]Parser
	categorizer Categorizer
}

func NewService(categorizer Categorizer) *Service {
	return &Service{
		parsers: map[Bank]Parser{
			BankCGD: cgd.NewParser(),
		},
		categorizer: categorizer,
	}
}

// Import decodes r to UTF-8, parses it with the bank's parser and
// categorizes every row.
func (s *Service) Import(ctx context.Context, bank Bank, r io.Reader) (Result, error) {
	parser, ok := s.parsers[bank]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownBank, bank)
	}

	utf8r, charset, err := encoding.Decode(r)
	if err != nil {
		return Result{}, fmt.Errorf("detect encoding: %w", err)
	}

	txs, err := parser.Parse(utf8r)
	if err != nil {
		return Result{}, err
	}

	for i := range txs {
		category, err := s.categorizer.Suggest(ctx, txs[i].Description)
		if err != nil {
			return Result{}, fmt.Errorf("categorize %q: %w", txs[i].Description, err)
		}

		txs[i].Category = category
	}

	return Result{Transactions: txs, Charset: charset}, nil
}
