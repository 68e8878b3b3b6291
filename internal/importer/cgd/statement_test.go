package cgd_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finny/internal/importer/cgd"
	"github.com/MrJamesThe3rd/finny/internal/transaction"
)

type movement struct {
	day    string
	desc   string
	amount string
	typ    transaction.Type
}

func movementsOf(txs []transaction.Transaction) []movement {
	out := make([]movement, len(txs))
	for i, tx := range txs {
		out[i] = movement{
			day:    tx.Date.Format(time.DateOnly),
			desc:   tx.Description,
			amount: tx.Amount.StringFixed(2),
			typ:    tx.Type,
		}
	}

	return out
}

func TestParser_Layouts(t *testing.T) {
	tests := []struct {
		name      string
		statement string
		want      []movement
	}{
		{
			name: "AccountWithPreamble",
			statement: "Consultar saldos e movimentos à ordem - 29-02-2024\n" +
				"Conta;1234 - EUR - Conta Extracto\n" +
				"Saldo disponível;2.150,00 EUR\n" +
				"\n" +
				"Data mov.;Data-valor;Descrição;Montante;Saldo\n" +
				"28-02-2024;28-02-2024;RENDA FEVEREIRO;-750,00;1.400,00\n" +
				"27-02-2024;27-02-2024;SALARIO ACME;1.850,25;2.150,00\n",
			want: []movement{
				{day: "2024-02-28", desc: "RENDA FEVEREIRO", amount: "750.00", typ: transaction.TypeExpense},
				{day: "2024-02-27", desc: "SALARIO ACME", amount: "1850.25", typ: transaction.TypeIncome},
			},
		},
		{
			name: "StatementWithTrailingSeparators",
			statement: "Data mov. ;Data valor ;Origem ;Descrição ;Movimento ;Saldo ;\n" +
				"05-03-2024;05-03-2024;SIBS ;NETFLIX.COM ;-13,99;  ;\n",
			want: []movement{
				{day: "2024-03-05", desc: "NETFLIX.COM", amount: "13.99", typ: transaction.TypeExpense},
			},
		},
		{
			name: "CardDebitAndRefund",
			statement: "Conta cartão ;4163 **** **** 0000\n" +
				"Data ;Data valor ;Descrição ;Débito ;Crédito ;\n" +
				"11-03-2024 ;10-03-2024 ;CONTINENTE PORTO ;42,10 ; ;\n" +
				"12-03-2024 ;12-03-2024 ;DEVOLUCAO CONTINENTE ; ;8,00 ;\n" +
				" ; ; ; ;Página 1/1 ;\n",
			want: []movement{
				{day: "2024-03-11", desc: "CONTINENTE PORTO", amount: "42.10", typ: transaction.TypeExpense},
				{day: "2024-03-12", desc: "DEVOLUCAO CONTINENTE", amount: "8.00", typ: transaction.TypeIncome},
			},
		},
		{
			name: "ColumnsInAnyOrder",
			statement: "Montante;Descrição;Data mov.\n" +
				"-1.234.567,89;OBRA COZINHA;01-03-2024\n",
			want: []movement{
				{day: "2024-03-01", desc: "OBRA COZINHA", amount: "1234567.89", typ: transaction.TypeExpense},
			},
		},
		{
			name: "SkipsZeroAndUndatedRows",
			statement: "Data mov.;Descrição;Montante\n" +
				"01-03-2024;ESTORNO;0,00\n" +
				"02-03-2024;GALP ENERGIA;-60,00\n" +
				"Totais;;-60,00\n",
			want: []movement{
				{day: "2024-03-02", desc: "GALP ENERGIA", amount: "60.00", typ: transaction.TypeExpense},
			},
		},
		{
			name:      "HeaderOnly",
			statement: "Data mov.;Descrição;Montante\n",
			want:      []movement{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txs, err := cgd.NewParser().Parse(strings.NewReader(tt.statement))
			require.NoError(t, err)

			assert.Equal(t, tt.want, movementsOf(txs))

			for _, tx := range txs {
				assert.Empty(t, tx.ID)
				assert.Empty(t, tx.Category)
			}
		})
	}
}

func TestParser_Errors(t *testing.T) {
	t.Run("NoHeader", func(t *testing.T) {
		_, err := cgd.NewParser().Parse(strings.NewReader("Nome;ANA\nNIF;123\n"))
		assert.ErrorIs(t, err, cgd.ErrUnknownFormat)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := cgd.NewParser().Parse(strings.NewReader(""))
		assert.ErrorIs(t, err, cgd.ErrUnknownFormat)
	})

	t.Run("DatedRowWithoutDescription", func(t *testing.T) {
		_, err := cgd.NewParser().Parse(strings.NewReader("Data mov.;Descrição;Montante\n02-03-2024;;-5,00\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "conta statement line 2")
	})
}
