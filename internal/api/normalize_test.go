package api

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/MrJamesThe3rd/finny/internal/transaction"
)

func TestParseTransactions(t *testing.T) {
	data := []byte(`[
		{"_id": "a1", "type": "Income", "category": "salary", "amount": 100, "date": "2024-01-31"},
		{"id": 42, "type": "expense", "category": "food", "amount": "12.30", "date": "2024-02-01T10:00:00Z"}
	]`)

	txs, err := parseTransactions(data)
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, "a1", txs[0].ID)
	assert.True(t, txs[0].Type.Is(transaction.TypeIncome))
	assert.True(t, decimal.NewFromInt(100).Equal(txs[0].Amount))
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), txs[0].Date)

	assert.Equal(t, "42", txs[1].ID)
	assert.True(t, decimal.RequireFromString("12.3").Equal(txs[1].Amount))
	assert.Equal(t, time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC), txs[1].Date)
}

func TestParseTransactions_Wrapped(t *testing.T) {
	txs, err := parseTransactions([]byte(`{"data":[{"id":"x","type":"expense","amount":1,"date":"2024-01-01"}]}`))
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}

func TestParseTransactions_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "NotJSON", data: `<html>`},
		{name: "NotAList", data: `{"id":"x"}`},
		{name: "MissingID", data: `[{"type":"expense","amount":1,"date":"2024-01-01"}]`},
		{name: "NegativeAmount", data: `[{"id":"x","type":"expense","amount":-1,"date":"2024-01-01"}]`},
		{name: "BadDate", data: `[{"id":"x","type":"expense","amount":1,"date":"01/02/2024"}]`},
		{name: "MissingAmount", data: `[{"id":"x","type":"expense","date":"2024-01-01"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseTransactions([]byte(tt.data))
			assert.ErrorIs(t, err, ErrInvalidPayload)
		})
	}
}

func TestParseForecasts_KeepsArrivalOrder(t *testing.T) {
	fs, err := parseForecasts([]byte(`[
		{"title":"Gym","category":"health","amount":30,"projectedDate":"2024-03-10"},
		{"title":"Rent","category":"housing","amount":800,"projectedDate":"2024-01-05"}
	]`))
	require.NoError(t, err)
	require.Len(t, fs, 2)

	assert.Equal(t, "Gym", fs[0].Title)
	assert.Equal(t, "Rent", fs[1].Title)
}

func TestParseBudgets(t *testing.T) {
	bs, err := parseBudgets([]byte(`[{"id":"b1","category":"food","limit":"250.00","month":"2024-02"},{"id":"b2","category":"fun","amount":50}]`))
	require.NoError(t, err)
	require.Len(t, bs, 2)

	assert.True(t, decimal.NewFromInt(250).Equal(bs[0].Limit))
	assert.Equal(t, "2024-02", bs[0].Month)
	assert.True(t, decimal.NewFromInt(50).Equal(bs[1].Limit))
}

func TestParseReport_Month(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{name: "Absent", data: `{"income": 1, "expense": 2}`},
		{name: "Echoed", data: `{"month": "2024-03", "income": 1, "expense": 2}`},
		{name: "OtherForm", data: `{"month": "2024-03-01", "income": 1, "expense": 2}`, wantErr: true},
		{name: "OtherMonth", data: `{"month": "2024-04", "income": 1, "expense": 2}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := parseReport(gjson.Parse(tt.data), "2024-03")
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPayload)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "2024-03", r.Month)
		})
	}
}
