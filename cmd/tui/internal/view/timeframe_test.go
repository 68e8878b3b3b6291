package view

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finny/internal/transaction"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRangeFor(t *testing.T) {
	now := time.Date(2024, 3, 31, 18, 30, 0, 0, time.UTC)

	tests := []struct {
		tf         Timeframe
		start, end time.Time
	}{
		{tf: TimeframeThisMonth, start: date(2024, 3, 1), end: date(2024, 3, 31)},
		{tf: TimeframeLastMonth, start: date(2024, 2, 1), end: date(2024, 2, 29)},
		{tf: TimeframeLastSixMonths, start: date(2023, 10, 1), end: date(2024, 3, 31)},
		{tf: TimeframeThisYear, start: date(2024, 1, 1), end: date(2024, 3, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.tf.String(), func(t *testing.T) {
			r := RangeFor(tt.tf, now)
			assert.Equal(t, tt.start, r.Start)
			assert.Equal(t, tt.end, r.End)
		})
	}

	assert.True(t, RangeFor(TimeframeAll, now).All())
}

func TestRange_ContainsWholeDays(t *testing.T) {
	r := Range{Start: date(2024, 3, 1), End: date(2024, 3, 31)}

	assert.True(t, r.Contains(time.Date(2024, 3, 31, 23, 59, 0, 0, time.UTC)))
	assert.True(t, r.Contains(date(2024, 3, 1)))
	assert.False(t, r.Contains(date(2024, 4, 1)))
	assert.False(t, r.Contains(date(2024, 2, 29)))
	assert.True(t, Range{}.Contains(date(1999, 1, 1)))
}

func TestParseRange(t *testing.T) {
	r, err := parseRange(" 2024-01-01", "2024-01-31 ")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01 to 2024-01-31", r.String())

	_, err = parseRange("2024-01-31", "2024-01-01")
	assert.EqualError(t, err, "end date is before start date")

	_, err = parseRange("yesterday", "2024-01-01")
	assert.Error(t, err)
}

func TestTransactionsModel_Visible(t *testing.T) {
	now := func() time.Time { return date(2024, 3, 15) }
	txs := []transaction.Transaction{
		{ID: "1", Type: "Income", Amount: decimal.NewFromInt(100), Date: date(2024, 3, 1)},
		{ID: "2", Type: transaction.TypeExpense, Amount: decimal.NewFromInt(40), Date: date(2024, 3, 2)},
		{ID: "3", Type: transaction.TypeExpense, Amount: decimal.NewFromInt(10), Date: date(2024, 2, 20)},
	}

	m := NewTransactionsModel(now)
	assert.Len(t, m.visible(txs), 3)

	m.typeIdx = 2
	assert.Len(t, m.visible(txs), 2)

	m.window = RangeFor(TimeframeThisMonth, now())
	got := m.visible(txs)
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)

	m.typeIdx = 1
	got = m.visible(txs)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1,234.50", FormatAmount(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "0.00", FormatAmount(decimal.Zero))
}
