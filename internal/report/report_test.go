package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWindow(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		n    int
		want []string
	}{
		{
			name: "SixMonthsOldestFirst",
			now:  time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC),
			n:    6,
			want: []string{"2023-10", "2023-11", "2023-12", "2024-01", "2024-02", "2024-03"},
		},
		{
			name: "Single",
			now:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			n:    1,
			want: []string{"2024-01"},
		},
		{
			// 00:30 on April 1st in Lisbon summer time is still March in UTC.
			name: "UsesUTCMonth",
			now:  time.Date(2024, 4, 1, 0, 30, 0, 0, time.FixedZone("WEST", 3600)),
			n:    2,
			want: []string{"2024-02", "2024-03"},
		},
		{
			name: "Zero",
			now:  time.Now(),
			n:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Window(tt.now, tt.n))
		})
	}
}

func TestValidMonth(t *testing.T) {
	assert.True(t, ValidMonth("2024-03"))
	assert.False(t, ValidMonth("2024-3"))
	assert.False(t, ValidMonth("2024-13"))
	assert.False(t, ValidMonth("March"))
	assert.False(t, ValidMonth(""))
}
