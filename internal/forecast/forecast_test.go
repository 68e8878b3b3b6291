package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, _ := time.Parse(time.DateOnly, s)
	return t
}

func TestSortByProjectedDate(t *testing.T) {
	in := []Forecast{
		{Title: "march", ProjectedDate: day("2024-03-10")},
		{Title: "january", ProjectedDate: day("2024-01-05")},
		{Title: "march-second", ProjectedDate: day("2024-03-10")},
	}

	got := SortByProjectedDate(in)

	titles := make([]string, len(got))
	for i, f := range got {
		titles[i] = f.Title
	}

	assert.Equal(t, []string{"january", "march", "march-second"}, titles)
	assert.Equal(t, "march", in[0].Title, "input is not modified")
}

func TestStatusAt(t *testing.T) {
	now := time.Date(2024, 3, 15, 23, 30, 0, 0, time.UTC)

	tests := []struct {
		date string
		want Status
	}{
		{date: "2024-03-14", want: StatusOverdue},
		{date: "2024-03-15", want: StatusDueToday},
		{date: "2024-03-16", want: StatusUpcoming},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusAt(Forecast{ProjectedDate: day(tt.date)}, now))
		})
	}

	assert.Equal(t, "Due Today", StatusDueToday.String())
}
