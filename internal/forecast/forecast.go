package forecast

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Forecast is a projected upcoming expense, usually derived from a recurring payment.
type Forecast struct {
	Title         string
	Category      string
	Amount        decimal.Decimal
	ProjectedDate time.Time
}

// SortByProjectedDate returns a copy of fs ordered by ProjectedDate, oldest first.
// Items with the same date keep their arrival order.
func SortByProjectedDate(fs []Forecast) []Forecast {
	sorted := slices.Clone(fs)
	slices.SortStableFunc(sorted, func(a, b Forecast) int {
		return a.ProjectedDate.Compare(b.ProjectedDate)
	})

	return sorted
}

// Status describes where a forecast sits relative to today.
type Status int

const (
	StatusUpcoming Status = iota
	StatusDueToday
	StatusOverdue
)

func (s Status) String() string {
	switch s {
	case StatusUpcoming:
		return "Upcoming"
	case StatusDueToday:
		return "Due Today"
	case StatusOverdue:
		return "Overdue"
	}

	return "Unknown"
}

// StatusAt compares calendar days in UTC, the zone projected dates are issued in.
func StatusAt(f Forecast, now time.Time) Status {
	due := truncateDay(f.ProjectedDate)
	today := truncateDay(now)

	switch {
	case due.Before(today):
		return StatusOverdue
	case due.Equal(today):
		return StatusDueToday
	}

	return StatusUpcoming
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
