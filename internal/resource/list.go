// Package resource implements the fetch lifecycle shared by every data
// collection: a loading flag, the last error, and a fence that drops results
// from requests that are no longer the most recent one.
package resource

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/finny/internal/api"
)

// List is a collection replaced wholesale by each successful fetch.
type List[T any] struct {
	Items   []T
	Loading bool
	Error   string

	// Version counts applied successes. Dependents compare it to decide
	// whether their own data must be refetched.
	Version uint64

	seq uint64
}

// Result resolves one List fetch.
type Result[T any] struct {
	seq   uint64
	items []T
	err   error
}

func (r Result[T]) Err() error { return r.err }

// Fetch marks the list as loading and returns the command that performs the
// request. Issuing a new fetch makes every earlier in-flight fetch stale.
func (l List[T]) Fetch(fetch func() ([]T, error)) (List[T], tea.Cmd) {
	l.seq++
	l.Loading = true
	l.Error = ""

	seq := l.seq

	return l, func() tea.Msg {
		items, err := fetch()
		return Result[T]{seq: seq, items: items, err: err}
	}
}

// Apply folds a fetch result into the list. Results from superseded fetches
// are ignored entirely, so a slow request never overwrites fresher data.
// On failure the previous items are kept.
func (l List[T]) Apply(r Result[T], fallback string) (List[T], bool) {
	if r.seq != l.seq {
		return l, false
	}

	l.Loading = false

	if r.err != nil {
		l.Error = api.Message(r.err, fallback)
		return l, true
	}

	l.Items = r.items
	l.Error = ""
	l.Version++

	return l, true
}

// Reset drops the items and invalidates anything in flight. Version is kept
// so it stays monotonic for dependents.
func (l List[T]) Reset() List[T] {
	return List[T]{Version: l.Version, seq: l.seq + 1}
}
