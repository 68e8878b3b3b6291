package resource_test

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finny/internal/api"
	"github.com/MrJamesThe3rd/finny/internal/resource"
)

func static[T any](items []T, err error) func() ([]T, error) {
	return func() ([]T, error) { return items, err }
}

func run[M any](t *testing.T, cmd tea.Cmd) M {
	t.Helper()
	require.NotNil(t, cmd)

	msg, ok := cmd().(M)
	require.True(t, ok, "unexpected message type")

	return msg
}

func TestList_Fetch(t *testing.T) {
	var l resource.List[string]

	l, cmd := l.Fetch(static([]string{"a", "b"}, nil))
	assert.True(t, l.Loading)
	assert.Empty(t, l.Error)

	l, applied := l.Apply(run[resource.Result[string]](t, cmd), "failed")
	assert.True(t, applied)
	assert.False(t, l.Loading)
	assert.Equal(t, []string{"a", "b"}, l.Items)
	assert.Equal(t, uint64(1), l.Version)
}

func TestList_FailureKeepsItems(t *testing.T) {
	l := resource.List[string]{}

	l, cmd := l.Fetch(static([]string{"kept"}, nil))
	l, _ = l.Apply(run[resource.Result[string]](t, cmd), "failed")

	l, cmd = l.Fetch(static[string](nil, errors.New("boom")))
	l, _ = l.Apply(run[resource.Result[string]](t, cmd), "Failed to fetch")

	assert.False(t, l.Loading)
	assert.Equal(t, "Failed to fetch", l.Error)
	assert.Equal(t, []string{"kept"}, l.Items)
	assert.Equal(t, uint64(1), l.Version, "failures are not new data")

	l, cmd = l.Fetch(static[string](nil, &api.Error{StatusCode: 500, Message: "db down"}))
	assert.Empty(t, l.Error, "issuing a fetch clears the previous error")

	l, _ = l.Apply(run[resource.Result[string]](t, cmd), "Failed to fetch")
	assert.Equal(t, "db down", l.Error)
}

func TestList_LateArrival(t *testing.T) {
	var l resource.List[string]

	l, first := l.Fetch(static([]string{"old"}, nil))
	l, second := l.Fetch(static([]string{"new"}, nil))

	// The second request resolves first.
	l, applied := l.Apply(run[resource.Result[string]](t, second), "failed")
	assert.True(t, applied)
	assert.False(t, l.Loading)

	l, applied = l.Apply(run[resource.Result[string]](t, first), "failed")
	assert.False(t, applied)

	assert.Equal(t, []string{"new"}, l.Items)
	assert.False(t, l.Loading)
}

func TestList_LoadingUntilLatestResolves(t *testing.T) {
	var l resource.List[string]

	l, first := l.Fetch(static([]string{"old"}, nil))
	l, second := l.Fetch(static([]string{"new"}, nil))

	l, _ = l.Apply(run[resource.Result[string]](t, first), "failed")
	assert.True(t, l.Loading, "a superseded result does not end loading")
	assert.Nil(t, l.Items)

	l, _ = l.Apply(run[resource.Result[string]](t, second), "failed")
	assert.False(t, l.Loading)
}

func TestList_Reset(t *testing.T) {
	var l resource.List[string]

	l, done := l.Fetch(static([]string{"a"}, nil))
	l, _ = l.Apply(run[resource.Result[string]](t, done), "failed")

	l, pending := l.Fetch(static([]string{"b"}, nil))
	l = l.Reset()

	assert.Nil(t, l.Items)
	assert.False(t, l.Loading)
	assert.Equal(t, uint64(1), l.Version)

	l, applied := l.Apply(run[resource.Result[string]](t, pending), "failed")
	assert.False(t, applied)
	assert.Nil(t, l.Items)
}

type entry struct {
	month string
	value int
}

func (e entry) Key() string { return e.month }

func fetchEntry(month string, value int) func() (entry, error) {
	return func() (entry, error) { return entry{month: month, value: value}, nil }
}

func TestKeyed_WindowAnyOrder(t *testing.T) {
	var k resource.Keyed[entry]

	months := []string{"2024-01", "2024-02", "2024-03"}
	cmds := make([]tea.Cmd, len(months))

	for i, m := range months {
		k, cmds[i] = k.Fetch(m, fetchEntry(m, i))
	}

	assert.True(t, k.Loading)

	for _, i := range []int{2, 0, 1} {
		k, _ = k.Apply(run[resource.KeyedResult[entry]](t, cmds[i]), "failed")
	}

	assert.False(t, k.Loading)
	require.Len(t, k.Items, 3)

	for i, m := range months {
		assert.Equal(t, m, k.Items[i].Key(), "items stay in key order")
	}
}

func TestKeyed_ClearDiscardsPreviousCycle(t *testing.T) {
	var k resource.Keyed[entry]

	k, stale := k.Fetch("2024-01", fetchEntry("2024-01", 1))
	k = k.Clear()

	k, fresh := k.Fetch("2024-01", fetchEntry("2024-01", 2))

	k, _ = k.Apply(run[resource.KeyedResult[entry]](t, fresh), "failed")
	k, applied := k.Apply(run[resource.KeyedResult[entry]](t, stale), "failed")

	assert.False(t, applied)
	require.Len(t, k.Items, 1)
	assert.Equal(t, 2, k.Items[0].value)
}

func TestKeyed_RefetchSameKey(t *testing.T) {
	var k resource.Keyed[entry]

	k, first := k.Fetch("2024-01", fetchEntry("2024-01", 1))
	k, second := k.Fetch("2024-01", fetchEntry("2024-01", 2))

	k, _ = k.Apply(run[resource.KeyedResult[entry]](t, second), "failed")
	k, _ = k.Apply(run[resource.KeyedResult[entry]](t, first), "failed")

	require.Len(t, k.Items, 1, "one slot per key")
	assert.Equal(t, 2, k.Items[0].value)
	assert.False(t, k.Loading)
}

func TestKeyed_CopiesDoNotShareState(t *testing.T) {
	var k resource.Keyed[entry]

	k, cmd := k.Fetch("2024-01", fetchEntry("2024-01", 1))
	before := k

	k, _ = k.Apply(run[resource.KeyedResult[entry]](t, cmd), "failed")

	assert.True(t, before.Loading)
	assert.Empty(t, before.Items)

	// The earlier snapshot still accepts the result it was waiting for.
	_, applied := before.Apply(run[resource.KeyedResult[entry]](t, cmd), "failed")
	assert.True(t, applied)
}

func TestKeyed_Failure(t *testing.T) {
	var k resource.Keyed[entry]

	k, ok := k.Fetch("2024-01", fetchEntry("2024-01", 1))
	k, bad := k.Fetch("2024-02", func() (entry, error) { return entry{}, api.ErrTransport })

	k, _ = k.Apply(run[resource.KeyedResult[entry]](t, bad), "Failed to fetch report")
	assert.True(t, k.Loading, "January is still in flight")
	assert.Equal(t, "Failed to fetch report", k.Error)

	k, _ = k.Apply(run[resource.KeyedResult[entry]](t, ok), "Failed to fetch report")
	assert.False(t, k.Loading)
	assert.Len(t, k.Items, 1)
}

func TestKeyed_SlotFollowsFetchKey(t *testing.T) {
	var k resource.Keyed[entry]

	// The record names its month differently from the key it was fetched under.
	for value := 1; value <= 2; value++ {
		var cmd tea.Cmd

		k, cmd = k.Fetch("2024-03", fetchEntry("2024-03-01", value))
		k, _ = k.Apply(run[resource.KeyedResult[entry]](t, cmd), "failed")
	}

	require.Len(t, k.Items, 1, "a refetch replaces the slot it was issued for")
	assert.Equal(t, 2, k.Items[0].value)
}
