package resource

import (
	"maps"
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/finny/internal/api"
)

// Keyer is implemented by records that own exactly one slot in a Keyed
// collection.
type Keyer interface {
	Key() string
}

// Keyed is a collection populated by one fetch per key, e.g. one report per
// month. Each key is fenced on its own so concurrent fetches for different
// keys never invalidate each other, while a refetch of the same key does.
type Keyed[T Keyer] struct {
	Items   []T
	Loading bool
	Error   string
	Version uint64

	// keys holds the fetch key of each item, index for index. Slots are
	// found by the key a fetch was issued for, never by what came back.
	keys []string

	gen      uint64
	seq      uint64
	inflight map[string]uint64
}

// KeyedResult resolves one Keyed fetch.
type KeyedResult[T Keyer] struct {
	gen  uint64
	seq  uint64
	key  string
	item T
	err  error
}

func (r KeyedResult[T]) Err() error { return r.err }

// Clear empties the collection and discards every result still in flight,
// so a new window never mixes with the previous one.
func (k Keyed[T]) Clear() Keyed[T] {
	return Keyed[T]{Version: k.Version, gen: k.gen + 1, seq: k.seq}
}

// Fetch issues the request for key. Only the most recent request per key
// is applied when it resolves.
func (k Keyed[T]) Fetch(key string, fetch func() (T, error)) (Keyed[T], tea.Cmd) {
	k.seq++
	k.inflight = maps.Clone(k.inflight)

	if k.inflight == nil {
		k.inflight = make(map[string]uint64)
	}

	k.inflight[key] = k.seq
	k.Loading = true
	k.Error = ""

	gen, seq := k.gen, k.seq

	return k, func() tea.Msg {
		item, err := fetch()
		return KeyedResult[T]{gen: gen, seq: seq, key: key, item: item, err: err}
	}
}

func (k Keyed[T]) Apply(r KeyedResult[T], fallback string) (Keyed[T], bool) {
	if r.gen != k.gen || k.inflight[r.key] != r.seq {
		return k, false
	}

	k.inflight = maps.Clone(k.inflight)
	delete(k.inflight, r.key)
	k.Loading = len(k.inflight) > 0

	if r.err != nil {
		k.Error = api.Message(r.err, fallback)
		return k, true
	}

	k.Items, k.keys = upsert(k.Items, k.keys, r.key, r.item)
	k.Version++

	return k, true
}

// upsert replaces the item stored under key or inserts it in key order. The
// input slices are never written to.
func upsert[T any](items []T, keys []string, key string, item T) ([]T, []string) {
	i, found := slices.BinarySearch(keys, key)
	if found {
		out := slices.Clone(items)
		out[i] = item

		return out, keys
	}

	return slices.Insert(slices.Clone(items), i, item), slices.Insert(slices.Clone(keys), i, key)
}
