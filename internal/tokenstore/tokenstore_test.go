package tokenstore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finny/internal/session"
	"github.com/MrJamesThe3rd/finny/internal/tokenstore"
)

var (
	_ session.Storage = (*tokenstore.Memory)(nil)
	_ session.Storage = (*tokenstore.SQLite)(nil)
)

func TestSQLite_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session.db")

	store, err := tokenstore.OpenSQLite(path)
	require.NoError(t, err)

	token, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token, "absent key means no session")

	require.NoError(t, store.Save(ctx, "first"))
	require.NoError(t, store.Save(ctx, "second"))

	token, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", token)

	require.NoError(t, store.Close())

	// A reopened store sees the persisted token.
	reopened, err := tokenstore.OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { reopened.Close() })

	token, err = reopened.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", token)

	require.NoError(t, reopened.Clear(ctx))
	require.NoError(t, reopened.Clear(ctx))

	token, err = reopened.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	store := tokenstore.NewMemory("seed")

	token, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "seed", token)

	require.NoError(t, store.Clear(ctx))

	token, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}
