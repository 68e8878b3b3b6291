package store_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finny/internal/api"
	finnyHttp "github.com/MrJamesThe3rd/finny/internal/http"
	"github.com/MrJamesThe3rd/finny/internal/http/auth"
	"github.com/MrJamesThe3rd/finny/internal/http/finance"
	"github.com/MrJamesThe3rd/finny/internal/http/importcsv"
	"github.com/MrJamesThe3rd/finny/internal/http/matching"
	"github.com/MrJamesThe3rd/finny/internal/http/profile"
	"github.com/MrJamesThe3rd/finny/internal/importer"
	"github.com/MrJamesThe3rd/finny/internal/ledger"
	categories "github.com/MrJamesThe3rd/finny/internal/matching"
	rulestore "github.com/MrJamesThe3rd/finny/internal/matching/store"
	"github.com/MrJamesThe3rd/finny/internal/session"
	"github.com/MrJamesThe3rd/finny/internal/state"
	"github.com/MrJamesThe3rd/finny/internal/store"
	"github.com/MrJamesThe3rd/finny/internal/tokenstore"
)

func newStore(t *testing.T, token string) (*store.Store, *tokenstore.Memory) {
	t.Helper()

	now := time.Now()

	l := ledger.New()
	_, err := l.Seed("demo", "demo", now)
	require.NoError(t, err)

	rules := categories.NewService(rulestore.NewMemory())
	tokens := auth.NewTokens("test-secret", time.Hour)
	ts := httptest.NewServer(finnyHttp.New(
		tokens,
		[]string{"*"},
		auth.NewHandler(l, tokens),
		profile.NewHandler(l),
		finance.NewHandler(l, time.Now),
		importcsv.NewHandler(importer.NewService(rules), l),
		matching.NewHandler(rules),
	))
	t.Cleanup(ts.Close)

	client, err := api.New(api.Config{BaseURL: ts.URL})
	require.NoError(t, err)

	persisted := tokenstore.NewMemory(token)
	model := state.New(session.NewManager(client, persisted), client)

	s := store.New(model)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)
		s.Run(ctx)
	}()

	t.Cleanup(func() {
		cancel()
		<-done
	})

	require.Eventually(t, func() bool {
		return !s.Snapshot().Session.Initializing()
	}, 5*time.Second, 10*time.Millisecond)

	return s, persisted
}

func TestStore_LoginAndLoadDashboard(t *testing.T) {
	s, persisted := newStore(t, "")
	ctx := context.Background()

	require.NoError(t, s.Await(ctx, session.Login{Username: "demo", Password: "demo"}))

	snap := s.Snapshot()
	require.True(t, snap.Session.Authenticated())
	assert.Equal(t, "demo", snap.Session.User.DisplayName)

	token, err := persisted.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap.Session.Token, token)

	require.NoError(t, s.Await(ctx, state.LoadDashboard{}))

	snap = s.Snapshot()
	assert.NotEmpty(t, snap.Transactions.Items)
	assert.Len(t, snap.Budgets.Items, 2)
	assert.Len(t, snap.Forecasts.Items, 3)

	// Reports follow the transactions on their own.
	require.Eventually(t, func() bool {
		r := s.Snapshot().Reports
		return !r.Loading && len(r.Items) == 6
	}, 5*time.Second, 10*time.Millisecond)
}

func TestStore_AwaitReturnsOutcome(t *testing.T) {
	s, _ := newStore(t, "")
	ctx := context.Background()

	err := s.Await(ctx, session.Login{Username: "demo"})
	assert.ErrorIs(t, err, session.ErrMissingCredentials)

	err = s.Await(ctx, session.Login{Username: "demo", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", s.Snapshot().Session.Error)

	assert.NoError(t, s.Await(ctx, session.Logout{}))
}

func TestStore_VerifiesPersistedToken(t *testing.T) {
	s, persisted := newStore(t, "not-a-real-token")

	snap := s.Snapshot()
	assert.Equal(t, session.PhaseAnonymous, snap.Session.Phase)
	assert.Empty(t, snap.Session.Token)

	token, err := persisted.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, token, "a rejected token is removed from storage")
}

func TestStore_DeleteThenLogout(t *testing.T) {
	s, persisted := newStore(t, "")
	ctx := context.Background()

	require.NoError(t, s.Await(ctx, session.Login{Username: "demo", Password: "demo"}))
	require.NoError(t, s.Await(ctx, session.DeleteAccount{}))
	require.NoError(t, s.Await(ctx, session.Logout{}))

	assert.False(t, s.Snapshot().Session.Authenticated())

	token, err := persisted.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	err = s.Await(ctx, session.Login{Username: "demo", Password: "demo"})
	assert.Error(t, err, "the account is gone")
}

func TestStore_Subscribe(t *testing.T) {
	s, _ := newStore(t, "")

	updates, unsubscribe := s.Subscribe()
	defer unsubscribe()

	s.Dispatch(session.Login{Username: "demo", Password: "demo"})

	timeout := time.After(5 * time.Second)

	for {
		select {
		case m := <-updates:
			if m.Session.Authenticated() {
				return
			}
		case <-timeout:
			t.Fatal("never observed an authenticated snapshot")
		}
	}
}
