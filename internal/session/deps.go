package session

import (
	"context"

	"github.com/MrJamesThe3rd/finny/internal/api"
)

//go:generate mockgen -source=deps.go -destination=deps_mock.go -package=session

// Backend is the subset of the API client the session needs.
type Backend interface {
	Login(ctx context.Context, creds api.Credentials) (*api.LoginResult, error)
	Register(ctx context.Context, reg api.Registration) error
	Me(ctx context.Context) (*api.Profile, error)
	UpdateProfile(ctx context.Context, update api.ProfileUpdate) (*api.Profile, error)
	DeleteAccount(ctx context.Context) error
}

// Storage persists the raw session token across restarts. Absence of a
// token is reported as "" with a nil error.
type Storage interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
