package session

import (
	"strings"

	"github.com/MrJamesThe3rd/finny/internal/api"
)

var (
	ErrMissingCredentials  = &api.ValidationError{Reason: "Username and password are required."}
	ErrMissingRegistration = &api.ValidationError{Reason: "Username, email and password are required."}
	ErrPasswordPair        = &api.ValidationError{Reason: "Both current and new passwords are required."}
	ErrEmptyUpdate         = &api.ValidationError{Reason: "Nothing to update."}
	ErrNotSignedIn         = &api.ValidationError{Reason: "You are not signed in."}
)

// Login requests a new session for the given credentials.
type Login struct {
	Username string
	Password string
}

func (l Login) Validate() error {
	if strings.TrimSpace(l.Username) == "" || l.Password == "" {
		return ErrMissingCredentials
	}

	return nil
}

// Logout clears the session. It never fails and may be repeated.
type Logout struct{}

// Verify re-checks the current token against the backend without
// re-entering the initializing phase.
type Verify struct{}

type Register struct {
	Username string
	Email    string
	Password string
}

func (r Register) Validate() error {
	if strings.TrimSpace(r.Username) == "" || strings.TrimSpace(r.Email) == "" || r.Password == "" {
		return ErrMissingRegistration
	}

	return nil
}

// UpdateProfile is a partial update. Empty fields are left unchanged; the
// two password fields must be supplied together.
type UpdateProfile struct {
	Username        string
	CurrentPassword string
	NewPassword     string
}

func (u UpdateProfile) Validate() error {
	if (u.CurrentPassword == "") != (u.NewPassword == "") {
		return ErrPasswordPair
	}

	if strings.TrimSpace(u.Username) == "" && u.NewPassword == "" {
		return ErrEmptyUpdate
	}

	return nil
}

// DeleteAccount removes the account. On success the caller is expected to
// dispatch Logout and navigate away.
type DeleteAccount struct{}

// LoginResult resolves a Login.
type LoginResult struct {
	epoch  uint64
	result *api.LoginResult
	err    error
}

func (r LoginResult) Err() error { return r.err }

// VerifyResult resolves a startup or silent verification.
type VerifyResult struct {
	epoch      uint64
	token      string
	profile    *api.Profile
	err        error
	reschedule bool
}

func (r VerifyResult) Err() error { return r.err }

type RegisterResult struct {
	epoch uint64
	err   error
}

func (r RegisterResult) Err() error { return r.err }

type ProfileUpdated struct {
	epoch   uint64
	profile *api.Profile
	err     error
}

func (r ProfileUpdated) Err() error { return r.err }

type AccountDeleted struct {
	epoch uint64
	err   error
}

func (r AccountDeleted) Err() error { return r.err }

type reverifyTick struct {
	epoch uint64
}
