package session

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang-jwt/jwt/v5"

	"github.com/MrJamesThe3rd/finny/internal/api"
)

const (
	msgLoginFailed    = "Login failed. Please check your credentials."
	msgSessionExpired = "Session expired. Please log in again."
	msgRegisterFailed = "Registration failed"
	msgUpdateFailed   = "Update failed"
	msgDeleteFailed   = "Delete failed"
	msgPersistFailed  = "Could not save your session on this device."
)

// Policy decides what a failed verification does to the stored token.
type Policy int

const (
	// ClearAlways treats every verification failure as an invalid session.
	ClearAlways Policy = iota
	// KeepOnTransport keeps the token when the backend could not be reached,
	// so a later Verify can retry. Explicit rejections still clear it.
	KeepOnTransport
)

// Manager owns every transition of the session state machine. It is the only
// component that touches token storage.
type Manager struct {
	backend  Backend
	storage  Storage
	policy   Policy
	timeout  time.Duration
	reverify time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

type Option func(*Manager)

func WithPolicy(p Policy) Option {
	return func(m *Manager) { m.policy = p }
}

// WithReverifyInterval enables silent re-verification while authenticated.
func WithReverifyInterval(d time.Duration) Option {
	return func(m *Manager) { m.reverify = d }
}

func WithTimeout(d time.Duration) Option {
	return func(m *Manager) { m.timeout = d }
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

func NewManager(backend Backend, storage Storage, opts ...Option) *Manager {
	m := &Manager{
		backend: backend,
		storage: storage,
		policy:  ClearAlways,
		timeout: 30 * time.Second,
		now:     time.Now,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Restore builds the process-start state from persistent storage. A storage
// failure is logged and treated as "no session".
func (m *Manager) Restore() State {
	ctx, cancel := m.ctx()
	defer cancel()

	token, err := m.storage.Load(ctx)
	if err != nil {
		m.logger.Error("failed to load session token", "error", err)
		return New("")
	}

	return New(token)
}

// Init leaves the Uninitialized phase. A stored token is never trusted before
// verification: it either starts a verify call or, if it is a JWT that has
// already expired, is rejected on the spot.
func (m *Manager) Init(s State) (State, tea.Cmd) {
	if s.Phase != PhaseUninitialized {
		return s, nil
	}

	if s.Token == "" {
		s.Phase = PhaseAnonymous
		return s, nil
	}

	if expired(s.Token, m.now()) {
		m.logger.Info("stored session token expired")

		s = m.clear(s)
		s.Phase = PhaseAnonymous
		s.Error = msgSessionExpired

		return s, nil
	}

	s.Phase = PhaseInitializing

	return s, m.verifyCmd(s, true)
}

func (m *Manager) Update(s State, msg tea.Msg) (State, tea.Cmd) {
	switch msg := msg.(type) {
	case Login:
		return m.login(s, msg)
	case LoginResult:
		return m.applyLogin(s, msg)
	case Logout:
		return m.logout(s), nil
	case Verify:
		if s.Token == "" || s.Initializing() {
			return s, nil
		}

		return s, m.verifyCmd(s, false)
	case VerifyResult:
		return m.applyVerify(s, msg)
	case reverifyTick:
		if msg.epoch != s.epoch || !s.Authenticated() {
			return s, nil
		}

		return s, m.verifyCmd(s, true)
	case Register:
		return m.register(s, msg)
	case RegisterResult:
		return m.applyOutcome(s, msg.epoch, msg.err, msgRegisterFailed), nil
	case UpdateProfile:
		return m.updateProfile(s, msg)
	case ProfileUpdated:
		return m.applyProfileUpdate(s, msg), nil
	case DeleteAccount:
		return m.deleteAccount(s)
	case AccountDeleted:
		return m.applyOutcome(s, msg.epoch, msg.err, msgDeleteFailed), nil
	}

	return s, nil
}

func (m *Manager) login(s State, req Login) (State, tea.Cmd) {
	if err := req.Validate(); err != nil {
		return failed(s, err, msgLoginFailed), nil
	}

	s.epoch++
	s.Action = ActionPending
	s.Error = ""

	epoch := s.epoch
	creds := api.Credentials{Username: req.Username, Password: req.Password}

	return s, func() tea.Msg {
		ctx, cancel := m.ctx()
		defer cancel()

		res, err := m.backend.Login(ctx, creds)

		return LoginResult{epoch: epoch, result: res, err: err}
	}
}

func (m *Manager) applyLogin(s State, r LoginResult) (State, tea.Cmd) {
	if r.epoch != s.epoch {
		m.logger.Debug("discarding stale login result")
		return s, nil
	}

	if r.err != nil {
		s = m.clear(s)
		s.Phase = PhaseAnonymous

		return failed(s, r.err, msgLoginFailed), nil
	}

	// Storage first: memory must never hold a token storage does not.
	ctx, cancel := m.ctx()
	defer cancel()

	if err := m.storage.Save(ctx, r.result.Token); err != nil {
		m.logger.Error("failed to persist session token", "error", err)

		s = m.clear(s)
		s.Phase = PhaseAnonymous
		s.Action = ActionFailed
		s.Error = msgPersistFailed

		return s, nil
	}

	s.Token = r.result.Token
	s.User = userFrom(r.result.Profile)
	s.Phase = PhaseAuthenticated
	s.Action = ActionSucceeded
	s.Error = ""

	return s, m.scheduleReverify(s)
}

func (m *Manager) logout(s State) State {
	s = m.clear(s)
	s.epoch++
	s.Phase = PhaseAnonymous
	s.Action = ActionIdle
	s.Error = ""

	return s
}

func (m *Manager) verifyCmd(s State, reschedule bool) tea.Cmd {
	epoch, token := s.epoch, s.Token

	return func() tea.Msg {
		ctx, cancel := m.ctx()
		defer cancel()

		profile, err := m.backend.Me(api.WithToken(ctx, token))

		return VerifyResult{epoch: epoch, token: token, profile: profile, err: err, reschedule: reschedule}
	}
}

func (m *Manager) applyVerify(s State, r VerifyResult) (State, tea.Cmd) {
	if r.epoch != s.epoch || r.token != s.Token {
		m.logger.Debug("discarding stale verification result")
		return s, nil
	}

	if r.err == nil {
		s.User = userFrom(*r.profile)
		s.Phase = PhaseAuthenticated
		s.Error = ""

		if !r.reschedule {
			return s, nil
		}

		return s, m.scheduleReverify(s)
	}

	m.logger.Warn("session verification failed", "error", r.err)

	if m.policy == KeepOnTransport && api.IsTransport(r.err) {
		// Backend unreachable: keep the credential. A silent check leaves an
		// authenticated session alone; a startup check ends without a user.
		if s.Phase != PhaseAuthenticated {
			s.Phase = PhaseAnonymous
		}

		s.Error = api.Message(r.err, msgSessionExpired)

		return s, nil
	}

	s = m.clear(s)
	s.Phase = PhaseAnonymous
	s.Error = api.Message(r.err, msgSessionExpired)

	return s, nil
}

func (m *Manager) register(s State, req Register) (State, tea.Cmd) {
	if err := req.Validate(); err != nil {
		return failed(s, err, msgRegisterFailed), nil
	}

	s.Action = ActionPending
	s.Error = ""

	epoch := s.epoch
	reg := api.Registration{Username: req.Username, Email: req.Email, Password: req.Password}

	return s, func() tea.Msg {
		ctx, cancel := m.ctx()
		defer cancel()

		return RegisterResult{epoch: epoch, err: m.backend.Register(ctx, reg)}
	}
}

func (m *Manager) updateProfile(s State, req UpdateProfile) (State, tea.Cmd) {
	if err := req.Validate(); err != nil {
		return failed(s, err, msgUpdateFailed), nil
	}

	if !s.Authenticated() {
		return failed(s, ErrNotSignedIn, msgUpdateFailed), nil
	}

	s.Action = ActionPending
	s.Error = ""

	epoch, token := s.epoch, s.Token
	update := api.ProfileUpdate{
		Username:        req.Username,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	}

	return s, func() tea.Msg {
		ctx, cancel := m.ctx()
		defer cancel()

		profile, err := m.backend.UpdateProfile(api.WithToken(ctx, token), update)

		return ProfileUpdated{epoch: epoch, profile: profile, err: err}
	}
}

func (m *Manager) applyProfileUpdate(s State, r ProfileUpdated) State {
	s = m.applyOutcome(s, r.epoch, r.err, msgUpdateFailed)
	if r.epoch != s.epoch || r.err != nil || s.User == nil || r.profile == nil {
		return s
	}

	user := *s.User
	if r.profile.Username != "" {
		user.DisplayName = r.profile.Username
	}

	if r.profile.Email != "" {
		user.Email = r.profile.Email
	}

	s.User = &user

	return s
}

func (m *Manager) deleteAccount(s State) (State, tea.Cmd) {
	if !s.Authenticated() {
		return failed(s, ErrNotSignedIn, msgDeleteFailed), nil
	}

	s.Action = ActionPending
	s.Error = ""

	epoch, token := s.epoch, s.Token

	return s, func() tea.Msg {
		ctx, cancel := m.ctx()
		defer cancel()

		return AccountDeleted{epoch: epoch, err: m.backend.DeleteAccount(api.WithToken(ctx, token))}
	}
}

// applyOutcome records the result of an operation that does not change identity.
func (m *Manager) applyOutcome(s State, epoch uint64, err error, fallback string) State {
	if epoch != s.epoch {
		return s
	}

	if err != nil {
		return failed(s, err, fallback)
	}

	s.Action = ActionSucceeded
	s.Error = ""

	return s
}

func (m *Manager) scheduleReverify(s State) tea.Cmd {
	if m.reverify <= 0 {
		return nil
	}

	epoch := s.epoch

	return tea.Tick(m.reverify, func(time.Time) tea.Msg {
		return reverifyTick{epoch: epoch}
	})
}

// clear drops the credential from storage and memory. A storage failure is
// logged; memory is cleared regardless because logout cannot be refused.
func (m *Manager) clear(s State) State {
	ctx, cancel := m.ctx()
	defer cancel()

	if err := m.storage.Clear(ctx); err != nil {
		m.logger.Error("failed to clear session token", "error", err)
	}

	s.Token = ""
	s.User = nil

	return s
}

func (m *Manager) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), m.timeout)
}

func failed(s State, err error, fallback string) State {
	s.Action = ActionFailed
	s.Error = api.Message(err, fallback)

	return s
}

func userFrom(p api.Profile) *User {
	return &User{ID: p.ID, DisplayName: p.Username, Email: p.Email}
}

// expired reports whether token is a JWT whose exp claim has passed. Opaque
// tokens and tokens without exp are left to the backend.
func expired(token string, now time.Time) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}

	return claims.ExpiresAt != nil && !claims.ExpiresAt.After(now)
}
