package session

// Phase is the position of a session in its lifecycle.
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseInitializing
	PhaseAuthenticated
	PhaseAnonymous
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseInitializing:
		return "initializing"
	case PhaseAuthenticated:
		return "authenticated"
	case PhaseAnonymous:
		return "anonymous"
	}

	return "unknown"
}

// ActionStatus tracks the last user-triggered operation (login, register,
// profile update, account deletion).
type ActionStatus string

const (
	ActionIdle      ActionStatus = "idle"
	ActionPending   ActionStatus = "pending"
	ActionSucceeded ActionStatus = "succeeded"
	ActionFailed    ActionStatus = "failed"
)

// User is the normalized identity of the signed-in account.
type User struct {
	ID          string
	DisplayName string
	Email       string
}

// State is the session snapshot. It is a value: transitions return a new State.
type State struct {
	Token  string
	User   *User
	Phase  Phase
	Action ActionStatus
	Error  string

	// epoch fences async results: anything issued before the last
	// login or logout is discarded when it resolves.
	epoch uint64
}

// New returns the process-start state, with token as read from storage.
func New(token string) State {
	return State{
		Token:  token,
		Phase:  PhaseUninitialized,
		Action: ActionIdle,
	}
}

// Initializing reports whether the startup check has not reached a terminal
// outcome yet. Protected views must not render while it is true.
func (s State) Initializing() bool {
	return s.Phase == PhaseUninitialized || s.Phase == PhaseInitializing
}

func (s State) Authenticated() bool {
	return s.Phase == PhaseAuthenticated && s.User != nil && s.Token != ""
}
