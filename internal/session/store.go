package session

import (
	"context"
	"sync"
	"time"

	"github.com/Sachintlgt/brd-admin-sub000/internal/dtos"
	"github.com/Sachintlgt/brd-admin-sub000/internal/utils"
)

// State is the session lifecycle.
type State int

const (
	StateUnauthenticated State = iota
	StateAuthenticating
	StateAuthenticated
)

// RefreshInterval is how often an authenticated session silently renews
// itself.
const RefreshInterval = 30 * time.Minute

const loginRoute = "/login"

// AuthAPI is the slice of the API client the store needs.
type AuthAPI interface {
	Login(ctx context.Context, req dtos.LoginRequest) (*dtos.AuthData, error)
	Signup(ctx context.Context, req dtos.SignupRequest) (*dtos.AuthData, error)
	RefreshToken(ctx context.Context) (*dtos.AuthData, error)
	Logout(ctx context.Context) error
}

// Notifier surfaces session-level messages.
type Notifier interface {
	Error(msg string)
}

// Options wires the store's collaborators.
type Options struct {
	Scheduler Scheduler
	Notifier  Notifier
	Navigate  func(route string)
	Persist   *StateFile // legacy token/user snapshot fallback; optional
}

// Store exclusively owns the authenticated identity. Every other component
// reads it (through Token / User) and never mutates it.
type Store struct {
	mu sync.Mutex

	api  AuthAPI
	opts Options

	state State
	user  *dtos.User
	token string

	// one unauthorized notification per authenticated session
	unauthorizedFired bool
}

func NewStore(api AuthAPI, opts Options) *Store {
	if opts.Scheduler == nil {
		opts.Scheduler = NewCronScheduler()
	}
	if opts.Navigate == nil {
		opts.Navigate = func(string) {}
	}
	if opts.Notifier == nil {
		opts.Notifier = nopNotifier{}
	}
	return &Store{api: api, opts: opts}
}

type nopNotifier struct{}

func (nopNotifier) Error(string) {}

// Bootstrap resolves the startup session: identity cookie first, then the
// legacy persisted snapshot. Malformed input can only ever yield an
// unauthenticated session, never a crash.
func (s *Store) Bootstrap(cookieValue string) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user, ok := DecodeIdentity(cookieValue); ok {
		token := s.token
		// The identity cookie carries no access token; pick up the
		// persisted one so requests are authenticated before the first
		// silent refresh.
		if token == "" && s.opts.Persist != nil {
			if snap, err := s.opts.Persist.Load(); err == nil {
				token = snap.AccessToken
			}
		}
		s.setAuthenticatedLocked(user, token)
		return s.state
	}
	if s.opts.Persist != nil {
		if snap, err := s.opts.Persist.Load(); err == nil && snap.User.ID != "" {
			user := snap.User
			s.setAuthenticatedLocked(&user, snap.AccessToken)
			return s.state
		}
	}
	s.state = StateUnauthenticated
	return s.state
}

// Login authenticates with the backend. Failure leaves the session
// untouched and is surfaced inline by the caller.
func (s *Store) Login(ctx context.Context, req dtos.LoginRequest) error {
	s.mu.Lock()
	s.state = StateAuthenticating
	s.mu.Unlock()

	data, err := s.api.Login(ctx, req)
	if err != nil {
		s.mu.Lock()
		s.state = StateUnauthenticated
		s.mu.Unlock()
		return err
	}

	s.adopt(data)
	return nil
}

// Signup registers and authenticates in one step.
func (s *Store) Signup(ctx context.Context, req dtos.SignupRequest) error {
	s.mu.Lock()
	s.state = StateAuthenticating
	s.mu.Unlock()

	data, err := s.api.Signup(ctx, req)
	if err != nil {
		s.mu.Lock()
		s.state = StateUnauthenticated
		s.mu.Unlock()
		return err
	}

	s.adopt(data)
	return nil
}

// Logout calls the backend best-effort, then unconditionally clears local
// identity and navigates to login.
func (s *Store) Logout(ctx context.Context) {
	if err := s.api.Logout(ctx); err != nil {
		utils.Logger.WithError(err).Warn("Backend logout failed; clearing local session anyway")
	}

	s.mu.Lock()
	s.clearLocked()
	s.mu.Unlock()

	s.opts.Navigate(loginRoute)
}

// Token implements the API client's bearer supplier.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns the current identity, if authenticated.
func (s *Store) User() (dtos.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return dtos.User{}, false
	}
	return *s.user, true
}

// State reports the session lifecycle state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsAuthenticated is true iff a user is present.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

func (s *Store) adopt(data *dtos.AuthData) {
	s.mu.Lock()
	user := data.User
	s.setAuthenticatedLocked(&user, data.AccessToken)
	s.mu.Unlock()

	if s.opts.Persist != nil {
		if err := s.opts.Persist.Save(Snapshot{User: data.User, AccessToken: data.AccessToken}); err != nil {
			utils.Logger.WithError(err).Warn("Failed to persist session snapshot")
		}
	}
}

// setAuthenticatedLocked installs an identity and (re)starts the silent
// refresh loop. Caller holds s.mu.
func (s *Store) setAuthenticatedLocked(user *dtos.User, token string) {
	s.user = user
	if token != "" {
		s.token = token
	}
	s.state = StateAuthenticated
	s.unauthorizedFired = false
	s.opts.Scheduler.Start(RefreshInterval, s.refreshTick)
}

// clearLocked destroys the session and stops the refresh loop. Caller
// holds s.mu.
func (s *Store) clearLocked() {
	s.user = nil
	s.token = ""
	s.state = StateUnauthenticated
	s.opts.Scheduler.Stop()
	if s.opts.Persist != nil {
		if err := s.opts.Persist.Clear(); err != nil {
			utils.Logger.WithError(err).Debug("Failed to clear persisted session snapshot")
		}
	}
}

// refreshTick runs on the scheduler. Success updates identity in place
// with no state transition; failure destroys the session, fires the
// unauthorized notification exactly once, and forces navigation to login.
func (s *Store) refreshTick() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	data, err := s.api.RefreshToken(ctx)
	if err != nil {
		s.mu.Lock()
		fire := !s.unauthorizedFired
		s.unauthorizedFired = true
		s.clearLocked()
		s.mu.Unlock()

		utils.Logger.WithError(err).Warn("Session refresh failed; logging out")
		if fire {
			s.opts.Notifier.Error("Unauthorized user")
		}
		s.opts.Navigate(loginRoute)
		return
	}

	s.mu.Lock()
	user := data.User
	s.user = &user
	if data.AccessToken != "" {
		s.token = data.AccessToken
	}
	s.mu.Unlock()

	if s.opts.Persist != nil {
		if err := s.opts.Persist.Save(Snapshot{User: data.User, AccessToken: data.AccessToken}); err != nil {
			utils.Logger.WithError(err).Debug("Failed to persist refreshed session snapshot")
		}
	}
}

// GateDecision is the route-guard contract for protected views.
type GateDecision int

const (
	GateShow GateDecision = iota
	GateHide
	GateRedirect
)

// Gate maps session state onto the route-guard decision: render nothing
// while resolving, redirect once unauthenticated, show when authenticated.
func Gate(state State) GateDecision {
	switch state {
	case StateAuthenticating:
		return GateHide
	case StateAuthenticated:
		return GateShow
	default:
		return GateRedirect
	}
}
