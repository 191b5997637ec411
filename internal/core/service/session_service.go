package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sabaihub/booking-web/internal/core/domain"
	"github.com/sabaihub/booking-web/internal/core/ports"
)

// Navigation destinations shared between the session manager, the route
// guard and the edge filter.
const (
	LoginPath      = "/auth/login"
	LandingPath    = "/"
	DashboardPath  = "/dashboard"
	defaultTTLDays = 7
)

// SessionManager owns the authentication state for one browser session. It
// is the only component that mutates the credential store or the in-memory
// session; guards and filters are read-only observers.
//
// State machine: UNINITIALIZED → LOADING → { AUTHENTICATED, ANONYMOUS }.
// A manager is scoped to a single request/response cycle and is not safe for
// concurrent use.
type SessionManager struct {
	auth    ports.AuthAPI
	creds   ports.CredentialStore
	cache   ports.SessionCache
	nav     ports.Navigator
	ttlDays int
	logger  zerolog.Logger

	state   domain.SessionState
	session domain.Session
}

func NewSessionManager(auth ports.AuthAPI, creds ports.CredentialStore, cache ports.SessionCache, nav ports.Navigator, ttlDays int, logger zerolog.Logger) *SessionManager {
	if ttlDays <= 0 {
		ttlDays = defaultTTLDays
	}
	return &SessionManager{
		auth:    auth,
		creds:   creds,
		cache:   cache,
		nav:     nav,
		ttlDays: ttlDays,
		logger:  logger,
		state:   domain.StateUninitialized,
	}
}

// Session returns the current snapshot. Observers must not retain it across
// mutations.
func (m *SessionManager) Session() domain.Session {
	return m.session
}

// Initialize restores the session from the credential store: no credential
// means ANONYMOUS, a stored token triggers a profile fetch that either
// confirms the session or clears the stale credential. Calling Initialize on
// an already-initialized manager is a no-op.
func (m *SessionManager) Initialize(ctx context.Context) {
	if m.state != domain.StateUninitialized {
		return
	}

	token, ok := m.creds.Get()
	if !ok {
		m.toAnonymous()
		return
	}

	m.toLoading(token)
	user, err := m.fetchProfile(ctx, token)
	if err != nil {
		// Self-healing against stale or revoked tokens: clear the
		// credential instead of presenting a broken session.
		m.logger.Warn().Err(err).Msg("profile fetch failed, clearing credential")
		m.clearCredential(ctx, token)
		m.toAnonymous()
		return
	}
	m.toAuthenticated(token, user)
}

// Login exchanges credentials for a token, confirms it with a profile fetch
// and navigates to redirectTo (or the dashboard). On failure the error is
// returned to the caller for display and the session ends ANONYMOUS; no
// partially authenticated state survives.
func (m *SessionManager) Login(ctx context.Context, email, password, redirectTo string) error {
	prev := m.session.Token
	m.toLoading(prev)

	token, err := m.auth.Login(ctx, email, password)
	if err != nil {
		m.toAnonymous()
		return err
	}

	if err := m.establish(ctx, token); err != nil {
		return err
	}
	m.evictSuperseded(ctx, prev, token)

	if redirectTo != "" {
		m.nav.Navigate(redirectTo)
	} else {
		m.nav.Navigate(DashboardPath)
	}
	return nil
}

// Signup registers an account, establishes the session with the returned
// token and navigates to the landing page.
func (m *SessionManager) Signup(ctx context.Context, input ports.RegisterInput) error {
	prev := m.session.Token
	m.toLoading(prev)

	token, err := m.auth.Register(ctx, input)
	if err != nil {
		m.toAnonymous()
		return err
	}

	if err := m.establish(ctx, token); err != nil {
		return err
	}
	m.evictSuperseded(ctx, prev, token)

	m.nav.Navigate(LandingPath)
	return nil
}

// Logout revokes the token best-effort, unconditionally clears local state
// and navigates to the landing page. It never fails and is idempotent: a
// second call with no token behaves identically.
func (m *SessionManager) Logout(ctx context.Context) {
	token := m.session.Token
	if token != "" {
		if err := m.auth.Logout(ctx, token); err != nil {
			// Local cleanup must happen regardless of network outcome.
			m.logger.Warn().Err(err).Msg("backend logout failed")
		}
	}

	m.clearCredential(ctx, token)
	m.toAnonymous()
	m.nav.Navigate(LandingPath)
}

// establish persists a freshly issued token and confirms it with a profile
// fetch. A new token always supersedes whatever credential was loaded at
// startup. A failed confirmation rolls everything back to ANONYMOUS.
func (m *SessionManager) establish(ctx context.Context, token string) error {
	m.creds.Set(token, m.ttlDays)
	m.session.Token = token

	user, err := m.fetchProfile(ctx, token)
	if err != nil {
		m.clearCredential(ctx, token)
		m.toAnonymous()
		return err
	}

	m.toAuthenticated(token, user)
	return nil
}

func (m *SessionManager) fetchProfile(ctx context.Context, token string) (*domain.User, error) {
	if user, ok := m.cache.GetUser(ctx, token); ok {
		return user, nil
	}

	user, err := m.auth.Me(ctx, token)
	if err != nil {
		return nil, err
	}
	m.cache.SetUser(ctx, token, user)
	return user, nil
}

// evictSuperseded drops the cache entry of a credential replaced by a newer
// login, so a stale profile can never be served for it.
func (m *SessionManager) evictSuperseded(ctx context.Context, prev, current string) {
	if prev != "" && prev != current {
		m.cache.Delete(ctx, prev)
	}
}

func (m *SessionManager) clearCredential(ctx context.Context, token string) {
	m.creds.Clear()
	if token != "" {
		m.cache.Delete(ctx, token)
	}
}

// --- state transitions ---

func (m *SessionManager) toLoading(token string) {
	m.transition(domain.StateLoading)
	m.session = domain.Session{Token: token, Loading: true}
}

func (m *SessionManager) toAuthenticated(token string, user *domain.User) {
	m.transition(domain.StateAuthenticated)
	m.session = domain.Session{Token: token, User: user}
}

func (m *SessionManager) toAnonymous() {
	m.transition(domain.StateAnonymous)
	m.session = domain.Session{}
}

func (m *SessionManager) transition(next domain.SessionState) {
	if next == m.state {
		return
	}
	if !m.state.CanTransitionTo(next) {
		m.logger.Warn().
			Str("from", string(m.state)).
			Str("to", string(next)).
			Msg("unexpected session state transition")
	}
	m.state = next
}
