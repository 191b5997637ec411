package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sabaihub/booking-web/internal/core/domain"
	"github.com/sabaihub/booking-web/internal/core/ports"
)

type stubAuthAPI struct {
	loginFn    func(ctx context.Context, email, password string) (string, error)
	registerFn func(ctx context.Context, input ports.RegisterInput) (string, error)
	meFn       func(ctx context.Context, token string) (*domain.User, error)
	logoutFn   func(ctx context.Context, token string) error

	logoutCalls []string
}

func (s *stubAuthAPI) Login(ctx context.Context, email, password string) (string, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthAPI) Register(ctx context.Context, input ports.RegisterInput) (string, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthAPI) Me(ctx context.Context, token string) (*domain.User, error) {
	return s.meFn(ctx, token)
}

func (s *stubAuthAPI) Logout(ctx context.Context, token string) error {
	s.logoutCalls = append(s.logoutCalls, token)
	if s.logoutFn != nil {
		return s.logoutFn(ctx, token)
	}
	return nil
}

type memCredStore struct {
	token   string
	present bool
	ttlDays int
}

func (s *memCredStore) Get() (string, bool) { return s.token, s.present }

func (s *memCredStore) Set(token string, ttlDays int) {
	s.token = token
	s.present = true
	s.ttlDays = ttlDays
}

func (s *memCredStore) Clear() {
	s.token = ""
	s.present = false
}

type spyNavigator struct {
	paths []string
}

func (n *spyNavigator) Navigate(path string) { n.paths = append(n.paths, path) }

type memSessionCache struct {
	users map[string]*domain.User
}

func newMemSessionCache() *memSessionCache {
	return &memSessionCache{users: make(map[string]*domain.User)}
}

func (c *memSessionCache) GetUser(_ context.Context, token string) (*domain.User, bool) {
	u, ok := c.users[token]
	return u, ok
}

func (c *memSessionCache) SetUser(_ context.Context, token string, user *domain.User) {
	c.users[token] = user
}

func (c *memSessionCache) Delete(_ context.Context, token string) {
	delete(c.users, token)
}

func aliceMe(ctx context.Context, token string) (*domain.User, error) {
	return &domain.User{ID: "u1", Name: "Alice", Email: "alice@example.com", Role: domain.RoleUser}, nil
}

func newTestManager(auth *stubAuthAPI, creds *memCredStore) (*SessionManager, *spyNavigator, *memSessionCache) {
	nav := &spyNavigator{}
	cache := newMemSessionCache()
	mgr := NewSessionManager(auth, creds, cache, nav, 0, zerolog.Nop())
	return mgr, nav, cache
}

func TestSessionManager_Initialize_NoCredential(t *testing.T) {
	auth := &stubAuthAPI{meFn: func(ctx context.Context, token string) (*domain.User, error) {
		t.Fatalf("profile fetch should not happen without a credential")
		return nil, nil
	}}
	mgr, nav, _ := newTestManager(auth, &memCredStore{})

	mgr.Initialize(context.Background())

	s := mgr.Session()
	if s.State() != domain.StateAnonymous {
		t.Fatalf("expected anonymous, got %s", s.State())
	}
	if s.Token != "" || s.User != nil {
		t.Fatalf("expected empty session, got %+v", s)
	}
	if len(nav.paths) != 0 {
		t.Fatalf("initialize must not navigate, got %v", nav.paths)
	}
}

func TestSessionManager_Initialize_ValidCredential(t *testing.T) {
	auth := &stubAuthAPI{meFn: aliceMe}
	creds := &memCredStore{token: "tok-1", present: true}
	mgr, _, cache := newTestManager(auth, creds)

	mgr.Initialize(context.Background())

	s := mgr.Session()
	if s.State() != domain.StateAuthenticated {
		t.Fatalf("expected authenticated, got %s", s.State())
	}
	if s.Token != "tok-1" || s.User == nil || s.User.Name != "Alice" {
		t.Fatalf("unexpected session: %+v", s)
	}
	if _, ok := cache.users["tok-1"]; !ok {
		t.Fatalf("expected profile cached under token")
	}
}

func TestSessionManager_Initialize_StaleCredential(t *testing.T) {
	auth := &stubAuthAPI{meFn: func(ctx context.Context, token string) (*domain.User, error) {
		return nil, errors.New("token revoked")
	}}
	creds := &memCredStore{token: "tok-stale", present: true}
	mgr, _, _ := newTestManager(auth, creds)

	mgr.Initialize(context.Background())

	s := mgr.Session()
	if s.State() != domain.StateAnonymous {
		t.Fatalf("expected anonymous after failed profile fetch, got %s", s.State())
	}
	if s.Loading {
		t.Fatalf("session must not stay loading")
	}
	if creds.present {
		t.Fatalf("stale credential must be cleared")
	}
}

func TestSessionManager_Initialize_CacheHitSkipsBackend(t *testing.T) {
	auth := &stubAuthAPI{meFn: func(ctx context.Context, token string) (*domain.User, error) {
		t.Fatalf("backend must not be hit on cache hit")
		return nil, nil
	}}
	creds := &memCredStore{token: "tok-1", present: true}
	mgr, _, cache := newTestManager(auth, creds)
	cache.users["tok-1"] = &domain.User{ID: "u1", Name: "Alice"}

	mgr.Initialize(context.Background())

	if mgr.Session().State() != domain.StateAuthenticated {
		t.Fatalf("expected authenticated, got %s", mgr.Session().State())
	}
}

func TestSessionManager_Initialize_Twice(t *testing.T) {
	calls := 0
	auth := &stubAuthAPI{meFn: func(ctx context.Context, token string) (*domain.User, error) {
		calls++
		return aliceMe(ctx, token)
	}}
	creds := &memCredStore{token: "tok-1", present: true}
	mgr, _, _ := newTestManager(auth, creds)

	mgr.Initialize(context.Background())
	mgr.Initialize(context.Background())

	if calls != 1 {
		t.Fatalf("expected a single profile fetch, got %d", calls)
	}
}

func TestSessionManager_Login_NavigatesToRedirectTarget(t *testing.T) {
	auth := &stubAuthAPI{
		loginFn: func(ctx context.Context, email, password string) (string, error) {
			if email != "alice@example.com" || password != "s3cret" {
				t.Fatalf("unexpected credentials: %s %s", email, password)
			}
			return "tok-new", nil
		},
		meFn: aliceMe,
	}
	creds := &memCredStore{}
	mgr, nav, _ := newTestManager(auth, creds)

	if err := mgr.Login(context.Background(), "alice@example.com", "s3cret", "/booking/42"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if len(nav.paths) != 1 || nav.paths[0] != "/booking/42" {
		t.Fatalf("expected navigation to /booking/42, got %v", nav.paths)
	}
	if creds.token != "tok-new" || creds.ttlDays != 7 {
		t.Fatalf("expected token persisted for 7 days, got %q for %d days", creds.token, creds.ttlDays)
	}
	s := mgr.Session()
	if s.State() != domain.StateAuthenticated || s.User == nil {
		t.Fatalf("expected authenticated session, got %+v", s)
	}
}

func TestSessionManager_Login_DefaultLanding(t *testing.T) {
	auth := &stubAuthAPI{
		loginFn: func(ctx context.Context, email, password string) (string, error) { return "tok-new", nil },
		meFn:    aliceMe,
	}
	mgr, nav, _ := newTestManager(auth, &memCredStore{})

	if err := mgr.Login(context.Background(), "alice@example.com", "s3cret", ""); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if len(nav.paths) != 1 || nav.paths[0] != DashboardPath {
		t.Fatalf("expected navigation to %s, got %v", DashboardPath, nav.paths)
	}
}

func TestSessionManager_Login_BackendRejects(t *testing.T) {
	auth := &stubAuthAPI{
		loginFn: func(ctx context.Context, email, password string) (string, error) {
			return "", domain.ErrInvalidCredentials
		},
	}
	creds := &memCredStore{}
	mgr, nav, _ := newTestManager(auth, creds)

	err := mgr.Login(context.Background(), "alice@example.com", "wrong", "")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	s := mgr.Session()
	if s.State() != domain.StateAnonymous || s.Token != "" || s.User != nil {
		t.Fatalf("expected anonymous session after failure, got %+v", s)
	}
	if creds.present {
		t.Fatalf("no credential must be persisted on failure")
	}
	if len(nav.paths) != 0 {
		t.Fatalf("no navigation on failure, got %v", nav.paths)
	}
}

func TestSessionManager_Login_ProfileFetchFails(t *testing.T) {
	auth := &stubAuthAPI{
		loginFn: func(ctx context.Context, email, password string) (string, error) { return "tok-new", nil },
		meFn: func(ctx context.Context, token string) (*domain.User, error) {
			return nil, errors.New("backend down")
		},
	}
	creds := &memCredStore{}
	mgr, nav, _ := newTestManager(auth, creds)

	if err := mgr.Login(context.Background(), "alice@example.com", "s3cret", ""); err == nil {
		t.Fatalf("expected error when profile fetch fails")
	}

	if creds.present {
		t.Fatalf("credential must be rolled back")
	}
	s := mgr.Session()
	if s.State() != domain.StateAnonymous || s.Token != "" || s.User != nil {
		t.Fatalf("expected anonymous session, got %+v", s)
	}
	if len(nav.paths) != 0 {
		t.Fatalf("no navigation on failure, got %v", nav.paths)
	}
}

func TestSessionManager_Login_SupersedesStartupCredential(t *testing.T) {
	auth := &stubAuthAPI{
		loginFn: func(ctx context.Context, email, password string) (string, error) { return "tok-new", nil },
		meFn:    aliceMe,
	}
	creds := &memCredStore{token: "tok-old", present: true}
	mgr, _, cache := newTestManager(auth, creds)

	mgr.Initialize(context.Background())
	if err := mgr.Login(context.Background(), "alice@example.com", "s3cret", ""); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if creds.token != "tok-new" {
		t.Fatalf("new token must supersede startup credential, store has %q", creds.token)
	}
	if _, ok := cache.users["tok-old"]; ok {
		t.Fatalf("superseded token must be evicted from the cache")
	}
	if _, ok := cache.users["tok-new"]; !ok {
		t.Fatalf("new token must be cached")
	}
}

func TestSessionManager_Signup_NavigatesToLanding(t *testing.T) {
	var captured ports.RegisterInput
	auth := &stubAuthAPI{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (string, error) {
			captured = input
			return "tok-new", nil
		},
		meFn: aliceMe,
	}
	mgr, nav, _ := newTestManager(auth, &memCredStore{})

	input := ports.RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "s3cret"}
	if err := mgr.Signup(context.Background(), input); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	if captured != input {
		t.Fatalf("unexpected register input: %+v", captured)
	}
	if len(nav.paths) != 1 || nav.paths[0] != LandingPath {
		t.Fatalf("expected navigation to landing, got %v", nav.paths)
	}
	if mgr.Session().State() != domain.StateAuthenticated {
		t.Fatalf("expected authenticated session")
	}
}

func TestSessionManager_Signup_BackendRejects(t *testing.T) {
	auth := &stubAuthAPI{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (string, error) {
			return "", domain.ErrUserExists
		},
	}
	mgr, nav, _ := newTestManager(auth, &memCredStore{})

	err := mgr.Signup(context.Background(), ports.RegisterInput{Name: "Bob", Email: "bob@example.com", Password: "pw"})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if mgr.Session().State() != domain.StateAnonymous {
		t.Fatalf("expected anonymous session after failure")
	}
	if len(nav.paths) != 0 {
		t.Fatalf("no navigation on failure, got %v", nav.paths)
	}
}

func TestSessionManager_LoginThenLogout(t *testing.T) {
	auth := &stubAuthAPI{
		loginFn: func(ctx context.Context, email, password string) (string, error) { return "tok-new", nil },
		meFn:    aliceMe,
	}
	creds := &memCredStore{}
	mgr, nav, cache := newTestManager(auth, creds)

	if err := mgr.Login(context.Background(), "alice@example.com", "s3cret", ""); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	mgr.Logout(context.Background())

	s := mgr.Session()
	if s.Token != "" || s.User != nil {
		t.Fatalf("expected token=nil,user=nil after logout, got %+v", s)
	}
	if creds.present {
		t.Fatalf("credential must be cleared on logout")
	}
	if _, ok := cache.users["tok-new"]; ok {
		t.Fatalf("cache entry must be dropped on logout")
	}
	if len(auth.logoutCalls) != 1 || auth.logoutCalls[0] != "tok-new" {
		t.Fatalf("expected one backend logout for tok-new, got %v", auth.logoutCalls)
	}
	if nav.paths[len(nav.paths)-1] != LandingPath {
		t.Fatalf("expected navigation to landing, got %v", nav.paths)
	}
}

func TestSessionManager_Logout_Idempotent(t *testing.T) {
	auth := &stubAuthAPI{
		loginFn: func(ctx context.Context, email, password string) (string, error) { return "tok-new", nil },
		meFn:    aliceMe,
	}
	mgr, _, _ := newTestManager(auth, &memCredStore{})

	_ = mgr.Login(context.Background(), "alice@example.com", "s3cret", "")
	mgr.Logout(context.Background())
	mgr.Logout(context.Background())

	s := mgr.Session()
	if s.Token != "" || s.User != nil {
		t.Fatalf("expected empty session, got %+v", s)
	}
	if len(auth.logoutCalls) != 1 {
		t.Fatalf("second logout has no token and must not hit the backend, calls: %v", auth.logoutCalls)
	}
}

func TestSessionManager_Logout_BackendErrorSwallowed(t *testing.T) {
	auth := &stubAuthAPI{
		loginFn:  func(ctx context.Context, email, password string) (string, error) { return "tok-new", nil },
		meFn:     aliceMe,
		logoutFn: func(ctx context.Context, token string) error { return errors.New("network down") },
	}
	creds := &memCredStore{}
	mgr, nav, _ := newTestManager(auth, creds)

	_ = mgr.Login(context.Background(), "alice@example.com", "s3cret", "")
	mgr.Logout(context.Background())

	if creds.present {
		t.Fatalf("local cleanup must be unconditional")
	}
	if mgr.Session().Token != "" {
		t.Fatalf("expected cleared session despite backend error")
	}
	if nav.paths[len(nav.paths)-1] != LandingPath {
		t.Fatalf("expected navigation to landing, got %v", nav.paths)
	}
}
