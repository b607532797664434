// Package session owns the client's identity: the persisted auth token
// and the user it was last validated against. The user field is only
// ever populated after the backend has confirmed the token, so holding
// a user implies holding a token the server accepted at least once
// since startup.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/JaiSanthosh66/folio/internal/api"
	"github.com/JaiSanthosh66/folio/internal/prefs"
)

// Backend is the slice of the bookstore API the session layer needs.
type Backend interface {
	Register(ctx context.Context, username, email, password string) (api.Credentials, error)
	Login(ctx context.Context, email, password string) (api.Credentials, error)
	Me(ctx context.Context) (api.User, error)
}

// Manager coordinates the in-memory session with the durable token.
type Manager struct {
	mu        sync.RWMutex
	backend   Backend
	prefsPath string
	token     string
	user      *api.User
}

// New builds a Manager seeded with the token loaded from prefs (empty
// for anonymous). The user stays unset until Restore or Login succeeds.
func New(backend Backend, prefsPath, storedToken string) *Manager {
	return &Manager{
		backend:   backend,
		prefsPath: prefsPath,
		token:     storedToken,
	}
}

// Token returns the current bearer token, or empty when anonymous.
// Suitable as an api.Client token source.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// User returns the validated account, if any.
func (m *Manager) User() (api.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return api.User{}, false
	}
	return *m.user, true
}

// Authenticated reports whether a validated session exists.
func (m *Manager) Authenticated() bool {
	_, ok := m.User()
	return ok
}

// Login authenticates, persists the returned token, and records the user.
func (m *Manager) Login(ctx context.Context, email, password string) (api.User, error) {
	creds, err := m.backend.Login(ctx, email, password)
	if err != nil {
		return api.User{}, err
	}
	m.establish(creds)
	return creds.User, nil
}

// Register creates an account, persists the returned token, and records
// the user.
func (m *Manager) Register(ctx context.Context, username, email, password string) (api.User, error) {
	creds, err := m.backend.Register(ctx, username, email, password)
	if err != nil {
		return api.User{}, err
	}
	m.establish(creds)
	return creds.User, nil
}

// Restore validates a token left over from a previous run. Any failure
// is a hard invalidation: the token is dropped from memory and disk, the
// user stays anonymous, and nothing is retried or reported. Returns true
// when a session was restored.
func (m *Manager) Restore(ctx context.Context) bool {
	token := m.Token()
	if token == "" {
		return false
	}
	if expired(token) {
		slog.Debug("stored token expired, skipping validation call")
		m.Logout()
		return false
	}

	user, err := m.backend.Me(ctx)
	if err != nil {
		slog.Debug("stored token rejected", "error", err)
		m.Logout()
		return false
	}

	m.mu.Lock()
	m.user = &user
	m.mu.Unlock()
	return true
}

// Logout clears the session from memory and durable storage. The
// backend is not called; the token simply stops existing client-side.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.mu.Unlock()

	if err := prefs.SaveToken(m.prefsPath, ""); err != nil {
		slog.Warn("clear persisted token", "error", err)
	}
}

func (m *Manager) establish(creds api.Credentials) {
	m.mu.Lock()
	m.token = creds.Token
	user := creds.User
	m.user = &user
	m.mu.Unlock()

	if err := prefs.SaveToken(m.prefsPath, creds.Token); err != nil {
		slog.Warn("persist token", "error", err)
	}
}

// expired reports whether the token carries an exp claim in the past.
// Unparseable tokens are not treated as expired; /auth/me stays the
// authority for those.
func expired(token string) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	return claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now())
}
