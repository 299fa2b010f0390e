package server

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Pgy24/Hungry-Games-26-Bot/internal/game"
)

const (
	adminCookieName = "admin_session"
	adminSessionTTL = 7 * 24 * time.Hour
)

var errBadCredentials = errors.New("invalid credentials")

// AdminAuth authorizes admin operations by either of two sanctioned paths:
// the configured admin participant set, or a password login that issues a
// session cookie. Sessions live in memory; a restart logs admins out.
type AdminAuth struct {
	ids          map[string]struct{}
	passwordHash string

	mu       sync.Mutex
	sessions map[string]time.Time // token -> expiry
}

func NewAdminAuth(ids []string, passwordHash string) *AdminAuth {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id != "" {
			set[id] = struct{}{}
		}
	}
	return &AdminAuth{
		ids:          set,
		passwordHash: passwordHash,
		sessions:     make(map[string]time.Time),
	}
}

// Login verifies the admin password and issues a session token.
func (a *AdminAuth) Login(password string) (string, error) {
	if a.passwordHash == "" {
		return "", errBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.passwordHash), []byte(password)); err != nil {
		return "", errBadCredentials
	}

	token := uuid.NewString()
	a.mu.Lock()
	a.sessions[token] = time.Now().Add(adminSessionTTL)
	a.mu.Unlock()
	return token, nil
}

// Logout invalidates the session token.
func (a *AdminAuth) Logout(token string) {
	a.mu.Lock()
	delete(a.sessions, token)
	a.mu.Unlock()
}

func (a *AdminAuth) validSession(token string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	expiry, ok := a.sessions[token]
	if !ok {
		return false
	}
	if time.Now().After(expiry) {
		delete(a.sessions, token)
		return false
	}
	return true
}

// authorize accepts a request carrying either a valid admin session cookie
// or a bearer participant ID from the admin set.
func (a *AdminAuth) authorize(r *http.Request) error {
	if cookie, err := r.Cookie(adminCookieName); err == nil && a.validSession(cookie.Value) {
		return nil
	}
	if id, err := participantFromRequest(r); err == nil {
		if _, ok := a.ids[id]; ok {
			return nil
		}
	}
	return game.ErrUnauthorized
}

// adminOnly guards admin routes.
func adminOnly(auth *AdminAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := auth.authorize(r); err != nil {
				writeGameError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
