package api

import (
	"crypto/subtle"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/trendscope/star-trends/internal/errors"
)

// SessionStore holds the dashboard gate state: bearer tokens issued in
// exchange for the shared secret, kept in process memory with a TTL.
// Sessions live and die with the process; nothing is ever persisted.
type SessionStore struct {
	password string
	ttl      time.Duration

	mu     sync.Mutex
	tokens map[string]time.Time

	now func() time.Time
}

// NewSessionStore creates a session store gated by the given password.
func NewSessionStore(password string, ttl time.Duration) *SessionStore {
	return &SessionStore{
		password: password,
		ttl:      ttl,
		tokens:   make(map[string]time.Time),
		now:      time.Now,
	}
}

// Login checks the shared secret and issues a fresh session token. The
// comparison is constant-time so response timing reveals nothing about
// the secret.
func (s *SessionStore) Login(password string) (string, time.Time, error) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) != 1 {
		return "", time.Time{}, apperrors.NewUnauthorizedError("invalid password")
	}

	token := uuid.NewString()
	expiresAt := s.now().Add(s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeExpiredLocked()
	s.tokens[token] = expiresAt

	return token, expiresAt, nil
}

// Validate reports whether the token belongs to a live session. Expired
// tokens are dropped on sight.
func (s *SessionStore) Validate(token string) bool {
	if token == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt, ok := s.tokens[token]
	if !ok {
		return false
	}
	if s.now().After(expiresAt) {
		delete(s.tokens, token)
		return false
	}
	return true
}

// Revoke ends the session for the given token. Revoking an unknown or
// already-expired token is a no-op.
func (s *SessionStore) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}

// purgeExpiredLocked drops expired sessions so the registry cannot grow
// without bound across many logins. Callers must hold mu.
func (s *SessionStore) purgeExpiredLocked() {
	now := s.now()
	for token, expiresAt := range s.tokens {
		if now.After(expiresAt) {
			delete(s.tokens, token)
		}
	}
}
