// Package session holds the mutable per-session state every component
// depends on: the stored bearer credential and the active date. It is
// injected explicitly rather than kept as process-wide state so the
// stores can be exercised with fakes.
package session

import (
	"sync"
	"time"

	"calorics/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// Session is safe for use from overlapping requests.
type Session struct {
	mu         sync.RWMutex
	credential string
	activeDate string
}

// New creates a session with the active date set to today.
func New() *Session {
	return &Session{activeDate: model.Today()}
}

// SetCredential stores the bearer credential for subsequent requests.
func (s *Session) SetCredential(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credential = token
}

// Credential returns the stored bearer credential, or ErrNoCredential
// if none has been set.
func (s *Session) Credential() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.credential == "" {
		return "", model.ErrNoCredential
	}
	return s.credential, nil
}

// SetActiveDate switches the active date. The date must be a
// well-formed calendar day; callers reload their stores after a switch.
func (s *Session) SetActiveDate(date string) error {
	if !model.ValidDate(date) {
		return model.ErrInvalidDate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeDate = date
	return nil
}

// ActiveDate returns the currently selected calendar day.
func (s *Session) ActiveDate() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeDate
}

// Expired reports whether the stored credential carries an exp claim in
// the past. The token is decoded without signature verification; the
// backend remains authoritative and a rejected credential still
// surfaces as a request failure. A missing or unparseable token reads
// as expired so the caller redirects to re-authentication.
func (s *Session) Expired(now time.Time) bool {
	s.mu.RLock()
	token := s.credential
	s.mu.RUnlock()

	if token == "" {
		return true
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return true
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		// Tokens without an exp claim never expire client-side.
		return false
	}
	return exp.Before(now)
}
