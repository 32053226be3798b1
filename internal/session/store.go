package session

import (
	"time"

	"github.com/jamalparfum/storefront/internal/domain"
)

// Store is the per-request view of the session cookies. Every method is safe
// on a Store without a Jar: reads return empty values and writes do nothing.
type Store struct {
	jar     Jar
	manager *Manager
}

// Jar returns the cookie jar behind the Store, or nil
func (s *Store) Jar() Jar {
	if s == nil {
		return nil
	}
	return s.jar
}

func (s *Store) usable() bool {
	return s != nil && s.jar != nil && s.manager != nil
}

// SetToken persists the bearer token
func (s *Store) SetToken(token string) {
	if !s.usable() {
		return
	}
	s.jar.Set(s.manager.cfg.TokenCookie, token, s.manager.cfg.TTL)
}

// SetUser persists the signed user profile
func (s *Store) SetUser(user *domain.User) {
	if !s.usable() || user == nil {
		return
	}
	raw, err := s.manager.codec.encode(user, s.manager.now())
	if err != nil {
		s.manager.logger.Warn("failed to encode user cookie")
		return
	}
	s.jar.Set(s.manager.cfg.UserCookie, raw, s.manager.cfg.TTL)
}

// GetToken returns the bearer token, empty when absent
func (s *Store) GetToken() string {
	if !s.usable() {
		return ""
	}
	token, _ := s.jar.Get(s.manager.cfg.TokenCookie)
	return token
}

// GetUser returns the cached profile, nil when missing or not trustworthy
func (s *Store) GetUser() *domain.User {
	if !s.usable() {
		return nil
	}
	raw, ok := s.jar.Get(s.manager.cfg.UserCookie)
	if !ok {
		return nil
	}
	user, err := s.manager.codec.decode(raw)
	if err != nil {
		return nil
	}
	return user
}

// IsAuthenticated reports whether a token is present
func (s *Store) IsAuthenticated() bool {
	return s.GetToken() != ""
}

// IsAdmin reports whether the cached user has the admin role
func (s *Store) IsAdmin() bool {
	return s.GetUser().IsAdmin()
}

// Login stores token and user and notifies subscribers
func (s *Store) Login(token string, user *domain.User) {
	if !s.usable() {
		return
	}
	s.SetToken(token)
	s.SetUser(user)
	s.manager.publish(Event{Type: EventLogin, User: user, At: s.manager.now()})
}

// Clear removes both cookies. Subscribers hear about it only if a session existed.
func (s *Store) Clear() {
	if !s.usable() {
		return
	}
	user := s.GetUser()
	hadSession := s.IsAuthenticated() || user != nil

	s.jar.Delete(s.manager.cfg.TokenCookie)
	s.jar.Delete(s.manager.cfg.UserCookie)

	if hadSession {
		s.manager.publish(Event{Type: EventLogout, User: user, At: s.manager.now()})
	}
}

// Config configures the session manager
type Config struct {
	Secret      string
	TTL         time.Duration
	TokenCookie string
	UserCookie  string
	Secure      bool
}

// DefaultConfig returns the seven day cookie policy
func DefaultConfig(secret string) Config {
	return Config{
		Secret:      secret,
		TTL:         7 * 24 * time.Hour,
		TokenCookie: "auth_token",
		UserCookie:  "user",
	}
}
