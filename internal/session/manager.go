package session

import (
	"sync"
	"time"

	"github.com/jamalparfum/storefront/internal/domain"
	"go.uber.org/zap"
)

// EventType identifies a session change
type EventType string

const (
	EventLogin  EventType = "login"
	EventLogout EventType = "logout"
)

// Event is published to subscribers on login and logout
type Event struct {
	Type EventType
	User *domain.User
	At   time.Time
}

// Manager is the single session provider. It hands out per-request Stores and
// fans session changes out to subscribers.
type Manager struct {
	cfg    Config
	codec  *userCodec
	logger *zap.Logger
	now    func() time.Time

	mu     sync.RWMutex
	nextID int
	subs   map[int]func(Event)
}

// NewManager creates a session manager
func NewManager(cfg Config, logger *zap.Logger) *Manager {
	if cfg.TTL <= 0 {
		cfg.TTL = 7 * 24 * time.Hour
	}
	if cfg.TokenCookie == "" {
		cfg.TokenCookie = "auth_token"
	}
	if cfg.UserCookie == "" {
		cfg.UserCookie = "user"
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Manager{
		cfg:    cfg,
		codec:  newUserCodec(cfg.Secret, cfg.TTL),
		logger: logger,
		now:    time.Now,
		subs:   make(map[int]func(Event)),
	}
}

// Store returns a Store over jar. A nil jar yields an always-empty Store.
func (m *Manager) Store(jar Jar) *Store {
	return &Store{jar: jar, manager: m}
}

// CookieOptions returns the options cookies are written with
func (m *Manager) CookieOptions() CookieOptions {
	return DefaultCookieOptions(m.cfg.Secure)
}

// Subscribe registers fn for session events and returns a function removing it
func (m *Manager) Subscribe(fn func(Event)) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

func (m *Manager) publish(ev Event) {
	m.mu.RLock()
	subs := make([]func(Event), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.mu.RUnlock()

	for _, fn := range subs {
		fn(ev)
	}
}

// AuditLogger returns a subscriber that logs session changes
func AuditLogger(logger *zap.Logger) func(Event) {
	return func(ev Event) {
		fields := []zap.Field{zap.String("event", string(ev.Type))}
		if ev.User != nil {
			fields = append(fields,
				zap.Int64("user_id", ev.User.ID),
				zap.String("role", string(ev.User.Role)),
			)
		}
		logger.Info("session changed", fields...)
	}
}
