package cart

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jamalparfum/storefront/internal/session"
	"github.com/redis/go-redis/v9"
)

const (
	// KeyPrefix prefixes Redis cart keys
	KeyPrefix = "cart:"

	// maxCookieValue keeps the cart cookie under the 4KB browser limit
	maxCookieValue = 3800
)

var ErrCartTooLarge = errors.New("cart does not fit in a cookie")

// Storage persists the serialized cart. Load returns nil data when nothing is stored.
type Storage interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// Opener returns the Storage for one visitor, identified through their cookie jar
type Opener func(jar session.Jar) Storage

// CookieStorage keeps the cart JSON in a cookie
type CookieStorage struct {
	jar  session.Jar
	name string
	ttl  time.Duration
}

// NewCookieStorage stores the cart in cookie name
func NewCookieStorage(jar session.Jar, name string, ttl time.Duration) *CookieStorage {
	return &CookieStorage{jar: jar, name: name, ttl: ttl}
}

// CookieOpener returns an Opener for cookie-backed carts
func CookieOpener(name string, ttl time.Duration) Opener {
	return func(jar session.Jar) Storage { return NewCookieStorage(jar, name, ttl) }
}

func (s *CookieStorage) Load(_ context.Context) ([]byte, error) {
	if s.jar == nil {
		return nil, nil
	}
	raw, ok := s.jar.Get(s.name)
	if !ok {
		return nil, nil
	}
	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode cart cookie: %w", err)
	}
	return data, nil
}

func (s *CookieStorage) Save(_ context.Context, data []byte) error {
	if s.jar == nil {
		return nil
	}
	encoded := base64.RawURLEncoding.EncodeToString(data)
	if len(encoded) > maxCookieValue {
		return ErrCartTooLarge
	}
	s.jar.Set(s.name, encoded, s.ttl)
	return nil
}

// RedisClient is the subset of go-redis RedisStorage uses
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisStorage keeps the cart under cart:<id> with the id in a cookie
type RedisStorage struct {
	rdb        RedisClient
	jar        session.Jar
	cookieName string
	ttl        time.Duration
}

// NewRedisStorage creates a Redis-backed cart storage
func NewRedisStorage(rdb RedisClient, jar session.Jar, cookieName string, ttl time.Duration) *RedisStorage {
	return &RedisStorage{rdb: rdb, jar: jar, cookieName: cookieName, ttl: ttl}
}

// RedisOpener returns an Opener for Redis-backed carts
func RedisOpener(rdb RedisClient, cookieName string, ttl time.Duration) Opener {
	return func(jar session.Jar) Storage { return NewRedisStorage(rdb, jar, cookieName, ttl) }
}

func (s *RedisStorage) cartID() (string, bool) {
	if s.jar == nil {
		return "", false
	}
	id, ok := s.jar.Get(s.cookieName)
	if !ok {
		return "", false
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

func (s *RedisStorage) Load(ctx context.Context) ([]byte, error) {
	id, ok := s.cartID()
	if !ok {
		return nil, nil
	}
	data, err := s.rdb.Get(ctx, KeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart %s: %w", id, err)
	}
	return data, nil
}

func (s *RedisStorage) Save(ctx context.Context, data []byte) error {
	if s.jar == nil {
		return nil
	}
	id, ok := s.cartID()
	if !ok {
		id = uuid.New().String()
	}
	if err := s.rdb.Set(ctx, KeyPrefix+id, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart %s: %w", id, err)
	}
	// refresh the cookie so it lives as long as the key
	s.jar.Set(s.cookieName, id, s.ttl)
	return nil
}

// MemoryStorage keeps the cart in memory
type MemoryStorage struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (s *MemoryStorage) Load(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, nil
	}
	return append([]byte(nil), s.data...), nil
}

func (s *MemoryStorage) Save(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
	return nil
}
