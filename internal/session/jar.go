package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Jar is the persisted key/value mechanism behind a Store
type Jar interface {
	Get(name string) (string, bool)
	Set(name, value string, maxAge time.Duration)
	Delete(name string)
}

// CookieOptions are applied to every cookie the storefront writes
type CookieOptions struct {
	Path     string
	Secure   bool
	HTTPOnly bool
	SameSite http.SameSite
}

// DefaultCookieOptions matches the session cookie policy: strict same-site, http only
func DefaultCookieOptions(secure bool) CookieOptions {
	return CookieOptions{
		Path:     "/",
		Secure:   secure,
		HTTPOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}

// GinJar reads request cookies and writes Set-Cookie headers on a gin context.
// Writes are visible to later reads within the same request. A GinJar may be
// shared by goroutines serving one request.
type GinJar struct {
	mu      sync.Mutex
	c       *gin.Context
	opts    CookieOptions
	pending map[string]*string
}

// NewGinJar returns a Jar bound to one request
func NewGinJar(c *gin.Context, opts CookieOptions) *GinJar {
	return &GinJar{c: c, opts: opts, pending: make(map[string]*string)}
}

func (j *GinJar) Get(name string) (string, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if v, ok := j.pending[name]; ok {
		if v == nil {
			return "", false
		}
		return *v, true
	}

	v, err := j.c.Cookie(name)
	if err != nil || v == "" {
		return "", false
	}
	return v, true
}

func (j *GinJar) Set(name, value string, maxAge time.Duration) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.pending[name] = &value
	http.SetCookie(j.c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     j.opts.Path,
		MaxAge:   int(maxAge.Seconds()),
		Expires:  time.Now().Add(maxAge),
		Secure:   j.opts.Secure,
		HttpOnly: j.opts.HTTPOnly,
		SameSite: j.opts.SameSite,
	})
}

func (j *GinJar) Delete(name string) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if v, ok := j.pending[name]; ok && v == nil {
		return
	}
	j.pending[name] = nil
	http.SetCookie(j.c.Writer, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     j.opts.Path,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   j.opts.Secure,
		HttpOnly: j.opts.HTTPOnly,
		SameSite: j.opts.SameSite,
	})
}

// MapJar is an in-memory Jar for tests and background work
type MapJar map[string]string

func (m MapJar) Get(name string) (string, bool) {
	v, ok := m[name]
	return v, ok && v != ""
}

func (m MapJar) Set(name, value string, _ time.Duration) { m[name] = value }

func (m MapJar) Delete(name string) { delete(m, name) }
