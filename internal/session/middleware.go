package session

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jamalparfum/storefront/pkg/response"
)

const contextKey = "session"

// Middleware attaches a request-scoped Store to the gin context
func Middleware(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(contextKey, m.Store(NewGinJar(c, m.CookieOptions())))
		c.Next()
	}
}

// FromContext returns the request's Store. Without the middleware it returns an empty Store.
func FromContext(c *gin.Context) *Store {
	if v, ok := c.Get(contextKey); ok {
		if s, ok := v.(*Store); ok {
			return s
		}
	}
	return &Store{}
}

// RequireAuth sends guests to the login page
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !FromContext(c).IsAuthenticated() {
			deny(c, http.StatusUnauthorized, "/login")
			return
		}
		c.Next()
	}
}

// RequireAdmin sends guests to the login page and non-admins home
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := FromContext(c)
		if !s.IsAuthenticated() {
			deny(c, http.StatusUnauthorized, "/login")
			return
		}
		if !s.IsAdmin() {
			deny(c, http.StatusForbidden, "/")
			return
		}
		c.Next()
	}
}

func deny(c *gin.Context, status int, location string) {
	if strings.Contains(c.GetHeader("Accept"), "application/json") {
		code := "UNAUTHORIZED"
		if status == http.StatusForbidden {
			code = "FORBIDDEN"
		}
		response.AbortError(c, status, code, http.StatusText(status))
		return
	}
	c.Redirect(http.StatusFound, location)
	c.Abort()
}
