package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "jamal-parfum-storefront", cfg.App.Name)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "http://localhost:8000", cfg.Backend.BaseURL)
	assert.Equal(t, 168*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "auth_token", cfg.Session.TokenCookie)
	assert.Equal(t, "user", cfg.Session.UserCookie)
	assert.Equal(t, "cookie", cfg.Cart.Storage)
	assert.Equal(t, "cart", cfg.Cart.CookieName)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "https://api.example.com/")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CART_STORAGE", "REDIS")
	t.Setenv("REDIS_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.Backend.BaseURL)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Cart.Storage)
	assert.Equal(t, "0.0.0.0:9090", cfg.Server.Addr())
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENVIRONMENT", "production")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("SESSION_SECRET", "a-real-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Session.Secure, "production cookies must be secure")
}

func TestLoadWithPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	content := "APP_NAME=from-file\nCART_STORAGE=cookie\nBACKEND_TIMEOUT=5s\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadWithPath(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.App.Name)
	assert.Equal(t, 5*time.Second, cfg.Backend.Timeout)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App:     AppConfig{Name: "x", Environment: "development"},
			Server:  ServerConfig{Port: 3000},
			Backend: BackendConfig{BaseURL: "http://localhost:8000"},
			Session: SessionConfig{Secret: "s"},
			Cart:    CartConfig{Storage: "cookie"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing name", func(c *Config) { c.App.Name = "" }, true},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, true},
		{"missing backend", func(c *Config) { c.Backend.BaseURL = "" }, true},
		{"missing secret", func(c *Config) { c.Session.Secret = "" }, true},
		{"redis cart without redis", func(c *Config) { c.Cart.Storage = "redis" }, true},
		{"unknown storage", func(c *Config) { c.Cart.Storage = "disk" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
