package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "SESSION_TTL", "STORE", "UPLOAD_DIR", "PUBLIC_UPLOAD_PREFIX", "JWT_SECRET", "CORS_ORIGINS", "AUTO_MIGRATE", "DB_PORT"} {
		t.Setenv(k, "")
	}
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 12*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, "postgres", cfg.Store)
	assert.Equal(t, "./uploads", cfg.Uploads.Dir)
	assert.Equal(t, "/uploads", cfg.Uploads.URLPrefix)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Empty(t, cfg.HTTP.CORSOrigins)
	assert.False(t, cfg.AutoMigrate)
	assert.Empty(t, cfg.Auth.JWTSecret)
	assert.ErrorIs(t, cfg.Auth.CheckSecret(), ErrInsecureJWTSecret)
}

func TestAuthConfig_CheckSecret(t *testing.T) {
	tests := []struct {
		secret string
		ok     bool
	}{
		{"", false},
		{"   ", false},
		{"changeme", false},
		{"short-secret", false},
		{"9f2c7e41b8d04a6e9a1f3c5d7e8b0a2c", true},
	}
	for _, tt := range tests {
		err := AuthConfig{JWTSecret: tt.secret}.CheckSecret()
		if tt.ok {
			assert.NoError(t, err, "%q", tt.secret)
		} else {
			assert.ErrorIs(t, err, ErrInsecureJWTSecret, "%q", tt.secret)
		}
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE", "Memory")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("CORS_ORIGINS", "https://bar.example.com, http://localhost:3000,")
	t.Setenv("AUTO_MIGRATE", "true")
	t.Setenv("COOKIE_SECURE", "1")
	t.Setenv("TELEGRAM_ADMIN_CHAT_ID", "-100123")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Store)
	assert.Equal(t, 30*time.Minute, cfg.Auth.SessionTTL)
	assert.Equal(t, []string{"https://bar.example.com", "http://localhost:3000"}, cfg.HTTP.CORSOrigins)
	assert.True(t, cfg.AutoMigrate)
	assert.True(t, cfg.Auth.CookieSecure)
	assert.Equal(t, int64(-100123), cfg.Telegram.AdminChatID)
}

func TestLoad_BadTTLFallsBack(t *testing.T) {
	t.Setenv("SESSION_TTL", "forever")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 12*time.Hour, cfg.Auth.SessionTTL)
}
