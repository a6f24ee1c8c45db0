package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const strongSecret = "Zq8!vR2#kL5@pW9$xN3^mB7&cT1*hY4%"

// clearEnv unsets every variable the config reads so host settings cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"DB_PATH", "GRPC_ADDRESS", "HTTP_ADDRESS", "SESSION_SECRET", "SESSION_TTL",
		"ADMIN_EMAIL", "ADMIN_PASSWORD", "LOGIN_RATE", "LOGIN_BURST",
		"LOG_LEVEL", "LOG_FORMAT", "LOG_PATH", "SHUTDOWN_TIMEOUT",
	} {
		if v, ok := os.LookupEnv(k); ok {
			t.Cleanup(func() { _ = os.Setenv(k, v) })
		}
		_ = os.Unsetenv(k)
	}
}

func TestLoadWithDefaults_Succeeds(t *testing.T) {
	clearEnv(t)
	cfg, defaulted, err := LoadWithDefaults()
	require.NoError(t, err)

	assert.Equal(t, "floodfriend.db", cfg.Database.Path)
	assert.Equal(t, ":50051", cfg.GRPC.Address)
	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, DevSessionSecret, cfg.Auth.SessionSecret)
	assert.Equal(t, DevAdminPassword, cfg.Auth.AdminPassword)
	assert.Equal(t, "admin@site.com", cfg.Auth.AdminEmail)
	assert.InDelta(t, 0.5, cfg.Auth.LoginRate, 1e-9)
	assert.Equal(t, 5, cfg.Auth.LoginBurst)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.ElementsMatch(t, []string{"SESSION_SECRET", "ADMIN_PASSWORD"}, defaulted)
}

func TestLoadWithDefaults_KeepsProvidedSecrets(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_SECRET", "short")
	t.Setenv("ADMIN_PASSWORD", "pw")

	cfg, defaulted, err := LoadWithDefaults()
	require.NoError(t, err)
	assert.Equal(t, "short", cfg.Auth.SessionSecret)
	assert.Equal(t, "pw", cfg.Auth.AdminPassword)
	assert.Empty(t, defaulted)
}

func TestLoad_RequiresSecrets(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_PATH", "test.db")
	t.Setenv("GRPC_ADDRESS", ":1234")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET")

	t.Setenv("SESSION_SECRET", strongSecret)
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_PASSWORD")

	t.Setenv("ADMIN_PASSWORD", "a-real-password")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "test.db", cfg.Database.Path)
	assert.Equal(t, ":1234", cfg.GRPC.Address)
}

func TestLoad_RejectsWeakSecrets(t *testing.T) {
	tests := []struct {
		name     string
		secret   string
		password string
		want     string
	}{
		{"short secret", "too-short", "pw-ok", "at least"},
		{"development password", strongSecret, DevAdminPassword, "known default"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("SESSION_SECRET", tt.secret)
			t.Setenv("ADMIN_PASSWORD", tt.password)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_SECRET", strongSecret)
	t.Setenv("ADMIN_PASSWORD", "pw-ok")

	t.Setenv("LOG_FORMAT", "xml")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("LOG_FORMAT", "console")
	t.Setenv("SESSION_TTL", "not-a-duration")
	_, err = Load()
	require.Error(t, err)

	t.Setenv("SESSION_TTL", "-1h")
	_, err = Load()
	require.Error(t, err)
}

func TestString_MasksSecrets(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_SECRET", strongSecret)
	t.Setenv("ADMIN_PASSWORD", "hunter2-hunter2")
	cfg, err := Load()
	require.NoError(t, err)

	s := cfg.String()
	assert.False(t, strings.Contains(s, strongSecret))
	assert.False(t, strings.Contains(s, "hunter2"))
	assert.Contains(t, s, "masked")
}
