package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"port": 8080,
		"jwt_secret": "secret",
		"database": {"host": "localhost", "port": 5432, "user": "bookhub", "db_name": "bookhub"},
		"mail": {"host": "localhost", "port": 25, "from": "noreply@bookhub.local"}
	}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "http://127.0.0.1:8080", cfg.BaseURL)
	require.Equal(t, 72, cfg.JWTTTLHours)
	require.Equal(t, 120, cfg.Otp.ValiditySeconds)
	require.Equal(t, 60, cfg.Otp.ResendCooldownSeconds)
	require.Equal(t, 3, cfg.Otp.CleanupAgeMinutes)
	require.Equal(t, "https://www.googleapis.com/books/v1", cfg.Catalog.BaseURL)
	require.Equal(t, 256, cfg.Catalog.CacheSize)
	require.Equal(t, "local", cfg.FileStore.Type)
}

func TestLoadMissingRequired(t *testing.T) {
	path := writeConfig(t, `{"port": 8080}`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `{
		"port": 9000,
		"base_url": "https://bookhub.example.com",
		"jwt_secret": "secret",
		"database": {"dsn": "postgres://bookhub@localhost/bookhub"},
		"mail": {"from": "noreply@bookhub.local"},
		"otp": {"validity_seconds": 300, "cleanup_age_minutes": 10}
	}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "https://bookhub.example.com", cfg.BaseURL)
	require.Equal(t, 300, cfg.Otp.ValiditySeconds)
	require.Equal(t, 10, cfg.Otp.CleanupAgeMinutes)
}
