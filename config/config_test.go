package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/weblog"
	"github.com/xy-planning-network/weblog/config"
)

var envVars = []string{
	"ADMIN_PASSWORD",
	"ADMIN_USERNAME",
	"BASE_URL",
	"DATABASE_MAX_IDLE_CXNS",
	"DATABASE_URL",
	"ENVIRONMENT",
	"IDEMPOTENCY_REDIS_ADDR",
	"LOG_LEVEL",
	"PORT",
	"RATE_LIMIT",
	"SECRET_KEY",
	"SENTRY_DSN",
	"SERVER_IDLE_TIMEOUT",
	"SERVER_READ_TIMEOUT",
	"SERVER_WRITE_TIMEOUT",
	"SESSION_ENCRYPTION_KEY",
	"SESSION_MAX_AGE",
	"SESSION_REDIS_ADDR",
	"SESSION_REDIS_PASSWORD",
	"STATIC_DIR",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envVars {
		t.Setenv(key, "")
	}
}

func writeSettings(t *testing.T, body string) string {
	t.Helper()
	fp := filepath.Join(t.TempDir(), "settings.yaml")
	require.Nil(t, os.WriteFile(fp, []byte(body), 0o600))
	return fp
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	for _, path := range []string{"", filepath.Join(t.TempDir(), "missing.yaml")} {
		// Act
		cfg, err := config.Load(path)

		// Assert
		require.Nil(t, err)
		require.Equal(t, config.Default(), cfg)
		require.Equal(t, weblog.Development, cfg.Environment)
		require.Equal(t, "weblog.db", cfg.Database)
		require.Equal(t, 0, cfg.DatabaseMaxIdleCxns)
		require.Equal(t, "development_key", cfg.SecretKey)
		require.Equal(t, "admin", cfg.Username)
		require.Equal(t, "default", cfg.Password)
		require.Equal(t, ":3000", cfg.Address())
		require.Equal(t, 0, cfg.SessionMaxAge)
		require.False(t, cfg.RateLimit)
	}
}

func TestLoadSettingsFile(t *testing.T) {
	// Arrange
	clearEnv(t)
	fp := writeSettings(t, `
environment: staging
database: /var/lib/weblog/entries.db
secret_key: from-file
username: editor
password: hunter2
port: "8080"
log_level: debug
session_max_age: 3600
server_read_timeout: 10s
rate_limit: true
`)

	// Act
	cfg, err := config.Load(fp)

	// Assert
	require.Nil(t, err)
	require.Equal(t, weblog.Staging, cfg.Environment)
	require.Equal(t, "/var/lib/weblog/entries.db", cfg.Database)
	require.Equal(t, "from-file", cfg.SecretKey)
	require.Equal(t, "editor", cfg.Username)
	require.Equal(t, "hunter2", cfg.Password)
	require.Equal(t, ":8080", cfg.Address())
	require.Equal(t, "DEBUG", cfg.LogLevel)
	require.Equal(t, 3600, cfg.SessionMaxAge)
	require.Equal(t, 10*time.Second, cfg.ServerReadTimeout)
	require.Equal(t, config.DefaultServerWriteTimeout, cfg.ServerWriteTimeout)
	require.True(t, cfg.RateLimit)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	// Arrange
	clearEnv(t)
	fp := writeSettings(t, "secret_key: from-file\nusername: editor\n")
	t.Setenv("SECRET_KEY", "from-env")
	t.Setenv("DATABASE_URL", "postgres://weblog@localhost/weblog")
	t.Setenv("SESSION_MAX_AGE", "60")
	t.Setenv("SENTRY_DSN", "https://public@sentry.example.com/1")

	// Act
	cfg, err := config.Load(fp)

	// Assert
	require.Nil(t, err)
	require.Equal(t, "from-env", cfg.SecretKey)
	require.Equal(t, "editor", cfg.Username)
	require.Equal(t, "postgres://weblog@localhost/weblog", cfg.Database)
	require.Equal(t, 60, cfg.SessionMaxAge)
	require.Equal(t, "https://public@sentry.example.com/1", cfg.SentryDSN)
}

func TestLoadBadFile(t *testing.T) {
	// Arrange
	clearEnv(t)
	fp := writeSettings(t, "username: [admin\n")

	// Act
	cfg, err := config.Load(fp)

	// Assert
	require.Nil(t, cfg)
	require.ErrorIs(t, err, weblog.ErrBadFormat)
}

func TestLoadInvalid(t *testing.T) {
	tcs := []struct {
		name     string
		settings string
		env      map[string]string
	}{
		{"no-database", "database: \"\"\n", nil},
		{"no-secret", "secret_key: \"\"\n", nil},
		{"no-username", "username: \"\"\n", nil},
		{"no-password", "password: \"\"\n", nil},
		{"bad-environment", "environment: qa\n", nil},
		{"bad-port", "port: localhost\n", nil},
		{"bad-base-url", "base_url: not a url\n", nil},
		{"bad-log-level", "log_level: chatty\n", nil},
		{"negative-max-age", "session_max_age: -1\n", nil},
		{"negative-idle", "database_max_idle_cxns: -2\n", nil},
		{"not-hex-key", "session_encryption_key: not-hex\n", nil},
		{"short-key", "session_encryption_key: abcd\n", nil},
		{"default-secret-in-production", "", map[string]string{"ENVIRONMENT": "production"}},
		{"misspelled-environment-var", "", map[string]string{"ENVIRONMENT": "PRODUCTOIN"}},
		{"bad-max-age-var", "", map[string]string{"SESSION_MAX_AGE": "a day"}},
		{"bad-idle-cxns-var", "", map[string]string{"DATABASE_MAX_IDLE_CXNS": "two"}},
		{"bad-timeout-var", "", map[string]string{"SERVER_READ_TIMEOUT": "5"}},
		{"bad-rate-limit-var", "", map[string]string{"RATE_LIMIT": "yes"}},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			fp := writeSettings(t, tc.settings)

			// Act
			cfg, err := config.Load(fp)

			// Assert
			require.Nil(t, cfg)
			require.ErrorIs(t, err, weblog.ErrBadConfig)
		})
	}
}

func TestLoadReportsEveryBadEnvVar(t *testing.T) {
	// Arrange
	clearEnv(t)
	t.Setenv("ENVIRONMENT", "PRODUCTOIN")
	t.Setenv("SESSION_MAX_AGE", "a day")

	// Act
	cfg, err := config.Load("")

	// Assert
	require.Nil(t, cfg)
	require.ErrorIs(t, err, weblog.ErrBadConfig)
	require.Contains(t, err.Error(), "ENVIRONMENT")
	require.Contains(t, err.Error(), "SESSION_MAX_AGE")
}

func TestValidateEncryptionKey(t *testing.T) {
	// Arrange
	cfg := config.Default()
	cfg.SessionEncryptionKey = "000102030405060708090a0b0c0d0e0f"

	// Act + Assert
	require.Nil(t, cfg.Validate())

	cfg.Environment = weblog.Production
	require.NotNil(t, cfg.Validate())

	cfg.SecretKey = "a-real-secret"
	require.Nil(t, cfg.Validate())
}
