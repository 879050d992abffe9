package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, vars map[string]string) {
	t.Helper()
	for _, k := range []string{
		"GO_ENV", "PORT", "FILES_ROOT", "FILE_SOURCE", "MANIFEST_PATH", "DATABASE_URL",
		"JWT_SECRET", "JWT_EXPIRY", "ADMIN_USERNAME", "ADMIN_PASSWORD_HASH",
		"CORS_ALLOWED_ORIGINS", "REQUEST_TIMEOUT",
	} {
		t.Setenv(k, vars[k])
	}
}

func TestLoad_Defaults(t *testing.T) {
	// production skips .env so the working directory cannot leak in.
	setEnv(t, map[string]string{"GO_ENV": "production", "JWT_SECRET": "s3cret"})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ".", cfg.FilesRoot)
	assert.Equal(t, SourceDir, cfg.FileSource)
	assert.Equal(t, "filetags.yaml", cfg.ManifestPath)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.Empty(t, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	setEnv(t, map[string]string{
		"GO_ENV":               "production",
		"JWT_SECRET":           "s3cret",
		"PORT":                 "9000",
		"FILE_SOURCE":          "postgres",
		"DATABASE_URL":         "postgres://localhost/filetags",
		"JWT_EXPIRY":           "90m",
		"REQUEST_TIMEOUT":      "250ms",
		"CORS_ALLOWED_ORIGINS": "http://a.test, http://b.test,",
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, SourcePostgres, cfg.FileSource)
	assert.Equal(t, 90*time.Minute, cfg.JWTExpiry)
	assert.Equal(t, 250*time.Millisecond, cfg.RequestTimeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		vars    map[string]string
		wantMsg string
	}{
		{"missing secret in production", map[string]string{"GO_ENV": "production"}, "JWT_SECRET"},
		{"unknown source", map[string]string{"GO_ENV": "production", "JWT_SECRET": "x", "FILE_SOURCE": "s3"}, "unknown FILE_SOURCE"},
		{"postgres without url", map[string]string{"GO_ENV": "production", "JWT_SECRET": "x", "FILE_SOURCE": "postgres"}, "DATABASE_URL"},
		{"bad duration", map[string]string{"GO_ENV": "production", "JWT_SECRET": "x", "JWT_EXPIRY": "soon"}, "invalid JWT_EXPIRY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnv(t, tt.vars)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoad_DevelopmentSecretFallback(t *testing.T) {
	setEnv(t, map[string]string{"GO_ENV": "test"})
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.JWTSecret)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "production", "warn")
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "v", entry["k"])

	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelInfo, parseLevel("bogus"))
}
