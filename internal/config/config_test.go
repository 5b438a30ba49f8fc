package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noDotEnv points at a file that does not exist so tests ignore any real .env.
func noDotEnv(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(LoadOptions{DotEnvPath: noDotEnv(t), Env: map[string]string{}})
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "./data/inventory.db", cfg.Storage.Path)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, SMSModeLog, cfg.SMS.Mode)
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, "stockkeeper.toml", `
[server]
addr = ":9090"

[storage]
path = "/var/lib/stockkeeper/inventory.db"

[auth]
jwt_secret = "0123456789abcdef"
session_ttl = "2h"

[sms]
mode = "webhook"
webhook_url = "http://sms.local/send"
timeout = "3s"

[logging]
level = "debug"
max_files = 2
`)

	cfg, err := Load(LoadOptions{ConfigPath: path, DotEnvPath: noDotEnv(t), Env: map[string]string{}})
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "/var/lib/stockkeeper/inventory.db", cfg.Storage.Path)
	assert.Equal(t, "0123456789abcdef", cfg.Auth.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, SMSModeWebhook, cfg.SMS.Mode)
	assert.Equal(t, "http://sms.local/send", cfg.SMS.WebhookURL)
	assert.Equal(t, 3*time.Second, cfg.SMS.Timeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 2, cfg.Logging.MaxFiles)
	// Unset keys keep their defaults.
	assert.Equal(t, defaultLogMaxSize, cfg.Logging.MaxSizeMB)
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	cfg, err := Load(LoadOptions{
		ConfigPath: filepath.Join(t.TempDir(), "nope.toml"),
		DotEnvPath: noDotEnv(t),
		Env:        map[string]string{},
	})
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestPrecedence(t *testing.T) {
	file := writeFile(t, "stockkeeper.toml", `
[server]
addr = ":9090"

[storage]
path = "from-file.db"
`)
	dotenv := writeFile(t, ".env", "STOCKKEEPER_DB_PATH=from-dotenv.db\nSTOCKKEEPER_SESSION_TTL=30m\n")

	cfg, err := Load(LoadOptions{
		ConfigPath: file,
		DotEnvPath: dotenv,
		Env:        map[string]string{"STOCKKEEPER_SESSION_TTL": "1h"},
	})
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr, "file beats default")
	assert.Equal(t, "from-dotenv.db", cfg.Storage.Path, ".env beats file")
	assert.Equal(t, time.Hour, cfg.Auth.SessionTTL, "environment beats .env")
}

func TestLogRotationFromEnv(t *testing.T) {
	file := writeFile(t, "stockkeeper.toml", "[logging]\nmax_size_mb = 20\nmax_files = 2\n")

	cfg, err := Load(LoadOptions{
		ConfigPath: file,
		DotEnvPath: noDotEnv(t),
		Env:        map[string]string{"LOG_MAX_SIZE_MB": "50", "LOG_MAX_FILES": "9"},
	})
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Logging.MaxSizeMB)
	assert.Equal(t, 9, cfg.Logging.MaxFiles)
}

func TestConfigPathFromEnv(t *testing.T) {
	file := writeFile(t, "stockkeeper.toml", "[server]\naddr = \":7070\"\n")

	cfg, err := Load(LoadOptions{
		DotEnvPath: noDotEnv(t),
		Env:        map[string]string{"STOCKKEEPER_CONFIG": file},
	})
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
}

func TestInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		file string
	}{
		{name: "bad duration", env: map[string]string{"STOCKKEEPER_SESSION_TTL": "soon"}},
		{name: "zero ttl", env: map[string]string{"STOCKKEEPER_SESSION_TTL": "0s"}},
		{name: "unknown sms mode", env: map[string]string{"STOCKKEEPER_SMS_MODE": "pigeon"}},
		{name: "webhook without url", env: map[string]string{"STOCKKEEPER_SMS_MODE": "webhook"}},
		{name: "malformed webhook url", env: map[string]string{"STOCKKEEPER_SMS_WEBHOOK_URL": "not a url"}},
		{name: "short jwt secret", env: map[string]string{"STOCKKEEPER_JWT_SECRET": "short"}},
		{name: "bad log level", env: map[string]string{"LOG_LEVEL": "loud"}},
		{name: "bad log size", env: map[string]string{"LOG_MAX_SIZE_MB": "big"}},
		{name: "bad log file count", env: map[string]string{"LOG_MAX_FILES": "few"}},
		{name: "negative log file count", env: map[string]string{"LOG_MAX_FILES": "-1"}},
		{name: "empty db path", env: map[string]string{"STOCKKEEPER_DB_PATH": ""}},
		{name: "broken toml", env: map[string]string{}, file: "[server\naddr = 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := LoadOptions{DotEnvPath: noDotEnv(t), Env: tt.env}
			if tt.file != "" {
				opts.ConfigPath = writeFile(t, "bad.toml", tt.file)
			}

			_, err := Load(opts)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
