package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFile_Defaults(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, "server:\n  port: 9090\n"))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, 3, cfg.Hiring.MaxAttempts)
	assert.Equal(t, 25*time.Millisecond, cfg.Hiring.InitialBackoff)
	assert.Equal(t, 250*time.Millisecond, cfg.Hiring.MaxBackoff)
	assert.Equal(t, 5*time.Second, cfg.Hiring.AttemptTimeout)
	assert.Equal(t, "redis", cfg.Notify.Driver)
	assert.Equal(t, 256, cfg.Notify.QueueSize)
	assert.Equal(t, "disable", cfg.DB.SSLMode)
}

func TestLoadFile_FileValues(t *testing.T) {
	path := writeConfig(t, `
storage:
  driver: memory
hiring:
  max_attempts: 5
  initial_backoff: 10ms
notify:
  driver: log
jwt:
  secret: s3cret
  expiration: 2h
`)
	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, 5, cfg.Hiring.MaxAttempts)
	assert.Equal(t, 10*time.Millisecond, cfg.Hiring.InitialBackoff)
	assert.Equal(t, "log", cfg.Notify.Driver)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, 2*time.Hour, cfg.JWT.Expiration)
}

func TestLoadFile_EnvOverrides(t *testing.T) {
	t.Setenv("GIGFLOW_HIRING_MAX_ATTEMPTS", "7")
	t.Setenv("GIGFLOW_NOTIFY_DRIVER", "none")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("SERVER_PORT", "8181")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadFile(writeConfig(t, "hiring:\n  max_attempts: 2\n"))
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Hiring.MaxAttempts)
	assert.Equal(t, "none", cfg.Notify.Driver)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 8181, cfg.Server.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoadFile_RejectsUnknownDrivers(t *testing.T) {
	_, err := LoadFile(writeConfig(t, "storage:\n  driver: mongo\n"))
	assert.ErrorContains(t, err, "storage.driver")

	_, err = LoadFile(writeConfig(t, "notify:\n  driver: smtp\n"))
	assert.ErrorContains(t, err, "notify.driver")
}

func TestDBConfig_DSN(t *testing.T) {
	c := DBConfig{User: "u", Password: "p", Host: "h", Port: 5433, Name: "n", SSLMode: "require"}
	assert.Equal(t, "postgres://u:p@h:5433/n?sslmode=require", c.DSN())
}

func TestLoadFile_Telemetry(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, "server:\n  port: 9090\n"))
	require.NoError(t, err)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "localhost:4318", cfg.Telemetry.Endpoint)
	assert.Equal(t, 30*time.Second, cfg.Telemetry.ExportInterval)

	cfg, err = LoadFile(writeConfig(t, "telemetry:\n  enabled: true\n  endpoint: otel:4318\n  export_interval: 5s\n"))
	require.NoError(t, err)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "otel:4318", cfg.Telemetry.Endpoint)
	assert.Equal(t, 5*time.Second, cfg.Telemetry.ExportInterval)

	_, err = LoadFile(writeConfig(t, "telemetry:\n  enabled: true\n  endpoint: \"\"\n"))
	assert.ErrorContains(t, err, "telemetry.endpoint")
}
