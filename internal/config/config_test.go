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

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
escrow_db:
  dsn: "postgres://escrow@localhost/escrow"
auth:
  jwt_secret: "secret"
kafka_service:
  brokers: ["kafka-1:9092", "kafka-2:9092"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://escrow@localhost/escrow", cfg.EscrowDB.Dsn)
	assert.Equal(t, "8080", cfg.HTTPServer.Port)
	assert.Equal(t, "info", cfg.LogConfig.LogLevel)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaService.Brokers)
	assert.Equal(t, "trade.events", cfg.KafkaService.TradeTopic)
	assert.Equal(t, time.Minute, cfg.Expiry.Interval)
	assert.False(t, cfg.Expiry.Enabled)
	assert.False(t, cfg.Trust.Async)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
escrow_db:
  dsn: "from-file"
auth:
  jwt_secret: "secret"
log_config:
  log_level: "info"
`)
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TRUST_ASYNC", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogConfig.LogLevel)
	assert.True(t, cfg.Trust.Async)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("")
	require.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
