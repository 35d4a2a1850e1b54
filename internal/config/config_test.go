package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-at-least-32-chars!!"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 24*time.Hour, cfg.AccessTokenExpiry)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, int64(5<<20), cfg.MaxUploadSize)
	assert.Equal(t, 120, cfg.RateLimitGeneral)
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "too-short")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("ACCESS_TOKEN_EXPIRY", "30m")
	t.Setenv("RATE_LIMIT_AUTH", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.ServerPort)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenExpiry)
	assert.Equal(t, 5, cfg.RateLimitAuth)
}

func TestLoad_ConfigFileWithEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"server_port: \"7070\"\nkafka_topic: file-topic\n",
	), 0o600))

	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("KAFKA_TOPIC", "env-topic")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.ServerPort, "file value applies")
	assert.Equal(t, "env-topic", cfg.KafkaTopic, "environment wins over the file")
}

func TestLoad_MissingConfigFile(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("CONFIG_FILE", "/nonexistent/config.yaml")

	_, err := Load()
	assert.Error(t, err)
}

func TestGetEnvHelpers_IgnoreUnparseableValues(t *testing.T) {
	t.Setenv("SOME_INT", "not-a-number")
	assert.Equal(t, 42, getEnvInt("SOME_INT", 42))

	t.Setenv("SOME_DURATION", "tomorrow")
	assert.Equal(t, time.Minute, getEnvDuration("SOME_DURATION", time.Minute))
}
