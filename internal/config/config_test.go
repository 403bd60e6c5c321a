package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kristi-balla/leakchef/internal/config"
)

// clearenv unsets a variable for the duration of the test. t.Setenv
// registers the restore, Unsetenv removes the value it just set.
func clearenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"MONGO_URL", "MONGO_DB", "SERVER_IP", "SERVER_PORT", "LOG_LEVEL",
		"NATS_URL", "REDIS_URL", "OTEL_EXPORTER_OTLP_ENDPOINT",
		"VAULT_ADDR", "VAULT_TOKEN", "VAULT_SECRET_PATH", "JOKES_API_URL",
		"MEMORY_WATCHER_FILE", "CURSOR_CACHE_SIZE", "CURSOR_CACHE_TTL",
	} {
		clearenv(t, key)
	}

	cfg := config.Load()

	assert.Empty(t, cfg.MongoURL)
	assert.Equal(t, "leaks", cfg.MongoDB)
	assert.Equal(t, "0.0.0.0", cfg.ServerIP)
	assert.Equal(t, "9999", cfg.ServerPort)
	assert.Equal(t, "TRACE", cfg.LogLevel)
	assert.Empty(t, cfg.NATSURL)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, "server_watcher.dat", cfg.MemoryWatcherFile)
	assert.Equal(t, 1000, cfg.CursorCacheSize)
	assert.Equal(t, 20*time.Second, cfg.CursorCacheTTL)
}

func TestLoad_EnvironmentWins(t *testing.T) {
	t.Setenv("MONGO_URL", "mongodb://db:27017")
	t.Setenv("MONGO_DB", "leaks_test")
	t.Setenv("SERVER_IP", "127.0.0.1")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("CURSOR_CACHE_SIZE", "50")
	t.Setenv("CURSOR_CACHE_TTL", "1m30s")

	cfg := config.Load()

	assert.Equal(t, "mongodb://db:27017", cfg.MongoURL)
	assert.Equal(t, "leaks_test", cfg.MongoDB)
	assert.Equal(t, "127.0.0.1:8080", cfg.Addr())
	assert.Equal(t, 50, cfg.CursorCacheSize)
	assert.Equal(t, 90*time.Second, cfg.CursorCacheTTL)
}

func TestLoad_EmptyWatcherFileDisablesRecorder(t *testing.T) {
	// An explicitly empty value is a deliberate opt-out, not an unset
	// variable falling back to the default.
	t.Setenv("MEMORY_WATCHER_FILE", "")

	cfg := config.Load()
	assert.Empty(t, cfg.MemoryWatcherFile)
}

func TestLoad_GarbageNumbersFallBack(t *testing.T) {
	t.Setenv("CURSOR_CACHE_SIZE", "a lot")
	t.Setenv("CURSOR_CACHE_TTL", "soon")

	cfg := config.Load()
	assert.Equal(t, 1000, cfg.CursorCacheSize)
	assert.Equal(t, 20*time.Second, cfg.CursorCacheTTL)
}

func TestOverlay_ReplacesConnectionValues(t *testing.T) {
	cfg := config.Config{MongoURL: "mongodb://env:27017"}

	cfg.Overlay(map[string]interface{}{
		"MONGO_URL": "mongodb://vault:27017",
		"NATS_URL":  "nats://vault:4222",
	})

	assert.Equal(t, "mongodb://vault:27017", cfg.MongoURL)
	assert.Equal(t, "nats://vault:4222", cfg.NATSURL)
	assert.Empty(t, cfg.RedisURL)
}

func TestOverlay_IgnoresEmptyAndForeignValues(t *testing.T) {
	cfg := config.Config{MongoURL: "mongodb://env:27017", RedisURL: "redis://env:6379"}

	cfg.Overlay(map[string]interface{}{
		"MONGO_URL": "",
		"REDIS_URL": 42,
		"UNRELATED": "value",
	})

	assert.Equal(t, "mongodb://env:27017", cfg.MongoURL)
	assert.Equal(t, "redis://env:6379", cfg.RedisURL)
}
