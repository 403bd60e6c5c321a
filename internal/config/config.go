// Package config loads the server configuration from the environment and,
// when a Vault address is configured, overlays connection secrets read from
// a KV v2 backend on top of the env-provided values.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries everything cmd/api needs to wire the process together.
type Config struct {
	// MongoURL is required (env or Vault); MongoDB defaults to "leaks".
	MongoURL string
	MongoDB  string

	ServerIP   string
	ServerPort string
	LogLevel   string

	// NATSURL and RedisURL are optional; empty disables the corresponding
	// integration (event publishing, salt caching).
	NATSURL  string
	RedisURL string

	// OTELEndpoint enables tracing/metrics export when non-empty.
	OTELEndpoint string

	VaultAddr       string
	VaultToken      string
	VaultSecretPath string

	JokesAPIURL string

	// MemoryWatcherFile is the append-only RSS sample file; an explicitly
	// empty value disables the recorder.
	MemoryWatcherFile string

	CursorCacheSize int
	CursorCacheTTL  time.Duration
}

// Load reads the environment and applies defaults. Validation of required
// values happens in main, after the Vault overlay had its chance to fill
// them in.
func Load() Config {
	return Config{
		MongoURL:          os.Getenv("MONGO_URL"),
		MongoDB:           getenv("MONGO_DB", "leaks"),
		ServerIP:          getenv("SERVER_IP", "0.0.0.0"),
		ServerPort:        getenv("SERVER_PORT", "9999"),
		LogLevel:          getenv("LOG_LEVEL", "TRACE"),
		NATSURL:           os.Getenv("NATS_URL"),
		RedisURL:          os.Getenv("REDIS_URL"),
		OTELEndpoint:      os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		VaultAddr:         os.Getenv("VAULT_ADDR"),
		VaultToken:        getenv("VAULT_TOKEN", "root"),
		VaultSecretPath:   getenv("VAULT_SECRET_PATH", "secret/data/leakchef/api"),
		JokesAPIURL:       getenv("JOKES_API_URL", "https://api.chucknorris.io/jokes/random"),
		MemoryWatcherFile: lookupenv("MEMORY_WATCHER_FILE", "server_watcher.dat"),
		CursorCacheSize:   getint("CURSOR_CACHE_SIZE", 1000),
		CursorCacheTTL:    getduration("CURSOR_CACHE_TTL", 20*time.Second),
	}
}

// Addr returns the listen address in host:port form.
func (c Config) Addr() string {
	return c.ServerIP + ":" + c.ServerPort
}

// Overlay replaces connection values with the ones found in a Vault secret
// map. Keys mirror the env variable names so the same secret document works
// for both bootstrap paths.
func (c *Config) Overlay(secrets map[string]interface{}) {
	if v, ok := secrets["MONGO_URL"].(string); ok && v != "" {
		c.MongoURL = v
	}
	if v, ok := secrets["NATS_URL"].(string); ok && v != "" {
		c.NATSURL = v
	}
	if v, ok := secrets["REDIS_URL"].(string); ok && v != "" {
		c.RedisURL = v
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// lookupenv honors an explicitly set empty value, unlike getenv.
func lookupenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getduration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
