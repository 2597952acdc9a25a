package config

import (
	"os"
	"strconv"
	"strings"
	"sync"
)

// Config holds application configuration from environment.
type Config struct {
	HTTPPort string

	// Storage backend selection: memory, file, bolt, redis, postgres.
	StorageBackend string
	StorageDir     string // file backend
	BoltPath       string // bolt backend
	DatabaseURL    string // postgres backend
	DBPoolSize     int
	RedisURL       string // redis backend
	RedisPoolSize  int

	// Change-event stream (optional; disabled when no brokers configured).
	KafkaBrokers []string
	KafkaTopic   string

	// Interval counter tick, milliseconds.
	TickMillis int
}

var (
	cfg     *Config
	cfgOnce sync.Once
)

// Get returns the application config (loads once from env).
func Get() *Config {
	cfgOnce.Do(func() {
		cfg = &Config{
			HTTPPort:       getEnv("HTTP_PORT", "8080"),
			StorageBackend: getEnv("STORAGE_BACKEND", "memory"),
			StorageDir:     getEnv("STORAGE_DIR", "./data"),
			BoltPath:       getEnv("BOLT_PATH", "./data/statelab.db"),
			DatabaseURL:    os.Getenv("DATABASE_URL"),
			DBPoolSize:     getIntEnv("DB_POOL_SIZE", 10),
			RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379/0"),
			RedisPoolSize:  getIntEnv("REDIS_POOL_SIZE", 10),
			KafkaBrokers:   getSliceEnv("KAFKA_BROKERS", ""),
			KafkaTopic:     getEnv("KAFKA_TODO_TOPIC", "todo-events"),
			TickMillis:     getIntEnv("TICK_MILLIS", 1000),
		}
	})
	return cfg
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getIntEnv(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

func getSliceEnv(key, defaultVal string) []string {
	v := os.Getenv(key)
	if v == "" {
		v = defaultVal
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
