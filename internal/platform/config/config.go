package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	pstrings "atelier/pkg/platform/strings"
)

// Build modes. Only development builds disclose captured error detail in fallbacks.
const (
	BuildDevelopment = "development"
	BuildProduction  = "production"
)

// Preference store backends.
const (
	StoreCookie   = "cookie"
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// Server captures process level configuration.
type Server struct {
	Addr            string
	BuildMode       string
	BaseURL         string
	LogLevel        string
	PreferenceStore string
	ContentStore    string
	DatabaseURL     string
	Redis           RedisConfig
	Kafka           KafkaConfig
	ShutdownTimeout time.Duration
}

// RedisConfig configures the optional Redis client. An empty URL disables Redis.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	KeyTTL       time.Duration
}

// KafkaConfig configures the diagnostics topic. No brokers disables the Kafka collector.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// PreferenceCookieTTL is how long a persisted theme choice survives in the browser.
var PreferenceCookieTTL = 365 * 24 * time.Hour

// DiagnosticsEnabled reports whether fallbacks may render captured error detail.
func (s Server) DiagnosticsEnabled() bool {
	return s.BuildMode == BuildDevelopment
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	return Server{
		Addr:            envOr("ATELIER_ADDR", ":8080"),
		BuildMode:       envOr("BUILD_MODE", BuildProduction),
		BaseURL:         strings.TrimRight(envOr("SITE_BASE_URL", "http://localhost:8080"), "/"),
		LogLevel:        envOr("LOG_LEVEL", "info"),
		PreferenceStore: envOr("PREFERENCE_STORE", StoreCookie),
		ContentStore:    envOr("CONTENT_STORE", StoreMemory),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
			KeyTTL:       envDuration("REDIS_PREFERENCE_TTL", PreferenceCookieTTL),
		},
		Kafka: KafkaConfig{
			Brokers: pstrings.SplitList(os.Getenv("KAFKA_BROKERS")),
			Topic:   envOr("DIAGNOSTICS_TOPIC", "atelier.render-faults"),
		},
		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
