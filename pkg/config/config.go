package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv   string
	LogLevel string

	// Persistence. DatabaseURL selects PostgreSQL when set; otherwise the
	// scheduler falls back to the local SQLite file at SQLitePath.
	DatabaseURL string
	SQLitePath  string

	// Redis (optional, ephemeris cache)
	RedisURL string

	// RabbitMQ (optional, domain event publishing)
	RabbitMQURL string

	// Observer site
	ObserverLatitude  float64
	ObserverLongitude float64

	// Scheduling defaults
	MinAltitude   float64
	MaxAirmass    float64
	SlotIncrement time.Duration
	SampleEdges   bool

	// Ephemeris provider resilience
	EphemerisCacheTTL       time.Duration
	BreakerMaxRequests      int
	BreakerInterval         time.Duration
	BreakerTimeout          time.Duration
	BreakerFailureThreshold int
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		SQLitePath:  getEnv("ASTROSCHED_DB_PATH", getDefaultDBPath()),

		RedisURL:    getEnv("REDIS_URL", ""),
		RabbitMQURL: getEnv("RABBITMQ_URL", ""),

		ObserverLatitude:  getFloatEnv("OBSERVER_LATITUDE", 0),
		ObserverLongitude: getFloatEnv("OBSERVER_LONGITUDE", 0),

		MinAltitude:   getFloatEnv("SCHED_MIN_ALTITUDE", 30),
		MaxAirmass:    getFloatEnv("SCHED_MAX_AIRMASS", 2),
		SlotIncrement: getDurationEnv("SCHED_SLOT_INCREMENT", 15*time.Minute),
		SampleEdges:   getBoolEnv("SCHED_SAMPLE_EDGES", false),

		EphemerisCacheTTL:       getDurationEnv("EPHEMERIS_CACHE_TTL", 10*time.Minute),
		BreakerMaxRequests:      getIntEnv("EPHEMERIS_BREAKER_MAX_REQUESTS", 3),
		BreakerInterval:         getDurationEnv("EPHEMERIS_BREAKER_INTERVAL", 60*time.Second),
		BreakerTimeout:          getDurationEnv("EPHEMERIS_BREAKER_TIMEOUT", 30*time.Second),
		BreakerFailureThreshold: getIntEnv("EPHEMERIS_BREAKER_FAILURES", 5),
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".astrosched/astrosched.db"
	}
	return home + "/.astrosched/astrosched.db"
}
