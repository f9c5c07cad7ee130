package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the board client.
type Config struct {
	App      AppConfig
	API      APIConfig
	Realtime RealtimeConfig
	Logger   LoggerConfig
	Board    BoardConfig
}

// AppConfig controls client level behavior.
type AppConfig struct {
	Name    string
	Env     string
	Version string
}

// APIConfig holds ticket backend connection values.
type APIConfig struct {
	BaseURL               string
	Token                 string
	RequestTimeoutSeconds int
}

// RealtimeConfig holds the redis push-channel connection values.
type RealtimeConfig struct {
	Addr     string
	Password string
	DB       int
	Channel  string
	// DebounceMillis is how long the refresh worker waits after a
	// change signal before reloading, coalescing bursts.
	DebounceMillis int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// BoardConfig controls board presentation defaults.
type BoardConfig struct {
	// ColumnPageSize limits tickets shown per column; 0 shows all.
	ColumnPageSize int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "ticket-board"),
			Env:     getEnv("APP_ENV", "development"),
			Version: getEnv("APP_VERSION", "dev"),
		},
		API: APIConfig{
			BaseURL:               getEnv("API_BASE_URL", "http://127.0.0.1:8080"),
			Token:                 os.Getenv("API_TOKEN"),
			RequestTimeoutSeconds: getEnvAsInt("API_TIMEOUT_SECONDS", 15),
		},
		Realtime: RealtimeConfig{
			Addr:           getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password:       os.Getenv("REDIS_PASSWORD"),
			DB:             redisDB,
			Channel:        getEnv("REDIS_CHANNEL", "tickets:changed"),
			DebounceMillis: getEnvAsInt("REALTIME_DEBOUNCE_MILLIS", 250),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Board: BoardConfig{
			ColumnPageSize: getEnvAsInt("BOARD_PAGE_SIZE", 5),
		},
	}

	return cfg, nil
}

// RequestTimeout returns the configured backend request timeout.
func (a APIConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Debounce returns the refresh coalescing window.
func (r RealtimeConfig) Debounce() time.Duration {
	if r.DebounceMillis <= 0 {
		return 0
	}
	return time.Duration(r.DebounceMillis) * time.Millisecond
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
