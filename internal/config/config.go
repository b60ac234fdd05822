package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// MaxReadingsHistory is the hard upper bound on readings returned by one history call.
const MaxReadingsHistory = 50

type Config struct {
	Port        string
	Env         string
	DatabaseURL string
	LogLevel    string

	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	CORSAllowOrigins []string

	Readings ReadingsConfig
}

type ReadingsConfig struct {
	HistoryLimit int
	// QueryTimeout bounds a single history query. Zero leaves the pool default in place.
	QueryTimeout time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	accessExpiry, err := time.ParseDuration(getEnv("JWT_ACCESS_EXPIRY", "15m"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(getEnv("JWT_REFRESH_EXPIRY", "168h"))
	if err != nil {
		refreshExpiry = 168 * time.Hour
	}

	queryTimeout, err := time.ParseDuration(getEnv("READINGS_QUERY_TIMEOUT", "0s"))
	if err != nil || queryTimeout < 0 {
		queryTimeout = 0
	}

	historyLimit, err := strconv.Atoi(getEnv("READINGS_HISTORY_LIMIT", strconv.Itoa(MaxReadingsHistory)))
	if err != nil {
		historyLimit = MaxReadingsHistory
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		JWTSecret:        getEnvOrPanic("JWT_SECRET"),
		JWTAccessExpiry:  accessExpiry,
		JWTRefreshExpiry: refreshExpiry,

		CORSAllowOrigins: splitList(getEnv("CORS_ALLOW_ORIGINS", "*")),

		Readings: ReadingsConfig{
			HistoryLimit: ClampHistoryLimit(historyLimit),
			QueryTimeout: queryTimeout,
		},
	}, nil
}

// LoadDatabaseURL reads only DATABASE_URL, for tools that never sign tokens.
func LoadDatabaseURL() (string, error) {
	_ = godotenv.Load()

	url := getEnv("DATABASE_URL", "")
	if url == "" {
		return "", errors.New("DATABASE_URL is not set")
	}
	return url, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// ClampHistoryLimit keeps a configured history size within 1..MaxReadingsHistory.
func ClampHistoryLimit(n int) int {
	if n <= 0 || n > MaxReadingsHistory {
		return MaxReadingsHistory
	}
	return n
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvOrPanic(key string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		panic("required environment variable not set: " + key)
	}
	return value
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
