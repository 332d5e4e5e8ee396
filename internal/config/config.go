package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration values.
type Config struct {
	// Local data
	DataDir string

	// Logging
	LogFile  string
	LogLevel slog.Level

	// Chat behavior
	PageSize           int
	DefaultCountryCode string

	// Mock backend
	SimulateLatency bool
	AIMinDelay      time.Duration
	AIMaxDelay      time.Duration
}

// Load reads configuration from a .env file (if present) and environment
// variables.
func Load() Config {
	// Missing .env is fine; env vars alone work.
	_ = godotenv.Load()

	return Config{
		DataDir: getEnv("GEMCHAT_DATA_DIR", defaultDataDir()),

		LogFile:  getEnv("GEMCHAT_LOG_FILE", "/tmp/gemchat.log"),
		LogLevel: parseLogLevel(getEnv("GEMCHAT_LOG_LEVEL", "INFO")),

		PageSize:           getEnvInt("GEMCHAT_PAGE_SIZE", 20),
		DefaultCountryCode: getEnv("GEMCHAT_COUNTRY_CODE", "+1"),

		SimulateLatency: getEnv("GEMCHAT_FAST", "false") != "true",
		AIMinDelay:      getEnvDuration("GEMCHAT_AI_MIN_DELAY", 2*time.Second),
		AIMaxDelay:      getEnvDuration("GEMCHAT_AI_MAX_DELAY", 5*time.Second),
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gemchat"
	}
	return filepath.Join(home, ".gemchat")
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil && d >= 0 {
			return d
		}
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
