package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/jaminalder/tic-tac-toe-bot/internal/bot"
)

// Config holds process settings read from the environment.
type Config struct {
	Addr              string
	LogLevel          slog.Level
	DefaultDifficulty bot.Difficulty
	Heartbeat         time.Duration
	RandSeed          int64
	MediumBypassRate  float64
}

// LoadEnv reads .env files if present. Missing files are not an error.
func LoadEnv(files ...string) {
	for _, f := range files {
		if err := godotenv.Load(f); err == nil {
			return
		}
	}
}

// Load builds a Config from the environment, falling back to defaults and
// logging values that do not parse.
func Load() *Config {
	cfg := &Config{
		Addr:             GetEnv("ADDR", ":"+GetEnv("PORT", "8080")),
		LogLevel:         ParseLevel(GetEnv("LOG_LEVEL", "info")),
		Heartbeat:        time.Duration(GetEnvAsInt("HEARTBEAT_SECONDS", 15)) * time.Second,
		RandSeed:         int64(GetEnvAsInt("RAND_SEED", 0)),
		MediumBypassRate: GetEnvAsFloat("MEDIUM_BYPASS_RATE", bot.MediumBypassRate),
	}
	if cfg.RandSeed == 0 {
		cfg.RandSeed = time.Now().UnixNano()
	}
	d, err := bot.ParseDifficulty(GetEnv("DEFAULT_DIFFICULTY", "medium"))
	if err != nil {
		slog.Warn("invalid DEFAULT_DIFFICULTY, using medium", "err", err)
		d = bot.Medium
	}
	cfg.DefaultDifficulty = d
	if cfg.MediumBypassRate < 0 || cfg.MediumBypassRate > 1 {
		slog.Warn("MEDIUM_BYPASS_RATE out of range, using default", "value", cfg.MediumBypassRate)
		cfg.MediumBypassRate = bot.MediumBypassRate
	}
	return cfg
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		slog.Warn("invalid integer value, using default", "key", key, "value", valueStr, "default", defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		slog.Warn("invalid float value, using default", "key", key, "value", valueStr, "default", defaultValue)
		return defaultValue
	}
	return value
}

// ParseLevel maps debug|info|warn|error to a slog level; anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
