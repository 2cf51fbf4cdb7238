package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaminalder/tic-tac-toe-bot/internal/bot"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"ADDR", "PORT", "LOG_LEVEL", "HEARTBEAT_SECONDS", "RAND_SEED", "MEDIUM_BYPASS_RATE", "DEFAULT_DIFFICULTY"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, bot.Medium, cfg.DefaultDifficulty)
	assert.Equal(t, 15*time.Second, cfg.Heartbeat)
	assert.Equal(t, bot.MediumBypassRate, cfg.MediumBypassRate)
	assert.NotZero(t, cfg.RandSeed)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ADDR", "")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("DEFAULT_DIFFICULTY", "hard")
	t.Setenv("HEARTBEAT_SECONDS", "3")
	t.Setenv("RAND_SEED", "42")
	t.Setenv("MEDIUM_BYPASS_RATE", "0.5")
	cfg := Load()
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, bot.Hard, cfg.DefaultDifficulty)
	assert.Equal(t, 3*time.Second, cfg.Heartbeat)
	assert.Equal(t, int64(42), cfg.RandSeed)
	assert.Equal(t, 0.5, cfg.MediumBypassRate)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("DEFAULT_DIFFICULTY", "brutal")
	t.Setenv("HEARTBEAT_SECONDS", "soon")
	t.Setenv("MEDIUM_BYPASS_RATE", "1.5")
	cfg := Load()
	assert.Equal(t, bot.Medium, cfg.DefaultDifficulty)
	assert.Equal(t, 15*time.Second, cfg.Heartbeat)
	assert.Equal(t, bot.MediumBypassRate, cfg.MediumBypassRate)
}

func TestLoadEnvFile(t *testing.T) {
	t.Setenv("DEFAULT_DIFFICULTY", "")
	os.Unsetenv("DEFAULT_DIFFICULTY")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DEFAULT_DIFFICULTY=easy\n"), 0o600))
	LoadEnv(filepath.Join(t.TempDir(), "missing.env"), path)
	assert.Equal(t, bot.Easy, Load().DefaultDifficulty)
}
