package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"RACHEL_LOG_LEVEL", "RACHEL_TURN_TIMER_SEC", "RACHEL_AI_THINK_MS",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "DATABASE_URL",
	"RACHEL_GAMES", "RACHEL_PLAYERS", "RACHEL_CARDS_PER_PLAYER", "RACHEL_SEED",
	"RACHEL_REPORT_GAME",
}

// unsetEnv clears keys for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		if v, ok := os.LookupEnv(k); ok {
			t.Cleanup(func() { os.Setenv(k, v) })
		} else {
			t.Cleanup(func() { os.Unsetenv(k) })
		}
		require.NoError(t, os.Unsetenv(k))
	}
}

func missingFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadDefaults(t *testing.T) {
	unsetEnv(t, allKeys...)
	cfg, err := Load(missingFile(t))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, time.Duration(0), cfg.TurnTimer)
	assert.Equal(t, 1200*time.Millisecond, cfg.AIThink)
	assert.Empty(t, cfg.RedisAddr)
	assert.Zero(t, cfg.RedisDB)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, 4, cfg.Games)
	assert.Equal(t, 4, cfg.Players)
	assert.Equal(t, 7, cfg.CardsPerPlayer)
	assert.Zero(t, cfg.Seed)
	assert.Empty(t, cfg.ReportGame)
}

func TestLoadFromEnv(t *testing.T) {
	unsetEnv(t, allKeys...)
	t.Setenv("RACHEL_LOG_LEVEL", "debug")
	t.Setenv("RACHEL_TURN_TIMER_SEC", "15")
	t.Setenv("RACHEL_AI_THINK_MS", "50")
	t.Setenv("RACHEL_PLAYERS", "6")
	t.Setenv("RACHEL_SEED", "99")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("RACHEL_REPORT_GAME", "2b5e0c3e-93a4-4d55-9a4e-6f3f3b1f1c2d")

	cfg, err := Load(missingFile(t))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 15*time.Second, cfg.TurnTimer)
	assert.Equal(t, 50*time.Millisecond, cfg.AIThink)
	assert.Equal(t, 6, cfg.Players)
	assert.Equal(t, uint64(99), cfg.Seed)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, "2b5e0c3e-93a4-4d55-9a4e-6f3f3b1f1c2d", cfg.ReportGame)
}

func TestLoadEnvFile(t *testing.T) {
	unsetEnv(t, allKeys...)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("RACHEL_GAMES=9\nRACHEL_CARDS_PER_PLAYER=5\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Games)
	assert.Equal(t, 5, cfg.CardsPerPlayer)
}

func TestLoadRejectsBadValues(t *testing.T) {
	unsetEnv(t, allKeys...)
	t.Setenv("RACHEL_PLAYERS", "twelve")
	_, err := Load(missingFile(t))
	assert.ErrorContains(t, err, "Players")

	t.Setenv("RACHEL_PLAYERS", "12")
	_, err = Load(missingFile(t))
	assert.ErrorContains(t, err, "between 2 and 8")

	t.Setenv("RACHEL_PLAYERS", "4")
	t.Setenv("RACHEL_TURN_TIMER_SEC", "-1")
	_, err = Load(missingFile(t))
	assert.ErrorContains(t, err, "must not be negative")
}
