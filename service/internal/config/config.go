// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the service settings, read from the environment.
type Config struct {
	LogLevel string `env:"RACHEL_LOG_LEVEL" envDefault:"info"`

	TurnTimerSec int `env:"RACHEL_TURN_TIMER_SEC" envDefault:"0"`
	AIThinkMS    int `env:"RACHEL_AI_THINK_MS" envDefault:"1200"`

	TurnTimer time.Duration // 0 disables the human turn timer
	AIThink   time.Duration // 1200ms paces computer players at face value, 0 makes them instant

	RedisAddr     string `env:"REDIS_ADDR"` // empty disables the action log
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	DatabaseURL   string `env:"DATABASE_URL"` // empty disables final-state persistence

	// Headless runner.
	Games          int    `env:"RACHEL_GAMES" envDefault:"4"`
	Players        int    `env:"RACHEL_PLAYERS" envDefault:"4"`
	CardsPerPlayer int    `env:"RACHEL_CARDS_PER_PLAYER" envDefault:"7"`
	Seed           uint64 `env:"RACHEL_SEED" envDefault:"0"` // 0 picks a time-based seed

	// ReportGame, when set, prints the stored record of that game instead of
	// playing new ones.
	ReportGame string `env:"RACHEL_REPORT_GAME"`
}

// Load reads an optional .env file (or the given files), then the
// environment. A missing .env file is not an error.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	cfg.TurnTimer = time.Duration(cfg.TurnTimerSec) * time.Second
	cfg.AIThink = time.Duration(cfg.AIThinkMS) * time.Millisecond

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges the game engine cannot accept.
func (c *Config) Validate() error {
	switch {
	case c.TurnTimer < 0:
		return fmt.Errorf("RACHEL_TURN_TIMER_SEC must not be negative")
	case c.AIThink < 0:
		return fmt.Errorf("RACHEL_AI_THINK_MS must not be negative")
	case c.Games < 1:
		return fmt.Errorf("RACHEL_GAMES must be at least 1, got %d", c.Games)
	case c.Players < 2 || c.Players > 8:
		return fmt.Errorf("RACHEL_PLAYERS must be between 2 and 8, got %d", c.Players)
	case c.CardsPerPlayer < 1 || c.CardsPerPlayer > 20:
		return fmt.Errorf("RACHEL_CARDS_PER_PLAYER must be between 1 and 20, got %d", c.CardsPerPlayer)
	}
	return nil
}
