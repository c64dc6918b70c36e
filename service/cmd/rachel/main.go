// Command rachel runs headless games between computer players and logs the
// results. Redis and Postgres are used when configured. With
// RACHEL_REPORT_GAME set it instead logs the stored record of that game.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/rachel/engine"
	"github.com/jason-s-yu/rachel/engine/agent"
	"github.com/jason-s-yu/rachel/service/internal/cache"
	"github.com/jason-s-yu/rachel/service/internal/config"
	"github.com/jason-s-yu/rachel/service/internal/database"
	"github.com/jason-s-yu/rachel/service/internal/game"
	"github.com/jason-s-yu/rachel/service/internal/logging"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.RedisAddr != "" {
		if err := cache.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
			return err
		}
		defer cache.Close()
		log.WithField("addr", cfg.RedisAddr).Info("publishing actions to redis")
	}
	if cfg.DatabaseURL != "" {
		if err := database.ConnectDB(ctx, cfg.DatabaseURL); err != nil {
			return err
		}
		defer database.Close()
		log.Info("storing final game states in postgres")
	}

	if cfg.ReportGame != "" {
		return reportGame(ctx, log, cfg.ReportGame)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.WithFields(logrus.Fields{
		"games":   cfg.Games,
		"players": cfg.Players,
		"seed":    seed,
	}).Info("starting headless games")

	eg, ctx := errgroup.WithContext(ctx)
	for i := 0; i < cfg.Games; i++ {
		gameSeed := seed + uint64(i)
		eg.Go(func() error {
			return playGame(ctx, cfg, log, gameSeed)
		})
	}
	return eg.Wait()
}

// playGame runs one game between computer players until it ends or ctx is
// cancelled.
func playGame(ctx context.Context, cfg *config.Config, log *logrus.Logger, seed uint64) error {
	rules := engine.DefaultHouseRules()
	rules.CardsPerPlayer = uint8(cfg.CardsPerPlayer)

	g := game.NewRachelGame(game.Options{
		Seed:         seed,
		Rules:        rules,
		TurnDuration: cfg.TurnTimer,
		AIThink:      cfg.AIThink,
		Logger:       log,
	})
	defer g.Stop()

	ended := make(chan game.Summary, 1)
	g.OnGameEnd = func(_ uuid.UUID, s game.Summary) { ended <- s }

	r := agent.NewRand(seed)
	for i := 0; i < cfg.Players; i++ {
		p := agent.RandomPersonality(r)
		name := fmt.Sprintf("%s-%d", p.Type, i+1)
		if err := g.AddAIPlayer(uuid.New(), name, p); err != nil {
			return fmt.Errorf("game %s: seat %s: %w", g.ID, name, err)
		}
	}
	if err := g.Start(); err != nil {
		return fmt.Errorf("game %s: start: %w", g.ID, err)
	}

	select {
	case s := <-ended:
		fields := logrus.Fields{"game": s.GameID, "turns": s.Turns, "terminated": s.Terminated}
		for _, p := range s.Players {
			fields[fmt.Sprintf("place%d", p.Place)] = p.Name
		}
		log.WithFields(fields).Info("game finished")
		return nil
	case <-ctx.Done():
		log.WithField("game", g.ID).Warn("game interrupted")
		return ctx.Err()
	}
}
