package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jason-s-yu/rachel/service/internal/cache"
	"github.com/jason-s-yu/rachel/service/internal/database"
	"github.com/jason-s-yu/rachel/service/internal/game"
	"github.com/sirupsen/logrus"
)

// errNoStore is returned when a report is asked for without Redis or Postgres.
var errNoStore = errors.New("RACHEL_REPORT_GAME needs REDIS_ADDR or DATABASE_URL")

// reportGame logs the stored record of one game: its final summary from
// Postgres and its action log from Redis, whichever are connected.
func reportGame(ctx context.Context, log logrus.FieldLogger, rawID string) error {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return fmt.Errorf("RACHEL_REPORT_GAME: %w", err)
	}
	if database.DB == nil && cache.Rdb == nil {
		return errNoStore
	}
	log = log.WithField("game", id)

	if database.DB != nil {
		raw, err := database.LoadFinalGameState(ctx, id)
		switch {
		case errors.Is(err, database.ErrGameNotFound):
			log.Warn("no final state stored")
		case err != nil:
			return err
		default:
			if err := logSummary(log, raw); err != nil {
				return err
			}
		}
	}

	if cache.Rdb != nil {
		recs, err := cache.GameActions(ctx, id)
		if err != nil {
			return err
		}
		logActions(log, recs)
	}
	return nil
}

func logSummary(log logrus.FieldLogger, raw json.RawMessage) error {
	var s game.Summary
	if err := json.Unmarshal(raw, &s); err != nil {
		return fmt.Errorf("decode final state: %w", err)
	}
	log.WithFields(logrus.Fields{
		"turns":      s.Turns,
		"terminated": s.Terminated,
		"duration":   s.EndedAt.Sub(s.StartedAt),
	}).Info("final state")
	for _, p := range s.Players {
		log.WithFields(logrus.Fields{
			"place":       p.Place,
			"name":        p.Name,
			"personality": p.Personality,
			"finished":    p.Finished,
			"cardsLeft":   p.CardsLeft,
			"handValue":   p.HandValue,
		}).Info("standing")
	}
	return nil
}

func logActions(log logrus.FieldLogger, recs []cache.GameActionRecord) {
	log.WithField("count", len(recs)).Info("action log")
	for _, rec := range recs {
		log.WithFields(logrus.Fields{
			"index":   rec.ActionIndex,
			"type":    rec.ActionType,
			"actor":   rec.ActorUserID,
			"payload": rec.ActionPayload,
		}).Debug("action")
	}
}
