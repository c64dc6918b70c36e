// internal/database/games.go
package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrNoDB is returned when the pool has not been connected.
var ErrNoDB = errors.New("database not initialised")

// ErrGameNotFound is returned when no final state is stored for a game.
var ErrGameNotFound = errors.New("game not found")

// StoreFinalGameStateInDB upserts the terminal summary of a finished game.
// snapshot is stored as JSONB; winners and turns are copied into columns so
// they can be queried without decoding it.
func StoreFinalGameStateInDB(ctx context.Context, gameID uuid.UUID, winners []string, turns int, snapshot interface{}) error {
	if DB == nil {
		return ErrNoDB
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal final state for %s: %w", gameID, err)
	}
	if winners == nil {
		winners = []string{}
	}
	const q = `
INSERT INTO rachel_games (id, final_state, winners, turns)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE
SET final_state = EXCLUDED.final_state,
    winners     = EXCLUDED.winners,
    turns       = EXCLUDED.turns,
    finished_at = now()`
	if _, err := DB.Exec(ctx, q, gameID, data, winners, turns); err != nil {
		return fmt.Errorf("store final state for %s: %w", gameID, err)
	}
	return nil
}

// LoadFinalGameState returns the stored JSON summary of a game.
func LoadFinalGameState(ctx context.Context, gameID uuid.UUID) (json.RawMessage, error) {
	if DB == nil {
		return nil, ErrNoDB
	}
	var data []byte
	err := DB.QueryRow(ctx, `SELECT final_state FROM rachel_games WHERE id = $1`, gameID).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load final state for %s: %w", gameID, err)
	}
	return data, nil
}
