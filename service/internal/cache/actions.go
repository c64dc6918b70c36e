// internal/cache/actions.go
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// GameActionsQueue is the Redis list an external historian drains.
const GameActionsQueue = "rachel:game_actions"

// ErrNoClient is returned when Redis has not been connected.
var ErrNoClient = errors.New("redis client not initialised")

// GameActionRecord is one entry of a game's action log.
type GameActionRecord struct {
	GameID        uuid.UUID              `json:"gameId"`
	ActionIndex   int                    `json:"actionIndex"`
	ActorUserID   uuid.UUID              `json:"actorUserId"` // uuid.Nil for game events
	ActionType    string                 `json:"actionType"`
	ActionPayload map[string]interface{} `json:"actionPayload"`
	Timestamp     int64                  `json:"timestamp"` // unix millis
}

// PublishGameAction appends rec to the action queue.
func PublishGameAction(ctx context.Context, rec GameActionRecord) error {
	if Rdb == nil {
		return ErrNoClient
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal action %d: %w", rec.ActionIndex, err)
	}
	if err := Rdb.RPush(ctx, GameActionsQueue, data).Err(); err != nil {
		return fmt.Errorf("rpush %s: %w", GameActionsQueue, err)
	}
	return nil
}

// GameActions reads back the queued records for one game, oldest first.
// Used by tooling that replays a game from the log.
func GameActions(ctx context.Context, gameID uuid.UUID) ([]GameActionRecord, error) {
	if Rdb == nil {
		return nil, ErrNoClient
	}
	raw, err := Rdb.LRange(ctx, GameActionsQueue, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("lrange %s: %w", GameActionsQueue, err)
	}
	var out []GameActionRecord
	for _, item := range raw {
		var rec GameActionRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			return nil, fmt.Errorf("decode action record: %w", err)
		}
		if rec.GameID == gameID {
			out = append(out, rec)
		}
	}
	return out, nil
}
