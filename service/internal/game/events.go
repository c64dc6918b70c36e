// internal/game/events.go
package game

import (
	"github.com/google/uuid"
	engine "github.com/jason-s-yu/rachel/engine"
)

// GameEventType names an event sent to clients.
type GameEventType string

const (
	EventGameStart        GameEventType = "game_start"
	EventPlayerPlay       GameEventType = "player_play"     // Public: cards played, revealed.
	EventPlayerDraw       GameEventType = "player_draw"     // Public: how many cards were drawn.
	EventPlayerNominate   GameEventType = "player_nominate" // Public: suit nominated after an ace.
	EventPlayerTimeout    GameEventType = "player_timeout"  // Public: the turn timer acted for a player.
	EventPlayerDisconnect GameEventType = "player_disconnect"
	EventPlayerReconnect  GameEventType = "player_reconnect"
	EventGamePlayerTurn   GameEventType = "game_player_turn"   // Public: whose turn it is now.
	EventPrivateSyncState GameEventType = "private_sync_state" // Private: state including the player's own hand.
	EventGameEnd          GameEventType = "game_end"           // Public: terminal summary.
)

// EventUser identifies a user within a GameEvent.
type EventUser struct {
	ID uuid.UUID `json:"id"`
}

// GameEvent is broadcast after every committed change. Public events carry
// the spectator view; private sync events carry the recipient's view.
type GameEvent struct {
	Type    GameEventType          `json:"type"`
	GameID  uuid.UUID              `json:"gameId"`
	Version uint64                 `json:"version"`
	User    *EventUser             `json:"user,omitempty"`
	Cards   []ObfCard              `json:"cards,omitempty"`
	Suit    string                 `json:"suit,omitempty"`
	Payload map[string]interface{} `json:"payload,omitempty"`
	State   *ObfGameState          `json:"state,omitempty"`
	Summary *Summary               `json:"summary,omitempty"`

	// Snapshot is the whole committed state, for in-process observers.
	Snapshot *engine.Game `json:"-"`
}

type privateEvent struct {
	to uuid.UUID
	ev GameEvent
}

// outbox collects events built under the lock so they can be delivered after
// it is released.
type outbox struct {
	events  []GameEvent
	private []privateEvent
	summary *Summary
}

func (o *outbox) public(ev GameEvent) { o.events = append(o.events, ev) }

func (o *outbox) to(playerID uuid.UUID, ev GameEvent) {
	o.private = append(o.private, privateEvent{to: playerID, ev: ev})
}

// eventLocked builds a public event carrying the spectator view and a full
// snapshot. Assumes lock is held by caller.
func (g *RachelGame) eventLocked(t GameEventType, user uuid.UUID) GameEvent {
	state := g.GetCurrentObfuscatedGameState(uuid.Nil)
	ev := GameEvent{
		Type:     t,
		GameID:   g.ID,
		Version:  g.version,
		State:    &state,
		Snapshot: g.Engine.Clone(),
	}
	if user != uuid.Nil {
		ev.User = &EventUser{ID: user}
	}
	return ev
}

// syncPlayerLocked queues a private state sync for one connected human.
// Assumes lock is held by caller.
func (g *RachelGame) syncPlayerLocked(out *outbox, playerID uuid.UUID) {
	p := g.Engine.Player(engineID(playerID))
	if p == nil || p.IsAI || !p.Connected {
		return
	}
	state := g.GetCurrentObfuscatedGameState(playerID)
	out.to(playerID, GameEvent{
		Type:    EventPrivateSyncState,
		GameID:  g.ID,
		Version: g.version,
		User:    &EventUser{ID: playerID},
		State:   &state,
	})
}

// syncAllLocked queues a private state sync for every connected human.
// Assumes lock is held by caller.
func (g *RachelGame) syncAllLocked(out *outbox) {
	for i := range g.Engine.Players {
		g.syncPlayerLocked(out, userID(g.Engine.Players[i].ID))
	}
}

// flush delivers queued events in order, then the end-of-game callback.
// Must be called without the lock.
func (g *RachelGame) flush(out outbox) {
	for _, ev := range out.events {
		if g.BroadcastFn != nil {
			g.BroadcastFn(ev)
		}
	}
	if g.BroadcastToPlayerFn != nil {
		for _, pe := range out.private {
			g.BroadcastToPlayerFn(pe.to, pe.ev)
		}
	}
	if out.summary != nil && g.OnGameEnd != nil {
		g.OnGameEnd(g.ID, *out.summary)
	}
}
