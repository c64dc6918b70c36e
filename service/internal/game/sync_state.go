// internal/game/sync_state.go
package game

import (
	"github.com/google/uuid"
	engine "github.com/jason-s-yu/rachel/engine"
)

// ObfCard is a card revealed to a client.
type ObfCard struct {
	Rank  string `json:"rank"`
	Suit  string `json:"suit"`
	Value int    `json:"value"`
	Idx   *int   `json:"idx,omitempty"` // position in hand, for hand cards
}

func obfCard(c engine.Card) ObfCard {
	return ObfCard{
		Rank:  engine.RankName(c.Rank()),
		Suit:  engine.SuitName(c.Suit()),
		Value: c.Value(),
	}
}

// ObfPlayerState is one player's state as seen by a specific observer.
type ObfPlayerState struct {
	PlayerID      uuid.UUID `json:"playerId"`
	Name          string    `json:"name"`
	IsAI          bool      `json:"isAi"`
	HandSize      int       `json:"handSize"`
	Connected     bool      `json:"connected"`
	IsCurrentTurn bool      `json:"isCurrentTurn"`
	Finished      bool      `json:"finished"`
	// RevealedHand is populated only for the observer's own seat.
	RevealedHand []ObfCard `json:"revealedHand,omitempty"`
}

// ObfGameState is the game as seen by a specific observer. Every field except
// the observer's own hand is public knowledge.
type ObfGameState struct {
	GameID            uuid.UUID        `json:"gameId"`
	Status            string           `json:"status"`
	CurrentPlayerID   uuid.UUID        `json:"currentPlayerId"`
	TurnNumber        int              `json:"turnNumber"`
	Direction         string           `json:"direction"`
	DrawPileSize      int              `json:"drawPileSize"`
	DiscardSize       int              `json:"discardSize"`
	DiscardTop        *ObfCard         `json:"discardTop,omitempty"`
	PendingPickup     int              `json:"pendingPickup"`
	PendingPickupKind string           `json:"pendingPickupKind"`
	PendingSkips      int              `json:"pendingSkips"`
	Nomination        string           `json:"nomination"`
	Players           []ObfPlayerState `json:"players"`
	Winners           []uuid.UUID      `json:"winners"`
}

// GetCurrentObfuscatedGameState builds the state visible to forUser; pass
// uuid.Nil for a spectator view with no hand revealed.
// This function assumes the game lock is HELD by the caller.
func (g *RachelGame) GetCurrentObfuscatedGameState(forUser uuid.UUID) ObfGameState {
	e := g.Engine
	obf := ObfGameState{
		GameID:            g.ID,
		Status:            e.Status.String(),
		TurnNumber:        e.TurnNumber,
		Direction:         e.Direction.String(),
		DrawPileSize:      len(e.Deck),
		DiscardSize:       len(e.Discard),
		PendingPickup:     e.PendingPickup,
		PendingPickupKind: e.PendingPickupKind.String(),
		PendingSkips:      e.PendingSkips,
		Nomination:        e.Nomination.String(),
		Winners:           make([]uuid.UUID, 0, len(e.Winners)),
	}
	acting := e.ActingPlayer()
	obf.CurrentPlayerID = userID(acting)
	if top := e.CurrentCard(); top != engine.EmptyCard {
		c := obfCard(top)
		obf.DiscardTop = &c
	}
	for _, id := range e.Winners {
		obf.Winners = append(obf.Winners, userID(id))
	}

	obf.Players = make([]ObfPlayerState, len(e.Players))
	for i := range e.Players {
		p := &e.Players[i]
		uid := userID(p.ID)
		ps := ObfPlayerState{
			PlayerID:      uid,
			Name:          p.Name,
			IsAI:          p.IsAI,
			HandSize:      len(p.Hand),
			Connected:     p.Connected,
			IsCurrentTurn: acting != "" && p.ID == acting,
			Finished:      e.HasWon(p.ID),
		}
		if forUser != uuid.Nil && uid == forUser {
			ps.RevealedHand = make([]ObfCard, len(p.Hand))
			for j, c := range p.Hand {
				idx := j
				ps.RevealedHand[j] = obfCard(c)
				ps.RevealedHand[j].Idx = &idx
			}
		}
		obf.Players[i] = ps
	}
	return obf
}
