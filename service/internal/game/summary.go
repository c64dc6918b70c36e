// internal/game/summary.go
package game

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/rachel/service/internal/cache"
	"github.com/jason-s-yu/rachel/service/internal/database"
	"github.com/sirupsen/logrus"
)

// PlayerSummary is one player's line in the terminal summary.
type PlayerSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	IsAI        bool      `json:"isAi"`
	Personality string    `json:"personality,omitempty"`
	Place       int       `json:"place"`
	Finished    bool      `json:"finished"`
	CardsLeft   int       `json:"cardsLeft"`
	HandValue   int       `json:"handValue"`
	CardsPlayed int       `json:"cardsPlayed"`
	CardsDrawn  int       `json:"cardsDrawn"`
	TurnsTaken  int       `json:"turnsTaken"`
}

// Summary is the terminal record of a game, handed to OnGameEnd and the
// database.
type Summary struct {
	GameID     uuid.UUID       `json:"gameId"`
	Players    []PlayerSummary `json:"players"` // in final standing order
	Winners    []uuid.UUID     `json:"winners"` // in finishing order
	Turns      int             `json:"turns"`
	Terminated bool            `json:"terminated"` // ended early rather than played out
	StartedAt  time.Time       `json:"startedAt"`
	EndedAt    time.Time       `json:"endedAt"`
}

// buildSummaryLocked assembles the summary from the engine state.
// Assumes lock is held by caller.
func (g *RachelGame) buildSummaryLocked(terminated bool) Summary {
	e := g.Engine
	s := Summary{
		GameID:     g.ID,
		Winners:    make([]uuid.UUID, 0, len(e.Winners)),
		Turns:      e.TurnNumber,
		Terminated: terminated,
		StartedAt:  g.startedAt,
		EndedAt:    time.Now(),
	}
	for _, id := range e.Winners {
		s.Winners = append(s.Winners, userID(id))
	}

	g.aiMu.Lock()
	defer g.aiMu.Unlock()
	for _, st := range e.Standings() {
		p := e.Player(st.ID)
		ps := PlayerSummary{
			ID:          userID(st.ID),
			Name:        p.Name,
			IsAI:        p.IsAI,
			Place:       st.Place,
			Finished:    st.Finished,
			CardsLeft:   st.CardsLeft,
			HandValue:   st.HandValue,
			CardsPlayed: p.CardsPlayed,
			CardsDrawn:  p.CardsDrawn,
			TurnsTaken:  p.TurnsTaken,
		}
		if a := g.agents[ps.ID]; a != nil {
			ps.Personality = a.Personality.Type.String()
		}
		s.Players = append(s.Players, ps)
	}
	return s
}

// finishLocked wraps up a game that has reached its terminal state: timers
// stop, the summary is logged, persisted and queued for OnGameEnd.
// Assumes lock is held by caller.
func (g *RachelGame) finishLocked(out *outbox, terminated bool) {
	if g.ended {
		return
	}
	g.ended = true
	g.stopTimersLocked()

	summary := g.buildSummaryLocked(terminated)
	winners := make([]string, len(summary.Winners))
	for i, w := range summary.Winners {
		winners[i] = w.String()
	}
	g.logAction(uuid.Nil, string(EventGameEnd), map[string]interface{}{
		"winners":    winners,
		"turns":      summary.Turns,
		"terminated": terminated,
	})
	g.log.WithFields(logrus.Fields{
		"winners":    winners,
		"turns":      summary.Turns,
		"terminated": terminated,
	}).Info("game ended")

	g.persistFinalGameState(summary, winners)

	ev := g.eventLocked(EventGameEnd, uuid.Nil)
	ev.Summary = &summary
	out.public(ev)
	g.syncAllLocked(out)
	out.summary = &summary
}

// persistFinalGameState stores the summary when a database is configured.
func (g *RachelGame) persistFinalGameState(summary Summary, winners []string) {
	if database.DB == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := database.StoreFinalGameStateInDB(ctx, summary.GameID, winners, summary.Turns, summary); err != nil {
			g.log.WithError(err).Error("failed to persist final game state")
		}
	}()
}

// logAction publishes an action record to the Redis action queue, if
// connected. Increments the internal action index for ordering.
// Assumes lock is held by caller.
func (g *RachelGame) logAction(actorID uuid.UUID, actionType string, payload map[string]interface{}) {
	g.actionIndex++
	if payload == nil {
		payload = make(map[string]interface{})
	}
	if cache.Rdb == nil {
		return
	}
	record := cache.GameActionRecord{
		GameID:        g.ID,
		ActionIndex:   g.actionIndex,
		ActorUserID:   actorID,
		ActionType:    actionType,
		ActionPayload: payload,
		Timestamp:     time.Now().UnixMilli(),
	}
	go func(rec cache.GameActionRecord) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := cache.PublishGameAction(ctx, rec); err != nil {
			g.log.WithError(err).WithFields(logrus.Fields{
				"index": rec.ActionIndex,
				"type":  rec.ActionType,
			}).Error("failed publishing action")
		}
	}(record)
}
