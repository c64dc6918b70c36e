// internal/game/timer.go
package game

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// scheduleTurnTimerLocked starts the turn timer for a human player, if
// enabled. Assumes lock is held by caller.
func (g *RachelGame) scheduleTurnTimerLocked(playerID uuid.UUID) {
	if g.TurnDuration <= 0 {
		return
	}
	if g.turnTimer != nil {
		g.turnTimer.Stop()
	}
	version := g.version
	g.turnTimer = time.AfterFunc(g.TurnDuration, func() {
		g.handleTimeout(playerID, version)
	})
}

// handleTimeout resolves a turn the player let run out. It is a no-op if the
// player acted in the meantime.
func (g *RachelGame) handleTimeout(playerID uuid.UUID, version uint64) {
	snap := g.Snapshot()
	act, ok := fallbackAction(snap, engineID(playerID))
	if !ok {
		return
	}
	g.log.WithFields(logrus.Fields{
		"player": playerID,
		"action": act.String(),
	}).Info("turn timer expired")

	err := g.submit(g.ctx, request{
		playerID: playerID,
		action:   act,
		version:  version,
		cause:    EventPlayerTimeout,
	})
	if !ignorable(err) {
		g.log.WithError(err).WithField("player", playerID).Error("timeout action rejected")
	}
}

// stopTimersLocked stops the turn timer and any pending AI submission.
// Assumes lock is held by caller.
func (g *RachelGame) stopTimersLocked() {
	if g.turnTimer != nil {
		g.turnTimer.Stop()
		g.turnTimer = nil
	}
	if g.aiTimer != nil {
		g.aiTimer.Stop()
		g.aiTimer = nil
	}
}
