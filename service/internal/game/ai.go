// internal/game/ai.go
package game

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	engine "github.com/jason-s-yu/rachel/engine"
	"github.com/jason-s-yu/rachel/engine/agent"
	"github.com/sirupsen/logrus"
)

// scheduleNextLocked arms whatever drives the next turn: the acting player's
// agent, or the turn timer for a human. Assumes lock is held by caller.
func (g *RachelGame) scheduleNextLocked() {
	if g.stopped || g.Engine.Status != engine.StatusPlaying {
		return
	}
	acting := userID(g.Engine.ActingPlayer())
	g.aiMu.Lock()
	a := g.agents[acting]
	g.aiMu.Unlock()
	if a == nil {
		g.scheduleTurnTimerLocked(acting)
		return
	}
	go g.decide(acting, a, g.Engine.Clone(), g.version)
}

// decide runs the agent on a snapshot, off the game lock, then arms a timer
// that submits the decision after its thinking time. A decision computed for
// an older version is dropped; the change that superseded it has already
// scheduled the next one.
func (g *RachelGame) decide(playerID uuid.UUID, a *agent.Agent, snap *engine.Game, version uint64) {
	id := engineID(playerID)
	g.aiMu.Lock()
	d, err := a.Decide(snap, id)
	g.aiMu.Unlock()
	if err != nil {
		g.log.WithError(err).WithField("player", playerID).Error("agent failed to decide")
		act, ok := fallbackAction(snap, id)
		if !ok {
			return
		}
		d = agent.Decision{Action: act}
	}

	g.Mu.Lock()
	defer g.Mu.Unlock()
	if g.stopped || g.version != version {
		return
	}
	if g.aiTimer != nil {
		g.aiTimer.Stop()
	}
	g.log.WithFields(logrus.Fields{
		"player":     playerID,
		"action":     d.Action.String(),
		"score":      d.Score,
		"candidates": d.Candidates,
		"think":      d.Think,
	}).Debug("agent decided")
	g.aiTimer = time.AfterFunc(g.aiDelay(d.Think), func() {
		g.submitDecision(playerID, d.Action, version)
	})
}

// aiDelay scales the agent's advisory thinking time by AIThink.
func (g *RachelGame) aiDelay(think time.Duration) time.Duration {
	if g.AIThink <= 0 {
		return 0
	}
	return time.Duration(float64(think) * float64(g.AIThink) / float64(agent.DefaultBaseThink))
}

// submitDecision applies an agent's action. If the engine rejects it the
// agent has a bug: that is logged and the turn is resolved with the fallback
// action instead.
func (g *RachelGame) submitDecision(playerID uuid.UUID, action engine.Action, version uint64) {
	err := g.submit(g.ctx, request{playerID: playerID, action: action, version: version})
	if ignorable(err) {
		return
	}
	g.log.WithError(err).WithFields(logrus.Fields{
		"player": playerID,
		"action": action.String(),
	}).Error("agent chose an illegal action")

	act, ok := fallbackAction(g.Snapshot(), engineID(playerID))
	if !ok {
		return
	}
	err = g.submit(g.ctx, request{playerID: playerID, action: act, version: version})
	if !ignorable(err) {
		g.log.WithError(err).WithField("player", playerID).Error("fallback action rejected")
	}
}

// ignorable reports errors a background submission can drop silently.
func ignorable(err error) bool {
	return err == nil ||
		errors.Is(err, errStale) ||
		errors.Is(err, ErrGameStopped) ||
		errors.Is(err, context.Canceled)
}

// fallbackAction picks a legal action without any judgement: nominate the
// most-held suit, else draw, else the first legal play.
func fallbackAction(g *engine.Game, id engine.PlayerID) (engine.Action, bool) {
	if g.ActingPlayer() != id {
		return engine.Action{}, false
	}
	if g.Nomination == engine.NominationPending {
		return engine.NominateAction(agent.ChooseSuit(g.Player(id).Hand)), true
	}
	if g.CanDraw(id) {
		return engine.DrawAction(), true
	}
	if plays := g.ValidPlays(id); len(plays) > 0 {
		return plays[0].Action(), true
	}
	return engine.Action{}, false
}
