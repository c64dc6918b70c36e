// internal/game/actions.go
package game

import (
	"context"

	"github.com/google/uuid"
	engine "github.com/jason-s-yu/rachel/engine"
	"github.com/sirupsen/logrus"
)

// requestKind selects what a queued request does.
type requestKind uint8

const (
	reqAction requestKind = iota
	reqStart
	reqTerminate
	reqConnect
	reqDisconnect
)

// request is one queued mutation. Every change that produces events goes
// through the request loop, so callbacks see events in version order.
type request struct {
	kind     requestKind
	playerID uuid.UUID
	action   engine.Action
	version  uint64        // 0 applies to whatever state is current
	cause    GameEventType // EventPlayerTimeout when the turn timer acted
	reply    chan error
}

// SubmitAction queues an action for playerID and waits until it has been
// applied or rejected. Rule violations are returned as the engine's
// *engine.RuleError, unwrapped.
//
// Requests are applied in arrival order by the game's request loop, which
// delivers the resulting events before replying. Broadcast callbacks must
// therefore not call SubmitAction or Stop synchronously.
func (g *RachelGame) SubmitAction(ctx context.Context, playerID uuid.UUID, action engine.Action) error {
	return g.submit(ctx, request{kind: reqAction, playerID: playerID, action: action})
}

// Terminate ends the game early. Winners recorded so far keep their places
// and OnGameEnd receives the summary.
func (g *RachelGame) Terminate(ctx context.Context) error {
	return g.submit(ctx, request{kind: reqTerminate})
}

func (g *RachelGame) submit(ctx context.Context, req request) error {
	req.reply = make(chan error, 1)
	select {
	case g.requests <- req:
	case <-ctx.Done():
		return ctx.Err()
	case <-g.ctx.Done():
		return ErrGameStopped
	}
	select {
	case err := <-req.reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run is the request loop. It exits when the session context is cancelled.
func (g *RachelGame) run() {
	defer close(g.done)
	for {
		select {
		case <-g.ctx.Done():
			return
		case req := <-g.requests:
			out, err := g.apply(req)
			g.flush(out)
			req.reply <- err
		}
	}
}

// apply commits one request under the write lock and returns the events it
// produced.
func (g *RachelGame) apply(req request) (outbox, error) {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	var out outbox
	if g.stopped {
		return out, ErrGameStopped
	}
	if req.version != 0 && req.version != g.version {
		return out, errStale
	}
	switch req.kind {
	case reqStart:
		return out, g.startLocked(&out)
	case reqConnect, reqDisconnect:
		return out, g.setConnectedLocked(&out, req.playerID, req.kind == reqConnect)
	case reqTerminate:
		if g.Engine.Status != engine.StatusPlaying {
			return out, engine.ErrGameNotInProgress
		}
		g.Engine.Terminate()
		g.version++
		g.log.Info("game terminated")
		g.finishLocked(&out, true)
		return out, nil
	}

	id := engineID(req.playerID)
	var played []engine.Card
	handBefore := 0
	if p := g.Engine.Player(id); p != nil {
		handBefore = len(p.Hand)
		if req.action.Kind == engine.ActionPlay {
			for _, i := range req.action.Indices {
				if i >= 0 && i < len(p.Hand) {
					played = append(played, p.Hand[i])
				}
			}
		}
	}

	if err := g.Engine.Apply(id, req.action); err != nil {
		if engine.KindOf(err) == engine.KindInternalConsistency {
			// The rules cannot continue from here.
			g.log.WithError(err).WithField("player", req.playerID).Error("internal consistency error, terminating game")
			g.Engine.Terminate()
			g.version++
			g.finishLocked(&out, true)
		}
		return out, err
	}
	g.version++
	g.stopTimersLocked()

	ev := g.actionEventLocked(req, played, handBefore)
	if req.cause == EventPlayerTimeout {
		out.public(g.eventLocked(EventPlayerTimeout, req.playerID))
	}
	out.public(ev)
	g.logAction(req.playerID, string(ev.Type), ev.Payload)
	g.log.WithFields(logrus.Fields{
		"player":  req.playerID,
		"action":  req.action.String(),
		"turn":    g.Engine.TurnNumber,
		"version": g.version,
	}).Debug("action applied")

	if g.Engine.IsTerminal() {
		g.finishLocked(&out, false)
		return out, nil
	}
	out.public(g.eventLocked(EventGamePlayerTurn, userID(g.Engine.ActingPlayer())))
	g.syncAllLocked(&out)
	g.scheduleNextLocked()
	return out, nil
}

// actionEventLocked describes a committed action. Assumes lock is held by caller.
func (g *RachelGame) actionEventLocked(req request, played []engine.Card, handBefore int) GameEvent {
	payload := map[string]interface{}{
		"action":        req.action.String(),
		"pendingPickup": g.Engine.PendingPickup,
		"pendingSkips":  g.Engine.PendingSkips,
		"direction":     g.Engine.Direction.String(),
	}
	if req.cause == EventPlayerTimeout {
		payload["timeout"] = true
	}

	var ev GameEvent
	switch req.action.Kind {
	case engine.ActionPlay:
		ev = g.eventLocked(EventPlayerPlay, req.playerID)
		ev.Cards = make([]ObfCard, len(played))
		names := make([]string, len(played))
		for i, c := range played {
			ev.Cards[i] = obfCard(c)
			names[i] = c.String()
		}
		payload["cards"] = names
		if g.Engine.HasWon(engineID(req.playerID)) {
			payload["finished"] = true
		}
	case engine.ActionDraw:
		ev = g.eventLocked(EventPlayerDraw, req.playerID)
		if p := g.Engine.Player(engineID(req.playerID)); p != nil {
			payload["count"] = len(p.Hand) - handBefore
		}
	case engine.ActionNominate:
		ev = g.eventLocked(EventPlayerNominate, req.playerID)
		ev.Suit = engine.SuitName(req.action.Suit)
		payload["suit"] = ev.Suit
	}
	ev.Payload = payload
	return ev
}
