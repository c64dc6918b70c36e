// internal/game/game.go
package game

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	engine "github.com/jason-s-yu/rachel/engine"
	"github.com/jason-s-yu/rachel/engine/agent"
	"github.com/sirupsen/logrus"
)

// ErrGameStopped is returned for requests submitted after Stop.
var ErrGameStopped = errors.New("game stopped")

// errStale rejects a timer or AI submission whose state version has moved on.
var errStale = errors.New("stale decision")

// OnGameEndFunc is called once when a game reaches its terminal state.
type OnGameEndFunc func(gameID uuid.UUID, summary Summary)

// Options configures a new RachelGame.
type Options struct {
	Seed  uint64 // 0 picks a random seed
	Rules engine.HouseRules

	// TurnDuration bounds a human's turn; 0 disables the timer.
	TurnDuration time.Duration
	// AIThink scales the agents' advisory thinking time; agent.DefaultBaseThink
	// plays it at face value and 0 makes computer players act immediately.
	AIThink time.Duration

	Logger logrus.FieldLogger
}

// RachelGame owns one engine.Game and serializes every mutation through a
// single request loop.
type RachelGame struct {
	ID     uuid.UUID
	Engine *engine.Game
	Mu     sync.RWMutex // guards Engine and the fields below

	TurnDuration time.Duration
	AIThink      time.Duration

	version     uint64 // bumped by every committed mutation
	actionIndex int    // sequential index for the action log
	startedAt   time.Time
	ended       bool
	stopped     bool
	turnTimer   *time.Timer
	aiTimer     *time.Timer

	agents map[uuid.UUID]*agent.Agent
	aiMu   sync.Mutex // serializes agent randomness

	// Communication callbacks.
	BroadcastFn         func(ev GameEvent)
	BroadcastToPlayerFn func(playerID uuid.UUID, ev GameEvent)
	OnGameEnd           OnGameEndFunc

	requests chan request
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once

	log *logrus.Entry
}

// NewRachelGame creates a waiting game and starts its request loop.
// Callers must eventually call Stop.
func NewRachelGame(opts Options) *RachelGame {
	id := uuid.New()
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rules := opts.Rules
	if rules == (engine.HouseRules{}) {
		rules = engine.DefaultHouseRules()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	ctx, cancel := context.WithCancel(context.Background())
	g := &RachelGame{
		ID:           id,
		Engine:       engine.NewGame(seed, rules),
		TurnDuration: opts.TurnDuration,
		AIThink:      opts.AIThink,
		agents:       make(map[uuid.UUID]*agent.Agent),
		requests:     make(chan request),
		ctx:          ctx,
		cancel:       cancel,
		done:         make(chan struct{}),
		log:          logger.WithField("game", id),
	}
	go g.run()
	return g
}

// engineID maps a service player id onto the engine's opaque id.
func engineID(id uuid.UUID) engine.PlayerID { return engine.PlayerID(id.String()) }

// userID is the inverse of engineID. Unknown ids map to uuid.Nil.
func userID(id engine.PlayerID) uuid.UUID {
	u, err := uuid.Parse(string(id))
	if err != nil {
		return uuid.Nil
	}
	return u
}

// AddPlayer seats a human player. Only possible before Start.
func (g *RachelGame) AddPlayer(id uuid.UUID, name string) error {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	if err := g.Engine.AddPlayer(engineID(id), name, false); err != nil {
		return err
	}
	g.version++
	g.logAction(id, "player_join", map[string]interface{}{"name": name})
	return nil
}

// AddAIPlayer seats a computer player driven by personality p. The agent's
// randomness is seeded from the game's RNG so a seeded game replays exactly.
func (g *RachelGame) AddAIPlayer(id uuid.UUID, name string, p agent.Personality) error {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	if err := g.Engine.AddPlayer(engineID(id), name, true); err != nil {
		return err
	}
	seed := g.Engine.RNG ^ uint64(len(g.Engine.Players))<<32
	g.aiMu.Lock()
	g.agents[id] = agent.New(p, agent.NewRand(seed))
	g.aiMu.Unlock()
	g.version++
	g.logAction(id, "player_join", map[string]interface{}{
		"name":        name,
		"ai":          true,
		"personality": p.Type.String(),
	})
	return nil
}

// Start deals the cards and hands the first turn out. It returns once the
// opening events have been delivered.
func (g *RachelGame) Start() error {
	return g.submit(context.Background(), request{kind: reqStart})
}

// startLocked deals and queues the opening events. Assumes lock is held by caller.
func (g *RachelGame) startLocked(out *outbox) error {
	if err := g.Engine.Start(); err != nil {
		return err
	}
	g.version++
	g.startedAt = time.Now()
	g.log.WithFields(logrus.Fields{
		"players": len(g.Engine.Players),
		"top":     g.Engine.CurrentCard().String(),
	}).Info("game started")
	g.logAction(uuid.Nil, string(EventGameStart), map[string]interface{}{
		"players": len(g.Engine.Players),
		"top":     g.Engine.CurrentCard().String(),
	})

	out.public(g.eventLocked(EventGameStart, uuid.Nil))
	out.public(g.eventLocked(EventGamePlayerTurn, userID(g.Engine.ActingPlayer())))
	g.syncAllLocked(out)
	g.scheduleNextLocked()
	return nil
}

// Stop ends the session without finishing the game: timers are stopped, any
// in-flight AI decision is discarded and later requests fail with
// ErrGameStopped. OnGameEnd is not called. Stop is idempotent.
func (g *RachelGame) Stop() {
	g.stopOnce.Do(func() {
		g.Mu.Lock()
		g.stopped = true
		g.stopTimersLocked()
		g.Mu.Unlock()
		g.cancel()
		<-g.done
		g.log.Debug("game stopped")
	})
}

// Done is closed once the request loop has exited.
func (g *RachelGame) Done() <-chan struct{} { return g.done }

// Snapshot returns a deep copy of the committed state.
func (g *RachelGame) Snapshot() *engine.Game {
	g.Mu.RLock()
	defer g.Mu.RUnlock()
	return g.Engine.Clone()
}

// StateFor returns the state as seen by playerID.
func (g *RachelGame) StateFor(playerID uuid.UUID) ObfGameState {
	g.Mu.RLock()
	defer g.Mu.RUnlock()
	return g.GetCurrentObfuscatedGameState(playerID)
}

// Version returns the number of committed mutations so far.
func (g *RachelGame) Version() uint64 {
	g.Mu.RLock()
	defer g.Mu.RUnlock()
	return g.version
}

// Disconnect marks a player as disconnected. Nothing else changes: the turn
// timer, when enabled, keeps the game moving.
func (g *RachelGame) Disconnect(playerID uuid.UUID) error {
	return g.submit(context.Background(), request{kind: reqDisconnect, playerID: playerID})
}

// Reconnect marks a player as connected again and resends their state.
func (g *RachelGame) Reconnect(playerID uuid.UUID) error {
	return g.submit(context.Background(), request{kind: reqConnect, playerID: playerID})
}

// setConnectedLocked assumes lock is held by caller.
func (g *RachelGame) setConnectedLocked(out *outbox, playerID uuid.UUID, connected bool) error {
	p := g.Engine.Player(engineID(playerID))
	if p == nil {
		return engine.ErrUnknownPlayer
	}
	p.Connected = connected

	evType := EventPlayerDisconnect
	if connected {
		evType = EventPlayerReconnect
	}
	g.logAction(playerID, string(evType), nil)
	g.log.WithField("player", playerID).Info(string(evType))

	out.public(g.eventLocked(evType, playerID))
	if connected && g.Engine.Status != engine.StatusWaiting {
		g.syncPlayerLocked(out, playerID)
	}
	return nil
}
