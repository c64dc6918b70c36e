// internal/game/game_test.go
package game

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	engine "github.com/jason-s-yu/rachel/engine"
	"github.com/jason-s-yu/rachel/engine/agent"
	"github.com/jason-s-yu/rachel/service/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockBroadcaster captures game events for testing assertions.
type mockBroadcaster struct {
	mu           sync.Mutex
	allEvents    []GameEvent
	playerEvents map[uuid.UUID][]GameEvent
	summaries    chan Summary
}

func newMockBroadcaster() *mockBroadcaster {
	return &mockBroadcaster{
		playerEvents: make(map[uuid.UUID][]GameEvent),
		summaries:    make(chan Summary, 1),
	}
}

func (mb *mockBroadcaster) broadcastFn(ev GameEvent) {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	mb.allEvents = append(mb.allEvents, ev)
}

func (mb *mockBroadcaster) broadcastToPlayerFn(playerID uuid.UUID, ev GameEvent) {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	mb.playerEvents[playerID] = append(mb.playerEvents[playerID], ev)
}

func (mb *mockBroadcaster) onGameEnd(_ uuid.UUID, s Summary) {
	mb.summaries <- s
}

func (mb *mockBroadcaster) clear() {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	mb.allEvents = nil
	mb.playerEvents = make(map[uuid.UUID][]GameEvent)
}

func (mb *mockBroadcaster) eventTypes() []GameEventType {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	out := make([]GameEventType, len(mb.allEvents))
	for i, ev := range mb.allEvents {
		out[i] = ev.Type
	}
	return out
}

func (mb *mockBroadcaster) findEventByType(eventType GameEventType) *GameEvent {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	for i := len(mb.allEvents) - 1; i >= 0; i-- {
		if mb.allEvents[i].Type == eventType {
			ev := mb.allEvents[i]
			return &ev
		}
	}
	return nil
}

func (mb *mockBroadcaster) firstEventByType(eventType GameEventType) *GameEvent {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	for _, ev := range mb.allEvents {
		if ev.Type == eventType {
			return &ev
		}
	}
	return nil
}

func (mb *mockBroadcaster) getLastPlayerEvent(playerID uuid.UUID) *GameEvent {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	events := mb.playerEvents[playerID]
	if len(events) == 0 {
		return nil
	}
	ev := events[len(events)-1]
	return &ev
}

func (mb *mockBroadcaster) waitSummary(t *testing.T, d time.Duration) Summary {
	t.Helper()
	select {
	case s := <-mb.summaries:
		return s
	case <-time.After(d):
		t.Fatal("game did not end in time")
		return Summary{}
	}
}

// seat describes one player of an arranged game.
type seat struct {
	hand []string
	ai   *agent.Personality
}

func human(hand ...string) seat { return seat{hand: hand} }

func computer(t agent.Type, hand ...string) seat {
	p := agent.PersonalityFor(t)
	return seat{hand: hand, ai: &p}
}

func parseCards(t *testing.T, ss []string) []engine.Card {
	t.Helper()
	out := make([]engine.Card, len(ss))
	for i, s := range ss {
		c, err := engine.ParseCard(s)
		require.NoError(t, err, "card %q", s)
		out[i] = c
	}
	return out
}

func newTestGame(t *testing.T, opts Options) (*RachelGame, *mockBroadcaster) {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	g := NewRachelGame(opts)
	mb := newMockBroadcaster()
	g.BroadcastFn = mb.broadcastFn
	g.BroadcastToPlayerFn = mb.broadcastToPlayerFn
	g.OnGameEnd = mb.onGameEnd
	t.Cleanup(g.Stop)
	return g, mb
}

// setupArrangedGame installs a known layout in which the first seat acts
// first, and returns the players' ids in seat order.
func setupArrangedGame(t *testing.T, opts Options, top string, seats ...seat) (*RachelGame, []uuid.UUID, *mockBroadcaster) {
	t.Helper()
	g, mb := newTestGame(t, opts)

	ids := make([]uuid.UUID, len(seats))
	players := make([]engine.Player, len(seats))
	for i, s := range seats {
		ids[i] = uuid.New()
		players[i] = engine.Player{
			ID:   engineID(ids[i]),
			Name: string(rune('A' + i)),
			Hand: parseCards(t, s.hand),
			IsAI: s.ai != nil,
		}
	}
	topCard, err := engine.ParseCard(top)
	require.NoError(t, err)
	e, err := engine.NewArrangedGame(7, engine.DefaultHouseRules(), topCard, players)
	require.NoError(t, err)

	g.Mu.Lock()
	g.Engine = e
	g.version++
	g.startedAt = time.Now()
	for i, s := range seats {
		if s.ai != nil {
			g.agents[ids[i]] = agent.New(*s.ai, agent.NewRand(uint64(i+1)))
		}
	}
	g.scheduleNextLocked()
	g.Mu.Unlock()
	return g, ids, mb
}

func TestSubmitActionAppliesAndBroadcasts(t *testing.T) {
	g, ids, mb := setupArrangedGame(t, Options{}, "3H", human("5H", "9C"), human("6H", "KD"))
	a, b := ids[0], ids[1]
	v := g.Version()

	require.NoError(t, g.SubmitAction(context.Background(), a, engine.PlayAction(0)))

	snap := g.Snapshot()
	assert.Equal(t, "5♥", snap.CurrentCard().String())
	assert.Equal(t, engineID(b), snap.ActingPlayer())
	assert.Len(t, snap.Player(engineID(a)).Hand, 1)
	assert.Equal(t, v+1, g.Version())

	assert.Equal(t, []GameEventType{EventPlayerPlay, EventGamePlayerTurn}, mb.eventTypes())
	play := mb.findEventByType(EventPlayerPlay)
	require.NotNil(t, play)
	require.NotNil(t, play.User)
	assert.Equal(t, a, play.User.ID)
	require.Len(t, play.Cards, 1)
	assert.Equal(t, "5", play.Cards[0].Rank)
	assert.Equal(t, "hearts", play.Cards[0].Suit)
	require.NotNil(t, play.Snapshot)
	assert.Equal(t, snap, play.Snapshot)

	turn := mb.findEventByType(EventGamePlayerTurn)
	require.NotNil(t, turn)
	assert.Equal(t, b, turn.User.ID)

	// Each human receives a private sync revealing only their own hand.
	for _, id := range ids {
		ev := mb.getLastPlayerEvent(id)
		require.NotNil(t, ev, "no sync for %s", id)
		assert.Equal(t, EventPrivateSyncState, ev.Type)
		for _, ps := range ev.State.Players {
			if ps.PlayerID == id {
				assert.Len(t, ps.RevealedHand, ps.HandSize)
			} else {
				assert.Empty(t, ps.RevealedHand)
			}
		}
	}
}

func TestSubmitActionReturnsRuleErrors(t *testing.T) {
	g, ids, mb := setupArrangedGame(t, Options{}, "3H", human("5H", "9C"), human("6H", "KD"))
	ctx := context.Background()
	v := g.Version()
	before := g.Snapshot()

	err := g.SubmitAction(ctx, ids[1], engine.PlayAction(0))
	require.ErrorIs(t, err, engine.ErrNotYourTurn)
	assert.Equal(t, engine.KindNotYourTurn, engine.KindOf(err))

	err = g.SubmitAction(ctx, ids[0], engine.PlayAction(1))
	assert.ErrorIs(t, err, engine.ErrInvalidCards)

	err = g.SubmitAction(ctx, ids[0], engine.DrawAction())
	assert.ErrorIs(t, err, engine.ErrMustPlay)

	err = g.SubmitAction(ctx, uuid.New(), engine.DrawAction())
	assert.ErrorIs(t, err, engine.ErrUnknownPlayer)

	assert.Equal(t, v, g.Version())
	assert.Equal(t, before, g.Snapshot())
	assert.Empty(t, mb.eventTypes())
}

func TestConcurrentSubmissionsApplyOnce(t *testing.T) {
	g, ids, mb := setupArrangedGame(t, Options{}, "3H", human("5H", "9C"), human("6H", "KD"))
	v := g.Version()

	const n = 16
	errs := make([]error, n)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			errs[i] = g.SubmitAction(context.Background(), ids[0], engine.PlayAction(0))
		}(i)
	}
	close(start)
	wg.Wait()

	applied := 0
	for _, err := range errs {
		if err == nil {
			applied++
			continue
		}
		assert.True(t, errors.Is(err, engine.ErrNotYourTurn) || errors.Is(err, engine.ErrInvalidCards), "unexpected error %v", err)
	}
	assert.Equal(t, 1, applied)
	assert.Equal(t, v+1, g.Version())

	snap := g.Snapshot()
	assert.NoError(t, snap.CheckInvariants())
	assert.Equal(t, "5♥", snap.CurrentCard().String())
	assert.Len(t, snap.Player(engineID(ids[0])).Hand, 1)
	assert.Equal(t, engineID(ids[1]), snap.ActingPlayer())
	assert.Equal(t, []GameEventType{EventPlayerPlay, EventGamePlayerTurn}, mb.eventTypes())
}

func TestSnapshotIsIdempotentAndDetached(t *testing.T) {
	g, ids, _ := setupArrangedGame(t, Options{}, "3H", human("5H", "9C"), human("6H", "KD"))

	s1 := g.Snapshot()
	s2 := g.Snapshot()
	assert.Equal(t, s1, s2)

	s1.Players[0].Hand[0] = s1.Players[1].Hand[0]
	s1.Deck = nil
	assert.Equal(t, s2, g.Snapshot())
	assert.NoError(t, g.Snapshot().CheckInvariants())

	// Concurrent readers see committed state while a writer runs.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, g.Snapshot().CheckInvariants())
		}()
	}
	require.NoError(t, g.SubmitAction(context.Background(), ids[0], engine.PlayAction(0)))
	wg.Wait()
}

func TestLastCardWinsAndEndsTwoPlayerGame(t *testing.T) {
	g, ids, mb := setupArrangedGame(t, Options{}, "3H", human("5H"), human("6H", "KD"))

	require.NoError(t, g.SubmitAction(context.Background(), ids[0], engine.PlayAction(0)))

	s := mb.waitSummary(t, time.Second)
	assert.Equal(t, g.ID, s.GameID)
	assert.Equal(t, []uuid.UUID{ids[0]}, s.Winners)
	assert.False(t, s.Terminated)
	require.Len(t, s.Players, 2)
	assert.Equal(t, ids[0], s.Players[0].ID)
	assert.Equal(t, 1, s.Players[0].Place)
	assert.True(t, s.Players[0].Finished)
	assert.Equal(t, 1, s.Players[0].CardsPlayed)
	assert.Equal(t, ids[1], s.Players[1].ID)
	assert.Equal(t, 2, s.Players[1].CardsLeft)

	end := mb.findEventByType(EventGameEnd)
	require.NotNil(t, end)
	require.NotNil(t, end.Summary)
	assert.Equal(t, "finished", end.State.Status)

	err := g.SubmitAction(context.Background(), ids[1], engine.PlayAction(0))
	assert.ErrorIs(t, err, engine.ErrGameNotInProgress)
}

func TestWinnerLeavesRotationInLargerGame(t *testing.T) {
	g, ids, mb := setupArrangedGame(t, Options{}, "3H", human("5H"), human("6H", "KD"), human("9H", "QC"))

	require.NoError(t, g.SubmitAction(context.Background(), ids[0], engine.PlayAction(0)))

	snap := g.Snapshot()
	assert.Equal(t, engine.StatusPlaying, snap.Status)
	assert.True(t, snap.HasWon(engineID(ids[0])))
	assert.Equal(t, engineID(ids[1]), snap.ActingPlayer())
	play := mb.findEventByType(EventPlayerPlay)
	require.NotNil(t, play)
	assert.Equal(t, true, play.Payload["finished"])
}

func TestStaleSubmissionIsDropped(t *testing.T) {
	g, ids, _ := setupArrangedGame(t, Options{}, "3H", human("5H", "9C"), human("6H", "KD"))
	ctx := context.Background()
	old := g.Version()

	require.NoError(t, g.SubmitAction(ctx, ids[0], engine.PlayAction(0)))
	before := g.Snapshot()

	err := g.submit(ctx, request{playerID: ids[1], action: engine.PlayAction(0), version: old})
	assert.ErrorIs(t, err, errStale)
	assert.Equal(t, before, g.Snapshot())

	err = g.submit(ctx, request{playerID: ids[1], action: engine.PlayAction(0), version: g.Version()})
	assert.NoError(t, err)
}

func TestComputerPlayerAnswersHuman(t *testing.T) {
	g, ids, mb := setupArrangedGame(t, Options{}, "3H",
		human("5H", "9C", "KS"),
		computer(agent.Strategic, "6H", "KD", "4C"))
	v := g.Version()

	require.NoError(t, g.SubmitAction(context.Background(), ids[0], engine.PlayAction(0)))

	require.Eventually(t, func() bool { return g.Version() >= v+2 }, 2*time.Second, 5*time.Millisecond)
	snap := g.Snapshot()
	assert.Equal(t, engineID(ids[0]), snap.ActingPlayer())
	assert.Equal(t, 1, snap.Player(engineID(ids[1])).TurnsTaken)
	assert.NoError(t, snap.CheckInvariants())

	// The computer player gets no private syncs.
	mb.mu.Lock()
	assert.Empty(t, mb.playerEvents[ids[1]])
	mb.mu.Unlock()
}

func TestComputerOnlyGameRunsToCompletion(t *testing.T) {
	for _, seed := range []uint64{1, 42, 2024} {
		g, mb := newTestGame(t, Options{Seed: seed})
		r := agent.NewRand(seed)
		for i := 0; i < 4; i++ {
			require.NoError(t, g.AddAIPlayer(uuid.New(), string(rune('A'+i)), agent.RandomPersonality(r)))
		}
		require.NoError(t, g.Start())

		s := mb.waitSummary(t, 10*time.Second)
		if !s.Terminated {
			assert.Len(t, s.Winners, 3, "seed %d", seed)
		}
		assert.Len(t, s.Players, 4)
		for i, p := range s.Players {
			assert.Equal(t, i+1, p.Place)
			assert.NotEmpty(t, p.Personality)
		}
		snap := g.Snapshot()
		assert.True(t, snap.IsTerminal())
		assert.NoError(t, snap.CheckInvariants())
		assert.NotNil(t, mb.findEventByType(EventGameStart))
		g.Stop()
	}
}

func TestCallbacksRunInVersionOrder(t *testing.T) {
	g, mb := newTestGame(t, Options{Seed: 5})
	var (
		mu       sync.Mutex
		versions []uint64
		inFlight atomic.Int32
		maxSeen  atomic.Int32
	)
	observe := func(ev GameEvent) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			m := maxSeen.Load()
			if n <= m || maxSeen.CompareAndSwap(m, n) {
				break
			}
		}
		// A slow consumer on the opening event lets later turns pile up behind it.
		if ev.Type == EventGameStart {
			time.Sleep(20 * time.Millisecond)
		}
		mu.Lock()
		versions = append(versions, ev.Version)
		mu.Unlock()
	}
	g.BroadcastFn = func(ev GameEvent) {
		observe(ev)
		mb.broadcastFn(ev)
	}
	g.BroadcastToPlayerFn = func(id uuid.UUID, ev GameEvent) {
		observe(ev)
		mb.broadcastToPlayerFn(id, ev)
	}

	r := agent.NewRand(5)
	ids := make([]uuid.UUID, 3)
	for i := range ids {
		ids[i] = uuid.New()
		require.NoError(t, g.AddAIPlayer(ids[i], string(rune('A'+i)), agent.RandomPersonality(r)))
	}
	// Connection churn races Start and the computer players' turns.
	churned := make(chan struct{})
	go func() {
		defer close(churned)
		for i := 0; i < 20; i++ {
			_ = g.Disconnect(ids[i%3])
			_ = g.Reconnect(ids[i%3])
		}
	}()
	require.NoError(t, g.Start())
	<-churned

	mb.waitSummary(t, 10*time.Second)
	g.Stop()

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, versions)
	for i := 1; i < len(versions); i++ {
		require.GreaterOrEqual(t, versions[i], versions[i-1], "event %d delivered out of order", i)
	}
	assert.Equal(t, int32(1), maxSeen.Load(), "callbacks ran concurrently")
}

func TestStopDiscardsInFlightDecision(t *testing.T) {
	g, ids, _ := setupArrangedGame(t, Options{AIThink: time.Minute}, "3H",
		human("5H", "9C"),
		computer(agent.Aggressive, "6H", "KD"))

	require.NoError(t, g.SubmitAction(context.Background(), ids[0], engine.PlayAction(0)))
	v := g.Version()

	// Wait for the agent to arm its delayed submission.
	require.Eventually(t, func() bool {
		g.Mu.RLock()
		defer g.Mu.RUnlock()
		return g.aiTimer != nil
	}, time.Second, time.Millisecond)

	g.Stop()
	g.Stop()
	assert.Equal(t, v, g.Version())
	assert.ErrorIs(t, g.SubmitAction(context.Background(), ids[1], engine.PlayAction(0)), ErrGameStopped)
	assert.ErrorIs(t, g.Start(), ErrGameStopped)
	select {
	case <-g.Done():
	default:
		t.Fatal("request loop still running after Stop")
	}
}

func TestTurnTimerDrawsForIdlePlayer(t *testing.T) {
	g, ids, mb := setupArrangedGame(t, Options{TurnDuration: 50 * time.Millisecond}, "3H",
		human("9C"),
		human("6H", "KD", "4S", "7C", "QD"))

	require.Eventually(t, func() bool {
		return mb.firstEventByType(EventPlayerDraw) != nil
	}, 2*time.Second, 5*time.Millisecond)
	g.Stop()

	timeout := mb.firstEventByType(EventPlayerTimeout)
	require.NotNil(t, timeout)
	assert.Equal(t, ids[0], timeout.User.ID)
	draw := mb.firstEventByType(EventPlayerDraw)
	require.NotNil(t, draw)
	assert.Equal(t, true, draw.Payload["timeout"])
	assert.Equal(t, 1, draw.Payload["count"])
}

func TestTurnTimerNominatesAfterAce(t *testing.T) {
	g, ids, mb := setupArrangedGame(t, Options{TurnDuration: 30 * time.Millisecond}, "3H",
		human("AS", "9C", "4C", "KD"),
		human("6H", "KH", "4S", "7D", "QD"))

	require.NoError(t, g.SubmitAction(context.Background(), ids[0], engine.PlayAction(0)))
	require.Equal(t, engine.NominationPending, g.Snapshot().Nomination)

	require.Eventually(t, func() bool {
		return mb.firstEventByType(EventPlayerNominate) != nil
	}, time.Second, 5*time.Millisecond)
	g.Stop()
	nominate := mb.firstEventByType(EventPlayerNominate)
	assert.Equal(t, "clubs", nominate.Suit)
	assert.Equal(t, ids[0], nominate.User.ID)
}

func TestTurnTimerYieldsToPlayer(t *testing.T) {
	g, ids, mb := setupArrangedGame(t, Options{TurnDuration: 200 * time.Millisecond}, "3H",
		human("5H", "9C"),
		human("6H", "KD", "4S"))

	require.NoError(t, g.SubmitAction(context.Background(), ids[0], engine.PlayAction(0)))
	require.NoError(t, g.SubmitAction(context.Background(), ids[1], engine.PlayAction(0)))
	assert.Nil(t, mb.findEventByType(EventPlayerTimeout))
}

func TestDisconnectAndReconnect(t *testing.T) {
	g, ids, mb := setupArrangedGame(t, Options{}, "3H", human("5H", "9C"), human("6H", "KD"))
	v := g.Version()

	require.NoError(t, g.Disconnect(ids[1]))
	snap := g.Snapshot()
	assert.False(t, snap.Player(engineID(ids[1])).Connected)
	assert.Equal(t, v, g.Version())
	require.NotNil(t, mb.findEventByType(EventPlayerDisconnect))

	// Disconnected players get no private syncs.
	mb.clear()
	require.NoError(t, g.SubmitAction(context.Background(), ids[0], engine.PlayAction(0)))
	assert.Nil(t, mb.getLastPlayerEvent(ids[1]))

	require.NoError(t, g.Reconnect(ids[1]))
	assert.True(t, g.Snapshot().Player(engineID(ids[1])).Connected)
	ev := mb.getLastPlayerEvent(ids[1])
	require.NotNil(t, ev)
	assert.Equal(t, EventPrivateSyncState, ev.Type)

	assert.ErrorIs(t, g.Disconnect(uuid.New()), engine.ErrUnknownPlayer)
}

func TestTerminateReportsSummary(t *testing.T) {
	g, ids, mb := setupArrangedGame(t, Options{}, "3H", human("5H", "9C"), human("6H", "KD"), human("2C"))

	require.NoError(t, g.Terminate(context.Background()))
	s := mb.waitSummary(t, time.Second)
	assert.True(t, s.Terminated)
	assert.Empty(t, s.Winners)
	require.Len(t, s.Players, 3)
	assert.Equal(t, ids[2], s.Players[0].ID, "fewest cards ranks first")

	assert.ErrorIs(t, g.Terminate(context.Background()), engine.ErrGameNotInProgress)
	assert.ErrorIs(t, g.SubmitAction(context.Background(), ids[0], engine.PlayAction(0)), engine.ErrGameNotInProgress)
}

func TestLobbyOperations(t *testing.T) {
	g, mb := newTestGame(t, Options{Seed: 9})
	a, b := uuid.New(), uuid.New()

	require.NoError(t, g.AddPlayer(a, "alice"))
	assert.ErrorIs(t, g.AddPlayer(a, "alice again"), engine.ErrSeatUnavailable)
	assert.ErrorIs(t, g.Start(), engine.ErrGameNotInProgress)

	require.NoError(t, g.AddAIPlayer(b, "bot", agent.PersonalityFor(agent.Conservative)))
	require.NoError(t, g.Start())
	assert.ErrorIs(t, g.AddPlayer(uuid.New(), "late"), engine.ErrGameNotInProgress)

	require.NotNil(t, mb.findEventByType(EventGameStart))
	state := g.StateFor(a)
	assert.Equal(t, "playing", state.Status)
	require.Len(t, state.Players, 2)
	assert.NotEmpty(t, state.Players[0].RevealedHand)
	assert.Len(t, state.Players[0].RevealedHand, state.Players[0].HandSize)
	assert.Empty(t, state.Players[1].RevealedHand)
	assert.True(t, state.Players[1].IsAI)
	require.NotNil(t, state.DiscardTop)

	spectator := g.StateFor(uuid.Nil)
	for _, ps := range spectator.Players {
		assert.Empty(t, ps.RevealedHand)
	}
}

func TestAIDelayScalesThinkTime(t *testing.T) {
	g := &RachelGame{}
	assert.Zero(t, g.aiDelay(time.Second))

	g.AIThink = agent.DefaultBaseThink
	assert.Equal(t, time.Second, g.aiDelay(time.Second))

	g.AIThink = agent.DefaultBaseThink / 2
	assert.Equal(t, 500*time.Millisecond, g.aiDelay(time.Second))
}

func TestFallbackAction(t *testing.T) {
	parse := func(s string) engine.Card {
		c, err := engine.ParseCard(s)
		require.NoError(t, err)
		return c
	}
	arrange := func(top string, hand ...string) *engine.Game {
		e, err := engine.NewArrangedGame(3, engine.DefaultHouseRules(), parse(top), []engine.Player{
			{ID: "a", Hand: parseCards(t, hand)},
			{ID: "b", Hand: parseCards(t, []string{"KD"})},
		})
		require.NoError(t, err)
		return e
	}

	act, ok := fallbackAction(arrange("3H", "9C"), "a")
	require.True(t, ok)
	assert.Equal(t, engine.ActionDraw, act.Kind)

	act, ok = fallbackAction(arrange("3H", "9C", "5H"), "a")
	require.True(t, ok)
	assert.Equal(t, engine.PlayAction(1), act)

	_, ok = fallbackAction(arrange("3H", "9C"), "b")
	assert.False(t, ok)
}
