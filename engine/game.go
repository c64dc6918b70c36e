// Package engine implements the Rachel card game rules.
//
// Rachel is a Crazy-Eights variant: players match the current card by suit or
// rank, aces are wild and nominate a suit, and twos, sevens, jacks and queens
// carry stacking effects. The engine is the single authority on legality; the
// service layer and the computer players only ever go through ValidPlays,
// LegalActions and Apply.
//
// Every transition is applied to a copy and committed only when it succeeds,
// so a rejected action never leaves a partially-applied Game behind.
package engine

import (
	"math/bits"
	"slices"
)

const (
	DeckSize              = 52
	MaxPlayers            = 8
	DefaultCardsPerPlayer = 7
)

// PlayerID is the opaque, stable identity of a player.
type PlayerID string

// Player holds one participant's hand and bookkeeping.
type Player struct {
	ID        PlayerID
	Name      string
	Hand      []Card
	IsAI      bool
	Connected bool

	// Move counters, consumed by the terminal game summary.
	CardsPlayed int
	CardsDrawn  int
	TurnsTaken  int
}

// Game holds the complete, self-contained state of a Rachel game.
type Game struct {
	Players []Player
	Deck    []Card // draw pile, top is the last element
	Discard []Card // discard pile, top is the current card

	CurrentPlayer int
	Direction     Direction

	PendingPickup     int
	PendingPickupKind PickupKind
	PendingSkips      int
	Nomination        Nomination

	Status     Status
	Winners    []PlayerID
	TurnNumber int

	Rules HouseRules
	RNG   uint64
}

// ---------------------------------------------------------------------------
// xorshift64 RNG: inline, no interface
// ---------------------------------------------------------------------------

func (g *Game) nextRand() uint64 {
	x := g.RNG
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	g.RNG = x
	return x
}

// randN returns a uniformly distributed number in [0, n), n > 0, using
// Lemire's multiply-shift with rejection.
func (g *Game) randN(n uint64) uint64 {
	hi, lo := bits.Mul64(g.nextRand(), n)
	if lo < n {
		thresh := -n % n
		for lo < thresh {
			hi, lo = bits.Mul64(g.nextRand(), n)
		}
	}
	return hi
}

// ---------------------------------------------------------------------------
// NewGame, AddPlayer and Start
// ---------------------------------------------------------------------------

// NewGame initializes a waiting game with the given seed and rules.
// The deck is built but not yet shuffled or dealt.
func NewGame(seed uint64, rules HouseRules) *Game {
	g := &Game{
		RNG:       seed,
		Rules:     rules,
		Direction: Clockwise,
		Status:    StatusWaiting,
		Deck:      NewDeck(),
	}
	if g.RNG == 0 {
		g.RNG = 1 // xorshift can't start at 0
	}
	return g
}

// AddPlayer seats a new player. Only possible while the game is waiting.
func (g *Game) AddPlayer(id PlayerID, name string, isAI bool) error {
	if g.Status != StatusWaiting {
		return ruleErr(KindGameNotInProgress, "cannot join a game that is %s", g.Status)
	}
	if id == "" {
		return ruleErr(KindUnknownPlayer, "empty player id")
	}
	if g.PlayerIndex(id) >= 0 {
		return ruleErr(KindSeatUnavailable, "player %s already seated", id)
	}
	if len(g.Players) >= g.Rules.maxPlayers() {
		return ruleErr(KindSeatUnavailable, "game is full (%d players)", len(g.Players))
	}
	g.Players = append(g.Players, Player{ID: id, Name: name, IsAI: isAI, Connected: true})
	return nil
}

// Start shuffles, deals, flips the first card and picks a random starting
// player. Requires at least two seated players.
func (g *Game) Start() error {
	if g.Status != StatusWaiting {
		return ruleErr(KindGameNotInProgress, "game is already %s", g.Status)
	}
	n := len(g.Players)
	if n < 2 {
		return ruleErr(KindGameNotInProgress, "need at least 2 players, have %d", n)
	}

	return g.commit(func(next *Game) error {
		next.shuffle(next.Deck)

		// Deal one card at a time around the table.
		per := next.Rules.cardsPerPlayer(n)
		for c := 0; c < per; c++ {
			for p := range next.Players {
				card, _ := next.popDeck()
				next.Players[p].Hand = append(next.Players[p].Hand, card)
			}
		}

		// Flip top card to start the discard pile. The first card carries no effect.
		first, _ := next.popDeck()
		next.Discard = append(next.Discard, first)

		next.CurrentPlayer = int(next.randN(uint64(n)))
		next.Status = StatusPlaying
		return nil
	})
}

// Terminate ends the game early. Winners recorded so far are kept.
func (g *Game) Terminate() {
	g.Status = StatusFinished
	g.PendingSkips = 0
}

// ---------------------------------------------------------------------------
// Query methods
// ---------------------------------------------------------------------------

// IsTerminal returns true when the game is over.
func (g *Game) IsTerminal() bool { return g.Status == StatusFinished }

// CurrentCard returns the top of the discard pile, or EmptyCard before the deal.
func (g *Game) CurrentCard() Card {
	if len(g.Discard) == 0 {
		return EmptyCard
	}
	return g.Discard[len(g.Discard)-1]
}

// PlayerIndex returns the seat index of id, or -1.
func (g *Game) PlayerIndex(id PlayerID) int {
	for i := range g.Players {
		if g.Players[i].ID == id {
			return i
		}
	}
	return -1
}

// Player returns a pointer to the seated player with the given id, or nil.
func (g *Game) Player(id PlayerID) *Player {
	if i := g.PlayerIndex(id); i >= 0 {
		return &g.Players[i]
	}
	return nil
}

// ActingPlayer returns the id of the player who must act next, or "" when
// the game is not in progress. During a pending nomination that is the player
// who played the ace, which is always the current player.
func (g *Game) ActingPlayer() PlayerID {
	if g.Status != StatusPlaying || len(g.Players) == 0 {
		return ""
	}
	return g.Players[g.CurrentPlayer].ID
}

// HasWon reports whether id is already in the winners list.
func (g *Game) HasWon(id PlayerID) bool { return slices.Contains(g.Winners, id) }

// isActive reports whether the player at seat i is still in the rotation.
func (g *Game) isActive(i int) bool { return !g.HasWon(g.Players[i].ID) }

// ActivePlayers returns the ids of players still in the rotation, in seat order.
func (g *Game) ActivePlayers() []PlayerID {
	ids := make([]PlayerID, 0, len(g.Players))
	for i := range g.Players {
		if g.isActive(i) {
			ids = append(ids, g.Players[i].ID)
		}
	}
	return ids
}

// CardsInHands returns the total number of cards held by all players.
func (g *Game) CardsInHands() int {
	total := 0
	for i := range g.Players {
		total += len(g.Players[i].Hand)
	}
	return total
}

// ---------------------------------------------------------------------------
// Clone and commit
// ---------------------------------------------------------------------------

// Clone returns a deep copy. Clones share nothing with the original.
func (g *Game) Clone() *Game {
	c := *g
	c.Players = make([]Player, len(g.Players))
	for i, p := range g.Players {
		p.Hand = slices.Clone(p.Hand)
		c.Players[i] = p
	}
	c.Deck = slices.Clone(g.Deck)
	c.Discard = slices.Clone(g.Discard)
	c.Winners = slices.Clone(g.Winners)
	return &c
}

// commit runs fn against a clone and replaces g with the result only when fn
// succeeds and every invariant still holds.
func (g *Game) commit(fn func(next *Game) error) error {
	next := g.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := next.CheckInvariants(); err != nil {
		return err
	}
	*g = *next
	return nil
}

// NewArrangedGame starts a game from a known layout: the given players and
// hands, top as the current card, and every other card shuffled into the draw
// pile. The first player acts first. Used for replays and tests.
func NewArrangedGame(seed uint64, rules HouseRules, top Card, players []Player) (*Game, error) {
	g := NewGame(seed, rules)
	used := map[Card]bool{top: true}
	for _, p := range players {
		if err := g.AddPlayer(p.ID, p.Name, p.IsAI); err != nil {
			return nil, err
		}
		seat := &g.Players[len(g.Players)-1]
		seat.Hand = slices.Clone(p.Hand)
		for _, c := range p.Hand {
			if used[c] {
				return nil, ruleErr(KindInvalidCards, "card %s dealt twice", c)
			}
			used[c] = true
		}
	}
	if len(g.Players) < 2 {
		return nil, ruleErr(KindGameNotInProgress, "need at least 2 players, have %d", len(g.Players))
	}

	g.Deck = g.Deck[:0]
	for _, c := range NewDeck() {
		if !used[c] {
			g.Deck = append(g.Deck, c)
		}
	}
	g.shuffle(g.Deck)
	g.Discard = []Card{top}
	g.Status = StatusPlaying
	if err := g.CheckInvariants(); err != nil {
		return nil, err
	}
	return g, nil
}
