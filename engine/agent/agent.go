package agent

import (
	"fmt"
	"math"
	"time"

	engine "github.com/jason-s-yu/rachel/engine"
)

// Agent plays for one computer-controlled seat.
type Agent struct {
	Personality Personality
	Rand        Rand
	BaseThink   time.Duration // zero means DefaultBaseThink
}

// New returns an agent with personality p drawing randomness from r.
func New(p Personality, r Rand) *Agent {
	return &Agent{Personality: p, Rand: r}
}

// Decision is the agent's chosen action and its advisory pacing.
type Decision struct {
	Action     engine.Action
	Think      time.Duration
	Score      float64 // score of the chosen play; 0 for draws and nominations
	Candidates int     // number of legal plays considered
}

// Decide picks exactly one action for id. The action is always legal for g
// as given; an agent that would produce an illegal action reports an
// internal consistency error instead.
func (a *Agent) Decide(g *engine.Game, id engine.PlayerID) (Decision, error) {
	if g.Status != engine.StatusPlaying {
		return Decision{}, fmt.Errorf("agent %s: %w", id, engine.ErrGameNotInProgress)
	}
	if g.ActingPlayer() != id {
		return Decision{}, fmt.Errorf("agent %s: %w", id, engine.ErrNotYourTurn)
	}
	hand := g.Player(id).Hand

	var d Decision
	switch {
	case g.Nomination == engine.NominationPending:
		d.Action = engine.NominateAction(ChooseSuit(hand))
		d.Think = ThinkTime(a.BaseThink, a.Personality, nil, a.Rand)

	default:
		plays := g.ValidPlays(id)
		if len(plays) == 0 {
			d.Action = engine.DrawAction()
			d.Think = ThinkTime(a.BaseThink, a.Personality, nil, a.Rand)
			break
		}
		ranked := a.Rank(g, id, plays)
		pick := selectCandidate(a.Personality.Type, len(ranked), a.Rand)
		d.Action = ranked[pick].Play.Action()
		d.Score = ranked[pick].Score
		d.Candidates = len(ranked)
		d.Think = ThinkTime(a.BaseThink, a.Personality, ranked, a.Rand)
	}

	if !g.IsLegal(id, d.Action) {
		return Decision{}, fmt.Errorf("agent %s chose %s: %w", id, d.Action, engine.ErrInternalConsistency)
	}
	return d, nil
}

// Rank scores plays for id through the agent's personality, best first.
func (a *Agent) Rank(g *engine.Game, id engine.PlayerID, plays []engine.Play) []Candidate {
	ctx := Assess(g, id)
	return scorePlays(a.Personality, ctx, plays, g.Player(id).Hand, a.Rand)
}

// selectCandidate returns the index of the ranked candidate to play.
//   - Chaotic: the best 70% of the time, otherwise any candidate.
//   - Conservative: any candidate from the top third.
//   - Everyone else: the best, with a 10% chance of the second best.
func selectCandidate(t Type, n int, r Rand) int {
	if n <= 1 {
		return 0
	}
	switch t {
	case Chaotic:
		if r.Float64() < ChaoticTopChance {
			return 0
		}
		return r.IntN(n)
	case Conservative:
		top := int(math.Ceil(float64(n) / 3))
		return r.IntN(top)
	default:
		if r.Float64() < SecondBestChance {
			return 1
		}
		return 0
	}
}

// ChooseSuit nominates the suit held most often in hand. Ties go to the
// first suit in Hearts, Diamonds, Clubs, Spades order; an empty hand
// nominates Hearts.
func ChooseSuit(hand []engine.Card) uint8 {
	var counts [engine.NumSuits]int
	for _, c := range hand {
		counts[c.Suit()]++
	}
	best := uint8(0)
	for s := uint8(1); s < engine.NumSuits; s++ {
		if counts[s] > counts[best] {
			best = s
		}
	}
	return best
}
