package agent

import (
	"slices"
	"sort"

	engine "github.com/jason-s-yu/rachel/engine"
)

// Candidate is one legal play with its scores.
type Candidate struct {
	Play  engine.Play
	Base  float64 // before the personality transform
	Score float64
}

// features are the properties of a play the personality transform reacts to.
type features struct {
	cards       int
	special     bool
	attack      bool // lands a pickup or skip on the next player
	counter     bool // answers a pending pickup instead of drawing
	suitControl bool // leaves a suit we hold plenty of, or is an ace
	high        bool // sheds a face card or ace
	hasAce      bool
	risky       bool // gives up a wild card or a counter we may need later
}

func playFeatures(ctx Context, play engine.Play, hand []engine.Card) features {
	f := features{cards: len(play.Cards)}
	rank := play.Rank()
	for _, c := range play.Cards {
		if c.IsSpecial() {
			f.special = true
		}
		if c.Value() >= 11 {
			f.high = true
		}
		if c.IsBlackJack() {
			f.attack = true
		}
	}
	switch rank {
	case engine.RankTwo, engine.RankSeven:
		f.attack = true
	case engine.RankAce:
		f.hasAce = true
		f.suitControl = true
	}
	f.counter = ctx.PendingPickup > 0

	if !f.suitControl {
		last := play.Last().Suit()
		left := 0
		for i, c := range hand {
			if c.Suit() == last && !slices.Contains(play.Indices, i) {
				left++
			}
		}
		f.suitControl = left >= 2
	}
	f.risky = f.hasAce || (f.attack && ctx.Phase == PhaseEarly)
	return f
}

// baseScore is cards shed plus card values plus contextual special bonuses,
// with a defensive bonus only when some opponent is close to going out.
func baseScore(ctx Context, play engine.Play, f features) float64 {
	s := float64(len(play.Cards)) * CardReductionWeight
	for _, c := range play.Cards {
		s += float64(c.Value())
		s += specialBonus(ctx, c)
	}
	if ctx.MaxThreat > HighThreatCutoff && f.attack {
		s += DefensiveBonus
	}
	return s
}

func specialBonus(ctx Context, c engine.Card) float64 {
	switch c.Rank() {
	case engine.RankTwo:
		return TwoBonus + TwoThreatBonus*ctx.NextThreat
	case engine.RankSeven:
		return SevenBonus + SevenThreatBonus*ctx.NextThreat
	case engine.RankJack:
		if c.IsBlack() {
			return BlackJackBonus + BlackJackThreat*ctx.NextThreat
		}
		if ctx.PendingPickupKind == engine.PickupBlackJacks {
			return CounterBonus
		}
	case engine.RankQueen:
		return QueenBonus + QueenThreatBonus*ctx.NextThreat
	case engine.RankAce:
		return AceBonus + AceOpportunityMul*ctx.Opportunity
	}
	return 0
}

// traitModifier multiplies the score when the play suits the temperament.
func traitModifier(t Traits, ctx Context, f features) float64 {
	m := 1.0
	if f.attack {
		m += 0.2 * t.Aggression
		if ctx.NextThreat >= 0.4 {
			m += 0.5 * t.Aggression
		}
	}
	if ctx.Phase == PhaseEarly {
		if f.special {
			m -= 0.2 * t.Patience
		} else {
			m += 0.2 * t.Patience
		}
	}
	if f.risky {
		m += 0.3 * (t.RiskTolerance - 0.5)
	}
	if f.counter {
		m += 0.3 * t.Adaptability * ctx.MaxThreat
	}
	if f.special {
		m += 0.2 * t.SpecialFocus
	}
	if f.cards > 1 {
		m += 0.1 * t.CardCounting
	}
	// Shedding an ordinary card while holding specials hides the hand's strength.
	if !f.special && ctx.SpecialCount > 0 && ctx.Phase != PhaseLate {
		m += BluffWeight * t.Bluffing
	}
	return max(0.1, m)
}

// weightModifier multiplies the score for each weighted property the play has.
func weightModifier(w Weights, f features) float64 {
	m := 1.0
	if f.attack {
		m += 0.5 * w.OpponentImpact
	}
	if f.counter {
		m += 0.5 * w.SelfProtection
	}
	if f.special {
		m += 0.4 * w.SpecialEffects
	}
	if f.suitControl {
		m += 0.3 * w.SuitControl
	}
	if f.high {
		m += 0.1 * w.CardValue
	}
	m += 0.2 * w.HandSize * float64(f.cards-1)
	return m
}

// quirkBonus adds the quirks' fixed bonuses and penalties, plus their noise.
func quirkBonus(q Quirks, ctx Context, f features, r Rand) float64 {
	b := 0.0
	if q.Has(HoardSpecials) && f.special && ctx.HandSize > HoardSpecialsHand {
		b += HoardSpecialsPenalty
	}
	if q.Has(SaveAces) && f.hasAce && ctx.HandSize > f.cards+1 {
		b += SaveAcesPenalty
	}
	if q.Has(DumpHighCards) && f.high {
		b += DumpHighCardsBonus
	}
	if q.Has(PreferMultiples) {
		b += PreferMultiplesBonus * float64(f.cards-1)
	}
	if q.Has(RandomPlays) {
		b += RandomPlaysNoise * boundedNorm(r)
	}
	if q.Has(Misdirection) && !f.special && ctx.Phase != PhaseLate {
		b += MisdirectionNoise * r.Float64()
	}
	return b
}

// scorePlays scores every play for the agent and returns them best first.
// Ties keep the rules engine's enumeration order.
func scorePlays(p Personality, ctx Context, plays []engine.Play, hand []engine.Card, r Rand) []Candidate {
	out := make([]Candidate, len(plays))
	for i, play := range plays {
		f := playFeatures(ctx, play, hand)
		base := baseScore(ctx, play, f)
		s := base * traitModifier(p.Traits, ctx, f) * weightModifier(p.Weights, f)
		s += quirkBonus(p.Quirks, ctx, f, r)
		s += NoiseScale * p.Randomness * boundedNorm(r)
		out[i] = Candidate{Play: play, Base: base, Score: s}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}
