package agent

import "time"

// GamePhase is the coarse stage of a game, judged by the cards still held.
type GamePhase uint8

const (
	PhaseEarly GamePhase = iota // 0: more than 30 cards in hands
	PhaseMid                    // 1: 16-30 cards
	PhaseLate                   // 2: 15 cards or fewer
)

func (p GamePhase) String() string {
	switch p {
	case PhaseEarly:
		return "early"
	case PhaseMid:
		return "mid"
	}
	return "late"
}

// PhaseFromCardsInHands buckets the total number of cards held by all players.
// >30 → PhaseEarly, >15 → PhaseMid, otherwise PhaseLate.
func PhaseFromCardsInHands(total int) GamePhase {
	switch {
	case total > 30:
		return PhaseEarly
	case total > 15:
		return PhaseMid
	default:
		return PhaseLate
	}
}

// ThreatFromHandSize maps an opponent's hand size to a threat level in [0, 1].
// Fewer cards mean more threat; the steps never increase with hand size.
//
//	1 → 1.0, 2 → 0.8, 3 → 0.6, 4-5 → 0.4, 6+ → 0.2, 0 (finished) → 0
func ThreatFromHandSize(n int) float64 {
	switch {
	case n <= 0:
		return 0
	case n == 1:
		return 1.0
	case n == 2:
		return 0.8
	case n == 3:
		return 0.6
	case n <= 5:
		return 0.4
	default:
		return 0.2
	}
}

// HighThreatCutoff is the threat level above which defensive plays earn a bonus.
const HighThreatCutoff = 0.6

// Base scoring.
const (
	CardReductionWeight = 10.0 // per card shed
	DefensiveBonus      = 15.0 // plays that hit the next player, under high threat
	CounterBonus        = 25.0 // red jack cancelling a black-jack pickup
)

// Special-card bonuses: a fixed part plus a part scaled by the relevant
// context signal (next-opponent threat for attacks, opportunity for aces).
const (
	TwoBonus          = 8.0
	TwoThreatBonus    = 12.0
	SevenBonus        = 6.0
	SevenThreatBonus  = 10.0
	BlackJackBonus    = 10.0
	BlackJackThreat   = 15.0
	QueenBonus        = 4.0
	QueenThreatBonus  = 6.0
	AceBonus          = 4.0
	AceOpportunityMul = 8.0
)

// Quirk magnitudes.
const (
	HoardSpecialsPenalty = -15.0
	HoardSpecialsHand    = 5 // hoarding only applies above this hand size
	SaveAcesPenalty      = -20.0
	DumpHighCardsBonus   = 10.0
	PreferMultiplesBonus = 8.0 // per extra card
	RandomPlaysNoise     = 8.0
	MisdirectionNoise    = 6.0
)

// BluffWeight scales the Bluffing trait's lift for ordinary plays made while
// specials are held back.
const BluffWeight = 0.15

// Randomness.
const (
	NoiseScale = 10.0 // score units per unit of Personality.Randomness
	NoiseClamp = 2.0  // normal samples are clamped to ±NoiseClamp
)

// Selection policy.
const (
	ChaoticTopChance = 0.7
	SecondBestChance = 0.1
)

// Thinking time.
const (
	DefaultBaseThink = 1200 * time.Millisecond
	MinThink         = 300 * time.Millisecond
	MaxThink         = 6 * time.Second
	NearTieMargin    = 5.0  // candidates within this many points of the best count as ties
	TieComplexity    = 0.15 // extra complexity per near tie
	MaxComplexity    = 2.0
)
