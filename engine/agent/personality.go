// Package agent implements the computer players: a fixed catalogue of
// personalities and a heuristic decision engine that scores the rules
// engine's legal plays through a personality.
package agent

import "fmt"

// Type is the personality archetype.
type Type uint8

const (
	Aggressive Type = iota
	Conservative
	Strategic
	Chaotic
	Adaptive
	Bluffer

	numTypes
)

var typeNames = [numTypes]string{"aggressive", "conservative", "strategic", "chaotic", "adaptive", "bluffer"}

func (t Type) String() string {
	if t < numTypes {
		return typeNames[t]
	}
	return "unknown"
}

// ParseType parses a personality name as produced by Type.String.
func ParseType(s string) (Type, error) {
	for i, name := range typeNames {
		if s == name {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("unknown personality %q", s)
}

// Types returns every archetype in catalogue order.
func Types() []Type {
	out := make([]Type, numTypes)
	for i := range out {
		out[i] = Type(i)
	}
	return out
}

// Traits describe temperament. Every field is in [0, 1].
type Traits struct {
	Aggression    float64
	Patience      float64
	RiskTolerance float64
	CardCounting  float64
	Bluffing      float64
	Adaptability  float64
	SpecialFocus  float64
}

// Weights scale how much each property of a play matters. Every field is in [0, 1].
type Weights struct {
	CardValue      float64
	HandSize       float64
	OpponentImpact float64
	SelfProtection float64
	SpecialEffects float64
	SuitControl    float64
}

// Quirks is a set of discrete behavioural modifiers.
type Quirks uint8

const (
	HoardSpecials   Quirks = 1 << iota // holds special cards back while the hand is large
	RandomPlays                        // adds zero-mean noise to every score
	SaveAces                           // keeps aces until the end
	DumpHighCards                      // sheds face cards early
	PreferMultiples                    // favours multi-card plays
	Misdirection                       // plays ordinary cards erratically before the late game
)

// Has reports whether every quirk in q is set.
func (s Quirks) Has(q Quirks) bool { return s&q == q }

func (s Quirks) String() string {
	names := []string{"hoard_specials", "random_plays", "save_aces", "dump_high_cards", "prefer_multiples", "misdirection"}
	out := ""
	for i, name := range names {
		if s&(1<<i) != 0 {
			if out != "" {
				out += "|"
			}
			out += name
		}
	}
	if out == "" {
		return "none"
	}
	return out
}

// Personality is immutable configuration for one computer player.
type Personality struct {
	Type               Type
	Traits             Traits
	Weights            Weights
	Quirks             Quirks
	DifficultyModifier float64 // scales thinking time
	Randomness         float64 // scales score noise; highest for Chaotic, lowest for Strategic
}

var catalogue = [numTypes]Personality{
	Aggressive: {
		Type:               Aggressive,
		Traits:             Traits{Aggression: 0.9, Patience: 0.2, RiskTolerance: 0.8, CardCounting: 0.4, Bluffing: 0.3, Adaptability: 0.4, SpecialFocus: 0.8},
		Weights:            Weights{CardValue: 0.5, HandSize: 0.7, OpponentImpact: 0.9, SelfProtection: 0.3, SpecialEffects: 0.8, SuitControl: 0.4},
		Quirks:             DumpHighCards | PreferMultiples,
		DifficultyModifier: 0.8,
		Randomness:         0.3,
	},
	Conservative: {
		Type:               Conservative,
		Traits:             Traits{Aggression: 0.2, Patience: 0.9, RiskTolerance: 0.2, CardCounting: 0.6, Bluffing: 0.1, Adaptability: 0.4, SpecialFocus: 0.4},
		Weights:            Weights{CardValue: 0.6, HandSize: 0.5, OpponentImpact: 0.3, SelfProtection: 0.9, SpecialEffects: 0.4, SuitControl: 0.6},
		Quirks:             HoardSpecials | SaveAces,
		DifficultyModifier: 1.2,
		Randomness:         0.2,
	},
	Strategic: {
		Type:               Strategic,
		Traits:             Traits{Aggression: 0.5, Patience: 0.7, RiskTolerance: 0.5, CardCounting: 0.9, Bluffing: 0.3, Adaptability: 0.7, SpecialFocus: 0.6},
		Weights:            Weights{CardValue: 0.7, HandSize: 0.6, OpponentImpact: 0.7, SelfProtection: 0.7, SpecialEffects: 0.7, SuitControl: 0.8},
		Quirks:             SaveAces,
		DifficultyModifier: 1.4,
		Randomness:         0.1,
	},
	Chaotic: {
		Type:               Chaotic,
		Traits:             Traits{Aggression: 0.6, Patience: 0.2, RiskTolerance: 0.9, CardCounting: 0.1, Bluffing: 0.5, Adaptability: 0.3, SpecialFocus: 0.5},
		Weights:            Weights{CardValue: 0.4, HandSize: 0.4, OpponentImpact: 0.5, SelfProtection: 0.2, SpecialEffects: 0.6, SuitControl: 0.3},
		Quirks:             RandomPlays,
		DifficultyModifier: 0.6,
		Randomness:         0.8,
	},
	Adaptive: {
		Type:               Adaptive,
		Traits:             Traits{Aggression: 0.5, Patience: 0.5, RiskTolerance: 0.5, CardCounting: 0.7, Bluffing: 0.3, Adaptability: 0.9, SpecialFocus: 0.5},
		Weights:            Weights{CardValue: 0.6, HandSize: 0.6, OpponentImpact: 0.6, SelfProtection: 0.6, SpecialEffects: 0.6, SuitControl: 0.6},
		Quirks:             PreferMultiples,
		DifficultyModifier: 1.1,
		Randomness:         0.25,
	},
	Bluffer: {
		Type:               Bluffer,
		Traits:             Traits{Aggression: 0.6, Patience: 0.4, RiskTolerance: 0.7, CardCounting: 0.5, Bluffing: 0.9, Adaptability: 0.5, SpecialFocus: 0.6},
		Weights:            Weights{CardValue: 0.5, HandSize: 0.5, OpponentImpact: 0.7, SelfProtection: 0.4, SpecialEffects: 0.6, SuitControl: 0.5},
		Quirks:             Misdirection | DumpHighCards,
		DifficultyModifier: 1.0,
		Randomness:         0.4,
	},
}

// PersonalityFor returns the catalogue entry for t. Unknown types fall back
// to Strategic.
func PersonalityFor(t Type) Personality {
	if t >= numTypes {
		return catalogue[Strategic]
	}
	return catalogue[t]
}

// RandomPersonality picks a catalogue entry uniformly.
func RandomPersonality(r Rand) Personality {
	return catalogue[r.IntN(int(numTypes))]
}
