package agent

import "time"

// ThinkTime returns the advisory delay before a decision becomes visible.
// ranked must be sorted best first. The result is clamped to [MinThink, MaxThink].
func ThinkTime(base time.Duration, p Personality, ranked []Candidate, r Rand) time.Duration {
	if base <= 0 {
		base = DefaultBaseThink
	}

	complexity := 1.0
	if len(ranked) > 1 {
		best := ranked[0].Score
		for _, c := range ranked[1:] {
			if best-c.Score <= NearTieMargin {
				complexity += TieComplexity
			}
		}
	}
	complexity = min(complexity, MaxComplexity)

	patience := 0.75 + 0.5*p.Traits.Patience
	adaptability := 0.9 + 0.2*p.Traits.Adaptability
	jitter := 0.8 + 0.4*r.Float64()

	d := float64(base) * p.DifficultyModifier * complexity * patience * adaptability * jitter
	return max(MinThink, min(MaxThink, time.Duration(d)))
}
