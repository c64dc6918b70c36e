package engine

import "sort"

// Standing is one player's final (or provisional) position.
type Standing struct {
	ID        PlayerID
	Place     int // 1-based
	Finished  bool
	CardsLeft int
	HandValue int
}

// handValue returns the sum of card values in a hand.
func handValue(hand []Card) int {
	total := 0
	for _, c := range hand {
		total += c.Value()
	}
	return total
}

// Standings ranks every player: winners in finishing order first, then the
// players still holding cards by fewest cards, then lowest hand value, then
// seat order.
func (g *Game) Standings() []Standing {
	out := make([]Standing, 0, len(g.Players))
	for _, id := range g.Winners {
		out = append(out, Standing{ID: id, Finished: true})
	}

	rest := make([]Standing, 0, len(g.Players)-len(g.Winners))
	for i := range g.Players {
		p := &g.Players[i]
		if g.HasWon(p.ID) {
			continue
		}
		rest = append(rest, Standing{ID: p.ID, CardsLeft: len(p.Hand), HandValue: handValue(p.Hand)})
	}
	sort.SliceStable(rest, func(i, j int) bool {
		if rest[i].CardsLeft != rest[j].CardsLeft {
			return rest[i].CardsLeft < rest[j].CardsLeft
		}
		return rest[i].HandValue < rest[j].HandValue
	})

	out = append(out, rest...)
	for i := range out {
		out[i].Place = i + 1
	}
	return out
}
