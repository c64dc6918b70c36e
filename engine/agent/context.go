package agent

import engine "github.com/jason-s-yu/rachel/engine"

// Context is the phase and threat picture an agent scores plays against.
type Context struct {
	Phase      GamePhase
	TotalCards int // cards in all hands
	HandSize   int // the agent's own hand

	// Threat per active opponent, from ThreatFromHandSize.
	Threats    map[engine.PlayerID]float64
	MaxThreat  float64
	NextID     engine.PlayerID // opponent who acts after us, in the current direction
	NextThreat float64

	// Opportunity in [0, 1]: high when our hand is short and rich in specials.
	Opportunity  float64
	SpecialCount int

	PendingPickup     int
	PendingPickupKind engine.PickupKind
}

// Assess derives the Context for id from g.
func Assess(g *engine.Game, id engine.PlayerID) Context {
	ctx := Context{
		TotalCards:        g.CardsInHands(),
		Threats:           make(map[engine.PlayerID]float64, len(g.Players)),
		PendingPickup:     g.PendingPickup,
		PendingPickupKind: g.PendingPickupKind,
	}
	ctx.Phase = PhaseFromCardsInHands(ctx.TotalCards)

	for i := range g.Players {
		p := &g.Players[i]
		if p.ID == id {
			ctx.HandSize = len(p.Hand)
			for _, c := range p.Hand {
				if c.IsSpecial() {
					ctx.SpecialCount++
				}
			}
			continue
		}
		if g.HasWon(p.ID) {
			continue
		}
		t := ThreatFromHandSize(len(p.Hand))
		ctx.Threats[p.ID] = t
		ctx.MaxThreat = max(ctx.MaxThreat, t)
	}

	if next, ok := nextOpponent(g, id); ok {
		ctx.NextID = next
		ctx.NextThreat = ctx.Threats[next]
	}
	ctx.Opportunity = opportunity(ctx.SpecialCount, ctx.HandSize)
	return ctx
}

// opportunity blends special-card density with how close the hand is to empty.
func opportunity(specials, handSize int) float64 {
	if handSize == 0 {
		return 1
	}
	density := float64(specials) / float64(handSize)
	shortness := 1 - float64(min(handSize, 10))/10
	return min(1, 0.6*density+0.4*shortness)
}

// nextOpponent walks the seats from id in the current direction and returns
// the first player who has not finished.
func nextOpponent(g *engine.Game, id engine.PlayerID) (engine.PlayerID, bool) {
	n := len(g.Players)
	from := g.PlayerIndex(id)
	if from < 0 {
		return "", false
	}
	i := from
	for range n - 1 {
		i = ((i+int(g.Direction))%n + n) % n
		if !g.HasWon(g.Players[i].ID) {
			return g.Players[i].ID, true
		}
	}
	return "", false
}
