package engine

// CheckInvariants verifies the structural invariants of the game. It is run
// after every transition; a failure is always an engine bug.
func (g *Game) CheckInvariants() error {
	total := len(g.Deck) + len(g.Discard) + g.CardsInHands()
	if total != DeckSize {
		return ruleErr(KindInternalConsistency, "card count %d, want %d", total, DeckSize)
	}

	seen := make(map[Card]bool, DeckSize)
	check := func(c Card) error {
		if c.Suit() >= NumSuits || c.Rank() > RankKing {
			return ruleErr(KindInternalConsistency, "malformed card %#x", uint8(c))
		}
		if seen[c] {
			return ruleErr(KindInternalConsistency, "duplicate card %s", c)
		}
		seen[c] = true
		return nil
	}
	for _, c := range g.Deck {
		if err := check(c); err != nil {
			return err
		}
	}
	for _, c := range g.Discard {
		if err := check(c); err != nil {
			return err
		}
	}
	for i := range g.Players {
		for _, c := range g.Players[i].Hand {
			if err := check(c); err != nil {
				return err
			}
		}
	}

	if (g.PendingPickup > 0) != (g.PendingPickupKind != PickupNone) {
		return ruleErr(KindInternalConsistency, "pending pickup %d with kind %s", g.PendingPickup, g.PendingPickupKind)
	}
	if g.PendingPickup < 0 || g.PendingSkips < 0 {
		return ruleErr(KindInternalConsistency, "negative pending counters (%d, %d)", g.PendingPickup, g.PendingSkips)
	}

	winners := make(map[PlayerID]bool, len(g.Winners))
	for _, id := range g.Winners {
		if winners[id] {
			return ruleErr(KindInternalConsistency, "winner %s listed twice", id)
		}
		winners[id] = true
		if p := g.Player(id); p == nil || len(p.Hand) != 0 {
			return ruleErr(KindInternalConsistency, "winner %s still holds cards", id)
		}
	}

	switch g.Status {
	case StatusPlaying:
		if len(g.Discard) == 0 {
			return ruleErr(KindInternalConsistency, "no current card while playing")
		}
		if g.CurrentPlayer < 0 || g.CurrentPlayer >= len(g.Players) {
			return ruleErr(KindInternalConsistency, "current player %d out of range", g.CurrentPlayer)
		}
		if !g.isActive(g.CurrentPlayer) {
			return ruleErr(KindInternalConsistency, "current player %s has already finished", g.Players[g.CurrentPlayer].ID)
		}
	case StatusWaiting:
		if g.Nomination != NominationNone || g.PendingPickup != 0 {
			return ruleErr(KindInternalConsistency, "effects pending before the deal")
		}
	}
	return nil
}
