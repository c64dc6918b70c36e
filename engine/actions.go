package engine

import "slices"

// Apply dispatches a tagged action. Returns a *RuleError if the action is
// illegal; the game is left unchanged in that case.
func (g *Game) Apply(id PlayerID, a Action) error {
	switch a.Kind {
	case ActionPlay:
		return g.Play(id, a.Indices)
	case ActionDraw:
		return g.Draw(id)
	case ActionNominate:
		return g.NominateSuit(id, a.Suit)
	}
	return ruleErr(KindInvalidCards, "unknown action kind %d", a.Kind)
}

// Play plays the cards at the given hand indices, in order. The last card
// becomes the current card. Effects of the played rank are applied, the turn
// advances (unless an ace now needs a nomination) and a win is recorded when
// the hand empties.
func (g *Game) Play(id PlayerID, indices []int) error {
	idx, err := g.checkTurn(id)
	if err != nil {
		return err
	}
	cards, err := g.checkPlay(idx, indices)
	if err != nil {
		return err
	}

	return g.commit(func(next *Game) error {
		p := &next.Players[idx]
		p.Hand = removeIndices(p.Hand, indices)
		p.CardsPlayed += len(cards)
		next.Discard = append(next.Discard, cards...)
		next.Nomination = NominationNone

		next.applyEffects(cards)

		// An ace keeps the turn with the player until the suit is nominated.
		if next.Nomination == NominationPending {
			return nil
		}
		next.completeTurn(idx)
		return nil
	})
}

// Draw takes max(1, PendingPickup) cards from the draw pile, clears the
// pending pickup and advances the turn. Drawing is only legal while a pickup
// is pending or when the player has no legal play.
func (g *Game) Draw(id PlayerID) error {
	idx, err := g.checkTurn(id)
	if err != nil {
		return err
	}
	if g.Nomination == NominationPending {
		return ruleErr(KindMustResolvePending, "a suit must be nominated first")
	}
	if g.PendingPickup == 0 && g.HasValidPlay(id) {
		return ruleErr(KindMustPlay, "a legal play is available")
	}

	count := max(1, g.PendingPickup)
	if avail := g.drawable(); avail < count {
		return ruleErr(KindInternalConsistency, "need %d cards but only %d can be drawn", count, avail)
	}

	return g.commit(func(next *Game) error {
		p := &next.Players[idx]
		for i := 0; i < count; i++ {
			c, ok := next.popDeck()
			if !ok {
				return ruleErr(KindInternalConsistency, "draw pile exhausted after %d of %d cards", i, count)
			}
			p.Hand = append(p.Hand, c)
		}
		p.CardsDrawn += count
		next.PendingPickup = 0
		next.PendingPickupKind = PickupNone
		next.completeTurn(idx)
		return nil
	})
}

// NominateSuit resolves a pending ace nomination. Only the player who played
// the ace may nominate; their turn then completes and play moves on.
func (g *Game) NominateSuit(id PlayerID, suit uint8) error {
	idx, err := g.checkTurn(id)
	if err != nil {
		return err
	}
	if g.Nomination != NominationPending {
		return ruleErr(KindNoNominationPending, "no ace is waiting for a suit")
	}
	if suit >= NumSuits {
		return ruleErr(KindInvalidCards, "unknown suit %d", suit)
	}
	return g.commit(func(next *Game) error {
		next.Nomination = NominationFor(suit)
		next.completeTurn(idx)
		return nil
	})
}

// ---------------------------------------------------------------------------
// Effects and turn advancement
// ---------------------------------------------------------------------------

// applyEffects applies the effect of the played rank. Every card in a play
// shares a rank, so only that rank's row of the effect table fires.
func (g *Game) applyEffects(cards []Card) {
	n := len(cards)
	switch cards[0].Rank() {
	case RankTwo:
		g.PendingPickup += 2 * n
		g.PendingPickupKind = PickupTwos

	case RankSeven:
		g.PendingSkips += n

	case RankJack:
		// Resolved card by card: black jacks add five, red jacks cancel five
		// of a black-jack pickup and are plain cards otherwise.
		for _, c := range cards {
			switch {
			case c.IsBlack():
				g.PendingPickup += 5
				g.PendingPickupKind = PickupBlackJacks
			case g.PendingPickupKind == PickupBlackJacks:
				g.PendingPickup = max(0, g.PendingPickup-5)
				if g.PendingPickup == 0 {
					g.PendingPickupKind = PickupNone
				}
			}
		}

	case RankQueen:
		if n%2 == 1 {
			g.Direction = -g.Direction
		}

	case RankAce:
		g.Nomination = NominationPending
	}
}

// completeTurn closes the turn of the player at seat idx: records a win if
// their hand is empty, finishes the game when one active player is left, and
// otherwise moves the turn on.
func (g *Game) completeTurn(idx int) {
	g.TurnNumber++
	g.Players[idx].TurnsTaken++

	if len(g.Players[idx].Hand) == 0 && !g.HasWon(g.Players[idx].ID) {
		g.Winners = append(g.Winners, g.Players[idx].ID)
	}
	if g.activeCount() <= 1 {
		g.Status = StatusFinished
		g.PendingSkips = 0
		return
	}
	g.advanceTurn()
}

// advanceTurn moves the turn 1 + PendingSkips steps in Direction over active
// players, then clears PendingSkips.
func (g *Game) advanceTurn() {
	steps := 1 + g.PendingSkips
	g.PendingSkips = 0
	for s := 0; s < steps; s++ {
		g.CurrentPlayer = g.nextActive(g.CurrentPlayer)
	}
}

// nextActive returns the next active seat after from in the current direction.
func (g *Game) nextActive(from int) int {
	n := len(g.Players)
	i := from
	for range n {
		i = ((i+int(g.Direction))%n + n) % n
		if g.isActive(i) {
			return i
		}
	}
	return from
}

// activeCount returns the number of players still in the rotation.
func (g *Game) activeCount() int {
	n := 0
	for i := range g.Players {
		if g.isActive(i) {
			n++
		}
	}
	return n
}

// removeIndices returns hand without the cards at the given positions,
// preserving the order of the rest.
func removeIndices(hand []Card, indices []int) []Card {
	drop := slices.Clone(indices)
	slices.Sort(drop)
	out := make([]Card, 0, len(hand)-len(drop))
	for i, c := range hand {
		if _, found := slices.BinarySearch(drop, i); !found {
			out = append(out, c)
		}
	}
	return out
}
