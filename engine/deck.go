package engine

// NewDeck returns the 52 cards of a standard deck in suit-major order.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for suit := uint8(0); suit < NumSuits; suit++ {
		for rank := RankAce; rank <= RankKing; rank++ {
			deck = append(deck, NewCard(suit, rank))
		}
	}
	return deck
}

// shuffle permutes cards in place with Fisher-Yates, driven by the game RNG.
func (g *Game) shuffle(cards []Card) {
	for i := len(cards) - 1; i > 0; i-- {
		j := int(g.randN(uint64(i + 1)))
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// popDeck removes the top card of the draw pile, reshuffling first if it is empty.
func (g *Game) popDeck() (Card, bool) {
	if len(g.Deck) == 0 {
		g.reshuffle()
	}
	if len(g.Deck) == 0 {
		return EmptyCard, false
	}
	top := g.Deck[len(g.Deck)-1]
	g.Deck = g.Deck[:len(g.Deck)-1]
	return top, true
}

// reshuffle moves all discard cards except the current card back into the
// draw pile and shuffles them.
func (g *Game) reshuffle() {
	// Need at least 2 cards in discard (one stays, rest go to the draw pile).
	if len(g.Discard) <= 1 {
		return
	}
	top := g.Discard[len(g.Discard)-1]
	g.Deck = append(g.Deck, g.Discard[:len(g.Discard)-1]...)
	g.Discard = append(g.Discard[:0], top)
	g.shuffle(g.Deck)
}

// drawable returns how many cards can be drawn without touching the current card.
func (g *Game) drawable() int {
	n := len(g.Deck)
	if len(g.Discard) > 1 {
		n += len(g.Discard) - 1
	}
	return n
}
