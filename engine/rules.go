package engine

// HouseRules holds configurable game rule settings.
type HouseRules struct {
	CardsPerPlayer uint8 // cards dealt to each player; 0 treated as DefaultCardsPerPlayer
	MaxPlayers     uint8 // seats in a game; 0 treated as MaxPlayers
	DrawReserve    uint8 // cards kept out of the deal; CardsPerPlayer shrinks to honour it
}

// DefaultHouseRules returns the standard Rachel house rules.
func DefaultHouseRules() HouseRules {
	return HouseRules{
		CardsPerPlayer: DefaultCardsPerPlayer,
		MaxPlayers:     MaxPlayers,
		DrawReserve:    10,
	}
}

// maxPlayers returns the effective seat limit.
func (r *HouseRules) maxPlayers() int {
	if r.MaxPlayers == 0 || r.MaxPlayers > MaxPlayers {
		return MaxPlayers
	}
	return int(r.MaxPlayers)
}

// cardsPerPlayer returns how many cards each of n players receives.
// The count shrinks so at least DrawReserve cards (and always one card
// for the first discard) stay out of the hands.
func (r *HouseRules) cardsPerPlayer(n int) int {
	per := int(r.CardsPerPlayer)
	if per == 0 {
		per = DefaultCardsPerPlayer
	}
	reserve := int(r.DrawReserve)
	if reserve < 1 {
		reserve = 1
	}
	for per > 1 && per*n > DeckSize-reserve {
		per--
	}
	return per
}
