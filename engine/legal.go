package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// ActionKind describes what kind of action a player submits.
type ActionKind uint8

const (
	ActionPlay     ActionKind = iota // 0: play one or more same-rank cards
	ActionDraw                       // 1: draw one card, or the pending pickup
	ActionNominate                   // 2: choose a suit after an ace
)

func (k ActionKind) String() string {
	switch k {
	case ActionPlay:
		return "play"
	case ActionDraw:
		return "draw"
	case ActionNominate:
		return "nominate"
	}
	return "unknown"
}

// Action is one player decision. Indices are hand positions in play order:
// the last one becomes the current card. Suit is only read for ActionNominate.
type Action struct {
	Kind    ActionKind `json:"kind"`
	Indices []int      `json:"indices,omitempty"`
	Suit    uint8      `json:"suit,omitempty"`
}

// PlayAction builds an ActionPlay for the given hand indices.
func PlayAction(indices ...int) Action { return Action{Kind: ActionPlay, Indices: indices} }

// DrawAction builds an ActionDraw.
func DrawAction() Action { return Action{Kind: ActionDraw} }

// NominateAction builds an ActionNominate for suit.
func NominateAction(suit uint8) Action { return Action{Kind: ActionNominate, Suit: suit} }

func (a Action) String() string {
	switch a.Kind {
	case ActionPlay:
		parts := make([]string, len(a.Indices))
		for i, idx := range a.Indices {
			parts[i] = strconv.Itoa(idx)
		}
		return "play[" + strings.Join(parts, ",") + "]"
	case ActionNominate:
		return "nominate(" + SuitName(a.Suit) + ")"
	}
	return a.Kind.String()
}

// Play is one legal card selection: hand indices in play order and the cards
// they point at.
type Play struct {
	Indices []int
	Cards   []Card
}

// Action converts the play into a submittable Action.
func (p Play) Action() Action { return PlayAction(p.Indices...) }

// Rank returns the shared rank of the played cards.
func (p Play) Rank() uint8 { return p.Cards[0].Rank() }

// Last returns the card that becomes current after the play.
func (p Play) Last() Card { return p.Cards[len(p.Cards)-1] }

// checkTurn verifies the game is running and id is the acting player.
// Returns the player's seat index.
func (g *Game) checkTurn(id PlayerID) (int, error) {
	if g.Status != StatusPlaying {
		return -1, ruleErr(KindGameNotInProgress, "game is %s", g.Status)
	}
	idx := g.PlayerIndex(id)
	if idx < 0 {
		return -1, ruleErr(KindUnknownPlayer, "player %s is not seated", id)
	}
	if idx != g.CurrentPlayer {
		return -1, ruleErr(KindNotYourTurn, "it is %s's turn", g.Players[g.CurrentPlayer].ID)
	}
	return idx, nil
}

// canLead reports whether c may be the first card of a play in the current state.
func (g *Game) canLead(c Card) bool {
	if g.PendingPickup > 0 {
		switch g.PendingPickupKind {
		case PickupTwos:
			return c.Rank() == RankTwo
		case PickupBlackJacks:
			// Black jacks extend the pickup; red jacks counter it.
			return c.Rank() == RankJack
		}
		return false
	}
	if c.Rank() == RankAce {
		return true
	}
	if suit, ok := g.Nomination.Suit(); ok {
		return c.Suit() == suit
	}
	top := g.CurrentCard()
	return c.Suit() == top.Suit() || c.Rank() == top.Rank()
}

// checkPlay validates a card selection for the player at seat idx and returns
// the selected cards in play order.
func (g *Game) checkPlay(idx int, indices []int) ([]Card, error) {
	if g.Nomination == NominationPending {
		return nil, ruleErr(KindMustResolvePending, "a suit must be nominated first")
	}
	hand := g.Players[idx].Hand
	if len(indices) == 0 {
		return nil, ruleErr(KindInvalidCards, "no cards selected")
	}
	seen := make(map[int]bool, len(indices))
	cards := make([]Card, len(indices))
	for i, hi := range indices {
		if hi < 0 || hi >= len(hand) {
			return nil, ruleErr(KindInvalidCards, "hand index %d out of range (hand size %d)", hi, len(hand))
		}
		if seen[hi] {
			return nil, ruleErr(KindInvalidCards, "hand index %d selected twice", hi)
		}
		seen[hi] = true
		cards[i] = hand[hi]
	}
	for _, c := range cards[1:] {
		if c.Rank() != cards[0].Rank() {
			return nil, ruleErr(KindInvalidCards, "cards %v do not share a rank", cards)
		}
	}
	if !g.canLead(cards[0]) {
		if g.PendingPickup > 0 {
			return nil, ruleErr(KindMustResolvePending, "%d-card %s pickup pending; %s cannot answer it",
				g.PendingPickup, g.PendingPickupKind, cards[0])
		}
		return nil, ruleErr(KindInvalidCards, "%s does not match %s", cards[0], g.matchTarget())
	}
	return cards, nil
}

// matchTarget describes what the next card must match, for error messages.
func (g *Game) matchTarget() string {
	if suit, ok := g.Nomination.Suit(); ok {
		return fmt.Sprintf("nominated %s", SuitName(suit))
	}
	return g.CurrentCard().String()
}

// ValidPlays enumerates every legal play for id: each card that may lead,
// followed by every ordered selection of the remaining cards of its rank.
// Returns nil when it is not id's turn or a nomination is pending.
func (g *Game) ValidPlays(id PlayerID) []Play {
	idx, err := g.checkTurn(id)
	if err != nil || g.Nomination == NominationPending {
		return nil
	}
	hand := g.Players[idx].Hand

	var byRank [RankKing + 1][]int
	for i, c := range hand {
		byRank[c.Rank()] = append(byRank[c.Rank()], i)
	}

	var plays []Play
	for _, group := range byRank {
		for _, first := range group {
			if !g.canLead(hand[first]) {
				continue
			}
			used := make([]bool, len(hand))
			used[first] = true
			extendPlays(hand, group, []int{first}, used, &plays)
		}
	}
	return plays
}

// extendPlays records seq and every ordered extension of it drawn from group.
func extendPlays(hand []Card, group, seq []int, used []bool, out *[]Play) {
	p := Play{Indices: append([]int(nil), seq...), Cards: make([]Card, len(seq))}
	for i, hi := range seq {
		p.Cards[i] = hand[hi]
	}
	*out = append(*out, p)

	for _, hi := range group {
		if used[hi] {
			continue
		}
		used[hi] = true
		extendPlays(hand, group, append(seq, hi), used, out)
		used[hi] = false
	}
}

// HasValidPlay reports whether id has at least one legal play.
func (g *Game) HasValidPlay(id PlayerID) bool {
	idx, err := g.checkTurn(id)
	if err != nil || g.Nomination == NominationPending {
		return false
	}
	for _, c := range g.Players[idx].Hand {
		if g.canLead(c) {
			return true
		}
	}
	return false
}

// CanDraw reports whether drawing is a legal action for id: either a pickup
// is pending or no card can be played.
func (g *Game) CanDraw(id PlayerID) bool {
	if _, err := g.checkTurn(id); err != nil || g.Nomination == NominationPending {
		return false
	}
	return g.PendingPickup > 0 || !g.HasValidPlay(id)
}

// LegalActions lists every action id may submit right now. It is empty when
// it is not id's turn.
func (g *Game) LegalActions(id PlayerID) []Action {
	if _, err := g.checkTurn(id); err != nil {
		return nil
	}
	if g.Nomination == NominationPending {
		actions := make([]Action, 0, NumSuits)
		for s := uint8(0); s < NumSuits; s++ {
			actions = append(actions, NominateAction(s))
		}
		return actions
	}
	plays := g.ValidPlays(id)
	actions := make([]Action, 0, len(plays)+1)
	for _, p := range plays {
		actions = append(actions, p.Action())
	}
	if g.PendingPickup > 0 || len(plays) == 0 {
		actions = append(actions, DrawAction())
	}
	return actions
}

// IsLegal reports whether a is currently legal for id.
func (g *Game) IsLegal(id PlayerID, a Action) bool {
	idx, err := g.checkTurn(id)
	if err != nil {
		return false
	}
	switch a.Kind {
	case ActionPlay:
		_, err := g.checkPlay(idx, a.Indices)
		return err == nil
	case ActionDraw:
		return g.CanDraw(id)
	case ActionNominate:
		return g.Nomination == NominationPending && a.Suit < NumSuits
	}
	return false
}
