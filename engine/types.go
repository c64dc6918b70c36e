package engine

import (
	"fmt"
	"strings"
)

// Suit constants: packed into upper 4 bits of Card.
const (
	SuitHearts   uint8 = 0
	SuitDiamonds uint8 = 1
	SuitClubs    uint8 = 2
	SuitSpades   uint8 = 3
)

// NumSuits is the number of suits in a standard deck.
const NumSuits = 4

// Rank constants: packed into lower 4 bits of Card.
const (
	RankAce   uint8 = 0
	RankTwo   uint8 = 1
	RankThree uint8 = 2
	RankFour  uint8 = 3
	RankFive  uint8 = 4
	RankSix   uint8 = 5
	RankSeven uint8 = 6
	RankEight uint8 = 7
	RankNine  uint8 = 8
	RankTen   uint8 = 9
	RankJack  uint8 = 10
	RankQueen uint8 = 11
	RankKing  uint8 = 12
)

// Card is a packed uint8: upper 4 bits = suit, lower 4 bits = rank.
type Card uint8

// EmptyCard represents the absence of a card.
const EmptyCard Card = 0xFF

// NewCard constructs a Card from suit and rank.
func NewCard(suit, rank uint8) Card {
	return Card((suit << 4) | (rank & 0x0F))
}

// Suit returns the suit bits (upper 4).
func (c Card) Suit() uint8 { return uint8(c) >> 4 }

// Rank returns the rank bits (lower 4).
func (c Card) Rank() uint8 { return uint8(c) & 0x0F }

// IsRed reports whether the card is a heart or a diamond.
func (c Card) IsRed() bool {
	s := c.Suit()
	return s == SuitHearts || s == SuitDiamonds
}

// IsBlack reports whether the card is a club or a spade.
func (c Card) IsBlack() bool {
	s := c.Suit()
	return s == SuitClubs || s == SuitSpades
}

// IsBlackJack reports whether the card is the jack of clubs or spades.
func (c Card) IsBlackJack() bool { return c.Rank() == RankJack && c.IsBlack() }

// IsRedJack reports whether the card is the jack of hearts or diamonds.
func (c Card) IsRedJack() bool { return c.Rank() == RankJack && c.IsRed() }

// IsSpecial returns true for ranks that carry an effect when played:
// twos, sevens, jacks, queens and aces.
//
// Red jacks count as special because they cancel a black-jack pickup.
func (c Card) IsSpecial() bool {
	switch c.Rank() {
	case RankTwo, RankSeven, RankJack, RankQueen, RankAce:
		return true
	}
	return false
}

// Value returns the face value of the card, used for hand strength.
//   - Two–Ten → 2–10
//   - Jack → 11, Queen → 12, King → 13
//   - Ace → 14
func (c Card) Value() int {
	r := c.Rank()
	switch {
	case r == RankAce:
		return 14
	case r <= RankKing:
		return int(r) + 1
	}
	// EmptyCard or malformed
	return 0
}

var rankNames = [...]string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}
var suitSymbols = [...]string{"♥", "♦", "♣", "♠"}
var suitLetters = [...]string{"H", "D", "C", "S"}
var suitNames = [...]string{"hearts", "diamonds", "clubs", "spades"}

// RankName returns the short rank label ("A", "2" … "K").
func RankName(rank uint8) string {
	if int(rank) < len(rankNames) {
		return rankNames[rank]
	}
	return "?"
}

// SuitName returns the lowercase suit name ("hearts" …).
func SuitName(suit uint8) string {
	if int(suit) < len(suitNames) {
		return suitNames[suit]
	}
	return "?"
}

// String renders the card as rank followed by suit symbol, e.g. "10♥".
func (c Card) String() string {
	if c == EmptyCard {
		return "--"
	}
	s := c.Suit()
	if int(s) >= len(suitSymbols) {
		return "??"
	}
	return RankName(c.Rank()) + suitSymbols[s]
}

// ParseCard parses a card written as rank then suit letter, e.g. "QS", "10h", "2♥".
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return EmptyCard, fmt.Errorf("card %q too short", s)
	}
	suit, rankPart, ok := splitSuit(s)
	if !ok {
		return EmptyCard, fmt.Errorf("card %q has no recognizable suit", s)
	}
	rankPart = strings.ToUpper(rankPart)
	if rankPart == "T" {
		rankPart = "10"
	}
	for r, name := range rankNames {
		if name == rankPart {
			return NewCard(suit, uint8(r)), nil
		}
	}
	return EmptyCard, fmt.Errorf("card %q has unknown rank %q", s, rankPart)
}

// ParseSuit parses a suit given as a name, letter or symbol.
func ParseSuit(s string) (uint8, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i := range suitNames {
		if s == suitNames[i] || s == strings.ToLower(suitLetters[i]) || s == suitSymbols[i] {
			return uint8(i), nil
		}
	}
	return 0, fmt.Errorf("unknown suit %q", s)
}

func splitSuit(s string) (suit uint8, rest string, ok bool) {
	for i, sym := range suitSymbols {
		if strings.HasSuffix(s, sym) {
			return uint8(i), strings.TrimSuffix(s, sym), true
		}
	}
	last := strings.ToUpper(s[len(s)-1:])
	for i, l := range suitLetters {
		if last == l {
			return uint8(i), s[:len(s)-1], true
		}
	}
	return 0, "", false
}

// ---------------------------------------------------------------------------
// Enumerations
// ---------------------------------------------------------------------------

// Direction is the order in which turns rotate.
type Direction int8

const (
	Clockwise        Direction = 1
	CounterClockwise Direction = -1
)

func (d Direction) String() string {
	if d == CounterClockwise {
		return "counterclockwise"
	}
	return "clockwise"
}

// PickupKind identifies which rank built up the pending pickup.
type PickupKind uint8

const (
	PickupNone       PickupKind = iota // 0
	PickupTwos                         // 1
	PickupBlackJacks                   // 2
)

func (k PickupKind) String() string {
	switch k {
	case PickupTwos:
		return "twos"
	case PickupBlackJacks:
		return "black_jacks"
	}
	return "none"
}

// Nomination tracks the suit chosen after an ace.
type Nomination uint8

const (
	NominationNone    Nomination = iota // 0
	NominationPending                   // 1: an ace was played, suit not chosen yet
	NominationHearts                    // 2
	NominationDiamonds                  // 3
	NominationClubs                     // 4
	NominationSpades                    // 5
)

// NominationFor returns the nomination constant for a suit.
func NominationFor(suit uint8) Nomination { return NominationHearts + Nomination(suit) }

// Suit returns the nominated suit, if one has been chosen.
func (n Nomination) Suit() (uint8, bool) {
	if n >= NominationHearts && n <= NominationSpades {
		return uint8(n - NominationHearts), true
	}
	return 0, false
}

func (n Nomination) String() string {
	switch n {
	case NominationNone:
		return "none"
	case NominationPending:
		return "pending"
	}
	s, _ := n.Suit()
	return SuitName(s)
}

// Status is the lifecycle stage of a game.
type Status uint8

const (
	StatusWaiting  Status = iota // 0
	StatusPlaying                // 1
	StatusFinished               // 2
)

func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusFinished:
		return "finished"
	}
	return "waiting"
}
