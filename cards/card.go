package cards

import (
	"fmt"
	"strings"
)

// CardFromString creates a card from a string representation
// e.g., "A♠" or "As" or "AS" -> Card{Suit: Spades, Value: Ace}
// e.g., "10h" or "Th" -> Card{Suit: Hearts, Value: Ten}
// The returned card has no ID; IDs are assigned when a deck is built.
func CardFromString(s string) (Card, error) {
	if len(s) < 2 {
		return Card{}, fmt.Errorf("invalid card shorthand: %q", s)
	}

	// Suits may be multi-byte runes, so split on the last rune rather than the last byte.
	runes := []rune(s)
	suitPart := string(runes[len(runes)-1])
	valuePart := string(runes[:len(runes)-1])

	var suit Suit
	switch suitPart {
	case "♠", "s", "S":
		suit = Spades
	case "♥", "h", "H":
		suit = Hearts
	case "♦", "d", "D":
		suit = Diamonds
	case "♣", "c", "C":
		suit = Clubs
	default:
		return Card{}, fmt.Errorf("invalid card suit: %q", suitPart)
	}

	var value Value
	switch strings.ToUpper(valuePart) {
	case "A":
		value = Ace
	case "K":
		value = King
	case "Q":
		value = Queen
	case "J":
		value = Jack
	case "T", "10":
		value = Ten
	case "9":
		value = Nine
	case "8":
		value = Eight
	case "7":
		value = Seven
	case "6":
		value = Six
	case "5":
		value = Five
	case "4":
		value = Four
	case "3":
		value = Three
	case "2":
		value = Two
	default:
		return Card{}, fmt.Errorf("invalid card value: %q", valuePart)
	}

	return Card{Suit: suit, Value: value}, nil
}

// MustParse parses a space separated list of cards and panics on bad input.
// Cards get sequential IDs ("x-1", "x-2", ...) so they can be moved around like dealt cards.
func MustParse(s string) Stack {
	fields := strings.Fields(s)
	stack := make(Stack, 0, len(fields))
	for i, f := range fields {
		c, err := CardFromString(f)
		if err != nil {
			panic(err)
		}
		c.ID = fmt.Sprintf("x-%d", i+1)
		stack = append(stack, c)
	}
	return stack
}

// Suit represents a card suit
type Suit string

const (
	Spades   Suit = "♠"
	Hearts   Suit = "♥"
	Diamonds Suit = "♦"
	Clubs    Suit = "♣"
)

// Suits lists the suits in deck build order.
var Suits = []Suit{Spades, Hearts, Diamonds, Clubs}

// Value represents a card value
type Value string

const (
	Ace   Value = "A"
	King  Value = "K"
	Queen Value = "Q"
	Jack  Value = "J"
	Ten   Value = "T"
	Nine  Value = "9"
	Eight Value = "8"
	Seven Value = "7"
	Six   Value = "6"
	Five  Value = "5"
	Four  Value = "4"
	Three Value = "3"
	Two   Value = "2"
)

// Values lists the values from lowest to highest.
var Values = []Value{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

var valueRanks = map[Value]int{
	Two:   2,
	Three: 3,
	Four:  4,
	Five:  5,
	Six:   6,
	Seven: 7,
	Eight: 8,
	Nine:  9,
	Ten:   10,
	Jack:  11,
	Queen: 12,
	King:  13,
	Ace:   14,
}

// Rank converts a value to its numerical rank (2=2, A=14). Unknown values rank 0.
func (v Value) Rank() int {
	return valueRanks[v]
}

// ValueOfRank is the inverse of Value.Rank.
func ValueOfRank(rank int) Value {
	if rank < 2 || rank > 14 {
		return ""
	}
	return Values[rank-2]
}

// Card represents a playing card. ID is stable for the lifetime of a hand.
type Card struct {
	ID    string
	Suit  Suit
	Value Value
}

// String returns the display string of a card
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Value, c.Suit)
}

// Rank returns the numerical rank of the card (2..14)
func (c Card) Rank() int {
	return c.Value.Rank()
}

// Equals checks if two cards have the same suit and value
func (c Card) Equals(other Card) bool {
	return c.Suit == other.Suit && c.Value == other.Value
}
