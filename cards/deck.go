package cards

import (
	"errors"
	"fmt"
	"math/rand"
)

// DeckSize is the number of cards in a standard deck.
const DeckSize = 52

// ErrDeckExhausted is returned when a deal asks for more cards than remain.
var ErrDeckExhausted = errors.New("deck exhausted")

// NewDeck52 creates a standard deck of 52 cards, IDs card-1..card-52
func NewDeck52() Stack {
	deck := make(Stack, 0, DeckSize)
	id := 0
	for _, suit := range Suits {
		for _, value := range Values {
			id++
			deck.AddCard(Card{
				ID:    fmt.Sprintf("card-%d", id),
				Suit:  suit,
				Value: value,
			})
		}
	}

	return deck
}

// Shuffle shuffles the stack in place (Fisher-Yates)
func (s *Stack) Shuffle(r *rand.Rand) {
	cards := *s
	for i := len(cards) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// Deal removes count cards from the top of the stack and returns them.
// It never truncates: if fewer than count remain the stack is left untouched.
func (s *Stack) Deal(count int) (Stack, error) {
	if count < 0 {
		return nil, fmt.Errorf("cannot deal %d cards", count)
	}
	if count > len(*s) {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrDeckExhausted, count, len(*s))
	}

	return s.DealCards(count), nil
}
