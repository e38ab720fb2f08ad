package cards

import "strings"

// Stack represents an ordered pile of cards; index 0 is the top
type Stack []Card

// NewStack creates a new stack with the given cards
func NewStack(cards ...Card) Stack {
	return Stack(cards)
}

// DealCards removes count cards from the top. Callers must check the length first.
func (s *Stack) DealCards(count int) Stack {
	dealt := make(Stack, count)
	copy(dealt, (*s)[:count])
	*s = (*s)[count:]
	return dealt
}

// DealCard removes and returns the top card
func (s *Stack) DealCard() Card {
	return s.DealCards(1)[0]
}

// AddCard appends a card to the bottom of the stack
func (s *Stack) AddCard(card Card) {
	*s = append(*s, card)
}

// AddCards appends cards to the bottom of the stack
func (s *Stack) AddCards(cards ...Card) {
	*s = append(*s, cards...)
}

// IndexOf returns the position of the card with the given ID, or -1
func (s Stack) IndexOf(id string) int {
	for i, c := range s {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Contains reports whether a card with the given ID is in the stack
func (s Stack) Contains(id string) bool {
	return s.IndexOf(id) >= 0
}

// Remove takes the card with the given ID out of the stack
func (s *Stack) Remove(id string) (Card, bool) {
	i := s.IndexOf(id)
	if i < 0 {
		return Card{}, false
	}
	card := (*s)[i]
	*s = append((*s)[:i:i], (*s)[i+1:]...)
	return card, true
}

// Clone returns an independent copy of the stack
func (s Stack) Clone() Stack {
	if s == nil {
		return nil
	}
	out := make(Stack, len(s))
	copy(out, s)
	return out
}

// Strings returns the display strings of the cards
func (s Stack) Strings() []string {
	out := make([]string, len(s))
	for i, c := range s {
		out[i] = c.String()
	}
	return out
}

func (s Stack) String() string {
	return strings.Join(s.Strings(), " ")
}
