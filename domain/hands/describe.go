package hands

import (
	poker "github.com/paulhankin/poker"

	"github.com/lazharichir/ofc/cards"
)

var librarySuits = map[cards.Suit]poker.Suit{
	cards.Clubs:    poker.Club,
	cards.Diamonds: poker.Diamond,
	cards.Hearts:   poker.Heart,
	cards.Spades:   poker.Spade,
}

// toLibraryCard converts a card to the paulhankin representation (Ace is rank 1 there)
func toLibraryCard(c cards.Card) (poker.Card, error) {
	rank := c.Rank()
	if rank == 14 {
		rank = 1
	}
	return poker.MakeCard(librarySuits[c.Suit], poker.Rank(rank))
}

func toLibraryCards(cs []cards.Card) ([]poker.Card, error) {
	out := make([]poker.Card, len(cs))
	for i, c := range cs {
		pc, err := toLibraryCard(c)
		if err != nil {
			return nil, err
		}
		out[i] = pc
	}
	return out, nil
}

// Describe returns a long-form description of a complete line such as
// "ace-high flush" or "pair of jacks". It falls back to the evaluator's
// own name when the library cannot describe the cards.
func Describe(ev Evaluation) string {
	if len(ev.Cards) != 3 && len(ev.Cards) != 5 {
		return ev.Name
	}
	pcs, err := toLibraryCards(ev.Cards)
	if err != nil {
		return ev.Name
	}
	desc, err := poker.Describe(pcs)
	if err != nil || desc == "" {
		return ev.Name
	}
	return desc
}
