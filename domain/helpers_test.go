package domain

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lazharichir/ofc/cards"
)

// boardFrom lays out a complete or partial board; "-" leaves a slot empty
func boardFrom(t *testing.T, top, middle, bottom string) Board {
	t.Helper()
	b := NewBoard()
	for _, row := range []struct {
		line  Line
		cards string
	}{{LineTop, top}, {LineMiddle, middle}, {LineBottom, bottom}} {
		for slot, f := range strings.Fields(row.cards) {
			if f == "-" {
				continue
			}
			c, err := cards.CardFromString(f)
			require.NoError(t, err)
			c.ID = "b-" + f
			require.NoError(t, b.Place(row.line, slot, c))
		}
	}
	return b
}

func playerWith(t *testing.T, id string, top, middle, bottom string) *Player {
	t.Helper()
	p := NewPlayer(id, id, 0, false, 1000)
	p.Board = boardFrom(t, top, middle, bottom)
	p.Refresh()
	return p
}

// stackedDeck deals the given cards first, then the rest of a fresh deck
func stackedDeck(t *testing.T, seq string) DeckFactory {
	t.Helper()
	rest := cards.NewDeck52()
	var deck cards.Stack
	for _, f := range strings.Fields(seq) {
		want, err := cards.CardFromString(f)
		require.NoError(t, err)
		found := false
		for _, c := range rest {
			if c.Equals(want) {
				rest.Remove(c.ID)
				deck = append(deck, c)
				found = true
				break
			}
		}
		require.True(t, found, "card %s listed twice", f)
	}
	deck = append(deck, rest...)
	return func(*rand.Rand) cards.Stack { return deck.Clone() }
}

type slotRef struct {
	line Line
	slot int
}

// layoutPolicy places every card it knows at its slot and discards the others
func layoutPolicy(t *testing.T, boards ...[3]string) PlacementPolicy {
	t.Helper()
	layout := make(map[string]slotRef)
	for _, b := range boards {
		for i, line := range Lines {
			for slot, f := range strings.Fields(b[i]) {
				c, err := cards.CardFromString(f)
				require.NoError(t, err)
				layout[c.String()] = slotRef{line: line, slot: slot}
			}
		}
	}

	return PlacementPolicyFunc(func(street int, hand cards.Stack, board Board) (Decision, error) {
		var d Decision
		for _, c := range hand {
			ref, ok := layout[c.String()]
			if !ok {
				discard := c
				d.Discard = &discard
				continue
			}
			d.Placements = append(d.Placements, Placement{Card: c, Line: ref.line, Slot: ref.slot})
		}
		return d, nil
	})
}
