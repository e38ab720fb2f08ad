package domain

import (
	"fmt"
	"math/rand"

	"github.com/lazharichir/ofc/cards"
)

// Placement puts one card in one slot
type Placement struct {
	Card cards.Card
	Line Line
	Slot int
}

// Decision is a full turn for a non-human seat. Discard must be set on streets 2-5
// and nil on street 1; Placements must use every other card in the hand.
type Decision struct {
	Discard    *cards.Card
	Placements []Placement
}

// PlacementPolicy decides how a non-human seat plays its hand. The engine passes
// copies; the policy may not assume its decision is applied.
type PlacementPolicy interface {
	Decide(street int, hand cards.Stack, board Board) (Decision, error)
}

// PlacementPolicyFunc adapts a function to a PlacementPolicy
type PlacementPolicyFunc func(street int, hand cards.Stack, board Board) (Decision, error)

func (f PlacementPolicyFunc) Decide(street int, hand cards.Stack, board Board) (Decision, error) {
	return f(street, hand, board)
}

// fillOrder is the order RandomFillPolicy fills lines in
var fillOrder = []Line{LineBottom, LineMiddle, LineTop}

// RandomFillPolicy discards a random card (streets 2-5) and fills the board
// bottom, then middle, then top, in slot order.
type RandomFillPolicy struct {
	rng *rand.Rand
}

// NewRandomFillPolicy creates the reference policy
func NewRandomFillPolicy(r *rand.Rand) *RandomFillPolicy {
	return &RandomFillPolicy{rng: r}
}

func (p *RandomFillPolicy) Decide(street int, hand cards.Stack, board Board) (Decision, error) {
	var decision Decision
	remaining := hand.Clone()

	if street > 1 && len(remaining) > 0 {
		discard := remaining[p.rng.Intn(len(remaining))]
		remaining.Remove(discard.ID)
		decision.Discard = &discard
	}

	work := board.Clone()
	for _, card := range remaining {
		line, slot, ok := firstFreeSlot(&work)
		if !ok {
			return Decision{}, fmt.Errorf("%w: no slot for %s", ErrBoardFull, card)
		}
		if err := work.Place(line, slot, card); err != nil {
			return Decision{}, err
		}
		decision.Placements = append(decision.Placements, Placement{Card: card, Line: line, Slot: slot})
	}

	return decision, nil
}

func firstFreeSlot(b *Board) (Line, int, bool) {
	for _, line := range fillOrder {
		if free := b.FreeSlots(line); len(free) > 0 {
			return line, free[0], true
		}
	}
	return "", -1, false
}

// applyDecision checks a decision against the hand and returns the board and
// discard it produces. Nothing is mutated when it fails.
func applyDecision(street int, hand cards.Stack, board Board, d Decision) (Board, *cards.Card, error) {
	remaining := hand.Clone()
	work := board.Clone()

	var discard *cards.Card
	switch {
	case street == 1 && d.Discard != nil:
		return Board{}, nil, fmt.Errorf("%w: discard on street 1", ErrWrongPhase)
	case street > 1 && d.Discard == nil:
		return Board{}, nil, fmt.Errorf("%w: no discard on street %d", ErrTurnIncomplete, street)
	case d.Discard != nil:
		c, ok := remaining.Remove(d.Discard.ID)
		if !ok {
			return Board{}, nil, fmt.Errorf("%w: discard %s is not in hand", ErrCardNotFound, d.Discard)
		}
		discard = &c
	}

	if len(d.Placements) != placementsRequired(street) {
		return Board{}, nil, fmt.Errorf("%w: %d placements, want %d", ErrTurnIncomplete, len(d.Placements), placementsRequired(street))
	}

	for _, pl := range d.Placements {
		c, ok := remaining.Remove(pl.Card.ID)
		if !ok {
			return Board{}, nil, fmt.Errorf("%w: %s is not in hand", ErrCardNotFound, pl.Card)
		}
		if err := work.Place(pl.Line, pl.Slot, c); err != nil {
			return Board{}, nil, err
		}
	}

	if len(remaining) != 0 {
		return Board{}, nil, fmt.Errorf("%w: %s left in hand", ErrTurnIncomplete, remaining)
	}

	return work, discard, nil
}
