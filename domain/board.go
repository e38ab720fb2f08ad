package domain

import (
	"fmt"

	"github.com/lazharichir/ofc/cards"
	"github.com/lazharichir/ofc/domain/hands"
)

// Line is one of the three sub-hands on a board
type Line string

const (
	LineTop    Line = "top"
	LineMiddle Line = "middle"
	LineBottom Line = "bottom"
)

// Lines lists the lines from weakest to strongest
var Lines = []Line{LineTop, LineMiddle, LineBottom}

// Size returns the number of slots on the line
func (l Line) Size() int {
	switch l {
	case LineTop:
		return 3
	case LineMiddle, LineBottom:
		return 5
	default:
		return 0
	}
}

// ParseLine converts a line name to a Line
func ParseLine(s string) (Line, error) {
	switch l := Line(s); l {
	case LineTop, LineMiddle, LineBottom:
		return l, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidLine, s)
	}
}

// BoardSize is the number of cards on a complete board
const BoardSize = 13

// Board holds a player's three lines. A nil slot is empty.
type Board struct {
	Top    []*cards.Card
	Middle []*cards.Card
	Bottom []*cards.Card
}

// NewBoard creates an empty board
func NewBoard() Board {
	return Board{
		Top:    make([]*cards.Card, LineTop.Size()),
		Middle: make([]*cards.Card, LineMiddle.Size()),
		Bottom: make([]*cards.Card, LineBottom.Size()),
	}
}

func (b *Board) slots(line Line) []*cards.Card {
	switch line {
	case LineTop:
		return b.Top
	case LineMiddle:
		return b.Middle
	case LineBottom:
		return b.Bottom
	default:
		return nil
	}
}

// Place puts a card in an empty slot
func (b *Board) Place(line Line, slot int, card cards.Card) error {
	slots := b.slots(line)
	if slots == nil {
		return fmt.Errorf("%w: %q", ErrInvalidLine, line)
	}
	if slot < 0 || slot >= len(slots) {
		return fmt.Errorf("%w: %s has no slot %d", ErrInvalidSlot, line, slot)
	}
	if slots[slot] != nil {
		return fmt.Errorf("%w: %s slot %d holds %s", ErrSlotOccupied, line, slot, slots[slot])
	}

	c := card
	slots[slot] = &c
	return nil
}

// Remove takes a card off the board and reports where it was
func (b *Board) Remove(cardID string) (cards.Card, Line, int, bool) {
	for _, line := range Lines {
		slots := b.slots(line)
		for i, c := range slots {
			if c != nil && c.ID == cardID {
				slots[i] = nil
				return *c, line, i, true
			}
		}
	}
	return cards.Card{}, "", -1, false
}

// At returns the card in a slot, or nil
func (b *Board) At(line Line, slot int) *cards.Card {
	slots := b.slots(line)
	if slot < 0 || slot >= len(slots) {
		return nil
	}
	return slots[slot]
}

// Cards returns the cards on a line in slot order, skipping empty slots
func (b *Board) Cards(line Line) cards.Stack {
	var out cards.Stack
	for _, c := range b.slots(line) {
		if c != nil {
			out = append(out, *c)
		}
	}
	return out
}

// All returns every card on the board
func (b *Board) All() cards.Stack {
	var out cards.Stack
	for _, line := range Lines {
		out = append(out, b.Cards(line)...)
	}
	return out
}

// FreeSlots returns the indices of the empty slots on a line
func (b *Board) FreeSlots(line Line) []int {
	var free []int
	for i, c := range b.slots(line) {
		if c == nil {
			free = append(free, i)
		}
	}
	return free
}

// Count returns the number of cards on the board
func (b *Board) Count() int {
	n := 0
	for _, line := range Lines {
		n += len(b.Cards(line))
	}
	return n
}

// LineComplete reports whether every slot on the line is filled
func (b *Board) LineComplete(line Line) bool {
	return len(b.Cards(line)) == line.Size()
}

// IsComplete reports whether all 13 cards are placed
func (b *Board) IsComplete() bool {
	return b.Count() == BoardSize
}

// Clone returns a copy that shares no slots with the original
func (b Board) Clone() Board {
	clone := NewBoard()
	for _, line := range Lines {
		src, dst := b.slots(line), clone.slots(line)
		for i, c := range src {
			if c != nil && i < len(dst) {
				cc := *c
				dst[i] = &cc
			}
		}
	}
	return clone
}

// BoardEvaluation is the evaluator's verdict on a board. Only complete lines are scored.
type BoardEvaluation struct {
	Combinations map[Line]*hands.Evaluation
	Royalties    map[Line]*hands.Royalty // empty when fouled
	Foul         bool
}

// RoyaltyTotal sums the royalties of the board
func (e BoardEvaluation) RoyaltyTotal() int {
	total := 0
	for _, r := range e.Royalties {
		total += r.PointsOrZero()
	}
	return total
}

func lineRoyalty(line Line, ev hands.Evaluation) *hands.Royalty {
	switch line {
	case LineTop:
		return hands.TopRoyalty(ev)
	case LineMiddle:
		return hands.MiddleRoyalty(ev)
	case LineBottom:
		return hands.BottomRoyalty(ev)
	default:
		return nil
	}
}

// Evaluate scores each complete line with its own royalty table and checks for a foul.
// A foul zeroes every royalty but keeps the combinations.
func (b *Board) Evaluate() BoardEvaluation {
	result := BoardEvaluation{
		Combinations: make(map[Line]*hands.Evaluation),
		Royalties:    make(map[Line]*hands.Royalty),
	}

	for _, line := range Lines {
		if !b.LineComplete(line) {
			continue
		}
		ev, err := hands.EvaluateLine(b.Cards(line))
		if err != nil {
			// a complete line always has 3 or 5 cards
			panic(err)
		}
		ev.Royalty = lineRoyalty(line, ev)
		result.Combinations[line] = &ev
		if ev.Royalty != nil {
			result.Royalties[line] = ev.Royalty
		}
	}

	result.Foul = !IsValid(result.Combinations[LineTop], result.Combinations[LineMiddle], result.Combinations[LineBottom])
	if result.Foul {
		result.Royalties = make(map[Line]*hands.Royalty)
	}

	return result
}

// IsValid reports whether top <= middle <= bottom. A board with any line still
// open is provisionally valid.
func IsValid(top, middle, bottom *hands.Evaluation) bool {
	if top == nil || middle == nil || bottom == nil {
		return true
	}
	return hands.Compare(*top, *middle) <= 0 && hands.Compare(*middle, *bottom) <= 0
}
