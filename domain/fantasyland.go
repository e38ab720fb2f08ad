package domain

import (
	"github.com/lazharichir/ofc/domain/hands"
)

// FantasylandState is carried from one hand to the next
type FantasylandState string

const (
	FantasylandNone   FantasylandState = "none"
	FantasylandEarned FantasylandState = "earned"
)

// FantasylandPolicy is the hook for the Fantasyland sub-game. Qualifies is asked
// at showdown; Carry decides what state a player starts the next hand in.
type FantasylandPolicy interface {
	Qualifies(p *Player) bool
	Carry(p *Player) FantasylandState
}

// DeferredFantasyland marks qualifying players as earned but never plays the
// sub-game: every carried state is reset to none.
type DeferredFantasyland struct{}

// Qualifies: clean board with QQ or better on top, or a set on top
func (DeferredFantasyland) Qualifies(p *Player) bool {
	if p.IsFoul || !p.Board.IsComplete() {
		return false
	}
	top := p.Combinations[LineTop]
	if top == nil {
		return false
	}
	switch top.Category {
	case hands.Set:
		return true
	case hands.Pair:
		return top.Kickers[0] >= 12
	default:
		return false
	}
}

// TODO: deal 14 cards and skip the pineapple discard for players carried in with FantasylandEarned.
func (DeferredFantasyland) Carry(p *Player) FantasylandState {
	return FantasylandNone
}
