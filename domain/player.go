package domain

import (
	"github.com/lazharichir/ofc/domain/hands"
)

// Player is one seat at the table
type Player struct {
	ID      string
	Name    string
	Seat    int
	IsHuman bool
	Score   int // persistent stake

	Board        Board
	Combinations map[Line]*hands.Evaluation
	Royalties    map[Line]*hands.Royalty
	IsFoul       bool
	IsDealer     bool
	IsActive     bool

	LastRoundScoreChange int
	Fantasyland          FantasylandState
}

// NewPlayer creates a new player with the given ID, name and stake
func NewPlayer(id string, name string, seat int, human bool, stake int) *Player {
	p := &Player{
		ID:          id,
		Name:        name,
		Seat:        seat,
		IsHuman:     human,
		Score:       stake,
		Fantasyland: FantasylandNone,
	}
	p.ResetForNewHand()
	return p
}

// ResetForNewHand clears everything but the score, seat and dealer flag
func (p *Player) ResetForNewHand() {
	p.Board = NewBoard()
	p.Combinations = make(map[Line]*hands.Evaluation)
	p.Royalties = make(map[Line]*hands.Royalty)
	p.IsFoul = false
	p.IsActive = false
	p.LastRoundScoreChange = 0
}

// Refresh re-evaluates the board and returns the evaluation
func (p *Player) Refresh() BoardEvaluation {
	ev := p.Board.Evaluate()
	p.Combinations = ev.Combinations
	p.Royalties = ev.Royalties
	p.IsFoul = ev.Foul
	return ev
}

// RoyaltyTotal sums the player's line royalties; zero when fouled
func (p *Player) RoyaltyTotal() int {
	if p.IsFoul {
		return 0
	}
	total := 0
	for _, r := range p.Royalties {
		total += r.PointsOrZero()
	}
	return total
}
