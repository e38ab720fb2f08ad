package domain

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lazharichir/ofc/domain/events"
)

// Delay names the display pause a UI puts before an automatic transition
type Delay string

const (
	DelayDeal       Delay = "deal"
	DelayAIThinking Delay = "ai_thinking"
	DelayShowdown   Delay = "showdown"
	DelayNextHand   Delay = "next_hand"
)

// Pending reports whether the engine has an automatic transition to run and
// which delay applies to it. Placing and round_over wait for an intent instead.
func (g *Game) Pending() (Delay, bool) {
	switch g.phase.(type) {
	case Dealing:
		return DelayDeal, true
	case AIThinking:
		return DelayAIThinking, true
	case Showdown:
		return DelayShowdown, true
	default:
		return "", false
	}
}

// Advance runs the pending automatic transition: a deal, an AI move or the showdown
func (g *Game) Advance() error {
	switch ph := g.phase.(type) {
	case Dealing:
		return g.deal(ph)
	case AIThinking:
		return g.playPolicy(ph)
	case Showdown:
		g.settle()
		return nil
	default:
		return fmt.Errorf("%w: nothing to advance in %s", ErrWrongPhase, g.phase.Name())
	}
}

// RunUntilInput advances until a human has to act or the round is over
func (g *Game) RunUntilInput() error {
	for {
		if _, ok := g.Pending(); !ok {
			return nil
		}
		if err := g.Advance(); err != nil {
			return err
		}
	}
}

func (g *Game) deal(ph Dealing) error {
	player := g.Players[ph.Seat]

	dealt, err := g.Deck.Deal(cardsDealt(ph.Street))
	if err != nil {
		g.logger.Error("deal failed", zap.Error(err), zap.Int("street", ph.Street), zap.Int("seat", ph.Seat))
		return err
	}
	player.IsActive = true

	switch {
	case player.IsHuman && ph.Street == 1:
		g.Message = "Street 1: place all 5 cards"
		g.transition(Placing{Street: ph.Street, Seat: ph.Seat, Hand: dealt})
	case player.IsHuman:
		g.Message = fmt.Sprintf("Street %d: place 2 cards and discard 1", ph.Street)
		g.transition(Placing{Street: ph.Street, Seat: ph.Seat, Hand: dealt})
	default:
		g.Message = fmt.Sprintf("%s is thinking...", player.Name)
		g.transition(AIThinking{Street: ph.Street, Seat: ph.Seat, Hand: dealt})
	}

	g.emitEvent(events.CardsDealt{
		GameID:   g.ID,
		HandID:   g.HandID,
		PlayerID: player.ID,
		Street:   ph.Street,
		Count:    len(dealt),
		At:       time.Now(),
	})

	return nil
}

// playPolicy asks the placement policy for the seat's move and applies it in
// one step. A failing or illegal decision leaves the game untouched.
func (g *Game) playPolicy(ph AIThinking) error {
	player := g.Players[ph.Seat]

	decision, err := g.policy.Decide(ph.Street, ph.Hand.Clone(), player.Board.Clone())
	if err != nil {
		return g.policyFailed(player, ph, err)
	}
	board, discarded, err := applyDecision(ph.Street, ph.Hand, player.Board, decision)
	if err != nil {
		return g.policyFailed(player, ph, err)
	}

	// the hand now lives on the board and in the discard pile
	player.Board = board
	g.phase = AIThinking{Street: ph.Street, Seat: ph.Seat}
	if discarded != nil {
		g.discard(player, ph.Street, *discarded)
	}
	for _, pl := range decision.Placements {
		g.emitEvent(events.CardPlaced{
			GameID:   g.ID,
			HandID:   g.HandID,
			PlayerID: player.ID,
			CardID:   pl.Card.ID,
			Card:     pl.Card.String(),
			Line:     string(pl.Line),
			Slot:     pl.Slot,
			At:       time.Now(),
		})
	}

	g.finishTurn(player, ph.Street)
	return nil
}

func (g *Game) policyFailed(player *Player, ph AIThinking, err error) error {
	perr := &PolicyError{PlayerID: player.ID, Seat: ph.Seat, Street: ph.Street, Err: err}

	g.logger.Error("placement policy failed",
		zap.String("player_id", player.ID),
		zap.Int("street", ph.Street),
		zap.Error(err),
	)

	g.emitEvent(events.PolicyFailed{
		GameID:   g.ID,
		HandID:   g.HandID,
		PlayerID: player.ID,
		Street:   ph.Street,
		Reason:   err.Error(),
		At:       time.Now(),
	})

	return perr
}

// settle scores the showdown, moves the hand's changes into the scores and
// ends the round
func (g *Game) settle() {
	for _, p := range g.Players {
		p.Refresh()
		p.IsActive = false
	}

	g.ShowdownResults = Settle(g.Players, g.rules)

	pairs := make([]events.PairSettlement, len(g.ShowdownResults))
	for i, r := range g.ShowdownResults {
		pairs[i] = events.PairSettlement{PlayerA: r.PlayerA, PlayerB: r.PlayerB, NetA: r.NetA, NetB: r.NetB}
	}
	g.emitEvent(events.ShowdownSettled{
		GameID: g.ID,
		HandID: g.HandID,
		Pairs:  pairs,
		At:     time.Now(),
	})

	changes := make(map[string]int, len(g.Players))
	scores := make(map[string]int, len(g.Players))
	for _, p := range g.Players {
		p.Score += p.LastRoundScoreChange
		changes[p.ID] = p.LastRoundScoreChange
		scores[p.ID] = p.Score

		if g.fantasyland.Qualifies(p) {
			p.Fantasyland = FantasylandEarned
			g.logger.Info("fantasyland earned", zap.String("player_id", p.ID))
		}
	}

	g.logger.Info("hand settled",
		zap.String("hand_id", g.HandID),
		zap.Any("score_changes", changes),
	)

	g.emitEvent(events.HandEnded{
		GameID:       g.ID,
		HandID:       g.HandID,
		ScoreChanges: changes,
		Scores:       scores,
		Duration:     time.Since(g.handStartedAt).Milliseconds(),
		At:           time.Now(),
	})

	g.Message = g.roundSummary()
	g.transition(RoundOver{})
}

func (g *Game) roundSummary() string {
	msg := fmt.Sprintf("Hand %d over:", g.HandNumber)
	for _, p := range g.Players {
		foul := ""
		if p.IsFoul {
			foul = " (foul)"
		}
		msg += fmt.Sprintf(" %s %+d%s", p.Name, p.LastRoundScoreChange, foul)
	}
	return msg
}
