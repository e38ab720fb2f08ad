package domain

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lazharichir/ofc/cards"
	"github.com/lazharichir/ofc/domain/events"
)

// placing returns the current Placing phase, or ErrWrongPhase
func (g *Game) placing() (Placing, error) {
	p, ok := g.phase.(Placing)
	if !ok {
		return Placing{}, fmt.Errorf("%w: not in placing phase (%s)", ErrWrongPhase, g.phase.Name())
	}
	return p, nil
}

// PlaceCard moves a card from the hand in progress to an empty board slot
func (g *Game) PlaceCard(cardID string, line Line, slot int) error {
	p, err := g.placing()
	if err != nil {
		return err
	}
	if line.Size() == 0 {
		return fmt.Errorf("%w: %q", ErrInvalidLine, line)
	}
	if slot < 0 || slot >= line.Size() {
		return fmt.Errorf("%w: %s has no slot %d", ErrInvalidSlot, line, slot)
	}
	if len(p.Hand) == 0 || len(p.Placed) >= p.Required() {
		return fmt.Errorf("%w: %d of %d already placed", ErrNoCardSelected, len(p.Placed), p.Required())
	}
	if !p.Hand.Contains(cardID) {
		return fmt.Errorf("%w: %s is not in hand", ErrCardNotFound, cardID)
	}

	player := g.Players[p.Seat]
	if occupant := player.Board.At(line, slot); occupant != nil {
		return fmt.Errorf("%w: %s slot %d holds %s", ErrSlotOccupied, line, slot, occupant)
	}

	next := p
	next.Hand = p.Hand.Clone()
	card, _ := next.Hand.Remove(cardID)
	if err := player.Board.Place(line, slot, card); err != nil {
		return err
	}
	next.Placed = append(append([]PlacedCard(nil), p.Placed...), PlacedCard{Card: card, Line: line, Slot: slot})
	g.phase = next
	player.Refresh()

	g.logger.Debug("card placed",
		zap.String("player_id", player.ID),
		zap.String("card", card.String()),
		zap.String("line", string(line)),
		zap.Int("slot", slot),
	)

	g.emitEvent(events.CardPlaced{
		GameID:   g.ID,
		HandID:   g.HandID,
		PlayerID: player.ID,
		CardID:   card.ID,
		Card:     card.String(),
		Line:     string(line),
		Slot:     slot,
		At:       time.Now(),
	})

	return nil
}

// ReturnCardToHand takes back a card placed this turn. Street 1 only; later
// streets are final once placed.
func (g *Game) ReturnCardToHand(cardID string) error {
	p, err := g.placing()
	if err != nil {
		return err
	}
	if p.Street != 1 {
		return fmt.Errorf("%w: cards can only be returned on street 1", ErrWrongPhase)
	}

	idx := -1
	for i, pc := range p.Placed {
		if pc.Card.ID == cardID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s was not placed this turn", ErrCardNotFound, cardID)
	}

	player := g.Players[p.Seat]
	card, _, _, ok := player.Board.Remove(cardID)
	if !ok {
		return fmt.Errorf("%w: %s is not on the board", ErrCardNotFound, cardID)
	}

	next := p
	next.Hand = append(p.Hand.Clone(), card)
	next.Placed = make([]PlacedCard, 0, len(p.Placed)-1)
	next.Placed = append(next.Placed, p.Placed[:idx]...)
	next.Placed = append(next.Placed, p.Placed[idx+1:]...)
	g.phase = next
	player.Refresh()

	g.emitEvent(events.CardReturned{
		GameID:   g.ID,
		HandID:   g.HandID,
		PlayerID: player.ID,
		CardID:   cardID,
		At:       time.Now(),
	})

	return nil
}

// DiscardCard throws away one card of the hand in progress (streets 2-5).
// The discard is final.
func (g *Game) DiscardCard(cardID string) error {
	p, err := g.placing()
	if err != nil {
		return err
	}
	if p.Street == 1 {
		return fmt.Errorf("%w: nothing is discarded on street 1", ErrWrongPhase)
	}
	if p.Discarded != nil {
		return fmt.Errorf("%w: %s", ErrAlreadyDiscarded, p.Discarded)
	}
	if !p.Hand.Contains(cardID) {
		return fmt.Errorf("%w: %s is not in hand", ErrCardNotFound, cardID)
	}

	next := p
	next.Hand = p.Hand.Clone()
	card, _ := next.Hand.Remove(cardID)
	next.Discarded = &card
	g.phase = next

	g.discard(g.Players[p.Seat], p.Street, card)
	return nil
}

func (g *Game) discard(player *Player, street int, card cards.Card) {
	g.DiscardPile.AddCard(card)

	g.logger.Debug("card discarded",
		zap.String("player_id", player.ID),
		zap.String("card", card.String()),
		zap.Int("street", street),
	)

	g.emitEvent(events.CardDiscarded{
		GameID:   g.ID,
		HandID:   g.HandID,
		PlayerID: player.ID,
		CardID:   card.ID,
		Street:   street,
		At:       time.Now(),
	})
}

// ConfirmTurn ends the human's turn once the street's placements are made. On
// streets 2-5 the card still in hand is discarded if that has not happened yet.
func (g *Game) ConfirmTurn() error {
	p, err := g.placing()
	if err != nil {
		return err
	}
	if !p.Complete() {
		return fmt.Errorf("%w: placed %d of %d", ErrTurnIncomplete, len(p.Placed), p.Required())
	}

	player := g.Players[p.Seat]
	if p.Street > 1 && p.Discarded == nil {
		last := p.Hand[0]
		p.Hand = nil
		p.Discarded = &last
		g.phase = p
		g.discard(player, p.Street, last)
	}

	g.finishTurn(player, p.Street)
	return nil
}

// finishTurn passes play to the next seat. When play returns to the seat after
// the dealer the street is over; after the fifth street comes the showdown.
func (g *Game) finishTurn(player *Player, street int) {
	player.IsActive = false
	ev := player.Refresh()

	g.emitEvent(events.TurnConfirmed{
		GameID:   g.ID,
		HandID:   g.HandID,
		PlayerID: player.ID,
		Street:   street,
		At:       time.Now(),
	})

	if player.Board.IsComplete() && ev.Foul {
		g.logger.Info("player fouled", zap.String("player_id", player.ID), zap.String("hand_id", g.HandID))
		g.emitEvent(events.PlayerFouled{
			GameID:   g.ID,
			HandID:   g.HandID,
			PlayerID: player.ID,
			At:       time.Now(),
		})
	}

	next := (player.Seat + 1) % len(g.Players)
	if next == g.firstSeat() {
		g.emitEvent(events.StreetCompleted{
			GameID: g.ID,
			HandID: g.HandID,
			Street: street,
			At:     time.Now(),
		})
		street++
	}

	if street > Streets {
		g.Message = "Showdown"
		g.transition(Showdown{})
		return
	}

	g.Street = street
	g.Message = fmt.Sprintf("Street %d: %s to act", street, g.Players[next].Name)
	g.transition(Dealing{Street: street, Seat: next})
}
