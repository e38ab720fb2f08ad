package domain

import (
	"fmt"

	"github.com/lazharichir/ofc/domain/commands"
)

// Apply dispatches an inbound command to the matching intent
func Apply(g *Game, cmd commands.Command) error {
	switch c := cmd.(type) {
	case commands.StartGame:
		return g.StartGame(c.PlayerCount, c.StartingStake)
	case commands.StartNextHand:
		return g.StartNextHand()
	case commands.PlaceCard:
		line, err := ParseLine(c.Line)
		if err != nil {
			return err
		}
		return g.PlaceCard(c.CardID, line, c.Slot)
	case commands.ReturnCardToHand:
		return g.ReturnCardToHand(c.CardID)
	case commands.DiscardCard:
		return g.DiscardCard(c.CardID)
	case commands.ConfirmTurn:
		return g.ConfirmTurn()
	default:
		return fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}
}
