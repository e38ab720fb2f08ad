package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lazharichir/ofc/domain"
	"github.com/lazharichir/ofc/domain/commands"
	"github.com/lazharichir/ofc/server/connection"
)

// Defaults fill in a START_GAME that leaves the table size or stake out
type Defaults struct {
	Players       int
	StartingStake int
}

// CommandRouter routes incoming commands to the client's game loop
type CommandRouter struct {
	defaults Defaults
}

// NewCommandRouter creates a new command router
func NewCommandRouter(defaults Defaults) *CommandRouter {
	return &CommandRouter{defaults: defaults}
}

// Decode turns a client message into a command
func (r *CommandRouter) Decode(message []byte) (commands.Command, error) {
	// First determine command type
	var baseCmd struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(message, &baseCmd); err != nil {
		return nil, fmt.Errorf("decoding command: %w", err)
	}

	switch baseCmd.Name {
	case commands.StartGame{}.Name():
		decoded, err := decode[commands.StartGame](message)
		if err != nil {
			return nil, err
		}
		cmd := decoded.(commands.StartGame)
		if cmd.PlayerCount == 0 {
			cmd.PlayerCount = r.defaults.Players
		}
		if cmd.StartingStake == 0 {
			cmd.StartingStake = r.defaults.StartingStake
		}
		return cmd, nil

	case commands.StartNextHand{}.Name():
		return commands.StartNextHand{}, nil

	case commands.PlaceCard{}.Name():
		return decode[commands.PlaceCard](message)

	case commands.ReturnCardToHand{}.Name():
		return decode[commands.ReturnCardToHand](message)

	case commands.DiscardCard{}.Name():
		return decode[commands.DiscardCard](message)

	case commands.ConfirmTurn{}.Name():
		return commands.ConfirmTurn{}, nil

	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCommand, baseCmd.Name)
	}
}

func decode[T commands.Command](message []byte) (commands.Command, error) {
	var cmd T
	if err := json.Unmarshal(message, &cmd); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", cmd.Name(), err)
	}
	return cmd, nil
}

// HandleCommand decodes a message and submits it to the client's game loop
func (r *CommandRouter) HandleCommand(ctx context.Context, client *connection.Client, message []byte) error {
	cmd, err := r.Decode(message)
	if err != nil {
		return err
	}
	return client.Loop.Submit(ctx, cmd)
}
