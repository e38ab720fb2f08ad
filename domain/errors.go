package domain

import (
	"errors"
	"fmt"

	"github.com/lazharichir/ofc/cards"
	"github.com/lazharichir/ofc/domain/hands"
)

// Errors returned by the engine. All of them reject the offending intent and
// leave the game untouched.
var (
	ErrWrongPhase         = errors.New("wrong phase for action")
	ErrSlotOccupied       = errors.New("slot occupied")
	ErrInvalidSlot        = errors.New("invalid slot")
	ErrInvalidLine        = errors.New("invalid line")
	ErrNoCardSelected     = errors.New("no card available to place")
	ErrCardNotFound       = errors.New("card not found")
	ErrTurnIncomplete     = errors.New("turn incomplete")
	ErrAlreadyDiscarded   = errors.New("already discarded this street")
	ErrInvalidPlayerCount = errors.New("invalid player count")
	ErrInvalidStake       = errors.New("invalid starting stake")
	ErrBoardFull          = errors.New("board full")
	ErrUnknownCommand     = errors.New("unknown command")

	ErrDeckExhausted   = cards.ErrDeckExhausted
	ErrInvalidHandSize = hands.ErrInvalidHandSize
)

// PolicyError reports a placement policy that failed or returned a decision the
// engine cannot apply. It is a contract violation of the policy, not a player error.
type PolicyError struct {
	PlayerID string
	Seat     int
	Street   int
	Err      error
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("placement policy for seat %d on street %d: %v", e.Seat, e.Street, e.Err)
}

func (e *PolicyError) Unwrap() error {
	return e.Err
}
