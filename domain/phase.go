package domain

import (
	"fmt"

	"github.com/lazharichir/ofc/cards"
)

// Phase is the state of the turn/street machine. The set of phases is closed;
// each one carries only the data it needs.
type Phase interface {
	Name() string
	kind() phaseKind
}

type phaseKind int

const (
	kindNotStarted phaseKind = iota
	kindStarting
	kindDealing
	kindPlacing
	kindAIThinking
	kindShowdown
	kindRoundOver
)

// NotStarted is the phase before the first StartGame
type NotStarted struct{}

func (NotStarted) Name() string { return "not_started" }
func (NotStarted) kind() phaseKind { return kindNotStarted }

// Starting is entered while a game is being (re)built
type Starting struct{}

func (Starting) Name() string { return "starting" }
func (Starting) kind() phaseKind { return kindStarting }

// Dealing waits to deal the street's cards to Seat
type Dealing struct {
	Street int
	Seat   int
}

func (d Dealing) Name() string {
	if d.Street == 1 {
		return "dealing_street_1"
	}
	return "dealing_street_2_5"
}
func (Dealing) kind() phaseKind { return kindDealing }

// PlacedCard is a card placed during the current turn
type PlacedCard struct {
	Card cards.Card
	Line Line
	Slot int
}

// Placing waits for the human at Seat to place the cards in Hand
type Placing struct {
	Street    int
	Seat      int
	Hand      cards.Stack
	Placed    []PlacedCard
	Discarded *cards.Card
}

func (p Placing) Name() string {
	if p.Street == 1 {
		return "placing_street_1"
	}
	return "placing_street_2_5"
}
func (Placing) kind() phaseKind { return kindPlacing }

// Required returns how many cards must be placed this street
func (p Placing) Required() int {
	return placementsRequired(p.Street)
}

// Complete reports whether the turn may be confirmed
func (p Placing) Complete() bool {
	if len(p.Placed) != p.Required() {
		return false
	}
	if p.Street == 1 {
		return len(p.Hand) == 0
	}
	// the last card is either already discarded or will be discarded on confirm
	return (p.Discarded != nil && len(p.Hand) == 0) || (p.Discarded == nil && len(p.Hand) == 1)
}

// AIThinking waits for the placement policy to play the seat's hand
type AIThinking struct {
	Street int
	Seat   int
	Hand   cards.Stack
}

func (AIThinking) Name() string { return "ai_thinking" }
func (AIThinking) kind() phaseKind { return kindAIThinking }

// Showdown waits for settlement
type Showdown struct{}

func (Showdown) Name() string { return "showdown" }
func (Showdown) kind() phaseKind { return kindShowdown }

// RoundOver holds the settled hand until the next one starts
type RoundOver struct{}

func (RoundOver) Name() string { return "round_over" }
func (RoundOver) kind() phaseKind { return kindRoundOver }

// phaseEdges lists the legal transitions out of each phase. Every phase can be
// restarted.
var phaseEdges = map[phaseKind][]phaseKind{
	kindNotStarted: {kindStarting},
	kindStarting:   {kindDealing},
	kindDealing:    {kindPlacing, kindAIThinking, kindStarting},
	kindPlacing:    {kindDealing, kindShowdown, kindStarting},
	kindAIThinking: {kindDealing, kindShowdown, kindStarting},
	kindShowdown:   {kindRoundOver, kindStarting},
	kindRoundOver:  {kindDealing, kindStarting},
}

func canTransition(from, to phaseKind) bool {
	for _, k := range phaseEdges[from] {
		if k == to {
			return true
		}
	}
	return false
}

func placementsRequired(street int) int {
	if street == 1 {
		return 5
	}
	return 2
}

func cardsDealt(street int) int {
	if street == 1 {
		return 5
	}
	return 3
}

// seatOf returns the seat acting in the phase, or -1
func seatOf(p Phase) int {
	switch ph := p.(type) {
	case Dealing:
		return ph.Seat
	case Placing:
		return ph.Seat
	case AIThinking:
		return ph.Seat
	default:
		return -1
	}
}

func (k phaseKind) String() string {
	switch k {
	case kindNotStarted:
		return "not_started"
	case kindStarting:
		return "starting"
	case kindDealing:
		return "dealing"
	case kindPlacing:
		return "placing"
	case kindAIThinking:
		return "ai_thinking"
	case kindShowdown:
		return "showdown"
	case kindRoundOver:
		return "round_over"
	default:
		return fmt.Sprintf("phase(%d)", int(k))
	}
}
