package events

import (
	"time"
)

type EventHandler func(event Event)

type Event interface {
	Name() string
}

// Game lifecycle events
type GameStarted struct {
	GameID        string
	PlayerIDs     []string
	StartingStake int
	At            time.Time
}

func (e GameStarted) Name() string { return "GAME_STARTED" }

type HandStarted struct {
	GameID     string
	HandID     string
	HandNumber int
	DealerSeat int
	At         time.Time
}

func (e HandStarted) Name() string { return "HAND_STARTED" }

type PhaseChanged struct {
	GameID        string
	HandID        string
	PreviousPhase string
	NewPhase      string
	At            time.Time
}

func (e PhaseChanged) Name() string { return "PHASE_CHANGED" }

// Dealing and placement events
type CardsDealt struct {
	GameID   string
	HandID   string
	PlayerID string
	Street   int
	Count    int
	At       time.Time
}

func (e CardsDealt) Name() string { return "CARDS_DEALT" }

type CardPlaced struct {
	GameID   string
	HandID   string
	PlayerID string
	CardID   string
	Card     string
	Line     string
	Slot     int
	At       time.Time
}

func (e CardPlaced) Name() string { return "CARD_PLACED" }

type CardReturned struct {
	GameID   string
	HandID   string
	PlayerID string
	CardID   string
	At       time.Time
}

func (e CardReturned) Name() string { return "CARD_RETURNED" }

type CardDiscarded struct {
	GameID   string
	HandID   string
	PlayerID string
	CardID   string
	Street   int
	At       time.Time
}

func (e CardDiscarded) Name() string { return "CARD_DISCARDED" }

type TurnConfirmed struct {
	GameID   string
	HandID   string
	PlayerID string
	Street   int
	At       time.Time
}

func (e TurnConfirmed) Name() string { return "TURN_CONFIRMED" }

type StreetCompleted struct {
	GameID string
	HandID string
	Street int
	At     time.Time
}

func (e StreetCompleted) Name() string { return "STREET_COMPLETED" }

// Showdown events
type PlayerFouled struct {
	GameID   string
	HandID   string
	PlayerID string
	At       time.Time
}

func (e PlayerFouled) Name() string { return "PLAYER_FOULED" }

// PairSettlement is the net transfer between two players at showdown
type PairSettlement struct {
	PlayerA string
	PlayerB string
	NetA    int
	NetB    int
}

type ShowdownSettled struct {
	GameID string
	HandID string
	Pairs  []PairSettlement
	At     time.Time
}

func (e ShowdownSettled) Name() string { return "SHOWDOWN_SETTLED" }

type HandEnded struct {
	GameID       string
	HandID       string
	ScoreChanges map[string]int // PlayerID to change this hand
	Scores       map[string]int // PlayerID to score after the hand
	Duration     int64          // in milliseconds
	At           time.Time
}

func (e HandEnded) Name() string { return "HAND_ENDED" }

type FantasylandDeferred struct {
	GameID   string
	HandID   string
	PlayerID string
	State    string
	At       time.Time
}

func (e FantasylandDeferred) Name() string { return "FANTASYLAND_DEFERRED" }

type PolicyFailed struct {
	GameID   string
	HandID   string
	PlayerID string
	Street   int
	Reason   string
	At       time.Time
}

func (e PolicyFailed) Name() string { return "POLICY_FAILED" }
