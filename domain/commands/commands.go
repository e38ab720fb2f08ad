package commands

type Command interface {
	Name() string
}

type StartGame struct {
	PlayerCount   int
	StartingStake int
}

func (c StartGame) Name() string { return "START_GAME" }

type StartNextHand struct{}

func (c StartNextHand) Name() string { return "START_NEXT_HAND" }

// PlaceCard moves a card from the hand in progress to a board slot.
// Line is one of "top", "middle" or "bottom".
type PlaceCard struct {
	CardID string
	Line   string
	Slot   int
}

func (c PlaceCard) Name() string { return "PLACE_CARD" }

// ReturnCardToHand undoes a placement made this turn (street 1 only).
type ReturnCardToHand struct {
	CardID string
}

func (c ReturnCardToHand) Name() string { return "RETURN_CARD_TO_HAND" }

type DiscardCard struct {
	CardID string
}

func (c DiscardCard) Name() string { return "DISCARD_CARD" }

type ConfirmTurn struct{}

func (c ConfirmTurn) Name() string { return "CONFIRM_TURN" }
