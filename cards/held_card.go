package cards

type CardVisibility string

const (
	FaceDown      CardVisibility = "down"  // Nobody can see
	FaceUpToOwner CardVisibility = "owner" // Only the owner can see
	FaceUpToAll   CardVisibility = "all"   // Everyone can see
)

// HeldCard is a card in someone's hand together with who may see it
type HeldCard struct {
	Card
	Visibility CardVisibility
}

// NewHeldCard creates a new held card with the specified visibility
func NewHeldCard(card Card, visibility CardVisibility) HeldCard {
	return HeldCard{
		Card:       card,
		Visibility: visibility,
	}
}

// VisibleTo reports whether the card can be shown to a viewer
func (c HeldCard) VisibleTo(isOwner bool) bool {
	switch c.Visibility {
	case FaceUpToAll:
		return true
	case FaceUpToOwner:
		return isOwner
	default:
		return false
	}
}

// Masked returns the card as a viewer sees it: face and ID blanked when hidden
func (c HeldCard) Masked(isOwner bool) HeldCard {
	if c.VisibleTo(isOwner) {
		return c
	}
	return HeldCard{Visibility: c.Visibility}
}

type HeldStack []HeldCard

// Hold wraps every card of a stack with the same visibility
func Hold(stack Stack, visibility CardVisibility) HeldStack {
	held := make(HeldStack, len(stack))
	for i, c := range stack {
		held[i] = NewHeldCard(c, visibility)
	}
	return held
}

// Masked masks every card for the viewer
func (s HeldStack) Masked(isOwner bool) HeldStack {
	out := make(HeldStack, len(s))
	for i, c := range s {
		out[i] = c.Masked(isOwner)
	}
	return out
}
