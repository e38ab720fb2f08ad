package domain

import (
	"github.com/lazharichir/ofc/cards"
	"github.com/lazharichir/ofc/domain/hands"
)

// GameView is what one viewer sees of the game
type GameView struct {
	GameID     string
	HandID     string
	HandNumber int
	ViewerID   string

	Phase      string
	Street     int
	ActiveSeat int
	DealerSeat int
	Message    string
	MyTurn     bool

	MyHand      cards.HeldStack // the viewer's cards still to be placed
	MyDiscarded *cards.Card     // the viewer's discard this street

	Players         []PlayerView
	ShowdownResults []ShowdownPairResult
	DeckCount       int
	DiscardCount    int

	AvailableActions []string // Actions the viewer can take now
}

type PlayerView struct {
	ID                   string
	Name                 string
	Seat                 int
	IsHuman              bool
	IsDealer             bool
	IsActive             bool
	IsCurrent            bool
	Score                int
	LastRoundScoreChange int
	IsFoul               bool
	RoyaltyTotal         int
	Fantasyland          string
	Lines                []LineView
	Hand                 cards.HeldStack // cards dealt this turn, face down unless they belong to the viewer
}

type LineView struct {
	Name        Line
	Slots       []string // display strings, "" for an empty slot
	Complete    bool
	Combination string // e.g. "Pair JJ"
	Description string // long form, e.g. "pair of jacks"
	Category    string
	Value       int64
	Royalty     *hands.Royalty
}

// BuildView constructs a view of the game specific to a viewer. Boards are
// public; only the viewer's hand in progress is shown face up.
func (g *Game) BuildView(viewerID string) GameView {
	view := GameView{
		GameID:          g.ID,
		HandID:          g.HandID,
		HandNumber:      g.HandNumber,
		ViewerID:        viewerID,
		Phase:           g.phase.Name(),
		Street:          g.Street,
		ActiveSeat:      g.CurrentSeat(),
		DealerSeat:      g.DealerSeat,
		Message:         g.Message,
		ShowdownResults: g.ShowdownResults,
		DeckCount:       len(g.Deck),
		DiscardCount:    len(g.DiscardPile),
	}

	inHand := cards.Hold(g.HandInProgress(), cards.FaceUpToOwner)

	view.Players = make([]PlayerView, 0, len(g.Players))
	for _, p := range g.Players {
		isViewer := p.ID == viewerID
		pView := PlayerView{
			ID:                   p.ID,
			Name:                 p.Name,
			Seat:                 p.Seat,
			IsHuman:              p.IsHuman,
			IsDealer:             p.IsDealer,
			IsActive:             p.IsActive,
			IsCurrent:            p.Seat == view.ActiveSeat,
			Score:                p.Score,
			LastRoundScoreChange: p.LastRoundScoreChange,
			IsFoul:               p.IsFoul,
			RoyaltyTotal:         p.RoyaltyTotal(),
			Fantasyland:          string(p.Fantasyland),
			Lines:                buildLineViews(p),
		}

		if pView.IsCurrent {
			pView.Hand = inHand.Masked(isViewer)
			if isViewer {
				view.MyTurn = true
				view.MyHand = inHand
			}
		}

		view.Players = append(view.Players, pView)
	}

	if p, ok := g.phase.(Placing); ok && view.MyTurn {
		view.MyDiscarded = p.Discarded
	}

	view.AvailableActions = g.availableActions(view.MyTurn)

	return view
}

func buildLineViews(p *Player) []LineView {
	lines := make([]LineView, 0, len(Lines))
	for _, line := range Lines {
		lv := LineView{
			Name:     line,
			Slots:    make([]string, line.Size()),
			Complete: p.Board.LineComplete(line),
			Royalty:  p.Royalties[line],
		}
		for i := 0; i < line.Size(); i++ {
			if c := p.Board.At(line, i); c != nil {
				lv.Slots[i] = c.String()
			}
		}
		if ev := p.Combinations[line]; ev != nil {
			lv.Combination = ev.Name
			lv.Description = hands.Describe(*ev)
			lv.Category = ev.Category.String()
			lv.Value = ev.Value
		}
		lines = append(lines, lv)
	}
	return lines
}

// availableActions determines what the viewer can do in the current state
func (g *Game) availableActions(myTurn bool) []string {
	actions := []string{"start_game"}

	switch ph := g.phase.(type) {
	case Placing:
		if !myTurn {
			break
		}
		if len(ph.Hand) > 0 && len(ph.Placed) < ph.Required() {
			actions = append(actions, "place_card")
		}
		if ph.Street == 1 && len(ph.Placed) > 0 {
			actions = append(actions, "return_card_to_hand")
		}
		if ph.Street > 1 && ph.Discarded == nil {
			actions = append(actions, "discard_card")
		}
		if ph.Complete() {
			actions = append(actions, "confirm_turn")
		}

	case RoundOver:
		actions = append(actions, "start_next_hand")
	}

	return actions
}
