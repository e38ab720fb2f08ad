package domain

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lazharichir/ofc/cards"
	"github.com/lazharichir/ofc/domain/events"
)

const (
	MinPlayers = 2
	MaxPlayers = 3
	Streets    = 5
)

// Rules are the table options that change how a hand is played or settled
type Rules struct {
	// CapNetToOpponentStake limits what a player can win from an opponent to
	// what that opponent still has.
	CapNetToOpponentStake bool
	// HumanSeat is the seat played through intents; -1 lets the policy play every seat.
	HumanSeat int
}

// DefaultRules puts the human in seat 0 and settles uncapped
func DefaultRules() Rules {
	return Rules{HumanSeat: 0}
}

// DeckFactory builds the deck for a new hand
type DeckFactory func(r *rand.Rand) cards.Stack

// ShuffledDeck is the default DeckFactory
func ShuffledDeck(r *rand.Rand) cards.Stack {
	deck := cards.NewDeck52()
	deck.Shuffle(r)
	return deck
}

// Game is the whole state of one session: a fixed set of players playing hand
// after hand. It is not safe for concurrent use; table.GameLoop serialises access.
type Game struct {
	ID         string
	HandID     string
	HandNumber int
	Players    []*Player

	Deck        cards.Stack
	DiscardPile cards.Stack

	Street          int
	DealerSeat      int
	ShowdownResults []ShowdownPairResult
	Message         string

	phase         Phase
	rules         Rules
	handStartedAt time.Time
	rng           *rand.Rand
	deckFactory   DeckFactory
	policy        PlacementPolicy
	fantasyland   FantasylandPolicy
	logger        *zap.Logger
	eventHandlers []events.EventHandler
}

// Option configures a Game
type Option func(*Game)

func WithLogger(logger *zap.Logger) Option {
	return func(g *Game) { g.logger = logger }
}

func WithRand(r *rand.Rand) Option {
	return func(g *Game) { g.rng = r }
}

func WithDeckFactory(f DeckFactory) Option {
	return func(g *Game) { g.deckFactory = f }
}

func WithPolicy(p PlacementPolicy) Option {
	return func(g *Game) { g.policy = p }
}

func WithFantasylandPolicy(p FantasylandPolicy) Option {
	return func(g *Game) { g.fantasyland = p }
}

func WithRules(r Rules) Option {
	return func(g *Game) { g.rules = r }
}

// NewGame creates a game in the not_started phase
func NewGame(opts ...Option) *Game {
	g := &Game{
		ID:          uuid.NewString(),
		phase:       NotStarted{},
		rules:       DefaultRules(),
		logger:      zap.NewNop(),
		deckFactory: ShuffledDeck,
		fantasyland: DeferredFantasyland{},
		Message:     "Press start to play",
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if g.policy == nil {
		g.policy = NewRandomFillPolicy(g.rng)
	}
	g.logger = g.logger.With(zap.String("game_id", g.ID))
	return g
}

// Phase returns the current phase
func (g *Game) Phase() Phase {
	return g.phase
}

// Rules returns the rules the game was created with
func (g *Game) Rules() Rules {
	return g.rules
}

// CurrentSeat returns the seat that is acting, or -1 between turns
func (g *Game) CurrentSeat() int {
	return seatOf(g.phase)
}

// PlayerByID finds a player
func (g *Game) PlayerByID(id string) (*Player, bool) {
	for _, p := range g.Players {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// HumanPlayer returns the player driven by intents, if any
func (g *Game) HumanPlayer() (*Player, bool) {
	for _, p := range g.Players {
		if p.IsHuman {
			return p, true
		}
	}
	return nil, false
}

// HandInProgress returns the cards dealt to the acting seat that are not placed yet
func (g *Game) HandInProgress() cards.Stack {
	switch ph := g.phase.(type) {
	case Placing:
		return ph.Hand
	case AIThinking:
		return ph.Hand
	default:
		return nil
	}
}

// CardsAccountedFor counts every card the game owns: deck, discards, boards and
// the hand in progress. It is 52 at all times during a hand.
func (g *Game) CardsAccountedFor() int {
	n := len(g.Deck) + len(g.DiscardPile) + len(g.HandInProgress())
	for _, p := range g.Players {
		n += p.Board.Count()
	}
	return n
}

// RegisterEventHandler registers a callback function that will be called when events occur
func (g *Game) RegisterEventHandler(handler events.EventHandler) {
	g.eventHandlers = append(g.eventHandlers, handler)
}

// emitEvent notifies all registered handlers of a new event
func (g *Game) emitEvent(event events.Event) {
	for _, handler := range g.eventHandlers {
		handler(event)
	}
}

// transition moves to the next phase. An edge missing from phaseEdges is an
// engine bug, not a player error.
func (g *Game) transition(next Phase) {
	from, to := g.phase.kind(), next.kind()
	if !canTransition(from, to) {
		panic(fmt.Sprintf("illegal phase transition %s -> %s", from, to))
	}

	previous := g.phase
	g.phase = next

	g.logger.Debug("phase changed",
		zap.String("from", previous.Name()),
		zap.String("to", next.Name()),
		zap.Int("street", g.Street),
		zap.Int("seat", seatOf(next)),
	)

	g.emitEvent(events.PhaseChanged{
		GameID:        g.ID,
		HandID:        g.HandID,
		PreviousPhase: previous.Name(),
		NewPhase:      next.Name(),
		At:            time.Now(),
	})
}

// StartGame (re)starts the session with fresh players and deals the first hand.
// Anything in flight from a previous game is discarded.
func (g *Game) StartGame(playerCount int, startingStake int) error {
	if playerCount < MinPlayers || playerCount > MaxPlayers {
		return fmt.Errorf("%w: %d (want %d-%d)", ErrInvalidPlayerCount, playerCount, MinPlayers, MaxPlayers)
	}
	if startingStake < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidStake, startingStake)
	}

	g.transition(Starting{})

	g.Players = make([]*Player, playerCount)
	playerIDs := make([]string, playerCount)
	ai := 0
	for seat := 0; seat < playerCount; seat++ {
		human := seat == g.rules.HumanSeat
		name := "You"
		if !human {
			ai++
			name = fmt.Sprintf("AI %d", ai)
		}
		g.Players[seat] = NewPlayer(uuid.NewString(), name, seat, human, startingStake)
		playerIDs[seat] = g.Players[seat].ID
	}

	g.HandNumber = 0
	g.HandID = ""
	g.Deck = nil
	g.DiscardPile = nil
	g.Street = 0
	g.ShowdownResults = nil
	// the first hand rotates the button onto seat 0
	g.DealerSeat = playerCount - 1

	g.logger.Info("game started",
		zap.Int("players", playerCount),
		zap.Int("starting_stake", startingStake),
		zap.Int("human_seat", g.rules.HumanSeat),
	)

	g.emitEvent(events.GameStarted{
		GameID:        g.ID,
		PlayerIDs:     playerIDs,
		StartingStake: startingStake,
		At:            time.Now(),
	})

	g.startHand()
	return nil
}

// StartNextHand deals a new hand once the previous one has been settled
func (g *Game) StartNextHand() error {
	if _, ok := g.phase.(RoundOver); !ok {
		return fmt.Errorf("%w: next hand only after the round is over, not in %s", ErrWrongPhase, g.phase.Name())
	}

	g.startHand()
	return nil
}

func (g *Game) startHand() {
	n := len(g.Players)
	g.HandNumber++
	g.HandID = uuid.NewString()
	g.handStartedAt = time.Now()
	g.DealerSeat = (g.DealerSeat + 1) % n

	for _, p := range g.Players {
		carried := p.Fantasyland
		p.Fantasyland = g.fantasyland.Carry(p)
		if carried != FantasylandNone && p.Fantasyland == FantasylandNone {
			g.logger.Warn("fantasyland is not implemented, resetting",
				zap.String("player_id", p.ID),
				zap.String("state", string(carried)),
			)
			g.emitEvent(events.FantasylandDeferred{
				GameID:   g.ID,
				HandID:   g.HandID,
				PlayerID: p.ID,
				State:    string(carried),
				At:       time.Now(),
			})
		}
	}

	for _, p := range g.Players {
		p.ResetForNewHand()
		p.IsDealer = p.Seat == g.DealerSeat
	}

	g.Deck = g.deckFactory(g.rng)
	g.DiscardPile = cards.NewStack()
	g.ShowdownResults = nil
	g.Street = 1

	g.logger.Info("hand started",
		zap.String("hand_id", g.HandID),
		zap.Int("hand", g.HandNumber),
		zap.Int("dealer_seat", g.DealerSeat),
	)

	g.emitEvent(events.HandStarted{
		GameID:     g.ID,
		HandID:     g.HandID,
		HandNumber: g.HandNumber,
		DealerSeat: g.DealerSeat,
		At:         time.Now(),
	})

	g.Message = fmt.Sprintf("Hand %d: %s deals", g.HandNumber, g.Players[g.DealerSeat].Name)
	g.transition(Dealing{Street: 1, Seat: g.firstSeat()})
}

// firstSeat is the seat after the dealer; it acts first on every street
func (g *Game) firstSeat() int {
	return (g.DealerSeat + 1) % len(g.Players)
}
