package table

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lazharichir/ofc/domain"
	"github.com/lazharichir/ofc/domain/commands"
	"github.com/lazharichir/ofc/domain/events"
)

// ErrLoopStopped is returned to callers once the loop has shut down
var ErrLoopStopped = errors.New("game loop stopped")

// Delays are the display pauses before each automatic transition
type Delays struct {
	Deal       time.Duration
	AIThinking time.Duration
	Showdown   time.Duration
	NextHand   time.Duration
}

// For returns the pause configured for an engine delay
func (d Delays) For(delay domain.Delay) time.Duration {
	switch delay {
	case domain.DelayDeal:
		return d.Deal
	case domain.DelayAIThinking:
		return d.AIThinking
	case domain.DelayShowdown:
		return d.Showdown
	case domain.DelayNextHand:
		return d.NextHand
	default:
		return 0
	}
}

// Options configure a GameLoop
type Options struct {
	Delays       Delays
	AutoNextHand bool
	Debug        bool // dump every event to the log
	Logger       *zap.Logger
}

// Update is pushed to subscribers for every event. Err is set instead of
// Event when an automatic transition failed.
type Update struct {
	Event events.Event
	Err   error
	View  domain.GameView
}

// Subscriber receives updates on the loop goroutine; it must not block
type Subscriber func(Update)

type request struct {
	cmd   commands.Command
	view  bool
	reply chan response
}

type response struct {
	view domain.GameView
	err  error
}

// GameLoop is the single writer of one game. Commands and timers are handled
// one at a time on the loop goroutine.
type GameLoop struct {
	game       *domain.Game
	options    Options
	eventStore events.EventStore
	logger     *zap.Logger

	requestChan chan request
	timerChan   chan uint64
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup

	// owned by the loop goroutine
	timerGen    uint64
	cancelTimer context.CancelFunc

	stateUpdateLock sync.Mutex
	currentPhase    string
	subscribers     map[int]Subscriber
	nextSubscriber  int
}

// NewGameLoop wraps a game. Nothing runs until Start.
func NewGameLoop(game *domain.Game, eventStore events.EventStore, options Options) *GameLoop {
	ctx, cancel := context.WithCancel(context.Background())

	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	g := &GameLoop{
		game:         game,
		options:      options,
		eventStore:   eventStore,
		logger:       logger.With(zap.String("game_id", game.ID)),
		requestChan:  make(chan request),
		timerChan:    make(chan uint64),
		ctx:          ctx,
		cancel:       cancel,
		currentPhase: game.Phase().Name(),
		subscribers:  make(map[int]Subscriber),
	}

	game.RegisterEventHandler(g.onEvent)

	return g
}

// Start runs the loop in its own goroutine
func (g *GameLoop) Start() {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		g.runLoop()
	}()
}

// Stop cancels pending timers and waits for the loop to exit
func (g *GameLoop) Stop() {
	g.cancel()
	g.wg.Wait()
}

// Subscribe registers fn for every update and returns a function removing it
func (g *GameLoop) Subscribe(fn Subscriber) func() {
	g.stateUpdateLock.Lock()
	defer g.stateUpdateLock.Unlock()

	id := g.nextSubscriber
	g.nextSubscriber++
	g.subscribers[id] = fn

	return func() {
		g.stateUpdateLock.Lock()
		defer g.stateUpdateLock.Unlock()
		delete(g.subscribers, id)
	}
}

// Phase returns the name of the game's current phase
func (g *GameLoop) Phase() string {
	g.stateUpdateLock.Lock()
	defer g.stateUpdateLock.Unlock()
	return g.currentPhase
}

// Submit applies a command on the loop and returns the engine's verdict
func (g *GameLoop) Submit(ctx context.Context, cmd commands.Command) error {
	_, err := g.do(ctx, request{cmd: cmd})
	return err
}

// View returns the game as the human seat sees it
func (g *GameLoop) View(ctx context.Context) (domain.GameView, error) {
	return g.do(ctx, request{view: true})
}

func (g *GameLoop) do(ctx context.Context, req request) (domain.GameView, error) {
	req.reply = make(chan response, 1)

	select {
	case g.requestChan <- req:
	case <-ctx.Done():
		return domain.GameView{}, ctx.Err()
	case <-g.ctx.Done():
		return domain.GameView{}, ErrLoopStopped
	}

	select {
	case res := <-req.reply:
		return res.view, res.err
	case <-ctx.Done():
		return domain.GameView{}, ctx.Err()
	case <-g.ctx.Done():
		return domain.GameView{}, ErrLoopStopped
	}
}

// runLoop is the main loop that processes requests and timers
func (g *GameLoop) runLoop() {
	defer g.stopTimer()

	// a game handed over mid-hand may already have a transition pending
	g.schedule()

	for {
		select {
		case <-g.ctx.Done():
			return

		case req := <-g.requestChan:
			req.reply <- g.handleRequest(req)

		case gen := <-g.timerChan:
			if gen != g.timerGen {
				// fired after a command replaced it
				continue
			}
			g.handleTimer()
		}
	}
}

// schedule arms the timer for the next automatic transition, replacing any
// timer already pending
func (g *GameLoop) schedule() {
	g.stopTimer()

	delay, ok := g.pending()
	if !ok {
		return
	}

	g.timerGen++
	gen := g.timerGen
	timerCtx, cancel := context.WithCancel(g.ctx)
	g.cancelTimer = cancel
	timer := time.NewTimer(g.options.Delays.For(delay))

	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		defer timer.Stop()

		select {
		case <-timerCtx.Done():
			return
		case <-timer.C:
			select {
			case g.timerChan <- gen:
			case <-timerCtx.Done():
			}
		}
	}()
}

func (g *GameLoop) stopTimer() {
	if g.cancelTimer != nil {
		g.cancelTimer()
		g.cancelTimer = nil
	}
	g.timerGen++
}

func (g *GameLoop) pending() (domain.Delay, bool) {
	if delay, ok := g.game.Pending(); ok {
		return delay, true
	}
	if _, over := g.game.Phase().(domain.RoundOver); over && g.options.AutoNextHand {
		return domain.DelayNextHand, true
	}
	return "", false
}

// viewerID is the human seat's player, or "" when every seat is automated
func (g *GameLoop) viewerID() string {
	if p, ok := g.game.HumanPlayer(); ok {
		return p.ID
	}
	return ""
}

func (g *GameLoop) publish(update Update) {
	g.stateUpdateLock.Lock()
	subscribers := make([]Subscriber, 0, len(g.subscribers))
	for _, fn := range g.subscribers {
		subscribers = append(subscribers, fn)
	}
	g.stateUpdateLock.Unlock()

	for _, fn := range subscribers {
		fn(update)
	}
}
