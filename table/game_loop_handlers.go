package table

import (
	"github.com/sanity-io/litter"
	"go.uber.org/zap"

	"github.com/lazharichir/ofc/domain"
	"github.com/lazharichir/ofc/domain/events"
)

// handleRequest applies a command or reads the view. Any pending timer is
// rescheduled from the new state.
func (g *GameLoop) handleRequest(req request) response {
	if req.view {
		return response{view: g.game.BuildView(g.viewerID())}
	}

	if err := domain.Apply(g.game, req.cmd); err != nil {
		g.logger.Debug("command rejected",
			zap.String("command", req.cmd.Name()),
			zap.String("phase", g.game.Phase().Name()),
			zap.Error(err),
		)
		return response{err: err}
	}

	g.logger.Debug("command applied", zap.String("command", req.cmd.Name()))
	g.schedule()
	return response{view: g.game.BuildView(g.viewerID())}
}

// handleTimer runs the transition the last timer was armed for
func (g *GameLoop) handleTimer() {
	var err error
	if _, over := g.game.Phase().(domain.RoundOver); over {
		err = g.game.StartNextHand()
	} else {
		err = g.game.Advance()
	}

	if err != nil {
		// the state is unchanged; leave it to a restart
		g.logger.Error("automatic transition failed",
			zap.String("phase", g.game.Phase().Name()),
			zap.Error(err),
		)
		g.publish(Update{Err: err, View: g.game.BuildView(g.viewerID())})
		g.stopTimer()
		return
	}

	g.schedule()
}

// onEvent is registered on the game and runs inside engine calls, so always
// on the loop goroutine
func (g *GameLoop) onEvent(event events.Event) {
	if g.options.Debug {
		g.logger.Debug("event", zap.String("name", event.Name()), zap.String("dump", litter.Sdump(event)))
	}

	if err := g.eventStore.Append(event); err != nil {
		g.logger.Error("failed to store event", zap.String("name", event.Name()), zap.Error(err))
	}

	if changed, ok := event.(events.PhaseChanged); ok {
		g.stateUpdateLock.Lock()
		g.currentPhase = changed.NewPhase
		g.stateUpdateLock.Unlock()
	}

	g.publish(Update{Event: event, View: g.game.BuildView(g.viewerID())})
}
