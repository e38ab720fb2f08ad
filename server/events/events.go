package events

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/lazharichir/ofc/domain"
	"github.com/lazharichir/ofc/server/connection"
	"github.com/lazharichir/ofc/table"
)

const (
	EnvelopeView  = "view"
	EnvelopeError = "error"
)

// EventEnvelope wraps an event with its name for client consumption
type EventEnvelope struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

// ErrorPayload is sent when a command is rejected or an automatic step fails
type ErrorPayload struct {
	Message string `json:"message"`
}

// Dispatcher turns loop updates into envelopes for one client
type Dispatcher struct {
	connMgr *connection.Manager
	logger  *zap.Logger
}

// NewDispatcher creates a new event dispatcher
func NewDispatcher(connMgr *connection.Manager, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		connMgr: connMgr,
		logger:  logger,
	}
}

// Subscriber returns the loop subscriber for a client
func (d *Dispatcher) Subscriber(clientID string) table.Subscriber {
	return func(update table.Update) {
		d.HandleUpdate(clientID, update)
	}
}

// HandleUpdate sends the event (or error) followed by the fresh view
func (d *Dispatcher) HandleUpdate(clientID string, update table.Update) {
	switch {
	case update.Err != nil:
		d.SendError(clientID, update.Err)
	case update.Event != nil:
		d.send(clientID, update.Event.Name(), update.Event)
	}
	d.SendView(clientID, update.View)
}

// SendView pushes a view to the client
func (d *Dispatcher) SendView(clientID string, view domain.GameView) {
	d.send(clientID, EnvelopeView, view)
}

// SendError pushes an error message to the client
func (d *Dispatcher) SendError(clientID string, err error) {
	d.send(clientID, EnvelopeError, ErrorPayload{Message: err.Error()})
}

func (d *Dispatcher) send(clientID string, name string, payload any) {
	data, err := Encode(name, payload)
	if err != nil {
		d.logger.Error("failed to encode envelope", zap.String("name", name), zap.Error(err))
		return
	}

	if !d.connMgr.SendToClient(clientID, data) {
		d.logger.Warn("dropped message", zap.String("client_id", clientID), zap.String("name", name))
	}
}

// Encode builds the JSON envelope for a payload
func Encode(name string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(EventEnvelope{Name: name, Payload: body})
}
