package server

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/lazharichir/ofc/config"
	"github.com/lazharichir/ofc/domain"
	"github.com/lazharichir/ofc/domain/events"
	"github.com/lazharichir/ofc/server/connection"
	serverevents "github.com/lazharichir/ofc/server/events"
	"github.com/lazharichir/ofc/server/handlers"
	"github.com/lazharichir/ofc/table"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	commandTimeout = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // the UI is served from anywhere during development
	},
}

// Server is the websocket bridge. Every connection plays its own game.
type Server struct {
	cfg        config.Config
	logger     *zap.Logger
	connMgr    *connection.Manager
	cmdRouter  *handlers.CommandRouter
	dispatcher *serverevents.Dispatcher
	eventStore *events.InMemoryEventStore
	httpServer *http.Server
	done       chan struct{}
}

// HealthResponse is returned by GET /api/health
type HealthResponse struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}

// corsMiddleware adds CORS headers to all responses
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// NewServer creates a server for the given configuration
func NewServer(cfg config.Config, logger *zap.Logger) *Server {
	connMgr := connection.NewManager()

	s := &Server{
		cfg:        cfg,
		logger:     logger,
		connMgr:    connMgr,
		cmdRouter:  handlers.NewCommandRouter(handlers.Defaults{Players: cfg.Players, StartingStake: cfg.StartingStake}),
		dispatcher: serverevents.NewDispatcher(connMgr, logger),
		eventStore: events.NewInMemoryEventStore(),
		done:       make(chan struct{}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/api/health", corsMiddleware(s.handleHealth))
	mux.HandleFunc("/api/games/{id}/events", corsMiddleware(s.handleGameEvents))
	s.httpServer = &http.Server{Addr: cfg.Addr, Handler: mux}

	return s
}

// Handler exposes the routes, mostly for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start runs the connection manager and serves until Shutdown
func (s *Server) Start() error {
	go s.connMgr.Start(s.done)

	s.logger.Info("starting server", zap.String("addr", s.cfg.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and ends every session
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	close(s.done)
	return err
}

// newLoop builds a private game for one connection
func (s *Server) newLoop(clientID string) (*table.GameLoop, string) {
	logger := s.logger.With(zap.String("client_id", clientID))

	seed := s.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	game := domain.NewGame(
		domain.WithLogger(logger),
		domain.WithRules(s.cfg.Rules()),
		domain.WithRand(rand.New(rand.NewSource(seed))),
	)

	loop := table.NewGameLoop(game, s.eventStore, table.Options{
		Delays:       s.cfg.LoopDelays(),
		AutoNextHand: s.cfg.AutoNextHand,
		Debug:        s.cfg.Debug,
		Logger:       logger,
	})
	return loop, game.ID
}

// handleWebSocket upgrades the connection and starts its session
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	clientID := uuid.NewString()
	s.logger.Info("client connected", zap.String("remote_addr", r.RemoteAddr), zap.String("client_id", clientID))

	loop, gameID := s.newLoop(clientID)
	client := &connection.Client{
		ID:   clientID,
		Conn: conn,
		Send: make(chan []byte, 256),
		OnClose: func() {
			s.eventStore.Forget(gameID)
		},
	}
	client.Attach(loop, s.dispatcher.Subscriber(clientID))

	// the first view goes straight into the queue, ahead of any update
	if view, err := loop.View(r.Context()); err == nil {
		if data, err := serverevents.Encode(serverevents.EnvelopeView, view); err == nil {
			client.Send <- data
		}
	}

	select {
	case s.connMgr.Register <- client:
	case <-s.done:
		loop.Stop()
		conn.Close()
		return
	}

	go s.readPump(client)
	go s.writePump(client)
}

// readPump reads messages from the WebSocket connection
func (s *Server) readPump(client *connection.Client) {
	defer func() {
		select {
		case s.connMgr.Unregister <- client:
		case <-s.done:
		}
		client.Conn.Close()
	}()

	client.Conn.SetReadLimit(maxMessageSize)
	client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		return client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.Warn("websocket read failed", zap.String("client_id", client.ID), zap.Error(err))
			}
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		err = s.cmdRouter.HandleCommand(ctx, client, message)
		cancel()
		if err != nil {
			s.logger.Debug("command failed", zap.String("client_id", client.ID), zap.Error(err))
			s.dispatcher.SendError(client.ID, err)
		}
	}
}

// writePump sends queued messages and keeps the connection alive with pings
func (s *Server) writePump(client *connection.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				s.logger.Warn("websocket write failed", zap.String("client_id", client.ID), zap.Error(err))
				return
			}

		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleHealth reports liveness and the number of sessions
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HealthResponse{Status: "ok", Sessions: s.connMgr.Count()})
}

// GameEvent is one entry of a session's history
type GameEvent struct {
	Name    string `json:"name"`
	Payload any    `json:"payload"`
}

// handleGameEvents returns everything a live session has recorded so far
func (s *Server) handleGameEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	recorded, err := s.eventStore.LoadEvents(r.PathValue("id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if len(recorded) == 0 {
		http.Error(w, "Game not found", http.StatusNotFound)
		return
	}

	history := make([]GameEvent, len(recorded))
	for i, e := range recorded {
		history[i] = GameEvent{Name: e.Name(), Payload: e}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(history)
}
