package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lazharichir/ofc/config"
	"github.com/lazharichir/ofc/domain"
	serverevents "github.com/lazharichir/ofc/server/events"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	cfg := config.Default()
	cfg.Players = 2
	cfg.Seed = 7
	cfg.Delays = config.Delays{}
	cfg.AutoNextHand = false

	s := NewServer(cfg, zap.NewNop())
	go s.connMgr.Start(s.done)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		ts.Close()
		close(s.done)
	})
	return s, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) serverevents.EventEnvelope {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var env serverevents.EventEnvelope
	require.NoError(t, conn.ReadJSON(&env))
	return env
}

// readUntil skips envelopes until one matches
func readUntil(t *testing.T, conn *websocket.Conn, match func(serverevents.EventEnvelope) bool) serverevents.EventEnvelope {
	t.Helper()
	for {
		env := readEnvelope(t, conn)
		if match(env) {
			return env
		}
	}
}

func decodeView(t *testing.T, env serverevents.EventEnvelope) domain.GameView {
	t.Helper()
	require.Equal(t, serverevents.EnvelopeView, env.Name)
	var view domain.GameView
	require.NoError(t, json.Unmarshal(env.Payload, &view))
	return view
}

func TestServer_SessionFlow(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)

	first := decodeView(t, readEnvelope(t, conn))
	assert.Equal(t, "not_started", first.Phase)
	assert.Equal(t, []string{"start_game"}, first.AvailableActions)

	require.NoError(t, conn.WriteJSON(map[string]any{"name": "START_GAME"}))

	env := readUntil(t, conn, func(e serverevents.EventEnvelope) bool { return e.Name == "GAME_STARTED" })
	var started struct{ PlayerIDs []string }
	require.NoError(t, json.Unmarshal(env.Payload, &started))
	assert.Len(t, started.PlayerIDs, 2)

	var view domain.GameView
	readUntil(t, conn, func(e serverevents.EventEnvelope) bool {
		if e.Name != serverevents.EnvelopeView {
			return false
		}
		view = decodeView(t, e)
		return view.MyTurn
	})
	assert.Equal(t, "placing_street_1", view.Phase)
	require.Len(t, view.MyHand, 5)

	require.NoError(t, conn.WriteJSON(map[string]any{"name": "CONFIRM_TURN"}))
	env = readUntil(t, conn, func(e serverevents.EventEnvelope) bool { return e.Name == serverevents.EnvelopeError })
	var payload serverevents.ErrorPayload
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	assert.Contains(t, payload.Message, domain.ErrTurnIncomplete.Error())

	card := view.MyHand[0].Card
	require.NoError(t, conn.WriteJSON(map[string]any{"name": "PLACE_CARD", "cardId": card.ID, "line": "bottom", "slot": 0}))
	env = readUntil(t, conn, func(e serverevents.EventEnvelope) bool { return e.Name == "CARD_PLACED" })
	var placed struct {
		CardID string
		Line   string
	}
	require.NoError(t, json.Unmarshal(env.Payload, &placed))
	assert.Equal(t, card.ID, placed.CardID)
	assert.Equal(t, "bottom", placed.Line)

	require.NoError(t, conn.WriteJSON(map[string]any{"name": "FOLD"}))
	env = readUntil(t, conn, func(e serverevents.EventEnvelope) bool { return e.Name == serverevents.EnvelopeError })
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	assert.Contains(t, payload.Message, "FOLD")
}

func TestServer_Health(t *testing.T) {
	s, ts := newTestServer(t)

	health := func() HealthResponse {
		resp, err := http.Get(ts.URL + "/api/health")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
		var h HealthResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&h))
		return h
	}

	assert.Equal(t, HealthResponse{Status: "ok", Sessions: 0}, health())

	conn := dial(t, ts)
	readEnvelope(t, conn)
	require.Eventually(t, func() bool { return s.connMgr.Count() == 1 }, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, health().Sessions)

	conn.Close()
	require.Eventually(t, func() bool { return s.connMgr.Count() == 0 }, 5*time.Second, 10*time.Millisecond)

	resp, err := http.Post(ts.URL+"/api/health", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestServer_GameEvents(t *testing.T) {
	s, ts := newTestServer(t)
	conn := dial(t, ts)
	first := decodeView(t, readEnvelope(t, conn))

	require.NoError(t, conn.WriteJSON(map[string]any{"name": "START_GAME"}))
	readUntil(t, conn, func(e serverevents.EventEnvelope) bool { return e.Name == "HAND_STARTED" })

	resp, err := http.Get(ts.URL + "/api/games/" + first.GameID + "/events")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var history []struct{ Name string }
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&history))
	require.GreaterOrEqual(t, len(history), 3)
	assert.Equal(t, "PHASE_CHANGED", history[0].Name)
	assert.Equal(t, "GAME_STARTED", history[1].Name)

	missing, err := http.Get(ts.URL + "/api/games/nope/events")
	require.NoError(t, err)
	missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)

	// the history goes away with the session
	conn.Close()
	require.Eventually(t, func() bool {
		evs, err := s.eventStore.LoadEvents(first.GameID)
		return err == nil && len(evs) == 0
	}, 5*time.Second, 10*time.Millisecond)
}
