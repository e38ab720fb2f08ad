package connection

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazharichir/ofc/domain"
	"github.com/lazharichir/ofc/domain/events"
	"github.com/lazharichir/ofc/table"
)

func TestManager_RegisterSendUnregister(t *testing.T) {
	mgr := NewManager()
	done := make(chan struct{})
	defer close(done)
	go mgr.Start(done)

	client := &Client{ID: "c1", Send: make(chan []byte, 1)}
	mgr.Register <- client
	require.Eventually(t, func() bool { return mgr.Count() == 1 }, time.Second, time.Millisecond)

	assert.True(t, mgr.SendToClient("c1", []byte("one")))
	assert.False(t, mgr.SendToClient("c1", []byte("two")), "a full queue drops the message")
	assert.False(t, mgr.SendToClient("c2", []byte("x")))
	assert.Equal(t, []byte("one"), <-client.Send)

	mgr.Unregister <- client
	require.Eventually(t, func() bool { return mgr.Count() == 0 }, time.Second, time.Millisecond)
	_, open := <-client.Send
	assert.False(t, open)
}

func TestManager_UnregisterStopsLoop(t *testing.T) {
	mgr := NewManager()
	done := make(chan struct{})
	go mgr.Start(done)

	loop := table.NewGameLoop(domain.NewGame(), events.NewInMemoryEventStore(), table.Options{})
	client := &Client{ID: "c1", Send: make(chan []byte, 1)}
	client.Attach(loop, func(table.Update) {})
	mgr.Register <- client
	mgr.Unregister <- client

	require.Eventually(t, func() bool {
		_, err := loop.View(t.Context())
		return errors.Is(err, table.ErrLoopStopped)
	}, time.Second, time.Millisecond)

	close(done)
}
