package connection

import (
	"sync"

	"github.com/gorilla/websocket"

	"github.com/lazharichir/ofc/table"
)

// Client is one websocket connection and the private game it plays
type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte
	Loop *table.GameLoop
	// OnClose runs once the session's loop has stopped
	OnClose func()

	unsubscribe func()
}

// Attach starts the client's loop and keeps the subscription so Close can remove it
func (c *Client) Attach(loop *table.GameLoop, subscriber table.Subscriber) {
	c.Loop = loop
	c.unsubscribe = loop.Subscribe(subscriber)
	loop.Start()
}

// close stops the session. The send channel is closed last so nothing the
// loop publishes on the way out can hit a closed channel.
func (c *Client) close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
	if c.Loop != nil {
		c.Loop.Stop()
	}
	if c.OnClose != nil {
		c.OnClose()
	}
	close(c.Send)
}

// Manager handles all client connections
type Manager struct {
	clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex
}

// NewManager creates a new connection manager
func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Start begins processing connection events until done is closed
func (m *Manager) Start(done <-chan struct{}) {
	for {
		select {
		case <-done:
			m.closeAll()
			return

		case client := <-m.Register:
			m.mutex.Lock()
			m.clients[client.ID] = client
			m.mutex.Unlock()

		case client := <-m.Unregister:
			m.mutex.Lock()
			_, ok := m.clients[client.ID]
			delete(m.clients, client.ID)
			m.mutex.Unlock()

			// outside the lock: stopping the loop waits for publishes that
			// go through SendToClient
			if ok {
				client.close()
			}
		}
	}
}

func (m *Manager) closeAll() {
	m.mutex.Lock()
	clients := make([]*Client, 0, len(m.clients))
	for id, client := range m.clients {
		clients = append(clients, client)
		delete(m.clients, id)
	}
	m.mutex.Unlock()

	for _, client := range clients {
		client.close()
	}
}

// SendToClient queues a message for a client. It reports false when the
// client is gone or too slow to keep up.
func (m *Manager) SendToClient(clientID string, message []byte) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	client, ok := m.clients[clientID]
	if !ok {
		return false
	}

	select {
	case client.Send <- message:
		return true
	default:
		return false
	}
}

// Count returns the number of live sessions
func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.clients)
}
