package events

import (
	"errors"
	"sync"
)

// ErrMissingGameID is returned when an event cannot be attributed to a game.
var ErrMissingGameID = errors.New("event has no game ID")

// EventStore is the interface for storing and retrieving events.
type EventStore interface {
	Append(event Event) error
	LoadEvents(gameID string) ([]Event, error)
}

// InMemoryEventStore keeps events in memory, per game. Nothing survives a restart.
type InMemoryEventStore struct {
	events map[string][]Event
	mutex  sync.RWMutex
}

// NewInMemoryEventStore creates a new in-memory event store.
func NewInMemoryEventStore() *InMemoryEventStore {
	return &InMemoryEventStore{
		events: make(map[string][]Event),
	}
}

// Append adds a new event to the store.
func (s *InMemoryEventStore) Append(event Event) error {
	gameID := ExtractGameID(event)
	if gameID == "" {
		return ErrMissingGameID
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.events[gameID] = append(s.events[gameID], event)
	return nil
}

// LoadEvents retrieves all events for the given game.
func (s *InMemoryEventStore) LoadEvents(gameID string) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	events, exists := s.events[gameID]
	if !exists {
		return []Event{}, nil
	}

	// Make a copy to avoid potential race conditions
	result := make([]Event, len(events))
	copy(result, events)
	return result, nil
}

// Forget drops every event recorded for a game.
func (s *InMemoryEventStore) Forget(gameID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.events, gameID)
}
