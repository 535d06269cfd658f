package services

import (
	"sync"

	"github.com/dil-bolahlautner/automatic-poll-generator/internal/models"
)

// EventService is the in-memory store of live estimation events. The map
// lock only guards membership; each event carries its own mutex for
// mutations of its state. Events never outlive their last participant and
// nothing is persisted across restarts.
type EventService struct {
	mu     sync.RWMutex
	events map[string]*models.Event
}

func NewEventService() *EventService {
	return &EventService{
		events: make(map[string]*models.Event),
	}
}

// Create inserts a new event with the creator as sole host participant.
// Returns models.ErrEventExists if the id is already taken.
func (s *EventService) Create(id, name, hostID, hostName string, ticketKeys []string) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.events[id]; exists {
		return nil, models.ErrEventExists
	}

	event := models.NewEvent(id, name, hostID, hostName, ticketKeys)
	s.events[id] = event
	return event, nil
}

func (s *EventService) Get(id string) (*models.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	event, ok := s.events[id]
	return event, ok
}

// Delete removes the event. Deleting an absent id is a no-op.
func (s *EventService) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.events, id)
}

// All returns the live event pointers. Callers that touch event state must
// take each event's mutex themselves.
func (s *EventService) All() []*models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]*models.Event, 0, len(s.events))
	for _, event := range s.events {
		events = append(events, event)
	}
	return events
}

// List returns deep-copied snapshots of every live event, safe to marshal.
func (s *EventService) List() []*models.Event {
	snapshots := make([]*models.Event, 0)
	for _, event := range s.All() {
		event.Mutex.Lock()
		snapshots = append(snapshots, event.Snapshot())
		event.Mutex.Unlock()
	}
	return snapshots
}

// GetSnapshot returns a deep-copied snapshot of one event.
func (s *EventService) GetSnapshot(id string) (*models.Event, bool) {
	event, ok := s.Get(id)
	if !ok {
		return nil, false
	}
	event.Mutex.Lock()
	defer event.Mutex.Unlock()
	return event.Snapshot(), true
}

// Count reports how many events are currently live.
func (s *EventService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.events)
}
