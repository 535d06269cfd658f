package models

import (
	"sync"
	"time"
)

const (
	EventStatusActive = "active"
	EventStatusClosed = "closed"
)

// Participant is one identity joined to an event. Exactly one participant
// per event has IsHost set, for the event's entire lifetime.
type Participant struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	IsHost bool   `json:"isHost"`
}

// Ticket is a unit of work being estimated. Votes maps participant id to
// the submitted estimate; re-voting overwrites. A vote survives its voter
// leaving the event.
type Ticket struct {
	Key   string                 `json:"key"`
	Votes map[string]interface{} `json:"votes"`
}

// Event is one live estimation round. All reads and writes of the mutable
// fields must happen with Mutex held; the per-event mutex is what keeps
// concurrent joins, leaves and votes against the same event from losing
// updates.
type Event struct {
	Mutex sync.Mutex `json:"-"`

	ID                 string        `json:"id"`
	Name               string        `json:"name"`
	CreatedAt          time.Time     `json:"createdAt"`
	HostID             string        `json:"hostId"`
	Participants       []Participant `json:"participants"`
	Tickets            []Ticket      `json:"tickets"`
	CurrentTicketIndex int           `json:"currentTicketIndex"`
	Status             string        `json:"status"`
}

// NewEvent creates an event with the creator as its sole host participant,
// optionally seeded with empty tickets for the given keys.
func NewEvent(id, name, hostID, hostName string, ticketKeys []string) *Event {
	tickets := make([]Ticket, 0, len(ticketKeys))
	for _, key := range ticketKeys {
		tickets = append(tickets, Ticket{Key: key, Votes: make(map[string]interface{})})
	}

	return &Event{
		ID:        id,
		Name:      name,
		CreatedAt: time.Now().UTC(),
		HostID:    hostID,
		Participants: []Participant{
			{ID: hostID, Name: hostName, IsHost: true},
		},
		Tickets:            tickets,
		CurrentTicketIndex: 0,
		Status:             EventStatusActive,
	}
}

// Snapshot returns a deep copy safe to marshal and hand to clients after
// the mutex is released. Caller must hold Mutex.
func (e *Event) Snapshot() *Event {
	snap := &Event{
		ID:                 e.ID,
		Name:               e.Name,
		CreatedAt:          e.CreatedAt,
		HostID:             e.HostID,
		CurrentTicketIndex: e.CurrentTicketIndex,
		Status:             e.Status,
	}

	snap.Participants = make([]Participant, len(e.Participants))
	copy(snap.Participants, e.Participants)

	snap.Tickets = make([]Ticket, 0, len(e.Tickets))
	for _, t := range e.Tickets {
		votes := make(map[string]interface{}, len(t.Votes))
		for id, v := range t.Votes {
			votes[id] = v
		}
		snap.Tickets = append(snap.Tickets, Ticket{Key: t.Key, Votes: votes})
	}

	return snap
}

// HasParticipant reports whether the identity is currently joined.
// Caller must hold Mutex.
func (e *Event) HasParticipant(id string) bool {
	for _, p := range e.Participants {
		if p.ID == id {
			return true
		}
	}
	return false
}

// AddParticipant appends a non-host participant. Join order is preserved,
// host first. Caller must hold Mutex.
func (e *Event) AddParticipant(id, name string) {
	e.Participants = append(e.Participants, Participant{ID: id, Name: name})
}

// RemoveParticipant removes every entry with the given id and reports
// whether anything was removed. Caller must hold Mutex.
func (e *Event) RemoveParticipant(id string) bool {
	kept := e.Participants[:0]
	removed := false
	for _, p := range e.Participants {
		if p.ID == id {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	e.Participants = kept
	return removed
}

// FindTicket returns the first ticket with the given key, or nil.
// Caller must hold Mutex.
func (e *Event) FindTicket(key string) *Ticket {
	for i := range e.Tickets {
		if e.Tickets[i].Key == key {
			return &e.Tickets[i]
		}
	}
	return nil
}
