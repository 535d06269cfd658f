package services

import (
	"encoding/json"
	"log"

	"github.com/dil-bolahlautner/automatic-poll-generator/internal/models"
	"github.com/dil-bolahlautner/automatic-poll-generator/internal/ws"

	"github.com/google/uuid"
)

// Inbound message types.
const (
	MessageRegisterUser = "REGISTER_USER"
	MessageCreateEvent  = "CREATE_EVENT"
	MessageJoinEvent    = "JOIN_EVENT"
	MessageLeaveEvent   = "LEAVE_EVENT"
	MessageVote         = "VOTE"
)

// Outbound message types.
const (
	MessageEventCreated    = "EVENT_CREATED"
	MessageEventUpdated    = "EVENT_UPDATED"
	MessageVoteReceived    = "VOTE_RECEIVED"
	MessageParticipantLeft = "PARTICIPANT_LEFT"
	MessageError           = "ERROR"
)

type InboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type CreateEventPayload struct {
	Name    string   `json:"name"`
	Tickets []string `json:"tickets"`
}

type JoinEventPayload struct {
	EventID string `json:"eventId"`
}

type LeaveEventPayload struct {
	EventID string `json:"eventId"`
}

type VotePayload struct {
	EventID   string      `json:"eventId"`
	TicketKey string      `json:"ticketKey"`
	Vote      interface{} `json:"vote"`
}

type EventCreatedPayload struct {
	Event   *models.Event `json:"event"`
	EventID string        `json:"eventId"`
}

type EventUpdatedPayload struct {
	Event *models.Event `json:"event"`
}

type VoteReceivedPayload struct {
	Event     *models.Event `json:"event"`
	TicketKey string        `json:"ticketKey"`
	UserID    string        `json:"userId"`
	Vote      interface{}   `json:"vote"`
}

type ParticipantLeftPayload struct {
	UserID string        `json:"userId"`
	Event  *models.Event `json:"event,omitempty"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// EstimationService coordinates live estimation events: it applies inbound
// protocol messages to the event store and fans the resulting state out to
// every connected participant. It owns the connection registry and the
// event store; connection handlers get it by reference, never through a
// global.
type EstimationService struct {
	events   *EventService
	registry *ws.Registry
}

func NewEstimationService(events *EventService, registry *ws.Registry) *EstimationService {
	return &EstimationService{events: events, registry: registry}
}

// Registry exposes the connection registry so the transport layer can
// register endpoints.
func (s *EstimationService) Registry() *ws.Registry {
	return s.registry
}

// HandleMessage applies one inbound frame from an authenticated sender.
// Malformed frames are dropped without touching any state; a failure while
// handling one message must never take the connection down, so nothing
// here returns an error to the transport.
func (s *EstimationService) HandleMessage(userID, userName string, data []byte) {
	var msg InboundMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Printf("estimation: dropping unparseable frame from %s: %v", userID, err)
		return
	}

	switch msg.Type {
	case MessageRegisterUser:
		// Registration happens over REST before the socket is opened;
		// accepted for wire compatibility.
	case MessageCreateEvent:
		s.handleCreate(userID, userName, msg.Payload)
	case MessageJoinEvent:
		s.handleJoin(userID, userName, msg.Payload)
	case MessageLeaveEvent:
		s.handleLeave(userID, msg.Payload)
	case MessageVote:
		s.handleVote(userID, msg.Payload)
	default:
		log.Printf("estimation: dropping unknown message type %q from %s", msg.Type, userID)
	}
}

func (s *EstimationService) handleCreate(userID, userName string, payload json.RawMessage) {
	var req CreateEventPayload
	if err := json.Unmarshal(payload, &req); err != nil || req.Name == "" {
		log.Printf("estimation: dropping malformed CREATE_EVENT from %s", userID)
		return
	}

	eventID := uuid.NewString()
	event, err := s.events.Create(eventID, req.Name, userID, userName, req.Tickets)
	if err != nil {
		// A uuid collision would be an internal invariant violation, not
		// something the sender can act on.
		log.Printf("estimation: create failed for %s: %v", userID, err)
		return
	}

	event.Mutex.Lock()
	snap := event.Snapshot()
	event.Mutex.Unlock()

	s.registry.Send(userID, ws.Message{
		Type:    MessageEventCreated,
		Payload: EventCreatedPayload{Event: snap, EventID: eventID},
	})
	log.Printf("estimation: event %s (%q) created by %s", eventID, req.Name, userID)
}

func (s *EstimationService) handleJoin(userID, userName string, payload json.RawMessage) {
	var req JoinEventPayload
	if err := json.Unmarshal(payload, &req); err != nil || req.EventID == "" {
		log.Printf("estimation: dropping malformed JOIN_EVENT from %s", userID)
		return
	}

	event, ok := s.events.Get(req.EventID)
	if ok {
		ok = s.lockLive(event)
	}
	if !ok {
		s.registry.Send(userID, ws.Message{
			Type:    MessageError,
			Payload: ErrorPayload{Message: "Event not found"},
		})
		return
	}
	defer event.Mutex.Unlock()

	event.AddParticipant(userID, userName)
	snap := event.Snapshot()
	s.broadcast(snap, ws.Message{
		Type:    MessageEventUpdated,
		Payload: EventUpdatedPayload{Event: snap},
	})
}

func (s *EstimationService) handleLeave(userID string, payload json.RawMessage) {
	var req LeaveEventPayload
	if err := json.Unmarshal(payload, &req); err != nil || req.EventID == "" {
		log.Printf("estimation: dropping malformed LEAVE_EVENT from %s", userID)
		return
	}

	event, ok := s.events.Get(req.EventID)
	if !ok || !s.lockLive(event) {
		return
	}
	defer event.Mutex.Unlock()

	if !event.RemoveParticipant(userID) {
		return
	}

	if len(event.Participants) == 0 {
		s.events.Delete(event.ID)
		return
	}

	snap := event.Snapshot()
	s.broadcast(snap, ws.Message{
		Type:    MessageEventUpdated,
		Payload: EventUpdatedPayload{Event: snap},
	})
}

func (s *EstimationService) handleVote(userID string, payload json.RawMessage) {
	var req VotePayload
	if err := json.Unmarshal(payload, &req); err != nil || req.EventID == "" || req.TicketKey == "" || req.Vote == nil {
		log.Printf("estimation: dropping malformed VOTE from %s", userID)
		return
	}

	event, ok := s.events.Get(req.EventID)
	if !ok || !s.lockLive(event) {
		return
	}
	defer event.Mutex.Unlock()

	ticket := event.FindTicket(req.TicketKey)
	if ticket == nil {
		return
	}

	if ticket.Votes == nil {
		ticket.Votes = make(map[string]interface{})
	}
	ticket.Votes[userID] = req.Vote

	snap := event.Snapshot()
	s.broadcast(snap, ws.Message{
		Type:    MessageVoteReceived,
		Payload: VoteReceivedPayload{Event: snap, TicketKey: req.TicketKey, UserID: userID, Vote: req.Vote},
	})
}

// HandleDisconnect reconciles a lost connection: the identity is
// unregistered and removed from every event it participates in, with a
// departure notice to each event's remaining participants. Each event is
// handled independently. The connection handler invokes this exactly once
// per connection loss.
func (s *EstimationService) HandleDisconnect(userID string) {
	s.registry.Unregister(userID)

	for _, event := range s.events.All() {
		if !s.lockLive(event) {
			continue
		}

		if !event.RemoveParticipant(userID) {
			event.Mutex.Unlock()
			continue
		}

		if len(event.Participants) == 0 {
			s.events.Delete(event.ID)
			event.Mutex.Unlock()
			continue
		}

		snap := event.Snapshot()
		s.broadcast(snap, ws.Message{
			Type:    MessageParticipantLeft,
			Payload: ParticipantLeftPayload{UserID: userID, Event: snap},
		})
		event.Mutex.Unlock()
	}
}

// lockLive locks the event and confirms it is still the store's live
// aggregate for its id. A concurrent leave or disconnect can empty and
// delete the event between the store lookup and the lock; mutating the
// orphaned aggregate then would match no serial order of the two
// messages, so callers treat a dead event exactly like an absent one.
func (s *EstimationService) lockLive(event *models.Event) bool {
	event.Mutex.Lock()
	if current, ok := s.events.Get(event.ID); !ok || current != event {
		event.Mutex.Unlock()
		return false
	}
	return true
}

// broadcast fans a message out to every participant in the snapshot that
// currently has a live endpoint; offline participants are skipped. Called
// with the event's mutex held so that every observer sees broadcasts in
// mutation order. Delivery itself is a non-blocking enqueue per endpoint.
func (s *EstimationService) broadcast(snap *models.Event, msg ws.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("estimation: marshal error: %v", err)
		return
	}
	for _, p := range snap.Participants {
		s.registry.SendBytes(p.ID, data)
	}
}
