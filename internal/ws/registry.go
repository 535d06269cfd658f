package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// Endpoint is one live client connection able to receive frames. Send must
// never block the caller; delivery to a dead or slow endpoint is dropped.
type Endpoint interface {
	Send(data []byte)
}

// Registry maps participant identities to their live endpoint. At most one
// endpoint per identity; registering again replaces the previous one.
type Registry struct {
	mu        sync.RWMutex
	endpoints map[string]Endpoint
}

func NewRegistry() *Registry {
	return &Registry{
		endpoints: make(map[string]Endpoint),
	}
}

func (r *Registry) Register(userID string, ep Endpoint) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.endpoints[userID] = ep
	log.Printf("ws: user %s connected (online: %d)", userID, len(r.endpoints))
}

// Unregister removes the identity's endpoint. Removing an absent identity
// is a no-op.
func (r *Registry) Unregister(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.endpoints[userID]; !ok {
		return
	}
	delete(r.endpoints, userID)
	log.Printf("ws: user %s disconnected (online: %d)", userID, len(r.endpoints))
}

// Remove deletes the identity's association only if it still points at
// the given endpoint, reporting whether it did. A connection that was
// superseded by a reconnect must not evict its replacement.
func (r *Registry) Remove(userID string, ep Endpoint) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.endpoints[userID]
	if !ok || current != ep {
		return false
	}
	delete(r.endpoints, userID)
	log.Printf("ws: user %s disconnected (online: %d)", userID, len(r.endpoints))
	return true
}

// SendBytes delivers a pre-marshalled frame to the identity's endpoint.
// An unregistered identity is simply offline: the call is a silent no-op.
func (r *Registry) SendBytes(userID string, data []byte) {
	r.mu.RLock()
	ep, ok := r.endpoints[userID]
	r.mu.RUnlock()

	if !ok {
		return
	}
	ep.Send(data)
}

// Send marshals the message and delivers it to the identity's endpoint.
func (r *Registry) Send(userID string, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("ws: marshal error: %v", err)
		return
	}
	r.SendBytes(userID, data)
}

// IsOnline reports whether the identity currently has a live endpoint.
func (r *Registry) IsOnline(userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.endpoints[userID]
	return ok
}
