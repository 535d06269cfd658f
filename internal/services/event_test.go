package services_test

import (
	"errors"
	"testing"

	"github.com/dil-bolahlautner/automatic-poll-generator/internal/models"
	"github.com/dil-bolahlautner/automatic-poll-generator/internal/services"
)

func TestEventServiceCreateAndGet(t *testing.T) {
	store := services.NewEventService()

	event, err := store.Create("e1", "Sprint 4", "h1", "Helen", []string{"T1", "T2"})
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}
	if event.ID != "e1" || event.HostID != "h1" {
		t.Fatalf("unexpected event: %+v", event)
	}
	if len(event.Tickets) != 2 {
		t.Fatalf("expected 2 seeded tickets, got %d", len(event.Tickets))
	}

	got, ok := store.Get("e1")
	if !ok || got.ID != "e1" {
		t.Fatalf("Get: expected stored event back")
	}
	if _, ok := store.Get("e2"); ok {
		t.Fatalf("Get: expected miss for unknown id")
	}
}

func TestEventServiceDuplicateID(t *testing.T) {
	store := services.NewEventService()

	if _, err := store.Create("e1", "Sprint 4", "h1", "Helen", nil); err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}
	if _, err := store.Create("e1", "Sprint 5", "h2", "Hank", nil); !errors.Is(err, models.ErrEventExists) {
		t.Fatalf("expected ErrEventExists, got %v", err)
	}
	if store.Count() != 1 {
		t.Fatalf("duplicate create must not add an event")
	}
}

func TestEventServiceDelete(t *testing.T) {
	store := services.NewEventService()

	store.Create("e1", "Sprint 4", "h1", "Helen", nil)
	store.Delete("e1")
	if store.Count() != 0 {
		t.Fatalf("expected empty store after delete")
	}
	// Deleting an absent id is a no-op.
	store.Delete("e1")
}

func TestEventServiceListReturnsSnapshots(t *testing.T) {
	store := services.NewEventService()
	event, _ := store.Create("e1", "Sprint 4", "h1", "Helen", nil)

	snaps := store.List()
	if len(snaps) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(snaps))
	}

	snaps[0].Participants[0].Name = "mutated"

	event.Mutex.Lock()
	name := event.Participants[0].Name
	event.Mutex.Unlock()
	if name != "Helen" {
		t.Fatalf("List must return copies, live event was mutated")
	}
}
