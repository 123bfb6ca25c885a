package handlers

import (
	"testing"
	"time"

	"github.com/awhatson15/rsvp-bot/models"
)

func TestDraftStoreStartReplaces(t *testing.T) {
	s := NewDraftStore()

	s.Start(7, 100)
	d, _ := s.Get(7)
	d.Title = "Picnic"
	d.State = models.StateAwaitingDescription
	s.Put(7, d)

	s.Start(7, 200)

	got, ok := s.Get(7)
	if !ok {
		t.Fatal("draft missing after restart")
	}
	if got.OriginChatID != 200 || got.Title != "" || got.State != models.StateAwaitingTitle {
		t.Errorf("restarted draft = %+v, want a fresh draft for chat 200", got)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestDraftStoreGetReturnsCopy(t *testing.T) {
	s := NewDraftStore()
	s.Start(7, 100)

	d, _ := s.Get(7)
	d.Title = "changed"

	got, _ := s.Get(7)
	if got.Title != "" {
		t.Errorf("mutating a returned draft changed the store: %+v", got)
	}
}

func TestDraftStoreRemove(t *testing.T) {
	s := NewDraftStore()
	s.Start(7, 100)

	if !s.Remove(7) {
		t.Error("Remove() of existing draft = false")
	}
	if s.Remove(7) {
		t.Error("second Remove() = true")
	}
	if _, ok := s.Get(7); ok {
		t.Error("draft still present after Remove()")
	}
}

func TestDraftStoreSweep(t *testing.T) {
	now := time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)
	s := NewDraftStore()
	s.now = func() time.Time { return now }

	s.Start(1, 100)
	now = now.Add(2 * time.Hour)
	s.Start(2, 100)
	now = now.Add(30 * time.Minute)

	if removed := s.Sweep(time.Hour); removed != 1 {
		t.Errorf("Sweep() removed %d, want 1", removed)
	}
	if _, ok := s.Get(1); ok {
		t.Error("stale draft for user 1 survived the sweep")
	}
	if _, ok := s.Get(2); !ok {
		t.Error("fresh draft for user 2 was swept")
	}

	// Put refreshes the timestamp.
	now = now.Add(50 * time.Minute)
	d, _ := s.Get(2)
	s.Put(2, d)
	now = now.Add(30 * time.Minute)
	if removed := s.Sweep(time.Hour); removed != 0 {
		t.Errorf("Sweep() removed %d recently updated drafts", removed)
	}
}
