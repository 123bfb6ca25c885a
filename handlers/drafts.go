package handlers

import (
	"sync"
	"time"

	"github.com/awhatson15/rsvp-bot/models"
)

// DraftStore keeps at most one in-progress draft per user.
type DraftStore struct {
	mu     sync.Mutex
	drafts map[int64]models.Draft
	now    func() time.Time
}

// NewDraftStore creates an empty store.
func NewDraftStore() *DraftStore {
	return &DraftStore{
		drafts: make(map[int64]models.Draft),
		now:    time.Now,
	}
}

// Start replaces any draft userID had with a fresh one anchored to originChatID.
func (s *DraftStore) Start(userID, originChatID int64) models.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := models.Draft{
		OriginChatID: originChatID,
		State:        models.StateAwaitingTitle,
		UpdatedAt:    s.now(),
	}
	s.drafts[userID] = d
	return d
}

// Get returns a copy of userID's draft.
func (s *DraftStore) Get(userID int64) (models.Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[userID]
	return d, ok
}

// Put stores d for userID and refreshes its timestamp.
func (s *DraftStore) Put(userID int64, d models.Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d.UpdatedAt = s.now()
	s.drafts[userID] = d
}

// Remove deletes userID's draft and reports whether there was one.
func (s *DraftStore) Remove(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.drafts[userID]
	delete(s.drafts, userID)
	return ok
}

// Len returns the number of drafts in progress.
func (s *DraftStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.drafts)
}

// Sweep discards drafts untouched for longer than ttl and returns how many went.
func (s *DraftStore) Sweep(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-ttl)
	removed := 0
	for userID, d := range s.drafts {
		if d.UpdatedAt.Before(cutoff) {
			delete(s.drafts, userID)
			removed++
		}
	}
	return removed
}
