package store

import (
	"slices"
	"sync"
	"time"
)

// HistoryEntry records one truncation made on behalf of a client session.
type HistoryEntry struct {
	ID             string
	SessionID      string // MCP session, empty for stdio
	Field          string
	Ref            string // location inside a structured value, e.g. "suggested_questions[1]"
	Limit          int
	OriginalLength int
	Original       string
	Result         string
	At             time.Time
}

// HistoryStore keeps the most recent truncations, evicting the oldest once
// capacity is reached. Thread-safe.
type HistoryStore struct {
	mu       sync.RWMutex
	byID     map[string]*HistoryEntry // id -> entry
	order    []string                 // ids, oldest first
	capacity int
}

// NewHistoryStore creates an empty store. A capacity of zero or below keeps every entry.
func NewHistoryStore(capacity int) *HistoryStore {
	return &HistoryStore{
		byID:     make(map[string]*HistoryEntry),
		capacity: capacity,
	}
}

// Register adds an entry, replacing any entry with the same ID.
func (s *HistoryStore) Register(entry HistoryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[entry.ID]; exists {
		s.removeLocked(entry.ID)
	}
	s.byID[entry.ID] = &entry
	s.order = append(s.order, entry.ID)

	s.evictLocked()
}

// SetCapacity changes the capacity, evicting the oldest entries if the store
// is now over it.
func (s *HistoryStore) SetCapacity(capacity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.capacity = capacity
	s.evictLocked()
}

func (s *HistoryStore) evictLocked() {
	for s.capacity > 0 && len(s.order) > s.capacity {
		delete(s.byID, s.order[0])
		s.order = s.order[1:]
	}
}

// Lookup retrieves an entry by ID.
// Returns nil and false if not found.
func (s *HistoryStore) Lookup(id string) (*HistoryEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.byID[id]
	if !ok {
		return nil, false
	}

	entryCopy := *entry
	return &entryCopy, true
}

// Exists checks if an entry ID exists in the store.
func (s *HistoryStore) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byID[id]
	return ok
}

// List returns up to limit entries, newest first, along with the number of
// entries matching sessionID. An empty sessionID matches every session; a
// limit of zero or below returns all matches.
func (s *HistoryStore) List(sessionID string, limit int) ([]HistoryEntry, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []HistoryEntry
	var matched int
	for i := len(s.order) - 1; i >= 0; i-- {
		entry := s.byID[s.order[i]]
		if sessionID != "" && entry.SessionID != sessionID {
			continue
		}
		matched++
		if limit <= 0 || len(out) < limit {
			out = append(out, *entry)
		}
	}
	return out, matched
}

// Delete removes an entry by ID.
func (s *HistoryStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(id)
}

// RemoveSession removes all entries belonging to a session.
func (s *HistoryStore) RemoveSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.order = slices.DeleteFunc(s.order, func(id string) bool {
		if s.byID[id].SessionID == sessionID {
			delete(s.byID, id)
			return true
		}
		return false
	})
}

// Count returns the number of entries in the store.
func (s *HistoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// Clear removes all entries from the store.
func (s *HistoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID = make(map[string]*HistoryEntry)
	s.order = nil
}

func (s *HistoryStore) removeLocked(id string) {
	if _, ok := s.byID[id]; !ok {
		return
	}
	delete(s.byID, id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
}
