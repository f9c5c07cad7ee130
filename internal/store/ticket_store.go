// Package store holds the authoritative local snapshot of tickets.
//
// The store is the single source of truth for the board: column
// membership is always derived from ticket status at projection time,
// never stored separately. All mutation goes through the operations
// below; a full Load discards any optimistic local state in favor of
// fetched truth.
package store

import (
	"sync"

	"github.com/spec-kit/ticket-board/internal/domain"
)

// TicketStore is an in-memory ticket collection keyed by id. It is safe
// for concurrent use by the UI goroutine and the refresh worker.
type TicketStore struct {
	mu      sync.RWMutex
	tickets map[string]domain.Ticket
}

// NewTicketStore creates an empty store.
func NewTicketStore() *TicketStore {
	return &TicketStore{tickets: make(map[string]domain.Ticket)}
}

// Load replaces the entire snapshot. There are no partial-merge
// semantics: whatever the backend returned is now the truth.
func (s *TicketStore) Load(tickets []domain.Ticket) {
	next := make(map[string]domain.Ticket, len(tickets))
	for _, t := range tickets {
		next[t.ID] = t
	}
	s.mu.Lock()
	s.tickets = next
	s.mu.Unlock()
}

// Get returns the ticket for id, if present.
func (s *TicketStore) Get(id string) (domain.Ticket, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tickets[id]
	return t, ok
}

// SetStatus updates one ticket's status in place. It is a no-op when the
// id is absent (the ticket may have been deleted or filtered out by a
// concurrent reload) and when the status is not a valid column; it
// reports whether a write happened. The store never holds a ticket with
// an out-of-enum status.
func (s *TicketStore) SetStatus(id string, status domain.TicketStatus) bool {
	if !status.Valid() {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tickets[id]
	if !ok {
		return false
	}
	t.Status = status
	s.tickets[id] = t
	return true
}

// CompareAndSwapStatus writes status only if the ticket's current status
// still equals expect. This is the guard the drag coordinator uses for
// rollback: if a reload has already replaced the optimistic value with
// newer authoritative data, the newer value is left untouched.
func (s *TicketStore) CompareAndSwapStatus(id string, expect, status domain.TicketStatus) bool {
	if !status.Valid() {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tickets[id]
	if !ok || t.Status != expect {
		return false
	}
	t.Status = status
	s.tickets[id] = t
	return true
}

// Assign records an assignee on the ticket and moves it to the assigned
// column. No-op when the id is absent.
func (s *TicketStore) Assign(id, userID, userName string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tickets[id]
	if !ok {
		return false
	}
	t.AssignedToID = userID
	t.AssignedToName = userName
	t.Status = domain.TicketStatusAssigned
	s.tickets[id] = t
	return true
}

// Snapshot returns a copy of all tickets, in no particular order.
func (s *TicketStore) Snapshot() []domain.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Ticket, 0, len(s.tickets))
	for _, t := range s.tickets {
		out = append(out, t)
	}
	return out
}

// Len returns the number of tickets held.
func (s *TicketStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tickets)
}
