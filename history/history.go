// Package history keeps a bounded in-memory record of recently triaged
// tickets for the API surface. Nothing is written to disk; eviction is
// oldest-first once the ring is full.
package history

import (
	"sync"

	"ops-triage/triage"
)

// Stats aggregates counts over the tickets currently held in the ring.
type Stats struct {
	Total       int                     `json:"total"`
	ByCategory  map[triage.Category]int `json:"by_category"`
	ByUrgency   map[triage.Urgency]int  `json:"by_urgency"`
	NeedsReview int                     `json:"needs_review"`
}

// Ring is a fixed-capacity buffer of tickets, newest kept, oldest evicted.
type Ring struct {
	mu      sync.RWMutex
	tickets []*triage.IncidentTicket
	start   int
	size    int
}

// NewRing creates a ring holding at most capacity tickets. Capacity values
// below 1 fall back to 100.
func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 100
	}
	return &Ring{tickets: make([]*triage.IncidentTicket, capacity)}
}

// Add records a ticket, evicting the oldest entry when full.
func (r *Ring) Add(t *triage.IncidentTicket) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := (r.start + r.size) % len(r.tickets)
	if r.size == len(r.tickets) {
		// full: overwrite the oldest slot and advance the start
		idx = r.start
		r.start = (r.start + 1) % len(r.tickets)
	} else {
		r.size++
	}
	r.tickets[idx] = t
}

// Recent returns up to limit tickets, newest first. A limit below 1 returns
// everything held.
func (r *Ring) Recent(limit int) []*triage.IncidentTicket {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := r.size
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]*triage.IncidentTicket, 0, n)
	for i := 0; i < n; i++ {
		idx := (r.start + r.size - 1 - i) % len(r.tickets)
		out = append(out, r.tickets[idx])
	}
	return out
}

// Get returns the newest ticket with the given id, or nil if it is absent
// or already evicted.
func (r *Ring) Get(ticketID string) *triage.IncidentTicket {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := r.size - 1; i >= 0; i-- {
		idx := (r.start + i) % len(r.tickets)
		if r.tickets[idx].TicketID == ticketID {
			return r.tickets[idx]
		}
	}
	return nil
}

// Len returns the number of tickets currently held.
func (r *Ring) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.size
}

// Stats aggregates the held tickets by category, urgency, and review flag.
func (r *Ring) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := Stats{
		Total:      r.size,
		ByCategory: make(map[triage.Category]int),
		ByUrgency:  make(map[triage.Urgency]int),
	}
	for i := 0; i < r.size; i++ {
		t := r.tickets[(r.start+i)%len(r.tickets)]
		s.ByCategory[t.Category]++
		s.ByUrgency[t.Urgency]++
		if t.NeedsHumanReview {
			s.NeedsReview++
		}
	}
	return s
}
