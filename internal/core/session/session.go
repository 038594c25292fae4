// Package session holds the working set of triplets for one extraction run.
package session

import (
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/sociotyper/sociotyper/internal/core/model"
)

// ErrDuplicateID means a batch tried to add a triplet id already present in
// the session. This is an integration fault and fails loudly.
type ErrDuplicateID struct {
	ID string
}

func (e *ErrDuplicateID) Error() string {
	return fmt.Sprintf("duplicate triplet id %q", e.ID)
}

// ErrNotFound means the referenced triplet id is not in the session.
type ErrNotFound struct {
	ID string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("triplet %q not found", e.ID)
}

// Counts is a snapshot of the session's status tallies.
type Counts struct {
	Total    int `json:"total"`
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
	Pending  int `json:"pending"`
}

// Session is the in-memory collection of triplets under review. All mutation
// is serialized by a single lock; nothing is persisted automatically —
// export is an explicit caller action.
type Session struct {
	mu       sync.Mutex
	triplets []model.Triplet
	byID     map[string]int
	nextSeq  int
}

// New returns an empty session.
func New() *Session {
	return &Session{byID: make(map[string]int), nextSeq: 1}
}

// AddBatch appends triplets, assigning sequential ids to those without one.
// Triplets without a status start as Pending. The whole batch is rejected if
// any id collides with the session or with another triplet in the batch.
func (s *Session) AddBatch(triplets []model.Triplet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	for _, t := range triplets {
		if t.ID == "" {
			continue
		}
		if _, ok := s.byID[t.ID]; ok || seen[t.ID] {
			return &ErrDuplicateID{ID: t.ID}
		}
		seen[t.ID] = true
	}

	for _, t := range triplets {
		if t.ID == "" {
			t.ID = s.nextID(seen)
			seen[t.ID] = true
		}
		if t.Validated == "" {
			t.Validated = model.StatusPending
		}
		s.byID[t.ID] = len(s.triplets)
		s.triplets = append(s.triplets, t)
	}
	return nil
}

func (s *Session) nextID(taken map[string]bool) string {
	for {
		id := strconv.Itoa(s.nextSeq)
		s.nextSeq++
		if _, ok := s.byID[id]; !ok && !taken[id] {
			return id
		}
	}
}

// SetStatus transitions a triplet's review status. Any transition between
// Pending, Accepted and Rejected is permitted.
func (s *Session) SetStatus(id string, status model.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.byID[id]
	if !ok {
		return &ErrNotFound{ID: id}
	}
	s.triplets[i].Validated = status
	return nil
}

// Get returns a copy of one triplet.
func (s *Session) Get(id string) (model.Triplet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.byID[id]
	if !ok {
		return model.Triplet{}, &ErrNotFound{ID: id}
	}
	return s.triplets[i], nil
}

// Triplets returns a copy of all triplets in insertion order.
func (s *Session) Triplets() []model.Triplet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Triplet(nil), s.triplets...)
}

// Filtered returns the triplets with the given status.
func (s *Session) Filtered(status model.Status) []model.Triplet {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Triplet
	for _, t := range s.triplets {
		if t.Validated == status {
			out = append(out, t)
		}
	}
	return out
}

// Counts computes the status tallies from current state on every call; there
// is no cache to drift.
func (s *Session) Counts() Counts {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := Counts{Total: len(s.triplets)}
	for _, t := range s.triplets {
		switch t.Validated {
		case model.StatusAccepted:
			c.Accepted++
		case model.StatusRejected:
			c.Rejected++
		default:
			c.Pending++
		}
	}
	return c
}

// IDs returns all triplet ids, sorted for stable output.
func (s *Session) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.triplets))
	for _, t := range s.triplets {
		ids = append(ids, t.ID)
	}
	sort.Strings(ids)
	return ids
}
