package capability

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store implementation. It is safe for
// concurrent use and suitable for local mode, tests, and seed-backed
// read-mostly deployments.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Capability
	now     func() time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]*Capability),
		now:     time.Now,
	}
}

// Create stores a new capability and returns it with a generated id.
func (s *MemoryStore) Create(_ context.Context, name, description string) (*Capability, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	rec := &Capability{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.records[rec.ID] = rec
	return copyOf(rec), nil
}

// FetchAll returns all non-deleted capabilities with their processes
// attached, ordered by name for stable output.
func (s *MemoryStore) FetchAll(_ context.Context) ([]*Capability, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Capability, 0, len(s.records))
	for _, c := range s.records {
		if c.DeletedAt != nil {
			continue
		}
		out = append(out, copyOf(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// FetchByID returns the capability with the given id, or ErrNotFound if it
// does not exist or has been soft-deleted.
func (s *MemoryStore) FetchByID(_ context.Context, id string) (*Capability, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.records[id]
	if !ok || c.DeletedAt != nil {
		return nil, ErrNotFound
	}
	return copyOf(c), nil
}

// FetchByName returns the first non-deleted capability with the given name,
// or ErrNotFound.
func (s *MemoryStore) FetchByName(_ context.Context, name string) (*Capability, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.records {
		if c.DeletedAt == nil && c.Name == name {
			return copyOf(c), nil
		}
	}
	return nil, ErrNotFound
}

// Update applies the non-nil fields of upd and returns the updated record,
// or ErrNotFound for unknown or soft-deleted ids.
func (s *MemoryStore) Update(_ context.Context, id string, upd Update) (*Capability, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.records[id]
	if !ok || c.DeletedAt != nil {
		return nil, ErrNotFound
	}
	if upd.Name != nil {
		c.Name = *upd.Name
	}
	if upd.Description != nil {
		c.Description = *upd.Description
	}
	c.UpdatedAt = s.now()
	return copyOf(c), nil
}

// Delete soft-deletes the record. It reports true when a live record was
// marked deleted, false otherwise. The record is retained.
func (s *MemoryStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.records[id]
	if !ok || c.DeletedAt != nil {
		return false, nil
	}
	now := s.now()
	c.DeletedAt = &now
	return true, nil
}

// put inserts a fully-formed capability, generating an id when absent.
// Used by the seed loader.
func (s *MemoryStore) put(c *Capability) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := s.now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	s.records[c.ID] = c
}

// copyOf returns a defensive copy so callers cannot mutate stored state.
func copyOf(c *Capability) *Capability {
	dup := *c
	dup.Processes = make([]Process, len(c.Processes))
	for i, p := range c.Processes {
		dup.Processes[i] = Process{
			Name:         p.Name,
			Subprocesses: append([]Subprocess(nil), p.Subprocesses...),
		}
	}
	return &dup
}
