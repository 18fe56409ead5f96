// Package capability defines the capability knowledge base: named
// organizational competencies, their core processes and subprocesses, and
// the store operations the rest of the system consumes.
package capability

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a capability id does not exist or refers to a
// soft-deleted record.
var ErrNotFound = errors.New("capability not found")

// Capability is a named organizational competency. A soft-deleted record
// keeps its data but is excluded from every fetch operation.
type Capability struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description" yaml:"description"`
	Processes   []Process  `json:"processes,omitempty" yaml:"processes,omitempty"`
	CreatedAt   time.Time  `json:"created_at" yaml:"-"`
	UpdatedAt   time.Time  `json:"updated_at" yaml:"-"`
	DeletedAt   *time.Time `json:"-" yaml:"-"`
}

// Process is a core process belonging to a capability.
type Process struct {
	Name         string       `json:"name" yaml:"name"`
	Subprocesses []Subprocess `json:"subprocesses,omitempty" yaml:"subprocesses,omitempty"`
}

// Subprocess is a step of a core process, aligned to a lifecycle phase.
type Subprocess struct {
	Name           string `json:"name" yaml:"name"`
	LifecyclePhase string `json:"lifecycle_phase" yaml:"lifecycle_phase"`
}

// Update carries partial changes for a capability. Nil fields are left
// untouched.
type Update struct {
	Name        *string
	Description *string
}

// Store is the persistence boundary for capability records. Fetch
// operations never return soft-deleted records.
type Store interface {
	Create(ctx context.Context, name, description string) (*Capability, error)
	FetchAll(ctx context.Context) ([]*Capability, error)
	FetchByID(ctx context.Context, id string) (*Capability, error)
	Update(ctx context.Context, id string, upd Update) (*Capability, error)
	// Delete soft-deletes a record and reports whether anything was deleted.
	Delete(ctx context.Context, id string) (bool, error)
}
