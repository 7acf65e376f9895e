// internal/store/memory.go
//
// In-memory implementation of the tracker state store.
// Holds the single current game-state snapshot for the process.
//
// Characteristics:
//   - Every accepted action replaces the snapshot with a new one (revision+1, fresh timestamp).
//   - Rejected actions leave the snapshot and revision untouched.
//   - Concurrency-safe via RWMutex; actions are applied one at a time, fully ordered.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sync"
	"time"

	"github.com/robalobadob/terraform-os/internal/tracker"
)

// Store defines access to the current game-state snapshot.
type Store interface {
	// Snapshot returns a copy of the current state.
	Snapshot(ctx context.Context) (tracker.State, error)

	// Apply runs a through tracker.Apply and stores the result.
	// Returns the new snapshot, or the current one and an error if a is malformed.
	Apply(ctx context.Context, a tracker.Action) (tracker.State, error)
}

// memory is a mutex-guarded single-snapshot Store.
type memory struct {
	mu    sync.RWMutex // guards cur
	cur   tracker.State
	clock func() time.Time
}

// Option customises a memory store.
type Option func(*memory)

// WithClock replaces time.Now for snapshot timestamps (tests).
func WithClock(now func() time.Time) Option {
	return func(m *memory) { m.clock = now }
}

// WithInitial seeds the store with a state other than tracker.Initial().
func WithInitial(s tracker.State) Option {
	return func(m *memory) { m.cur = s }
}

// NewMemoryStore constructs a Store seeded with the initial snapshot.
func NewMemoryStore(opts ...Option) Store {
	m := &memory{cur: tracker.Initial(), clock: time.Now}
	for _, o := range opts {
		o(m)
	}
	if m.cur.UpdatedAt.IsZero() {
		m.cur.UpdatedAt = m.clock().UTC()
	}
	return m
}

func (m *memory) Snapshot(ctx context.Context) (tracker.State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cur, nil
}

func (m *memory) Apply(ctx context.Context, a tracker.Action) (tracker.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	next, err := tracker.Apply(m.cur, a)
	if err != nil {
		return m.cur, err
	}
	next.Revision = m.cur.Revision + 1
	next.UpdatedAt = m.clock().UTC()
	m.cur = next
	return next, nil
}
