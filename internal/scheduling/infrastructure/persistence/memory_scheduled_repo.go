package persistence

import (
	"context"
	"sort"
	"sync"

	"github.com/felixgeelhaar/astrosched/internal/scheduling/domain"
	"github.com/google/uuid"
)

// MemoryScheduledRepository keeps placements in process memory behind a
// mutex. Suitable for single runs and tests; deployments use the SQLite or
// Postgres repositories.
type MemoryScheduledRepository struct {
	mu        sync.RWMutex
	scheduled map[uuid.UUID]*domain.ScheduledSequence
}

// NewMemoryScheduledRepository creates an empty store.
func NewMemoryScheduledRepository() *MemoryScheduledRepository {
	return &MemoryScheduledRepository{
		scheduled: make(map[uuid.UUID]*domain.ScheduledSequence),
	}
}

// Save inserts or replaces a placement by id.
func (r *MemoryScheduledRepository) Save(_ context.Context, scheduled *domain.ScheduledSequence) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scheduled[scheduled.ID()] = scheduled
	return nil
}

// FindByID retrieves a placement.
func (r *MemoryScheduledRepository) FindByID(_ context.Context, id uuid.UUID) (*domain.ScheduledSequence, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.scheduled[id]
	if !ok {
		return nil, domain.ErrScheduledNotFound
	}
	return s, nil
}

// List returns all placements ordered by scheduled start.
func (r *MemoryScheduledRepository) List(_ context.Context) ([]*domain.ScheduledSequence, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.ScheduledSequence, 0, len(r.scheduled))
	for _, s := range r.scheduled {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ScheduledStart().Before(out[j].ScheduledStart())
	})
	return out, nil
}

// Delete removes a placement by id.
func (r *MemoryScheduledRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.scheduled[id]; !ok {
		return domain.ErrScheduledNotFound
	}
	delete(r.scheduled, id)
	return nil
}
