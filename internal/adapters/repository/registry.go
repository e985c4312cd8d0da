package repository

import (
	"fmt"

	"github.com/quarterback/viperball-sub000/internal/domain/model"
)

const defaultCapacity = 64

// Registry is the in-memory coach arena. It is not safe for concurrent use;
// a market cycle is single-threaded.
type Registry struct {
	capacity int
	coaches  map[model.CoachID]*model.Coach
	order    []model.CoachID
}

var _ Store = (*Registry)(nil)

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{capacity: defaultCapacity}
	for _, opt := range opts {
		opt(r)
	}
	r.coaches = make(map[model.CoachID]*model.Coach, r.capacity)
	r.order = make([]model.CoachID, 0, r.capacity)
	return r
}

// Add registers c.
func (r *Registry) Add(c model.Coach) error {
	if c.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidCoach)
	}
	if !c.Role.Valid() {
		return fmt.Errorf("%w: coach %s has %w", ErrInvalidCoach, c.ID, model.ErrUnknownRole)
	}
	if _, exists := r.coaches[c.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateCoach, c.ID)
	}
	stored := c
	r.coaches[c.ID] = &stored
	r.order = append(r.order, c.ID)
	return nil
}

// Get returns a copy of the coach record.
func (r *Registry) Get(id model.CoachID) (model.Coach, bool) {
	c, ok := r.coaches[id]
	if !ok {
		return model.Coach{}, false
	}
	return *c, true
}

// Update applies fn to the stored record. The id cannot be changed.
func (r *Registry) Update(id model.CoachID, fn func(*model.Coach)) error {
	c, ok := r.coaches[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	fn(c)
	c.ID = id
	return nil
}

// Count returns the number of registered coaches.
func (r *Registry) Count() int {
	return len(r.coaches)
}

// IDs returns ids in registration order.
func (r *Registry) IDs() []model.CoachID {
	out := make([]model.CoachID, len(r.order))
	copy(out, r.order)
	return out
}
