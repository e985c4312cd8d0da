// Package repository holds the coach registry, the single owner of coach
// records for a market cycle.
package repository

import (
	"errors"
	"io"

	"github.com/quarterback/viperball-sub000/internal/domain/model"
)

// maxIDDraws bounds how many fresh ids AddUnique draws for one coach.
const maxIDDraws = 8

// Reader gives read-only access to coach records. Reads return copies, so
// callers scoring against a snapshot cannot write through them.
type Reader interface {
	// Get returns the coach with id, or false when unknown.
	Get(id model.CoachID) (model.Coach, bool)
	// Count returns the number of registered coaches.
	Count() int
}

// Store extends Reader with the write paths.
type Store interface {
	Reader

	// Add registers a new coach. Returns ErrDuplicateCoach if the id exists.
	Add(c model.Coach) error
	// Update applies fn to the stored record. Returns ErrNotFound if unknown.
	Update(id model.CoachID, fn func(*model.Coach)) error
	// IDs returns ids in registration order.
	IDs() []model.CoachID
}

// AddUnique registers c, drawing a fresh id from r while the id is taken.
// A registry that outlives one cycle can meet ids it generated under the
// same seed before; drawing from the seeded reader keeps the retry
// reproducible. It returns the coach as stored.
func AddUnique(s Store, c model.Coach, r io.Reader) (model.Coach, error) {
	for draws := 0; ; draws++ {
		err := s.Add(c)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, ErrDuplicateCoach) || draws == maxIDDraws {
			return model.Coach{}, err
		}
		id, err := model.NewCoachID(r)
		if err != nil {
			return model.Coach{}, err
		}
		c.ID = id
	}
}
