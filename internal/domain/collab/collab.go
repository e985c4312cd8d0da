// Package collab declares the collaborators the coaching market consumes
// but does not own: coach generation, salary, role derivation, ambition and
// the head-coach retention decision.
package collab

import (
	"errors"
	"fmt"

	"github.com/quarterback/viperball-sub000/internal/domain/model"
	"github.com/quarterback/viperball-sub000/internal/domain/random"
	"github.com/shopspring/decimal"
)

// ErrMissingCollaborator reports an incomplete Set.
var ErrMissingCollaborator = errors.New("missing collaborator")

// Generator creates a fresh coach for a role at roughly the given prestige.
// Generated coaches are unsigned and carry a new id.
type Generator interface {
	Generate(src *random.Source, role model.Role, prestige float64) (model.Coach, error)
}

// SalaryCalculator prices a contract for a coach taking role.
type SalaryCalculator interface {
	Salary(coach model.Coach, role model.Role, record model.Record) decimal.Decimal
}

// RoleDeriver decides which roles a coach entering the market will take,
// before role fluidity is applied.
type RoleDeriver interface {
	AcceptableRoles(coach model.Coach, reason model.Reason) []model.Role
}

// AmbitionRater returns a coach's 0-100 drive for a head-coach job.
type AmbitionRater interface {
	Ambition(coach model.Coach) float64
}

// RetentionDecider decides whether a head coach with an expiring contract
// stays. When retain is true, years is the extension length.
type RetentionDecider interface {
	Decide(coach model.Coach, ambition, programPrestige float64, record model.Record) (years int, retain bool)
}

// Set bundles every collaborator.
type Set struct {
	Generator Generator
	Salary    SalaryCalculator
	Roles     RoleDeriver
	Ambition  AmbitionRater
	Retention RetentionDecider
}

// Validate reports the first missing collaborator.
func (s Set) Validate() error {
	switch {
	case s.Generator == nil:
		return fmt.Errorf("%w: generator", ErrMissingCollaborator)
	case s.Salary == nil:
		return fmt.Errorf("%w: salary", ErrMissingCollaborator)
	case s.Roles == nil:
		return fmt.Errorf("%w: roles", ErrMissingCollaborator)
	case s.Ambition == nil:
		return fmt.Errorf("%w: ambition", ErrMissingCollaborator)
	case s.Retention == nil:
		return fmt.Errorf("%w: retention", ErrMissingCollaborator)
	}
	return nil
}
