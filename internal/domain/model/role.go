package model

import (
	"fmt"
	"strings"
)

// Role is a coaching seat on a staff.
type Role int

// Coaching roles. The zero value is invalid so an unset role never passes
// as a real seat.
const (
	RoleHeadCoach Role = iota + 1
	RoleOffensiveCoordinator
	RoleDefensiveCoordinator
	RoleSpecialTeamsCoordinator
)

// Roles lists every role in staff order. Iteration over staffs follows this
// order so random draws stay reproducible.
var Roles = []Role{
	RoleHeadCoach,
	RoleOffensiveCoordinator,
	RoleDefensiveCoordinator,
	RoleSpecialTeamsCoordinator,
}

// CoordinatorRoles lists the roles below head coach.
var CoordinatorRoles = []Role{
	RoleOffensiveCoordinator,
	RoleDefensiveCoordinator,
	RoleSpecialTeamsCoordinator,
}

func (r Role) String() string {
	switch r {
	case RoleHeadCoach:
		return "head_coach"
	case RoleOffensiveCoordinator:
		return "offensive_coordinator"
	case RoleDefensiveCoordinator:
		return "defensive_coordinator"
	case RoleSpecialTeamsCoordinator:
		return "special_teams_coordinator"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	return r >= RoleHeadCoach && r <= RoleSpecialTeamsCoordinator
}

// IsCoordinator reports whether r sits below head coach.
func (r Role) IsCoordinator() bool {
	return r.Valid() && r != RoleHeadCoach
}

// Unit returns the roster unit a coach in this role is responsible for.
// Head coaches are judged on the offense, like offensive coordinators.
func (r Role) Unit() (Unit, error) {
	switch r {
	case RoleHeadCoach, RoleOffensiveCoordinator:
		return UnitOffense, nil
	case RoleDefensiveCoordinator:
		return UnitDefense, nil
	case RoleSpecialTeamsCoordinator:
		return UnitSpecialTeams, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownRole, int(r))
	}
}

// ParseRole accepts the canonical names plus the common short forms
// (hc, oc, dc, stc).
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "head_coach", "hc":
		return RoleHeadCoach, nil
	case "offensive_coordinator", "oc":
		return RoleOffensiveCoordinator, nil
	case "defensive_coordinator", "dc":
		return RoleDefensiveCoordinator, nil
	case "special_teams_coordinator", "stc":
		return RoleSpecialTeamsCoordinator, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// MarshalText implements encoding.TextMarshaler so roles serialize by name,
// including as JSON map keys.
func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRole, int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Unit is a roster unit used when judging a program's talent.
type Unit int

// Roster units.
const (
	UnitOffense Unit = iota + 1
	UnitDefense
	UnitSpecialTeams
)

func (u Unit) String() string {
	switch u {
	case UnitOffense:
		return "offense"
	case UnitDefense:
		return "defense"
	case UnitSpecialTeams:
		return "special_teams"
	default:
		return fmt.Sprintf("unit(%d)", int(u))
	}
}

// ParseUnit parses a unit name.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "offense":
		return UnitOffense, nil
	case "defense":
		return UnitDefense, nil
	case "special_teams", "st":
		return UnitSpecialTeams, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (u Unit) MarshalText() ([]byte, error) {
	if u < UnitOffense || u > UnitSpecialTeams {
		return nil, fmt.Errorf("%w: %d", ErrUnknownUnit, int(u))
	}
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *Unit) UnmarshalText(text []byte) error {
	parsed, err := ParseUnit(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
