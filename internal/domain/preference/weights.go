package preference

import (
	"fmt"

	"github.com/quarterback/viperball-sub000/internal/domain/model"
)

// roleMix blends the attributes a team looks for in the role. Every role has
// an explicit row; an unknown role is an error rather than a silent default.
func roleMix(role model.Role, a model.Attributes) (float64, error) {
	switch role {
	case model.RoleHeadCoach:
		return 0.30*a.Leadership + 0.25*a.Instincts + 0.25*a.Composure + 0.20*a.Recruiting, nil
	case model.RoleOffensiveCoordinator:
		return 0.40*a.Instincts + 0.25*a.Composure + 0.20*a.Leadership + 0.15*a.Recruiting, nil
	case model.RoleDefensiveCoordinator:
		return 0.30*a.Instincts + 0.25*a.Composure + 0.25*a.Rotations + 0.20*a.Leadership, nil
	case model.RoleSpecialTeamsCoordinator:
		return 0.35*a.Composure + 0.30*a.Rotations + 0.20*a.Instincts + 0.15*a.Leadership, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownRole, int(role))
	}
}

// goodFit lists the archetypes a team considers a natural fit for the role.
func goodFit(role model.Role, c model.Classification) (bool, error) {
	switch role {
	case model.RoleHeadCoach:
		return c == model.ClassMotivator || c == model.ClassRecruiter, nil
	case model.RoleOffensiveCoordinator:
		return c == model.ClassInnovator || c == model.ClassTactician, nil
	case model.RoleDefensiveCoordinator:
		return c == model.ClassDisciplinarian || c == model.ClassTactician, nil
	case model.RoleSpecialTeamsCoordinator:
		return c == model.ClassTactician || c == model.ClassDeveloper, nil
	default:
		return false, fmt.Errorf("%w: %d", ErrUnknownRole, int(role))
	}
}
