package staffing

import "github.com/quarterback/viperball-sub000/internal/domain/model"

const promotionReadiness = 75.0

// StandardRoles keeps coaches in their own role, and lets ambitious
// coordinators chase head-coach jobs.
type StandardRoles struct{}

// AcceptableRoles implements collab.RoleDeriver.
func (StandardRoles) AcceptableRoles(coach model.Coach, reason model.Reason) []model.Role {
	if reason == model.ReasonSeekingPromotion {
		return []model.Role{model.RoleHeadCoach}
	}
	roles := []model.Role{coach.Role}
	if coach.Role.IsCoordinator() && coach.HCMeter >= promotionReadiness {
		roles = append(roles, model.RoleHeadCoach)
	}
	return roles
}
