package staffing

import (
	"github.com/quarterback/viperball-sub000/internal/domain/model"
	"github.com/shopspring/decimal"
)

// Salary model constants.
const (
	headCoachBase   = 1_500_000
	coordinatorBase = 650_000
	specialTeamBase = 350_000

	overallFactorBase = 0.6
	titleFactor       = 0.05
	recordFactor      = 0.4
	minFactor         = 0.5
)

var thousand = decimal.NewFromInt(1000)

// RecordSalary prices contracts from the role, the coach's rating and
// pedigree, and the record of the program they come from.
type RecordSalary struct{}

// Salary returns an annual salary rounded to the nearest thousand.
func (RecordSalary) Salary(coach model.Coach, role model.Role, record model.Record) decimal.Decimal {
	var base int64
	switch role {
	case model.RoleHeadCoach:
		base = headCoachBase
	case model.RoleOffensiveCoordinator, model.RoleDefensiveCoordinator:
		base = coordinatorBase
	case model.RoleSpecialTeamsCoordinator:
		base = specialTeamBase
	default:
		return decimal.Zero
	}

	factor := overallFactorBase + coach.Overall/100 +
		titleFactor*float64(coach.Career.Titles) +
		recordFactor*(record.WinPct()-0.5)
	if factor < minFactor {
		factor = minFactor
	}

	return decimal.NewFromInt(base).
		Mul(decimal.NewFromFloat(factor)).
		Div(thousand).
		Round(0).
		Mul(thousand)
}
