// Package staffing provides default implementations of the market's
// collaborators so the resolver runs end to end without an external game.
package staffing

import "github.com/quarterback/viperball-sub000/internal/domain/collab"

// Defaults returns a complete collaborator set.
func Defaults(opts ...GeneratorOption) collab.Set {
	return collab.Set{
		Generator: NewGenerator(opts...),
		Salary:    RecordSalary{},
		Roles:     StandardRoles{},
		Ambition:  MeterAmbition{},
		Retention: PrestigeRetention{},
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
