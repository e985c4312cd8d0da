package staffing

import "github.com/quarterback/viperball-sub000/internal/domain/model"

// Retention constants.
const (
	ambitionTolerance = 10.0
	winningRecord     = 0.65
	extensionYears    = 3
	winnerExtension   = 4
)

// PrestigeRetention keeps a head coach unless their ambition outgrows the
// program. Winning programs buy a little more tolerance.
type PrestigeRetention struct{}

// Decide implements collab.RetentionDecider.
func (PrestigeRetention) Decide(_ model.Coach, ambition, programPrestige float64, record model.Record) (int, bool) {
	tolerance := ambitionTolerance
	if record.WinPct() >= winningRecord {
		tolerance *= 2
	}
	if ambition > programPrestige+tolerance {
		return 0, false
	}
	if record.WinPct() >= winningRecord {
		return winnerExtension, true
	}
	return extensionYears, true
}
