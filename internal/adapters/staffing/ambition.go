package staffing

import "github.com/quarterback/viperball-sub000/internal/domain/model"

const titleAmbitionBump = 2.0

// MeterAmbition reads the coach's hc_meter, nudged up by titles won.
type MeterAmbition struct{}

// Ambition implements collab.AmbitionRater.
func (MeterAmbition) Ambition(coach model.Coach) float64 {
	return clamp(coach.HCMeter+titleAmbitionBump*float64(coach.Career.Titles), 0, 100)
}
