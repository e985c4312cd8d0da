// Package model contains domain models passed between the market stages.
package model

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CoachID is the stable identity of a coach. Every structure outside the
// registry refers to coaches by id only.
type CoachID string

// NewCoachID draws a UUID from r. Passing the market's seeded source keeps
// generated identities reproducible.
func NewCoachID(r io.Reader) (CoachID, error) {
	id, err := uuid.NewRandomFromReader(r)
	if err != nil {
		return "", fmt.Errorf("generate coach id: %w", err)
	}
	return CoachID(id.String()), nil
}

// Classification is a coaching archetype.
type Classification string

// Coaching archetypes.
const (
	ClassMotivator      Classification = "motivator"
	ClassTactician      Classification = "tactician"
	ClassRecruiter      Classification = "recruiter"
	ClassDeveloper      Classification = "developer"
	ClassDisciplinarian Classification = "disciplinarian"
	ClassInnovator      Classification = "innovator"
)

// Classifications lists every archetype in a fixed order.
var Classifications = []Classification{
	ClassMotivator,
	ClassTactician,
	ClassRecruiter,
	ClassDeveloper,
	ClassDisciplinarian,
	ClassInnovator,
}

// ParseClassification parses an archetype name.
func ParseClassification(s string) (Classification, error) {
	c := Classification(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Classifications {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownClassification, s)
}

// Attributes are the 0-100 skill ratings of a coach.
type Attributes struct {
	Leadership  float64 `json:"leadership" yaml:"leadership"`
	Composure   float64 `json:"composure" yaml:"composure"`
	Instincts   float64 `json:"instincts" yaml:"instincts"`
	Rotations   float64 `json:"rotations" yaml:"rotations"`
	Development float64 `json:"development" yaml:"development"`
	Recruiting  float64 `json:"recruiting" yaml:"recruiting"`
}

// Career is a coach's postseason pedigree and lifetime record.
type Career struct {
	Wins                    int `json:"wins" yaml:"wins"`
	Losses                  int `json:"losses" yaml:"losses"`
	Titles                  int `json:"titles" yaml:"titles"`
	PlayoffWins             int `json:"playoff_wins" yaml:"playoff_wins"`
	ChampionshipAppearances int `json:"championship_appearances" yaml:"championship_appearances"`
}

// Contract binds a coach to a team. An empty Team means unsigned.
type Contract struct {
	Team           string          `json:"team"`
	Salary         decimal.Decimal `json:"salary"`
	YearsRemaining int             `json:"years_remaining"`
}

// Coach is the registry record for one coach.
type Coach struct {
	ID             CoachID        `json:"id"`
	Name           string         `json:"name"`
	Role           Role           `json:"role"`
	Overall        float64        `json:"overall"`
	Attributes     Attributes     `json:"attributes"`
	Classification Classification `json:"classification"`
	HCMeter        float64        `json:"hc_meter"`
	AlmaMater      string         `json:"alma_mater,omitempty"`
	Career         Career         `json:"career"`
	Contract       Contract       `json:"contract"`
}

// Employed reports whether the coach is under contract with a team.
func (c Coach) Employed() bool {
	return c.Contract.Team != ""
}

// Record is a team's win/loss record for the season just played.
type Record struct {
	Wins   int `json:"wins" yaml:"wins"`
	Losses int `json:"losses" yaml:"losses"`
}

// WinPct returns the winning percentage, or 0.5 when no games were played.
func (r Record) WinPct() float64 {
	games := r.Wins + r.Losses
	if games == 0 {
		return 0.5
	}
	return float64(r.Wins) / float64(games)
}

// Player is the slice of a roster the coach-side preferences read.
type Player struct {
	Name    string  `json:"name" yaml:"name"`
	Unit    Unit    `json:"unit" yaml:"unit"`
	Overall float64 `json:"overall" yaml:"overall"`
}
