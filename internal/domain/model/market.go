package model

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Reason records why a coach entered the market.
type Reason string

// Market entry reasons. ReasonBackfill only appears on hire records.
const (
	ReasonFired            Reason = "fired"
	ReasonContractExpired  Reason = "contract_expired"
	ReasonSeekingPromotion Reason = "seeking_promotion"
	ReasonFreeAgent        Reason = "free_agent"
	ReasonBackfill         Reason = "backfill"
)

// VacatesSeat reports whether entering for this reason empties the coach's seat.
func (r Reason) VacatesSeat() bool {
	return r == ReasonFired || r == ReasonContractExpired
}

// Vacancy is an open (team, role) seat.
type Vacancy struct {
	Team string `json:"team"`
	Role Role   `json:"role"`
}

func (v Vacancy) String() string {
	return v.Team + "/" + v.Role.String()
}

// MarketEntry wraps a coach with provenance, intent and match state.
type MarketEntry struct {
	CoachID       CoachID  `json:"coach_id"`
	OriginTeam    string   `json:"origin_team,omitempty"`
	Reason        Reason   `json:"reason"`
	AcceptedRoles []Role   `json:"accepted_roles"`
	LastRecord    Record   `json:"last_record"`
	MatchedTo     *Vacancy `json:"matched_to,omitempty"`
}

// Accepts reports whether the coach will take the role.
func (e *MarketEntry) Accepts(role Role) bool {
	for _, r := range e.AcceptedRoles {
		if r == role {
			return true
		}
	}
	return false
}

// Match records the final assignment. It may be called once.
func (e *MarketEntry) Match(v Vacancy) error {
	if e.MatchedTo != nil {
		return fmt.Errorf("%w: coach %s already at %s", ErrAlreadyMatched, e.CoachID, e.MatchedTo)
	}
	e.MatchedTo = &v
	return nil
}

// HireRecord is one line of the hires log.
type HireRecord struct {
	CoachID        CoachID         `json:"coach_id"`
	CoachName      string          `json:"coach_name"`
	FromTeam       string          `json:"from_team,omitempty"`
	ToTeam         string          `json:"to_team"`
	Role           Role            `json:"role"`
	Reason         Reason          `json:"reason"`
	Salary         decimal.Decimal `json:"salary"`
	Years          int             `json:"years"`
	Overall        float64         `json:"overall"`
	Classification Classification  `json:"classification"`
	HCMeter        float64         `json:"hc_meter"`
}

// Staffs maps team -> role -> coach. It is the structure callers hand to the
// market and receive back mutated.
type Staffs map[string]map[Role]CoachID

// Get returns the coach seated at (team, role).
func (s Staffs) Get(team string, role Role) (CoachID, bool) {
	seats, ok := s[team]
	if !ok {
		return "", false
	}
	id, ok := seats[role]
	return id, ok
}

// Set seats id at (team, role), creating the team's staff if needed.
func (s Staffs) Set(team string, role Role, id CoachID) {
	seats, ok := s[team]
	if !ok {
		seats = make(map[Role]CoachID, len(Roles))
		s[team] = seats
	}
	seats[role] = id
}

// Clear empties (team, role).
func (s Staffs) Clear(team string, role Role) {
	if seats, ok := s[team]; ok {
		delete(seats, role)
	}
}

// Teams returns team names in sorted order.
func (s Staffs) Teams() []string {
	teams := make([]string, 0, len(s))
	for team := range s {
		teams = append(teams, team)
	}
	sort.Strings(teams)
	return teams
}

// TeamContext is the read-only world state the preference engine scores
// against. Rosters and Conferences are optional.
type TeamContext struct {
	Prestige    map[string]float64
	Rosters     map[string][]Player
	Conferences map[string]string
}
