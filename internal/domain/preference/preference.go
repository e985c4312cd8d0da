// Package preference builds the two ranked views the matching solver
// consumes: each vacancy's ranking of coaches, and each coach's scores for
// the vacancies it would take.
package preference

import (
	"sort"

	"github.com/quarterback/viperball-sub000/internal/domain/collab"
	"github.com/quarterback/viperball-sub000/internal/domain/model"
	"github.com/quarterback/viperball-sub000/internal/domain/random"
)

// Default engine configuration constants.
const (
	DefaultDepth     = 5
	defaultNoise     = 2.0
	neutralPrestige  = 50.0
	topUnitPlayers   = 3
	hotNameThreshold = 75.0
)

// Team-side weights.
const (
	overallWeight          = 0.40
	roleMixWeight          = 0.30
	developmentWeight      = 0.20
	classificationFitBonus = 5.0
	titleWeight            = 3.0
	playoffWinWeight       = 0.5
	appearanceWeight       = 1.5
	hotNameBonus           = 4.0
)

// Coach-side weights.
const (
	rosterTalentWeight = 0.25
	unitTalentWeight   = 0.20
	prestigeWeight     = 0.25
	conferenceWeight   = 0.15
	alumniBonus        = 6.0
	promotionBonus     = 8.0
	ambitionGapFactor  = 0.5
	ambitionGapFloor   = -15.0
	ambitionGapCeiling = 10.0
)

// CoachLookup resolves coach records by id.
type CoachLookup interface {
	Get(id model.CoachID) (model.Coach, bool)
}

// Tables holds both ranked views. Tables are immutable once built.
type Tables struct {
	// TeamPrefs ranks coaches per vacancy, best first.
	TeamPrefs map[model.Vacancy][]model.CoachID
	// CoachPrefs scores the vacancies each coach ranked.
	CoachPrefs map[model.CoachID]map[model.Vacancy]float64
}

// Ranking returns the vacancy's ranked candidates.
func (t Tables) Ranking(v model.Vacancy) []model.CoachID {
	return t.TeamPrefs[v]
}

// Score returns the coach's score for v, or false when the coach never
// ranked it.
func (t Tables) Score(c model.CoachID, v model.Vacancy) (float64, bool) {
	scores, ok := t.CoachPrefs[c]
	if !ok {
		return 0, false
	}
	s, ok := scores[v]
	return s, ok
}

// Engine computes preference tables.
type Engine struct {
	depth    int
	noise    float64
	ambition collab.AmbitionRater
}

// NewEngine creates an Engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		depth:    DefaultDepth,
		noise:    defaultNoise,
		ambition: meterAmbition{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type meterAmbition struct{}

func (meterAmbition) Ambition(c model.Coach) float64 { return c.HCMeter }

type scored[T any] struct {
	key   T
	score float64
}

// candidate pairs an entry with its resolved coach.
type candidate struct {
	entry *model.MarketEntry
	coach model.Coach
}

// Build scores every eligible (vacancy, coach) pair from both sides and
// truncates each list to the engine depth. Team-side noise is drawn first,
// vacancy by vacancy, then coach-side noise entry by entry.
func (e *Engine) Build(entries []model.MarketEntry, vacancies []model.Vacancy, coaches CoachLookup, league model.TeamContext, src *random.Source) (Tables, error) {
	if src == nil {
		return Tables{}, ErrNilSource
	}
	tables := Tables{
		TeamPrefs:  make(map[model.Vacancy][]model.CoachID, len(vacancies)),
		CoachPrefs: make(map[model.CoachID]map[model.Vacancy]float64, len(entries)),
	}

	pool := make([]candidate, 0, len(entries))
	for i := range entries {
		c, ok := coaches.Get(entries[i].CoachID)
		if !ok {
			continue
		}
		pool = append(pool, candidate{entry: &entries[i], coach: c})
	}

	for _, v := range vacancies {
		ranked := make([]scored[model.CoachID], 0, len(pool))
		for _, cand := range pool {
			if !eligible(cand.entry, v) {
				continue
			}
			s, err := e.TeamScore(cand.coach, v, src)
			if err != nil {
				return Tables{}, err
			}
			ranked = append(ranked, scored[model.CoachID]{key: cand.coach.ID, score: s})
		}
		sort.SliceStable(ranked, func(i, j int) bool {
			if ranked[i].score != ranked[j].score {
				return ranked[i].score > ranked[j].score
			}
			return ranked[i].key < ranked[j].key
		})
		ids := make([]model.CoachID, 0, e.depth)
		for i := 0; i < len(ranked) && i < e.depth; i++ {
			ids = append(ids, ranked[i].key)
		}
		tables.TeamPrefs[v] = ids
	}

	views := NewLeagueView(league)
	for _, cand := range pool {
		ranked := make([]scored[model.Vacancy], 0, len(vacancies))
		for _, v := range vacancies {
			if !eligible(cand.entry, v) {
				continue
			}
			s, err := e.CoachScore(cand.coach, v, views, src)
			if err != nil {
				return Tables{}, err
			}
			ranked = append(ranked, scored[model.Vacancy]{key: v, score: s})
		}
		if len(ranked) == 0 {
			continue
		}
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].score > ranked[j].score
		})
		scores := make(map[model.Vacancy]float64, e.depth)
		for i := 0; i < len(ranked) && i < e.depth; i++ {
			scores[ranked[i].key] = ranked[i].score
		}
		tables.CoachPrefs[cand.coach.ID] = scores
	}

	return tables, nil
}

// eligible reports whether the pairing may be scored at all: the coach must
// accept the role, and a team never re-hires a coach it just fired.
func eligible(entry *model.MarketEntry, v model.Vacancy) bool {
	if !entry.Accepts(v.Role) {
		return false
	}
	if entry.Reason == model.ReasonFired && entry.OriginTeam == v.Team {
		return false
	}
	return true
}

// TeamScore is how much the vacancy's team wants coach in the role.
func (e *Engine) TeamScore(coach model.Coach, v model.Vacancy, src *random.Source) (float64, error) {
	mix, err := roleMix(v.Role, coach.Attributes)
	if err != nil {
		return 0, err
	}
	fit, err := goodFit(v.Role, coach.Classification)
	if err != nil {
		return 0, err
	}

	score := overallWeight*coach.Overall + roleMixWeight*mix + developmentWeight*coach.Attributes.Development
	if fit {
		score += classificationFitBonus
	}
	if v.Role == model.RoleHeadCoach {
		score += titleWeight*float64(coach.Career.Titles) +
			playoffWinWeight*float64(coach.Career.PlayoffWins) +
			appearanceWeight*float64(coach.Career.ChampionshipAppearances)
		if coach.Role.IsCoordinator() && e.ambition.Ambition(coach) >= hotNameThreshold {
			score += hotNameBonus
		}
	}
	return score + src.Noise(e.noise), nil
}

// CoachScore is how much coach wants the vacancy.
func (e *Engine) CoachScore(coach model.Coach, v model.Vacancy, league *LeagueView, src *random.Source) (float64, error) {
	unit, err := v.Role.Unit()
	if err != nil {
		return 0, err
	}
	team := league.team(v.Team)

	score := rosterTalentWeight*team.rosterTalent +
		unitTalentWeight*team.unitTalent(unit) +
		prestigeWeight*team.prestige +
		conferenceWeight*team.conference

	if coach.AlmaMater != "" && coach.AlmaMater == v.Team {
		score += alumniBonus
	}
	if v.Role == model.RoleHeadCoach && coach.Role.IsCoordinator() && e.ambition.Ambition(coach) >= hotNameThreshold {
		score += promotionBonus
	}
	score += ambitionGap(team.prestige, coach.Overall)
	return score + src.Noise(e.noise), nil
}

// ambitionGap rewards programs whose prestige exceeds the coach's perceived
// worth and penalizes the reverse.
func ambitionGap(prestige, worth float64) float64 {
	gap := (prestige - worth) * ambitionGapFactor
	if gap < ambitionGapFloor {
		return ambitionGapFloor
	}
	if gap > ambitionGapCeiling {
		return ambitionGapCeiling
	}
	return gap
}
