package preference

import (
	"sort"

	"github.com/quarterback/viperball-sub000/internal/domain/model"
)

// LeagueView caches the per-team figures coach-side scoring reads.
type LeagueView struct {
	ctx   model.TeamContext
	teams map[string]*teamView
}

type teamView struct {
	prestige     float64
	rosterTalent float64
	conference   float64
	units        map[model.Unit]float64
}

// unitTalent falls back to overall roster talent when the unit is empty.
func (t *teamView) unitTalent(u model.Unit) float64 {
	if v, ok := t.units[u]; ok {
		return v
	}
	return t.rosterTalent
}

// NewLeagueView wraps ctx. Missing prestige reads as neutral, a missing
// roster reads as the team's prestige, and a team without conference
// opponents reads its conference as neutral.
func NewLeagueView(ctx model.TeamContext) *LeagueView {
	return &LeagueView{ctx: ctx, teams: make(map[string]*teamView)}
}

func (l *LeagueView) prestige(team string) float64 {
	if p, ok := l.ctx.Prestige[team]; ok {
		return p
	}
	return neutralPrestige
}

func (l *LeagueView) team(name string) *teamView {
	if t, ok := l.teams[name]; ok {
		return t
	}
	t := &teamView{
		prestige: l.prestige(name),
		units:    make(map[model.Unit]float64),
	}

	roster := l.ctx.Rosters[name]
	if len(roster) == 0 {
		t.rosterTalent = t.prestige
	} else {
		sum := 0.0
		byUnit := make(map[model.Unit][]float64)
		for _, p := range roster {
			sum += p.Overall
			byUnit[p.Unit] = append(byUnit[p.Unit], p.Overall)
		}
		t.rosterTalent = sum / float64(len(roster))
		for u, ratings := range byUnit {
			t.units[u] = topAverage(ratings, topUnitPlayers)
		}
	}

	t.conference = l.conferenceStrength(name)
	l.teams[name] = t
	return t
}

// conferenceStrength averages the prestige of the team's conference
// opponents, in name order so the float sum is reproducible.
func (l *LeagueView) conferenceStrength(team string) float64 {
	conf, ok := l.ctx.Conferences[team]
	if !ok || conf == "" {
		return neutralPrestige
	}
	opponents := make([]string, 0)
	for other, c := range l.ctx.Conferences {
		if other != team && c == conf {
			opponents = append(opponents, other)
		}
	}
	if len(opponents) == 0 {
		return neutralPrestige
	}
	sort.Strings(opponents)
	sum := 0.0
	for _, o := range opponents {
		sum += l.prestige(o)
	}
	return sum / float64(len(opponents))
}

func topAverage(ratings []float64, n int) float64 {
	sorted := append([]float64(nil), ratings...)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	sum := 0.0
	for _, r := range sorted {
		sum += r
	}
	return sum / float64(len(sorted))
}
