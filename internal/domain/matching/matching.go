// Package matching runs team-proposing deferred acceptance over the
// preference tables and returns the stable assignment.
package matching

import (
	"fmt"

	"github.com/quarterback/viperball-sub000/internal/domain/model"
)

// DefaultIterationFactor bounds proposals at factor × vacancy count.
const DefaultIterationFactor = 20

// Preferences is the read side of the preference tables.
type Preferences interface {
	// Ranking returns the vacancy's candidates, best first.
	Ranking(v model.Vacancy) []model.CoachID
	// Score returns the coach's score for v, false if the coach never
	// ranked it.
	Score(c model.CoachID, v model.Vacancy) (float64, bool)
}

// Result is the solver output.
type Result struct {
	// Matches maps each filled vacancy to its coach. No coach appears twice.
	Matches map[model.Vacancy]model.CoachID
	// Unmatched lists vacancies whose rankings were exhausted, in input order.
	Unmatched []model.Vacancy
	Proposals int
}

// Solver computes the team-optimal stable matching.
type Solver struct {
	factor int
}

// NewSolver creates a Solver.
func NewSolver(opts ...Option) *Solver {
	s := &Solver{factor: DefaultIterationFactor}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Solve matches vacancies to coaches. Free vacancies are processed in FIFO
// order and each proposes down its own ranking until some coach holds it or
// the ranking runs out. A held coach trades up only on a strictly higher
// score. Exceeding the proposal budget returns the partial result together
// with ErrIterationLimit.
func (s *Solver) Solve(vacancies []model.Vacancy, prefs Preferences) (Result, error) {
	unique := dedupe(vacancies)
	res := Result{Matches: make(map[model.Vacancy]model.CoachID, len(unique))}
	limit := s.factor * len(unique)

	next := make(map[model.Vacancy]int, len(unique))
	holds := make(map[model.CoachID]model.Vacancy)
	queue := append([]model.Vacancy(nil), unique...)

	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]

		ranking := prefs.Ranking(v)
		for next[v] < len(ranking) {
			if res.Proposals >= limit {
				res.Unmatched = unmatched(unique, res.Matches)
				return res, fmt.Errorf("%w: %d proposals over %d vacancies", ErrIterationLimit, res.Proposals, len(unique))
			}
			c := ranking[next[v]]
			next[v]++
			res.Proposals++

			offer, ok := prefs.Score(c, v)
			if !ok {
				continue
			}
			current, held := holds[c]
			if !held {
				holds[c] = v
				res.Matches[v] = c
				break
			}
			kept, _ := prefs.Score(c, current)
			if offer > kept {
				delete(res.Matches, current)
				holds[c] = v
				res.Matches[v] = c
				queue = append(queue, current)
				break
			}
		}
	}

	res.Unmatched = unmatched(unique, res.Matches)
	return res, nil
}

func dedupe(vacancies []model.Vacancy) []model.Vacancy {
	seen := make(map[model.Vacancy]struct{}, len(vacancies))
	out := make([]model.Vacancy, 0, len(vacancies))
	for _, v := range vacancies {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func unmatched(vacancies []model.Vacancy, matches map[model.Vacancy]model.CoachID) []model.Vacancy {
	var out []model.Vacancy
	for _, v := range vacancies {
		if _, ok := matches[v]; !ok {
			out = append(out, v)
		}
	}
	return out
}
