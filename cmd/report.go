package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	app "github.com/quarterback/viperball-sub000/internal/app"
	"github.com/quarterback/viperball-sub000/internal/domain/model"
)

type report struct {
	Seed        int64              `json:"seed"`
	Vacancies   []model.Vacancy    `json:"vacancies"`
	Proposals   int                `json:"proposals"`
	Hires       []model.HireRecord `json:"hires"`
	Changes     []change           `json:"changes"`
	Backfilled  []model.Vacancy    `json:"backfilled"`
	OpenedSeats []model.Vacancy    `json:"opened_seats"`
	Released    []model.CoachID    `json:"released"`
	Retentions  []model.CoachID    `json:"retentions"`
}

type change struct {
	Team    string        `json:"team"`
	Role    model.Role    `json:"role"`
	CoachID model.CoachID `json:"coach_id"`
	Name    string        `json:"name"`
	Years   int           `json:"years"`
}

func newReport(m *app.Market, changes app.Changes) report {
	r := report{
		Seed:        m.Seed(),
		Vacancies:   m.Vacancies(),
		Proposals:   m.Result().Proposals,
		Hires:       m.Hires(),
		Backfilled:  m.Backfilled(),
		OpenedSeats: m.OpenedSeats(),
		Released:    m.Released(),
		Retentions:  m.Retentions(),
	}
	for team, seats := range changes {
		for role, c := range seats {
			r.Changes = append(r.Changes, change{
				Team:    team,
				Role:    role,
				CoachID: c.ID,
				Name:    c.Name,
				Years:   c.Contract.YearsRemaining,
			})
		}
	}
	sort.Slice(r.Changes, func(i, j int) bool {
		if r.Changes[i].Team != r.Changes[j].Team {
			return r.Changes[i].Team < r.Changes[j].Team
		}
		return r.Changes[i].Role < r.Changes[j].Role
	})
	return r
}

func writeReport(w io.Writer, r report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
