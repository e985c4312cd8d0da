// Package settlement turns solver matches into signed contracts and fills
// every vacancy the solver left open with a generated coach.
package settlement

import (
	"context"
	"fmt"

	"github.com/quarterback/viperball-sub000/internal/adapters/repository"
	"github.com/quarterback/viperball-sub000/internal/domain/collab"
	"github.com/quarterback/viperball-sub000/internal/domain/model"
	"github.com/quarterback/viperball-sub000/internal/domain/random"
	"github.com/quarterback/viperball-sub000/pkg/logger"
	"github.com/shopspring/decimal"
)

// Contract lengths, inclusive.
const (
	headCoachYearsLo   = 4
	headCoachYearsHi   = 6
	coordinatorYearsLo = 2
	coordinatorYearsHi = 4
	backfillYearsLo    = 1
	backfillYearsHi    = 3

	backfillDiscountLo = 3.0
	backfillDiscountHi = 8.0
	neutralPrestige    = 50.0
)

// Input is what one settlement pass reads and mutates.
type Input struct {
	// Entries receive MatchedTo for every hire.
	Entries   []model.MarketEntry
	Vacancies []model.Vacancy
	Matches   map[model.Vacancy]model.CoachID
	// Staffs is mutated in place.
	Staffs   model.Staffs
	Prestige map[string]float64
}

// Outcome reports everything settlement changed.
type Outcome struct {
	// Changes maps team -> role -> the coach now seated there.
	Changes     map[string]map[model.Role]model.Coach
	Hires       []model.HireRecord
	Backfilled  []model.Vacancy
	Released    []model.CoachID
	OpenedSeats []model.Vacancy
}

// Settler applies matches. Only the settler writes coach records after the
// pool is built.
type Settler struct {
	store     repository.Store
	generator collab.Generator
	salary    collab.SalaryCalculator
	logger    logger.Logger
}

// NewSettler creates a Settler.
func NewSettler(store repository.Store, set collab.Set, opts ...Option) *Settler {
	s := &Settler{
		store:     store,
		generator: set.Generator,
		salary:    set.Salary,
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Settle signs every matched coach, back-fills the rest, then releases
// departed coaches nobody hired. Vacancies are settled in input order.
func (s *Settler) Settle(ctx context.Context, in Input, src *random.Source) (Outcome, error) {
	if s.store == nil {
		return Outcome{}, ErrNilRegistry
	}
	if src == nil {
		return Outcome{}, ErrNilSource
	}
	if s.generator == nil {
		return Outcome{}, fmt.Errorf("settlement: %w: generator", collab.ErrMissingCollaborator)
	}
	if s.salary == nil {
		return Outcome{}, fmt.Errorf("settlement: %w: salary", collab.ErrMissingCollaborator)
	}
	if in.Staffs == nil {
		in.Staffs = model.Staffs{}
	}

	out := Outcome{Changes: make(map[string]map[model.Role]model.Coach)}
	byCoach := make(map[model.CoachID]*model.MarketEntry, len(in.Entries))
	for i := range in.Entries {
		byCoach[in.Entries[i].CoachID] = &in.Entries[i]
	}

	settled := make(map[model.Vacancy]bool, len(in.Vacancies))
	for _, v := range in.Vacancies {
		if settled[v] {
			continue
		}
		settled[v] = true

		if id, ok := in.Matches[v]; ok {
			hired, err := s.hire(ctx, in, &out, v, id, byCoach[id], src)
			if err != nil {
				return Outcome{}, err
			}
			if hired {
				continue
			}
		}
		if err := s.backfill(ctx, in, &out, v, src); err != nil {
			return Outcome{}, err
		}
	}

	s.release(ctx, in.Entries, &out)

	s.logger.Info(ctx, "market settled",
		logger.Int("hires", len(out.Hires)),
		logger.Int("backfilled", len(out.Backfilled)),
		logger.Int("released", len(out.Released)),
		logger.Int("openedSeats", len(out.OpenedSeats)),
	)
	return out, nil
}

// hire signs a matched coach. It reports false when the match cannot be
// resolved, leaving the vacancy to the back-fill path.
func (s *Settler) hire(ctx context.Context, in Input, out *Outcome, v model.Vacancy, id model.CoachID, entry *model.MarketEntry, src *random.Source) (bool, error) {
	coach, ok := s.store.Get(id)
	if !ok || entry == nil {
		s.logger.Warn(ctx, "matched coach cannot be resolved; back-filling",
			logger.String("vacancy", v.String()),
			logger.String("coach", string(id)),
		)
		return false, nil
	}
	if err := entry.Match(v); err != nil {
		s.logger.Warn(ctx, "coach matched twice; back-filling", logger.Error(err))
		return false, nil
	}

	years := contractYears(v.Role, src)
	salary := s.salary.Salary(coach, v.Role, entry.LastRecord)
	from := coach.Contract.Team

	if entry.Reason == model.ReasonSeekingPromotion && from != "" {
		if seated, ok := in.Staffs.Get(from, coach.Role); ok && seated == id {
			in.Staffs.Clear(from, coach.Role)
			out.OpenedSeats = append(out.OpenedSeats, model.Vacancy{Team: from, Role: coach.Role})
		}
	}

	signed, err := s.sign(in, out, v, id, salary, years)
	if err != nil {
		return false, err
	}
	out.Hires = append(out.Hires, hireRecord(signed, from, entry.Reason))
	s.logger.Debug(ctx, "coach hired",
		logger.String("coach", signed.Name),
		logger.String("from", from),
		logger.String("vacancy", v.String()),
		logger.Int("years", years),
	)
	return true, nil
}

// backfill generates a coach a little below the program's prestige and
// signs them to a short deal.
func (s *Settler) backfill(ctx context.Context, in Input, out *Outcome, v model.Vacancy, src *random.Source) error {
	prestige, ok := in.Prestige[v.Team]
	if !ok {
		prestige = neutralPrestige
	}
	prestige -= src.Uniform(backfillDiscountLo, backfillDiscountHi)
	if prestige < 0 {
		prestige = 0
	}

	coach, err := s.generator.Generate(src, v.Role, prestige)
	if err != nil {
		return fmt.Errorf("settlement: generate for %s: %w", v, err)
	}
	coach, err = repository.AddUnique(s.store, coach, src)
	if err != nil {
		return fmt.Errorf("settlement: register for %s: %w", v, err)
	}

	years := src.Between(backfillYearsLo, backfillYearsHi)
	salary := s.salary.Salary(coach, v.Role, model.Record{})
	signed, err := s.sign(in, out, v, coach.ID, salary, years)
	if err != nil {
		return err
	}
	out.Hires = append(out.Hires, hireRecord(signed, "", model.ReasonBackfill))
	out.Backfilled = append(out.Backfilled, v)
	s.logger.Debug(ctx, "vacancy back-filled",
		logger.String("coach", signed.Name),
		logger.String("vacancy", v.String()),
		logger.Float64("prestige", prestige),
	)
	return nil
}

// sign writes the contract, seats the coach and records the change.
func (s *Settler) sign(in Input, out *Outcome, v model.Vacancy, id model.CoachID, salary decimal.Decimal, years int) (model.Coach, error) {
	if err := s.store.Update(id, func(c *model.Coach) {
		c.Role = v.Role
		c.Contract = model.Contract{Team: v.Team, Salary: salary, YearsRemaining: years}
	}); err != nil {
		return model.Coach{}, fmt.Errorf("settlement: sign %s: %w", id, err)
	}
	signed, _ := s.store.Get(id)

	in.Staffs.Set(v.Team, v.Role, id)
	seats, ok := out.Changes[v.Team]
	if !ok {
		seats = make(map[model.Role]model.Coach)
		out.Changes[v.Team] = seats
	}
	seats[v.Role] = signed
	return signed, nil
}

// release leaves departed coaches nobody hired unsigned.
func (s *Settler) release(ctx context.Context, entries []model.MarketEntry, out *Outcome) {
	for i := range entries {
		e := &entries[i]
		if e.MatchedTo != nil || !e.Reason.VacatesSeat() {
			continue
		}
		err := s.store.Update(e.CoachID, func(c *model.Coach) {
			c.Contract = model.Contract{Salary: decimal.Zero}
		})
		if err != nil {
			s.logger.Warn(ctx, "released coach cannot be resolved", logger.String("coach", string(e.CoachID)))
			continue
		}
		out.Released = append(out.Released, e.CoachID)
	}
}

func contractYears(role model.Role, src *random.Source) int {
	if role == model.RoleHeadCoach {
		return src.Between(headCoachYearsLo, headCoachYearsHi)
	}
	return src.Between(coordinatorYearsLo, coordinatorYearsHi)
}

func hireRecord(c model.Coach, from string, reason model.Reason) model.HireRecord {
	return model.HireRecord{
		CoachID:        c.ID,
		CoachName:      c.Name,
		FromTeam:       from,
		ToTeam:         c.Contract.Team,
		Role:           c.Role,
		Reason:         reason,
		Salary:         c.Contract.Salary,
		Years:          c.Contract.YearsRemaining,
		Overall:        c.Overall,
		Classification: c.Classification,
		HCMeter:        c.HCMeter,
	}
}
