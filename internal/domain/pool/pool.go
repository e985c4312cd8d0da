// Package pool decides which coaches enter the offseason market, which roles
// each will accept, and which seats open up as a result.
package pool

import (
	"context"
	"fmt"

	"github.com/quarterback/viperball-sub000/internal/adapters/repository"
	"github.com/quarterback/viperball-sub000/internal/domain/collab"
	"github.com/quarterback/viperball-sub000/internal/domain/model"
	"github.com/quarterback/viperball-sub000/internal/domain/random"
	"github.com/quarterback/viperball-sub000/pkg/logger"
)

// Eligibility constants.
const (
	expiredCoordinatorEntryChance = 0.5
	ambitionCertain               = 90.0
	ambitionPossible              = 75.0
	ambitionPossibleChance        = 0.3
	poachQualityFloor             = 60.0
	neutralPrestige               = 50.0
	roleFluidityChance            = 0.3

	defaultMinPoolSize         = 15
	defaultPoolMultiplier      = 2
	defaultFreeAgentPrestigeLo = 35.0
	defaultFreeAgentPrestigeHi = 75.0
)

// Input is the league state the builder reads.
type Input struct {
	// Staffs is mutated: seats of departing coaches are cleared.
	Staffs   model.Staffs
	Records  map[string]model.Record
	Prestige map[string]float64
	// Fired lists roles each team has fired this offseason.
	Fired map[string][]model.Role
	// HumanTeam is skipped entirely.
	HumanTeam string
}

// Result is the market membership for one cycle.
type Result struct {
	Entries    []model.MarketEntry
	Vacancies  []model.Vacancy
	Retentions []model.CoachID
}

// Builder assembles the pool.
type Builder struct {
	store  repository.Store
	collab collab.Set
	logger logger.Logger

	minPoolSize         int
	poolMultiplier      int
	freeAgentPrestigeLo float64
	freeAgentPrestigeHi float64
}

// NewBuilder creates a builder writing generated coaches and retention
// extensions to store.
func NewBuilder(store repository.Store, set collab.Set, opts ...Option) *Builder {
	b := &Builder{
		store:               store,
		collab:              set,
		logger:              logger.Nop(),
		minPoolSize:         defaultMinPoolSize,
		poolMultiplier:      defaultPoolMultiplier,
		freeAgentPrestigeLo: defaultFreeAgentPrestigeLo,
		freeAgentPrestigeHi: defaultFreeAgentPrestigeHi,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// build carries per-call state so a Builder can be reused.
type build struct {
	*Builder
	in       Input
	src      *random.Source
	res      Result
	entered  map[model.CoachID]bool
	declared map[model.Vacancy]bool
}

// Build runs eligibility over every non-human staff, then tops the pool up
// with generated free agents.
func (b *Builder) Build(ctx context.Context, in Input, src *random.Source) (Result, error) {
	if b.store == nil {
		return Result{}, ErrNilRegistry
	}
	if src == nil {
		return Result{}, ErrNilSource
	}
	if err := b.collab.Validate(); err != nil {
		return Result{}, fmt.Errorf("pool: %w", err)
	}
	if in.Staffs == nil {
		in.Staffs = model.Staffs{}
	}

	st := &build{
		Builder:  b,
		in:       in,
		src:      src,
		entered:  make(map[model.CoachID]bool),
		declared: make(map[model.Vacancy]bool),
	}

	teams := make([]string, 0, len(in.Staffs))
	for _, team := range in.Staffs.Teams() {
		if team == in.HumanTeam {
			continue
		}
		teams = append(teams, team)
	}

	for _, team := range teams {
		if err := st.departures(ctx, team); err != nil {
			return Result{}, err
		}
	}
	for _, team := range teams {
		st.poachables(ctx, team)
	}

	if len(st.res.Vacancies) == 0 {
		b.logger.Info(ctx, "no vacancies declared; market is empty",
			logger.Int("entries", len(st.res.Entries)),
		)
		return st.res, nil
	}

	if err := st.freeAgents(ctx); err != nil {
		return Result{}, err
	}

	b.logger.Info(ctx, "market pool built",
		logger.Int("entries", len(st.res.Entries)),
		logger.Int("vacancies", len(st.res.Vacancies)),
		logger.Int("retentions", len(st.res.Retentions)),
	)
	return st.res, nil
}

// departures handles fired coaches and expiring contracts for one team.
func (st *build) departures(ctx context.Context, team string) error {
	fired := make(map[model.Role]bool, len(st.in.Fired[team]))
	for _, r := range st.in.Fired[team] {
		fired[r] = true
	}

	for _, role := range model.Roles {
		id, ok := st.in.Staffs.Get(team, role)
		if !ok {
			continue
		}
		coach, ok := st.store.Get(id)
		if !ok {
			st.logger.Warn(ctx, "staff references unknown coach; skipping",
				logger.String("team", team),
				logger.String("role", role.String()),
				logger.String("coach", string(id)),
			)
			continue
		}
		if st.entered[id] {
			continue
		}

		switch {
		case fired[role]:
			st.depart(ctx, team, role, coach, model.ReasonFired)
		case coach.Contract.YearsRemaining <= 0 && role == model.RoleHeadCoach:
			ambition := st.collab.Ambition.Ambition(coach)
			prestige, ok := st.in.Prestige[team]
			if !ok {
				prestige = neutralPrestige
			}
			years, retain := st.collab.Retention.Decide(coach, ambition, prestige, st.in.Records[team])
			if retain {
				if err := st.store.Update(id, func(c *model.Coach) {
					c.Contract.YearsRemaining = years
				}); err != nil {
					return fmt.Errorf("pool: extend %s: %w", id, err)
				}
				st.res.Retentions = append(st.res.Retentions, id)
				st.logger.Debug(ctx, "head coach extended",
					logger.String("team", team),
					logger.String("coach", coach.Name),
					logger.Int("years", years),
				)
				continue
			}
			st.depart(ctx, team, role, coach, model.ReasonContractExpired)
		case coach.Contract.YearsRemaining <= 0:
			if !st.src.Chance(expiredCoordinatorEntryChance) {
				continue
			}
			st.depart(ctx, team, role, coach, model.ReasonContractExpired)
		}
	}
	return nil
}

// depart removes the coach from the staff, declares the vacancy and enters
// the coach.
func (st *build) depart(ctx context.Context, team string, role model.Role, coach model.Coach, reason model.Reason) {
	st.in.Staffs.Clear(team, role)
	v := model.Vacancy{Team: team, Role: role}
	if !st.declared[v] {
		st.declared[v] = true
		st.res.Vacancies = append(st.res.Vacancies, v)
	}
	st.enter(ctx, coach, team, reason)
}

// poachables enters ambitious assistants without vacating their seats.
func (st *build) poachables(ctx context.Context, team string) {
	for _, role := range model.CoordinatorRoles {
		id, ok := st.in.Staffs.Get(team, role)
		if !ok || st.entered[id] {
			continue
		}
		coach, ok := st.store.Get(id)
		if !ok {
			continue
		}
		if coach.Overall < poachQualityFloor {
			continue
		}
		ambition := st.collab.Ambition.Ambition(coach)
		switch {
		case ambition >= ambitionCertain:
		case ambition >= ambitionPossible && st.src.Chance(ambitionPossibleChance):
		default:
			continue
		}
		st.enter(ctx, coach, team, model.ReasonSeekingPromotion)
	}
}

// freeAgents generates unsigned coaches until the pool reaches its target.
func (st *build) freeAgents(ctx context.Context) error {
	target := st.poolMultiplier * len(st.res.Vacancies)
	if target < st.minPoolSize {
		target = st.minPoolSize
	}
	generated := 0
	for len(st.res.Entries) < target {
		role := model.Roles[st.src.Intn(len(model.Roles))]
		prestige := st.src.Uniform(st.freeAgentPrestigeLo, st.freeAgentPrestigeHi)
		coach, err := st.collab.Generator.Generate(st.src, role, prestige)
		if err != nil {
			return fmt.Errorf("pool: generate free agent: %w", err)
		}
		coach, err = repository.AddUnique(st.store, coach, st.src)
		if err != nil {
			return fmt.Errorf("pool: register free agent: %w", err)
		}
		st.enter(ctx, coach, "", model.ReasonFreeAgent)
		generated++
	}
	st.logger.Debug(ctx, "free agents generated", logger.Int("count", generated), logger.Int("target", target))
	return nil
}

// enter appends one entry per coach and applies role fluidity.
func (st *build) enter(ctx context.Context, coach model.Coach, origin string, reason model.Reason) {
	if st.entered[coach.ID] {
		return
	}
	st.entered[coach.ID] = true

	var roles []model.Role
	if reason == model.ReasonSeekingPromotion {
		roles = []model.Role{model.RoleHeadCoach}
	} else {
		roles = dedupeRoles(st.collab.Roles.AcceptableRoles(coach, reason))
		if len(roles) == 0 {
			roles = []model.Role{coach.Role}
		}
		if coach.Role.IsCoordinator() {
			roles = st.applyFluidity(coach.Role, roles)
		}
	}

	st.res.Entries = append(st.res.Entries, model.MarketEntry{
		CoachID:       coach.ID,
		OriginTeam:    origin,
		Reason:        reason,
		AcceptedRoles: roles,
		LastRecord:    st.in.Records[origin],
	})
	st.logger.Debug(ctx, "coach entered market",
		logger.String("coach", coach.Name),
		logger.String("origin", origin),
		logger.String("reason", string(reason)),
		logger.Int("roles", len(roles)),
	)
}

// applyFluidity gives a coordinator a chance at each other coordinator role.
func (st *build) applyFluidity(own model.Role, roles []model.Role) []model.Role {
	for _, other := range model.CoordinatorRoles {
		if other == own || containsRole(roles, other) {
			continue
		}
		if st.src.Chance(roleFluidityChance) {
			roles = append(roles, other)
		}
	}
	return roles
}

func containsRole(roles []model.Role, r model.Role) bool {
	for _, have := range roles {
		if have == r {
			return true
		}
	}
	return false
}

func dedupeRoles(in []model.Role) []model.Role {
	out := make([]model.Role, 0, len(in))
	for _, r := range in {
		if r.Valid() && !containsRole(out, r) {
			out = append(out, r)
		}
	}
	return out
}
