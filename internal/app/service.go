// Package service runs one offseason coaching market: it populates the
// market from league state and resolves it into signed staffs.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/quarterback/viperball-sub000/internal/adapters/repository"
	"github.com/quarterback/viperball-sub000/internal/adapters/staffing"
	"github.com/quarterback/viperball-sub000/internal/domain/collab"
	"github.com/quarterback/viperball-sub000/internal/domain/matching"
	"github.com/quarterback/viperball-sub000/internal/domain/model"
	"github.com/quarterback/viperball-sub000/internal/domain/pool"
	"github.com/quarterback/viperball-sub000/internal/domain/preference"
	"github.com/quarterback/viperball-sub000/internal/domain/random"
	"github.com/quarterback/viperball-sub000/internal/domain/settlement"
	"github.com/quarterback/viperball-sub000/pkg/logger"
	"github.com/quarterback/viperball-sub000/pkg/metrics"
)

// Changes maps team -> role -> the coach seated there by a resolution. Seats
// emptied when a coordinator is promoted away are not in Changes; they are
// listed by Market.OpenedSeats and stay empty until the next cycle.
type Changes map[string]map[model.Role]model.Coach

// Service builds and resolves markets.
type Service struct {
	mu sync.Mutex

	// Collaborators
	collab collab.Set

	// Configuration
	preferenceDepth int
	iterationFactor int
	minPoolSize     int
	poolMultiplier  int
	freeAgentLo     float64
	freeAgentHi     float64

	// State
	resolved int

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCollaborators replaces the default collaborator set.
func WithCollaborators(set collab.Set) Option {
	return func(s *Service) {
		s.collab = set
	}
}

// WithPreferenceDepth sets how deep each ranked list goes.
func WithPreferenceDepth(k int) Option {
	return func(s *Service) {
		if k > 0 {
			s.preferenceDepth = k
		}
	}
}

// WithIterationFactor sets the solver's per-vacancy proposal budget.
func WithIterationFactor(factor int) Option {
	return func(s *Service) {
		if factor > 0 {
			s.iterationFactor = factor
		}
	}
}

// WithMinPoolSize sets the floor on pool size when vacancies exist.
func WithMinPoolSize(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.minPoolSize = n
		}
	}
}

// WithPoolMultiplier sets the pool target per vacancy.
func WithPoolMultiplier(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.poolMultiplier = n
		}
	}
}

// WithFreeAgentPrestige sets the prestige range generated free agents are
// built around. Empty ranges are ignored.
func WithFreeAgentPrestige(lo, hi float64) Option {
	return func(s *Service) {
		if lo >= 0 && hi > lo {
			s.freeAgentLo = lo
			s.freeAgentHi = hi
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		collab:          staffing.Defaults(),
		preferenceDepth: preference.DefaultDepth,
		iterationFactor: matching.DefaultIterationFactor,
		minPoolSize:     15,
		poolMultiplier:  2,
		logger:          nil, // resolved lazily from the global logger
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) log() logger.Logger {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.logger == nil {
		s.logger = logger.Get().Named("market")
	}
	return s.logger
}

// PopulateRequest is the league state one cycle starts from.
type PopulateRequest struct {
	// Registry holds every league coach; generated coaches are added to it.
	Registry repository.Store
	// Staffs is mutated through the cycle and ends as the new staffs.
	Staffs    model.Staffs
	Records   map[string]model.Record
	Prestige  map[string]float64
	Fired     map[string][]model.Role
	HumanTeam string
	Seed      int64
}

// Populate runs eligibility and returns an unresolved market.
func (s *Service) Populate(ctx context.Context, req PopulateRequest) (*Market, error) {
	log := s.log()
	if req.Registry == nil {
		return nil, ErrNilRegistry
	}
	if req.Staffs == nil {
		req.Staffs = model.Staffs{}
	}

	src := random.New(req.Seed)
	opts := []pool.Option{
		pool.WithLogger(log.Named("pool")),
		pool.WithMinPoolSize(s.minPoolSize),
		pool.WithPoolMultiplier(s.poolMultiplier),
	}
	if s.freeAgentHi > 0 {
		opts = append(opts, pool.WithFreeAgentPrestige(s.freeAgentLo, s.freeAgentHi))
	}
	builder := pool.NewBuilder(req.Registry, s.collab, opts...)

	start := time.Now()
	res, err := builder.Build(ctx, pool.Input{
		Staffs:    req.Staffs,
		Records:   req.Records,
		Prestige:  req.Prestige,
		Fired:     req.Fired,
		HumanTeam: req.HumanTeam,
	}, src)
	metrics.RecordStageDuration("pool", float64(time.Since(start).Microseconds())/1000)
	if err != nil {
		metrics.RecordErrorByComponent("pool", "build")
		return nil, fmt.Errorf("populate market: %w", err)
	}

	metrics.UpdatePoolSize(len(res.Entries), len(res.Vacancies))
	metrics.RecordRetentions(len(res.Retentions))
	for _, e := range res.Entries {
		metrics.RecordEntry(string(e.Reason))
	}

	m := newMarket(req.Registry, req.Staffs, res.Entries, res.Vacancies, src)
	m.retentions = res.Retentions
	log.Info(ctx, "market populated",
		logger.Int("entries", len(res.Entries)),
		logger.Int("vacancies", len(res.Vacancies)),
		logger.Int("retentions", len(res.Retentions)),
		logger.Any("seed", req.Seed),
	)
	return m, nil
}

// NewMarket wraps externally built entries and vacancies.
func (s *Service) NewMarket(store repository.Store, staffs model.Staffs, entries []model.MarketEntry, vacancies []model.Vacancy, seed int64) *Market {
	if staffs == nil {
		staffs = model.Staffs{}
	}
	return newMarket(store, staffs, entries, vacancies, random.New(seed))
}

// Resolve scores, matches and settles m. A market resolves once; any
// attempt past validation consumes it.
func (s *Service) Resolve(ctx context.Context, m *Market, league model.TeamContext) (Changes, error) {
	log := s.log()
	if m == nil {
		return nil, ErrNilMarket
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.resolved {
		return nil, ErrMarketResolved
	}
	if m.store == nil {
		return nil, ErrNilRegistry
	}
	m.resolved = true

	if len(m.vacancies) == 0 {
		metrics.RecordCycle("empty")
		log.Info(ctx, "market has no vacancies; nothing to resolve")
		return Changes{}, nil
	}

	start := time.Now()
	engine := preference.NewEngine(
		preference.WithDepth(s.preferenceDepth),
		preference.WithAmbition(s.collab.Ambition),
	)
	tables, err := engine.Build(m.entries, m.vacancies, m.store, league, m.src)
	metrics.RecordStageDuration("preference", float64(time.Since(start).Microseconds())/1000)
	if err != nil {
		metrics.RecordCycle("failed")
		metrics.RecordErrorByComponent("preference", "build")
		return nil, fmt.Errorf("resolve market: %w", err)
	}

	start = time.Now()
	result, err := matching.NewSolver(matching.WithIterationFactor(s.iterationFactor)).Solve(m.vacancies, tables)
	metrics.RecordStageDuration("matching", float64(time.Since(start).Microseconds())/1000)
	m.result = result
	if err != nil {
		if errors.Is(err, matching.ErrIterationLimit) {
			metrics.RecordIterationLimit()
		}
		metrics.RecordCycle("failed")
		metrics.RecordErrorByComponent("matching", "solve")
		log.Error(ctx, "matching failed",
			logger.Error(err),
			logger.Int("proposals", result.Proposals),
			logger.Int("vacancies", len(m.vacancies)),
		)
		return nil, fmt.Errorf("resolve market: %w", err)
	}
	metrics.RecordProposals(result.Proposals)
	metrics.RecordMatches(len(result.Matches))

	start = time.Now()
	settler := settlement.NewSettler(m.store, s.collab, settlement.WithLogger(log.Named("settlement")))
	out, err := settler.Settle(ctx, settlement.Input{
		Entries:   m.entries,
		Vacancies: m.vacancies,
		Matches:   result.Matches,
		Staffs:    m.staffs,
		Prestige:  league.Prestige,
	}, m.src)
	metrics.RecordStageDuration("settlement", float64(time.Since(start).Microseconds())/1000)
	if err != nil {
		metrics.RecordCycle("failed")
		metrics.RecordErrorByComponent("settlement", "settle")
		return nil, fmt.Errorf("resolve market: %w", err)
	}

	m.hires = out.Hires
	m.backfilled = out.Backfilled
	m.released = out.Released
	m.openedSeats = out.OpenedSeats
	for _, h := range out.Hires {
		metrics.RecordHire(h.Role.String(), string(h.Reason))
	}
	metrics.RecordBackfills(len(out.Backfilled))
	metrics.RecordReleases(len(out.Released))
	metrics.RecordOpenedSeats(len(out.OpenedSeats))
	metrics.RecordCycle("resolved")

	s.mu.Lock()
	s.resolved++
	s.mu.Unlock()

	log.Info(ctx, "market resolved",
		logger.Int("proposals", result.Proposals),
		logger.Int("matched", len(result.Matches)),
		logger.Int("backfilled", len(out.Backfilled)),
		logger.Int("released", len(out.Released)),
	)
	return Changes(out.Changes), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]interface{}{
		"preferenceDepth": s.preferenceDepth,
		"iterationFactor": s.iterationFactor,
		"minPoolSize":     s.minPoolSize,
		"poolMultiplier":  s.poolMultiplier,
		"freeAgentMin":    s.freeAgentLo,
		"freeAgentMax":    s.freeAgentHi,
		"marketsResolved": s.resolved,
	}
}
