package service

import (
	"sync"

	"github.com/quarterback/viperball-sub000/internal/adapters/repository"
	"github.com/quarterback/viperball-sub000/internal/domain/matching"
	"github.com/quarterback/viperball-sub000/internal/domain/model"
	"github.com/quarterback/viperball-sub000/internal/domain/random"
)

// Market is one offseason's pool and vacancies plus, once resolved, what
// happened to them. The same random source carries from Populate through
// Resolve.
type Market struct {
	mu sync.Mutex

	store      repository.Store
	staffs     model.Staffs
	entries    []model.MarketEntry
	vacancies  []model.Vacancy
	retentions []model.CoachID
	src        *random.Source

	resolved    bool
	result      matching.Result
	hires       []model.HireRecord
	backfilled  []model.Vacancy
	released    []model.CoachID
	openedSeats []model.Vacancy
}

func newMarket(store repository.Store, staffs model.Staffs, entries []model.MarketEntry, vacancies []model.Vacancy, src *random.Source) *Market {
	return &Market{
		store:     store,
		staffs:    staffs,
		entries:   entries,
		vacancies: vacancies,
		src:       src,
	}
}

// Seed returns the seed the market's random source started from.
func (m *Market) Seed() int64 { return m.src.Seed() }

// Resolved reports whether Resolve has consumed the market.
func (m *Market) Resolved() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resolved
}

// Entries returns a copy of the market entries.
func (m *Market) Entries() []model.MarketEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.MarketEntry(nil), m.entries...)
}

// Vacancies returns a copy of the declared vacancies.
func (m *Market) Vacancies() []model.Vacancy {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Vacancy(nil), m.vacancies...)
}

// Retentions lists head coaches extended instead of entering.
func (m *Market) Retentions() []model.CoachID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.CoachID(nil), m.retentions...)
}

// Staffs returns the staffs the market mutates.
func (m *Market) Staffs() model.Staffs { return m.staffs }

// Result returns the solver output.
func (m *Market) Result() matching.Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.result
}

// Hires returns the hires log in settlement order.
func (m *Market) Hires() []model.HireRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.HireRecord(nil), m.hires...)
}

// Backfilled lists vacancies filled by generated coaches.
func (m *Market) Backfilled() []model.Vacancy {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Vacancy(nil), m.backfilled...)
}

// Released lists departed coaches nobody hired.
func (m *Market) Released() []model.CoachID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.CoachID(nil), m.released...)
}

// OpenedSeats lists seats vacated by poached coordinators. They carry to
// the next cycle.
func (m *Market) OpenedSeats() []model.Vacancy {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Vacancy(nil), m.openedSeats...)
}
