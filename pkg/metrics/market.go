package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every market metric.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Cycle metrics
	cycles        *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec

	// Pool metrics
	poolEntries prometheus.Gauge
	vacancies   prometheus.Gauge
	entries     *prometheus.CounterVec
	retentions  prometheus.Counter

	// Solver metrics
	proposals      prometheus.Histogram
	matches        prometheus.Counter
	iterationLimit prometheus.Counter

	// Settlement metrics
	hires       *prometheus.CounterVec
	backfills   prometheus.Counter
	releases    prometheus.Counter
	openedSeats prometheus.Counter

	errorRateByComponent *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "viperball",
		subsystem:        "coaching_market",
		histogramBuckets: []float64{0.1, 0.5, 1, 5, 10, 50, 100, 500},
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.cycles = auto.NewCounterVec(m.counterOpts("cycles_total", "Market cycles by outcome"), []string{"outcome"})
	m.stageDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("stage_duration_milliseconds"),
		Help:        "Wall time spent in each market stage",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.customLabels,
	}, []string{"stage"})

	m.poolEntries = auto.NewGauge(m.gaugeOpts("pool_entries", "Coaches in the most recent market pool"))
	m.vacancies = auto.NewGauge(m.gaugeOpts("vacancies", "Vacancies declared in the most recent market"))
	m.entries = auto.NewCounterVec(m.counterOpts("entries_total", "Market entries by reason"), []string{"reason"})
	m.retentions = auto.NewCounter(m.counterOpts("retentions_total", "Head coaches extended instead of entering the market"))

	m.proposals = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("proposals"),
		Help:        "Proposals made per matching run",
		Buckets:     prometheus.LinearBuckets(0, 10, 10),
		ConstLabels: m.customLabels,
	})
	m.matches = auto.NewCounter(m.counterOpts("matches_total", "Vacancies filled by the solver"))
	m.iterationLimit = auto.NewCounter(m.counterOpts("iteration_limit_total", "Solver runs that hit the proposal budget"))

	m.hires = auto.NewCounterVec(m.counterOpts("hires_total", "Hires by role and reason"), []string{"role", "reason"})
	m.backfills = auto.NewCounter(m.counterOpts("backfills_total", "Vacancies filled with a generated coach"))
	m.releases = auto.NewCounter(m.counterOpts("releases_total", "Departed coaches left unsigned"))
	m.openedSeats = auto.NewCounter(m.counterOpts("opened_seats_total", "Seats vacated by poached coordinators"))

	m.errorRateByComponent = auto.NewCounterVec(m.counterOpts("errors_total", "Errors by component and type"), []string{"component", "type"})
}

// RecordCycle counts a finished cycle by outcome (resolved, empty, failed).
func RecordCycle(outcome string) {
	globalManager.cycles.WithLabelValues(outcome).Inc()
}

// RecordStageDuration records time spent in a stage in milliseconds.
func RecordStageDuration(stage string, durationMs float64) {
	globalManager.stageDuration.WithLabelValues(stage).Observe(durationMs)
}

// UpdatePoolSize sets the current pool and vacancy gauges.
func UpdatePoolSize(entries, vacancies int) {
	globalManager.poolEntries.Set(float64(entries))
	globalManager.vacancies.Set(float64(vacancies))
}

// RecordEntry counts a market entry.
func RecordEntry(reason string) {
	globalManager.entries.WithLabelValues(reason).Inc()
}

// RecordRetentions adds head-coach extensions.
func RecordRetentions(n int) {
	globalManager.retentions.Add(float64(n))
}

// RecordProposals observes the proposal count of one solver run.
func RecordProposals(n int) {
	globalManager.proposals.Observe(float64(n))
}

// RecordMatches adds solver matches.
func RecordMatches(n int) {
	globalManager.matches.Add(float64(n))
}

// RecordIterationLimit counts a solver run that exhausted its budget.
func RecordIterationLimit() {
	globalManager.iterationLimit.Inc()
}

// RecordHire counts a hire.
func RecordHire(role, reason string) {
	globalManager.hires.WithLabelValues(role, reason).Inc()
}

// RecordBackfills adds generated fills.
func RecordBackfills(n int) {
	globalManager.backfills.Add(float64(n))
}

// RecordReleases adds released coaches.
func RecordReleases(n int) {
	globalManager.releases.Add(float64(n))
}

// RecordOpenedSeats adds seats opened by poaching.
func RecordOpenedSeats(n int) {
	globalManager.openedSeats.Add(float64(n))
}

// RecordErrorByComponent counts an error.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile writes the registry in text exposition format, for the
// node_exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteTextfile, err)
	}
	return nil
}
