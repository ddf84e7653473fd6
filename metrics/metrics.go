package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	stageHits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tutor_resolver_stage_total",
		Help: "Resolution count per fallback-chain stage",
	}, []string{"stage"})

	outcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tutor_resolver_outcome_total",
		Help: "Outcome kind count (answered/needs_search/fallback)",
	}, []string{"kind"})

	rankedIn = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "tutor_ranker_candidates",
		Help:    "Candidates handed to the ranker per call",
		Buckets: []float64{0, 1, 2, 3, 5, 8, 12, 20},
	})

	rankedKept = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "tutor_ranker_kept",
		Help:    "Candidates surviving the score floor per call",
		Buckets: []float64{0, 1, 2, 3, 5, 8, 12, 20},
	})

	searchLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tutor_search_latency_ms",
		Help:    "Latency of web search provider calls in milliseconds",
		Buckets: []float64{25, 50, 100, 200, 400, 800, 1500, 3000, 6000},
	}, []string{"provider"})

	searchResults = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tutor_search_results",
		Help:    "Number of results returned by a search provider",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
	}, []string{"provider"})
)

func ensureRegistered() {
	once.Do(func() {
		prometheus.MustRegister(stageHits, outcomes, rankedIn, rankedKept, searchLatency, searchResults)
	})
}

// IncStage counts which fallback-chain stage produced the outcome.
func IncStage(stage string) {
	ensureRegistered()
	stageHits.WithLabelValues(stage).Inc()
}

// IncOutcome counts outcome kinds.
func IncOutcome(kind string) {
	ensureRegistered()
	outcomes.WithLabelValues(kind).Inc()
}

// ObserveRanked records ranker input and survivor sizes for one call.
func ObserveRanked(in, kept int) {
	ensureRegistered()
	rankedIn.Observe(float64(in))
	rankedKept.Observe(float64(kept))
}

// ObserveSearch records latency and result size for one provider call.
func ObserveSearch(provider string, start time.Time, results int) {
	ensureRegistered()
	searchLatency.WithLabelValues(provider).Observe(float64(time.Since(start).Milliseconds()))
	searchResults.WithLabelValues(provider).Observe(float64(results))
}

// Collectors exposes all collectors for registration with a custom registry.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		stageHits, outcomes, rankedIn, rankedKept, searchLatency, searchResults,
	}
}
