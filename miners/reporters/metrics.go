package reporters

import (
	"strconv"
)

import (
	"github.com/prometheus/client_golang/prometheus"
)

import (
	"github.com/timtadh/maxsets/miners"
)

// Metrics is an observer that exports the per level work counters as
// prometheus collectors.
type Metrics struct {
	registry prometheus.Gatherer

	LevelsTotal     *prometheus.CounterVec
	CandidatesTotal *prometheus.CounterVec
	BasketsTotal    *prometheus.CounterVec
	FrequentSets    *prometheus.GaugeVec
	MaxSupport      *prometheus.GaugeVec
	LevelDuration   *prometheus.HistogramVec
	LastLevel       prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with a fresh
// registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		LevelsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "maxsets_levels_total",
				Help: "Levels finished by strategy.",
			},
			[]string{"strategy"},
		),
		CandidatesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "maxsets_candidates_total",
				Help: "Candidate itemsets considered by strategy.",
			},
			[]string{"strategy"},
		),
		BasketsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "maxsets_baskets_total",
				Help: "Baskets scanned by outcome (checked, skipped).",
			},
			[]string{"outcome"},
		),
		FrequentSets: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "maxsets_frequent_sets",
				Help: "Frequent itemsets found at each level.",
			},
			[]string{"k"},
		),
		MaxSupport: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "maxsets_max_support",
				Help: "Largest support among the frequent itemsets of each level.",
			},
			[]string{"k"},
		),
		LevelDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "maxsets_level_duration_seconds",
				Help:    "Time spent generating and counting one level.",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
			},
			[]string{"strategy"},
		),
		LastLevel: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "maxsets_last_level",
				Help: "The level the run stopped at.",
			},
		),
	}
	reg.MustRegister(
		m.LevelsTotal,
		m.CandidatesTotal,
		m.BasketsTotal,
		m.FrequentSets,
		m.MaxSupport,
		m.LevelDuration,
		m.LastLevel,
	)
	return m
}

func (m *Metrics) Observe(e *miners.Event) {
	if e.State != miners.Running {
		m.LastLevel.Set(float64(e.Level))
		return
	}
	k := strconv.Itoa(e.Level)
	m.LevelsTotal.WithLabelValues(e.Strategy).Inc()
	m.CandidatesTotal.WithLabelValues(e.Strategy).Add(float64(e.Candidates))
	m.BasketsTotal.WithLabelValues("checked").Add(float64(e.BasketsChecked))
	m.BasketsTotal.WithLabelValues("skipped").Add(float64(e.BasketsSkipped))
	m.FrequentSets.WithLabelValues(k).Set(float64(e.Frequent))
	m.MaxSupport.WithLabelValues(k).Set(float64(e.MaxSupport))
	m.LevelDuration.WithLabelValues(e.Strategy).Observe(e.Elapsed.Seconds())
}

func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteFile dumps every collector in the text exposition format.
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
