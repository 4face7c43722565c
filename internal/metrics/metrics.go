package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "squares"

// Metrics holds the calculation collectors. Each instance registers on its
// own registerer so tests can use a fresh registry.
type Metrics struct {
	calculations *prometheus.CounterVec
	rejections   *prometheus.CounterVec
	terms        prometheus.Histogram
	duration     prometheus.Histogram
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculations_total",
			Help:      "Completed average-of-squares calculations.",
		}, []string{"source", "weighted"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejections_total",
			Help:      "Calculations rejected before computing, by error kind.",
		}, []string{"source", "kind"}),
		terms: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "calculation_terms",
			Help:      "Number of terms per calculation.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "calculation_duration_seconds",
			Help:      "Time spent computing and recording a calculation.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.calculations, m.rejections, m.terms, m.duration)
	return m
}

func (m *Metrics) ObserveCalculation(source string, weighted bool, terms int, elapsed time.Duration) {
	w := "false"
	if weighted {
		w = "true"
	}
	m.calculations.WithLabelValues(source, w).Inc()
	m.terms.Observe(float64(terms))
	m.duration.Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveRejection(source, kind string) {
	m.rejections.WithLabelValues(source, kind).Inc()
}
