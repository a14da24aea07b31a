package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics. A nil *Metrics is valid and
// records nothing, which keeps the usecase layer testable without
// touching the global registry.
type Metrics struct {
	SearchesTotal     prometheus.Counter
	FiltersTotal      prometheus.Counter
	FlightsNormalized prometheus.Counter
	RecordsSwept      prometheus.Counter
	ProviderLatency   prometheus.Histogram
	ErrorsCount       *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		SearchesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "The total number of flight searches executed",
		}),
		FiltersTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "filters_total",
			Help:      "The total number of filter requests served",
		}),
		FlightsNormalized: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flights_normalized_total",
			Help:      "The total number of flight options produced by normalization",
		}),
		RecordsSwept: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_swept_total",
			Help:      "The total number of expired search records deleted",
		}),
		ProviderLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_request_seconds",
			Help:      "Time taken by flight provider requests",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}

// IncSearches counts one completed search
func (m *Metrics) IncSearches() {
	if m == nil {
		return
	}
	m.SearchesTotal.Inc()
}

// IncFilters counts one served filter request
func (m *Metrics) IncFilters() {
	if m == nil {
		return
	}
	m.FiltersTotal.Inc()
}

// AddFlightsNormalized counts flights produced by one transform
func (m *Metrics) AddFlightsNormalized(n int) {
	if m == nil {
		return
	}
	m.FlightsNormalized.Add(float64(n))
}

// AddRecordsSwept counts records deleted by one sweep
func (m *Metrics) AddRecordsSwept(n int) {
	if m == nil {
		return
	}
	m.RecordsSwept.Add(float64(n))
}

// ObserveProviderLatency records one provider round trip
func (m *Metrics) ObserveProviderLatency(d time.Duration) {
	if m == nil {
		return
	}
	m.ProviderLatency.Observe(d.Seconds())
}

// IncError counts one error for the named operation
func (m *Metrics) IncError(operation string) {
	if m == nil {
		return
	}
	m.ErrorsCount.WithLabelValues(operation).Inc()
}
