package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// StoreMetrics defines the collectors recorded around user store calls.
type StoreMetrics struct {
	Operations *prometheus.CounterVec
	Duration   *prometheus.HistogramVec
	Users      *prometheus.GaugeVec
}

// NewStoreMetrics creates a new StoreMetrics instance. The collectors are not
// registered; pass Collectors to a registry.
func NewStoreMetrics(serviceName string) *StoreMetrics {
	operations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Total number of user store operations",
		},
		[]string{"backend", "operation", "outcome"},
	)

	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: serviceName,
			Subsystem: "store",
			Name:      "operation_duration_seconds",
			Help:      "Duration of user store operations",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"backend", "operation"},
	)

	users := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: serviceName,
			Subsystem: "store",
			Name:      "users",
			Help:      "Number of users in the last loaded or saved collection",
		},
		[]string{"backend"},
	)

	return &StoreMetrics{
		Operations: operations,
		Duration:   duration,
		Users:      users,
	}
}

func (m *StoreMetrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.Operations, m.Duration, m.Users}
}

// Observe records one store call.
func (m *StoreMetrics) Observe(backend, operation string, err error, elapsed time.Duration) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	m.Operations.WithLabelValues(backend, operation, outcome).Inc()
	m.Duration.WithLabelValues(backend, operation).Observe(elapsed.Seconds())
}

func (m *StoreMetrics) SetUsers(backend string, count int) {
	m.Users.WithLabelValues(backend).Set(float64(count))
}
