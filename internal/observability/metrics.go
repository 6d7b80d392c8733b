package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthEvents counts register, login, logout and token checks by result.
	AuthEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devconnector_auth_events_total",
		Help: "Authentication events by type and result",
	}, []string{"event", "result"})

	// DatabaseQueryDuration records gorm statement latency by operation and table.
	DatabaseQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "devconnector_db_query_duration_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// RedisErrors counts Redis errors by command.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devconnector_redis_errors_total",
		Help: "Total number of Redis errors by operation",
	}, []string{"operation"})
)

// RecordAuth increments AuthEvents.
func RecordAuth(event string, ok bool) {
	result := "success"
	if !ok {
		result = "failure"
	}
	AuthEvents.WithLabelValues(event, result).Inc()
}
