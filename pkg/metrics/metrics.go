package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPRequestsTotal counts HTTP requests by route, method and status
var HTTPRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "roster_http_requests_total",
		Help: "Total number of HTTP requests handled by the API",
	},
	[]string{"path", "method", "status"},
)

// HTTPRequestDuration records request latency by route and method
var HTTPRequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "roster_http_request_duration_seconds",
		Help:    "Latency in seconds to serve HTTP requests",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"path", "method"},
)

// RecordsCreated counts successfully created records by entity
var RecordsCreated = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "roster_records_created_total",
		Help: "Total number of records created by entity type",
	},
	[]string{"entity"},
)

// UniqueConflicts counts rejected writes due to uniqueness violations
var UniqueConflicts = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "roster_unique_conflicts_total",
		Help: "Total number of writes rejected by a uniqueness constraint",
	},
	[]string{"entity"},
)

// Database connection pool metrics
var (
	DBOpenConns = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "roster_db_open_connections",
			Help: "Number of open connections in the DB pool",
		},
		[]string{"db"},
	)

	DBIdleConns = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "roster_db_idle_connections",
			Help: "Number of idle connections in the DB pool",
		},
		[]string{"db"},
	)

	DBInUseConns = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "roster_db_in_use_connections",
			Help: "Number of in-use connections in the DB pool",
		},
		[]string{"db"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestsTotal, HTTPRequestDuration)
	prometheus.MustRegister(RecordsCreated, UniqueConflicts)
	prometheus.MustRegister(DBOpenConns, DBIdleConns, DBInUseConns)
}
