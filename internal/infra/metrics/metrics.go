// Package metrics exposes Prometheus collectors for HTTP traffic and the DB pool.
package metrics

import (
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// Registry bundles the collectors recorded by the HTTP middleware.
type Registry struct {
	registry        *prometheus.Registry
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RateLimited     *prometheus.CounterVec
}

// New builds an isolated registry with Go runtime and process collectors.
func New() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medplatform",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "medplatform",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		RateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medplatform",
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter, by route.",
		}, []string{"route"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.RequestsTotal,
		r.RequestDuration,
		r.RateLimited,
	)

	return r
}

// RegisterDB exports connection pool statistics of db.
func (r *Registry) RegisterDB(db *gorm.DB, name string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	return r.registerSQL(sqlDB, name)
}

func (r *Registry) registerSQL(sqlDB *sql.DB, name string) error {
	return r.registry.Register(collectors.NewDBStatsCollector(sqlDB, name))
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Gatherer exposes the registry for tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}
