// Package metrics exposes the ambient observability surface (sync
// cycle counters, graph size gauge, query latency histogram) via
// github.com/prometheus/client_golang, the half of the teacher's
// metrics/tracing stack that still applies once OpenTelemetry's
// wire-boundary tracing is dropped as out of scope.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry bundles the collectors this module registers, so callers
// can wire them into a custom prometheus.Registerer instead of the
// global default one.
type Registry struct {
	SyncCyclesTotal  *prometheus.CounterVec
	NodesTotal       prometheus.Gauge
	QueryLatency     *prometheus.HistogramVec
	ComplianceScore  *prometheus.GaugeVec
}

// NewRegistry constructs the collector set and registers it with reg.
// Pass prometheus.NewRegistry() for an isolated registry in tests, or
// prometheus.DefaultRegisterer in production.
func NewRegistry(reg prometheus.Registerer) *Registry {
	r := &Registry{
		SyncCyclesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ikg_sync_cycles_total",
			Help: "Count of completed sync cycles by provider and terminal status.",
		}, []string{"provider", "status"}),
		NodesTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ikg_nodes_total",
			Help: "Current count of nodes held in storage.",
		}),
		QueryLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ikg_query_latency_seconds",
			Help:    "Latency of graph query operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		ComplianceScore: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ikg_compliance_score",
			Help: "Most recently computed compliance score by framework.",
		}, []string{"framework"}),
	}
	reg.MustRegister(r.SyncCyclesTotal, r.NodesTotal, r.QueryLatency, r.ComplianceScore)
	return r
}

// ObserveSync records one finished sync cycle.
func (r *Registry) ObserveSync(provider, status string) {
	r.SyncCyclesTotal.WithLabelValues(provider, status).Inc()
}

// SetNodesTotal records the current node count after a sync or prune.
func (r *Registry) SetNodesTotal(n int) {
	r.NodesTotal.Set(float64(n))
}

// TimeQuery returns a function to call when operation finishes,
// recording its duration in QueryLatency.
func (r *Registry) TimeQuery(operation string) func() {
	start := time.Now()
	return func() {
		r.QueryLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}

// SetComplianceScore records a framework's most recent score.
func (r *Registry) SetComplianceScore(framework string, score float64) {
	r.ComplianceScore.WithLabelValues(framework).Set(score)
}
