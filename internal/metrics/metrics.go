// Package metrics exposes Prometheus collectors for the server.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every collector of this package plus the Go runtime ones.
var Registry = prometheus.NewRegistry()

var (
	settlementsComputed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "splitmonth_settlements_computed_total",
		Help: "Number of settlement plans computed.",
	})

	settlementTransfers = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "splitmonth_settlement_transfers",
		Help:    "Number of transfers in each computed settlement plan.",
		Buckets: prometheus.LinearBuckets(0, 1, 11),
	})

	unsettledMembers = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "splitmonth_unsettled_members",
		Help:    "Members with a non-zero balance when a settlement plan is computed.",
		Buckets: prometheus.LinearBuckets(0, 1, 11),
	})

	rpcRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "splitmonth_rpc_requests_total",
		Help: "RPC calls by procedure and result code.",
	}, []string{"procedure", "code"})

	rpcDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "splitmonth_rpc_duration_seconds",
		Help:    "RPC latency by procedure.",
		Buckets: prometheus.DefBuckets,
	}, []string{"procedure"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		settlementsComputed,
		settlementTransfers,
		unsettledMembers,
		rpcRequests,
		rpcDuration,
	)
}

// ObserveSettlement records one computed settlement plan.
func ObserveSettlement(transfers, unsettled int) {
	settlementsComputed.Inc()
	settlementTransfers.Observe(float64(transfers))
	unsettledMembers.Observe(float64(unsettled))
}

// ObserveRPC records one finished RPC. code is "ok" or a Connect error code.
func ObserveRPC(procedure, code string, elapsed time.Duration) {
	rpcRequests.WithLabelValues(procedure, code).Inc()
	rpcDuration.WithLabelValues(procedure).Observe(elapsed.Seconds())
}

// Handler serves Registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
