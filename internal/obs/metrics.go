package obs

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	reportMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_mutations_total",
			Help: "Report mutations by operation (create, assign, update_status, sync).",
		},
		[]string{"op"},
	)

	fanoutWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_fanout_writes_total",
			Help: "Collection writes performed while propagating a report mutation.",
		},
		[]string{"collection"},
	)

	accountOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "account_operations_total",
			Help: "Account operations by outcome.",
		},
		[]string{"op", "outcome"},
	)

	integrityMismatches = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "report_integrity_mismatches",
		Help: "Divergent report copies found by the last integrity check.",
	})
)

// Init registers the core metrics with the default registry.
func Init() {
	prometheus.MustRegister(reportMutations, fanoutWrites, accountOps, integrityMismatches)
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveReportMutation counts one report mutation.
func ObserveReportMutation(op string) {
	reportMutations.WithLabelValues(op).Inc()
}

// ObserveFanoutWrite counts one propagated collection write.
func ObserveFanoutWrite(collection string) {
	fanoutWrites.WithLabelValues(collection).Inc()
}

// ObserveAccountOp counts one account operation with its outcome.
func ObserveAccountOp(op, outcome string) {
	accountOps.WithLabelValues(op, outcome).Inc()
}

// SetIntegrityMismatches records the result of an integrity pass.
func SetIntegrityMismatches(n int) {
	integrityMismatches.Set(float64(n))
}
