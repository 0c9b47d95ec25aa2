package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RunsTotal counts evaluation runs by result:
	// adjudicated, partial, aborted, lease_held.
	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evaluation_runs_total",
			Help: "Total number of tender evaluation runs by result",
		},
		[]string{"result"},
	)

	// LotOutcomesTotal counts per-lot outcomes by kind: ok or an error kind
	// from the engine taxonomy.
	LotOutcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evaluation_lot_outcomes_total",
			Help: "Total number of per-lot evaluation outcomes by kind",
		},
		[]string{"kind"},
	)

	// RemediationsExpiredTotal counts requests expired by the sweep.
	RemediationsExpiredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "remediation_expired_total",
			Help: "Total number of remediation requests expired by the sweep",
		},
	)
)

// Handler exposes the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
