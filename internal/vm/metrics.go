package vm

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	scopesCommitted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "contractvm_scopes_committed_total",
		Help: "Number of GlobalContext save points committed.",
	})
	scopesRolledBack = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "contractvm_scopes_rolled_back_total",
		Help: "Number of GlobalContext save points rolled back.",
	})
	callStackDepth = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "contractvm_call_stack_depth",
		Help: "Current depth of the active call stack.",
	})
	assetMapOverflows = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "contractvm_asset_map_overflow_total",
		Help: "Number of AssetMap operations rejected for arithmetic overflow.",
	})
)

func init() {
	prometheus.MustRegister(scopesCommitted, scopesRolledBack, callStackDepth, assetMapOverflows)
}
