package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	workspaceSaves *prometheus.CounterVec
	remoteSyncFail prometheus.Counter
	autoSaveTicks  prometheus.Counter
)

func init() {
	workspaceSaves = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:      "workspace_saves_total",
		Help:      "Number of workspace save outcomes partitioned by status",
		Subsystem: "sustaino_valuation",
	}, []string{"status"})

	remoteSyncFail = prometheus.NewCounter(prometheus.CounterOpts{
		Name:      "workspace_remote_sync_failures_total",
		Help:      "Number of best-effort remote assessment syncs that failed",
		Subsystem: "sustaino_valuation",
	})

	autoSaveTicks = prometheus.NewCounter(prometheus.CounterOpts{
		Name:      "job_autosave_ticks_total",
		Help:      "Number of job autosave timer ticks",
		Subsystem: "sustaino_valuation",
	})

	prometheus.MustRegister(workspaceSaves, remoteSyncFail, autoSaveTicks)
}

func IncWorkspaceSave(status string) {
	workspaceSaves.WithLabelValues(status).Inc()
}

func IncRemoteSyncFailure() {
	remoteSyncFail.Inc()
}

func IncAutoSaveTick() {
	autoSaveTicks.Inc()
}
