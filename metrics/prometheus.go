package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	AgentInvocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "maya_agent_invocations_total",
			Help: "Total number of agent task executions",
		},
		[]string{"role", "outcome"},
	)
	ToolCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "maya_tool_calls_total",
			Help: "Total number of tool calls",
		},
		[]string{"tool", "outcome"},
	)
	ToolLatencySeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "maya_tool_latency_seconds",
			Help:    "Latency of tool calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"tool"},
	)
	TurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "maya_turns_total",
			Help: "Total number of orchestrated turns by delegation decision",
		},
		[]string{"decision", "outcome"},
	)
)

// StartMetricsServer serves /metrics on addr in the background.
// Returns the server so callers can shut it down.
func StartMetricsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Str("addr", addr).Msg("❌ Metrics server stopped")
		}
	}()
	return srv
}
