package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	EvaluationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "evaluations_total", Help: "Symbols evaluated"},
		[]string{"symbol"},
	)
	RecommendationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "recommendations_total", Help: "Recommendations produced by action"},
		[]string{"action"},
	)
	BacktestRunsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "backtest_runs_total", Help: "Backtest batches executed"},
	)
)

func init() {
	prometheus.MustRegister(EvaluationsTotal, RecommendationsTotal, BacktestRunsTotal)
}

// Serve exposes /metrics on addr in the background.
func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
