// Package metrics exposes engine counters over Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Ticks = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fourbar_ticks_total",
		Help: "Spot polls processed inside the trading session.",
	})
	TicksSkipped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fourbar_ticks_skipped_total",
		Help: "Polls skipped before reaching the strategy.",
	}, []string{"reason"})
	Bars = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fourbar_bars_total",
		Help: "Completed bars handed to the strategy.",
	})
	Signals = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fourbar_signals_total",
		Help: "Breakout signals by direction.",
	}, []string{"direction"})
	StrategyErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fourbar_strategy_errors_total",
		Help: "Errors returned by the strategy bar handler.",
	})
)

func init() {
	prometheus.MustRegister(Ticks, TicksSkipped, Bars, Signals, StrategyErrors)
}

// Serve exposes /metrics on addr. It blocks, so run it in a goroutine.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
