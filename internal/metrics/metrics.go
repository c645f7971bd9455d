package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CandlesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "candles_total", Help: "Count of closed candles ingested"},
		[]string{"symbol"},
	)
	SignalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "signals_total", Help: "Trade signals emitted"},
		[]string{"symbol", "side"},
	)
)

func init() {
	prometheus.MustRegister(CandlesTotal, SignalsTotal)
}

func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
