package preview

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	renderDuration prometheus.Histogram
	events         *prometheus.CounterVec
	loadMore       prometheus.Counter
	clients        prometheus.Gauge
}

func newMetrics(registerer prometheus.Registerer) *metrics {
	m := &metrics{
		renderDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tradechart_png_render_duration_seconds",
				Help:    "Time spent composing and encoding the chart image",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
			},
		),
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradechart_events_total",
				Help: "Pointer and tool events applied to the chart",
			}, []string{"type"},
		),
		loadMore: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "tradechart_load_more_total",
				Help: "Requests for older candles issued by the chart",
			},
		),
		clients: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "tradechart_websocket_clients",
				Help: "Connected websocket clients",
			},
		),
	}

	registerer.MustRegister(m.renderDuration, m.events, m.loadMore, m.clients)
	return m
}
