// Package metrics exposes Prometheus collectors for connection lifecycle,
// packet translation, and chunk encoding, grounded on
// coreengine/observability/metrics.go's promauto.NewCounterVec /
// promauto.NewHistogramVec usage.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ConnectionsOpenTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mcproxy_connections_open_total",
		Help: "Total number of client connections accepted.",
	})

	ConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mcproxy_connections_active",
		Help: "Number of currently active client connections.",
	})

	PacketsTranslatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mcproxy_packets_translated_total",
		Help: "Total number of packets translated between a client version and the canonical version.",
	}, []string{"direction", "kind"})

	PacketsDroppedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mcproxy_packets_dropped_total",
		Help: "Total number of packets dropped due to an unknown ID or translation error.",
	}, []string{"direction", "reason"})

	FrameErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mcproxy_frame_errors_total",
		Help: "Total number of fatal framing errors (decompression, decryption, malformed length).",
	}, []string{"reason"})

	ChunkEncodeSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mcproxy_chunk_encode_seconds",
		Help:    "Time spent encoding a chunk column for a given block era.",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	}, []string{"era"})
)
