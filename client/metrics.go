package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dayminder_client",
			Name:      "requests_total",
			Help:      "HTTP calls made by the SDK, by operation and status class.",
		},
		[]string{"op", "class"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dayminder_client",
			Name:      "request_duration_seconds",
			Help:      "Latency of SDK HTTP calls.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"op"},
	)
)

func statusClass(code int) string {
	switch {
	case code == 0:
		return "transport_error"
	case code < 300:
		return "2xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
