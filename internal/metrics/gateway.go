package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search gateway and cache Prometheus metrics.
var (
	GatewayRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "biosearch",
			Name:      "gateway_requests_total",
			Help:      "Total number of remote search service calls",
		},
		[]string{"operation", "index", "status"}, // status: "ok" / "throttled" / "error"
	)

	GatewayRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "biosearch",
			Name:      "gateway_request_duration_seconds",
			Help:      "Remote search service call duration in seconds",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"operation", "index"},
	)

	TagCountCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "biosearch",
			Name:      "tag_count_cache_total",
			Help:      "Tag count cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var gatewayMetricsRegistered bool

// RegisterGatewayMetrics registers the gateway and cache metrics. Must be called once from main.
func RegisterGatewayMetrics() {
	if gatewayMetricsRegistered {
		return
	}
	prometheus.MustRegister(GatewayRequestsTotal)
	prometheus.MustRegister(GatewayRequestDuration)
	prometheus.MustRegister(TagCountCacheTotal)
	gatewayMetricsRegistered = true
}
