package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(deliveriesTotal, sendLatencyMs) }

var deliveriesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "notify_deliveries_total",
		Help: "Notification deliveries, labeled by status.",
	},
	[]string{"status"}, // 'sent', 'failed'
)

var sendLatencyMs = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "notify_send_latency_ms",
		Help:    "Per-user send latency distribution in milliseconds.",
		Buckets: []float64{10, 25, 50, 100, 200, 400, 800, 1600, 3000, 5000},
	},
)

func IncDelivery(status string) { deliveriesTotal.WithLabelValues(status).Inc() }

func ObserveSendLatencyMs(ms float64) { sendLatencyMs.Observe(ms) }
