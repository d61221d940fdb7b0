package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(tickTotal, matchedUsers, heartbeatTotal) }

var tickTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "notify_ticks_total",
		Help: "Notification check ticks, labeled by outcome.",
	},
	[]string{"result"}, // 'run', 'skipped', 'error'
)

var matchedUsers = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Name: "notify_matched_users",
		Help: "Users matched on the most recent tick.",
	},
)

var heartbeatTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "keepalive_pings_total",
		Help: "Keep-alive health probes, labeled by outcome.",
	},
	[]string{"result"}, // 'ok', 'error'
)

func IncTick(result string) { tickTotal.WithLabelValues(result).Inc() }

func SetMatchedUsers(n int) { matchedUsers.Set(float64(n)) }

func IncHeartbeat(result string) { heartbeatTotal.WithLabelValues(result).Inc() }
