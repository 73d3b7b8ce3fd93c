package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	APICalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "procurehub_api_calls_total", Help: "Total mock API operations by name"},
		[]string{"operation"},
	)
	StorageFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "procurehub_storage_failures_total", Help: "Total swallowed storage failures by op"},
		[]string{"op"},
	)
	NotificationsEvicted = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "procurehub_notifications_evicted_total", Help: "Total notifications dropped by the per-user cap"},
	)
)

func Register() {
	prometheus.MustRegister(APICalls, StorageFailures, NotificationsEvicted)
}
