package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	EventsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orderflow_events_recorded_total",
		Help: "Outbox events recorded alongside order mutations.",
	}, []string{"kind"})

	EventsDispatched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orderflow_events_dispatched_total",
		Help: "Outbox events delivered to the broker.",
	})

	SaveConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orderflow_save_conflicts_total",
		Help: "Order saves rejected by optimistic concurrency control.",
	})
)

// Handler exposes the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
