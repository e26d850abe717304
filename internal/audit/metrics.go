package audit

import "github.com/prometheus/client_golang/prometheus"

// History logging is best-effort: failures never reach the caller, so these
// counters are the only place they become visible.
var (
	eventsWritten = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "audit_events_written_total",
		Help: "History rows successfully written",
	})
	eventsFailed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "audit_events_failed_total",
		Help: "History writes that errored and were discarded",
	})
	eventsDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "audit_events_dropped_total",
		Help: "Events dropped because the queue was full",
	})
)

func init() {
	prometheus.MustRegister(eventsWritten, eventsFailed, eventsDropped)
}
