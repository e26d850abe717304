package audit

import "go.uber.org/zap"

type Event struct {
	OrganizationID uint
	UserID         *uint
	Username       string
	Action         string
	EntityType     string
	EntityID       *uint
	Details        any
}

// Sink persists one event. *Logger is the production implementation.
type Sink interface {
	Write(ev Event) error
}

type Dispatcher struct {
	sink  Sink
	log   *zap.Logger
	queue chan Event
}

func NewDispatcher(sink Sink, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		log:   log,
		queue: make(chan Event, 256),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.sink.Write(ev); err != nil {
			eventsFailed.Inc()
			d.log.Warn("history write failed",
				zap.String("action", ev.Action),
				zap.String("entity_type", ev.EntityType),
				zap.Error(err),
			)
			continue
		}
		eventsWritten.Inc()
	}
}

// Dispatch never blocks; a full queue drops the event rather than slowing
// down the request that triggered it.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		eventsDropped.Inc()
		d.log.Warn("history queue full, dropping event",
			zap.String("action", ev.Action),
			zap.String("entity_type", ev.EntityType),
		)
	}
}
