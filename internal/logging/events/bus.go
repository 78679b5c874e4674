package events

import "github.com/atomicstack/tabstrip/internal/logging"

type BusTracer struct{}

var Bus = BusTracer{}

func (BusTracer) Publish(kind string, handlers int) {
	logging.Trace("bus.publish", map[string]interface{}{"kind": kind, "handlers": handlers})
}

func (BusTracer) Subscribe(kind, token string) {
	logging.Trace("bus.subscribe", map[string]interface{}{"kind": kind, "token": token})
}

func (BusTracer) Unsubscribe(kind, token string) {
	logging.Trace("bus.unsubscribe", map[string]interface{}{"kind": kind, "token": token})
}

func (BusTracer) HandlerError(kind, token string, err error) {
	if err == nil {
		return
	}
	logging.Trace("bus.handler.error", map[string]interface{}{"kind": kind, "token": token, "error": err.Error()})
}
