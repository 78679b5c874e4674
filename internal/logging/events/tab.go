package events

import "github.com/atomicstack/tabstrip/internal/logging"

type TabTracer struct{}

var Tab = TabTracer{}

func (TabTracer) Open(id int, kind string) {
	logging.Trace("tab.open", map[string]interface{}{"id": id, "kind": kind})
}

func (TabTracer) Close(id, active int) {
	logging.Trace("tab.close", map[string]interface{}{"id": id, "active": active})
}

func (TabTracer) Activate(id int) {
	logging.Trace("tab.activate", map[string]interface{}{"id": id})
}

func (TabTracer) Scroll(direction string, delta, offset int) {
	logging.Trace("tab.scroll", map[string]interface{}{"direction": direction, "delta": delta, "offset": offset})
}

func (TabTracer) Reject(op string, id int, err error) {
	logging.Trace("tab.reject", map[string]interface{}{"op": op, "id": id, "error": err.Error()})
}

func (TabTracer) Notify(active, tabs, observers int) {
	logging.Trace("tab.notify", map[string]interface{}{"active": active, "tabs": tabs, "observers": observers})
}
