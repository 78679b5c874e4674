package events

import "github.com/atomicstack/tabstrip/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

// Start records the resolved configuration and the engine's first snapshot.
func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Stop(activeID, tabs int, err error) {
	payload := map[string]interface{}{"active": activeID, "tabs": tabs}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("app.stop", payload)
}
