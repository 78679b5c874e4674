package events

import "github.com/atomicstack/tabstrip/internal/logging"

type UITracer struct{}

type PickerTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Picker  = PickerTracer{}
	Command = CommandTracer{}
)

func (UITracer) Key(key string) {
	logging.Trace("ui.key", map[string]interface{}{"key": key})
}

func (UITracer) Render(active, offset, width int) {
	logging.Trace("ui.render", map[string]interface{}{"active": active, "offset": offset, "width": width})
}

func (UITracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("ui.error", map[string]interface{}{"error": err.Error()})
}

func (PickerTracer) Open() {
	logging.Trace("picker.open", nil)
}

func (PickerTracer) Filter(query string, matches int) {
	logging.Trace("picker.filter", map[string]interface{}{"query": query, "matches": matches})
}

func (PickerTracer) Cancel() {
	logging.Trace("picker.cancel", nil)
}

func (PickerTracer) Choose(kind string) {
	logging.Trace("picker.choose", map[string]interface{}{"kind": kind})
}

func (CommandTracer) Handle(intent string, payload interface{}) {
	logging.Trace("command.handle", map[string]interface{}{"intent": intent, "payload": payload})
}

func (CommandTracer) Reject(intent string, err error) {
	if err == nil {
		return
	}
	logging.Trace("command.reject", map[string]interface{}{"intent": intent, "error": err.Error()})
}
