package dispatcher

import "sync"

// Record is one Publish call seen by a Recorder.
type Record struct {
	Kind    EventKind
	Payload any
	Err     error
}

// Recorder wraps a Bus and keeps the history of published events.
type Recorder struct {
	Bus

	mu      sync.Mutex
	records []Record
}

// NewRecorder wraps bus. A nil bus gets a fresh Dispatcher.
func NewRecorder(bus Bus) *Recorder {
	if bus == nil {
		bus = New()
	}
	return &Recorder{Bus: bus}
}

func (r *Recorder) Publish(kind EventKind, payload any) error {
	err := r.Bus.Publish(kind, payload)
	r.mu.Lock()
	r.records = append(r.records, Record{Kind: kind, Payload: payload, Err: err})
	r.mu.Unlock()
	return err
}

// Records returns a copy of the publish history.
func (r *Recorder) Records() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	dup := make([]Record, len(r.records))
	copy(dup, r.records)
	return dup
}

// Kinds returns the published kinds in order.
func (r *Recorder) Kinds() []EventKind {
	records := r.Records()
	kinds := make([]EventKind, len(records))
	for i, rec := range records {
		kinds[i] = rec.Kind
	}
	return kinds
}

// Reset clears the history.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.records = nil
	r.mu.Unlock()
}
