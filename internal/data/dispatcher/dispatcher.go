package dispatcher

import (
	"errors"
	"fmt"
	"sync"

	"github.com/atomicstack/tabstrip/internal/logging/events"
	"github.com/google/uuid"
)

// EventKind names a family of intent events.
type EventKind string

// Handler consumes the payload of a published event.
type Handler func(payload any) error

// Token identifies one subscription.
type Token string

// Bus is a synchronous in-process publish/subscribe channel.
type Bus interface {
	Publish(kind EventKind, payload any) error
	Subscribe(kind EventKind, h Handler) Token
	Unsubscribe(Token) bool
}

type subscription struct {
	token   Token
	kind    EventKind
	handler Handler
}

// Dispatcher delivers each published payload to the handlers subscribed to
// its kind, in subscription order, on the caller's goroutine.
type Dispatcher struct {
	mu   sync.RWMutex
	subs map[EventKind][]subscription
}

var _ Bus = (*Dispatcher)(nil)

// New returns a dispatcher with no subscriptions.
func New() *Dispatcher {
	return &Dispatcher{subs: make(map[EventKind][]subscription)}
}

// Publish runs every handler for kind. A failing handler does not stop the
// rest; their errors are joined.
func (d *Dispatcher) Publish(kind EventKind, payload any) error {
	d.mu.RLock()
	subs := append([]subscription(nil), d.subs[kind]...)
	d.mu.RUnlock()

	events.Bus.Publish(string(kind), len(subs))
	var errs []error
	for _, sub := range subs {
		if err := sub.handler(payload); err != nil {
			events.Bus.HandlerError(string(kind), string(sub.token), err)
			errs = append(errs, fmt.Errorf("%s: %w", kind, err))
		}
	}
	return errors.Join(errs...)
}

// Subscribe appends h to the delivery list for kind.
func (d *Dispatcher) Subscribe(kind EventKind, h Handler) Token {
	token := Token(uuid.NewString())
	if h == nil {
		return token
	}
	d.mu.Lock()
	d.subs[kind] = append(d.subs[kind], subscription{token: token, kind: kind, handler: h})
	d.mu.Unlock()
	events.Bus.Subscribe(string(kind), string(token))
	return token
}

// Unsubscribe removes the subscription behind token. It reports whether one
// was found.
func (d *Dispatcher) Unsubscribe(token Token) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for kind, subs := range d.subs {
		for i, sub := range subs {
			if sub.token != token {
				continue
			}
			remaining := append(subs[:i:i], subs[i+1:]...)
			if len(remaining) == 0 {
				delete(d.subs, kind)
			} else {
				d.subs[kind] = remaining
			}
			events.Bus.Unsubscribe(string(kind), string(token))
			return true
		}
	}
	return false
}

// Subscribers reports how many handlers are registered for kind.
func (d *Dispatcher) Subscribers(kind EventKind) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.subs[kind])
}
