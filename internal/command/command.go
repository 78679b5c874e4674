package command

import (
	"errors"
	"fmt"

	"github.com/atomicstack/tabstrip/internal/content"
	"github.com/atomicstack/tabstrip/internal/data/dispatcher"
	"github.com/atomicstack/tabstrip/internal/logging"
	"github.com/atomicstack/tabstrip/internal/logging/events"
	"github.com/atomicstack/tabstrip/internal/state"
)

// ErrMalformedPayload is returned for intents whose payload cannot be applied.
var ErrMalformedPayload = errors.New("malformed payload")

// Mutator is the set of store operations driven by intents. *state.Store
// satisfies it.
type Mutator interface {
	Activate(id int) error
	Open(kind content.Kind) (state.Tab, error)
	Close(id int) error
	Scroll(direction state.Direction, delta int)
}

// Commands binds the four tab intents to a store. It is the only component
// that holds the mutating side of the store.
type Commands struct {
	store  Mutator
	bus    dispatcher.Bus
	tokens []dispatcher.Token
}

// New subscribes one handler per intent kind on bus.
func New(store Mutator, bus dispatcher.Bus) *Commands {
	c := &Commands{store: store, bus: bus}
	handlers := []struct {
		kind    dispatcher.EventKind
		handler dispatcher.Handler
	}{
		{ActivateTabKind, c.activateTab},
		{OpenTabKind, c.openTab},
		{CloseTabKind, c.closeTab},
		{ScrollTabsKind, c.scrollTabs},
	}
	for _, h := range handlers {
		c.tokens = append(c.tokens, bus.Subscribe(h.kind, h.handler))
	}
	return c
}

// Close removes every subscription made by New.
func (c *Commands) Close() {
	for _, token := range c.tokens {
		c.bus.Unsubscribe(token)
	}
	c.tokens = nil
}

func (c *Commands) activateTab(payload any) error {
	var p ActivateTab
	switch v := payload.(type) {
	case ActivateTab:
		p = v
	case *ActivateTab:
		if v == nil {
			return reject(ActivateTabKind, payload)
		}
		p = *v
	default:
		return reject(ActivateTabKind, payload)
	}
	if p.Key <= 0 {
		return rejectf(ActivateTabKind, "key must be positive, got %d", p.Key)
	}
	events.Command.Handle(string(ActivateTabKind), p)
	return failed(ActivateTabKind, c.store.Activate(p.Key))
}

func (c *Commands) openTab(payload any) error {
	var p OpenTab
	switch v := payload.(type) {
	case OpenTab:
		p = v
	case *OpenTab:
		if v == nil {
			return reject(OpenTabKind, payload)
		}
		p = *v
	default:
		return reject(OpenTabKind, payload)
	}
	events.Command.Handle(string(OpenTabKind), p)
	_, err := c.store.Open(p.ContentKind)
	return failed(OpenTabKind, err)
}

func (c *Commands) closeTab(payload any) error {
	var p CloseTab
	switch v := payload.(type) {
	case CloseTab:
		p = v
	case *CloseTab:
		if v == nil {
			return reject(CloseTabKind, payload)
		}
		p = *v
	default:
		return reject(CloseTabKind, payload)
	}
	if p.Key <= 0 {
		return rejectf(CloseTabKind, "key must be positive, got %d", p.Key)
	}
	events.Command.Handle(string(CloseTabKind), p)
	return failed(CloseTabKind, c.store.Close(p.Key))
}

func (c *Commands) scrollTabs(payload any) error {
	var p ScrollTabs
	switch v := payload.(type) {
	case ScrollTabs:
		p = v
	case *ScrollTabs:
		if v == nil {
			return reject(ScrollTabsKind, payload)
		}
		p = *v
	default:
		return reject(ScrollTabsKind, payload)
	}
	events.Command.Handle(string(ScrollTabsKind), p)
	c.store.Scroll(p.Direction, p.Offset)
	return nil
}

func reject(kind dispatcher.EventKind, payload any) error {
	return rejectf(kind, "unexpected payload %T", payload)
}

func rejectf(kind dispatcher.EventKind, format string, args ...any) error {
	err := fmt.Errorf("%w: %s", ErrMalformedPayload, fmt.Sprintf(format, args...))
	events.Command.Reject(string(kind), err)
	logging.Error(fmt.Errorf("%s: %w", kind, err))
	return err
}

func failed(kind dispatcher.EventKind, err error) error {
	if err == nil {
		return nil
	}
	events.Command.Reject(string(kind), err)
	return err
}
