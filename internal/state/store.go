package state

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/atomicstack/tabstrip/internal/content"
	"github.com/atomicstack/tabstrip/internal/logging/events"
)

var (
	// ErrTabNotFound is returned by strict stores for ids not in the strip.
	ErrTabNotFound = errors.New("tab not found")
	// ErrHomeTab is returned when asked to close the home tab.
	ErrHomeTab = errors.New("home tab cannot be closed")
	// ErrHomeKind is returned when asked to open a second home tab.
	ErrHomeKind = errors.New("home kind cannot be opened")
)

// Policy controls how Activate and Close treat ids missing from the strip.
type Policy int

const (
	// PolicyStrict rejects unknown ids with ErrTabNotFound.
	PolicyStrict Policy = iota
	// PolicyLenient lets Activate set any id and makes Close of an unknown id a no-op.
	PolicyLenient
)

func (p Policy) String() string {
	if p == PolicyLenient {
		return "lenient"
	}
	return "strict"
}

// ParsePolicy resolves "strict" or "lenient".
func ParsePolicy(value string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "strict":
		return PolicyStrict, nil
	case "lenient":
		return PolicyLenient, nil
	default:
		return PolicyStrict, fmt.Errorf("unknown policy %q", value)
	}
}

// Direction is the scroll direction of a ScrollTabs intent.
type Direction string

const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// Observer receives the new snapshot after a state change.
type Observer func(Snapshot)

// View is the read-only face of the store handed to renderers.
type View interface {
	Snapshot() Snapshot
	Subscribe(Observer) (unsubscribe func())
}

type observerEntry struct {
	id int
	fn Observer
}

// Store owns the tab sequence, the active id and the scroll offset. Every
// mutator holds mu for its whole read-modify-write and notifies observers
// after releasing it. Deliveries are serialized by notifyMu and carry the
// sequence number of their commit; a snapshot older than one already
// delivered is dropped, so observers never go back in time. Observers may
// read Snapshot but must not mutate the store.
type Store struct {
	mu     sync.Mutex
	policy Policy

	tabs     []Tab
	activeID int
	offset   int
	lastID   int

	data         Snapshot
	seq          uint64
	observers    []observerEntry
	nextObserver int

	notifyMu  sync.Mutex
	delivered uint64
}

var _ View = (*Store)(nil)

// NewStore returns a store holding only the active home tab.
func NewStore(policy Policy) *Store {
	home := newHomeTab()
	s := &Store{
		policy:   policy,
		tabs:     []Tab{home},
		activeID: home.ID,
		lastID:   home.ID,
	}
	s.data = s.build()
	return s
}

// Policy reports the missing-id policy the store was built with.
func (s *Store) Policy() Policy {
	return s.policy
}

// Snapshot returns a copy of the latest state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.clone()
}

// Subscribe registers fn for change notifications. The returned func removes it.
func (s *Store) Subscribe(fn Observer) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	s.nextObserver++
	id := s.nextObserver
	s.observers = append(s.observers, observerEntry{id: id, fn: fn})
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, entry := range s.observers {
			if entry.id == id {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

// Activate makes id the active tab.
func (s *Store) Activate(id int) error {
	s.mu.Lock()
	if s.policy == PolicyStrict && indexOf(s.tabs, id) < 0 {
		s.mu.Unlock()
		events.Tab.Reject("activate", id, ErrTabNotFound)
		return fmt.Errorf("activate tab %d: %w", id, ErrTabNotFound)
	}
	s.activeID = id
	events.Tab.Activate(id)
	s.commit()
	return nil
}

// Open creates a tab of kind right of the home tab and activates it.
func (s *Store) Open(kind content.Kind) (Tab, error) {
	title, err := content.Title(kind)
	if err != nil {
		return Tab{}, fmt.Errorf("open tab: %w", err)
	}
	if kind == content.Home {
		return Tab{}, fmt.Errorf("open tab: %w", ErrHomeKind)
	}
	s.mu.Lock()
	s.lastID++
	tab := Tab{ID: s.lastID, Name: title, HasName: true, Kind: kind}
	tabs := make([]Tab, 0, len(s.tabs)+1)
	tabs = append(tabs, s.tabs[0], tab)
	tabs = append(tabs, s.tabs[1:]...)
	s.tabs = tabs
	s.activeID = tab.ID
	events.Tab.Open(tab.ID, kind.String())
	s.commit()
	return tab, nil
}

// Close removes id. The tab now at the removed position becomes active, or
// the last tab when the removed one was rightmost, or home when it is alone.
func (s *Store) Close(id int) error {
	s.mu.Lock()
	idx := indexOf(s.tabs, id)
	switch {
	case idx < 0:
		if s.policy == PolicyStrict {
			s.mu.Unlock()
			events.Tab.Reject("close", id, ErrTabNotFound)
			return fmt.Errorf("close tab %d: %w", id, ErrTabNotFound)
		}
		s.commit()
		return nil
	case idx == 0:
		s.mu.Unlock()
		events.Tab.Reject("close", id, ErrHomeTab)
		return fmt.Errorf("close tab %d: %w", id, ErrHomeTab)
	}
	tabs := make([]Tab, 0, len(s.tabs)-1)
	tabs = append(tabs, s.tabs[:idx]...)
	tabs = append(tabs, s.tabs[idx+1:]...)
	s.tabs = tabs
	switch {
	case len(s.tabs) == 1:
		s.activeID = s.tabs[0].ID
	case idx < len(s.tabs):
		s.activeID = s.tabs[idx].ID
	default:
		s.activeID = s.tabs[len(s.tabs)-1].ID
	}
	events.Tab.Close(id, s.activeID)
	s.commit()
	return nil
}

// Scroll moves the offset left (decreasing) or otherwise right by delta.
// The offset is not clamped.
func (s *Store) Scroll(direction Direction, delta int) {
	s.mu.Lock()
	if direction == DirectionLeft {
		s.offset -= delta
	} else {
		s.offset += delta
	}
	events.Tab.Scroll(string(direction), delta, s.offset)
	s.commit()
}

func (s *Store) build() Snapshot {
	return Snapshot{
		ActiveTabID:  s.activeID,
		ContentKinds: content.All(),
		Tabs:         cloneTabs(s.tabs),
		ScrollOffset: s.offset,
	}
}

// commit must be called with mu held; it releases mu before notifying.
func (s *Store) commit() {
	next := s.build()
	if next.Equal(s.data) {
		s.mu.Unlock()
		return
	}
	s.data = next
	s.seq++
	seq := s.seq
	observers := make([]observerEntry, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	if seq <= s.delivered {
		return
	}
	s.delivered = seq
	events.Tab.Notify(next.ActiveTabID, len(next.Tabs), len(observers))
	for _, entry := range observers {
		entry.fn(next.clone())
	}
}
