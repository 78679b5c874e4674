package ui

import (
	"reflect"

	"github.com/atomicstack/tabstrip/internal/command"
	"github.com/atomicstack/tabstrip/internal/content"
	"github.com/atomicstack/tabstrip/internal/data/dispatcher"
	"github.com/atomicstack/tabstrip/internal/logging/events"
	"github.com/atomicstack/tabstrip/internal/state"
	"github.com/atomicstack/tabstrip/internal/theme"
	"github.com/atomicstack/tabstrip/internal/ui/keys"
	"github.com/atomicstack/tabstrip/internal/ui/picker"
	tea "github.com/charmbracelet/bubbletea"
)

const defaultScrollStep = 8

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures the view model.
type Options struct {
	// Width pins the strip width; WindowSizeMsg no longer changes it.
	Width int
	// InitialWidth is used until the first WindowSizeMsg arrives.
	InitialWidth int
	ScrollStep   int
	ShowFooter   bool
}

// Model renders tab snapshots and turns key presses into intents.
type Model struct {
	view        state.View
	bus         dispatcher.Bus
	snapshot    state.Snapshot
	unsubscribe func()

	keys       keys.KeyMap
	picker     *picker.Model
	width      int
	height     int
	fixedWidth bool
	scrollStep int
	showFooter bool
	errMsg     string

	handlers map[reflect.Type]msgHandler
}

// NewModel wires the model to a read-only store view and the intent bus.
func NewModel(view state.View, bus dispatcher.Bus, opts Options) *Model {
	m := &Model{
		view:       view,
		bus:        bus,
		snapshot:   view.Snapshot(),
		keys:       keys.DefaultKeyMap(),
		scrollStep: opts.ScrollStep,
		showFooter: opts.ShowFooter,
	}
	if m.scrollStep <= 0 {
		m.scrollStep = defaultScrollStep
	}
	switch {
	case opts.Width > 0:
		m.width = opts.Width
		m.fixedWidth = true
	case opts.InitialWidth > 0:
		m.width = opts.InitialWidth
	}
	m.unsubscribe = view.Subscribe(func(snap state.Snapshot) {
		m.snapshot = snap
	})
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

// Snapshot returns the snapshot the model last rendered from.
func (m *Model) Snapshot() state.Snapshot {
	return m.snapshot
}

// Err returns the message of the last rejected intent.
func (m *Model) Err() string {
	return m.errMsg
}

// PickerOpen reports whether the content picker is showing.
func (m *Model) PickerOpen() bool {
	return m.picker != nil
}

// Close detaches the model from the store.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size := msg.(tea.WindowSizeMsg)
	if !m.fixedWidth {
		m.width = size.Width
	}
	m.height = size.Height
	return nil
}

// publish sends an intent and records any rejection for the footer.
func (m *Model) publish(kind dispatcher.EventKind, payload any) {
	if err := m.bus.Publish(kind, payload); err != nil {
		m.errMsg = err.Error()
		events.UI.Error(err)
		return
	}
	m.errMsg = ""
}

func (m *Model) activateRelative(delta int) {
	tabs := m.snapshot.Tabs
	if len(tabs) == 0 {
		return
	}
	idx := m.snapshot.ActiveIndex()
	if idx < 0 {
		idx = 0
	}
	target := idx + delta
	if target < 0 {
		target = 0
	}
	if target >= len(tabs) {
		target = len(tabs) - 1
	}
	if tabs[target].ID == m.snapshot.ActiveTabID {
		return
	}
	m.publish(command.ActivateTabKind, command.ActivateTab{Key: tabs[target].Key()})
}

func (m *Model) openKind(kind content.Kind) {
	m.publish(command.OpenTabKind, command.OpenTab{ContentKind: kind})
}

func (m *Model) closeActive() {
	tab, ok := m.snapshot.ActiveTab()
	if !ok || !tab.Closable() {
		return
	}
	m.publish(command.CloseTabKind, command.CloseTab{Key: tab.Key()})
}

func (m *Model) scroll(direction state.Direction) {
	m.publish(command.ScrollTabsKind, command.ScrollTabs{Direction: direction, Offset: m.scrollStep})
}

func openableKinds(kinds []content.Kind) []content.Kind {
	out := make([]content.Kind, 0, len(kinds))
	for _, kind := range kinds {
		if kind != content.Home {
			out = append(out, kind)
		}
	}
	return out
}
