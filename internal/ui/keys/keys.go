// Package keys defines the keyboard shortcuts of the tab strip.
package keys

import (
	"github.com/atomicstack/tabstrip/internal/content"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds every binding the strip reacts to.
type KeyMap struct {
	Prev        key.Binding
	Next        key.Binding
	OpenA       key.Binding
	OpenB       key.Binding
	OpenC       key.Binding
	Picker      key.Binding
	Close       key.Binding
	ScrollLeft  key.Binding
	ScrollRight key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default keyboard shortcuts.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev tab"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next tab"),
		),
		OpenA: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "open type a"),
		),
		OpenB: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "open type b"),
		),
		OpenC: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "open type c"),
		),
		Picker: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open…"),
		),
		Close: key.NewBinding(
			key.WithKeys("x", "ctrl+w"),
			key.WithHelp("x", "close tab"),
		),
		ScrollLeft: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "scroll left"),
		),
		ScrollRight: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "scroll right"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// OpenKind returns the direct open binding for kind, if it has one.
func (k KeyMap) OpenKind(kind content.Kind) (key.Binding, bool) {
	switch kind {
	case content.TypeA:
		return k.OpenA, true
	case content.TypeB:
		return k.OpenB, true
	case content.TypeC:
		return k.OpenC, true
	}
	return key.Binding{}, false
}

// ShortHelp lists the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Picker, k.Close, k.ScrollLeft, k.ScrollRight, k.Quit}
}
