package state

import "github.com/atomicstack/tabstrip/internal/content"

// HomeTabID is the identity of the permanent home tab.
const HomeTabID = 1

// Tab is one open entry in the strip. Tabs are values; the store owns the
// sequence they live in.
type Tab struct {
	ID      int
	Name    string
	HasName bool
	Kind    content.Kind
}

func newHomeTab() Tab {
	return Tab{ID: HomeTabID, Kind: content.Home}
}

// Key returns the identity used by intents to address the tab.
func (t Tab) Key() int {
	return t.ID
}

// IsHome reports whether t is the home tab.
func (t Tab) IsHome() bool {
	return t.Kind == content.Home
}

// Closable reports whether the tab may be closed from the strip.
func (t Tab) Closable() bool {
	return !t.IsHome()
}

// Title returns the kind title. Unknown kinds yield an empty string.
func (t Tab) Title() string {
	title, err := content.Title(t.Kind)
	if err != nil {
		return ""
	}
	return title
}

// Icon returns the kind icon reference, if any.
func (t Tab) Icon() (string, bool) {
	icon, ok, err := content.Icon(t.Kind)
	if err != nil {
		return "", false
	}
	return icon, ok
}

func cloneTabs(tabs []Tab) []Tab {
	if len(tabs) == 0 {
		return nil
	}
	dup := make([]Tab, len(tabs))
	copy(dup, tabs)
	return dup
}

func indexOf(tabs []Tab, id int) int {
	for i, tab := range tabs {
		if tab.ID == id {
			return i
		}
	}
	return -1
}
