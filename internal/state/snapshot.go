package state

import (
	"reflect"

	"github.com/atomicstack/tabstrip/internal/content"
)

// Snapshot is a point-in-time copy of store state handed to observers.
type Snapshot struct {
	ActiveTabID  int
	ContentKinds []content.Kind
	Tabs         []Tab
	ScrollOffset int
}

// ActiveTab returns the tab matching ActiveTabID.
func (s Snapshot) ActiveTab() (Tab, bool) {
	if idx := indexOf(s.Tabs, s.ActiveTabID); idx >= 0 {
		return s.Tabs[idx], true
	}
	return Tab{}, false
}

// ActiveIndex returns the position of the active tab, or -1 when dangling.
func (s Snapshot) ActiveIndex() int {
	return indexOf(s.Tabs, s.ActiveTabID)
}

// Equal reports deep structural equality.
func (s Snapshot) Equal(other Snapshot) bool {
	return reflect.DeepEqual(s, other)
}

func (s Snapshot) clone() Snapshot {
	return Snapshot{
		ActiveTabID:  s.ActiveTabID,
		ContentKinds: append([]content.Kind(nil), s.ContentKinds...),
		Tabs:         cloneTabs(s.Tabs),
		ScrollOffset: s.ScrollOffset,
	}
}
