package command

import (
	"github.com/atomicstack/tabstrip/internal/content"
	"github.com/atomicstack/tabstrip/internal/data/dispatcher"
	"github.com/atomicstack/tabstrip/internal/state"
)

// Intent kinds published by the view layer.
const (
	ActivateTabKind dispatcher.EventKind = "activate_tab"
	OpenTabKind     dispatcher.EventKind = "open_tab"
	CloseTabKind    dispatcher.EventKind = "close_tab"
	ScrollTabsKind  dispatcher.EventKind = "scroll_tabs"
)

// ActivateTab asks for the tab with Key to become active.
type ActivateTab struct {
	Key int
}

// OpenTab asks for a new tab of ContentKind.
type OpenTab struct {
	ContentKind content.Kind
}

// CloseTab asks for the tab with Key to be closed.
type CloseTab struct {
	Key int
}

// ScrollTabs moves the strip offset by Offset in Direction.
type ScrollTabs struct {
	Direction state.Direction
	Offset    int
}
