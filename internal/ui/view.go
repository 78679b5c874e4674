package ui

import (
	"strings"

	"github.com/atomicstack/tabstrip/internal/content"
	"github.com/atomicstack/tabstrip/internal/logging/events"
	"github.com/atomicstack/tabstrip/internal/state"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
)

const (
	maxTabLabelWidth = 16
	iconMarker       = "◆"
	tabSeparator     = "│"
	moreLeftMarker   = "‹"
	moreRightMarker  = "›"
)

// View implements tea.Model.
func (m *Model) View() string {
	snap := m.snapshot
	strip, offset := m.renderStrip(snap)
	events.UI.Render(snap.ActiveTabID, offset, m.width)

	lines := []string{strip, ""}
	if m.picker != nil {
		lines = append(lines, m.picker.View())
	} else {
		lines = append(lines, m.renderPanes(snap)...)
	}
	if m.errMsg != "" {
		lines = append(lines, "", styles.Error.Render(m.errMsg))
	}
	if m.showFooter {
		lines = append(lines, "", styles.Footer.Render(m.footer()))
	}
	return strings.Join(lines, "\n")
}

// tabLabel is the plain text shown for a tab before styling.
func tabLabel(tab state.Tab) string {
	if tab.IsHome() || !tab.HasName {
		return tab.Title()
	}
	label := truncate.StringWithTail(tab.Name, maxTabLabelWidth, "…")
	if _, ok := tab.Icon(); ok {
		label = iconMarker + " " + label
	}
	return label
}

func (m *Model) renderTab(tab state.Tab, active bool) string {
	style := styles.Tab
	switch {
	case tab.IsHome() && active:
		style = styles.ActiveHomeTab
	case tab.IsHome():
		style = styles.HomeTab
	case active:
		style = styles.ActiveTab
	}
	return style.Render(tabLabel(tab))
}

// renderStrip draws the full strip and windows it by the scroll offset. The
// store offset is unbounded, so it is clamped here for display only.
func (m *Model) renderStrip(snap state.Snapshot) (string, int) {
	parts := make([]string, 0, len(snap.Tabs))
	for _, tab := range snap.Tabs {
		parts = append(parts, m.renderTab(tab, tab.ID == snap.ActiveTabID))
	}
	strip := strings.Join(parts, styles.TabSeparator.Render(tabSeparator))
	if m.width <= 0 {
		return strip, 0
	}
	total := ansi.StringWidth(strip)
	offset := clampOffset(snap.ScrollOffset, total, m.width)
	if total <= m.width {
		return strip, offset
	}
	visible := ansi.Cut(strip, offset, offset+m.width)
	if offset > 0 {
		visible = styles.ScrollMarker.Render(moreLeftMarker) + ansi.Cut(visible, 1, m.width)
	}
	if offset+m.width < total {
		visible = ansi.Cut(visible, 0, m.width-1) + styles.ScrollMarker.Render(moreRightMarker)
	}
	return visible, offset
}

func clampOffset(offset, total, width int) int {
	limit := total - width
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		return 0
	}
	if offset > limit {
		return limit
	}
	return offset
}

// renderPanes shows the pane of the active tab's kind. There is one pane per
// known kind, not one per tab.
func (m *Model) renderPanes(snap state.Snapshot) []string {
	active, ok := snap.ActiveTab()
	if !ok {
		return []string{styles.PaneBody.Render("(no active tab)")}
	}
	for _, kind := range snap.ContentKinds {
		if kind != active.Kind {
			continue
		}
		title, err := content.Title(kind)
		if err != nil {
			break
		}
		body, err := content.Descriptor(kind)
		if err != nil {
			break
		}
		if kind == content.Home {
			return m.renderLauncher(snap.ContentKinds)
		}
		return []string{styles.PaneTitle.Render(title), styles.PaneBody.Render(body)}
	}
	return []string{styles.PaneBody.Render("(no content)")}
}

// renderLauncher is the home pane: one entry per openable kind with the key
// that opens it, then the picker.
func (m *Model) renderLauncher(kinds []content.Kind) []string {
	lines := []string{styles.PaneTitle.Render("Home")}
	for _, kind := range openableKinds(kinds) {
		title, err := content.Title(kind)
		if err != nil {
			continue
		}
		hint := " "
		if b, ok := m.keys.OpenKind(kind); ok {
			hint = b.Help().Key
		}
		lines = append(lines, styles.PaneBody.Render(launcherEntry(hint, "Open "+title)))
	}
	lines = append(lines, styles.PaneBody.Render(launcherEntry(m.keys.Picker.Help().Key, "Pick content…")))
	return lines
}

func launcherEntry(hint, label string) string {
	return "  " + hint + "  " + label
}

func (m *Model) footer() string {
	bindings := m.keys.ShortHelp()
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		hints = append(hints, helpText(b))
	}
	return strings.Join(hints, "  ")
}

func helpText(b key.Binding) string {
	h := b.Help()
	return h.Key + " " + h.Desc
}
