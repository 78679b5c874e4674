package ui

import (
	"github.com/atomicstack/tabstrip/internal/content"
	"github.com/atomicstack/tabstrip/internal/logging/events"
	"github.com/atomicstack/tabstrip/internal/state"
	"github.com/atomicstack/tabstrip/internal/ui/picker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg := msg.(tea.KeyMsg)
	events.UI.Key(keyMsg.String())
	if m.picker != nil {
		return m.handlePickerKey(keyMsg)
	}
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return tea.Quit
	case key.Matches(keyMsg, m.keys.Prev):
		m.activateRelative(-1)
	case key.Matches(keyMsg, m.keys.Next):
		m.activateRelative(1)
	case key.Matches(keyMsg, m.keys.OpenA):
		m.openKind(content.TypeA)
	case key.Matches(keyMsg, m.keys.OpenB):
		m.openKind(content.TypeB)
	case key.Matches(keyMsg, m.keys.OpenC):
		m.openKind(content.TypeC)
	case key.Matches(keyMsg, m.keys.Picker):
		m.picker = picker.New(openableKinds(m.snapshot.ContentKinds))
	case key.Matches(keyMsg, m.keys.Close):
		m.closeActive()
	case key.Matches(keyMsg, m.keys.ScrollLeft):
		m.scroll(state.DirectionLeft)
	case key.Matches(keyMsg, m.keys.ScrollRight):
		m.scroll(state.DirectionRight)
	}
	return nil
}

func (m *Model) handlePickerKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}
	res, cmd := m.picker.Update(msg)
	if !res.Done {
		return cmd
	}
	m.picker = nil
	if res.Chosen {
		m.openKind(res.Kind)
	}
	return cmd
}
