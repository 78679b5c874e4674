package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Tab            *lipgloss.Style
	ActiveTab      *lipgloss.Style
	HomeTab        *lipgloss.Style
	ActiveHomeTab  *lipgloss.Style
	TabSeparator   *lipgloss.Style
	ScrollMarker   *lipgloss.Style
	PaneTitle      *lipgloss.Style
	PaneBody       *lipgloss.Style
	Error          *lipgloss.Style
	Footer         *lipgloss.Style
	PickerPrompt   *lipgloss.Style
	PickerItem     *lipgloss.Style
	PickerSelected *lipgloss.Style
	PickerEmpty    *lipgloss.Style
}

var defaultStyles = Styles{
	Tab: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")).Padding(0, 1),
	),
	ActiveTab: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true).Padding(0, 1),
	),
	HomeTab: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true).Padding(0, 1),
	),
	ActiveHomeTab: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Background(lipgloss.Color("238")).Bold(true).Padding(0, 1),
	),
	TabSeparator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	ScrollMarker: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	),
	PaneTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	PaneBody: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	PickerPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	PickerItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	PickerSelected: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	PickerEmpty: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
