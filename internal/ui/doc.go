// Package ui is the Bubble Tea view layer of the tab strip.
//
// The model never mutates tab state itself. Key presses are translated into
// intents (activate, open, close, scroll) and published on the dispatcher;
// the command layer applies them to the store, and the store observer
// registered in NewModel replaces the model's snapshot before Update returns.
// View renders only from that snapshot:
//   - the strip, windowed by the scroll offset clamped to the strip width,
//   - the pane of the active tab's content kind,
//   - the picker while it is open, the last rejected intent, and an optional
//     footer with key hints.
package ui
