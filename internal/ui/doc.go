// Package ui implements the Bubble Tea terminal interface: a tab bar, a
// split-pane workspace rendered from the layout engine, and overlays for
// picking sessions and interacting with local shells. The AppModel owns
// the split.Manager and session.Registry and translates key presses into
// layout operations.
package ui
