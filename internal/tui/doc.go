// Package tui implements the portctl control panel.
//
// The panel is a single Bubble Tea model. The main screen shows a unit
// type selector, the selected unit type's button groups as a grid of
// bordered panels, a scrolling log pane and a status line. Dialogs for
// choosing a unit type, adding a group and adding a command are drawn as
// centered modals over the main screen.
//
// # Data Flow
//
// Buttons never block the UI. Shell commands and serial writes run on
// runner goroutines that emit log entries onto a logbus.Bus; the model
// drains the bus with a re-armed command (waitForLog) and appends the
// entries to the pane's logbus.Buffer. Session open and close run on the
// UI goroutine and write to the buffer directly.
//
// Layout edits go through config.Store, which persists the file and
// notifies subscribers. The model rebuilds the grid from the store's
// snapshot after every edit or reload, so the grid and the file never
// disagree about which buttons exist.
//
// # Key Bindings
//
//   - ←/↑/↓/→ or h/j/k/l move between buttons and groups
//   - enter or space activates the focused button
//   - u opens the unit type selector (type to filter)
//   - g adds a group, a adds a command to a group
//   - tab focuses the log pane for scrolling, y copies the log
//   - ctrl+s saves, r reloads the file from disk
//   - ? toggles full help, q quits
//
// Dialogs are synchronous: their Update returns a dialogOutcome so the
// parent model decides what a submit means.
package tui
