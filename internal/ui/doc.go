// Package ui provides the terminal interface for the cold-storage asset
// registry.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model holds everything the screen needs;
// it never touches the mirror or the remote store directly. Every change goes
// through *state.Store, and the model re-reads a Snapshot on each tick.
//
// # Package Structure
//
//   - model.go: Model, Options, Update/View and the Run entry point
//   - table.go: asset table and column layout
//   - detail.go: detail pane for the selected asset
//   - form.go: add/edit form and the delete confirmation modal
//   - header.go: header bar with counts and remote indicator, plus footer
//   - logs.go: log tail viewer backed by internal/logtail
//   - toasts.go: transient notices fed from notify.Queue
//   - theme.go, keys.go, layout.go, strings.go: styling and helpers
//
// # Views
//
//   - Assets: the collection, optionally filtered by status
//   - Logs: the tail of the structured log file, filtered by level
//
// Help, the form and the delete confirmation are modal overlays on top of
// either view.
//
// # Notices
//
// Notices arrive on a channel and render as toasts above the footer. A toast
// expires after ToastTTL; at most MaxToasts are kept.
//
// # Preferences
//
// The theme and the status filter are saved to the prefs file whenever they
// change.
package ui
