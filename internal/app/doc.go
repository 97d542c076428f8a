// Package app is the composition root for the polar console.
//
// # Overview
//
// Open wires the components every entry point needs:
//
//	config.Load()          Read ~/.config/polar/config.toml
//	logging.New()          JSON logger on the configured log file
//	mirror.Open()          File, SQLite or in-memory mirror backend
//	remote.NewClient()     Optional upstream store (remote.url set)
//	assetsync.New()        Initial resolution and write-through
//	state.New()            Session store, notices to a queue and the log
//
// Run then loads the store, optionally pulls once, starts the poller and
// hands control to the terminal UI until the user quits. The cobra
// subcommands use Open directly for their one-shot operations.
//
// # Background Poller
//
// StartPoller merges the remote store into the session at a fixed cadence.
// Each pull runs under its own timeout. After a failure the next attempt waits
// twice as long as the previous one, capped at 30 seconds (intervals already
// above the cap are left alone), and the normal cadence resumes after the
// first success. The poller only runs when a remote store is configured and
// the interval is positive.
//
// # Shutdown
//
// Cancelling the context or quitting the UI stops the poller and waits for it.
// Runtime.Close then drains queued remote writes, closes the mirror backend
// and flushes the logger.
package app
