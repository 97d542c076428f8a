// Package state holds the asset collection for a running session.
//
// # Overview
//
// Store is the single owner of the in-memory collection. The UI reads it
// through Snapshot and changes it through AddAsset, UpdateAsset and
// DeleteAsset. The background poller merges the remote store into it through
// Pull.
//
// # Mutations
//
// Every mutation is computed by Apply, a pure function that returns the next
// collection plus the effects to run:
//
//	Apply(c, Add(a))          → next, [persist, notify, remote upsert]
//	Apply(c, Update(id, p))   → next, [persist, notify, remote upsert]
//	Apply(c, Delete(id))      → next, [persist, notify, remote delete]
//
// A rejected mutation yields only an error notice and leaves the collection
// unchanged. Update and Delete of an id that is not present yield nothing.
//
// The store runs the persist effect before the mutating call returns, so the
// mirror always reflects the latest collection. Notices go to the configured
// sink without blocking. Remote writes are queued to a single worker and run
// in order, each under its own timeout; a failed remote write produces an
// error notice but never rolls back local state.
//
// # Phases
//
//	loading ──Load ok──→ ready
//	loading ──Load err─→ errored (fallback collection still usable)
//
// # Concurrency
//
// Snapshot takes a read lock and returns copies. Mutations and the
// merge step of Pull take the write lock; the network part of Pull runs
// without it.
package state
