// Package state holds the last good copy of board data fetched from the sheet.
//
// # Overview
//
// The Store is the in-memory cache behind the reconciler. It is a read-through
// mirror of the sheet: every successful fetch replaces its posts and comments
// wholesale, and nothing else writes to it. There is no incremental merge.
//
// # Update Semantics
//
//	// Success case: replace everything
//	store.Update(listing, nil)
//	→ snapshot.Posts = listing.Posts
//	→ snapshot.Comments = listing.Comments
//	→ snapshot.Loaded = true
//	→ snapshot.LastError = nil
//	→ snapshot.ConsecutiveFailures = 0
//
//	// Error case: keep old data, record error
//	store.Update(sheet.Listing{}, err)
//	→ snapshot.Posts = <unchanged>
//	→ snapshot.LastError = err
//	→ snapshot.ConsecutiveFailures++
//
// The list therefore stays on its last good state when the network drops, and
// IsOffline reports true after two failed fetches in a row.
//
// # Concurrency Model
//
// Store uses a sync.RWMutex. The poller goroutine and UI command goroutines may
// both call Update; overlapping refreshes are not serialised beyond the lock,
// so whichever finishes last wins. The lock is never held during network I/O.
//
// Snapshot returns copies of the slices and the error so callers can hold on
// to a snapshot without racing later updates.
//
// # Testing Considerations
//
// The zero value is ready to use:
//
//	store := &state.Store{}
package state
