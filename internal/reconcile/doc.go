// Package reconcile keeps the local view of the board in step with the sheet.
//
// # Overview
//
// A Reconciler owns the cached posts and comments (through a state.Store),
// the list filter and search term, the open detail view and its edit mode,
// the post draft, and a short-lived notice. Every user operation goes through
// it. Writes call the gateway, wait for the acknowledgement, then refresh.
//
// # Mutation Points
//
// Only two paths touch cached data:
//
//   - Refresh replaces posts and comments wholesale and drops all optimistic
//     comments.
//   - SubmitComment appends a local comment tagged with a LocalID before the
//     request is sent.
//
// Everything else (Posts, Detail, Comments, Stats) is a pure projection over
// the last snapshot.
//
// # Detail Lifecycle
//
//	Closed --OpenDetail--> Open(id, Viewing)
//	Open(Viewing) --VerifyAndEnterEditMode ok--> Open(Editing)
//	Open(Editing) --UpdatePost ok / CancelEdit--> Open(Viewing)
//	Open --CloseDetail / delete ok / complete ok / post gone on Refresh--> Closed
//
// Each transition bumps a generation counter. Actions capture it before the
// request and only touch the detail if it is unchanged afterwards, so a slow
// response never closes or edits a view the user has since left.
//
// # Concurrency
//
// The poller and UI commands may call in at the same time. State sits behind a
// mutex that is never held across gateway calls. Overlapping refreshes both
// complete and the last one wins. Subscribers are called after each change,
// outside the lock.
//
// # Errors
//
// Every failure is returned wrapped with the operation name and also stored
// as a Notice (see sheet.UserMessage). Validation failures never reach the
// network. Nothing is retried automatically.
package reconcile
