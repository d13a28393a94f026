// Package ui is the interactive terminal client for the board, built on
// Bubble Tea.
//
// # Views
//
//   - Board: post list with category filter, live search and a preview pane
//   - Detail: one post with its comment thread, opened with enter
//   - Stats: totals, completion rate and per-category counts
//   - Diagnostics: tail of the log file written by the logging package
//
// Forms (new/edit post), the password prompt and the comment form are
// modal and take the keyboard while open.
//
// # Data Flow
//
// The Model never holds board data of its own. Every change notification
// from reconcile.Reconciler, and every UI tick, calls sync which re-reads
// posts, the open detail, stats and the current notice.
//
// Reconciler calls that touch the network run as tea.Cmds and report back
// with actionDoneMsg. The reconciler notifies synchronously from inside
// Update as well as from the poller goroutine, so the subscription only
// pokes a one-slot channel and waitForChange turns that into a message.
// Sending to the program from the callback would block Update on itself.
//
// # Preferences
//
// The chosen theme and whether the first-visit guide was dismissed are
// written back to the prefs file.
package ui
