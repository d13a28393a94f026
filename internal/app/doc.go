// Package app is the composition root for splitboard.
//
// # Overview
//
// Run wires configuration, diagnostics, the sheet client, the reconciler,
// the poller and the UI together. It holds no business logic of its own.
//
// # Startup Order
//
//	Run()
//	  ├─> config.Load()        endpoint, poll interval, log file
//	  ├─> sheet.NewClient()    HTTP gateway
//	  ├─> reconcile.New()      cache and view state
//	  ├─> logging.Setup()      diagnostics go to a file while the TUI runs
//	  ├─> prefs.Load()         theme and first-visit guide flag
//	  ├─> Refresh()            initial load
//	  ├─> StartPoller()        refresh every interval (30 s default)
//	  └─> ui.Run()             blocks until quit
//
// With Options.ListOnly the TUI is skipped: the board is fetched once,
// filtered, and printed as a table by WriteList.
//
// # Polling
//
// The poller refreshes at a fixed cadence with no backoff. Failures are
// logged and the reconciler keeps its last good snapshot. Poller refreshes
// and the refresh that follows every write are not serialised; the last one
// to finish wins.
//
// # Errors
//
// Only startup failures (bad config, bad endpoint URL, unwritable log file)
// are returned from Run. In list mode a failed fetch is also returned, since
// there is nothing useful to print.
package app
