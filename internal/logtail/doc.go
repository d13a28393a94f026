// Package logtail reads the tail of the splitboard diagnostics log.
//
// # Overview
//
// The diagnostics view shows the most recent lines written by the logging
// package. Read extracts the last N lines with a ring buffer, so memory use is
// O(N) regardless of file size, and returns them in chronological order.
//
// LineLevel classifies a line by the level prefix the logging package writes,
// which the UI uses to pick a colour.
//
// Example usage:
//
//	lines, err := logtail.Read(cfg.LogFile, 200)
//	if err != nil {
//		return err
//	}
//	for _, line := range lines {
//		if logtail.LineLevel(line) == logtail.LevelError {
//			// highlight
//		}
//	}
//
// A missing log file is not an error; Read returns nil.
package logtail
