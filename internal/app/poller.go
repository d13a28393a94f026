package app

import (
	"context"
	"time"

	"github.com/five82/splitboard/internal/config"
	"github.com/five82/splitboard/internal/logging"
)

// Refresher reloads the board. *reconcile.Reconciler satisfies it.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// StartPoller launches a background goroutine that refreshes at a fixed
// cadence until ctx is cancelled. The first refresh happens one interval
// after the call; callers do the initial load themselves. The returned
// channel is closed when the goroutine exits.
func StartPoller(ctx context.Context, r Refresher, interval time.Duration) <-chan struct{} {
	if interval <= 0 {
		interval = config.DefaultPollInterval()
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			if err := r.Refresh(ctx); err != nil && ctx.Err() == nil {
				// The reconciler keeps the last good snapshot; just keep ticking.
				logging.Warn.Printf("poll failed: %v", err)
			}
		}
	}()
	return done
}
