package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/five82/splitboard/internal/config"
	"github.com/five82/splitboard/internal/logging"
)

type countingRefresher struct {
	calls atomic.Int32
	err   error
}

func (c *countingRefresher) Refresh(context.Context) error {
	c.calls.Add(1)
	return c.err
}

func TestStartPoller_RefreshesUntilCancelled(t *testing.T) {
	logging.Discard()
	ctx, cancel := context.WithCancel(context.Background())
	r := &countingRefresher{err: errors.New("offline")}

	done := StartPoller(ctx, r, 5*time.Millisecond)

	deadline := time.After(2 * time.Second)
	for r.calls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("poller made %d refreshes, want at least 3", r.calls.Load())
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not stop after cancel")
	}
	stopped := r.calls.Load()
	time.Sleep(20 * time.Millisecond)
	if got := r.calls.Load(); got != stopped {
		t.Fatalf("refreshes continued after stop: %d -> %d", stopped, got)
	}
}

func TestStartPoller_WaitsOneIntervalBeforeFirstRefresh(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r := &countingRefresher{}

	StartPoller(ctx, r, time.Hour)
	time.Sleep(20 * time.Millisecond)
	if got := r.calls.Load(); got != 0 {
		t.Fatalf("refreshes = %d before the first tick, want 0", got)
	}
}

func TestPollInterval(t *testing.T) {
	cfg := config.Config{PollInterval: 30 * time.Second}
	cases := []struct {
		name    string
		seconds int
		want    time.Duration
	}{
		{"config value", 0, 30 * time.Second},
		{"flag override", 60, time.Minute},
		{"flag floored", 1, config.MinPollInterval},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := pollInterval(cfg, tc.seconds); got != tc.want {
				t.Fatalf("pollInterval(%d) = %v, want %v", tc.seconds, got, tc.want)
			}
		})
	}
}
