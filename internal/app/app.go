package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/five82/splitboard/internal/config"
	"github.com/five82/splitboard/internal/logging"
	"github.com/five82/splitboard/internal/prefs"
	"github.com/five82/splitboard/internal/reconcile"
	"github.com/five82/splitboard/internal/sheet"
	"github.com/five82/splitboard/internal/ui"
)

// Options configure a splitboard run.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/splitboard/prefs.toml
	PollEvery  int    // seconds; zero uses the config value

	// ListOnly prints the board once and exits instead of starting the TUI.
	ListOnly bool
	Category string
	Search   string
	Out      io.Writer // ListOnly output, defaults to stdout
}

// Run boots splitboard until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	client, err := sheet.NewClient(cfg.Endpoint)
	if err != nil {
		return fmt.Errorf("init sheet client: %w", err)
	}
	rec := reconcile.New(client, reconcile.Options{})

	if opts.ListOnly {
		return runList(ctx, rec, opts)
	}

	closer, err := logging.Setup(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer closer.Close()
	logging.Info.Printf("starting against %s", client.Endpoint())

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs := prefs.Load(prefsPath)

	interval := pollInterval(cfg, opts.PollEvery)

	// Populate the cache before the UI starts; a failure leaves an empty
	// board with a notice and the poller keeps trying.
	_ = rec.Refresh(ctx)
	StartPoller(ctx, rec, interval)

	return ui.Run(ui.Options{
		Context:    ctx,
		Reconciler: rec,
		Endpoint:   client.Endpoint(),
		LogFile:    cfg.LogFile,
		ThemeName:  userPrefs.Theme,
		GuideShown: userPrefs.GuideShown,
		PrefsPath:  prefsPath,
	})
}

func runList(ctx context.Context, rec *reconcile.Reconciler, opts Options) error {
	if err := rec.Refresh(ctx); err != nil {
		return fmt.Errorf("fetch board: %w", err)
	}
	rec.ApplyFilter(opts.Category)
	rec.ApplySearch(opts.Search)

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	return WriteList(out, rec.Posts())
}

// pollInterval picks the flag override when set, floored like the config value.
func pollInterval(cfg config.Config, seconds int) time.Duration {
	if seconds <= 0 {
		return cfg.PollInterval
	}
	return max(time.Duration(seconds)*time.Second, config.MinPollInterval)
}
