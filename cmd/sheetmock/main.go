package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/five82/splitboard/internal/logging"
	"github.com/five82/splitboard/internal/sheetmock"
)

func main() {
	os.Exit(run())
}

func run() int {
	addr := flag.String("addr", "127.0.0.1:8787", "listen address")
	dbPath := flag.String("db", "sheetmock.db", "SQLite database path")
	quiet := flag.Bool("quiet", false, "do not log each request")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, err := sheetmock.Open(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sheetmock: %v\n", err)
		return 1
	}
	defer store.Close()

	srv := &http.Server{
		Addr:              *addr,
		Handler:           sheetmock.New(store, !*quiet),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info.Printf("sheetmock listening on http://%s (db %s)", *addr, *dbPath)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(os.Stderr, "sheetmock: %v\n", err)
			return 1
		}
	case <-ctx.Done():
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.Warn.Printf("sheetmock: shutdown: %v", err)
		}
	}
	return 0
}
