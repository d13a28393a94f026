// Package logging provides the leveled diagnostic loggers used across splitboard.
//
// Diagnostics are for developers only. While the TUI owns the terminal they are
// written to a file, which the in-app diagnostics view tails.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Line prefixes. Readers of the log file match on these.
const (
	InfoPrefix  = "[INFO] "
	WarnPrefix  = "[WARN] "
	ErrorPrefix = "[ERROR] "
)

var (
	Info  *log.Logger
	Warn  *log.Logger
	Error *log.Logger

	mu sync.Mutex
)

func init() {
	setOutput(os.Stderr)
}

// Setup points all loggers at the file at path, creating parent directories.
// An empty path keeps stderr. The returned closer releases the file.
func Setup(path string) (io.Closer, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		setOutput(os.Stderr)
		return io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	setOutput(file)
	return file, nil
}

// Discard silences all loggers. Tests use it to keep output clean.
func Discard() {
	setOutput(io.Discard)
}

func setOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	colored := false
	if f, ok := w.(*os.File); ok {
		colored = isatty.IsTerminal(f.Fd())
	}
	flags := log.Ldate | log.Ltime | log.Lshortfile
	Info = log.New(w, prefix(color.FgGreen, InfoPrefix, colored), flags)
	Warn = log.New(w, prefix(color.FgYellow, WarnPrefix, colored), flags)
	Error = log.New(w, prefix(color.FgRed, ErrorPrefix, colored), flags)
}

func prefix(attr color.Attribute, text string, colored bool) string {
	c := color.New(attr)
	if colored {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(text)
}
