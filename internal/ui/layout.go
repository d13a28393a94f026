package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 100

	// LayoutExtraWideWidth is the threshold for extra-wide layouts.
	LayoutExtraWideWidth = 160
)

// Display limits.
const (
	// DiagnosticsLineLimit is how many trailing log lines the diagnostics view reads.
	DiagnosticsLineLimit = 500

	// ModalWidth is the width of forms and prompts.
	ModalWidth = 64
)

// DefaultUIInterval is the default UI redraw interval.
const DefaultUIInterval = time.Second
