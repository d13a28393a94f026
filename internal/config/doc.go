// Package config loads the splitboard configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/splitboard/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//  5. SPLITBOARD_ENDPOINT, when set, overrides the endpoint
//
// # Default Values
//
//   - Config file: ~/.config/splitboard/config.toml
//   - Endpoint: http://127.0.0.1:8787/ (the local sheetmock server)
//   - Poll interval: 30 seconds (never below 5 seconds)
//   - Log file: ~/.local/state/splitboard/splitboard.log
//
// # TOML Format
//
//	endpoint = "https://script.google.com/macros/s/<deployment>/exec"
//	poll_seconds = 30
//	log_file = "~/.local/state/splitboard/splitboard.log"
//
// All fields are optional. Tilde expansion is performed on log_file.
//
// # Error Handling
//
// Load returns errors for path expansion failures, unreadable files and TOML
// parse errors. A missing file is not an error.
package config
