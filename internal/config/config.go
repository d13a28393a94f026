package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures where the board lives and how often to poll it.
type Config struct {
	Endpoint     string
	PollInterval time.Duration
	LogFile      string
}

const (
	defaultConfigPath   = "~/.config/splitboard/config.toml"
	defaultLogFile      = "~/.local/state/splitboard/splitboard.log"
	defaultEndpoint     = "http://127.0.0.1:8787/"
	defaultPollInterval = 30 * time.Second

	// MinPollInterval is the shortest refresh interval accepted from any source.
	MinPollInterval = 5 * time.Second

	// EndpointEnv overrides the configured endpoint when set.
	EndpointEnv = "SPLITBOARD_ENDPOINT"
)

// Load locates and parses the splitboard config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Endpoint:     defaultEndpoint,
		PollInterval: defaultPollInterval,
		LogFile:      mustExpand(defaultLogFile),
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Endpoint    string `toml:"endpoint"`
		PollSeconds int    `toml:"poll_seconds"`
		LogFile     string `toml:"log_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if endpoint := strings.TrimSpace(raw.Endpoint); endpoint != "" {
		cfg.Endpoint = endpoint
	}
	if raw.PollSeconds > 0 {
		cfg.PollInterval = max(time.Duration(raw.PollSeconds)*time.Second, MinPollInterval)
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	applyEnv(&cfg)

	return cfg, nil
}

// DefaultPollInterval is the board refresh cadence when nothing overrides it.
func DefaultPollInterval() time.Duration {
	return defaultPollInterval
}

func applyEnv(cfg *Config) {
	if endpoint := strings.TrimSpace(os.Getenv(EndpointEnv)); endpoint != "" {
		cfg.Endpoint = endpoint
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
