// Package config assembles the configuration record that drives a single
// heft command: defaults, then config.toml, then CLI flags, with CLI flags
// always winning (§6 "Config file").
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/heftdev/heft/internal/platform"
)

// Config is the fully-resolved configuration for one command invocation.
// It carries the platform resolver as a struct field rather than a global,
// so detectors and the cleanup engine can be driven by a fake OS in tests
// (§9 "Config isolation").
type Config struct {
	// Platform resolves home/temp/cache/data paths. Never nil in a Config
	// built by Default.
	Platform *platform.Resolver

	// Roots are the scan roots for the project-artifact detector. Defaults
	// to [Platform.Home()].
	Roots []string

	// Verbose enables slog.Debug-level diagnostic output.
	Verbose bool

	// Progressive selects streaming per-detector completion output while
	// the scan runs; the final report is still printed at the end (§4.6).
	Progressive bool

	// SubprocessTimeout bounds every external command the detectors and
	// cleanup engine spawn (Homebrew, docker). Configurable, default 30s
	// (§4.4, §5).
	SubprocessTimeout time.Duration

	// EnabledDetectors and DisabledDetectors implement the positive/negative
	// detector enablement list from §4.6; DisabledDetectors wins on
	// conflict.
	EnabledDetectors  []string
	DisabledDetectors []string

	// NoDocker is a convenience flag equivalent to adding "container" to
	// DisabledDetectors (mirrors the teacher's --no-docker framing and the
	// CLI table in §6).
	NoDocker bool

	// JSON selects JSON output for `scan`.
	JSON bool
}

// fileConfig mirrors the subset of Config that config.toml may set. Only
// these fields have file-level defaults; everything else is CLI-only.
type fileConfig struct {
	Roots             []string `toml:"roots"`
	Verbose           bool     `toml:"verbose"`
	Progressive       bool     `toml:"progressive"`
	SubprocessTimeout int      `toml:"subprocess_timeout_seconds"`
	DisableDetectors  []string `toml:"disable"`
}

// Default returns a Config with built-in defaults and the real platform
// resolver, before any config.toml or CLI flags are applied.
func Default() *Config {
	p := platform.New()
	return &Config{
		Platform:          p,
		Roots:             []string{p.Home()},
		SubprocessTimeout: 30 * time.Second,
	}
}

// LoadFile merges config.toml (if present) into cfg. A missing file is not
// an error — it simply means no file-level overrides apply. A malformed
// file is a Storage-adjacent configuration error and is returned to the
// caller so it surfaces before any detector runs (§7 "Configuration
// error").
func (c *Config) LoadFile(path string) error {
	if path == "" {
		path = c.Platform.ConfigPath()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var fc fileConfig
	if _, err := toml.Decode(string(data), &fc); err != nil {
		return err
	}

	if len(fc.Roots) > 0 {
		c.Roots = fc.Roots
	}
	if fc.Verbose {
		c.Verbose = true
	}
	if fc.Progressive {
		c.Progressive = true
	}
	if fc.SubprocessTimeout > 0 {
		c.SubprocessTimeout = time.Duration(fc.SubprocessTimeout) * time.Second
	}
	if len(fc.DisableDetectors) > 0 {
		c.DisabledDetectors = append(c.DisabledDetectors, fc.DisableDetectors...)
	}
	return nil
}

// IsDisabled reports whether the named detector is excluded from the run:
// present in DisabledDetectors, named by --no-docker, or (when
// EnabledDetectors is non-empty) simply not on the positive list. The
// negative list always wins over the positive list (§4.6).
func (c *Config) IsDisabled(name string) bool {
	if c.NoDocker && name == "container" {
		return true
	}
	for _, d := range c.DisabledDetectors {
		if d == name {
			return true
		}
	}
	if len(c.EnabledDetectors) == 0 {
		return false
	}
	for _, e := range c.EnabledDetectors {
		if e == name {
			return false
		}
	}
	return true
}
