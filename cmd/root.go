// Package cmd implements heft's cobra command tree: scan, clean, report,
// and diff. Each subcommand owns its own flag set and validates
// conflicting combinations in PreRunE, before any scan or deletion work
// happens, mirroring the teacher's PreRun-time validation pattern.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/heftdev/heft/internal/config"
)

// version is set via ldflags at build time:
//
//	go build -ldflags "-X github.com/heftdev/heft/cmd.version=0.1.0"
var version = "dev"

var (
	flagVerbose    bool
	flagConfigPath string
)

// cfg is built in rootCmd's PersistentPreRunE and shared by every
// subcommand; logger is constructed alongside it from --verbose.
var (
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:     "heft",
	Short:   "audit and reclaim disk space consumed by developer tooling",
	Version: version,
	Long: `heft enumerates reclaimable developer bloat — build artifacts,
package-manager caches, container storage, IDE data — reports what it
finds, safely deletes what you approve, and persists each scan as a
snapshot so later scans can be diffed.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c := config.Default()
		if err := c.LoadFile(flagConfigPath); err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		c.Verbose = c.Verbose || flagVerbose
		cfg = c

		level := slog.LevelInfo
		if cfg.Verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug diagnostics on stderr")
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "path to config.toml (defaults to the platform config directory)")
}

// Execute runs the command tree, exiting with the code matching §6's exit
// code table: 0 success, 1 user/config error, 2 runtime error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCodeFor(err))
	}
}

func exitCodeFor(err error) int {
	if ce, ok := err.(*cliError); ok {
		return ce.code
	}
	return 2
}

// cliError tags an error with the exit code it should produce, so
// configuration errors (exit 1) and runtime errors (exit 2) are
// distinguishable without string-matching error text.
type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }

func userError(format string, args ...any) error {
	return &cliError{code: 1, err: fmt.Errorf(format, args...)}
}

func runtimeError(format string, args ...any) error {
	return &cliError{code: 2, err: fmt.Errorf(format, args...)}
}
