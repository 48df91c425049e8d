// Package packagecache implements the package-manager cache detector (C4):
// a static table of (tool, per-OS path) pairs probed by existence, plus a
// Homebrew probe that shells out to `brew --cache` under a configurable
// timeout.
package packagecache

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/heftdev/heft/internal/bloat"
	"github.com/heftdev/heft/internal/config"
	"github.com/heftdev/heft/internal/detector"
	"github.com/heftdev/heft/internal/numeric"
	"github.com/heftdev/heft/internal/platform"
	"github.com/heftdev/heft/internal/subproc"
)

// Name is the stable detector identifier.
const Name = "packagecache"

// Detector probes the static cache table and, on macOS, Homebrew.
type Detector struct {
	Logger *slog.Logger
}

var _ detector.Detector = (*Detector)(nil)

func (d *Detector) Name() string { return Name }

func (d *Detector) Available(cfg *config.Config) bool { return true }

func (d *Detector) Scan(ctx context.Context, cfg *config.Config) detector.Result {
	var entries []bloat.BloatEntry
	var diagnostics []string

	debug := func(path string, err error) {
		if d.Logger != nil {
			d.Logger.Debug("packagecache: metadata error", "path", path, "error", err)
		}
	}

	for _, c := range staticCaches {
		paths := c.path(cfg.Platform)
		var size uint64
		var saturated bool
		var found bool
		for _, p := range paths {
			if _, err := os.Lstat(p); err != nil {
				continue
			}
			found = true
			s, sat := dirSize(p, debug)
			size, saturated = numeric.AddSaturatingUint64(size, s)
			saturated = saturated || sat
		}
		if !found {
			continue
		}
		if saturated {
			diagnostics = append(diagnostics, "packagecache: "+c.tool+" size saturated at the uint64 maximum")
		}
		entries = append(entries, bloat.BloatEntry{
			Category:         bloat.PackageCache,
			Name:             c.tool,
			Path:             paths[0],
			Kind:             bloat.FilesystemPath,
			SizeBytes:        size,
			ReclaimableBytes: size,
			DetectorOrigin:   Name,
		})
	}

	if cfg.Platform.OS == platform.Darwin {
		if entry, diag, ok := d.scanHomebrew(ctx, cfg); ok {
			entries = append(entries, entry)
		} else if diag != "" {
			diagnostics = append(diagnostics, diag)
		}
	}

	return detector.Result{Entries: entries, Diagnostics: diagnostics}
}

// scanHomebrew shells out to `brew --cache` to find Homebrew's cache root,
// then sizes it. Homebrew not being installed is not an error — the
// detector simply has nothing to report for it.
func (d *Detector) scanHomebrew(ctx context.Context, cfg *config.Config) (entry bloat.BloatEntry, diagnostic string, ok bool) {
	if _, err := exec.LookPath("brew"); err != nil {
		return bloat.BloatEntry{}, "", false
	}

	out, err := subproc.Run(ctx, cfg.SubprocessTimeout, "brew", "--cache")
	if err != nil {
		return bloat.BloatEntry{}, "packagecache: brew --cache: " + err.Error(), false
	}

	cacheDir := strings.TrimSpace(string(out))
	if cacheDir == "" {
		return bloat.BloatEntry{}, "", false
	}
	if _, err := os.Lstat(cacheDir); err != nil {
		return bloat.BloatEntry{}, "", false
	}

	debug := func(path string, err error) {
		if d.Logger != nil {
			d.Logger.Debug("packagecache: metadata error", "path", path, "error", err)
		}
	}
	size, saturated := dirSize(cacheDir, debug)
	if saturated {
		diagnostic = "packagecache: homebrew size saturated at the uint64 maximum"
	}

	return bloat.BloatEntry{
		Category:         bloat.PackageCache,
		Name:             "homebrew",
		Path:             cacheDir,
		Kind:             bloat.FilesystemPath,
		SizeBytes:        size,
		ReclaimableBytes: size,
		DetectorOrigin:   Name,
	}, diagnostic, true
}
