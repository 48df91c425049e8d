// Package ide implements the supplemental IDE-data detector: spec.md names
// IdeData as a BloatEntry category without assigning it a component, so
// this detector covers it with the same static per-tool path pattern the
// package-cache detector uses, scoped to JetBrains and VS Code caches.
package ide

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/heftdev/heft/internal/bloat"
	"github.com/heftdev/heft/internal/config"
	"github.com/heftdev/heft/internal/detector"
	"github.com/heftdev/heft/internal/numeric"
	"github.com/heftdev/heft/internal/platform"
)

// Name is the stable detector identifier.
const Name = "ide"

// Detector probes JetBrains and VS Code cache directories.
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
			d.Logger.Debug("ide: metadata error", "path", path, "error", err)
		}
	}

	for name, path := range paths(cfg.Platform) {
		if _, err := os.Lstat(path); err != nil {
			continue
		}
		size, saturated := dirSize(path, debug)
		if saturated {
			diagnostics = append(diagnostics, "ide: "+name+" size saturated at the uint64 maximum")
		}
		entries = append(entries, bloat.BloatEntry{
			Category:         bloat.IdeData,
			Name:             name,
			Path:             path,
			Kind:             bloat.FilesystemPath,
			SizeBytes:        size,
			ReclaimableBytes: size,
			DetectorOrigin:   Name,
		})
	}

	return detector.Result{Entries: entries, Diagnostics: diagnostics}
}

// paths returns the closed set of (label, path) pairs this detector
// checks, resolved for r.OS.
func paths(r *platform.Resolver) map[string]string {
	switch r.OS {
	case platform.Darwin:
		return map[string]string{
			"jetbrains": filepath.Join(r.Home(), "Library", "Caches", "JetBrains"),
			"vscode":    filepath.Join(r.Home(), "Library", "Application Support", "Code", "Cache"),
		}
	case platform.Windows:
		return map[string]string{
			"jetbrains": filepath.Join(r.CacheDir(), "JetBrains"),
			"vscode":    filepath.Join(r.ConfigDir(), "Code", "Cache"),
		}
	default:
		return map[string]string{
			"jetbrains": filepath.Join(r.CacheDir(), "JetBrains"),
			"vscode":    filepath.Join(r.ConfigDir(), "Code", "Cache"),
		}
	}
}

func dirSize(root string, debug func(path string, err error)) (total uint64, saturated bool) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			debug(path, err)
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			debug(path, err)
			return nil
		}
		var sat bool
		total, sat = numeric.AddSaturatingUint64(total, uint64(info.Size()))
		saturated = saturated || sat
		return nil
	})
	return total, saturated
}
