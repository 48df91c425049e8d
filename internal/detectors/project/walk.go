package project

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/heftdev/heft/internal/bloat"
	"github.com/heftdev/heft/internal/numeric"
)

// ageSampleBudget bounds how many source-file siblings siblingAge inspects
// when computing last_modified_age_days, so one enormous sibling directory
// never dominates a scan (§4.3 step 5).
const ageSampleBudget = 200

// walkRoot performs the pruning walk from root, returning one BloatEntry
// per accepted artifact directory and a list of non-fatal diagnostics.
// logger may be nil.
func walkRoot(root, home string, logger *slog.Logger) ([]bloat.BloatEntry, []string) {
	var entries []bloat.BloatEntry
	var diagnostics []string

	warn := func(format string, args ...any) {
		diagnostics = append(diagnostics, fmt.Sprintf(format, args...))
	}
	debug := func(path string, err error) {
		if logger != nil {
			logger.Debug("project: metadata error", "path", path, "error", err)
		}
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			debug(path, err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path == root {
			return nil
		}

		name := d.Name()
		if !artifactNames[name] {
			return nil
		}

		parent := filepath.Dir(path)
		if !verify(name, path, parent, home) {
			return nil
		}

		size, saturated := dirSize(path, debug)
		if saturated {
			warn("size of %s saturated at the uint64 maximum", path)
		}

		ageDays, ageKnown := siblingAge(parent, path)

		entries = append(entries, bloat.BloatEntry{
			Category:            bloat.ProjectArtifact,
			Name:                path,
			Path:                path,
			Kind:                bloat.FilesystemPath,
			SizeBytes:           size,
			ReclaimableBytes:    size,
			LastModifiedAgeDays: ageDays,
			AgeKnown:            ageKnown,
			DetectorOrigin:      Name,
		})
		return fs.SkipDir
	})
	if err != nil {
		debug(root, err)
	}

	return entries, diagnostics
}

// dirSize sums the size of regular files under root without following
// symlinks, using checked addition that saturates at the uint64 maximum.
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

// siblingAge returns the maximum mtime, expressed as age in days, among
// regular-file siblings of artifactDir within parent — bounded to
// ageSampleBudget entries so a parent with thousands of source files
// doesn't dominate scan time. Returns ageKnown=false if no eligible
// sibling was found.
func siblingAge(parent, artifactDir string) (ageDays int64, ageKnown bool) {
	entries, err := os.ReadDir(parent)
	if err != nil {
		return 0, false
	}

	var newest time.Time
	sampled := 0
	for _, e := range entries {
		if sampled >= ageSampleBudget {
			break
		}
		full := filepath.Join(parent, e.Name())
		if full == artifactDir {
			continue
		}
		if e.IsDir() {
			continue
		}
		sampled++
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(newest) {
			newest = info.ModTime()
		}
	}

	if newest.IsZero() {
		return 0, false
	}
	days := int64(time.Since(newest).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return days, true
}
