// Package project implements the project-artifact detector (C3): a pruning
// directory walk that identifies build-output directories by structural
// criteria — cohabitation with sibling manifests, ancestor constraints —
// rather than by name alone, and sums their sizes without descending into
// already-identified bloat.
package project

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/heftdev/heft/internal/bloat"
	"github.com/heftdev/heft/internal/config"
	"github.com/heftdev/heft/internal/detector"
)

// Name is the stable detector identifier used in timing maps and
// diagnostics.
const Name = "project"

// Detector walks each configured root looking for build-artifact
// directories.
type Detector struct {
	Logger *slog.Logger
}

var _ detector.Detector = (*Detector)(nil)

func (d *Detector) Name() string { return Name }

// Available reports whether at least one scan root is configured: the
// project-artifact walk needs no external tool or platform feature, only
// the configured roots.
func (d *Detector) Available(cfg *config.Config) bool {
	return len(cfg.Roots) > 0
}

// Scan walks every configured root concurrently (each root is
// independent, shared-nothing) and merges the results.
func (d *Detector) Scan(ctx context.Context, cfg *config.Config) detector.Result {
	home := cfg.Platform.Home()

	var (
		mu          sync.Mutex
		entries     []bloat.BloatEntry
		diagnostics []string
		wg          sync.WaitGroup
	)

	for _, root := range cfg.Roots {
		root := root
		wg.Add(1)
		go func() {
			defer wg.Done()
			rootEntries, rootDiag := walkRoot(root, home, d.Logger)
			mu.Lock()
			entries = append(entries, rootEntries...)
			diagnostics = append(diagnostics, rootDiag...)
			mu.Unlock()
		}()
	}
	wg.Wait()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	return detector.Result{Entries: entries, Diagnostics: diagnostics}
}
