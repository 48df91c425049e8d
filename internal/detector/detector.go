// Package detector defines the contract every bloat detector implements.
// The orchestrator (internal/orchestrator) treats all detectors uniformly
// through this interface; it never knows about a detector's concrete type.
package detector

import (
	"context"

	"github.com/heftdev/heft/internal/bloat"
	"github.com/heftdev/heft/internal/config"
)

// Result is what Scan returns: either entries with no diagnostics (Ok), or
// entries (possibly zero) plus non-fatal diagnostic strings (PartialOk).
// A hard failure is always reported as PartialOk with zero entries — a
// detector never panics and never returns a bare error from Scan.
type Result struct {
	Entries     []bloat.BloatEntry
	Diagnostics []string
}

// Partial reports whether this result carries any diagnostics.
func (r Result) Partial() bool {
	return len(r.Diagnostics) > 0
}

// Detector is the capability every bloat detector implements. Detectors are
// pure with respect to the filesystem: they read, they never write or
// delete, and they never call into internal/cleanup.
type Detector interface {
	// Name is a stable identifier used in timing maps and diagnostics.
	Name() string
	// Available performs a cheap platform/config check. Returning false
	// removes the detector from the run without it being an error.
	Available(cfg *config.Config) bool
	// Scan performs the detector's work. ctx carries the per-run timeout
	// for any subprocess the detector spawns.
	Scan(ctx context.Context, cfg *config.Config) Result
}
