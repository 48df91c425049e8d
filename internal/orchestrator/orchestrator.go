// Package orchestrator runs the registered detectors (C6): selecting which
// are enabled, running them concurrently, capturing per-detector timing
// and memory, merging their entries into a stable order, and offering
// either a batch or a progressive (streaming) completion mode.
package orchestrator

import (
	"context"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/heftdev/heft/internal/bloat"
	"github.com/heftdev/heft/internal/config"
	"github.com/heftdev/heft/internal/detector"
)

// Progress is emitted on the progressive-mode event channel as each
// detector completes.
type Progress struct {
	Detector   string
	Entries    int
	SizeBytes  uint64
	ElapsedMs  int64
	Diagnostic bool
}

// Orchestrator holds the ordered detector registry. Registration order is
// part of the final entry-ordering contract (§5), so detectors is a slice,
// never a map.
type Orchestrator struct {
	detectors []detector.Detector
	logger    *slog.Logger
}

// outcome is one detector's completed run, before merging.
type outcome struct {
	index    int
	name     string
	result   detector.Result
	elapsed  int64
	rssDelta uint64
}

// New returns an Orchestrator over detectors in the given registration
// order.
func New(logger *slog.Logger, detectors ...detector.Detector) *Orchestrator {
	return &Orchestrator{detectors: detectors, logger: logger}
}

// Run executes every available, enabled detector exactly once. If progress
// is non-nil, a Progress value is sent on it as each detector completes
// (progressive mode); the channel is never closed by Run — the caller owns
// it and should read until Run returns. Entries in the returned
// bloat.ScanResult are sorted by (registration index, category, name),
// independent of completion order.
func (o *Orchestrator) Run(ctx context.Context, cfg *config.Config, progress chan<- Progress) bloat.ScanResult {
	selected := make([]detector.Detector, 0, len(o.detectors))
	for _, det := range o.detectors {
		if cfg.IsDisabled(det.Name()) {
			continue
		}
		if !det.Available(cfg) {
			continue
		}
		selected = append(selected, det)
	}

	outcomes := make([]outcome, len(selected))
	var wg sync.WaitGroup
	var peakMu sync.Mutex
	var peakRSS uint64

	selfPID := int32(os.Getpid())

	sampleRSS := func() uint64 {
		proc, err := process.NewProcess(selfPID)
		if err != nil {
			return 0
		}
		info, err := proc.MemoryInfo()
		if err != nil || info == nil {
			return 0
		}
		return info.RSS
	}

	for i, det := range selected {
		i, det := i, det
		wg.Add(1)
		go func() {
			defer wg.Done()

			before := sampleRSS()
			start := time.Now()
			res := det.Scan(ctx, cfg)
			elapsed := time.Since(start).Milliseconds()
			after := sampleRSS()

			delta := clampedDelta(before, after)

			peakMu.Lock()
			if after > peakRSS {
				peakRSS = after
			}
			peakMu.Unlock()

			if res.Partial() && o.logger != nil {
				for _, diag := range res.Diagnostics {
					o.logger.Debug("detector diagnostic", "detector", det.Name(), "message", diag)
				}
			}

			outcomes[i] = outcome{
				index:    i,
				name:     det.Name(),
				result:   res,
				elapsed:  elapsed,
				rssDelta: delta,
			}

			if progress != nil {
				select {
				case progress <- Progress{
					Detector:   det.Name(),
					Entries:    len(res.Entries),
					SizeBytes:  sumSizes(res.Entries),
					ElapsedMs:  elapsed,
					Diagnostic: res.Partial(),
				}:
				case <-ctx.Done():
				}
			}
		}()
	}
	wg.Wait()

	var allEntries []bloat.BloatEntry
	timings := make(map[string]int64, len(outcomes))
	perDetectorDelta := make(map[string]uint64, len(outcomes))
	var totalElapsed uint64
	for _, oc := range outcomes {
		allEntries = append(allEntries, oc.result.Entries...)
		timings[oc.name] = oc.elapsed
		perDetectorDelta[oc.name] = oc.rssDelta
		totalElapsed += uint64(oc.elapsed)
	}

	sort.SliceStable(allEntries, func(i, j int) bool {
		a, b := allEntries[i], allEntries[j]
		if a.DetectorOrigin != b.DetectorOrigin {
			return registrationIndex(o.detectors, a.DetectorOrigin) < registrationIndex(o.detectors, b.DetectorOrigin)
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return a.Name < b.Name
	})

	return bloat.ScanResult{
		Entries:         allEntries,
		DetectorTimings: timings,
		Memory: bloat.MemoryStats{
			PeakRSSBytes:          peakRSS,
			PerDetectorDeltaBytes: perDetectorDelta,
		},
		DurationMs: totalElapsed,
		ScannedAt:  time.Now().Unix(),
	}
}

func sumSizes(entries []bloat.BloatEntry) uint64 {
	var total uint64
	for _, e := range entries {
		total += e.SizeBytes
	}
	return total
}

// clampedDelta computes after-before clamped at zero, per §4.6.
func clampedDelta(before, after uint64) uint64 {
	if after <= before {
		return 0
	}
	return after - before
}

func registrationIndex(detectors []detector.Detector, name string) int {
	for i, d := range detectors {
		if d.Name() == name {
			return i
		}
	}
	return len(detectors)
}
