package cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/heftdev/heft/internal/bloat"
	"github.com/heftdev/heft/internal/platform"
)

// Progress is invoked once per entry as Execute processes it, so the
// caller can drive a spinner or print per-item status. It may be nil.
type Progress func(entry bloat.BloatEntry, err error)

// Result accumulates the outcome of one Execute call.
type Result struct {
	Removed    []bloat.BloatEntry
	Failed     []bloat.BloatEntry
	BytesFreed uint64
	Errors     []error
}

// Execute deletes each entry in entries: FilesystemPath entries are
// removed recursively after re-validation; DockerAggregate entries are
// delegated to the external prune commands in aggregate.go. A failure on
// one entry does not abort the others (§4.7 "any failure aborts that
// entry... others continue").
func Execute(ctx context.Context, entries []bloat.BloatEntry, p *platform.Resolver, timeout int64, logger *slog.Logger, progress Progress) Result {
	var result Result

	for _, entry := range entries {
		var err error
		switch entry.Kind {
		case bloat.FilesystemPath:
			err = removeFilesystemPath(entry, p)
		case bloat.DockerAggregate:
			err = pruneDockerAggregate(ctx, entry, timeout)
		default:
			// VmDiskImage entries are report-only: the image is owned and
			// managed by Docker Desktop, not something heft recursively
			// removes.
			err = fmt.Errorf("cleanup: entries of this kind are not deletable by heft")
		}

		if err != nil {
			if logger != nil {
				logger.Debug("cleanup: entry failed", "name", entry.Name, "path", entry.Path, "error", err)
			}
			result.Failed = append(result.Failed, entry)
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", entry.Name, err))
		} else {
			result.Removed = append(result.Removed, entry)
			result.BytesFreed += entry.ReclaimableBytes
		}

		if progress != nil {
			progress(entry, err)
		}
	}

	return result
}

// removeFilesystemPath re-validates entry.Path immediately before
// deletion and removes it recursively.
func removeFilesystemPath(entry bloat.BloatEntry, p *platform.Resolver) error {
	if err := ValidatePath(entry.Path, p); err != nil {
		return err
	}
	return os.RemoveAll(entry.Path)
}
