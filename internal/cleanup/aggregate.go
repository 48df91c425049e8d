package cleanup

import (
	"context"
	"fmt"
	"time"

	"github.com/heftdev/heft/internal/bloat"
	"github.com/heftdev/heft/internal/subproc"
)

// pruneCommands maps each DockerAggregateKind to the external prune
// invocation that reclaims it. There is no path to recursively remove for
// an aggregate object, so deletion is delegated entirely (§4.7 "Aggregate
// deletion").
var pruneCommands = map[bloat.DockerAggregateKind][]string{
	bloat.DockerImages:     {"image", "prune", "-a", "-f"},
	bloat.DockerContainers: {"container", "prune", "-f"},
	bloat.DockerVolumes:    {"volume", "prune", "-f"},
	bloat.DockerBuildCache: {"builder", "prune", "-a", "-f"},
}

// pruneDockerAggregate dispatches entry to the matching `docker ... prune`
// command. args never include an object ID in this path; when a future
// caller adds per-ID deletion, it must insert the "--" separator before
// any ID to stop a crafted ID from being parsed as a flag (§4.7).
func pruneDockerAggregate(ctx context.Context, entry bloat.BloatEntry, timeoutSeconds int64) error {
	args, ok := pruneCommands[entry.DockerKind]
	if !ok {
		return fmt.Errorf("cleanup: no prune command for docker aggregate kind %q", entry.DockerKind)
	}

	timeout := time.Duration(timeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	_, err := subproc.Run(ctx, timeout, "docker", args...)
	return err
}
