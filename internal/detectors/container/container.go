// Package container implements the container/Docker detector (C5): it
// shells out to `docker system df --format json` under a spawn+poll+
// timeout discipline to report reclaimable space for images, containers,
// volumes, and build cache, and looks for the Docker Desktop VM disk image
// on macOS/Windows.
package container

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/heftdev/heft/internal/bloat"
	"github.com/heftdev/heft/internal/config"
	"github.com/heftdev/heft/internal/detector"
	"github.com/heftdev/heft/internal/platform"
	"github.com/heftdev/heft/internal/subproc"
)

// Name is the stable detector identifier.
const Name = "container"

// Detector queries the Docker CLI for reclaimable space.
type Detector struct {
	Logger *slog.Logger
}

var _ detector.Detector = (*Detector)(nil)

func (d *Detector) Name() string { return Name }

// Available reports whether the docker binary is on PATH. Daemon-down is
// not distinguished here — it is distinguished inside Scan, where it
// yields an empty, non-error result rather than being filtered out before
// the run (so a timeout/diagnostic can still be recorded).
func (d *Detector) Available(cfg *config.Config) bool {
	_, err := exec.LookPath("docker")
	return err == nil
}

// dfRow is one row of `docker system df --format json`.
type dfRow struct {
	Type        string `json:"Type"`
	Size        string `json:"Size"`
	Reclaimable string `json:"Reclaimable"`
}

func (d *Detector) Scan(ctx context.Context, cfg *config.Config) detector.Result {
	var entries []bloat.BloatEntry
	var diagnostics []string

	out, err := subproc.Run(ctx, cfg.SubprocessTimeout, "docker", "system", "df", "--format", "{{json .}}")
	if err != nil {
		// Timeout or daemon-down: both yield an empty, non-error result with
		// a diagnostic, per §4.5.
		diagnostics = append(diagnostics, "container: docker system df: "+err.Error())
	} else {
		for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			var row dfRow
			if jsonErr := json.Unmarshal([]byte(line), &row); jsonErr != nil {
				diagnostics = append(diagnostics, "container: malformed docker system df row: "+jsonErr.Error())
				continue
			}
			kind, ok := parseAggregateKind(row.Type)
			if !ok {
				continue
			}
			size := parseDockerSize(row.Size)
			reclaimable := parseDockerSize(row.Reclaimable)
			if reclaimable > size {
				reclaimable = size
			}
			entries = append(entries, bloat.BloatEntry{
				Category:         bloat.ContainerData,
				Name:             kind.String(),
				Path:             bloat.NonePath,
				Kind:             bloat.DockerAggregate,
				DockerKind:       kind,
				SizeBytes:        size,
				ReclaimableBytes: reclaimable,
				DetectorOrigin:   Name,
			})
		}
	}

	if cfg.Platform.OS == platform.Darwin || cfg.Platform.OS == platform.Windows {
		if vm, ok := d.scanVMDiskImage(cfg); ok {
			entries = append(entries, vm)
		}
	}

	return detector.Result{Entries: entries, Diagnostics: diagnostics}
}

func parseAggregateKind(t string) (bloat.DockerAggregateKind, bool) {
	switch strings.ToLower(t) {
	case "images":
		return bloat.DockerImages, true
	case "containers":
		return bloat.DockerContainers, true
	case "local volumes", "volumes":
		return bloat.DockerVolumes, true
	case "build cache", "buildcache":
		return bloat.DockerBuildCache, true
	default:
		return 0, false
	}
}

// parseDockerSize parses Docker's human-readable size strings such as
// "16.43MB" or "1.2GB (52%)", stripping any trailing percentage.
func parseDockerSize(s string) uint64 {
	if idx := strings.Index(s, " ("); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)
	if s == "" || s == "0B" {
		return 0
	}

	units := []struct {
		suffix string
		mult   float64
	}{
		{"TB", 1000 * 1000 * 1000 * 1000},
		{"GB", 1000 * 1000 * 1000},
		{"MB", 1000 * 1000},
		{"kB", 1000},
		{"KB", 1000},
		{"B", 1},
	}
	for _, u := range units {
		if strings.HasSuffix(s, u.suffix) {
			numStr := strings.TrimSpace(strings.TrimSuffix(s, u.suffix))
			val, err := strconv.ParseFloat(numStr, 64)
			if err != nil {
				return 0
			}
			return uint64(val * u.mult)
		}
	}
	return 0
}

// scanVMDiskImage looks for Docker Desktop's backing VM disk image, whose
// physical size on disk is reported as a single VmDiskImage entry distinct
// from the docker system df aggregates above.
func (d *Detector) scanVMDiskImage(cfg *config.Config) (bloat.BloatEntry, bool) {
	home := cfg.Platform.Home()
	candidates := []string{
		filepath.Join(home, "Library", "Containers", "com.docker.docker", "Data", "vms", "0", "data", "Docker.raw"),
		filepath.Join(home, "Library", "Containers", "com.docker.docker", "Data", "vms", "0", "data", "Docker.qcow2"),
	}
	if cfg.Platform.OS == platform.Windows {
		candidates = append(candidates,
			filepath.Join(cfg.Platform.DataDir(), "Docker", "wsl", "data", "ext4.vhdx"),
		)
	}

	for _, c := range candidates {
		info, err := os.Stat(c)
		if err != nil || info.IsDir() {
			continue
		}
		size := uint64(info.Size())
		return bloat.BloatEntry{
			Category:         bloat.ContainerData,
			Name:             "docker-desktop-vm",
			Path:             c,
			Kind:             bloat.VmDiskImage,
			SizeBytes:        size,
			ReclaimableBytes: 0,
			DetectorOrigin:   Name,
		}, true
	}
	return bloat.BloatEntry{}, false
}
