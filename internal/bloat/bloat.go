// Package bloat defines the shared data model produced by every detector
// and consumed by the orchestrator, cleanup engine, and snapshot store.
package bloat

import "github.com/heftdev/heft/internal/numeric"

// Category identifies the kind of reclaimable bloat a BloatEntry describes.
type Category int

const (
	ProjectArtifact Category = iota
	PackageCache
	ContainerData
	IdeData
	SystemCache
)

// categoryNames is the stable string form used for persistence and
// diagnostics. It is keyed by the Category's declaration order, never by a
// Go stringer that could change if the constants are reordered — renaming a
// constant must not silently change what's stored in the database.
var categoryNames = [...]string{
	ProjectArtifact: "project_artifact",
	PackageCache:    "package_cache",
	ContainerData:   "container_data",
	IdeData:         "ide_data",
	SystemCache:     "system_cache",
}

// String returns the stable snake_case form of the category, used both for
// terminal/JSON output and as the persisted lookup key (§4.8 "Key
// stability").
func (c Category) String() string {
	if int(c) < 0 || int(c) >= len(categoryNames) {
		return "unknown"
	}
	return categoryNames[c]
}

// ParseCategory is the inverse of String. It returns false for any value
// that is not one of the stable names, including a debug-format rendering.
func ParseCategory(s string) (Category, bool) {
	for i, name := range categoryNames {
		if name == s {
			return Category(i), true
		}
	}
	return 0, false
}

// Kind distinguishes how a BloatEntry's Path field should be interpreted.
type Kind int

const (
	// FilesystemPath means Path names a real directory on disk.
	FilesystemPath Kind = iota
	// DockerAggregate means the entry represents a class of Docker objects
	// (images, containers, volumes, or build cache) with no single path.
	DockerAggregate
	// VmDiskImage means Path names a single large disk image file backing a
	// container runtime's VM (e.g. Docker Desktop's qcow2/raw image).
	VmDiskImage
)

// DockerAggregateKind enumerates the Docker object classes reported by
// `docker system df`. It refines Kind when Kind == DockerAggregate.
type DockerAggregateKind int

const (
	DockerImages DockerAggregateKind = iota
	DockerContainers
	DockerVolumes
	DockerBuildCache
)

func (k DockerAggregateKind) String() string {
	switch k {
	case DockerImages:
		return "images"
	case DockerContainers:
		return "containers"
	case DockerVolumes:
		return "volumes"
	case DockerBuildCache:
		return "buildcache"
	default:
		return "unknown"
	}
}

// NonePath is the sentinel path recorded for aggregate entries that have no
// single filesystem location.
const NonePath = "<none>"

// BloatEntry is the universal unit produced by a detector.
type BloatEntry struct {
	Category Category
	// Name is a short human-readable label, unique within (snapshot, category).
	Name string
	// Path is an absolute filesystem path, or NonePath for aggregate objects.
	Path string
	Kind Kind
	// DockerKind is meaningful only when Kind == DockerAggregate.
	DockerKind DockerAggregateKind
	// SizeBytes is the total bytes on disk, saturating at math.MaxUint64.
	SizeBytes uint64
	// ReclaimableBytes is always <= SizeBytes.
	ReclaimableBytes uint64
	// LastModifiedAgeDays is undefined (AgeKnown == false) for aggregates.
	LastModifiedAgeDays int64
	AgeKnown            bool
	// DetectorOrigin identifies the detector that produced the entry, for
	// diagnostics only.
	DetectorOrigin string
}

// Key returns the (category, name, path) tuple entries must be unique by
// within a single scan result.
func (e BloatEntry) Key() EntryKey {
	return EntryKey{Category: e.Category, Name: e.Name, Path: e.Path}
}

// EntryKey is the uniqueness key for a BloatEntry. Diffing (C9) does not
// use it; it matches on (Category, Name) only — see MatchKey.
type EntryKey struct {
	Category Category
	Name     string
	Path     string
}

// MatchKey is the subset of EntryKey the diff engine matches two snapshots
// on: (category, name), per §4.9.
type MatchKey struct {
	Category Category
	Name     string
}

func (e BloatEntry) MatchKey() MatchKey {
	return MatchKey{Category: e.Category, Name: e.Name}
}

// MemoryStats captures resident-set-size observations for a scan.
type MemoryStats struct {
	PeakRSSBytes          uint64
	PerDetectorDeltaBytes map[string]uint64
}

// ScanResult is the aggregated output of a single detector run across all
// enabled detectors.
type ScanResult struct {
	Entries         []BloatEntry
	DetectorTimings map[string]int64 // milliseconds, per detector name
	Memory          MemoryStats
	// DurationMs is a uint64 millisecond count; no wider (128-bit)
	// accumulator is used. It is narrowed to int64 only at the point of
	// persistence via a checked conversion (internal/numeric).
	DurationMs uint64
	// ScannedAt is seconds since the Unix epoch.
	ScannedAt int64
}

// TotalBytes sums SizeBytes across all entries using saturating addition.
func (r ScanResult) TotalBytes() uint64 {
	sizes := make([]uint64, len(r.Entries))
	for i, e := range r.Entries {
		sizes[i] = e.SizeBytes
	}
	total, _ := numeric.SumSaturatingUint64(sizes)
	return total
}

// TotalReclaimableBytes sums ReclaimableBytes across all entries using
// saturating addition.
func (r ScanResult) TotalReclaimableBytes() uint64 {
	sizes := make([]uint64, len(r.Entries))
	for i, e := range r.Entries {
		sizes[i] = e.ReclaimableBytes
	}
	total, _ := numeric.SumSaturatingUint64(sizes)
	return total
}

// Snapshot is a persisted ScanResult with an assigned ID and precomputed
// totals. Snapshots are immutable after creation.
type Snapshot struct {
	ID               int64
	ScannedAt        int64
	DurationMs       int64
	TotalBytes       uint64
	ReclaimableBytes uint64
	Entries          []BloatEntry
}
