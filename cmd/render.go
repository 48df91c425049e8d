package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/heftdev/heft/internal/bloat"
)

// formatSize renders a byte count in the teacher's SI-unit convention.
func formatSize(b uint64) string {
	const unit = 1000
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	units := []string{"kB", "MB", "GB", "TB", "PB", "EB"}
	return fmt.Sprintf("%.1f %s", float64(b)/float64(div), units[exp])
}

// printScanResult renders a ScanResult as a category-grouped, colorized
// table, in the teacher's printResults style.
func printScanResult(w io.Writer, result bloat.ScanResult) {
	if len(result.Entries) == 0 {
		fmt.Fprintln(w, "No reclaimable bloat found.")
		return
	}

	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)
	greenBold := color.New(color.FgGreen, color.Bold)
	faint := color.New(color.Faint)

	byCategory := groupByCategory(result.Entries)

	fmt.Fprintln(w)
	bold.Fprintln(w, "Scan results")

	var grandTotal uint64
	for _, cat := range byCategory {
		fmt.Fprintln(w)
		bold.Fprintln(w, "  "+cat.category.String())

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
		for _, e := range cat.entries {
			fmt.Fprintf(tw, "    %s\t  %s\t\n", e.Name, cyan.Sprint(formatSize(e.SizeBytes)))
		}
		tw.Flush()

		var catTotal uint64
		for _, e := range cat.entries {
			catTotal += e.SizeBytes
		}
		grandTotal += catTotal
	}

	fmt.Fprintln(w)
	greenBold.Fprintf(w, "  Total: %s (%s reclaimable)\n", formatSize(grandTotal), formatSize(totalReclaimable(result.Entries)))

	if len(result.DetectorTimings) > 0 {
		fmt.Fprintln(w)
		faint.Fprintln(w, "  Detector timings:")
		names := make([]string, 0, len(result.DetectorTimings))
		for name := range result.DetectorTimings {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			faint.Fprintf(w, "    %s: %dms\n", name, result.DetectorTimings[name])
		}
	}
	fmt.Fprintln(w)
}

type categoryGroup struct {
	category bloat.Category
	entries  []bloat.BloatEntry
}

func groupByCategory(entries []bloat.BloatEntry) []categoryGroup {
	index := map[bloat.Category]int{}
	var groups []categoryGroup
	for _, e := range entries {
		if i, ok := index[e.Category]; ok {
			groups[i].entries = append(groups[i].entries, e)
			continue
		}
		index[e.Category] = len(groups)
		groups = append(groups, categoryGroup{category: e.Category, entries: []bloat.BloatEntry{e}})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].category < groups[j].category })
	return groups
}

func totalReclaimable(entries []bloat.BloatEntry) uint64 {
	var total uint64
	for _, e := range entries {
		total += e.ReclaimableBytes
	}
	return total
}

// scanJSON is the wire shape for `scan --json`, matching §6's documented
// field set exactly.
type scanJSON struct {
	Entries          []entryJSON      `json:"entries"`
	DetectorTimings  map[string]int64 `json:"detector_timings"`
	Memory           memoryJSON       `json:"memory"`
	DurationMs       uint64           `json:"duration_ms"`
	ScannedAt        int64            `json:"scanned_at"`
	TotalBytes       uint64           `json:"total_bytes"`
	ReclaimableBytes uint64           `json:"reclaimable_bytes"`
}

type entryJSON struct {
	Category            string `json:"category"`
	Name                 string `json:"name"`
	Path                 string `json:"path"`
	SizeBytes            uint64 `json:"size_bytes"`
	ReclaimableBytes     uint64 `json:"reclaimable_bytes"`
	LastModifiedAgeDays  int64  `json:"last_modified_age_days,omitempty"`
	AgeKnown             bool   `json:"age_known"`
	DetectorOrigin       string `json:"detector_origin"`
}

type memoryJSON struct {
	PeakRSSBytes        uint64            `json:"peak_rss_bytes"`
	PerDetectorDeltaBytes map[string]uint64 `json:"per_detector_delta_bytes"`
}

// printScanJSON encodes result as JSON through encoding/json (never string
// concatenation, so embedded quotes and control characters are escaped
// correctly per §6).
func printScanJSON(w io.Writer, result bloat.ScanResult) error {
	out := scanJSON{
		DetectorTimings:  result.DetectorTimings,
		DurationMs:       result.DurationMs,
		ScannedAt:        result.ScannedAt,
		TotalBytes:       result.TotalBytes(),
		ReclaimableBytes: result.TotalReclaimableBytes(),
		Memory: memoryJSON{
			PeakRSSBytes:          result.Memory.PeakRSSBytes,
			PerDetectorDeltaBytes: result.Memory.PerDetectorDeltaBytes,
		},
	}
	for _, e := range result.Entries {
		out.Entries = append(out.Entries, entryJSON{
			Category:            e.Category.String(),
			Name:                 e.Name,
			Path:                 e.Path,
			SizeBytes:            e.SizeBytes,
			ReclaimableBytes:     e.ReclaimableBytes,
			LastModifiedAgeDays:  e.LastModifiedAgeDays,
			AgeKnown:             e.AgeKnown,
			DetectorOrigin:       e.DetectorOrigin,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// shortenHome replaces a literal home-directory prefix with ~, matching
// the teacher's display convention.
func shortenHome(path, home string) string {
	if home != "" && strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
