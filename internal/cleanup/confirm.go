package cleanup

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/heftdev/heft/internal/bloat"
)

// GroupByCategory groups entries by category in a deterministic order
// (category enum order, per §4.7 "Entries are grouped by category in a
// deterministic order").
func GroupByCategory(entries []bloat.BloatEntry) []bloat.Category {
	seen := make(map[bloat.Category]bool)
	var cats []bloat.Category
	for _, e := range entries {
		if !seen[e.Category] {
			seen[e.Category] = true
			cats = append(cats, e.Category)
		}
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	return cats
}

// ConfirmCategory prompts once per category: total size, item count, and a
// one-line y/n read. Only "y" or "yes" (case-insensitive,
// whitespace-trimmed) proceeds; anything else, including a read error,
// skips the category.
func ConfirmCategory(in io.Reader, out io.Writer, category bloat.Category, entries []bloat.BloatEntry) bool {
	var total uint64
	for _, e := range entries {
		total += e.ReclaimableBytes
	}

	bold := color.New(color.Bold)
	bold.Fprintf(out, "\n%s — %d item(s), %s reclaimable\n", category.String(), len(entries), formatSize(total))
	fmt.Fprint(out, "Delete this category? [y/N]: ")

	reader := bufio.NewReader(in)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(response))
	return answer == "y" || answer == "yes"
}

// formatSize formats a byte count using SI units, matching the teacher's
// convention for size display.
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
