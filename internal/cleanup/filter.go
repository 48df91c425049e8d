package cleanup

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/heftdev/heft/internal/bloat"
)

// ParseCategoryFilter validates a --category flag value against the closed
// enumeration of category names, rejecting unrecognized values rather than
// silently dropping them (§4.7 "Category filter").
func ParseCategoryFilter(s string) (bloat.Category, error) {
	if s == "" {
		return 0, nil
	}
	cat, ok := bloat.ParseCategory(s)
	if !ok {
		return 0, fmt.Errorf("cleanup: unrecognized category %q", s)
	}
	return cat, nil
}

// FilterByCategory returns only the entries matching cat. When filterSet
// is false (no --category given), entries is returned unmodified.
func FilterByCategory(entries []bloat.BloatEntry, cat bloat.Category, filterSet bool) []bloat.BloatEntry {
	if !filterSet {
		return entries
	}
	var out []bloat.BloatEntry
	for _, e := range entries {
		if e.Category == cat {
			out = append(out, e)
		}
	}
	return out
}

// ErrNonInteractiveStdin is returned when interactive mode is requested but
// stdin is not a TTY — per §4.7, this degrades to refusing to delete, never
// to silently proceeding.
var ErrNonInteractiveStdin = fmt.Errorf("cleanup: stdin is not a terminal; pass --yes or --dry-run")

// RequireTTY checks whether in is an interactive terminal, using the same
// mattn/go-isatty check the teacher's CLI layer uses for output coloring
// decisions, applied here to the input side.
func RequireTTY(in *os.File) error {
	if !isatty.IsTerminal(in.Fd()) && !isatty.IsCygwinTerminal(in.Fd()) {
		return ErrNonInteractiveStdin
	}
	return nil
}
