package cleanup

import "errors"

// Mode selects how Execute's caller obtains approval for each entry.
type Mode int

const (
	// Interactive prompts per category (the default).
	Interactive Mode = iota
	// DryRun prints the plan and deletes nothing.
	DryRun
	// Yes deletes everything in the filter without prompting.
	Yes
)

// ErrConflictingModes is returned when --dry-run and --yes are both set,
// which must be rejected at argument-parse time, before any scan or
// deletion happens (§4.7, §8 end-to-end scenario 5).
var ErrConflictingModes = errors.New("cleanup: --dry-run and --yes are mutually exclusive")

// ResolveMode validates the dryRun/yes flag pair and returns the selected
// Mode.
func ResolveMode(dryRun, yes bool) (Mode, error) {
	if dryRun && yes {
		return Interactive, ErrConflictingModes
	}
	if dryRun {
		return DryRun, nil
	}
	if yes {
		return Yes, nil
	}
	return Interactive, nil
}
