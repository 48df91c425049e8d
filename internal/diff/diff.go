// Package diff implements the two-snapshot classification engine (C9): a
// (category, name) lookup-based match across an older and a newer
// snapshot, classifying each key as grew, shrank, new, or gone.
package diff

import (
	"sort"

	"github.com/heftdev/heft/internal/bloat"
	"github.com/heftdev/heft/internal/numeric"
)

// Status is the classification of one matched or unmatched entry.
type Status int

const (
	Grew Status = iota
	Shrank
	New
	Gone
)

func (s Status) String() string {
	switch s {
	case Grew:
		return "grew"
	case Shrank:
		return "shrank"
	case New:
		return "new"
	case Gone:
		return "gone"
	default:
		return "unknown"
	}
}

// Change is one row of diff output.
type Change struct {
	Category bloat.Category
	Name     string
	Status   Status
	// DeltaBytes is signed: B.size - A.size for a matched key (positive
	// for Grew, negative for Shrank), +size for New, -size for Gone. This
	// single sign convention is what makes NetChange a plain sum and what
	// makes diff(A,B) and diff(B,A) exact negations of each other (§8
	// "Diff is antisymmetric").
	DeltaBytes int64
}

// Result is the full output of Compute: changes grouped by category, each
// group sorted by absolute delta descending, plus the net change across
// every entry in either snapshot.
type Result struct {
	Changes   []Change
	NetChange int64
}

// Compute classifies every (category, name) key found in older and/or
// newer. Unchanged keys (equal size) are omitted from Changes but still
// contribute zero to NetChange.
func Compute(older, newer bloat.Snapshot) Result {
	oldByKey := indexByMatchKey(older.Entries)
	newByKey := indexByMatchKey(newer.Entries)

	seen := make(map[bloat.MatchKey]bool, len(oldByKey)+len(newByKey))
	var changes []Change
	var net int64

	for key, oldEntry := range oldByKey {
		seen[key] = true
		a := signed(oldEntry.SizeBytes)

		newEntry, ok := newByKey[key]
		if !ok {
			delta := negate(a)
			net = numeric.SubSaturatingInt64(net, a)
			changes = append(changes, Change{Category: key.Category, Name: key.Name, Status: Gone, DeltaBytes: delta})
			continue
		}

		b := signed(newEntry.SizeBytes)
		delta := numeric.SubSaturatingInt64(b, a)
		net = numeric.SubSaturatingInt64(net, negate(delta))
		switch {
		case b > a:
			changes = append(changes, Change{Category: key.Category, Name: key.Name, Status: Grew, DeltaBytes: delta})
		case b < a:
			changes = append(changes, Change{Category: key.Category, Name: key.Name, Status: Shrank, DeltaBytes: delta})
		}
	}

	for key, newEntry := range newByKey {
		if seen[key] {
			continue
		}
		b := signed(newEntry.SizeBytes)
		net = numeric.SubSaturatingInt64(net, negate(b))
		changes = append(changes, Change{Category: key.Category, Name: key.Name, Status: New, DeltaBytes: b})
	}

	sort.SliceStable(changes, func(i, j int) bool {
		a, b := changes[i], changes[j]
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return numeric.AbsInt64(a.DeltaBytes) > numeric.AbsInt64(b.DeltaBytes)
	})

	return Result{Changes: changes, NetChange: net}
}

func indexByMatchKey(entries []bloat.BloatEntry) map[bloat.MatchKey]bloat.BloatEntry {
	m := make(map[bloat.MatchKey]bloat.BloatEntry, len(entries))
	for _, e := range entries {
		m[e.MatchKey()] = e
	}
	return m
}

// signed converts a uint64 size to its signed representation via the same
// checked narrowing the store uses, saturating at the signed maximum
// rather than wrapping to a negative value.
func signed(v uint64) int64 {
	n, _ := numeric.Uint64ToInt64Checked(v)
	return n
}

func negate(v int64) int64 {
	return numeric.SubSaturatingInt64(0, v)
}
