package store

import (
	"database/sql"
	"fmt"

	"github.com/heftdev/heft/internal/bloat"
	"github.com/heftdev/heft/internal/numeric"
)

// SnapshotSummary is one row of `report --list`: enough to identify and
// rank a snapshot without loading its entries.
type SnapshotSummary struct {
	ID               int64
	ScannedAt        int64
	TotalBytes       uint64
	ReclaimableBytes uint64
}

// ListSnapshots returns every snapshot summary, most recent first.
func (s *Store) ListSnapshots() ([]SnapshotSummary, error) {
	rows, err := s.db.Query(`SELECT id, scanned_at, total_bytes, reclaimable_bytes FROM snapshots ORDER BY scanned_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("store: list snapshots: %w", err)
	}
	defer rows.Close()

	var out []SnapshotSummary
	for rows.Next() {
		var sum SnapshotSummary
		var totalBytes, reclaimableBytes int64
		if err := rows.Scan(&sum.ID, &sum.ScannedAt, &totalBytes, &reclaimableBytes); err != nil {
			return nil, fmt.Errorf("store: scan snapshot row: %w", err)
		}
		sum.TotalBytes = numeric.Int64ToUint64Clamped(totalBytes)
		sum.ReclaimableBytes = numeric.Int64ToUint64Clamped(reclaimableBytes)
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list snapshots: %w", err)
	}
	return out, nil
}

// LatestTwo returns the two most recently scanned snapshots, older first,
// for the diff command's default (no --from/--to) behavior.
func (s *Store) LatestTwo() (older, newer bloat.Snapshot, err error) {
	summaries, err := s.ListSnapshots()
	if err != nil {
		return bloat.Snapshot{}, bloat.Snapshot{}, err
	}
	if len(summaries) < 2 {
		return bloat.Snapshot{}, bloat.Snapshot{}, fmt.Errorf("store: need at least two snapshots to diff, have %d", len(summaries))
	}
	newer, err = s.GetSnapshot(summaries[0].ID)
	if err != nil {
		return bloat.Snapshot{}, bloat.Snapshot{}, err
	}
	older, err = s.GetSnapshot(summaries[1].ID)
	if err != nil {
		return bloat.Snapshot{}, bloat.Snapshot{}, err
	}
	return older, newer, nil
}

// GetSnapshot loads a full snapshot, including its entries, by ID. A
// missing snapshot is a storage error, surfaced loudly rather than
// returned as an empty snapshot (§7 "Storage error... never swallowed").
func (s *Store) GetSnapshot(id int64) (bloat.Snapshot, error) {
	var snap bloat.Snapshot
	var totalBytes, reclaimableBytes int64
	row := s.db.QueryRow(`SELECT id, scanned_at, duration_ms, total_bytes, reclaimable_bytes FROM snapshots WHERE id = ?`, id)
	if err := row.Scan(&snap.ID, &snap.ScannedAt, &snap.DurationMs, &totalBytes, &reclaimableBytes); err != nil {
		if err == sql.ErrNoRows {
			return bloat.Snapshot{}, fmt.Errorf("store: snapshot %d not found", id)
		}
		return bloat.Snapshot{}, fmt.Errorf("store: read snapshot %d: %w", id, err)
	}
	snap.TotalBytes = numeric.Int64ToUint64Clamped(totalBytes)
	snap.ReclaimableBytes = numeric.Int64ToUint64Clamped(reclaimableBytes)

	rows, err := s.db.Query(`SELECT category, name, path, size_bytes, reclaimable_bytes, age_days FROM entries WHERE snapshot_id = ?`, id)
	if err != nil {
		return bloat.Snapshot{}, fmt.Errorf("store: read entries for snapshot %d: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var category string
		var sizeBytes, reclaimable int64
		var ageDays sql.NullInt64
		var e bloat.BloatEntry
		if err := rows.Scan(&category, &e.Name, &e.Path, &sizeBytes, &reclaimable, &ageDays); err != nil {
			return bloat.Snapshot{}, fmt.Errorf("store: scan entry row: %w", err)
		}
		cat, ok := bloat.ParseCategory(category)
		if !ok {
			return bloat.Snapshot{}, fmt.Errorf("store: snapshot %d has unrecognized persisted category %q", id, category)
		}
		e.Category = cat
		e.SizeBytes = numeric.Int64ToUint64Clamped(sizeBytes)
		e.ReclaimableBytes = numeric.Int64ToUint64Clamped(reclaimable)
		if ageDays.Valid {
			e.AgeKnown = true
			e.LastModifiedAgeDays = ageDays.Int64
		}
		e.Kind = bloat.FilesystemPath
		if e.Path == bloat.NonePath {
			e.Kind = bloat.DockerAggregate
		}
		snap.Entries = append(snap.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return bloat.Snapshot{}, fmt.Errorf("store: read entries for snapshot %d: %w", id, err)
	}

	return snap, nil
}
