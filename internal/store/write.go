package store

import (
	"database/sql"
	"fmt"

	"github.com/heftdev/heft/internal/bloat"
	"github.com/heftdev/heft/internal/numeric"
)

// SaveResult is returned by SaveSnapshot: the assigned snapshot ID plus any
// diagnostics raised by checked numeric narrowing during the write.
type SaveResult struct {
	ID          int64
	Diagnostics []string
}

// SaveSnapshot inserts a snapshot and its entries in a single transaction.
// Totals are computed in one pass over entries using saturating addition,
// per §4.8 "Saves are transactional." Unsigned sizes that overflow the
// signed 64-bit range are narrowed via a checked conversion: the signed
// maximum is stored and a diagnostic recorded, never a silent wraparound.
func (s *Store) SaveSnapshot(scan bloat.ScanResult) (SaveResult, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return SaveResult{}, fmt.Errorf("store: begin transaction: %w", err)
	}
	defer tx.Rollback()

	var diagnostics []string
	narrow := func(label string, v uint64) int64 {
		n, overflowed := numeric.Uint64ToInt64Checked(v)
		if overflowed {
			diagnostics = append(diagnostics, fmt.Sprintf("store: %s overflowed signed 64-bit range, stored as maximum", label))
		}
		return n
	}

	totalBytes := scan.TotalBytes()
	reclaimableBytes := scan.TotalReclaimableBytes()
	durationMs, overflowed := numeric.Uint64ToInt64Checked(scan.DurationMs)
	if overflowed {
		diagnostics = append(diagnostics, "store: duration_ms overflowed signed 64-bit range, stored as maximum")
	}

	res, err := tx.Exec(
		`INSERT INTO snapshots (scanned_at, duration_ms, total_bytes, reclaimable_bytes) VALUES (?, ?, ?, ?)`,
		scan.ScannedAt, durationMs, narrow("total_bytes", totalBytes), narrow("reclaimable_bytes", reclaimableBytes),
	)
	if err != nil {
		return SaveResult{}, fmt.Errorf("store: insert snapshot: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return SaveResult{}, fmt.Errorf("store: read snapshot id: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO entries (snapshot_id, category, name, path, size_bytes, reclaimable_bytes, age_days) VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return SaveResult{}, fmt.Errorf("store: prepare entry insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range scan.Entries {
		var ageDays sql.NullInt64
		if e.AgeKnown {
			ageDays = sql.NullInt64{Int64: e.LastModifiedAgeDays, Valid: true}
		}
		if _, err := stmt.Exec(
			id, bloatCategory(e.Category), e.Name, e.Path,
			narrow("size_bytes", e.SizeBytes), narrow("reclaimable_bytes", e.ReclaimableBytes), ageDays,
		); err != nil {
			return SaveResult{}, fmt.Errorf("store: insert entry %s: %w", e.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return SaveResult{}, fmt.Errorf("store: commit: %w", err)
	}

	return SaveResult{ID: id, Diagnostics: diagnostics}, nil
}

// DeleteSnapshot removes a snapshot; its entries cascade-delete via the
// foreign key ON DELETE CASCADE (§4.8, §8 "no orphan entries remain").
func (s *Store) DeleteSnapshot(id int64) error {
	_, err := s.db.Exec(`DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete snapshot %d: %w", id, err)
	}
	return nil
}
