package packagecache

import (
	"io/fs"
	"path/filepath"

	"github.com/heftdev/heft/internal/numeric"
)

// dirSize sums regular-file sizes under root without following symlinks,
// using checked addition that saturates at the uint64 maximum. Metadata
// errors on individual entries are reported via debug and otherwise
// skipped.
func dirSize(root string, debug func(path string, err error)) (total uint64, saturated bool) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			debug(path, err)
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			debug(path, err)
			return nil
		}
		var sat bool
		total, sat = numeric.AddSaturatingUint64(total, uint64(info.Size()))
		saturated = saturated || sat
		return nil
	})
	return total, saturated
}
