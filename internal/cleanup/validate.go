// Package cleanup implements the deletion path (C7): strict pre-flight
// validation, per-category interactive confirmation, dry-run and yes
// modes, and typed delegation to external tools for aggregate objects that
// have no on-disk path.
package cleanup

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/heftdev/heft/internal/platform"
)

// ErrNotAbsolute, ErrIsHome, ErrOutsideAllowedRoots, ErrSymlink, and
// ErrGone name the five pre-flight validation failures from §4.7, in the
// order they're checked.
var (
	ErrNotAbsolute         = errors.New("cleanup: path is not absolute")
	ErrIsHome              = errors.New("cleanup: refusing to delete the home directory")
	ErrOutsideAllowedRoots = errors.New("cleanup: path is not anchored under home or temp")
	ErrSymlink             = errors.New("cleanup: refusing to follow a symlink")
	ErrGone                = errors.New("cleanup: path no longer exists or is not a directory")
)

// ValidatePath runs the full pre-flight chain against path, re-checked
// immediately before deletion. Every check after the first depends on the
// filesystem state at call time, which is why this is re-run between
// approval and the actual os.RemoveAll rather than cached from scan time —
// the TOCTOU mitigation (§4.7 item 4) only holds if the symlink check
// happens right before deletion.
func ValidatePath(path string, p *platform.Resolver) error {
	if !filepath.IsAbs(path) {
		return ErrNotAbsolute
	}

	home := filepath.Clean(p.Home())
	cleaned := filepath.Clean(path)
	if cleaned == home {
		return ErrIsHome
	}

	temp := filepath.Clean(p.Temp())
	canonical, err := canonicalize(cleaned)
	if err != nil {
		return ErrGone
	}
	if !hasPrefix(canonical, home) && !hasPrefix(canonical, temp) {
		return ErrOutsideAllowedRoots
	}

	// Lstat, not Stat: a symlink must be detected without being followed.
	info, err := os.Lstat(path)
	if err != nil {
		return ErrGone
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return ErrSymlink
	}
	if !info.IsDir() {
		return ErrGone
	}

	return nil
}

// canonicalize resolves symlinks in path's ancestor chain (but not in path
// itself — that's the caller's separate Lstat check) so that a home
// directory reached through a symlinked ancestor still satisfies the
// containment check.
func canonicalize(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(filepath.Dir(path))
	if err != nil {
		return "", err
	}
	return filepath.Join(resolved, filepath.Base(path)), nil
}

func hasPrefix(path, prefix string) bool {
	return path == prefix || len(path) > len(prefix) && path[:len(prefix)] == prefix && path[len(prefix)] == os.PathSeparator
}
