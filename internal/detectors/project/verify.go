package project

import (
	"os"
	"path/filepath"
)

// verify runs the structural verification rule for the given artifact
// directory name, given its parent directory. Only siblings and
// glob-matched siblings are consulted, except for the DerivedData rule,
// which lists the candidate's direct children; no rule looks deeper.
func verify(name, dir, parent, home string) bool {
	switch {
	case unconditionalNames[name]:
		return true
	case name == "target":
		return siblingExists(parent, rustManifests) || siblingExists(parent, jvmManifests) || siblingGlobExists(parent, jvmGradleGlobs)
	case name == "build" || name == "dist":
		return siblingExists(parent, buildDistManifests) || siblingGlobExists(parent, buildDistGlobs) || siblingExists(parent, buildDistLockfiles)
	case name == ".gradle":
		return siblingGlobExists(parent, jvmGradleGlobs)
	case name == "DerivedData":
		return verifyDerivedData(dir, home)
	case name == "bin" || name == "obj":
		return siblingGlobExists(parent, dotnetGlobs)
	default:
		return false
	}
}

// siblingExists reports whether any of names exists as a direct child of
// dir.
func siblingExists(dir string, names []string) bool {
	for _, n := range names {
		if _, err := os.Lstat(filepath.Join(dir, n)); err == nil {
			return true
		}
	}
	return false
}

// siblingGlobExists reports whether any pattern in patterns matches a
// direct child of dir.
func siblingGlobExists(dir string, patterns []string) bool {
	for _, pat := range patterns {
		matches, err := filepath.Glob(filepath.Join(dir, pat))
		if err == nil && len(matches) > 0 {
			return true
		}
	}
	return false
}

// maxDerivedDataAncestors bounds the upward walk verifyDerivedData performs
// to confirm a DerivedData directory lives under the user's home, per
// §4.3's hard cap of 10 ancestor lookups.
const maxDerivedDataAncestors = 10

// verifyDerivedData accepts dir as a genuine Xcode DerivedData directory
// only if it sits within home (checked by walking at most
// maxDerivedDataAncestors parents) and contains the structure Xcode
// actually writes: at least one child whose name carries a build-id
// suffix, or a Build/ subdirectory.
func verifyDerivedData(dir, home string) bool {
	if home != "" && !withinAncestorBound(dir, home, maxDerivedDataAncestors) {
		return false
	}
	return hasXcodeShape(dir)
}

// withinAncestorBound reports whether target is an ancestor-of-or-equal-to
// dir reachable within limit parent hops.
func withinAncestorBound(dir, target string, limit int) bool {
	cur := filepath.Clean(dir)
	target = filepath.Clean(target)
	for i := 0; i <= limit; i++ {
		if cur == target {
			return true
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return false
		}
		cur = parent
	}
	return false
}

// hasXcodeShape checks for a Build/ child, or any child whose name ends in
// a hyphen-separated build-id suffix (Xcode names project dirs
// "ProjectName-<hash>").
func hasXcodeShape(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if e.Name() == "Build" {
			return true
		}
		if looksLikeBuildIDSuffix(e.Name()) {
			return true
		}
	}
	return false
}

// looksLikeBuildIDSuffix reports whether name ends in "-" followed by a
// run of at least 8 hex digits, the shape taken as an Xcode per-project
// DerivedData subdirectory (e.g. "MyApp-abcdef1234567890").
func looksLikeBuildIDSuffix(name string) bool {
	i := len(name) - 1
	hexRun := 0
	for i >= 0 && isHexDigit(name[i]) {
		hexRun++
		i--
	}
	return hexRun >= 8 && i >= 0 && name[i] == '-'
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
