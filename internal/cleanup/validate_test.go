package cleanup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/heftdev/heft/internal/platform"
)

func TestValidatePathRejectsRelativePath(t *testing.T) {
	p := platform.NewForOS(platform.Linux).WithHome(t.TempDir())
	if err := ValidatePath("relative/path", p); err != ErrNotAbsolute {
		t.Errorf("got %v, want ErrNotAbsolute", err)
	}
}

func TestValidatePathRejectsHome(t *testing.T) {
	home := t.TempDir()
	p := platform.NewForOS(platform.Linux).WithHome(home)
	if err := ValidatePath(home, p); err != ErrIsHome {
		t.Errorf("got %v, want ErrIsHome", err)
	}
}

func TestValidatePathRejectsOutsideAllowedRoots(t *testing.T) {
	home := t.TempDir()
	temp := t.TempDir()
	p := platform.NewForOS(platform.Linux).WithHome(home).WithTemp(temp)

	outside := t.TempDir() // a third, unrelated directory
	if err := ValidatePath(outside, p); err != ErrOutsideAllowedRoots {
		t.Errorf("got %v, want ErrOutsideAllowedRoots", err)
	}
}

func TestValidatePathRejectsSymlink(t *testing.T) {
	home := t.TempDir()
	p := platform.NewForOS(platform.Linux).WithHome(home)

	real := filepath.Join(home, "real")
	if err := os.Mkdir(real, 0o755); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(home, "link")
	if err := os.Symlink(real, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	if err := ValidatePath(link, p); err != ErrSymlink {
		t.Errorf("got %v, want ErrSymlink", err)
	}
}

func TestValidatePathRejectsMissingPath(t *testing.T) {
	home := t.TempDir()
	p := platform.NewForOS(platform.Linux).WithHome(home)

	missing := filepath.Join(home, "does-not-exist")
	if err := ValidatePath(missing, p); err != ErrGone {
		t.Errorf("got %v, want ErrGone", err)
	}
}

func TestValidatePathRejectsRegularFile(t *testing.T) {
	home := t.TempDir()
	p := platform.NewForOS(platform.Linux).WithHome(home)

	file := filepath.Join(home, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := ValidatePath(file, p); err != ErrGone {
		t.Errorf("got %v, want ErrGone (not a directory)", err)
	}
}

func TestValidatePathAcceptsDirectoryUnderHome(t *testing.T) {
	home := t.TempDir()
	p := platform.NewForOS(platform.Linux).WithHome(home)

	dir := filepath.Join(home, "node_modules")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := ValidatePath(dir, p); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidatePathAcceptsDirectoryUnderTemp(t *testing.T) {
	home := t.TempDir()
	temp := t.TempDir()
	p := platform.NewForOS(platform.Linux).WithHome(home).WithTemp(temp)

	dir := filepath.Join(temp, "build-cache")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := ValidatePath(dir, p); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

// FuzzValidatePathRejectsSymlinks exercises §8's symlink-refusal property:
// for any path that is a symlink, ValidatePath refuses it regardless of
// what the link points at, including targets that don't exist, targets
// outside the allowed roots, and targets that are themselves relative or
// malformed.
func FuzzValidatePathRejectsSymlinks(f *testing.F) {
	f.Add("real")
	f.Add("../real")
	f.Add("/etc/passwd")
	f.Add("does-not-exist")
	f.Add("")
	f.Add("....//....//etc")
	f.Add(string([]byte{0x00}))

	f.Fuzz(func(t *testing.T, target string) {
		home := t.TempDir()
		p := platform.NewForOS(platform.Linux).WithHome(home)

		link := filepath.Join(home, "link")
		if err := os.Symlink(target, link); err != nil {
			t.Skipf("target %q not representable as a symlink on this platform: %v", target, err)
		}

		if err := ValidatePath(link, p); err != ErrSymlink {
			t.Errorf("ValidatePath(%q) with target %q = %v, want ErrSymlink", link, target, err)
		}
	})
}
