package cleanup

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/heftdev/heft/internal/bloat"
	"github.com/heftdev/heft/internal/platform"
)

func TestExecuteRemovesFilesystemEntry(t *testing.T) {
	home := t.TempDir()
	p := platform.NewForOS(platform.Linux).WithHome(home)

	dir := filepath.Join(home, "node_modules")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "x.js"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	entries := []bloat.BloatEntry{
		{Category: bloat.ProjectArtifact, Name: "node_modules", Path: dir, Kind: bloat.FilesystemPath, SizeBytes: 1, ReclaimableBytes: 1},
	}

	res := Execute(context.Background(), entries, p, 30, nil, nil)

	if len(res.Removed) != 1 || len(res.Failed) != 0 {
		t.Fatalf("got removed=%d failed=%d, want removed=1 failed=0", len(res.Removed), len(res.Failed))
	}
	if res.BytesFreed != 1 {
		t.Errorf("BytesFreed = %d, want 1", res.BytesFreed)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("directory should have been removed")
	}
}

func TestExecuteRefusesSymlink(t *testing.T) {
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

	entries := []bloat.BloatEntry{
		{Category: bloat.ProjectArtifact, Name: "link", Path: link, Kind: bloat.FilesystemPath, SizeBytes: 1, ReclaimableBytes: 1},
	}

	res := Execute(context.Background(), entries, p, 30, nil, nil)
	if len(res.Failed) != 1 {
		t.Fatalf("expected the symlink entry to fail, got removed=%d failed=%d", len(res.Removed), len(res.Failed))
	}
	if _, err := os.Lstat(real); err != nil {
		t.Error("the real directory must survive a refused symlink deletion")
	}
}

func TestExecuteRejectsVmDiskImage(t *testing.T) {
	home := t.TempDir()
	p := platform.NewForOS(platform.Linux).WithHome(home)

	entries := []bloat.BloatEntry{
		{Category: bloat.ContainerData, Name: "docker-desktop-vm", Path: filepath.Join(home, "Docker.raw"), Kind: bloat.VmDiskImage, SizeBytes: 100},
	}

	res := Execute(context.Background(), entries, p, 30, nil, nil)
	if len(res.Failed) != 1 || len(res.Removed) != 0 {
		t.Errorf("VmDiskImage entries must never be deleted, got removed=%d failed=%d", len(res.Removed), len(res.Failed))
	}
}

func TestExecuteContinuesAfterFailure(t *testing.T) {
	home := t.TempDir()
	p := platform.NewForOS(platform.Linux).WithHome(home)

	good := filepath.Join(home, "target")
	if err := os.Mkdir(good, 0o755); err != nil {
		t.Fatal(err)
	}

	entries := []bloat.BloatEntry{
		{Category: bloat.ProjectArtifact, Name: "missing", Path: filepath.Join(home, "missing"), Kind: bloat.FilesystemPath, SizeBytes: 1},
		{Category: bloat.ProjectArtifact, Name: "target", Path: good, Kind: bloat.FilesystemPath, SizeBytes: 5, ReclaimableBytes: 5},
	}

	res := Execute(context.Background(), entries, p, 30, nil, nil)
	if len(res.Removed) != 1 || len(res.Failed) != 1 {
		t.Fatalf("one entry should fail and the other should still be removed, got removed=%d failed=%d", len(res.Removed), len(res.Failed))
	}
	if res.BytesFreed != 5 {
		t.Errorf("BytesFreed = %d, want 5", res.BytesFreed)
	}
}
