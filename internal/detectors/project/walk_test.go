package project

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWalkRootFindsVerifiedArtifact(t *testing.T) {
	root := t.TempDir()
	nm := filepath.Join(root, "node_modules")
	if err := os.MkdirAll(nm, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(nm, "pkg.js"), []byte("0123456789"), 0o644); err != nil {
		t.Fatal(err)
	}

	entries, diags := walkRoot(root, "", nil)
	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d: %+v", len(entries), entries)
	}
	if entries[0].Path != nm || entries[0].SizeBytes != 10 {
		t.Errorf("entry mismatch: %+v", entries[0])
	}
}

func TestWalkRootSkipsUnverifiedCandidate(t *testing.T) {
	root := t.TempDir()
	// "target" with no Cargo.toml/pom.xml/gradle sibling must not verify.
	if err := os.MkdirAll(filepath.Join(root, "target"), 0o755); err != nil {
		t.Fatal(err)
	}

	entries, _ := walkRoot(root, "", nil)
	if len(entries) != 0 {
		t.Errorf("expected no entries for an unverified target dir, got %+v", entries)
	}
}

func TestWalkRootPrunesMatchedDirectories(t *testing.T) {
	root := t.TempDir()
	nm := filepath.Join(root, "node_modules")
	nested := filepath.Join(nm, "sub", "node_modules")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	entries, _ := walkRoot(root, "", nil)
	if len(entries) != 1 {
		t.Fatalf("expected the walk to prune into the matched node_modules and not descend, got %d entries: %+v", len(entries), entries)
	}
	if entries[0].Path != nm {
		t.Errorf("expected the outer node_modules to be reported, got %s", entries[0].Path)
	}
}

func TestWalkRootIgnoresRootItself(t *testing.T) {
	root := t.TempDir()
	renamedRoot := filepath.Join(filepath.Dir(root), "node_modules")
	if err := os.Rename(root, renamedRoot); err != nil {
		t.Fatal(err)
	}
	entries, _ := walkRoot(renamedRoot, "", nil)
	if len(entries) != 0 {
		t.Errorf("the walk root itself must never be reported even if its name matches, got %+v", entries)
	}
}
