package ide

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/heftdev/heft/internal/config"
	"github.com/heftdev/heft/internal/platform"
)

func TestScanFindsJetBrainsCache(t *testing.T) {
	home := t.TempDir()
	p := platform.NewForOS(platform.Linux).WithHome(home)
	jb := filepath.Join(home, ".cache", "JetBrains")
	if err := os.MkdirAll(jb, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(jb, "index"), make([]byte, 42), 0o644); err != nil {
		t.Fatal(err)
	}

	d := &Detector{}
	cfg := &config.Config{Platform: p}
	res := d.Scan(context.Background(), cfg)

	var found bool
	for _, e := range res.Entries {
		if e.Name == "jetbrains" {
			found = true
			if e.SizeBytes != 42 {
				t.Errorf("jetbrains size = %d, want 42", e.SizeBytes)
			}
		}
	}
	if !found {
		t.Error("expected a jetbrains entry")
	}
}

func TestScanOmitsAbsentCaches(t *testing.T) {
	home := t.TempDir()
	d := &Detector{}
	cfg := &config.Config{Platform: platform.NewForOS(platform.Linux).WithHome(home)}
	res := d.Scan(context.Background(), cfg)
	if len(res.Entries) != 0 {
		t.Errorf("expected no entries, got %+v", res.Entries)
	}
}

func TestPathsVaryByOS(t *testing.T) {
	home := t.TempDir()
	darwinPaths := paths(platform.NewForOS(platform.Darwin).WithHome(home))
	if darwinPaths["jetbrains"] != filepath.Join(home, "Library", "Caches", "JetBrains") {
		t.Errorf("unexpected darwin jetbrains path: %s", darwinPaths["jetbrains"])
	}
}
