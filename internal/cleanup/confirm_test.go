package cleanup

import (
	"bytes"
	"strings"
	"testing"

	"github.com/heftdev/heft/internal/bloat"
)

func TestGroupByCategoryDeduplicatesAndSortsByEnumOrder(t *testing.T) {
	entries := []bloat.BloatEntry{
		{Category: bloat.PackageCache},
		{Category: bloat.ProjectArtifact},
		{Category: bloat.PackageCache},
		{Category: bloat.IdeData},
	}
	cats := GroupByCategory(entries)
	want := []bloat.Category{bloat.ProjectArtifact, bloat.PackageCache, bloat.IdeData}
	if len(cats) != len(want) {
		t.Fatalf("got %v, want %v", cats, want)
	}
	for i := range want {
		if cats[i] != want[i] {
			t.Errorf("cats[%d] = %v, want %v", i, cats[i], want[i])
		}
	}
}

func TestConfirmCategoryAcceptsYes(t *testing.T) {
	in := strings.NewReader("y\n")
	var out bytes.Buffer
	entries := []bloat.BloatEntry{{ReclaimableBytes: 100}}
	if !ConfirmCategory(in, &out, bloat.ProjectArtifact, entries) {
		t.Error("expected \"y\" to confirm")
	}
}

func TestConfirmCategoryAcceptsYesWord(t *testing.T) {
	in := strings.NewReader("  YES  \n")
	var out bytes.Buffer
	if !ConfirmCategory(in, &out, bloat.ProjectArtifact, nil) {
		t.Error("expected \"YES\" (case-insensitive, trimmed) to confirm")
	}
}

func TestConfirmCategoryRejectsAnythingElse(t *testing.T) {
	var out bytes.Buffer
	for _, resp := range []string{"n\n", "no\n", "\n", "maybe\n"} {
		if ConfirmCategory(strings.NewReader(resp), &out, bloat.ProjectArtifact, nil) {
			t.Errorf("response %q must not confirm", resp)
		}
	}
}

func TestConfirmCategoryReadErrorRejects(t *testing.T) {
	var out bytes.Buffer
	// An empty reader yields io.EOF on ReadString before any line.
	if ConfirmCategory(strings.NewReader(""), &out, bloat.ProjectArtifact, nil) {
		t.Error("a read error must be treated as a rejection, not a panic or confirmation")
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0 B"},
		{999, "999 B"},
		{1000, "1.0 kB"},
		{1500000, "1.5 MB"},
		{1000000000, "1.0 GB"},
	}
	for _, tt := range tests {
		if got := formatSize(tt.in); got != tt.want {
			t.Errorf("formatSize(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
