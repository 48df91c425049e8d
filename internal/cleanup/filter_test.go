package cleanup

import (
	"os"
	"testing"

	"github.com/heftdev/heft/internal/bloat"
)

func TestParseCategoryFilter(t *testing.T) {
	cat, err := ParseCategoryFilter("project_artifact")
	if err != nil || cat != bloat.ProjectArtifact {
		t.Errorf("got (%v, %v), want (ProjectArtifact, nil)", cat, err)
	}

	if _, err := ParseCategoryFilter("not_a_category"); err == nil {
		t.Error("expected an error for an unrecognized category")
	}

	cat, err = ParseCategoryFilter("")
	if err != nil || cat != 0 {
		t.Errorf("empty filter should return the zero value with no error, got (%v, %v)", cat, err)
	}
}

func TestFilterByCategory(t *testing.T) {
	entries := []bloat.BloatEntry{
		{Category: bloat.ProjectArtifact, Name: "a"},
		{Category: bloat.PackageCache, Name: "b"},
	}

	all := FilterByCategory(entries, bloat.ProjectArtifact, false)
	if len(all) != 2 {
		t.Errorf("filterSet=false should return every entry unmodified, got %d", len(all))
	}

	filtered := FilterByCategory(entries, bloat.ProjectArtifact, true)
	if len(filtered) != 1 || filtered[0].Name != "a" {
		t.Errorf("expected only the project_artifact entry, got %+v", filtered)
	}
}

func TestRequireTTYRejectsNonTerminal(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()

	if err := RequireTTY(r); err != ErrNonInteractiveStdin {
		t.Errorf("got %v, want ErrNonInteractiveStdin for a pipe", err)
	}
}
