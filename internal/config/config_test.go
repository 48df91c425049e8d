package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFileMissingIsNotAnError(t *testing.T) {
	c := Default()
	orig := *c
	if err := c.LoadFile(filepath.Join(t.TempDir(), "does-not-exist.toml")); err != nil {
		t.Fatalf("missing config file must not be an error, got %v", err)
	}
	if len(c.Roots) != len(orig.Roots) || c.Verbose != orig.Verbose {
		t.Error("a missing config file must leave the config unmodified")
	}
}

func TestLoadFileMalformedIsAnError(t *testing.T) {
	c := Default()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not = [valid toml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := c.LoadFile(path); err == nil {
		t.Error("expected a malformed config file to surface an error")
	}
}

func TestLoadFileAppliesOverrides(t *testing.T) {
	c := Default()
	path := filepath.Join(t.TempDir(), "config.toml")
	contents := `
roots = ["/a", "/b"]
verbose = true
progressive = true
subprocess_timeout_seconds = 60
disable = ["container"]
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := c.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(c.Roots) != 2 || c.Roots[0] != "/a" || c.Roots[1] != "/b" {
		t.Errorf("Roots = %v, want [/a /b]", c.Roots)
	}
	if !c.Verbose || !c.Progressive {
		t.Error("expected Verbose and Progressive to be set from the file")
	}
	if c.SubprocessTimeout != 60*time.Second {
		t.Errorf("SubprocessTimeout = %v, want 60s", c.SubprocessTimeout)
	}
	if len(c.DisabledDetectors) != 1 || c.DisabledDetectors[0] != "container" {
		t.Errorf("DisabledDetectors = %v, want [container]", c.DisabledDetectors)
	}
}

func TestLoadFileZeroTimeoutDoesNotOverrideDefault(t *testing.T) {
	c := Default()
	wantDefault := c.SubprocessTimeout
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`verbose = true`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := c.LoadFile(path); err != nil {
		t.Fatal(err)
	}
	if c.SubprocessTimeout != wantDefault {
		t.Errorf("an absent subprocess_timeout_seconds must leave the default in place, got %v", c.SubprocessTimeout)
	}
}

func TestIsDisabledNoDockerShortcut(t *testing.T) {
	c := Default()
	c.NoDocker = true
	if !c.IsDisabled("container") {
		t.Error("--no-docker must disable the container detector")
	}
	if c.IsDisabled("project") {
		t.Error("--no-docker must not disable unrelated detectors")
	}
}

func TestIsDisabledNegativeList(t *testing.T) {
	c := Default()
	c.DisabledDetectors = []string{"ide"}
	if !c.IsDisabled("ide") {
		t.Error("a detector named in DisabledDetectors must be disabled")
	}
	if c.IsDisabled("project") {
		t.Error("unrelated detectors must remain enabled")
	}
}

func TestIsDisabledPositiveList(t *testing.T) {
	c := Default()
	c.EnabledDetectors = []string{"project", "packagecache"}
	if c.IsDisabled("project") {
		t.Error("a detector on the positive list must be enabled")
	}
	if !c.IsDisabled("container") {
		t.Error("a detector not on a non-empty positive list must be disabled")
	}
}

func TestIsDisabledNegativeListWinsOverPositiveList(t *testing.T) {
	c := Default()
	c.EnabledDetectors = []string{"project", "ide"}
	c.DisabledDetectors = []string{"ide"}
	if !c.IsDisabled("ide") {
		t.Error("the negative list must win when a detector appears on both lists")
	}
}

func TestDefaultUsesPlatformHomeAsRoot(t *testing.T) {
	c := Default()
	if len(c.Roots) != 1 || c.Roots[0] != c.Platform.Home() {
		t.Errorf("Default() Roots = %v, want [%s]", c.Roots, c.Platform.Home())
	}
}
