package cmd

import (
	"errors"
	"testing"
)

func TestExitCodeForDefaultsToRuntimeError(t *testing.T) {
	if got := exitCodeFor(errors.New("boom")); got != 2 {
		t.Errorf("exitCodeFor(plain error) = %d, want 2", got)
	}
}

func TestExitCodeForUserError(t *testing.T) {
	if got := exitCodeFor(userError("bad flag combination")); got != 1 {
		t.Errorf("exitCodeFor(userError) = %d, want 1", got)
	}
}

func TestExitCodeForRuntimeError(t *testing.T) {
	if got := exitCodeFor(runtimeError("scan failed")); got != 2 {
		t.Errorf("exitCodeFor(runtimeError) = %d, want 2", got)
	}
}

func TestCliErrorUnwraps(t *testing.T) {
	inner := errors.New("root cause")
	wrapped := &cliError{code: 1, err: inner}
	if !errors.Is(wrapped, inner) {
		t.Error("cliError must unwrap to its underlying error")
	}
}

func TestUserErrorFormatsMessage(t *testing.T) {
	err := userError("missing %s", "flag")
	if err.Error() != "missing flag" {
		t.Errorf("Error() = %q, want %q", err.Error(), "missing flag")
	}
}
