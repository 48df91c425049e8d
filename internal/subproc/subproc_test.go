package subproc

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRunReturnsStdout(t *testing.T) {
	out, err := Run(context.Background(), time.Second, "echo", "-n", "hello")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if string(out) != "hello" {
		t.Errorf("out = %q, want %q", out, "hello")
	}
}

func TestRunTimesOutAndKills(t *testing.T) {
	_, err := Run(context.Background(), 50*time.Millisecond, "sleep", "5")
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("err = %v, want ErrTimeout", err)
	}
}

func TestRunRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	_, err := Run(ctx, 5*time.Second, "sleep", "5")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestRunSurfacesNonZeroExit(t *testing.T) {
	_, err := Run(context.Background(), time.Second, "false")
	if err == nil {
		t.Error("expected an error for a nonzero exit code")
	}
}

func TestRunSurfacesMissingBinary(t *testing.T) {
	_, err := Run(context.Background(), time.Second, "heft-definitely-not-a-real-binary")
	if err == nil {
		t.Error("expected an error for a nonexistent binary")
	}
}
