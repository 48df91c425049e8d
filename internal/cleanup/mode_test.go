package cleanup

import "testing"

func TestResolveMode(t *testing.T) {
	tests := []struct {
		name           string
		dryRun, yes    bool
		wantMode       Mode
		wantErr        error
	}{
		{"default", false, false, Interactive, nil},
		{"dry run", true, false, DryRun, nil},
		{"yes", false, true, Yes, nil},
		{"conflicting", true, true, Interactive, ErrConflictingModes},
	}
	for _, tt := range tests {
		mode, err := ResolveMode(tt.dryRun, tt.yes)
		if mode != tt.wantMode || err != tt.wantErr {
			t.Errorf("%s: ResolveMode(%v, %v) = (%v, %v), want (%v, %v)", tt.name, tt.dryRun, tt.yes, mode, err, tt.wantMode, tt.wantErr)
		}
	}
}
