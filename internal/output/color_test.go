package output

import (
	"bytes"
	"os"
	"testing"
)

func TestNewColorScheme(t *testing.T) {
	tests := []struct {
		name    string
		noColor bool
	}{
		{name: "colors disabled with noColor flag", noColor: true},
		{name: "colors disabled for non-TTY", noColor: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := NewColorScheme(&bytes.Buffer{}, tt.noColor)
			if !cs.Disabled {
				t.Error("expected colors to be disabled")
			}
			if got := cs.Job("job-%d", 1); got != "job-1" {
				t.Errorf("Job() = %q, want plain text", got)
			}
		})
	}
}

func TestColorScheme_StatusColor(t *testing.T) {
	cs := NewColorScheme(&bytes.Buffer{}, true)

	if got := cs.StatusColor(false)("%s", "ok"); got != "ok" {
		t.Errorf("StatusColor(false) = %q", got)
	}
	if got := cs.StatusColor(true)("%s", "bad"); got != "bad" {
		t.Errorf("StatusColor(true) = %q", got)
	}
}

func TestIsTTY(t *testing.T) {
	if isTTY(&bytes.Buffer{}) {
		t.Error("bytes.Buffer should not be a TTY")
	}

	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if isTTY(f) {
		t.Error("regular file should not be a TTY")
	}
}
