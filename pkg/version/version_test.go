package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	info := Get()

	if info.Version == "" {
		t.Error("Version should not be empty")
	}

	if info.Commit == "" {
		t.Error("Commit should not be empty")
	}

	if info.GoVersion == "" {
		t.Error("GoVersion should not be empty")
	}

	expectedPlatform := runtime.GOOS + "/" + runtime.GOARCH
	if info.Platform != expectedPlatform {
		t.Errorf("Platform = %s, want %s", info.Platform, expectedPlatform)
	}
}

func TestString(t *testing.T) {
	info := Get()
	output := info.String()

	if !strings.Contains(output, "Batchrun CLI") {
		t.Error("String output should contain 'Batchrun CLI'")
	}

	if !strings.Contains(output, info.Version) {
		t.Errorf("String output should contain version %s", info.Version)
	}

	if !strings.Contains(output, info.Commit) {
		t.Errorf("String output should contain commit %s", info.Commit)
	}
}

func TestRows(t *testing.T) {
	info := Info{Version: "1.2.3", Commit: "abc", BuildTime: "now", GoVersion: "go1.25", Platform: "linux/amd64"}

	rows := info.Rows()
	if len(rows) != 5 {
		t.Fatalf("got %d rows, want 5", len(rows))
	}
	for _, row := range rows {
		if len(row) != len(info.Headers()) {
			t.Errorf("row %v has %d columns, want %d", row, len(row), len(info.Headers()))
		}
	}
	if rows[0][1] != "1.2.3" || rows[4][1] != "linux/amd64" {
		t.Errorf("unexpected rows %v", rows)
	}
}
