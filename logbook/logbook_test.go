package logbook

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestLogbook(t *testing.T) *Logbook {
	t.Helper()
	lb, err := New(filepath.Join(t.TempDir(), "logs.txt"))
	if err != nil {
		t.Fatal(err)
	}
	lb.now = func() time.Time {
		return time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	}
	return lb
}

func TestStepAppendsFormattedLine(t *testing.T) {
	lb := newTestLogbook(t)
	lb.Step("brief", "The Last Flower")
	lb.Step("writer", "Unit R-7 crossed the ash plain")

	data, err := os.ReadFile(lb.Path())
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %v", lines)
	}
	if lines[0] != "2025-03-14T09:26:53Z | brief | The Last Flower" {
		t.Fatalf("line = %q", lines[0])
	}
}

func TestStepTruncatesSummary(t *testing.T) {
	lb := newTestLogbook(t)
	lb.Step("writer", strings.Repeat("word\n", 100))

	data, _ := os.ReadFile(lb.Path())
	line := strings.TrimRight(string(data), "\n")
	parts := strings.SplitN(line, " | ", 3)
	if len(parts) != 3 {
		t.Fatalf("line = %q", line)
	}
	if len([]rune(parts[2])) > 120 {
		t.Fatalf("summary too long: %d", len(parts[2]))
	}
	if strings.Contains(parts[2], "\n") {
		t.Fatal("summary must be single line")
	}
}

func TestTailReturnsMostRecent(t *testing.T) {
	lb := newTestLogbook(t)
	for _, s := range []string{"one", "two", "three"} {
		lb.Step("brief", s)
	}
	got := lb.Tail(2)
	if len(got) != 2 || !strings.HasSuffix(got[1], "three") {
		t.Fatalf("tail = %v", got)
	}
}

func TestTailMissingFileIsEmpty(t *testing.T) {
	lb := newTestLogbook(t)
	if got := lb.Tail(10); got != nil {
		t.Fatalf("tail = %v", got)
	}
}
