package cli

import (
	"bytes"
	"strings"
	"testing"
)

func captureStatus(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := statusOut
	statusOut = &buf
	t.Cleanup(func() { statusOut = old })
	return &buf
}

func TestPlural(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 circles"},
		{1, "1 circle"},
		{11, "11 circles"},
	}
	for _, tt := range tests {
		if got := plural(tt.n, "circle"); got != tt.want {
			t.Errorf("plural(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestPrintStats(t *testing.T) {
	buf := captureStatus(t)

	printStats(120, 4, 1, true)
	printStats(45, 0, 2, false)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), buf)
	}
	for _, want := range []string{"d=120", "4 circles", "1 line", "cached"} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("first line %q missing %q", lines[0], want)
		}
	}
	if !strings.Contains(lines[1], "fresh") {
		t.Errorf("second line %q missing %q", lines[1], "fresh")
	}
}

func TestPrintLink(t *testing.T) {
	buf := captureStatus(t)

	printLink("Share", "https://circlet.example/?t=abc")
	if !strings.Contains(buf.String(), "https://circlet.example/?t=abc") {
		t.Errorf("output %q missing URL", buf)
	}
}
