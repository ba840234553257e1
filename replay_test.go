// ABOUTME: Tests for the headless gesture replay
// ABOUTME: Verifies script parsing, trace output and the positions drags settle at

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"drawerview/config"
	"drawerview/drawer"
)

const dragScript = `
container:
  height: 40
  safe_area_bottom: 1
start: collapsed
steps:
  - phase: began
  - phase: changed
    translation: [0, -5]
    velocity: [0, -100]
    dt: 0.05
  - phase: changed
    translation: [0, -15]
    velocity: [0, -100]
    dt: 0.05
  - phase: ended
    translation: [0, -15]
    velocity: [0, 0]
`

func writeScript(t *testing.T, script string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "script.yaml")
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}
	return path
}

func defaultDrawerConfig(t *testing.T) drawer.Config {
	t.Helper()

	cfg, err := config.DefaultConfig().ToDrawer()
	if err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	return cfg
}

func TestReplayDragSettles(t *testing.T) {
	script, err := LoadReplay(writeScript(t, dragScript))
	if err != nil {
		t.Fatalf("LoadReplay failed: %v", err)
	}

	var out bytes.Buffer
	final, err := script.Run(defaultDrawerConfig(t), &out)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if final != drawer.PartiallyOpen {
		t.Errorf("final position = %s, want partiallyOpen", final)
	}

	trace := out.String()
	for _, want := range []string{"STEP", "begin drag", "end drag", "did partiallyOpen", "settle"} {
		if !strings.Contains(trace, want) {
			t.Errorf("trace missing %q:\n%s", want, trace)
		}
	}

	lines := strings.Split(strings.TrimSpace(trace), "\n")
	// Header, four steps, settle row
	if len(lines) != 6 {
		t.Errorf("trace has %d lines, want 6:\n%s", len(lines), trace)
	}
	if !strings.Contains(lines[3], "20.00") {
		t.Errorf("step 3 should track the finger at 20.00: %q", lines[3])
	}
	if !strings.Contains(lines[5], "27.00") {
		t.Errorf("settle row should rest at 27.00: %q", lines[5])
	}
}

func TestReplaySetPosition(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   drawer.Position
	}{
		{
			name: "immediate",
			script: `
container: {height: 40, safe_area_bottom: 1}
steps:
  - set_position: open
    animated: false
`,
			want: drawer.Open,
		},
		{
			name: "animated then wait",
			script: `
container: {height: 40, safe_area_bottom: 1}
start: open
steps:
  - set_position: partially_open
    dt: 2
  - dt: 0.5
`,
			want: drawer.PartiallyOpen,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script, err := LoadReplay(writeScript(t, tt.script))
			if err != nil {
				t.Fatalf("LoadReplay failed: %v", err)
			}

			var out bytes.Buffer
			final, err := script.Run(defaultDrawerConfig(t), &out)
			if err != nil {
				t.Fatalf("Run failed: %v", err)
			}
			if final != tt.want {
				t.Errorf("final position = %s, want %s", final, tt.want)
			}
		})
	}
}

func TestRunReplayPositionsOverride(t *testing.T) {
	script := strings.Replace(dragScript, "start: collapsed", "start: collapsed\npositions: [open, collapsed]", 1)

	var out bytes.Buffer
	if err := RunReplay(writeScript(t, script), config.DefaultConfig(), &out); err != nil {
		t.Fatalf("RunReplay failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	last := lines[len(lines)-1]
	// Without partially open, 20 is nearer collapsed (35) than open (2)
	if !strings.Contains(last, "collapsed") || !strings.Contains(last, "35.00") {
		t.Errorf("settle row = %q, want collapsed at 35.00", last)
	}
}

func TestReplayErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"missing container", "steps: []\n"},
		{"unknown phase", "container: {height: 40}\nsteps:\n  - phase: wobble\n"},
		{"unknown position", "container: {height: 40}\nsteps:\n  - set_position: sideways\n"},
		{"unknown start", "container: {height: 40}\nstart: nowhere\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RunReplay(writeScript(t, tt.script), config.DefaultConfig(), &bytes.Buffer{})
			if !errors.Is(err, ErrInvalidReplay) {
				t.Errorf("error = %v, want ErrInvalidReplay", err)
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadReplay(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("expected an error for a missing file")
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		if _, err := LoadReplay(writeScript(t, "container: [\n")); err == nil {
			t.Error("expected a parse error")
		}
	})
}

func TestSplitPositions(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"open,collapsed", []string{"open", "collapsed"}},
		{" open , partially_open ,, collapsed ", []string{"open", "partially_open", "collapsed"}},
		{"", nil},
	}

	for _, tt := range tests {
		got := splitPositions(tt.input)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("splitPositions(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLoadContentSamples(t *testing.T) {
	items, err := LoadContent("")
	if err != nil {
		t.Fatalf("LoadContent failed: %v", err)
	}
	if len(items) != sampleItemCount {
		t.Errorf("got %d sample items, want %d", len(items), sampleItemCount)
	}

	if _, err := LoadContent(filepath.Join(t.TempDir(), "missing.m3u8")); err == nil {
		t.Error("expected an error for a missing playlist")
	}
}
