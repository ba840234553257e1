// ABOUTME: Tests for playlist reading and drawer row generation
// ABOUTME: Verifies comment handling, skipped files and sample rows

package content

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestReadPlaylist(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		expectCount int
	}{
		{
			name:        "simple playlist",
			content:     "Artist/Album/01 Track.mp3\nArtist/Album/02 Track.mp3\n",
			expectCount: 2,
		},
		{
			name:        "with comments",
			content:     "#EXTM3U\n# comment\nArtist/Album/01 Track.mp3\n",
			expectCount: 1,
		},
		{
			name:        "with empty lines",
			content:     "a.mp3\n\n   \nb.mp3\n\n",
			expectCount: 2,
		},
		{
			name:        "empty file",
			content:     "",
			expectCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "list.m3u8")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			entries, err := ReadPlaylist(path)
			if err != nil {
				t.Fatalf("ReadPlaylist failed: %v", err)
			}
			if len(entries) != tt.expectCount {
				t.Errorf("got %d entries, want %d", len(entries), tt.expectCount)
			}
		})
	}
}

func TestReadPlaylistMissing(t *testing.T) {
	_, err := ReadPlaylist("/nonexistent/list.m3u8")
	if err == nil || !strings.Contains(err.Error(), "failed to open playlist") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadPlaylistSkipsUnreadable(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "not-audio.mp3"), []byte("plain text"), 0644); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "list.m3u8")
	content := "#EXTM3U\nnot-audio.mp3\nmissing.mp3\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	var mu sync.Mutex
	var skipped int
	items, err := LoadPlaylist(path, 2, func(format string, args ...interface{}) {
		mu.Lock()
		defer mu.Unlock()
		if strings.HasPrefix(format, "[CONTENT] Skipping") {
			skipped++
		}
	})
	if err != nil {
		t.Fatalf("LoadPlaylist failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("got %d items from unreadable files", len(items))
	}
	if skipped != 2 {
		t.Errorf("skipped %d entries, want 2", skipped)
	}
}

func TestSampleItems(t *testing.T) {
	items := SampleItems(30)
	if len(items) != 30 {
		t.Fatalf("got %d items, want 30", len(items))
	}

	seen := make(map[string]bool)
	for _, item := range items {
		if item.Title == "" || item.Artist == "" {
			t.Errorf("incomplete sample item %+v", item)
		}
		seen[item.Path] = true
	}
	if len(seen) != 30 {
		t.Errorf("sample paths not unique: %d distinct", len(seen))
	}
}

func TestItemLabel(t *testing.T) {
	if got := (Item{Title: "Solo"}).Label(); got != "Solo" {
		t.Errorf("Label() = %q", got)
	}
	if got := (Item{Title: "Kong", Artist: "Bonobo"}).Label(); got != "Bonobo - Kong" {
		t.Errorf("Label() = %q", got)
	}
}
