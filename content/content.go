// ABOUTME: Rows shown inside the drawer, read from a playlist's audio tags
// ABOUTME: Reads tags concurrently on a worker pool and keeps playlist order

// Package content supplies the list rows displayed in the drawer. Rows come
// from an M3U/M3U8 playlist whose audio files are tagged, or from a built-in
// sample set when no playlist is given.
package content

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"drawerview/pool"

	"github.com/dhowden/tag"
)

// Item is one row of drawer content
type Item struct {
	Path   string
	Title  string
	Artist string
	Album  string
	Genre  string
	Year   int
}

// Label is the single-line text used for display, search and copying
func (i Item) Label() string {
	if i.Artist == "" {
		return i.Title
	}
	return i.Artist + " - " + i.Title
}

// ReadPlaylist returns the entries of an M3U/M3U8 file, skipping blank
// lines and comments
func ReadPlaylist(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open playlist: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	var entries []string

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading playlist: %w", err)
	}

	return entries, nil
}

// ReadItem reads the tags of one audio file. Relative paths are resolved
// against baseDir.
func ReadItem(entry, baseDir string) (*Item, error) {
	fullPath := entry
	if !filepath.IsAbs(entry) && baseDir != "" {
		fullPath = filepath.Join(baseDir, entry)
	}

	file, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	metadata, err := tag.ReadFrom(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	title := metadata.Title()
	if title == "" {
		base := filepath.Base(entry)
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	return &Item{
		Path:   entry,
		Title:  title,
		Artist: metadata.Artist(),
		Album:  metadata.Album(),
		Genre:  metadata.Genre(),
		Year:   metadata.Year(),
	}, nil
}

// LoadPlaylist reads every entry's tags in parallel. Entries whose files
// cannot be read are skipped and reported through debugf. workers <= 0
// uses one worker per CPU.
func LoadPlaylist(path string, workers int, debugf func(string, ...interface{})) ([]Item, error) {
	if debugf == nil {
		debugf = func(string, ...interface{}) {}
	}

	entries, err := ReadPlaylist(path)
	if err != nil {
		return nil, err
	}

	baseDir := filepath.Dir(path)

	p := pool.NewWorkerPool(workers, len(entries))
	results := pool.Map(p, entries, func(entry string) *Item {
		item, err := ReadItem(entry, baseDir)
		if err != nil {
			debugf("[CONTENT] Skipping %s: %v", entry, err)
			return nil
		}
		return item
	})
	p.Close()

	items := make([]Item, 0, len(results))
	for _, item := range results {
		if item != nil {
			items = append(items, *item)
		}
	}

	debugf("[CONTENT] Loaded %d/%d entries from %s", len(items), len(entries), path)

	return items, nil
}

var sampleArtists = []string{
	"Aperio", "Bonobo", "Caribou", "Daphni", "Four Tet", "Jon Hopkins", "Kiasmos", "Moderat",
}

var sampleWords = []string{
	"Morning", "Signal", "Harbour", "Glass", "Orbit", "Tide", "Ember", "Lantern", "Drift", "Meridian",
}

// SampleItems returns n generated rows for running without a playlist
func SampleItems(n int) []Item {
	items := make([]Item, n)
	for i := range items {
		artist := sampleArtists[i%len(sampleArtists)]
		first := sampleWords[i%len(sampleWords)]
		second := sampleWords[(i*3+1)%len(sampleWords)]
		items[i] = Item{
			Path:   fmt.Sprintf("sample/%02d.mp3", i+1),
			Title:  fmt.Sprintf("%s %s", first, second),
			Artist: artist,
			Album:  "Samples",
			Year:   2000 + i%25,
		}
	}
	return items
}
