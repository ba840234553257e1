// ABOUTME: Shared initialization code for all modes (TUI, replay)
// ABOUTME: Provides debug logging, row loading and position list parsing

package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"drawerview/content"
)

const (
	debugLogFile    = "drawerview-debug.log"
	sampleItemCount = 40
)

var debugLog *log.Logger

// debugLogger adapts debugf to the Logger interfaces of the tui and drawer packages
type debugLogger struct{}

func (debugLogger) Debugf(format string, args ...interface{}) {
	debugf(format, args...)
}

// SetupDebugLog initializes debug logging
func SetupDebugLog(filename string) error {
	if err := InitDebugLog(filename); err != nil {
		return fmt.Errorf("failed to initialize debug log: %w", err)
	}

	if filename == debugLogFile {
		fileInfo, _ := os.Stdout.Stat()
		if fileInfo != nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
			fmt.Printf("Debug logging enabled: %s\n", filename)
		}
	}

	return nil
}

// InitDebugLog initializes debug logging
func InitDebugLog(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create debug log file: %w", err)
	}

	debugLog = log.New(f, "", log.Ltime|log.Lmicroseconds)

	return nil
}

// debugf logs debug messages if enabled
func debugf(format string, args ...interface{}) {
	if debugLog != nil {
		debugLog.Printf(format, args...)
	}
}

// LoadContent loads the drawer rows from a playlist, or generates sample
// rows when no playlist is given
func LoadContent(playlistPath string) ([]content.Item, error) {
	if playlistPath == "" {
		return content.SampleItems(sampleItemCount), nil
	}

	items, err := content.LoadPlaylist(playlistPath, 0, debugf)
	if err != nil {
		return nil, fmt.Errorf("failed to load playlist: %w", err)
	}

	if len(items) == 0 {
		return nil, errors.New("playlist has no readable entries")
	}

	return items, nil
}

// splitPositions parses a comma separated position list from the command line
func splitPositions(s string) []string {
	var positions []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			positions = append(positions, part)
		}
	}
	return positions
}
