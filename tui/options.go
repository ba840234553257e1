// ABOUTME: TUI mode configuration and command-line options
// ABOUTME: Defines input parameters and injected dependencies for the TUI

package tui

import (
	"time"

	"drawerview/content"
)

// Options contains configuration for running the TUI
type Options struct {
	ConfigPath string // Config file saved on quit and reloaded on change
	Title      string // Heading shown behind the drawer
}

// Dependencies holds all external dependencies for the TUI
// This allows for clean dependency injection and easy testing
type Dependencies struct {
	ConfigProvider ConfigProvider
	Items          []content.Item
	Logger         Logger
	ConfigChanges  <-chan struct{}          // Debounced config file changes, may be nil
	CopyText       func(text string) error // Defaults to the system clipboard
	Now            func() time.Time        // Defaults to time.Now
}
