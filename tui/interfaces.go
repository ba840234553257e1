// ABOUTME: Interfaces defining dependencies for the TUI package
// ABOUTME: Allows clean separation and easy testing with mocks

package tui

import "drawerview/config"

// ConfigProvider provides thread-safe access to the drawer configuration
type ConfigProvider interface {
	Get() config.DrawerConfig
	Update(cfg config.DrawerConfig)
}

// Logger provides debug logging capability
type Logger interface {
	Debugf(format string, args ...interface{})
}
