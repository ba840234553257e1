// ABOUTME: Thread-safe holder for the active drawer configuration
// ABOUTME: Shared between the TUI update loop and the config file watcher

package config

import "sync"

// SharedConfig guards a DrawerConfig for concurrent readers and writers
type SharedConfig struct {
	mu     sync.RWMutex
	config DrawerConfig
}

// NewSharedConfig returns a SharedConfig holding cfg
func NewSharedConfig(cfg DrawerConfig) *SharedConfig {
	return &SharedConfig{config: cfg}
}

// Get returns a copy of the current configuration
func (s *SharedConfig) Get() DrawerConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg := s.config
	cfg.Positions = append([]string(nil), s.config.Positions...)
	return cfg
}

// Update replaces the current configuration
func (s *SharedConfig) Update(cfg DrawerConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg.Positions = append([]string(nil), cfg.Positions...)
	s.config = cfg
}
