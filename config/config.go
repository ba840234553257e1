// ABOUTME: Configuration management for drawer sizing, physics and visuals
// ABOUTME: Handles loading/saving TOML or YAML config files with fallback to defaults

package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"drawerview/drawer"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrUnknownMode is returned for an unrecognized policy name
var ErrUnknownMode = errors.New("unknown mode")

// DrawerConfig holds the user-tunable drawer parameters as stored on disk.
// Sizes are in terminal rows.
type DrawerConfig struct {
	// Sizing
	TopMargin           float64  `toml:"top_margin" yaml:"top_margin"`
	CollapsedHeight     float64  `toml:"collapsed_height" yaml:"collapsed_height"`
	PartiallyOpenHeight float64  `toml:"partially_open_height" yaml:"partially_open_height"`
	OpenHeightMode      string   `toml:"open_height_mode" yaml:"open_height_mode"` // fill, fixed, fit
	OpenHeight          float64  `toml:"open_height" yaml:"open_height"`
	Positions           []string `toml:"positions" yaml:"positions"`
	InsetMode           string   `toml:"inset_mode" yaml:"inset_mode"` // automatic, safe_area, fixed, none
	InsetValue          float64  `toml:"inset_value" yaml:"inset_value"`

	// Physics
	DampingRatio      float64 `toml:"damping_ratio" yaml:"damping_ratio"`
	SettleSeconds     float64 `toml:"settle_seconds" yaml:"settle_seconds"`
	CatchUpSeconds    float64 `toml:"catch_up_seconds" yaml:"catch_up_seconds"`
	MinimumVelocity   float64 `toml:"minimum_velocity" yaml:"minimum_velocity"`
	PredictionSeconds float64 `toml:"prediction_seconds" yaml:"prediction_seconds"`
	RubberBand        float64 `toml:"rubber_band" yaml:"rubber_band"`

	// Visuals
	Overlay               string  `toml:"overlay" yaml:"overlay"` // topmost, when_open, disabled
	OverlayOpacity        float64 `toml:"overlay_opacity" yaml:"overlay_opacity"`
	ShadowOpacity         float64 `toml:"shadow_opacity" yaml:"shadow_opacity"`
	ChildScrollCanDismiss bool    `toml:"child_scroll_can_dismiss" yaml:"child_scroll_can_dismiss"`
}

// GetConfigPath returns the default config file path
// First tries current directory, then falls back to ~/.config/drawerview/config.toml
func GetConfigPath() string {
	if _, err := os.Stat("./drawerview.toml"); err == nil {
		return "./drawerview.toml"
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "./drawerview.toml"
	}

	return filepath.Join(home, ".config", "drawerview", "config.toml")
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// LoadConfig loads configuration from a TOML or YAML file (chosen by
// extension). Fields missing from the file keep their defaults. If the file
// doesn't exist, returns the default config.
func LoadConfig(path string) (DrawerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if isYAML(path) {
		err = yaml.Unmarshal(data, &config)
	} else {
		err = toml.Unmarshal(data, &config)
	}
	if err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves configuration to a TOML or YAML file
func SaveConfig(path string, config DrawerConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Round to UI precision so repeated saves don't accumulate float noise
	config = roundConfigPrecision(config)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			fmt.Printf("Warning: failed to close config file: %v\n", err)
		}
	}()

	if isYAML(path) {
		encoder := yaml.NewEncoder(f)
		defer encoder.Close()
		err = encoder.Encode(config)
	} else {
		err = toml.NewEncoder(f).Encode(config)
	}
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// DefaultConfig returns the default configuration sized for a terminal
func DefaultConfig() DrawerConfig {
	return DrawerConfig{
		TopMargin:             2,
		CollapsedHeight:       4,
		PartiallyOpenHeight:   12,
		OpenHeightMode:        "fill",
		Positions:             []string{"open", "partially_open", "collapsed"},
		InsetMode:             "automatic",
		DampingRatio:          0.8,
		SettleSeconds:         0.5,
		CatchUpSeconds:        0.2,
		MinimumVelocity:       4,
		PredictionSeconds:     0.1,
		RubberBand:            4,
		Overlay:               "topmost",
		OverlayOpacity:        0.5,
		ShadowOpacity:         0.6,
		ChildScrollCanDismiss: true,
	}
}

// ToDrawer converts the file form into an engine configuration
func (c DrawerConfig) ToDrawer() (drawer.Config, error) {
	var errs []error

	positions := make([]drawer.Position, 0, len(c.Positions))
	for _, name := range c.Positions {
		p, err := drawer.ParsePosition(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		positions = append(positions, p)
	}

	openMode, err := parseOpenHeightMode(c.OpenHeightMode)
	if err != nil {
		errs = append(errs, err)
	}
	insetMode, err := parseInsetMode(c.InsetMode)
	if err != nil {
		errs = append(errs, err)
	}
	overlay, err := parseOverlay(c.Overlay)
	if err != nil {
		errs = append(errs, err)
	}

	cfg := drawer.Config{
		TopMargin:             c.TopMargin,
		CollapsedHeight:       c.CollapsedHeight,
		PartiallyOpenHeight:   c.PartiallyOpenHeight,
		OpenHeight:            drawer.OpenHeightPolicy{Mode: openMode, Height: c.OpenHeight},
		Positions:             positions,
		BottomInset:           drawer.InsetPolicy{Mode: insetMode, Value: c.InsetValue},
		DampingRatio:          c.DampingRatio,
		SettleDuration:        seconds(c.SettleSeconds),
		CatchUpDuration:       seconds(c.CatchUpSeconds),
		MinimumVelocity:       c.MinimumVelocity,
		PredictionWindow:      seconds(c.PredictionSeconds),
		RubberBand:            c.RubberBand,
		Overlay:               overlay,
		OverlayOpacity:        c.OverlayOpacity,
		ShadowOpacity:         c.ShadowOpacity,
		ChildScrollCanDismiss: c.ChildScrollCanDismiss,
	}

	if len(errs) > 0 {
		return cfg, fmt.Errorf("invalid drawer config: %w", errors.Join(errs...))
	}

	return cfg, nil
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func normalizeMode(s string) string {
	return strings.ToLower(strings.NewReplacer("-", "_", " ", "_").Replace(strings.TrimSpace(s)))
}

func parseOpenHeightMode(s string) (drawer.OpenHeightMode, error) {
	switch normalizeMode(s) {
	case "", "fill":
		return drawer.OpenFill, nil
	case "fixed":
		return drawer.OpenFixed, nil
	case "fit":
		return drawer.OpenFit, nil
	}
	return drawer.OpenFill, fmt.Errorf("%w: open height %q", ErrUnknownMode, s)
}

func parseInsetMode(s string) (drawer.InsetMode, error) {
	switch normalizeMode(s) {
	case "", "automatic":
		return drawer.InsetAutomatic, nil
	case "safe_area":
		return drawer.InsetSafeArea, nil
	case "fixed":
		return drawer.InsetFixed, nil
	case "none":
		return drawer.InsetNone, nil
	}
	return drawer.InsetAutomatic, fmt.Errorf("%w: inset %q", ErrUnknownMode, s)
}

func parseOverlay(s string) (drawer.OverlayBehavior, error) {
	switch normalizeMode(s) {
	case "", "topmost":
		return drawer.OverlayTopmost, nil
	case "when_open":
		return drawer.OverlayWhenOpen, nil
	case "disabled":
		return drawer.OverlayDisabled, nil
	}
	return drawer.OverlayTopmost, fmt.Errorf("%w: overlay %q", ErrUnknownMode, s)
}

// roundConfigPrecision rounds all float64 fields to 2 decimal places
func roundConfigPrecision(config DrawerConfig) DrawerConfig {
	round := func(x float64) float64 {
		return math.Round(x*100) / 100
	}

	config.TopMargin = round(config.TopMargin)
	config.CollapsedHeight = round(config.CollapsedHeight)
	config.PartiallyOpenHeight = round(config.PartiallyOpenHeight)
	config.OpenHeight = round(config.OpenHeight)
	config.InsetValue = round(config.InsetValue)
	config.DampingRatio = round(config.DampingRatio)
	config.SettleSeconds = round(config.SettleSeconds)
	config.CatchUpSeconds = round(config.CatchUpSeconds)
	config.MinimumVelocity = round(config.MinimumVelocity)
	config.PredictionSeconds = round(config.PredictionSeconds)
	config.RubberBand = round(config.RubberBand)
	config.OverlayOpacity = round(config.OverlayOpacity)
	config.ShadowOpacity = round(config.ShadowOpacity)

	return config
}
