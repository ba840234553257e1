// ABOUTME: Drawer configuration record with sizing, physics and visual parameters
// ABOUTME: Defines defaults, sizing policies and validation sentinel errors

package drawer

import (
	"errors"
	"fmt"
	"time"
)

// Validation sentinels. The engine logs these and falls back to a
// Collapsed-only position set; they never abort a host.
var (
	ErrNoPositions     = errors.New("no enabled positions")
	ErrNonMonotonic    = errors.New("position offsets not monotonic with openness")
	ErrUnknownPosition = errors.New("unknown position")
	ErrInvalidPhysics  = errors.New("invalid physics parameter")
)

// OpenHeightMode selects how the Open offset is derived
type OpenHeightMode int

const (
	// OpenFill places Open at the top margin.
	OpenFill OpenHeightMode = iota
	// OpenFixed uses OpenHeightPolicy.Height.
	OpenFixed
	// OpenFit asks the content sizer for a height.
	OpenFit
)

// OpenHeightPolicy describes the height of the drawer at Open
type OpenHeightPolicy struct {
	Mode   OpenHeightMode
	Height float64
}

// InsetMode selects how the bottom inset is computed
type InsetMode int

const (
	// InsetAutomatic uses the part of the safe area not already covered by
	// the gap between container and window bottoms.
	InsetAutomatic InsetMode = iota
	// InsetSafeArea uses the container's safe area bottom directly.
	InsetSafeArea
	// InsetFixed uses InsetPolicy.Value.
	InsetFixed
	// InsetNone disables the inset.
	InsetNone
)

// InsetPolicy describes the bottom inset applied to non-closed positions
type InsetPolicy struct {
	Mode  InsetMode
	Value float64
}

// OverlayBehavior selects at which positions the background overlay shows
type OverlayBehavior int

const (
	// OverlayTopmost shows the overlay at the topmost enabled position and
	// anything more open than it.
	OverlayTopmost OverlayBehavior = iota
	// OverlayWhenOpen shows the overlay at PartiallyOpen and Open.
	OverlayWhenOpen
	// OverlayDisabled never shows the overlay.
	OverlayDisabled
)

// Spring parameters for one settling transition
type Spring struct {
	DampingRatio float64
	Duration     time.Duration
}

// Config holds everything that shapes a drawer. Values are copied on use;
// mutate through Drawer.SetConfig.
type Config struct {
	TopMargin           float64
	CollapsedHeight     float64
	PartiallyOpenHeight float64
	OpenHeight          OpenHeightPolicy
	Positions           []Position
	BottomInset         InsetPolicy

	DampingRatio     float64
	SettleDuration   time.Duration
	CatchUpDuration  time.Duration
	MinimumVelocity  float64
	PredictionWindow time.Duration
	RubberBand       float64

	Overlay               OverlayBehavior
	OverlayOpacity        float64
	ShadowOpacity         float64
	ChildScrollCanDismiss bool
}

// DefaultConfig returns the stock configuration, measured in points
func DefaultConfig() Config {
	return Config{
		TopMargin:             68,
		CollapsedHeight:       68,
		PartiallyOpenHeight:   264,
		OpenHeight:            OpenHeightPolicy{Mode: OpenFill},
		Positions:             []Position{Open, PartiallyOpen, Collapsed},
		BottomInset:           InsetPolicy{Mode: InsetAutomatic},
		DampingRatio:          0.8,
		SettleDuration:        500 * time.Millisecond,
		CatchUpDuration:       200 * time.Millisecond,
		MinimumVelocity:       0,
		PredictionWindow:      10 * time.Millisecond,
		RubberBand:            20,
		Overlay:               OverlayTopmost,
		OverlayOpacity:        0.5,
		ShadowOpacity:         0.05,
		ChildScrollCanDismiss: true,
	}
}

// Validate checks the parts of the configuration that do not depend on
// container geometry. Offset monotonicity is checked by PositionTable.
func (c Config) Validate() error {
	var errs []error

	if len(c.Positions) == 0 {
		errs = append(errs, ErrNoPositions)
	}

	for _, p := range c.Positions {
		if !p.Valid() {
			errs = append(errs, fmt.Errorf("%w: %d", ErrUnknownPosition, int(p)))
		}
	}

	if c.DampingRatio <= 0 {
		errs = append(errs, fmt.Errorf("%w: damping ratio %.2f", ErrInvalidPhysics, c.DampingRatio))
	}
	if c.SettleDuration <= 0 {
		errs = append(errs, fmt.Errorf("%w: settle duration %v", ErrInvalidPhysics, c.SettleDuration))
	}
	if c.CatchUpDuration <= 0 {
		errs = append(errs, fmt.Errorf("%w: catch-up duration %v", ErrInvalidPhysics, c.CatchUpDuration))
	}
	if c.RubberBand <= 0 {
		errs = append(errs, fmt.Errorf("%w: rubber band factor %.2f", ErrInvalidPhysics, c.RubberBand))
	}

	return errors.Join(errs...)
}

// sanitized returns a copy with physics parameters that cannot drive a
// spring replaced by defaults.
func (c Config) sanitized() Config {
	def := DefaultConfig()

	if c.DampingRatio <= 0 {
		c.DampingRatio = def.DampingRatio
	}
	if c.SettleDuration <= 0 {
		c.SettleDuration = def.SettleDuration
	}
	if c.CatchUpDuration <= 0 {
		c.CatchUpDuration = def.CatchUpDuration
	}
	if c.RubberBand <= 0 {
		c.RubberBand = def.RubberBand
	}
	if c.PredictionWindow < 0 {
		c.PredictionWindow = 0
	}

	c.Positions = append([]Position(nil), c.Positions...)

	return c
}

func (c Config) settleSpring() Spring {
	return Spring{DampingRatio: c.DampingRatio, Duration: c.SettleDuration}
}

func (c Config) catchUpSpring() Spring {
	return Spring{DampingRatio: 1, Duration: c.CatchUpDuration}
}
