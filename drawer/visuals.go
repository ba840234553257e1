// ABOUTME: Visual parameters derived from the live drawer offset
// ABOUTME: Overlay alpha, shadow opacity and content alpha via breakpoint interpolation

package drawer

import "math"

// Visuals are recomputed on every offset change
type Visuals struct {
	// OverlayAlpha dims the content behind the drawer.
	OverlayAlpha float64
	// ShadowOpacity of the shadow cast above the drawer.
	ShadowOpacity float64
	// ContentAlpha applies to content below the collapsed strip. It reaches
	// 0 at Collapsed when a bottom inset is set and is 1 otherwise.
	ContentAlpha float64
}

func overlayFactor(cfg Config, table *PositionTable, p Position) (float64, bool) {
	switch cfg.Overlay {
	case OverlayTopmost:
		if p >= table.Topmost() {
			return 1, true
		}
		return 0, true
	case OverlayWhenOpen:
		if p == Open || p == PartiallyOpen {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

func computeVisuals(cfg Config, table *PositionTable, offset float64) Visuals {
	var overlay, shadow []Breakpoint

	for _, p := range AllPositions() {
		at := table.Offset(p)

		if factor, ok := overlayFactor(cfg, table, p); ok {
			overlay = append(overlay, Breakpoint{Position: at, Value: factor * cfg.OverlayOpacity})
		}

		value := cfg.ShadowOpacity
		if p == Closed {
			value = 0
		}
		shadow = append(shadow, Breakpoint{Position: at, Value: value})
	}

	v := Visuals{
		OverlayAlpha:  Interpolate(overlay, offset),
		ShadowOpacity: Interpolate(shadow, offset),
		ContentAlpha:  1,
	}

	if inset := table.BottomInset(); inset > 0 {
		alpha := (table.Offset(Collapsed) - offset) / inset
		v.ContentAlpha = math.Max(0, math.Min(1, alpha))
	}

	return v
}
