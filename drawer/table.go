// ABOUTME: Maps snap positions to offsets for a given container geometry
// ABOUTME: Enforces openness/offset monotonicity with a Collapsed-only fallback

package drawer

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// Geometry is the container state the table is computed from
type Geometry struct {
	// Height of the container bounds.
	Height float64
	// SafeAreaBottom is the bottom safe inset of the container.
	SafeAreaBottom float64
	// WindowGap is the distance between the container bottom and the
	// window bottom; it already covers part of the safe area.
	WindowGap float64
}

// PositionTable is the derived Position to offset mapping. Offsets are
// measured from the container's top edge; larger means more closed.
type PositionTable struct {
	cfg     Config
	geom    Geometry
	fitted  float64
	offsets [4]float64
	enabled []Position // ascending openness = descending offset
	err     error
}

// NewPositionTable computes offsets for cfg inside geom. fitted is the
// content height used when the open height mode is OpenFit; it is ignored
// otherwise or when not positive.
func NewPositionTable(cfg Config, geom Geometry, fitted float64) *PositionTable {
	t := &PositionTable{cfg: cfg, geom: geom, fitted: fitted}

	inset := t.BottomInset()
	h := geom.Height

	t.offsets[Closed] = h
	t.offsets[Collapsed] = h - inset - cfg.CollapsedHeight
	t.offsets[PartiallyOpen] = h - inset - cfg.PartiallyOpenHeight
	t.offsets[Open] = cfg.TopMargin
	if openHeight, ok := t.explicitOpenHeight(); ok {
		t.offsets[Open] = math.Max(cfg.TopMargin, h-inset-openHeight)
	}

	t.enabled, t.err = t.validate(cfg.Positions)
	if t.err != nil {
		t.enabled = []Position{Collapsed}
	}

	return t
}

func (t *PositionTable) explicitOpenHeight() (float64, bool) {
	switch t.cfg.OpenHeight.Mode {
	case OpenFixed:
		return t.cfg.OpenHeight.Height, true
	case OpenFit:
		if t.fitted > 0 {
			return t.fitted, true
		}
	}
	return 0, false
}

func (t *PositionTable) validate(positions []Position) ([]Position, error) {
	var enabled []Position
	for _, p := range positions {
		if p.Valid() && !containsPosition(enabled, p) {
			enabled = append(enabled, p)
		}
	}

	if len(enabled) == 0 {
		return nil, ErrNoPositions
	}

	slices.Sort(enabled)

	var errs []error
	for i := 1; i < len(enabled); i++ {
		less, more := enabled[i-1], enabled[i]
		if t.offsets[more] >= t.offsets[less] {
			errs = append(errs, fmt.Errorf("%w: %s at %.1f, %s at %.1f",
				ErrNonMonotonic, more, t.offsets[more], less, t.offsets[less]))
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return enabled, nil
}

// Err returns the validation failure that forced the fallback, if any
func (t *PositionTable) Err() error {
	return t.err
}

// Geometry returns the geometry the table was computed for
func (t *PositionTable) Geometry() Geometry {
	return t.geom
}

// BottomInset returns the inset subtracted from non-closed offsets
func (t *PositionTable) BottomInset() float64 {
	switch t.cfg.BottomInset.Mode {
	case InsetAutomatic:
		return math.Max(0, t.geom.SafeAreaBottom-t.geom.WindowGap)
	case InsetSafeArea:
		return t.geom.SafeAreaBottom
	case InsetFixed:
		return t.cfg.BottomInset.Value
	default:
		return 0
	}
}

// Offset returns the offset of p, whether or not p is enabled
func (t *PositionTable) Offset(p Position) float64 {
	if !p.Valid() {
		return t.offsets[Collapsed]
	}
	return t.offsets[p]
}

// Sorted returns the enabled positions by descending offset, most closed first
func (t *PositionTable) Sorted() []Position {
	return slices.Clone(t.enabled)
}

// Contains reports whether p is enabled
func (t *PositionTable) Contains(p Position) bool {
	return containsPosition(t.enabled, p)
}

// Topmost returns the most open enabled position
func (t *PositionTable) Topmost() Position {
	return t.enabled[len(t.enabled)-1]
}

// MostClosed returns the least open enabled position
func (t *PositionTable) MostClosed() Position {
	return t.enabled[0]
}

// Bounds returns the minimum and maximum enabled offsets
func (t *PositionTable) Bounds() (lo, hi float64) {
	return t.offsets[t.Topmost()], t.offsets[t.MostClosed()]
}

// Nearest returns the enabled position closest to offset. Ties go to the
// more closed position.
func (t *PositionTable) Nearest(offset float64) Position {
	best := t.enabled[0]
	bestDist := math.Abs(t.offsets[best] - offset)

	for _, p := range t.enabled[1:] {
		if d := math.Abs(t.offsets[p] - offset); d < bestDist {
			best, bestDist = p, d
		}
	}

	return best
}
