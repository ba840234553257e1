// ABOUTME: Piecewise-linear lookup over (offset, value) breakpoints
// ABOUTME: Backs overlay, shadow and content alpha derived from the live offset

package drawer

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/interp"
)

// Breakpoint pins Value at Position
type Breakpoint struct {
	Position float64
	Value    float64
}

// Interpolate evaluates the piecewise-linear curve through breakpoints at
// the given position. Outside the covered range the nearest end value is
// returned; with no breakpoints the result is 0. When several breakpoints
// share a position the last one given wins.
func Interpolate(breakpoints []Breakpoint, at float64) float64 {
	if len(breakpoints) == 0 {
		return 0
	}

	sorted := slices.Clone(breakpoints)
	slices.SortStableFunc(sorted, func(a, b Breakpoint) int {
		return cmp.Compare(a.Position, b.Position)
	})

	xs := make([]float64, 0, len(sorted))
	ys := make([]float64, 0, len(sorted))
	for _, bp := range sorted {
		if n := len(xs); n > 0 && xs[n-1] == bp.Position {
			ys[n-1] = bp.Value
			continue
		}
		xs = append(xs, bp.Position)
		ys = append(ys, bp.Value)
	}

	if len(xs) == 1 {
		return ys[0]
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		return 0
	}

	return pl.Predict(at)
}
