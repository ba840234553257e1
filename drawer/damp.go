// ABOUTME: Logarithmic rubber-band resistance applied beyond the snap bounds
// ABOUTME: Damp grows sublinearly so overscroll gives early and stiffens quickly

package drawer

import "math"

// Damp returns the resisted distance for an excess v with factor k.
// Damp(0, k) is 0 and the curve is strictly increasing and sublinear.
func Damp(v, k float64) float64 {
	if v <= 0 || k <= 0 {
		return 0
	}

	base := k / math.Ln10
	return k * (math.Log10(v+base) - math.Log10(base))
}

// RubberBand clamps candidate into [lo, hi] softly: the excess beyond the
// nearest bound is replaced by its damped value.
func RubberBand(candidate, lo, hi, k float64) float64 {
	switch {
	case candidate < lo:
		return lo - Damp(lo-candidate, k)
	case candidate > hi:
		return hi + Damp(candidate-hi, k)
	default:
		return candidate
	}
}
