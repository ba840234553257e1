// ABOUTME: Chooses the snap position a released drag commits to
// ABOUTME: Projects the release offset by velocity and advances on decisive flicks

package drawer

import (
	"math"
	"time"
)

// SnapResolver picks a target position from a release offset and velocity
type SnapResolver struct {
	Table            *PositionTable
	PredictionWindow time.Duration
	MinimumVelocity  float64
}

// Resolve returns the position to settle at. velocity is in offset units
// per second; positive means moving toward closed.
func (r SnapResolver) Resolve(final, velocity float64) Position {
	projected := final + velocity*r.PredictionWindow.Seconds()
	baseline := r.Table.Nearest(projected)

	if baseline != r.Table.Nearest(final) || math.Abs(velocity) <= r.MinimumVelocity {
		return baseline
	}

	step := 1
	if velocity > 0 {
		step = -1
	}

	if next, ok := Advance(r.Table.Sorted(), baseline, step); ok {
		return next
	}

	return baseline
}
