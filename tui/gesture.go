// ABOUTME: Pointer velocity estimation for mouse-driven drags
// ABOUTME: Tracks recent pointer samples and reports cells per second

package tui

import (
	"time"

	"drawerview/drawer"
)

// velocityWindow is how far back the tracker looks when estimating velocity
const velocityWindow = 100 * time.Millisecond

type pointerSample struct {
	at   time.Time
	x, y float64
}

// VelocityTracker estimates pointer velocity from recent samples
type VelocityTracker struct {
	window  time.Duration
	samples []pointerSample
}

// NewVelocityTracker creates a tracker looking back over window
func NewVelocityTracker(window time.Duration) *VelocityTracker {
	return &VelocityTracker{window: window}
}

// Reset drops all samples
func (v *VelocityTracker) Reset() {
	v.samples = v.samples[:0]
}

// Add records a pointer position and drops samples older than the window.
// The two newest samples are always kept so slow drags still report motion.
func (v *VelocityTracker) Add(at time.Time, x, y float64) {
	v.samples = append(v.samples, pointerSample{at: at, x: x, y: y})

	cutoff := at.Add(-v.window)
	drop := 0
	for drop < len(v.samples)-2 && v.samples[drop].at.Before(cutoff) {
		drop++
	}
	v.samples = v.samples[drop:]
}

// Velocity returns the average velocity across the window in cells per
// second. Zero with fewer than two samples or no elapsed time.
func (v *VelocityTracker) Velocity() drawer.Vec2 {
	if len(v.samples) < 2 {
		return drawer.Vec2{}
	}

	first := v.samples[0]
	last := v.samples[len(v.samples)-1]

	dt := last.at.Sub(first.at).Seconds()
	if dt <= 0 {
		return drawer.Vec2{}
	}

	return drawer.Vec2{
		X: (last.x - first.x) / dt,
		Y: (last.y - first.y) / dt,
	}
}

// dragTarget identifies which panel a pointer drag drives
type dragTarget int

const (
	targetNone dragTarget = iota
	targetDrawer
	targetSheet
)

// pointerState tracks one mouse press through its release
type pointerState struct {
	target         dragTarget
	startX, startY int
	lastY          int
	inList         bool
	tracker        *VelocityTracker
}

func (p pointerState) active() bool {
	return p.target != targetNone
}
