// ABOUTME: Interruptible damped-spring animation of the drawer offset
// ABOUTME: Steps a harmonica spring on a fixed timestep and guards completions by generation

package drawer

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

const (
	frameRate      = 60
	frameDuration  = time.Second / frameRate
	settleDistance = 0.01
	settleSpeed    = 0.1
	// A transition that has not settled after this many durations snaps.
	settleLimitFactor = 4
)

type motionState int

const (
	motionIdle motionState = iota
	motionAnimating
)

// MotionController owns the single running transition of an offset.
// Starting a new transition supersedes the running one.
type MotionController struct {
	state motionState

	current  float64
	velocity float64
	start    float64
	target   float64

	spring      harmonica.Spring
	elapsed     time.Duration
	limit       time.Duration
	accumulator time.Duration

	generation uint64
	completion func(finished bool)
}

// NewMotionController returns an idle controller resting at offset
func NewMotionController(offset float64) *MotionController {
	return &MotionController{current: offset, start: offset, target: offset}
}

// angularFrequency picks a stiffness that brings the spring close to rest
// within duration for the given damping ratio.
func angularFrequency(sp Spring) float64 {
	seconds := sp.Duration.Seconds()
	if seconds <= 0 {
		seconds = frameDuration.Seconds()
	}
	zeta := math.Min(sp.DampingRatio, 1)
	if zeta <= 0 {
		zeta = 1
	}
	return 4 / (zeta * seconds)
}

// AnimateTo starts a transition from the live value toward target. Any
// running transition is stopped first and its completion receives false.
// The returned generation identifies the new transition.
func (m *MotionController) AnimateTo(target float64, sp Spring, completion func(finished bool)) uint64 {
	velocity := m.velocity
	superseded := m.interrupt()

	m.generation++
	m.state = motionAnimating
	m.start = m.current
	m.target = target
	m.velocity = velocity
	m.elapsed = 0
	m.accumulator = 0
	m.limit = time.Duration(settleLimitFactor * float64(sp.Duration))
	if m.limit <= 0 {
		m.limit = frameDuration
	}
	m.spring = harmonica.NewSpring(harmonica.FPS(frameRate), angularFrequency(sp), sp.DampingRatio)
	m.completion = completion
	gen := m.generation

	// The superseded completion runs once this transition is installed,
	// so a transition it starts in turn supersedes this one.
	if superseded != nil {
		superseded(false)
	}

	return gen
}

// Advance moves the running transition forward by dt and reports whether
// it is still running afterwards. Completions fire from here.
func (m *MotionController) Advance(dt time.Duration) bool {
	if m.state != motionAnimating || dt <= 0 {
		return m.state == motionAnimating
	}

	gen := m.generation
	m.accumulator += dt

	for m.accumulator >= frameDuration && m.state == motionAnimating && m.generation == gen {
		m.accumulator -= frameDuration
		m.elapsed += frameDuration
		m.current, m.velocity = m.spring.Update(m.current, m.velocity, m.target)

		if m.settled() || m.elapsed >= m.limit {
			m.current = m.target
			m.velocity = 0
			m.finish(true)
		}
	}

	return m.state == motionAnimating
}

func (m *MotionController) settled() bool {
	return math.Abs(m.current-m.target) < settleDistance && math.Abs(m.velocity) < settleSpeed
}

// finish ends the running transition and fires its completion. The
// completion may start another transition.
func (m *MotionController) finish(finished bool) {
	done := m.completion

	m.state = motionIdle
	m.completion = nil
	m.accumulator = 0

	if done != nil {
		done(finished)
	}
}

// interrupt ends the running transition at its live value and returns
// its completion without running it.
func (m *MotionController) interrupt() func(finished bool) {
	if m.state != motionAnimating {
		return nil
	}

	done := m.completion
	m.state = motionIdle
	m.completion = nil
	m.accumulator = 0
	m.velocity = 0

	return done
}

// Stop halts the running transition at its live value and delivers false
// to its completion.
func (m *MotionController) Stop() {
	if m.state != motionAnimating {
		return
	}
	m.velocity = 0
	m.finish(false)
}

// Jump stops any transition and places the offset at value
func (m *MotionController) Jump(value float64) {
	superseded := m.interrupt()
	m.current = value
	m.start = value
	m.target = value
	m.velocity = 0

	if superseded != nil {
		superseded(false)
	}
}

// Retarget moves the goal of the running transition without restarting
// it. When idle it behaves like Jump.
func (m *MotionController) Retarget(target float64) {
	if m.state != motionAnimating {
		m.Jump(target)
		return
	}
	m.target = target
}

// Current returns the live offset
func (m *MotionController) Current() float64 { return m.current }

// Velocity returns the live velocity in offset units per second
func (m *MotionController) Velocity() float64 { return m.velocity }

// Target returns the goal of the running or last transition
func (m *MotionController) Target() float64 { return m.target }

// Start returns the value the running or last transition began from
func (m *MotionController) Start() float64 { return m.start }

// Animating reports whether a transition is running
func (m *MotionController) Animating() bool { return m.state == motionAnimating }

// Generation returns the identifier of the most recent transition
func (m *MotionController) Generation() uint64 { return m.generation }
