// ABOUTME: Drawer engine facade tying positions, gestures and animation together
// ABOUTME: Hosts feed geometry, drag samples and ticks; observers receive transitions

package drawer

import (
	"fmt"
	"math"
	"reflect"
	"time"
)

// Logger receives diagnostics
type Logger interface {
	Debugf(format string, args ...interface{})
}

// LoggerFunc adapts a printf-style function to Logger
type LoggerFunc func(format string, args ...interface{})

// Debugf calls f
func (f LoggerFunc) Debugf(format string, args ...interface{}) {
	f(format, args...)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}

// ContentSizer reports the height the content wants at Open
type ContentSizer func() float64

// Option configures a Drawer
type Option func(*Drawer)

// WithLogger routes diagnostics to l
func WithLogger(l Logger) Option {
	return func(d *Drawer) {
		if l != nil {
			d.log = l
		}
	}
}

// WithObserver registers o at construction
func WithObserver(o Observer) Option {
	return func(d *Drawer) {
		d.observers.add(o)
	}
}

// WithContentSizer sets the sizer consulted for OpenFit
func WithContentSizer(s ContentSizer) Option {
	return func(d *Drawer) {
		d.sizer = s
	}
}

// Container is the area the drawer is attached to
type Container struct {
	ID       string
	Geometry Geometry
}

// Phase of a drag sample
type Phase int

const (
	PhaseBegan Phase = iota
	PhaseChanged
	PhaseEnded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseBegan:
		return "began"
	case PhaseChanged:
		return "changed"
	case PhaseEnded:
		return "ended"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Vec2 is a 2-D vector in container units
type Vec2 struct {
	X, Y float64
}

// DragSample is one gesture event. Translation is cumulative since the
// began sample; Velocity is in units per second. Positive Y points toward
// closed.
type DragSample struct {
	Phase       Phase
	Translation Vec2
	Velocity    Vec2
	Time        time.Time
}

// DragResult reports how the engine handled a sample
type DragResult struct {
	// PanelOwned is true when the sample moved (or may move) the panel.
	// When false the host should let the nested region handle it.
	PanelOwned bool
}

// Drawer is the position, gesture and animation engine of one panel
type Drawer struct {
	cfg       Config
	log       Logger
	observers observerList
	sizer     ContentSizer

	container *Container
	table     *PositionTable
	motion    *MotionController
	session   *DragSession

	position  Position
	goal      Position // where the running transition is heading
	concealed bool
	enabled   bool
	visuals   Visuals

	warn     warnLimiter
	tableErr string
}

// New builds a detached drawer resting at Collapsed
func New(cfg Config, opts ...Option) *Drawer {
	d := &Drawer{
		cfg:      cfg.sanitized(),
		log:      nopLogger{},
		position: Collapsed,
		enabled:  true,
		motion:   NewMotionController(0),
		warn:     warnLimiter{every: ambiguityWarnInterval},
	}

	for _, opt := range opts {
		opt(d)
	}

	if err := cfg.Validate(); err != nil {
		d.log.Debugf("[DRAWER] Invalid configuration: %v", err)
	}

	d.relayout()
	if ps := d.enabledPositions(); !containsPosition(ps, d.position) {
		d.position = ps[0]
	}

	return d
}

// enabledPositions returns the usable positions, most closed first: the
// table's when attached, the configured ones otherwise.
func (d *Drawer) enabledPositions() []Position {
	if d.container != nil {
		return d.table.Sorted()
	}

	var ps []Position
	for _, p := range AllPositions() {
		if containsPosition(d.cfg.Positions, p) {
			ps = append(ps, p)
		}
	}
	if len(ps) == 0 {
		return []Position{Collapsed}
	}

	return ps
}

// AddObserver registers o and returns a func that unregisters it
func (d *Drawer) AddObserver(o Observer) (remove func()) {
	id := d.observers.add(o)
	return func() { d.observers.remove(id) }
}

// RemoveObserver unregisters every registration of o. Observers whose
// type is not comparable, such as structs holding slices, can only be
// removed with the func returned by AddObserver.
func (d *Drawer) RemoveObserver(o Observer) {
	if o == nil || !reflect.TypeOf(o).Comparable() {
		return
	}

	for _, e := range d.observers.entries {
		if e.observer == o {
			d.observers.remove(e.id)
		}
	}
}

// Attach places the drawer in c and snaps it to the current position.
// Attaching to a different container while attached is a programming
// error and panics.
func (d *Drawer) Attach(c Container) {
	if d.container != nil && d.container.ID != c.ID {
		panic(fmt.Sprintf("drawer: already attached to container %q, cannot attach to %q", d.container.ID, c.ID))
	}

	d.container = &c
	d.relayout()
	d.log.Debugf("[DRAWER] Attached to %q height=%.1f", c.ID, c.Geometry.Height)

	if !d.table.Contains(d.position) {
		d.position = d.table.MostClosed()
	}
	d.SetPosition(d.position, false, nil)
}

// Detach stops any transition, ends any drag and leaves the container
func (d *Drawer) Detach() {
	if d.container == nil {
		return
	}

	superseded := d.motion.interrupt()
	d.endSession()
	d.log.Debugf("[DRAWER] Detached from %q", d.container.ID)
	d.container = nil
	d.relayout()

	if superseded != nil {
		superseded(false)
	}
}

// Attached reports whether the drawer has a container
func (d *Drawer) Attached() bool {
	return d.container != nil
}

// Resize updates the container geometry. Unless a drag is tracking, the
// drawer re-snaps to its position without animation.
func (d *Drawer) Resize(g Geometry) {
	if d.container == nil {
		return
	}

	d.container.Geometry = g
	d.relayout()

	if d.session == nil {
		d.resnap()
	}
}

// SetConfig replaces the configuration and re-lays out. When the current
// position is no longer enabled the drawer moves to the most closed
// enabled position.
func (d *Drawer) SetConfig(cfg Config) {
	if err := cfg.Validate(); err != nil {
		d.log.Debugf("[DRAWER] Invalid configuration: %v", err)
	}

	d.cfg = cfg.sanitized()
	d.relayout()

	if d.session != nil {
		return
	}

	if ps := d.enabledPositions(); !containsPosition(ps, d.position) {
		d.SetPosition(ps[0], false, nil)
		return
	}

	d.resnap()
}

// resnap puts the drawer on its position's offset after a layout change.
// A running transition keeps going toward its goal's new offset so its
// completion still fires.
func (d *Drawer) resnap() {
	if d.motion.Animating() {
		d.motion.Retarget(d.table.Offset(d.goal))
		d.applyOffset()
		return
	}

	d.SetPosition(d.position, false, nil)
}

// Config returns a copy of the active configuration
func (d *Drawer) Config() Config {
	c := d.cfg
	c.Positions = append([]Position(nil), d.cfg.Positions...)
	return c
}

// Table returns the position table for the current geometry
func (d *Drawer) Table() *PositionTable {
	return d.table
}

func (d *Drawer) relayout() {
	var geom Geometry
	if d.container != nil {
		geom = d.container.Geometry
	}

	var fitted float64
	if d.cfg.OpenHeight.Mode == OpenFit && d.sizer != nil {
		fitted = d.sizer()
	}

	d.table = NewPositionTable(d.cfg, geom, fitted)

	if err := d.table.Err(); err != nil && d.container != nil {
		if msg := err.Error(); msg != d.tableErr {
			d.tableErr = msg
			d.log.Debugf("[DRAWER] Falling back to collapsed only: %v", err)
		}
	} else {
		d.tableErr = ""
	}

	d.visuals = computeVisuals(d.cfg, d.table, d.motion.Current())
}

// Position returns the committed position
func (d *Drawer) Position() Position {
	return d.position
}

// SetPositionImmediate is SetPosition without animation or completion
func (d *Drawer) SetPositionImmediate(p Position) {
	d.SetPosition(p, false, nil)
}

// SetPosition moves the drawer to p. Observers are told about the
// transition when the drawer is not concealed and the visible position
// changes. completion receives true when the target was reached and false
// when the transition was superseded or there is no container.
func (d *Drawer) SetPosition(p Position, animated bool, completion func(finished bool)) {
	visible := d.visibleAt(p)

	notify := !d.concealed && d.position != visible
	if notify {
		d.observers.willTransition(d.position, p)
	}

	d.position = p

	if d.container == nil {
		if notify {
			d.observers.didTransition(visible)
		}
		if completion != nil {
			completion(false)
		}
		return
	}

	d.scrollTo(visible, animated, func(finished bool) {
		if finished && notify {
			d.observers.didTransition(visible)
		}
		if completion != nil {
			completion(finished)
		}
	})
}

// visibleAt is where the drawer shows when its position is p
func (d *Drawer) visibleAt(p Position) Position {
	if d.concealed {
		return Closed
	}
	return p
}

func (d *Drawer) scrollTo(p Position, animated bool, done func(bool)) {
	d.goal = p
	offset := d.table.Offset(p)

	if animated {
		d.motion.AnimateTo(offset, d.cfg.settleSpring(), done)
		d.log.Debugf("[DRAWER] Animating %.1f -> %.1f", d.motion.Start(), offset)
		return
	}

	d.motion.Jump(offset)
	d.applyOffset()
	done(true)
}

func (d *Drawer) applyOffset() {
	offset := d.motion.Current()
	d.visuals = computeVisuals(d.cfg, d.table, offset)
	d.observers.didMove(offset)
}

// Tick advances the running transition by dt and reports whether more
// frames are needed.
func (d *Drawer) Tick(dt time.Duration) bool {
	if !d.motion.Animating() {
		return false
	}

	d.motion.Advance(dt)
	d.applyOffset()

	return d.motion.Animating()
}

// Animating reports whether a transition is running
func (d *Drawer) Animating() bool {
	return d.motion.Animating()
}

// Motion exposes the animation state for inspection
func (d *Drawer) Motion() *MotionController {
	return d.motion
}

// Offset returns the live offset
func (d *Drawer) Offset() float64 {
	return d.motion.Current()
}

// VisibleHeight returns how much of the drawer shows at p
func (d *Drawer) VisibleHeight(p Position) float64 {
	if d.container == nil {
		return 0
	}
	return math.Max(0, d.table.Geometry().Height-d.table.Offset(p))
}

// DrawerOffset returns how much of the drawer shows at the live offset
func (d *Drawer) DrawerOffset() float64 {
	if d.container == nil || d.concealed {
		return 0
	}
	return math.Max(0, d.table.Geometry().Height-d.motion.Current())
}

// NextPosition steps by positions through the enabled set from the
// current position; positive is more open.
func (d *Drawer) NextPosition(by int) (Position, bool) {
	return Advance(d.enabledPositions(), d.position, by)
}

// Visuals returns the visual parameters for the live offset
func (d *Drawer) Visuals() Visuals {
	return d.visuals
}

// Enabled reports whether drags are accepted
func (d *Drawer) Enabled() bool {
	return d.enabled
}

// SetEnabled turns drag handling on or off. Disabling ends a drag in
// progress without snapping.
func (d *Drawer) SetEnabled(enabled bool) {
	d.enabled = enabled
	if !enabled {
		d.endSession()
	}
}

// Concealed reports whether the drawer is hidden at Closed
func (d *Drawer) Concealed() bool {
	return d.concealed
}

// SetConcealed hides the drawer at Closed without changing its position,
// or reveals it again.
func (d *Drawer) SetConcealed(concealed, animated bool, completion func(finished bool)) {
	if d.concealed == concealed {
		if completion != nil {
			completion(true)
		}
		return
	}

	d.concealed = concealed
	d.SetPosition(d.position, animated, completion)
}

// Remove moves the drawer to Closed and detaches it
func (d *Drawer) Remove(animated bool, completion func(finished bool)) {
	if d.container == nil {
		if completion != nil {
			completion(false)
		}
		return
	}

	d.scrollTo(Closed, animated, func(finished bool) {
		if finished {
			d.Detach()
		}
		if completion != nil {
			completion(finished)
		}
	})
}

// TapOverlay handles a tap on the dimmed overlay by closing one step.
// Returns false when the overlay is not showing or nothing changed.
func (d *Drawer) TapOverlay() bool {
	if d.visuals.OverlayAlpha <= 0 || d.session != nil {
		return false
	}

	prev, ok := d.NextPosition(-1)
	if !ok {
		return false
	}

	d.SetPosition(prev, true, nil)
	return true
}

// Dragging reports whether a drag session is active
func (d *Drawer) Dragging() bool {
	return d.session != nil
}

// Session returns the active drag session, or nil
func (d *Drawer) Session() *DragSession {
	return d.session
}
