package drawer

import (
	"math"
	"testing"
	"time"
)

const epsilon = 1e-6

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// fakeRegion is a scriptable nested scroll region
type fakeRegion struct {
	id          string
	offsetY     float64
	enabled     bool
	vertical    bool
	lock        bool
	panX, panY  float64
	panning     bool
	enableCalls int
}

func newFakeRegion(id string) *fakeRegion {
	return &fakeRegion{id: id, enabled: true, vertical: true, lock: true, panning: true}
}

func (r *fakeRegion) ID() string                { return r.id }
func (r *fakeRegion) ContentOffsetY() float64   { return r.offsetY }
func (r *fakeRegion) ScrollEnabled() bool       { return r.enabled }
func (r *fakeRegion) CanScrollVertically() bool { return r.vertical }
func (r *fakeRegion) HasDirectionalLock() bool  { return r.lock }
func (r *fakeRegion) PanTranslation() (float64, float64) {
	return r.panX, r.panY
}
func (r *fakeRegion) Panning() bool { return r.panning }
func (r *fakeRegion) SetScrollEnabled(enabled bool) {
	r.enableCalls++
	r.enabled = enabled
}

// recorder captures observer events in order
type recorder struct {
	events []string
	moves  int
}

func (r *recorder) WillTransition(from, to Position) {
	r.events = append(r.events, "will:"+from.String()+">"+to.String())
}
func (r *recorder) DidTransition(to Position) { r.events = append(r.events, "did:"+to.String()) }
func (r *recorder) DidMove(float64)          { r.moves++ }
func (r *recorder) WillBeginDragging()       { r.events = append(r.events, "begin") }
func (r *recorder) WillEndDragging()         { r.events = append(r.events, "end") }

func scenarioGeometry() Geometry {
	return Geometry{Height: 800}
}

// newAttached returns a default drawer attached to an 800 high container
func newAttached(t *testing.T, opts ...Option) *Drawer {
	t.Helper()
	d := New(DefaultConfig(), opts...)
	d.Attach(Container{ID: "main", Geometry: scenarioGeometry()})
	return d
}

// settle ticks d until its transition finishes
func settle(t *testing.T, d *Drawer) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		if !d.Tick(frameDuration) {
			return
		}
	}
	t.Fatal("transition did not settle")
}

func sample(phase Phase, ty, vy float64) DragSample {
	return DragSample{
		Phase:       phase,
		Translation: Vec2{Y: ty},
		Velocity:    Vec2{Y: vy},
		Time:        time.Unix(0, 0),
	}
}
