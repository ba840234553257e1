package drawer

import (
	"testing"
	"time"
)

func TestShouldPanelOwnDrag(t *testing.T) {
	tests := []struct {
		name  string
		state ScrollState
		want  bool
	}{
		{"child scroll disabled", ScrollState{ChildScrollEnabled: false, Advancing: true, FullyOpen: true}, true},
		{"content scrolled, finger down", ScrollState{ChildScrollEnabled: true, ContentAtTop: false, CanDismiss: true}, false},
		{"content at top, finger down", ScrollState{ChildScrollEnabled: true, ContentAtTop: true, CanDismiss: true}, true},
		{"content at top, dismiss disabled", ScrollState{ChildScrollEnabled: true, ContentAtTop: true}, false},
		{"finger up, not fully open", ScrollState{ChildScrollEnabled: true, Advancing: true, ContentAtTop: true}, true},
		{"finger up, fully open", ScrollState{ChildScrollEnabled: true, Advancing: true, FullyOpen: true}, false},
		{"finger up, fully open, content at top", ScrollState{ChildScrollEnabled: true, Advancing: true, FullyOpen: true, ContentAtTop: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldPanelOwnDrag(tt.state); got != tt.want {
				t.Errorf("ShouldPanelOwnDrag(%+v) = %v, want %v", tt.state, got, tt.want)
			}
		})
	}
}

func TestScrollBindingRestoresOnce(t *testing.T) {
	region := newFakeRegion("list")
	sess := newDragSession(0)

	sess.Bind(region)
	region.SetScrollEnabled(false)
	calls := region.enableCalls

	sess.Release()
	sess.Release()

	if !region.enabled {
		t.Error("region not re-enabled on release")
	}
	if region.enableCalls != calls+1 {
		t.Errorf("restore ran %d times, want once", region.enableCalls-calls)
	}
}

func TestScrollBindingRestoreThenRebind(t *testing.T) {
	a := newFakeRegion("a")
	b := newFakeRegion("b")
	b.enabled = false
	sess := newDragSession(0)

	sess.Bind(a)
	a.SetScrollEnabled(false)

	binding := sess.Bind(b)
	if !a.enabled {
		t.Error("previous region left disabled after rebinding")
	}
	if binding.Region != b || binding.WasEnabled {
		t.Errorf("new binding = %+v, want region b with WasEnabled=false", binding)
	}

	same := sess.Bind(b)
	if same != binding {
		t.Error("rebinding the same region replaced its record")
	}

	b.SetScrollEnabled(true)
	sess.Release()
	if b.enabled {
		t.Error("region b not restored to its original disabled state")
	}
}

func TestWarnLimiter(t *testing.T) {
	w := warnLimiter{every: 30 * time.Second}
	start := time.Unix(1000, 0)

	if !w.allow(start) {
		t.Error("first warning suppressed")
	}
	if w.allow(start.Add(10 * time.Second)) {
		t.Error("warning within interval allowed")
	}
	if !w.allow(start.Add(31 * time.Second)) {
		t.Error("warning after interval suppressed")
	}
}
