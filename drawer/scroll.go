// ABOUTME: Arbitration between the drawer and one nested scrollable region
// ABOUTME: Holds the ownership decision table, region binding and directional lock

package drawer

import (
	"time"
)

// ScrollRegion is a nested scrollable area inside the drawer's content,
// implemented by the host.
type ScrollRegion interface {
	// ID identifies the region across samples.
	ID() string
	// ContentOffsetY is the vertical scroll position; negative when
	// over-scrolled past the top.
	ContentOffsetY() float64
	ScrollEnabled() bool
	SetScrollEnabled(enabled bool)
	// CanScrollVertically reports whether content exceeds the viewport.
	CanScrollVertically() bool
	// HasDirectionalLock reports whether the region pins a pan to one axis.
	HasDirectionalLock() bool
	// PanTranslation is the region's own cumulative pan for this gesture.
	PanTranslation() (x, y float64)
	// Panning reports whether the region's own pan is in progress.
	Panning() bool
}

// ScrollBinding ties a region to the active drag and remembers whether its
// scrolling was enabled before the drag touched it.
type ScrollBinding struct {
	Region     ScrollRegion
	WasEnabled bool

	restored bool
}

func newScrollBinding(region ScrollRegion) *ScrollBinding {
	return &ScrollBinding{Region: region, WasEnabled: region.ScrollEnabled()}
}

// Restore puts the region's scroll-enabled flag back. Only the first call
// has an effect.
func (b *ScrollBinding) Restore() {
	if b == nil || b.restored {
		return
	}
	b.restored = true
	b.Region.SetScrollEnabled(b.WasEnabled)
}

// Restored reports whether Restore already ran
func (b *ScrollBinding) Restored() bool {
	return b != nil && b.restored
}

// active reports whether the region takes part in arbitration
func (b *ScrollBinding) active() bool {
	return b != nil && !b.restored && b.WasEnabled && b.Region.Panning()
}

// ScrollState is the observable state ShouldPanelOwnDrag decides on
type ScrollState struct {
	ChildScrollEnabled bool
	ContentAtTop       bool
	// Advancing is true when the finger moves toward open, which scrolls
	// the content toward its end.
	Advancing  bool
	FullyOpen  bool
	CanDismiss bool
}

// ShouldPanelOwnDrag decides whether a drag sample moves the panel (true)
// or is left to the nested region (false).
func ShouldPanelOwnDrag(s ScrollState) bool {
	switch {
	case !s.ChildScrollEnabled:
		return true
	case !s.Advancing && !s.ContentAtTop:
		return false
	case !s.Advancing:
		return s.CanDismiss
	case !s.FullyOpen:
		return true
	default:
		return false
	}
}

// canDisambiguate reports whether the region separates horizontal from
// vertical pans on its own.
func canDisambiguate(region ScrollRegion) bool {
	return region.HasDirectionalLock() || !region.CanScrollVertically()
}

const ambiguityWarnInterval = 30 * time.Second

// warnLimiter lets one message through per interval of sample time
type warnLimiter struct {
	last  time.Time
	every time.Duration
}

func (w *warnLimiter) allow(now time.Time) bool {
	if !w.last.IsZero() && now.Sub(w.last) < w.every {
		return false
	}
	w.last = now
	return true
}
