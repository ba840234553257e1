// ABOUTME: Drag sample handling for the drawer engine
// ABOUTME: Begin/changed/ended processing, scroll hand-off and snap on release

package drawer

import "math"

// HandleDrag processes one drag sample
func (d *Drawer) HandleDrag(s DragSample) DragResult {
	switch s.Phase {
	case PhaseBegan:
		return d.beginDrag()
	case PhaseChanged:
		return d.continueDrag(s)
	case PhaseEnded, PhaseFailed:
		return d.finishDrag(s)
	default:
		return DragResult{}
	}
}

// BindScrollRegion associates region with the active drag. Binding a
// different region first restores the previous one. Ignored without an
// active drag.
func (d *Drawer) BindScrollRegion(region ScrollRegion) {
	if d.session == nil || region == nil {
		return
	}

	b := d.session.Bind(region)
	d.log.Debugf("[DRAWER] Bound scroll region %q (was enabled: %v)", region.ID(), b.WasEnabled)
}

func (d *Drawer) beginDrag() DragResult {
	if !d.enabled || d.container == nil {
		return DragResult{}
	}

	// A missing end sample leaves a stale session behind.
	d.endSession()

	d.observers.willBeginDragging()
	d.motion.Stop()

	d.session = newDragSession(d.motion.Current())
	d.moveTo(d.session.Origin)

	return DragResult{PanelOwned: true}
}

func (d *Drawer) continueDrag(s DragSample) DragResult {
	sess := d.session
	if sess == nil {
		return DragResult{}
	}

	if s.Velocity.Y == 0 {
		return DragResult{PanelOwned: !d.regionActive()}
	}

	if d.regionActive() {
		region := sess.binding.Region

		if !d.resolveDirection(sess, region, s) {
			return DragResult{}
		}

		state := ScrollState{
			ChildScrollEnabled: region.ScrollEnabled(),
			ContentAtTop:       region.ContentOffsetY() <= 0,
			Advancing:          s.Velocity.Y < 0,
			FullyOpen:          d.position == d.table.Topmost(),
			CanDismiss:         d.cfg.ChildScrollCanDismiss,
		}

		if !ShouldPanelOwnDrag(state) {
			return DragResult{}
		}

		if state.ChildScrollEnabled {
			d.handOff(sess, region, s)
			return DragResult{PanelOwned: true}
		}
	}

	if s.Translation.Y-sess.TranslationBase != 0 {
		sess.HasMoved = true
	}
	if sess.HasMoved {
		d.moveTo(sess.Candidate(s.Translation.Y))
	}

	return DragResult{PanelOwned: true}
}

// resolveDirection updates the session's horizontal lock and reports
// whether vertical ownership is allowed for this sample.
func (d *Drawer) resolveDirection(sess *DragSession, region ScrollRegion, s DragSample) bool {
	if !sess.HorizontalLock {
		return true
	}

	if canDisambiguate(region) {
		if x, y := region.PanTranslation(); !(x != 0 && y == 0) {
			sess.HorizontalLock = false
		}
		return !sess.HorizontalLock
	}

	if d.warn.allow(s.Time) {
		d.log.Debugf("[DRAWER] Scroll region %q cannot separate pan directions; waiting for vertical intent", region.ID())
	}

	if math.Abs(s.Translation.Y) > math.Abs(s.Translation.X) {
		sess.HorizontalLock = false
	}

	return !sess.HorizontalLock
}

// handOff moves ownership from the nested region to the panel without a
// visible jump: over-scroll already consumed is folded into the origin and
// a short catch-up transition absorbs the rest.
func (d *Drawer) handOff(sess *DragSession, region ScrollRegion, s DragSample) {
	sess.HasMoved = true

	live := d.motion.Current()
	consumed := math.Min(region.ContentOffsetY(), 0)
	sess.Rebase(live-consumed, s.Translation.Y)

	region.SetScrollEnabled(false)

	lo, hi := d.table.Bounds()
	target := RubberBand(sess.Origin, lo, hi, d.cfg.RubberBand)
	d.motion.AnimateTo(target, d.cfg.catchUpSpring(), nil)

	d.log.Debugf("[DRAWER] Hand-off from %q: origin %.1f (consumed %.1f)", region.ID(), sess.Origin, consumed)
}

// moveTo places the panel at candidate, rubber-banded to the enabled
// bounds. A running catch-up transition is retargeted instead.
func (d *Drawer) moveTo(candidate float64) {
	lo, hi := d.table.Bounds()
	offset := RubberBand(candidate, lo, hi, d.cfg.RubberBand)

	if d.motion.Animating() {
		d.motion.Retarget(offset)
	} else {
		d.motion.Jump(offset)
	}

	d.applyOffset()
}

func (d *Drawer) regionActive() bool {
	return d.session != nil && d.session.binding.active()
}

// trackedOffset is where the drag has put the panel, ignoring the lag of a
// catch-up transition.
func (d *Drawer) trackedOffset() float64 {
	if d.motion.Animating() {
		return d.motion.Target()
	}
	return d.motion.Current()
}

func (d *Drawer) finishDrag(s DragSample) DragResult {
	sess := d.session
	if sess == nil {
		return DragResult{}
	}

	if s.Phase == PhaseFailed {
		d.log.Debugf("[DRAWER] Drag failed at %.1f", d.motion.Current())
	}

	owned := false

	if d.regionActive() && sess.binding.Region.ScrollEnabled() && sess.binding.Region.ContentOffsetY() > 0 {
		// The region is scrolled into its content; it keeps the gesture.
		d.log.Debugf("[DRAWER] Drag ended inside scrolled region %q", sess.binding.Region.ID())
	} else if sess.HasMoved {
		owned = true
		d.observers.willEndDragging()

		resolver := SnapResolver{
			Table:            d.table,
			PredictionWindow: d.cfg.PredictionWindow,
			MinimumVelocity:  d.cfg.MinimumVelocity,
		}
		target := resolver.Resolve(d.trackedOffset(), s.Velocity.Y)

		d.session = nil
		d.SetPosition(target, true, nil)
	}

	sess.Release()
	d.session = nil

	if !owned {
		d.resumeSettle()
	}

	return DragResult{PanelOwned: owned}
}

// resumeSettle finishes a transition that a press interrupted without
// moving the panel.
func (d *Drawer) resumeSettle() {
	if d.container == nil || d.motion.Animating() {
		return
	}

	visible := d.visibleAt(d.position)
	if math.Abs(d.motion.Current()-d.table.Offset(visible)) < settleDistance {
		return
	}

	d.log.Debugf("[DRAWER] Resuming settle to %s from %.1f", visible, d.motion.Current())
	d.scrollTo(visible, true, func(finished bool) {
		if finished {
			d.observers.didTransition(visible)
		}
	})
}

// endSession drops the active drag without snapping
func (d *Drawer) endSession() {
	if d.session == nil {
		return
	}
	d.session.Release()
	d.session = nil
}
