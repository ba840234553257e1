// ABOUTME: Per-gesture drag state from begin to end
// ABOUTME: Tracks the origin offset, hand-off rebasing and the single scroll binding

package drawer

// DragSession lives from a drag's begin sample to its end or failure
type DragSession struct {
	// Origin is the live offset at begin, adjusted at a scroll hand-off.
	Origin float64
	// HasMoved is set once any sample moved the panel.
	HasMoved bool
	// HorizontalLock suppresses vertical ownership until intent is clear.
	HorizontalLock bool
	// TranslationBase is the translation already consumed by the nested
	// region when the panel took over.
	TranslationBase float64

	binding *ScrollBinding
}

func newDragSession(origin float64) *DragSession {
	return &DragSession{Origin: origin, HorizontalLock: true}
}

// Candidate is the unbounded offset for a cumulative translation
func (s *DragSession) Candidate(translationY float64) float64 {
	return s.Origin + translationY - s.TranslationBase
}

// Rebase moves the origin and treats translationY as the new zero
func (s *DragSession) Rebase(origin, translationY float64) {
	s.Origin = origin
	s.TranslationBase = translationY
}

// Binding returns the current scroll binding, or nil
func (s *DragSession) Binding() *ScrollBinding {
	return s.binding
}

// Bind attaches region. A different previously bound region is restored
// before the new binding is made; rebinding the same region keeps the
// original record.
func (s *DragSession) Bind(region ScrollRegion) *ScrollBinding {
	if s.binding != nil && !s.binding.restored && s.binding.Region.ID() == region.ID() {
		return s.binding
	}

	s.binding.Restore()
	s.binding = newScrollBinding(region)

	return s.binding
}

// Release restores the binding, if any
func (s *DragSession) Release() {
	s.binding.Restore()
}
