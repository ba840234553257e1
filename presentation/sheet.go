// ABOUTME: Modal sheet built on the drawer engine
// ABOUTME: Presents by sliding to Open and dismisses when the drawer settles at Closed

// Package presentation wraps a drawer as a modal sheet with two resting
// states: presented (Open) and dismissed (Closed).
package presentation

import (
	"drawerview/drawer"
)

// Sheet is a drawer restricted to Open and Closed. A drag that settles at
// Closed dismisses it just like Dismiss does.
type Sheet struct {
	drawer    *drawer.Drawer
	presented bool
	onDismiss func()
}

// NewSheet builds a detached sheet. cfg's enabled positions are replaced.
func NewSheet(cfg drawer.Config, opts ...drawer.Option) *Sheet {
	cfg.Positions = []drawer.Position{drawer.Open, drawer.Closed}

	s := &Sheet{}
	s.drawer = drawer.New(cfg, opts...)
	s.drawer.SetPositionImmediate(drawer.Closed)
	s.drawer.AddObserver(&drawer.ObserverFuncs{
		OnDidTransition: func(to drawer.Position) {
			if to == drawer.Closed {
				s.finishDismiss()
			}
		},
	})

	return s
}

// Drawer returns the underlying engine for gesture and tick delivery
func (s *Sheet) Drawer() *drawer.Drawer {
	return s.drawer
}

// OnDismiss sets the callback run once per dismissal
func (s *Sheet) OnDismiss(fn func()) {
	s.onDismiss = fn
}

// Presented reports whether the sheet is attached and not yet dismissed
func (s *Sheet) Presented() bool {
	return s.presented
}

// Present attaches the sheet to c at Closed and slides it to Open
func (s *Sheet) Present(c drawer.Container, animated bool, completion func(finished bool)) {
	if s.presented {
		if completion != nil {
			completion(false)
		}
		return
	}

	s.drawer.SetPositionImmediate(drawer.Closed)
	s.drawer.Attach(c)
	s.presented = true

	s.drawer.SetPosition(drawer.Open, animated, completion)
}

// Dismiss slides the sheet to Closed and detaches it
func (s *Sheet) Dismiss(animated bool, completion func(finished bool)) {
	if !s.presented {
		if completion != nil {
			completion(false)
		}
		return
	}

	s.drawer.SetPosition(drawer.Closed, animated, func(finished bool) {
		if finished {
			s.finishDismiss()
		}
		if completion != nil {
			completion(finished)
		}
	})
}

func (s *Sheet) finishDismiss() {
	if !s.presented {
		return
	}

	s.presented = false
	s.drawer.Detach()

	if s.onDismiss != nil {
		s.onDismiss()
	}
}
