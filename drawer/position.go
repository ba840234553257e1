// ABOUTME: Snap positions of the drawer and their openness ranking
// ABOUTME: Provides parsing, formatting and index-based stepping through position lists

// Package drawer implements the position, gesture and animation engine of a
// draggable multi-position sliding panel.
//
// The engine is host agnostic: a host feeds it container geometry, drag samples
// and animation ticks, and reads back the live offset and derived visuals.
// All methods must be called from a single goroutine.
package drawer

import (
	"fmt"
	"strings"
)

// Position is a named resting state of the drawer. Values are ordered by
// openness: Closed < Collapsed < PartiallyOpen < Open.
type Position int

// Snap positions ordered from fully hidden to maximal extent.
const (
	Closed Position = iota
	Collapsed
	PartiallyOpen
	Open
)

// AllPositions returns every position ordered by ascending openness
func AllPositions() []Position {
	return []Position{Closed, Collapsed, PartiallyOpen, Open}
}

// String returns the position name
func (p Position) String() string {
	switch p {
	case Closed:
		return "closed"
	case Collapsed:
		return "collapsed"
	case PartiallyOpen:
		return "partiallyOpen"
	case Open:
		return "open"
	default:
		return fmt.Sprintf("Position(%d)", int(p))
	}
}

// Valid reports whether p is one of the four known positions
func (p Position) Valid() bool {
	return p >= Closed && p <= Open
}

// ParsePosition parses a position name. Separators and case are ignored, so
// "partiallyOpen", "partially_open" and "Partially-Open" are all accepted.
func ParsePosition(s string) (Position, error) {
	normalized := strings.ToLower(strings.NewReplacer("_", "", "-", "", " ", "").Replace(s))

	switch normalized {
	case "closed":
		return Closed, nil
	case "collapsed":
		return Collapsed, nil
	case "partiallyopen", "partial":
		return PartiallyOpen, nil
	case "open":
		return Open, nil
	}

	return Collapsed, fmt.Errorf("%w: %q", ErrUnknownPosition, s)
}

// Advance steps by positions from `from` through ordered, treating the slice
// order as given. Returns false when from is not in ordered or the step leaves
// the slice.
func Advance(ordered []Position, from Position, by int) (Position, bool) {
	for i, p := range ordered {
		if p != from {
			continue
		}

		next := i + by
		if next < 0 || next >= len(ordered) {
			return from, false
		}

		return ordered[next], true
	}

	return from, false
}

func containsPosition(positions []Position, p Position) bool {
	for _, q := range positions {
		if q == p {
			return true
		}
	}

	return false
}
