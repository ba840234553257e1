// ABOUTME: Scrollable row list inside the drawer with cursor-to-middle scrolling
// ABOUTME: Implements the engine's nested scroll region and fuzzy filtering

package tui

import (
	"math"

	"github.com/sahilm/fuzzy"

	"drawerview/content"
)

const listRegionID = "drawer-list"

// ListRegion is the drawer's nested scrollable list. Offsets are in rows.
type ListRegion struct {
	items   []content.Item
	labels  []string
	visible []int // indices into items, in display order

	height        int
	offset        float64
	cursor        int // index into visible
	scrollEnabled bool

	panning    bool
	panX, panY float64
}

// NewListRegion creates a list showing all items
func NewListRegion(items []content.Item) *ListRegion {
	l := &ListRegion{scrollEnabled: true}
	l.SetItems(items)
	return l
}

// SetItems replaces the rows and clears any filter
func (l *ListRegion) SetItems(items []content.Item) {
	l.items = items
	l.labels = make([]string, len(items))
	for i, item := range items {
		l.labels[i] = item.Label()
	}
	l.Filter("")
}

// Filter shows only rows fuzzy-matching query, best match first. An
// empty query shows every row in original order.
func (l *ListRegion) Filter(query string) {
	l.visible = l.visible[:0]

	if query == "" {
		for i := range l.items {
			l.visible = append(l.visible, i)
		}
	} else {
		for _, match := range fuzzy.Find(query, l.labels) {
			l.visible = append(l.visible, match.Index)
		}
	}

	l.cursor = 0
	l.offset = 0
}

// Len returns the number of visible rows
func (l *ListRegion) Len() int {
	return len(l.visible)
}

// SetHeight sets the number of rows the list can show
func (l *ListRegion) SetHeight(height int) {
	l.height = max(height, 0)
	l.offset = l.clamp(l.offset)
}

// Height returns the number of rows the list can show
func (l *ListRegion) Height() int {
	return l.height
}

func (l *ListRegion) maxOffset() float64 {
	return math.Max(0, float64(len(l.visible)-l.height))
}

func (l *ListRegion) clamp(offset float64) float64 {
	return math.Max(0, math.Min(offset, l.maxOffset()))
}

// ScrollBy moves the content by rows when scrolling is enabled. Returns
// whether the offset changed.
func (l *ListRegion) ScrollBy(rows float64) bool {
	if !l.scrollEnabled {
		return false
	}

	next := l.clamp(l.offset + rows)
	if next == l.offset {
		return false
	}
	l.offset = next

	return true
}

// FirstRow returns the index of the first visible row
func (l *ListRegion) FirstRow() int {
	return int(math.Round(l.offset))
}

// MoveCursor moves the cursor by delta rows and scrolls so it sits in the
// middle of the list where possible
func (l *ListRegion) MoveCursor(delta int) {
	if len(l.visible) == 0 {
		return
	}

	l.cursor = max(0, min(l.cursor+delta, len(l.visible)-1))
	l.offset = float64(cursorOffset(l.height, l.cursor, len(l.visible)))
}

// Cursor returns the cursor position among visible rows
func (l *ListRegion) Cursor() int {
	return l.cursor
}

// Selected returns the item under the cursor
func (l *ListRegion) Selected() (content.Item, bool) {
	if l.cursor < 0 || l.cursor >= len(l.visible) {
		return content.Item{}, false
	}
	return l.items[l.visible[l.cursor]], true
}

// Row returns the visible row at index i
func (l *ListRegion) Row(i int) (content.Item, bool) {
	if i < 0 || i >= len(l.visible) {
		return content.Item{}, false
	}
	return l.items[l.visible[i]], true
}

// BeginPan marks the start of a pointer pan inside the list
func (l *ListRegion) BeginPan() {
	l.panning = true
	l.panX, l.panY = 0, 0
}

// UpdatePan records the cumulative pan translation
func (l *ListRegion) UpdatePan(x, y float64) {
	l.panX, l.panY = x, y
}

// EndPan marks the end of a pointer pan
func (l *ListRegion) EndPan() {
	l.panning = false
	l.panX, l.panY = 0, 0
}

// ID identifies the list to the drawer engine
func (l *ListRegion) ID() string { return listRegionID }

// ContentOffsetY is the scroll position in rows
func (l *ListRegion) ContentOffsetY() float64 { return l.offset }

// ScrollEnabled reports whether the list scrolls on its own
func (l *ListRegion) ScrollEnabled() bool { return l.scrollEnabled }

// SetScrollEnabled turns the list's own scrolling on or off
func (l *ListRegion) SetScrollEnabled(enabled bool) { l.scrollEnabled = enabled }

// CanScrollVertically reports whether there are more rows than fit
func (l *ListRegion) CanScrollVertically() bool { return len(l.visible) > l.height }

// HasDirectionalLock is true: terminal rows only ever scroll vertically
func (l *ListRegion) HasDirectionalLock() bool { return true }

// PanTranslation returns the cumulative pan of the current gesture
func (l *ListRegion) PanTranslation() (float64, float64) { return l.panX, l.panY }

// Panning reports whether a pointer pan is in progress
func (l *ListRegion) Panning() bool { return l.panning }

// cursorOffset computes the first visible row that keeps the cursor on
// screen, vim/less style:
// - top: cursor moves freely, list stays at 0
// - middle: cursor stays in the middle, content scrolls
// - bottom: list shows the end, cursor moves down
func cursorOffset(height, cursor, total int) int {
	if total == 0 || height < 1 {
		return 0
	}

	middle := height / 2
	if cursor < middle {
		return 0
	}

	if cursor < total-height+middle {
		return cursor - middle
	}

	return max(total-height, 0)
}
