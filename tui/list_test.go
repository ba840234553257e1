// ABOUTME: Tests for ListRegion scrolling, filtering and cursor placement
// ABOUTME: Verifies the list honours the scroll region contract used by the drawer

package tui

import (
	"testing"

	"drawerview/content"
)

func TestCursorOffset(t *testing.T) {
	tests := []struct {
		name     string
		height   int
		cursor   int
		total    int
		expected int
	}{
		{"top of list", 10, 2, 100, 0},
		{"just before middle", 10, 4, 100, 0},
		{"at middle", 10, 5, 100, 0},
		{"past middle scrolls", 10, 6, 100, 1},
		{"deep in list", 10, 50, 100, 45},
		{"near end", 10, 96, 100, 90},
		{"at end", 10, 99, 100, 90},
		{"fewer rows than height", 10, 3, 5, 0},
		{"empty list", 10, 0, 0, 0},
		{"zero height", 0, 5, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cursorOffset(tt.height, tt.cursor, tt.total); got != tt.expected {
				t.Errorf("cursorOffset(%d, %d, %d) = %d, want %d", tt.height, tt.cursor, tt.total, got, tt.expected)
			}
		})
	}
}

func TestListRegion_ScrollBy(t *testing.T) {
	l := NewListRegion(createTestItems(20))
	l.SetHeight(5)

	tests := []struct {
		name    string
		rows    float64
		changed bool
		offset  float64
	}{
		{"scroll down", 3, true, 3},
		{"clamp at end", 100, true, 15},
		{"already at end", 1, false, 15},
		{"scroll up", -5, true, 10},
		{"clamp at top", -100, true, 0},
		{"already at top", -1, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.ScrollBy(tt.rows); got != tt.changed {
				t.Errorf("ScrollBy(%.0f) = %v, want %v", tt.rows, got, tt.changed)
			}
			if l.ContentOffsetY() != tt.offset {
				t.Errorf("offset = %.0f, want %.0f", l.ContentOffsetY(), tt.offset)
			}
		})
	}
}

func TestListRegion_ScrollDisabled(t *testing.T) {
	l := NewListRegion(createTestItems(20))
	l.SetHeight(5)
	l.SetScrollEnabled(false)

	if l.ScrollBy(3) {
		t.Error("ScrollBy should refuse while scrolling is disabled")
	}
	if l.ContentOffsetY() != 0 {
		t.Errorf("offset = %.0f, want 0", l.ContentOffsetY())
	}
}

func TestListRegion_ScrollContract(t *testing.T) {
	l := NewListRegion(createTestItems(3))
	l.SetHeight(5)

	if l.ID() != listRegionID {
		t.Errorf("ID = %q", l.ID())
	}
	if l.CanScrollVertically() {
		t.Error("3 rows in 5 should not scroll")
	}
	if !l.HasDirectionalLock() {
		t.Error("list should report a directional lock")
	}

	l.BeginPan()
	l.UpdatePan(2, -4)
	if !l.Panning() {
		t.Error("expected panning after BeginPan")
	}
	if x, y := l.PanTranslation(); x != 2 || y != -4 {
		t.Errorf("PanTranslation = (%.0f, %.0f), want (2, -4)", x, y)
	}

	l.EndPan()
	if l.Panning() {
		t.Error("expected no panning after EndPan")
	}
	if x, y := l.PanTranslation(); x != 0 || y != 0 {
		t.Errorf("PanTranslation after end = (%.0f, %.0f)", x, y)
	}
}

func TestListRegion_ShrinkClampsOffset(t *testing.T) {
	l := NewListRegion(createTestItems(20))
	l.SetHeight(5)
	l.ScrollBy(15)

	l.SetHeight(10)
	if l.ContentOffsetY() != 10 {
		t.Errorf("offset = %.0f, want 10", l.ContentOffsetY())
	}
}

func TestListRegion_Filter(t *testing.T) {
	items := []content.Item{
		{Title: "Harbour", Artist: "Bonobo"},
		{Title: "Glass", Artist: "Kiasmos"},
		{Title: "Signal", Artist: "Bonobo"},
	}
	l := NewListRegion(items)
	l.SetHeight(5)
	l.MoveCursor(2)

	l.Filter("Bono")
	if l.Len() != 2 {
		t.Fatalf("Len = %d, want 2", l.Len())
	}
	if l.Cursor() != 0 {
		t.Errorf("cursor = %d, want 0 after filtering", l.Cursor())
	}
	for i := 0; i < l.Len(); i++ {
		item, ok := l.Row(i)
		if !ok || item.Artist != "Bonobo" {
			t.Errorf("row %d = %+v", i, item)
		}
	}

	l.Filter("zzz")
	if l.Len() != 0 {
		t.Errorf("Len = %d, want 0", l.Len())
	}
	if _, ok := l.Selected(); ok {
		t.Error("nothing should be selected in an empty list")
	}

	l.Filter("")
	if l.Len() != 3 {
		t.Errorf("Len = %d, want 3", l.Len())
	}
	if item, _ := l.Row(1); item.Title != "Glass" {
		t.Errorf("empty filter should keep original order, row 1 = %q", item.Title)
	}
}

func TestListRegion_MoveCursor(t *testing.T) {
	l := NewListRegion(createTestItems(30))
	l.SetHeight(10)

	l.MoveCursor(12)
	if l.Cursor() != 12 {
		t.Errorf("cursor = %d, want 12", l.Cursor())
	}
	if l.FirstRow() != 7 {
		t.Errorf("first row = %d, want 7", l.FirstRow())
	}

	l.MoveCursor(100)
	if l.Cursor() != 29 {
		t.Errorf("cursor = %d, want 29", l.Cursor())
	}

	l.MoveCursor(-100)
	if l.Cursor() != 0 || l.FirstRow() != 0 {
		t.Errorf("cursor/first = %d/%d, want 0/0", l.Cursor(), l.FirstRow())
	}
}
