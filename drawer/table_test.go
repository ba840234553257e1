package drawer

import (
	"errors"
	"testing"
)

func TestPositionTableOffsets(t *testing.T) {
	table := NewPositionTable(DefaultConfig(), scenarioGeometry(), 0)

	tests := []struct {
		pos  Position
		want float64
	}{
		{Open, 68},
		{PartiallyOpen, 536},
		{Collapsed, 732},
		{Closed, 800},
	}

	for _, tt := range tests {
		t.Run(tt.pos.String(), func(t *testing.T) {
			if got := table.Offset(tt.pos); got != tt.want {
				t.Errorf("Offset(%s) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}

	if err := table.Err(); err != nil {
		t.Errorf("unexpected table error: %v", err)
	}
}

func TestPositionTableMonotonic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Positions = AllPositions()

	for _, h := range []float64{400, 600, 800, 1200} {
		table := NewPositionTable(cfg, Geometry{Height: h, SafeAreaBottom: 20}, 0)
		sorted := table.Sorted()
		for i := 1; i < len(sorted); i++ {
			less, more := sorted[i-1], sorted[i]
			if !(more > less) {
				t.Fatalf("height %v: sorted order %v not ascending openness", h, sorted)
			}
			if table.Offset(more) >= table.Offset(less) {
				t.Errorf("height %v: offset(%s)=%v not above offset(%s)=%v",
					h, more, table.Offset(more), less, table.Offset(less))
			}
		}
	}
}

func TestPositionTableBottomInset(t *testing.T) {
	geom := Geometry{Height: 800, SafeAreaBottom: 34, WindowGap: 10}

	tests := []struct {
		name   string
		policy InsetPolicy
		want   float64
	}{
		{"automatic", InsetPolicy{Mode: InsetAutomatic}, 24},
		{"safe area", InsetPolicy{Mode: InsetSafeArea}, 34},
		{"fixed", InsetPolicy{Mode: InsetFixed, Value: 12}, 12},
		{"none", InsetPolicy{Mode: InsetNone}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.BottomInset = tt.policy
			table := NewPositionTable(cfg, geom, 0)

			if got := table.BottomInset(); got != tt.want {
				t.Errorf("BottomInset() = %v, want %v", got, tt.want)
			}
			if got, want := table.Offset(Collapsed), 800-tt.want-68; got != want {
				t.Errorf("Offset(collapsed) = %v, want %v", got, want)
			}
			if got := table.Offset(Closed); got != 800 {
				t.Errorf("Offset(closed) = %v, want 800 regardless of inset", got)
			}
		})
	}
}

func TestPositionTableAutomaticInsetNeverNegative(t *testing.T) {
	table := NewPositionTable(DefaultConfig(), Geometry{Height: 800, SafeAreaBottom: 10, WindowGap: 40}, 0)
	if got := table.BottomInset(); got != 0 {
		t.Errorf("BottomInset() = %v, want 0", got)
	}
}

func TestPositionTableOpenHeight(t *testing.T) {
	tests := []struct {
		name   string
		policy OpenHeightPolicy
		fitted float64
		want   float64
	}{
		{"fill", OpenHeightPolicy{Mode: OpenFill}, 0, 68},
		{"fixed", OpenHeightPolicy{Mode: OpenFixed, Height: 500}, 0, 300},
		{"fixed taller than container", OpenHeightPolicy{Mode: OpenFixed, Height: 2000}, 0, 68},
		{"fit", OpenHeightPolicy{Mode: OpenFit}, 400, 400},
		{"fit without content height", OpenHeightPolicy{Mode: OpenFit}, 0, 68},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.OpenHeight = tt.policy
			table := NewPositionTable(cfg, scenarioGeometry(), tt.fitted)
			if got := table.Offset(Open); got != tt.want {
				t.Errorf("Offset(open) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPositionTableFallback(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "empty positions",
			mutate:  func(c *Config) { c.Positions = nil },
			wantErr: ErrNoPositions,
		},
		{
			name: "partially open below collapsed",
			mutate: func(c *Config) {
				c.PartiallyOpenHeight = 40
			},
			wantErr: ErrNonMonotonic,
		},
		{
			name: "tie between positions",
			mutate: func(c *Config) {
				c.PartiallyOpenHeight = c.CollapsedHeight
			},
			wantErr: ErrNonMonotonic,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			table := NewPositionTable(cfg, scenarioGeometry(), 0)

			if !errors.Is(table.Err(), tt.wantErr) {
				t.Errorf("Err() = %v, want %v", table.Err(), tt.wantErr)
			}
			sorted := table.Sorted()
			if len(sorted) != 1 || sorted[0] != Collapsed {
				t.Errorf("Sorted() = %v, want [collapsed]", sorted)
			}
		})
	}
}

func TestPositionTableNearestAndBounds(t *testing.T) {
	table := NewPositionTable(DefaultConfig(), scenarioGeometry(), 0)

	lo, hi := table.Bounds()
	if lo != 68 || hi != 732 {
		t.Errorf("Bounds() = (%v, %v), want (68, 732)", lo, hi)
	}
	if table.Topmost() != Open {
		t.Errorf("Topmost() = %s, want open", table.Topmost())
	}

	tests := []struct {
		offset float64
		want   Position
	}{
		{0, Open},
		{300, Open},
		{303, PartiallyOpen},
		{500, PartiallyOpen},
		{700, Collapsed},
		{900, Collapsed},
		{634, Collapsed}, // equidistant: more closed wins
	}
	for _, tt := range tests {
		if got := table.Nearest(tt.offset); got != tt.want {
			t.Errorf("Nearest(%v) = %s, want %s", tt.offset, got, tt.want)
		}
	}
}
