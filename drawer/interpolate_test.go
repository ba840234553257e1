package drawer

import "testing"

func TestInterpolate(t *testing.T) {
	line := []Breakpoint{{0, 1}, {500, 0}}

	tests := []struct {
		name        string
		breakpoints []Breakpoint
		at          float64
		want        float64
	}{
		{"midpoint", line, 250, 0.5},
		{"before first", line, -10, 1},
		{"after last", line, 600, 0},
		{"on breakpoint", line, 500, 0},
		{"unsorted input", []Breakpoint{{500, 0}, {0, 1}}, 100, 0.8},
		{"single breakpoint", []Breakpoint{{10, 0.3}}, 999, 0.3},
		{"no breakpoints", nil, 42, 0},
		{"three segments", []Breakpoint{{0, 0}, {100, 1}, {200, 0}}, 150, 0.5},
		{"duplicate position keeps last", []Breakpoint{{0, 0}, {100, 0.2}, {100, 1}}, 100, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Interpolate(tt.breakpoints, tt.at); !approxEqual(got, tt.want, epsilon) {
				t.Errorf("Interpolate(%v, %v) = %v, want %v", tt.breakpoints, tt.at, got, tt.want)
			}
		})
	}
}

func TestInterpolateDoesNotReorderInput(t *testing.T) {
	bps := []Breakpoint{{500, 0}, {0, 1}}
	Interpolate(bps, 10)
	if bps[0].Position != 500 {
		t.Errorf("input slice was reordered: %v", bps)
	}
}
