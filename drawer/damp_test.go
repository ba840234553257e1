package drawer

import "testing"

func TestDampZero(t *testing.T) {
	for _, k := range []float64{1, 20, 100} {
		if got := Damp(0, k); got != 0 {
			t.Errorf("Damp(0, %v) = %v, want 0", k, got)
		}
	}
}

func TestDampIncreasingAndSublinear(t *testing.T) {
	for _, k := range []float64{5, 20, 80} {
		prev := 0.0
		for v := 0.5; v < 2000; v *= 1.7 {
			got := Damp(v, k)
			if got <= prev {
				t.Errorf("Damp(%v, %v) = %v, not above %v", v, k, got, prev)
			}
			if double := Damp(2*v, k); double >= 2*got {
				t.Errorf("Damp(%v, %v) = %v is not sublinear (2x gives %v)", v, k, got, double)
			}
			prev = got
		}
	}
}

func TestRubberBand(t *testing.T) {
	tests := []struct {
		name      string
		candidate float64
		want      float64
	}{
		{"inside", 300, 300},
		{"on lower bound", 68, 68},
		{"above top", 18, 68 - Damp(50, 20)},
		{"below bottom", 782, 732 + Damp(50, 20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RubberBand(tt.candidate, 68, 732, 20); !approxEqual(got, tt.want, epsilon) {
				t.Errorf("RubberBand(%v) = %v, want %v", tt.candidate, got, tt.want)
			}
		})
	}

	if got := RubberBand(782, 68, 732, 20); got >= 782 {
		t.Errorf("RubberBand beyond bound gave %v, want resistance", got)
	}
}
