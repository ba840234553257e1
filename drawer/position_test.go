package drawer

import (
	"errors"
	"testing"
	"time"
)

func TestParsePosition(t *testing.T) {
	tests := []struct {
		in      string
		want    Position
		wantErr bool
	}{
		{"open", Open, false},
		{"partiallyOpen", PartiallyOpen, false},
		{"partially_open", PartiallyOpen, false},
		{"Partially-Open", PartiallyOpen, false},
		{"COLLAPSED", Collapsed, false},
		{"closed", Closed, false},
		{"half", Collapsed, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePosition(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePosition(%q) error = %v", tt.in, err)
			}
			if tt.wantErr && !errors.Is(err, ErrUnknownPosition) {
				t.Errorf("error %v does not wrap ErrUnknownPosition", err)
			}
			if got != tt.want {
				t.Errorf("ParsePosition(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}

	for _, p := range AllPositions() {
		if back, err := ParsePosition(p.String()); err != nil || back != p {
			t.Errorf("ParsePosition(%q) = %s, %v", p.String(), back, err)
		}
	}
}

func TestAdvance(t *testing.T) {
	ordered := []Position{Collapsed, PartiallyOpen, Open}

	tests := []struct {
		name    string
		ordered []Position
		from    Position
		by      int
		want    Position
		wantOK  bool
	}{
		{"one step", ordered, Collapsed, 1, PartiallyOpen, true},
		{"two steps", ordered, Collapsed, 2, Open, true},
		{"back", ordered, Open, -1, PartiallyOpen, true},
		{"past end", ordered, Open, 1, Open, false},
		{"past start", ordered, Collapsed, -1, Collapsed, false},
		{"absent", ordered, Closed, 1, Closed, false},
		{"empty", nil, Open, 0, Open, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Advance(tt.ordered, tt.from, tt.by)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Advance(%v, %s, %d) = %s, %v; want %s, %v", tt.ordered, tt.from, tt.by, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	cfg := DefaultConfig()
	cfg.Positions = nil
	cfg.DampingRatio = 0
	cfg.SettleDuration = -time.Second

	err := cfg.Validate()
	if !errors.Is(err, ErrNoPositions) {
		t.Errorf("error %v does not report missing positions", err)
	}
	if !errors.Is(err, ErrInvalidPhysics) {
		t.Errorf("error %v does not report bad physics", err)
	}

	fixed := cfg.sanitized()
	if fixed.DampingRatio != 0.8 || fixed.SettleDuration != 500*time.Millisecond {
		t.Errorf("sanitized physics = %v/%v", fixed.DampingRatio, fixed.SettleDuration)
	}
}
