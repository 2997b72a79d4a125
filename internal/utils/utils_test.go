package utils

import (
	"math"
	"testing"
)

func TestRandSeeded(t *testing.T) {
	a, b := NewRand(42), NewRand(42)
	for i := 0; i < 100; i++ {
		if a.Float64() != b.Float64() {
			t.Fatal("same seed diverged")
		}
	}
}

func TestRandRange(t *testing.T) {
	r := NewRand(1)
	for i := 0; i < 1000; i++ {
		if v := r.Range(0.75, 1.25); v < 0.75 || v >= 1.25 {
			t.Fatalf("Range out of bounds: %v", v)
		}
	}
	if r.Chance(0) || !r.Chance(1) {
		t.Fatal("Chance edges broken")
	}
}

func TestMath(t *testing.T) {
	tests := []struct {
		name      string
		got, want float64
	}{
		{"clamp low", Clamp(-1, 0, 1), 0},
		{"clamp high", Clamp(2, 0, 1), 1},
		{"clamp mid", Clamp(0.3, 0, 1), 0.3},
		{"distance", Distance(0, 0, 3, 4), 5},
		{"angle wraps", NormalizeAngle(-math.Pi / 2), 3 * math.Pi / 2},
		{"angle full turn", NormalizeAngle(2 * math.Pi), 0},
	}
	for _, tt := range tests {
		if math.Abs(tt.got-tt.want) > 1e-12 {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}
