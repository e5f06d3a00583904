package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		lo       float64
		hi       float64
		expected float64
	}{
		{name: "inside", value: 0.5, lo: 0, hi: 1, expected: 0.5},
		{name: "below", value: -1, lo: 0, hi: 1, expected: 0},
		{name: "above", value: 2, lo: 0, hi: 1, expected: 1},
		{name: "swapped", value: 2, lo: 1, hi: 0, expected: 1},
		{name: "symmetric limit", value: -9, lo: -6, hi: 6, expected: -6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.lo, tt.hi)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDBConversions(t *testing.T) {
	linear := DBToLinear(-6)
	if db := LinearToDB(linear); math.Abs(db+6) > 1e-10 {
		t.Fatalf("LinearToDB(DBToLinear(-6)) = %v, want -6", db)
	}

	if g := DBToLinear(20); math.Abs(g-10) > 1e-12 {
		t.Fatalf("DBToLinear(20) = %v, want 10", g)
	}

	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatal("expected -Inf for zero")
	}

	if !math.IsNaN(LinearToDB(-1)) {
		t.Fatal("expected NaN for negative amplitude")
	}
}

func TestFlooredDB(t *testing.T) {
	tests := []struct {
		name string
		mag  float64
		want float64
	}{
		{name: "unity", mag: 1, want: 0},
		{name: "tenth", mag: 0.1, want: -20},
		{name: "zero", mag: 0, want: -120},
		{name: "negative", mag: -1, want: -120},
		{name: "below floor", mag: 1e-9, want: -120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FlooredDB(tt.mag, -120); math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("FlooredDB(%v) = %v, want %v", tt.mag, got, tt.want)
			}
		})
	}
}
