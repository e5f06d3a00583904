package ir

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-brir/internal/testutil"
)

func TestPeakIndex(t *testing.T) {
	tests := []struct {
		name string
		ir   []float64
		want int
	}{
		{"empty", nil, -1},
		{"positive", []float64{0, 0.5, 1, 0.2}, 2},
		{"negative", []float64{0, 0.5, -2, 1}, 2},
		{"tie keeps first", []float64{0, -1, 1, 0}, 1},
	}

	for _, tt := range tests {
		if got := PeakIndex(tt.ir); got != tt.want {
			t.Fatalf("%s: PeakIndex=%d want %d", tt.name, got, tt.want)
		}
	}
}

func TestReflectionLevels(t *testing.T) {
	const fs = 1000.0 // 1 sample per ms

	data := make([]float64, 300)
	data[10] = 1 // direct: samples 10..11, RMS = 1/sqrt(2)

	for i := 30; i < 60; i++ { // early: 20..50 ms after peak
		data[i] = 0.1
	}

	for i := 60; i < 160; i++ { // late: 50..150 ms after peak
		data[i] = 0.01
	}

	a := NewAnalyzer(fs)

	got, err := a.ReflectionLevels(data, DefaultReflectionWindows())
	if err != nil {
		t.Fatalf("ReflectionLevels: %v", err)
	}

	direct := 1 / math.Sqrt2
	testutil.RequireNearlyEqual(t, "early", got.EarlyDB, 20*math.Log10(0.1/direct), 1e-6)
	testutil.RequireNearlyEqual(t, "late", got.LateDB, 20*math.Log10(0.01/direct), 1e-6)
}

func TestReflectionLevelsShortIR(t *testing.T) {
	a := NewAnalyzer(48000)

	got, err := a.ReflectionLevels(testutil.Impulse(50, 0), DefaultReflectionWindows())
	if err != nil {
		t.Fatalf("ReflectionLevels: %v", err)
	}

	// Reflection windows lie past the end: silence.
	want := 20 * math.Log10(levelEpsilon)
	testutil.RequireNearlyEqual(t, "early", got.EarlyDB, want, 1e-9)
	testutil.RequireNearlyEqual(t, "late", got.LateDB, want, 1e-9)
}

func TestReflectionLevelsErrors(t *testing.T) {
	if _, err := NewAnalyzer(48000).ReflectionLevels(nil, DefaultReflectionWindows()); !errors.Is(err, ErrEmptyIR) {
		t.Fatalf("expected ErrEmptyIR, got %v", err)
	}

	if _, err := NewAnalyzer(0).ReflectionLevels([]float64{1}, DefaultReflectionWindows()); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("expected ErrInvalidSampleRate, got %v", err)
	}

	bad := DefaultReflectionWindows()
	bad.EarlyEndMs = 10

	if _, err := NewAnalyzer(48000).ReflectionLevels([]float64{1}, bad); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("expected ErrInvalidWindow, got %v", err)
	}
}
