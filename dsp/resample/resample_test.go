package resample

import (
	"errors"
	"math"
	"testing"
)

func TestNewRationalValidation(t *testing.T) {
	if _, err := NewRational(0, 1); !errors.Is(err, ErrInvalidRatio) {
		t.Fatalf("up=0: expected ErrInvalidRatio, got %v", err)
	}

	if _, err := NewRational(1, -2); !errors.Is(err, ErrInvalidRatio) {
		t.Fatalf("down<0: expected ErrInvalidRatio, got %v", err)
	}
}

func TestNewForRatesValidation(t *testing.T) {
	tests := []struct {
		in, out float64
	}{
		{0, 48000},
		{48000, -1},
		{math.NaN(), 48000},
	}

	for _, tt := range tests {
		if _, err := NewForRates(tt.in, tt.out); !errors.Is(err, ErrInvalidRate) {
			t.Fatalf("NewForRates(%v, %v): expected ErrInvalidRate, got %v", tt.in, tt.out, err)
		}
	}
}

func TestRatioReduction(t *testing.T) {
	r, err := NewRational(320, 294)
	if err != nil {
		t.Fatalf("NewRational() error = %v", err)
	}

	if up, down := r.Ratio(); up != 160 || down != 147 {
		t.Fatalf("ratio = %d/%d, want 160/147", up, down)
	}
}

func TestNewForRatesRatio(t *testing.T) {
	tests := []struct {
		in, out  float64
		up, down int
	}{
		{44100, 48000, 160, 147},
		{48000, 44100, 147, 160},
		{48000, 96000, 2, 1},
		{96000, 48000, 1, 2},
		{48000, 48000, 1, 1},
	}

	for _, tt := range tests {
		r, err := NewForRates(tt.in, tt.out)
		if err != nil {
			t.Fatalf("NewForRates(%v, %v): %v", tt.in, tt.out, err)
		}

		if up, down := r.Ratio(); up != tt.up || down != tt.down {
			t.Fatalf("%v->%v ratio = %d/%d, want %d/%d", tt.in, tt.out, up, down, tt.up, tt.down)
		}
	}
}

func TestOutputLen(t *testing.T) {
	tests := []struct {
		up, down, in, want int
	}{
		{2, 1, 100, 200},
		{1, 2, 101, 51},
		{160, 147, 4096, 4459},
		{3, 2, 0, 0},
	}

	for _, tt := range tests {
		r, err := NewRational(tt.up, tt.down, WithQuality(QualityFast))
		if err != nil {
			t.Fatalf("NewRational: %v", err)
		}

		if got := r.OutputLen(tt.in); got != tt.want {
			t.Fatalf("%d/%d OutputLen(%d) = %d, want %d", tt.up, tt.down, tt.in, got, tt.want)
		}

		if tt.in > 0 {
			if got := len(r.Process(make([]float64, tt.in))); got != tt.want {
				t.Fatalf("%d/%d len(Process) = %d, want %d", tt.up, tt.down, got, tt.want)
			}
		}
	}
}

func TestProcessKeepsOnsetTime(t *testing.T) {
	tests := []struct {
		up, down int
		at, want int
	}{
		{2, 1, 100, 200},
		{1, 2, 200, 100},
		{3, 1, 50, 150},
	}

	for _, tt := range tests {
		in := make([]float64, 512)
		in[tt.at] = 1

		out, err := Resample(in, tt.up, tt.down)
		if err != nil {
			t.Fatalf("Resample: %v", err)
		}

		peak := 0
		for i, v := range out {
			if math.Abs(v) > math.Abs(out[peak]) {
				peak = i
			}
		}

		if peak != tt.want {
			t.Fatalf("%d/%d: peak at %d, want %d", tt.up, tt.down, peak, tt.want)
		}
	}
}

func TestProcessPreservesDC(t *testing.T) {
	tests := []struct {
		q   Quality
		tol float64
	}{
		{QualityFast, 1e-2},
		{QualityBalanced, 2e-3},
		{QualityBest, 1e-3},
	}

	for _, tt := range tests {
		r, err := NewForRates(44100, 48000, WithQuality(tt.q))
		if err != nil {
			t.Fatalf("NewForRates: %v", err)
		}

		in := make([]float64, 2048)
		for i := range in {
			in[i] = 0.5
		}

		out := r.Process(in)

		// Skip the edges where the filter sees the buffer boundary.
		for i := 200; i < len(out)-200; i++ {
			if math.Abs(out[i]-0.5) > tt.tol {
				t.Fatalf("quality %d: out[%d] = %v, want 0.5", tt.q, i, out[i])
			}
		}
	}
}

func TestProcessAttenuatesAboveNewNyquist(t *testing.T) {
	const inRate = 96000.0

	// 30 kHz cannot be represented at 48 kHz.
	in := make([]float64, 8192)
	for i := range in {
		in[i] = math.Sin(2 * math.Pi * 30000 * float64(i) / inRate)
	}

	out, err := Resample(in, 1, 2, WithQuality(QualityBest))
	if err != nil {
		t.Fatalf("Resample: %v", err)
	}

	var peak float64
	for _, v := range out[500 : len(out)-500] {
		peak = math.Max(peak, math.Abs(v))
	}

	if peak > 1e-3 {
		t.Fatalf("aliased component peak = %v", peak)
	}
}

func TestOptionsOverrideProfile(t *testing.T) {
	r, err := NewRational(2, 1, WithQuality(QualityFast), WithTapsPerPhase(8), WithKaiserBeta(6), WithCutoffScale(0.8))
	if err != nil {
		t.Fatalf("NewRational: %v", err)
	}

	if got, want := len(r.Prototype()), 8*2+1; got != want {
		t.Fatalf("prototype length = %d, want %d", got, want)
	}

	if r.Quality() != QualityFast {
		t.Fatalf("quality = %d", r.Quality())
	}

	// Invalid values fall back to the profile.
	r, err = NewRational(2, 1, WithTapsPerPhase(-1), WithCutoffScale(2), WithKaiserBeta(-1))
	if err != nil {
		t.Fatalf("NewRational: %v", err)
	}

	if got, want := len(r.Prototype()), QualityProfile(QualityBalanced).TapsPerPhase*2+1; got != want {
		t.Fatalf("prototype length = %d, want %d", got, want)
	}
}

func TestApproximateRatio(t *testing.T) {
	tests := []struct {
		v        float64
		maxDen   int
		num, den int
	}{
		{48000.0 / 44100.0, 4096, 160, 147},
		{math.Pi, 7, 22, 7},
		{0.5, 4096, 1, 2},
		{-1, 4096, 1, 1},
		{math.Inf(1), 4096, 1, 1},
	}

	for _, tt := range tests {
		num, den := approximateRatio(tt.v, tt.maxDen)
		if num != tt.num || den != tt.den {
			t.Fatalf("approximateRatio(%v, %d) = %d/%d, want %d/%d", tt.v, tt.maxDen, num, den, tt.num, tt.den)
		}
	}
}
