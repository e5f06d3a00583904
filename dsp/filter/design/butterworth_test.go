package design

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-brir/dsp/filter/biquad"
)

const fs = 48000.0

func magDB(sections []biquad.Coefficients, freq float64) float64 {
	return biquad.NewChain(sections).MagnitudeDB(freq, fs)
}

func TestButterworthSectionCount(t *testing.T) {
	tests := []struct {
		order int
		want  int
	}{
		{0, 0},
		{1, 1},
		{2, 1},
		{4, 2},
		{5, 3},
		{8, 4},
	}

	for _, tt := range tests {
		if got := len(ButterworthLP(1000, tt.order, fs)); got != tt.want {
			t.Fatalf("LP order %d: %d sections, want %d", tt.order, got, tt.want)
		}

		if got := len(ButterworthHP(1000, tt.order, fs)); got != tt.want {
			t.Fatalf("HP order %d: %d sections, want %d", tt.order, got, tt.want)
		}
	}
}

func TestButterworthCutoffIsMinus3dB(t *testing.T) {
	for _, order := range []int{1, 2, 4, 8} {
		lp := ButterworthLP(250, order, fs)
		hp := ButterworthHP(250, order, fs)

		if got := magDB(lp, 250); math.Abs(got+3.0103) > 0.01 {
			t.Fatalf("LP order %d: %.4f dB at cutoff", order, got)
		}

		if got := magDB(hp, 250); math.Abs(got+3.0103) > 0.01 {
			t.Fatalf("HP order %d: %.4f dB at cutoff", order, got)
		}
	}
}

func TestButterworthPassbandAndSlope(t *testing.T) {
	lp2 := ButterworthLP(250, 2, fs)
	lp8 := ButterworthLP(250, 8, fs)
	hp8 := ButterworthHP(250, 8, fs)

	if got := magDB(lp8, 20); math.Abs(got) > 0.01 {
		t.Fatalf("LP8 passband %.4f dB", got)
	}

	if got := magDB(hp8, 5000); math.Abs(got) > 0.01 {
		t.Fatalf("HP8 passband %.4f dB", got)
	}

	// One octave above cutoff: about -12 dB for order 2 and -48 dB for 8.
	if a, b := magDB(lp2, 500), magDB(lp8, 500); b > a-30 {
		t.Fatalf("order 8 not steeper: %.2f vs %.2f dB", b, a)
	}

	if got := magDB(hp8, 125); got > -45 {
		t.Fatalf("HP8 one octave below cutoff: %.2f dB", got)
	}
}

func TestButterworthBandpass(t *testing.T) {
	lo := 1000 / math.Pow(2, 1.0/6)
	hi := 1000 * math.Pow(2, 1.0/6)

	sections, err := ButterworthBandpass(lo, hi, 4, fs)
	if err != nil {
		t.Fatalf("ButterworthBandpass: %v", err)
	}

	if len(sections) != 4 {
		t.Fatalf("%d sections, want 4", len(sections))
	}

	center := magDB(sections, 1000)
	if center > 0 || center < -4 {
		t.Fatalf("center gain %.2f dB", center)
	}

	if magDB(sections, 250) > center-30 || magDB(sections, 4000) > center-30 {
		t.Fatal("band-pass does not reject two octaves away")
	}
}

func TestButterworthBandpassInvalid(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi float64
		order  int
		rate   float64
	}{
		{"inverted", 2000, 1000, 4, fs},
		{"above nyquist", 1000, 30000, 4, fs},
		{"zero low", 0, 1000, 4, fs},
		{"zero order", 500, 1000, 0, fs},
		{"zero rate", 500, 1000, 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ButterworthBandpass(tt.lo, tt.hi, tt.order, tt.rate); !errors.Is(err, ErrInvalidParams) {
				t.Fatalf("expected ErrInvalidParams, got %v", err)
			}
		})
	}
}

func TestRBJInvalidFrequencyMutes(t *testing.T) {
	if c := Lowpass(30000, 0.7, fs); c != (biquad.Coefficients{}) {
		t.Fatalf("expected zero coefficients, got %+v", c)
	}

	if c := Highpass(-1, 0.7, fs); c != (biquad.Coefficients{}) {
		t.Fatalf("expected zero coefficients, got %+v", c)
	}
}

func TestButterworthQ(t *testing.T) {
	if q := butterworthQ(2, 0); math.Abs(q-1/math.Sqrt2) > 1e-12 {
		t.Fatalf("order 2 Q=%v", q)
	}
}
