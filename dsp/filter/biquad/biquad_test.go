package biquad

import (
	"math"
	"math/cmplx"
	"testing"
)

const eps = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func twoSectionCoeffs() []Coefficients {
	return []Coefficients{
		{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04},
		{B0: 0.1, B1: 0.2, B2: 0.1, A1: -0.5, A2: 0.1},
	}
}

// direct evaluates one section by its difference equation.
func direct(c Coefficients, x []float64) []float64 {
	y := make([]float64, len(x))
	for n := range x {
		y[n] = c.B0 * x[n]
		if n >= 1 {
			y[n] += c.B1*x[n-1] - c.A1*y[n-1]
		}
		if n >= 2 {
			y[n] += c.B2*x[n-2] - c.A2*y[n-2]
		}
	}
	return y
}

func TestChainFilter(t *testing.T) {
	tests := []struct {
		name   string
		coeffs []Coefficients
		input  []float64
		want   []float64
	}{
		{"passthrough", []Coefficients{{B0: 1}}, []float64{1, 0, -1, 0.5}, []float64{1, 0, -1, 0.5}},
		{"pure delay", []Coefficients{{B1: 1}}, []float64{1, 2, 3, 4}, []float64{0, 1, 2, 3}},
		{"fir pair", []Coefficients{{B0: 1, B1: 0.5}}, []float64{1, 0, 0, 0}, []float64{1, 0.5, 0, 0}},
		{"empty chain", nil, []float64{3, 2}, []float64{3, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewChain(tt.coeffs).Filter(tt.input)
			for i := range tt.want {
				if !almostEqual(got[i], tt.want[i], eps) {
					t.Fatalf("y[%d]=%v want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestChainMatchesDifferenceEquation(t *testing.T) {
	coeffs := twoSectionCoeffs()
	input := []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8}

	want := direct(coeffs[1], direct(coeffs[0], input))
	got := NewChain(coeffs).Filter(input)

	for i := range want {
		if !almostEqual(got[i], want[i], eps) {
			t.Fatalf("sample %d: chain=%v direct=%v", i, got[i], want[i])
		}
	}
}

func TestChainFilterIsStateless(t *testing.T) {
	coeffs := twoSectionCoeffs()
	chain := NewChain(coeffs)
	input := []float64{1, -0.5, 0.25, 0, 0, 0.75}

	a := chain.Filter(input)
	b := chain.Filter(input)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("index %d: repeated Filter differs (%v vs %v)", i, a[i], b[i])
		}
	}

	if input[0] != 1 {
		t.Fatal("Filter modified its input")
	}

	// The chain keeps its own copy of the coefficients.
	coeffs[0].B0 = 100
	if c := chain.Filter(input); c[0] != a[0] {
		t.Fatal("chain shares the caller's coefficient slice")
	}
}

func TestChainResponseIsProductOfSections(t *testing.T) {
	coeffs := twoSectionCoeffs()
	chain := NewChain(coeffs)

	for _, f := range []float64{10, 100, 1000, 10000} {
		want := coeffs[0].Response(f, 48000) * coeffs[1].Response(f, 48000)
		got := chain.Response(f, 48000)
		if cmplx.Abs(got-want) > 1e-12 {
			t.Fatalf("f=%v: got %v, want %v", f, got, want)
		}

		wantDB := 20 * math.Log10(cmplx.Abs(want))
		if !almostEqual(chain.MagnitudeDB(f, 48000), wantDB, 1e-9) {
			t.Fatalf("f=%v: MagnitudeDB mismatch", f)
		}
	}
}

func TestResponseAtDC(t *testing.T) {
	// Sum of feedforward over sum of feedback at z = 1.
	c := twoSectionCoeffs()[0]
	want := (c.B0 + c.B1 + c.B2) / (1 + c.A1 + c.A2)

	if got := real(c.Response(0, 48000)); !almostEqual(got, want, eps) {
		t.Fatalf("DC gain %v want %v", got, want)
	}
}
