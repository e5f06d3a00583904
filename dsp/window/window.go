// Package window provides window functions and half-window fades used to
// taper impulse-response heads and tails.
package window

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// ErrLengthMismatch is returned by Apply when the buffer and the window
// differ in length.
var ErrLengthMismatch = errors.New("window: samples and coefficients must have same length")

// Type identifies a window function.
type Type int

const (
	TypeHann Type = iota
	// TypeKaiser is shaped by the beta set with WithAlpha.
	TypeKaiser
)

// Slope controls which half of a symmetric window is produced.
type Slope int

const (
	// SlopeSymmetric is the full window.
	SlopeSymmetric Slope = iota
	// SlopeRising is the first half, rising from zero.
	SlopeRising
	// SlopeFalling is the second half, falling towards zero.
	SlopeFalling
)

// Option configures window generation.
type Option func(*config)

type config struct {
	alpha float64
	slope Slope
}

func defaultConfig() config {
	return config{alpha: 1, slope: SlopeSymmetric}
}

// WithAlpha sets the shape parameter of parametric windows (the Kaiser
// beta). Negative values are ignored.
func WithAlpha(v float64) Option {
	return func(cfg *config) {
		if v >= 0 {
			cfg.alpha = v
		}
	}
}

// WithSlope selects a half of a window of twice the requested size.
func WithSlope(s Slope) Option {
	return func(cfg *config) {
		if s >= SlopeSymmetric && s <= SlopeFalling {
			cfg.slope = s
		}
	}
}

// Generate returns size window coefficients. For SlopeRising and
// SlopeFalling the result is the matching half of a 2*size window, so
// Generate(TypeHann, n, WithSlope(SlopeRising)) equals hann(2n)[:n].
func Generate(t Type, size int, opts ...Option) []float64 {
	if size <= 0 {
		return nil
	}

	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	switch cfg.slope {
	case SlopeRising:
		return generate(t, 2*size, cfg.alpha)[:size]
	case SlopeFalling:
		return generate(t, 2*size, cfg.alpha)[size:]
	default:
		return generate(t, size, cfg.alpha)
	}
}

func generate(t Type, size int, alpha float64) []float64 {
	out := make([]float64, size)
	if size == 1 {
		out[0] = 1
		return out
	}

	den := float64(size - 1)
	for i := range out {
		x := float64(i) / den
		switch t {
		case TypeKaiser:
			out[i] = kaiserAt(x, alpha)
		default:
			out[i] = 0.5 - 0.5*math.Cos(2*math.Pi*x)
		}
	}

	return out
}

// kaiserAt evaluates the Kaiser window at x in [0, 1].
func kaiserAt(x, beta float64) float64 {
	t := 2*x - 1
	return besselI0(beta*math.Sqrt(math.Max(0, 1-t*t))) / besselI0(beta)
}

// besselI0 evaluates the modified Bessel function of the first kind,
// order zero, by its power series.
func besselI0(x float64) float64 {
	sum := 1.0
	term := 1.0

	x2 := x * x / 4
	for k := 1; k < 64; k++ {
		term *= x2 / float64(k*k)

		sum += term
		if term < 1e-16*sum {
			break
		}
	}

	return sum
}

// Apply multiplies buf by coeffs in place.
func Apply(buf, coeffs []float64) error {
	if len(buf) != len(coeffs) {
		return ErrLengthMismatch
	}

	vecmath.MulBlockInPlace(buf, coeffs)

	return nil
}

// FadeIn tapers the first n samples of buf with the rising half of a
// 2n-point Hann window. n is clamped to len(buf).
func FadeIn(buf []float64, n int) {
	n = min(n, len(buf))
	if n <= 0 {
		return
	}

	vecmath.MulBlockInPlace(buf[:n], Generate(TypeHann, n, WithSlope(SlopeRising)))
}

// FadeOut tapers the last n samples of buf with the falling half of a
// 2n-point Hann window. n is clamped to len(buf).
func FadeOut(buf []float64, n int) {
	n = min(n, len(buf))
	if n <= 0 {
		return
	}

	vecmath.MulBlockInPlace(buf[len(buf)-n:], Generate(TypeHann, n, WithSlope(SlopeFalling)))
}
