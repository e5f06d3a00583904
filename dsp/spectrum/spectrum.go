package spectrum

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by spectrum functions.
var (
	ErrEmptyInput    = errors.New("spectrum: empty input")
	ErrInvalidLength = errors.New("spectrum: transform length must be a power of two >= 2")
)

// NextPowerOf2 returns the smallest power of two >= n (1 for n <= 1).
func NextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}

func isPowerOf2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// RFFT returns the n/2+1 non-negative frequency bins of x zero-padded to n.
// n must be a power of two and at least len(x).
func RFFT(x []float64, n int) ([]complex128, error) {
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}

	if !isPowerOf2(n) || n < 2 || n < len(x) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("spectrum: failed to create FFT plan: %w", err)
	}

	buf := make([]complex128, n)
	for i, v := range x {
		buf[i] = complex(v, 0)
	}

	if err := plan.Forward(buf, buf); err != nil {
		return nil, fmt.Errorf("spectrum: forward FFT failed: %w", err)
	}

	return buf[:n/2+1], nil
}

// IRFFT inverts a one-sided spectrum of n/2+1 bins back to n real samples,
// assuming Hermitian symmetry.
func IRFFT(bins []complex128, n int) ([]float64, error) {
	if !isPowerOf2(n) || n < 2 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}

	if len(bins) != n/2+1 {
		return nil, fmt.Errorf("spectrum: got %d bins for length %d", len(bins), n)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("spectrum: failed to create FFT plan: %w", err)
	}

	buf := hermitian(bins, n)
	if err := plan.Inverse(buf, buf); err != nil {
		return nil, fmt.Errorf("spectrum: inverse FFT failed: %w", err)
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = real(buf[i])
	}

	return out, nil
}

func hermitian(bins []complex128, n int) []complex128 {
	full := make([]complex128, n)
	copy(full, bins)

	for k := 1; k < n/2; k++ {
		c := bins[k]
		full[n-k] = complex(real(c), -imag(c))
	}

	return full
}

// Magnitude returns |X[k]| for each bin.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	re := make([]float64, len(in))
	im := make([]float64, len(in))

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	out := make([]float64, len(in))
	vecmath.Magnitude(out, re, im)

	return out
}

// Frequencies returns the center frequency of each one-sided bin of an
// n-point transform.
func Frequencies(n int, sampleRate float64) []float64 {
	if n <= 0 {
		return nil
	}

	out := make([]float64, n/2+1)
	for k := range out {
		out[k] = float64(k) * sampleRate / float64(n)
	}

	return out
}

// NearestBin returns the non-negative bin of an n-point transform whose
// frequency is closest to freq. Ties resolve to the lower bin.
func NearestBin(freq, sampleRate float64, n int) int {
	if n <= 0 || sampleRate <= 0 {
		return 0
	}

	k := int(math.Ceil(freq*float64(n)/sampleRate - 0.5))

	return max(0, min(k, n/2))
}

// Bin evaluates bin k of the n-point DFT of x zero-padded (or truncated)
// to n samples. n needs not be a power of two.
func Bin(x []float64, k, n int) complex128 {
	if n <= 0 {
		return 0
	}

	var re, im float64

	for i, v := range x[:min(len(x), n)] {
		if v == 0 {
			continue
		}

		phase := -2 * math.Pi * float64((k*i)%n) / float64(n)
		s, c := math.Sincos(phase)
		re += v * c
		im += v * s
	}

	return complex(re, im)
}
