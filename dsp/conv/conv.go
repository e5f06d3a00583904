// Package conv provides linear convolution and cross-correlation of finite
// buffers.
//
// Short kernels use direct time-domain convolution; longer ones switch to
// FFT-based overlap-add. All functions allocate their result and never
// modify their inputs.
//
//	full, _ := conv.Convolve(signal, fir)
//	same, _ := conv.ConvolveMode(signal, fir, conv.ModeSame) // len(signal)
//	lag, _ := conv.Delay(a, b)                               // argmax of Correlate
package conv

import (
	"errors"

	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by convolution functions.
var (
	ErrEmptyInput  = errors.New("conv: empty input")
	ErrEmptyKernel = errors.New("conv: empty kernel")
)

// Mode specifies the output mode for convolution and correlation.
type Mode int

const (
	// ModeFull returns the full result with length len(a)+len(b)-1.
	ModeFull Mode = iota

	// ModeSame returns len(a) samples centered on the full result, starting
	// at index (len(b)-1)/2.
	ModeSame

	// ModeValid returns only the portion where the inputs fully overlap.
	ModeValid
)

// directThreshold is the kernel length up to which Convolve stays in the
// time domain.
const directThreshold = 64

// Direct performs time-domain linear convolution of a and b.
func Direct(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}

	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	dst := make([]float64, len(a)+len(b)-1)
	scaled := make([]float64, len(b))

	for i, x := range a {
		if x == 0 {
			continue
		}

		vecmath.ScaleBlock(scaled, b, x)
		vecmath.AddBlockInPlace(dst[i:i+len(b)], scaled)
	}

	return dst, nil
}

// Convolve performs linear convolution, selecting direct or FFT
// overlap-add processing from the shorter input's length.
func Convolve(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}

	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	if len(b) > len(a) {
		a, b = b, a
	}

	if len(b) <= directThreshold {
		return Direct(a, b)
	}

	return OverlapAddConvolve(a, b)
}

// ConvolveMode performs convolution and trims the result to mode.
func ConvolveMode(a, b []float64, mode Mode) ([]float64, error) {
	full, err := Convolve(a, b)
	if err != nil {
		return nil, err
	}

	return trimToMode(full, len(a), len(b), mode), nil
}

func trimToMode(full []float64, lenA, lenB int, mode Mode) []float64 {
	switch mode {
	case ModeSame:
		if lenA < lenB {
			start := (lenA - 1) / 2
			return full[start : start+lenB]
		}

		start := (lenB - 1) / 2

		return full[start : start+lenA]
	case ModeValid:
		if lenA >= lenB {
			return full[lenB-1 : lenA]
		}

		return full[lenA-1 : lenB]
	default:
		return full
	}
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
