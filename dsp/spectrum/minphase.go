package spectrum

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-vecmath"
)

// ErrZeroMagnitude is returned when a magnitude spectrum carries no energy
// and has no defined minimum-phase counterpart.
var ErrZeroMagnitude = errors.New("spectrum: magnitude spectrum is all zero")

// magnitudeFloor is the smallest magnitude, relative to the maximum, fed
// into the logarithm.
const magnitudeFloor = 1e-10

// MinimumPhase reconstructs the minimum-phase impulse response whose
// magnitude spectrum is mag, given as n/2+1 one-sided bins of an n-point
// transform (n a power of two). The real cepstrum of log|mag| is folded onto
// positive quefrencies and exponentiated back. The result has n samples.
func MinimumPhase(mag []float64) ([]float64, error) {
	n := 2 * (len(mag) - 1)
	if !isPowerOf2(n) || n < 2 {
		return nil, fmt.Errorf("%w: %d bins", ErrInvalidLength, len(mag))
	}

	peak := vecmath.MaxAbs(mag)
	if peak == 0 || math.IsNaN(peak) || math.IsInf(peak, 0) {
		return nil, ErrZeroMagnitude
	}

	floor := peak * magnitudeFloor
	logMag := make([]complex128, n/2+1)

	for k, m := range mag {
		logMag[k] = complex(math.Log(max(math.Abs(m), floor)), 0)
	}

	cep, err := IRFFT(logMag, n)
	if err != nil {
		return nil, err
	}

	// Fold: keep c[0] and c[n/2], double positive quefrencies, drop the rest.
	for i := 1; i < n/2; i++ {
		cep[i] *= 2
		cep[n-i] = 0
	}

	spec, err := RFFT(cep, n)
	if err != nil {
		return nil, err
	}

	for k, c := range spec {
		spec[k] = cmplx.Exp(c)
	}

	return IRFFT(spec, n)
}

// MinimumPhaseOf returns a minimum-phase version of x with the same
// magnitude spectrum, evaluated on the next power-of-two transform length
// and cut or zero-padded back to len(x).
func MinimumPhaseOf(x []float64) ([]float64, error) {
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}

	n := max(NextPowerOf2(len(x)), 2)

	bins, err := RFFT(x, n)
	if err != nil {
		return nil, err
	}

	mp, err := MinimumPhase(Magnitude(bins))
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(x))
	copy(out, mp)

	return out, nil
}
