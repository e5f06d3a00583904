package freqresp

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-brir/dsp/core"
	"github.com/cwbudde/algo-brir/dsp/spectrum"
)

// ErrNoEqualization is returned when a minimum-phase filter is requested
// before an equalization curve exists.
var ErrNoEqualization = errors.New("freqresp: equalization curve is empty")

// firResolution is the target frequency resolution of generated FIRs in Hz.
const firResolution = 10.0

// Equalize derives Equalization as the inverse of ErrorSmoothed (Error when
// not smoothed), with boosts limited to maxGain dB.
func (c *Curve) Equalize(maxGain float64) {
	src := c.ErrorSmoothed
	if len(src) != len(c.Frequency) {
		src = c.Error
	}

	eq := make([]float64, len(c.Frequency))
	if len(src) == len(eq) {
		for i, e := range src {
			eq[i] = math.Min(-e, maxGain)
		}
	}

	c.Equalization = eq
}

// MinimumPhaseFIR converts Equalization into a minimum-phase FIR at
// sampleRate.
func (c *Curve) MinimumPhaseFIR(sampleRate float64) ([]float64, error) {
	if len(c.Equalization) == 0 {
		return nil, ErrNoEqualization
	}

	return MinimumPhaseFIR(c.Frequency, c.Equalization, sampleRate)
}

// MinimumPhaseFIR builds a minimum-phase FIR whose magnitude follows the
// dB curve gainDB over freq, log-linearly interpolated onto the FFT bins
// with flat extension beyond the curve's ends. The transform length is the
// power of two giving at most 10 Hz resolution; the FIR keeps its first
// half.
func MinimumPhaseFIR(freq, gainDB []float64, sampleRate float64) ([]float64, error) {
	if len(freq) == 0 || len(freq) != len(gainDB) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(freq), len(gainDB))
	}

	if sampleRate <= 0 {
		return nil, ErrInvalidFrequency
	}

	n := max(spectrum.NextPowerOf2(int(math.Ceil(sampleRate/firResolution))), 2)
	binFreq := spectrum.Frequencies(n, sampleRate)
	db := Interpolate(freq, gainDB, binFreq, true)

	mag := make([]float64, len(db))
	for i, g := range db {
		mag[i] = core.DBToLinear(g)
	}

	mp, err := spectrum.MinimumPhase(mag)
	if err != nil {
		return nil, fmt.Errorf("freqresp: %w", err)
	}

	return mp[:n/2], nil
}
