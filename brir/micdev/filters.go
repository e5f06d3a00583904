package micdev

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-brir/dsp/core"
	"github.com/cwbudde/algo-brir/dsp/freqresp"
)

// ErrNoEstimate is returned by DesignFilters before an estimate exists.
var ErrNoEstimate = errors.New("micdev: no microphone error estimate")

// maxTaps is the longest correction filter.
const maxTaps = 1024

// Filters is a pair of correction FIRs.
type Filters struct {
	Left  []float64
	Right []float64
	// Identity is set when design failed and unit impulses are returned.
	Identity bool
}

// ErrorCurve returns the estimate interpolated linearly in log frequency
// onto a 1.01-step grid from 20 Hz to Nyquist, held flat outside the
// bands, scaled by the current strength and clipped to the maximum
// correction.
func (c *Corrector) ErrorCurve() (freq, errDB []float64, err error) {
	if c.estimate == nil {
		return nil, nil, ErrNoEstimate
	}

	freq = freqresp.LogFrequencies(freqresp.DefaultMinFreq, float64(c.fs)/2, freqresp.DefaultStep)
	if len(freq) == 0 {
		return nil, nil, freqresp.ErrInvalidFrequency
	}

	errDB = freqresp.Interpolate(c.estimate.Bands, c.estimate.ErrorDB, freq, true)

	limit := c.cfg.maxCorrectionDB
	for i, e := range errDB {
		errDB[i] = core.Clamp(e*c.strength, -limit, limit)
	}

	return freq, errDB, nil
}

// DesignFilters builds minimum-phase correction filters that apply half
// of the error curve to each ear with opposite signs, leaving the overall
// level unchanged. The filters are cut to min(1024, fs/10) taps. On
// failure both filters are unit impulses and the error is returned
// alongside them.
func (c *Corrector) DesignFilters() (Filters, error) {
	f, err := c.designFilters()
	if err != nil {
		c.cfg.logger.Error("microphone correction filter design failed, using identity: %v", err)
		return Filters{Left: []float64{1}, Right: []float64{1}, Identity: true}, err
	}

	return f, nil
}

func (c *Corrector) designFilters() (Filters, error) {
	freq, errDB, err := c.ErrorCurve()
	if err != nil {
		return Filters{}, err
	}

	half := make([][]float64, 2)
	for side, sign := range []float64{-0.5, 0.5} {
		curve := make([]float64, len(errDB))
		for i, e := range errDB {
			curve[i] = sign * e
		}

		fir, err := freqresp.MinimumPhaseFIR(freq, curve, float64(c.fs))
		if err != nil {
			return Filters{}, fmt.Errorf("micdev: %w", err)
		}

		half[side] = fir[:max(min(len(fir), maxTaps, c.fs/10), 1)]
	}

	return Filters{Left: half[0], Right: half[1]}, nil
}
