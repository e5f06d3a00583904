package freqresp

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-brir/dsp/core"
	"github.com/cwbudde/algo-brir/dsp/spectrum"
)

// Errors returned by curve construction.
var (
	ErrEmptyCurve       = errors.New("freqresp: empty curve")
	ErrLengthMismatch   = errors.New("freqresp: frequency and gain lengths differ")
	ErrInvalidFrequency = errors.New("freqresp: frequencies must be positive and increasing")
)

const (
	// DefaultStep is the ratio between neighboring grid frequencies.
	DefaultStep = 1.01
	// DefaultMinFreq is the lowest grid frequency in Hz.
	DefaultMinFreq = 20.0

	// silenceDB replaces log magnitudes of empty bins.
	silenceDB = -200.0
)

// Curve is a set of dB curves sampled on one frequency grid.
type Curve struct {
	Frequency []float64
	Raw       []float64

	Smoothed      []float64
	Target        []float64
	Error         []float64
	ErrorSmoothed []float64
	Equalization  []float64
}

// LogFrequencies returns a geometric grid from fMin up to and including
// fMax with the given step ratio.
func LogFrequencies(fMin, fMax, step float64) []float64 {
	if fMin <= 0 || fMax < fMin || step <= 1 {
		return nil
	}

	n := int(math.Floor(math.Log(fMax/fMin)/math.Log(step))) + 1
	out := make([]float64, n)

	for i := range out {
		out[i] = fMin * math.Pow(step, float64(i))
	}

	if out[n-1] < fMax {
		out = append(out, fMax)
	}

	return out
}

// New returns a curve over freq with a copy of raw.
func New(freq, raw []float64) (*Curve, error) {
	if len(freq) == 0 {
		return nil, ErrEmptyCurve
	}

	if len(freq) != len(raw) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(freq), len(raw))
	}

	for i, f := range freq {
		if f <= 0 || (i > 0 && f <= freq[i-1]) {
			return nil, ErrInvalidFrequency
		}
	}

	return &Curve{
		Frequency: slices.Clone(freq),
		Raw:       slices.Clone(raw),
	}, nil
}

// FromImpulseResponse returns the magnitude response of ir in dB on the
// default logarithmic grid from 20 Hz to Nyquist.
func FromImpulseResponse(ir []float64, sampleRate float64) (*Curve, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyCurve
	}

	n := max(spectrum.NextPowerOf2(len(ir)), 2)

	bins, err := spectrum.RFFT(ir, n)
	if err != nil {
		return nil, fmt.Errorf("freqresp: %w", err)
	}

	mag := spectrum.Magnitude(bins)
	binFreq := spectrum.Frequencies(n, sampleRate)

	db := make([]float64, len(mag))
	for i, m := range mag {
		db[i] = toDB(m)
	}

	grid := LogFrequencies(DefaultMinFreq, sampleRate/2, DefaultStep)
	if len(grid) == 0 {
		return nil, ErrInvalidFrequency
	}

	return New(grid, Interpolate(binFreq, db, grid, false))
}

func toDB(m float64) float64 {
	return core.FlooredDB(m, silenceDB)
}

// Interpolate evaluates the piecewise-linear curve (xs, ys) at each of at,
// holding the end values outside the range. With logX the interpolation is
// linear in log10 frequency; xs must then be positive.
func Interpolate(xs, ys, at []float64, logX bool) []float64 {
	out := make([]float64, len(at))

	switch len(xs) {
	case 0:
		return out
	case 1:
		for i := range out {
			out[i] = ys[0]
		}

		return out
	}

	kx := xs
	if logX {
		kx = make([]float64, len(xs))
		for i, x := range xs {
			kx[i] = math.Log10(x)
		}
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(kx, ys); err != nil {
		return out
	}

	for i, x := range at {
		if logX {
			if x <= 0 {
				out[i] = ys[0]
				continue
			}

			x = math.Log10(x)
		}

		out[i] = pl.Predict(x)
	}

	return out
}

// Copy returns a deep copy of c.
func (c *Curve) Copy() *Curve {
	return &Curve{
		Frequency:     slices.Clone(c.Frequency),
		Raw:           slices.Clone(c.Raw),
		Smoothed:      slices.Clone(c.Smoothed),
		Target:        slices.Clone(c.Target),
		Error:         slices.Clone(c.Error),
		ErrorSmoothed: slices.Clone(c.ErrorSmoothed),
		Equalization:  slices.Clone(c.Equalization),
	}
}

// MeanIn returns the mean of Raw over frequencies within [lo, hi]. It
// returns 0 when no grid point falls inside the range.
func (c *Curve) MeanIn(lo, hi float64) float64 {
	var vals []float64

	for i, f := range c.Frequency {
		if f >= lo && f <= hi {
			vals = append(vals, c.Raw[i])
		}
	}

	if len(vals) == 0 {
		return 0
	}

	return stat.Mean(vals, nil)
}

// Center shifts Raw (and Smoothed when present) so that the mean level
// over [lo, hi] becomes 0 dB. It returns the applied gain in dB.
func (c *Curve) Center(lo, hi float64) float64 {
	gain := -c.MeanIn(lo, hi)
	c.Shift(gain)

	return gain
}

// Shift adds gain dB to Raw and, when present, Smoothed.
func (c *Curve) Shift(gain float64) {
	addScalar(c.Raw, gain)
	addScalar(c.Smoothed, gain)
}

func addScalar(x []float64, v float64) {
	for i := range x {
		x[i] += v
	}
}
