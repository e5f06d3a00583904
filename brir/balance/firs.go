package balance

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-brir/dsp/core"
	"github.com/cwbudde/algo-brir/dsp/freqresp"
)

// ErrGridMismatch is returned when the two responses are not sampled on
// the same frequency grid.
var ErrGridMismatch = errors.New("balance: frequency responses use different grids")

const (
	// maxBoostDB limits equalization boosts.
	maxBoostDB = 15.0
	// trebleStartHz is where smoothing widens toward the treble window.
	trebleStartHz = 20000.0

	centerLowHz  = 100.0
	centerHighHz = 10000.0
	midsHighHz   = 3000.0

	gainFIRSeconds = 0.1
)

// FIRs derives the left and right FIR filters for method m from the
// magnitude responses of the two ears. The input curves are not modified.
// Both returned filters have the same length.
func FIRs(left, right *freqresp.Curve, m Method, fs int) ([]float64, []float64, error) {
	if fs <= 0 {
		return nil, nil, freqresp.ErrInvalidFrequency
	}

	if left == nil || right == nil || len(left.Frequency) == 0 {
		return nil, nil, freqresp.ErrEmptyCurve
	}

	if len(left.Frequency) != len(right.Frequency) || len(left.Raw) != len(right.Raw) {
		return nil, nil, fmt.Errorf("%w: %d vs %d points", ErrGridMismatch, len(left.Frequency), len(right.Frequency))
	}

	l, r := left.Copy(), right.Copy()
	nyquist := float64(fs) / 2

	switch m.Kind {
	case Trend:
		return trendFIRs(l, r, fs, nyquist)
	case LeftReference:
		fir, err := referenceFIR(l, r, fs, nyquist)
		return unitImpulse(len(fir), 1), fir, err
	case RightReference:
		fir, err := referenceFIR(r, l, fs, nyquist)
		return fir, unitImpulse(len(fir), 1), err
	case Average, Minimum:
		return targetFIRs(l, r, m.Kind, fs)
	case Mids:
		gain := r.Center(centerLowHz, midsHighHz) - l.Center(centerLowHz, midsHighHz)
		return gainFIRs(gain, fs)
	case Fixed:
		return gainFIRs(m.GainDB, fs)
	default:
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidMethod, m)
	}
}

func trendFIRs(l, r *freqresp.Curve, fs int, nyquist float64) ([]float64, []float64, error) {
	diff := make([]float64, len(l.Raw))
	for i := range diff {
		diff[i] = l.Raw[i] - r.Raw[i]
	}

	trend, err := freqresp.New(l.Frequency, diff)
	if err != nil {
		return nil, nil, err
	}

	trend.Smoothen(2, freqresp.WithTreble(trebleStartHz, nyquist))

	fir, err := freqresp.MinimumPhaseFIR(trend.Frequency, trend.Smoothed, float64(fs))
	if err != nil {
		return nil, nil, err
	}

	return unitImpulse(len(fir), 1), fir, nil
}

// referenceFIR equalizes subj toward the smoothed, level-centered ref.
func referenceFIR(ref, subj *freqresp.Curve, fs int, nyquist float64) ([]float64, error) {
	ref.Smoothen(1.0/3, freqresp.WithTreble(trebleStartHz, nyquist))
	subj.Shift(ref.Center(centerLowHz, centerHighHz))

	subj.Target = ref.Smoothed
	subj.Error = difference(subj.Raw, subj.Target)
	subj.SmoothenHeavyLight()
	subj.Equalize(maxBoostDB)

	return subj.MinimumPhaseFIR(float64(fs))
}

func targetFIRs(l, r *freqresp.Curve, kind Kind, fs int) ([]float64, []float64, error) {
	gain := (-l.MeanIn(centerLowHz, centerHighHz) - r.MeanIn(centerLowHz, centerHighHz)) / 2
	l.Shift(gain)
	r.Shift(gain)

	// The target follows the unsmoothed responses; smoothing is applied to
	// the error below.
	target := make([]float64, len(l.Raw))
	for i := range target {
		if kind == Minimum {
			target[i] = math.Min(l.Raw[i], r.Raw[i])
		} else {
			target[i] = (l.Raw[i] + r.Raw[i]) / 2
		}
	}

	firs := make([][]float64, 2)

	for i, c := range []*freqresp.Curve{l, r} {
		c.Target = target
		c.Error = difference(c.Raw, target)
		c.Smoothen(1.0 / 3)
		c.Equalize(maxBoostDB)

		fir, err := c.MinimumPhaseFIR(float64(fs))
		if err != nil {
			return nil, nil, err
		}

		firs[i] = fir
	}

	return firs[0], firs[1], nil
}

func gainFIRs(gainDB float64, fs int) ([]float64, []float64, error) {
	n := max(int(math.Round(gainFIRSeconds*float64(fs))), 1)

	return unitImpulse(n, 1), unitImpulse(n, core.DBToLinear(gainDB)), nil
}

func difference(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range out {
		out[i] = a[i] - b[i]
	}

	return out
}

func unitImpulse(n int, amplitude float64) []float64 {
	if n <= 0 {
		return nil
	}

	out := make([]float64, n)
	out[0] = amplitude

	return out
}
