package brir

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-brir/brir/speaker"
	"github.com/cwbudde/algo-brir/dsp/core"
	"github.com/cwbudde/algo-brir/dsp/freqresp"
	"github.com/cwbudde/algo-brir/measure/ir"
	timestats "github.com/cwbudde/algo-brir/stats/time"
)

// ErrNormalizeTarget is returned when a NormalizeTarget sets both or
// neither of its targets.
var ErrNormalizeTarget = errors.New("brir: exactly one of peak and average target must be set")

// Mid-band limits of the average normalization target, exclusive.
const (
	avgLowHz  = 80.0
	avgHighHz = 6000.0
)

// NormalizeTarget selects the level Normalize aims for.
type NormalizeTarget struct {
	PeakDB     float64
	AverageDB  float64
	HasPeak    bool
	HasAverage bool
}

// PeakTarget maps the maximum of the summed-ear magnitude responses to db.
func PeakTarget(db float64) NormalizeTarget {
	return NormalizeTarget{PeakDB: db, HasPeak: true}
}

// AverageTarget maps the 80–6000 Hz mean of the summed-ear magnitude
// responses to db.
func AverageTarget(db float64) NormalizeTarget {
	return NormalizeTarget{AverageDB: db, HasAverage: true}
}

// Normalize applies one broadband gain to every response. All left ear
// responses are summed, as are all right ear responses, and the gain is
// derived from their magnitude responses. It returns the gain in dB.
func (s *Store) Normalize(target NormalizeTarget) (float64, error) {
	if target.HasPeak == target.HasAverage {
		return 0, ErrNormalizeTarget
	}

	n := s.MaxLen()
	if n == 0 {
		return 0, ErrEmptyStore
	}

	sums := [2][]float64{make([]float64, n), make([]float64, n)}
	s.Each(func(_ speaker.Code, e Ear, r *ImpulseResponse) {
		vecmath.AddBlockInPlace(sums[e][:r.Len()], r.Data)
	})

	var curves [2]*freqresp.Curve

	for e, sum := range sums {
		c, err := freqresp.FromImpulseResponse(sum, float64(s.fs))
		if err != nil {
			return 0, fmt.Errorf("brir: normalize: %w", err)
		}

		curves[e] = c
	}

	var gain float64

	if target.HasPeak {
		peak := math.Inf(-1)
		for _, c := range curves {
			for _, v := range c.Raw {
				peak = max(peak, v)
			}
		}

		gain = target.PeakDB - peak
	} else {
		var sum float64

		var count int

		for _, c := range curves {
			for i, f := range c.Frequency {
				if f > avgLowHz && f < avgHighHz {
					sum += c.Raw[i]
					count++
				}
			}
		}

		if count > 0 {
			gain = target.AverageDB - sum/float64(count)
		}
	}

	s.Scale(gain)
	s.logger.Info("applied a normalization gain of %.2f dB to all channels", gain)

	return gain, nil
}

// Scale multiplies every response by gainDB.
func (s *Store) Scale(gainDB float64) {
	g := core.DBToLinear(gainDB)

	s.Each(func(_ speaker.Code, _ Ear, r *ImpulseResponse) {
		vecmath.ScaleBlockInPlace(r.Data, g)
	})
}

// Equalize convolves every left ear response with left and every right
// ear response with right, preserving lengths. An empty filter leaves its
// side unchanged.
func (s *Store) Equalize(left, right []float64) error {
	var firstErr error

	s.Each(func(c speaker.Code, e Ear, r *ImpulseResponse) {
		fir := left
		if e == RightEar {
			fir = right
		}

		if err := r.Equalize(fir); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("brir: equalize %s %s: %w", c, e, err)
		}
	})

	return firstErr
}

// EarReflections are the reflection levels of one speaker's ears.
type EarReflections struct {
	Speaker speaker.Code
	Left    ir.ReflectionLevels
	Right   ir.ReflectionLevels
}

// ReflectionLevels measures early and late reflection levels relative to
// the direct sound for every response.
func (s *Store) ReflectionLevels(w ir.ReflectionWindows) ([]EarReflections, error) {
	a := ir.NewAnalyzer(float64(s.fs))

	var out []EarReflections

	for _, c := range s.Speakers() {
		p := s.pairs[c]

		left, err := a.ReflectionLevels(p.Left.Data, w)
		if err != nil {
			return nil, fmt.Errorf("brir: reflections %s left: %w", c, err)
		}

		right, err := a.ReflectionLevels(p.Right.Data, w)
		if err != nil {
			return nil, fmt.Errorf("brir: reflections %s right: %w", c, err)
		}

		out = append(out, EarReflections{Speaker: c, Left: left, Right: right})
	}

	return out, nil
}

// EarLevels are the time-domain level statistics of one speaker's ears.
type EarLevels struct {
	Speaker speaker.Code
	Left    timestats.Stats
	Right   timestats.Stats
}

// Levels reports peak, RMS and crest factor for every response in
// iteration order.
func (s *Store) Levels() []EarLevels {
	var out []EarLevels

	for _, c := range s.Speakers() {
		p := s.pairs[c]
		out = append(out, EarLevels{
			Speaker: c,
			Left:    timestats.Calculate(p.Left.Data),
			Right:   timestats.Calculate(p.Right.Data),
		})
	}

	return out
}
