package vbass

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-brir/brir"
	"github.com/cwbudde/algo-brir/brir/speaker"
	"github.com/cwbudde/algo-brir/dsp/filter/biquad"
	"github.com/cwbudde/algo-brir/dsp/filter/crossover"
	"github.com/cwbudde/algo-brir/dsp/filter/design"
	"github.com/cwbudde/algo-brir/dsp/spectrum"
	"github.com/cwbudde/algo-brir/measure/ir"
)

// gainFloor is the smallest bass magnitude at the crossover that is gain
// matched; below it the bass keeps unity gain.
const gainFloor = 1e-10

// Channel describes the bass synthesized for one ear response.
type Channel struct {
	Speaker speaker.Code
	Ear     brir.Ear
	// Polarity is +1 or -1.
	Polarity float64
	// Gain is the factor matching the bass to the high band.
	Gain float64
	// Shift is how many samples the bass was moved earlier.
	Shift int
	// MinimumPhase is false when the magnitude fallback was used.
	MinimumPhase bool
}

// Report is the outcome of Synthesize.
type Report struct {
	// Aborted is set when the crossover is not below Nyquist; the store is
	// then unchanged.
	Aborted   bool
	Crossover float64
	Shelf     Shelf
	HasShelf  bool
	Channels  []Channel

	Advisories []brir.Advisory
}

type synth struct {
	cfg      config
	fs       int
	xo       *crossover.Crossover
	rumble   *biquad.Chain
	shelf    Shelf
	hasShelf bool
	shelfLP  *biquad.Chain
	head     int
}

// Synthesize replaces the content below the crossover of every response
// in the store with synthesized bass. Each output is the high band of the
// original plus the bass, at the original length.
//
// A crossover at or above Nyquist is logged and leaves the store
// untouched with Report.Aborted set; it is not an error.
func Synthesize(store *brir.Store, opts ...Option) (Report, error) {
	cfg := defaultConfig()
	cfg.logger = store.Logger()

	for _, o := range opts {
		o(&cfg)
	}

	s, err := newSynth(cfg, store.SampleRate())
	if err != nil {
		cfg.logger.Error("virtual bass skipped: %v", err)
		return Report{Aborted: true, Crossover: cfg.crossover}, nil
	}

	if cfg.crossover > crossoverWarnHz {
		cfg.logger.Warning("virtual bass crossover of %.0f Hz is above %.0f Hz and may affect localization", cfg.crossover, crossoverWarnHz)
	}

	report := Report{Crossover: cfg.crossover, Shelf: s.shelf, HasShelf: s.hasShelf}

	store.Each(func(c speaker.Code, e brir.Ear, r *brir.ImpulseResponse) {
		out, ch := s.process(r.Data, c, e)
		if !ch.MinimumPhase {
			adv := brir.NewAdvisory(brir.AdvisoryMinimumPhaseFallback, c,
				"%s ear bass used the magnitude fallback", e)
			report.Advisories = append(report.Advisories, adv)
			cfg.logger.Warning("%s", adv)
		}

		r.Data = out
		report.Channels = append(report.Channels, ch)
	})

	cfg.logger.Success("virtual bass synthesized below %.0f Hz for %d channels", cfg.crossover, len(report.Channels))

	return report, nil
}

func newSynth(cfg config, fs int) (*synth, error) {
	nyquist := float64(fs) / 2
	if cfg.crossover >= nyquist {
		return nil, fmt.Errorf("crossover %.0f Hz is not below Nyquist %.0f Hz", cfg.crossover, nyquist)
	}

	xo, err := crossover.New(cfg.crossover, crossoverOrder, float64(fs))
	if err != nil {
		return nil, err
	}

	s := &synth{
		cfg:  cfg,
		fs:   fs,
		xo:   xo,
		head: int(cfg.headMs * float64(fs) / 1000),
	}

	if cfg.highpass < nyquist {
		s.rumble = biquad.NewChain(design.ButterworthHP(cfg.highpass, rumbleOrder, float64(fs)))
	}

	s.shelf, s.hasShelf = SelectShelf(cfg.crossover)
	if s.hasShelf {
		s.shelfLP = biquad.NewChain(design.ButterworthLP(s.shelf.Freq, shelfOrder, float64(fs)))
	}

	return s, nil
}

func (s *synth) process(data []float64, c speaker.Code, e brir.Ear) ([]float64, Channel) {
	ch := Channel{Speaker: c, Ear: e, Polarity: 1, Gain: 1, MinimumPhase: true}
	if len(data) == 0 {
		return data, ch
	}

	high, bass, pol, minPhase := s.bassBand(data)
	ch.Polarity, ch.MinimumPhase = pol, minPhase

	ch.Gain = matchGain(high, bass, s.cfg.crossover, s.fs)
	vecmath.ScaleBlockInPlace(bass, ch.Gain*pol)

	if s.hasShelf {
		s.applyShelf(bass, c.Side(), e.Side())
	}

	bass, ch.Shift = alignPeak(bass, s.head)

	vecmath.AddBlockInPlace(high, bass[:len(high)])

	return high, ch
}

// bassBand splits data at the crossover and returns the high band and the
// polarity corrected, minimum-phase, rumble filtered low band.
func (s *synth) bassBand(data []float64) (high, bass []float64, pol float64, minPhase bool) {
	low, high := s.xo.Split(data)

	pol = s.polarity(low)
	vecmath.ScaleBlockInPlace(low, pol)

	bass, err := spectrum.MinimumPhaseOf(low)
	minPhase = err == nil

	if !minPhase {
		bass = make([]float64, len(low))
		for i, v := range low {
			bass[i] = math.Abs(v)
		}
	}

	if s.rumble != nil {
		bass = s.rumble.Filter(bass)
	}

	return high, bass, pol, minPhase
}

func (s *synth) polarity(low []float64) float64 {
	switch s.cfg.polarity {
	case PolarityNormal:
		return 1
	case PolarityInvert:
		return -1
	}

	if i := ir.PeakIndex(low); i >= 0 && low[i] < 0 {
		return -1
	}

	return 1
}

// applyShelf boosts the shelf band on the speaker's side and cuts it on
// the opposite side. Center speakers are left alone.
func (s *synth) applyShelf(bass []float64, spk, ear speaker.Side) {
	if spk == speaker.Center {
		return
	}

	k := -s.shelf.ContralateralGain()
	if spk == ear {
		k = s.shelf.IpsilateralGain()
	}

	band := s.shelfLP.Filter(bass)
	vecmath.ScaleBlockInPlace(band, k)
	vecmath.AddBlockInPlace(bass, band)
}

// matchGain returns the factor that gives bass the magnitude of high at
// the DFT bin nearest freq.
func matchGain(high, bass []float64, freq float64, fs int) float64 {
	n := len(high)
	if n == 0 {
		return 1
	}

	k := spectrum.NearestBin(freq, float64(fs), n)
	ref := cmplx.Abs(spectrum.Bin(high, k, n))
	got := cmplx.Abs(spectrum.Bin(bass, k, n))

	if got < gainFloor {
		return 1
	}

	return ref / got
}

// alignPeak rotates x left so its peak lands at head when the peak is
// later. It returns the result and the rotation.
func alignPeak(x []float64, head int) ([]float64, int) {
	peak := ir.PeakIndex(x)
	if peak <= head {
		return x, 0
	}

	shift := peak - head
	out := make([]float64, 0, len(x))
	out = append(out, x[shift:]...)
	out = append(out, x[:shift]...)

	return out, shift
}
