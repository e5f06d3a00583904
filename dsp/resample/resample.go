package resample

import (
	"errors"
	"math"
)

var (
	// ErrInvalidRatio is returned for non-positive conversion factors.
	ErrInvalidRatio = errors.New("resample: invalid ratio")
	// ErrInvalidRate is returned for non-positive or NaN sample rates.
	ErrInvalidRate = errors.New("resample: invalid sample rate")
)

// Quality selects a filter profile.
type Quality int

const (
	QualityFast Quality = iota
	QualityBalanced
	QualityBest
)

// Profile describes the filter parameters behind a Quality.
type Profile struct {
	TapsPerPhase      int
	CutoffScale       float64
	KaiserBeta        float64
	NominalStopbandDB float64
}

// QualityProfile returns the default parameters for q.
func QualityProfile(q Quality) Profile {
	switch q {
	case QualityFast:
		return Profile{TapsPerPhase: 16, CutoffScale: 0.88, KaiserBeta: 5.0, NominalStopbandDB: 55}
	case QualityBest:
		return Profile{TapsPerPhase: 64, CutoffScale: 0.96, KaiserBeta: 9.0, NominalStopbandDB: 90}
	default:
		return Profile{TapsPerPhase: 32, CutoffScale: 0.92, KaiserBeta: 7.5, NominalStopbandDB: 75}
	}
}

type config struct {
	quality      Quality
	tapsPerPhase int
	cutoffScale  float64
	kaiserBeta   float64
	maxDen       int
}

// Option configures a Resampler.
type Option func(*config)

// WithQuality selects the filter profile. Explicit tap, cutoff and beta
// options take precedence over the profile.
func WithQuality(q Quality) Option {
	return func(cfg *config) {
		cfg.quality = q
	}
}

// WithTapsPerPhase overrides the filter length per polyphase branch.
func WithTapsPerPhase(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.tapsPerPhase = n
		}
	}
}

// WithCutoffScale scales the anti-aliasing cutoff relative to the lower
// Nyquist frequency. v must lie in (0, 1].
func WithCutoffScale(v float64) Option {
	return func(cfg *config) {
		if v > 0 && v <= 1 {
			cfg.cutoffScale = v
		}
	}
}

// WithKaiserBeta overrides the Kaiser window shape.
func WithKaiserBeta(beta float64) Option {
	return func(cfg *config) {
		if beta > 0 {
			cfg.kaiserBeta = beta
		}
	}
}

// WithMaxDenominator bounds the denominator NewForRates uses when it
// approximates the rate ratio.
func WithMaxDenominator(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.maxDen = n
		}
	}
}

func defaultConfig() config {
	return config{
		quality: QualityBalanced,
		maxDen:  4096,
	}
}

func newConfig(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	p := QualityProfile(cfg.quality)
	if cfg.tapsPerPhase == 0 {
		cfg.tapsPerPhase = p.TapsPerPhase
	}

	if cfg.cutoffScale == 0 {
		cfg.cutoffScale = p.CutoffScale
	}

	if cfg.kaiserBeta == 0 {
		cfg.kaiserBeta = p.KaiserBeta
	}

	return cfg
}

// Resampler converts whole buffers by the rational factor up/down.
type Resampler struct {
	up   int
	down int

	quality Quality
	taps    []float64
	phases  [][]float64
	delay   int
}

// NewRational creates a resampler for the factor up/down, reduced to
// lowest terms.
func NewRational(up, down int, opts ...Option) (*Resampler, error) {
	if up <= 0 || down <= 0 {
		return nil, ErrInvalidRatio
	}

	g := gcd(up, down)
	up /= g
	down /= g

	cfg := newConfig(opts)

	taps, phases, err := designPolyphaseFIR(up, down, cfg)
	if err != nil {
		return nil, err
	}

	return &Resampler{
		up:      up,
		down:    down,
		quality: cfg.quality,
		taps:    taps,
		phases:  phases,
		delay:   (len(taps) - 1) / 2,
	}, nil
}

// NewForRates creates a resampler from inRate to outRate, approximating
// the ratio by a fraction whose denominator is at most the configured
// maximum.
func NewForRates(inRate, outRate float64, opts ...Option) (*Resampler, error) {
	if inRate <= 0 || outRate <= 0 || math.IsNaN(inRate) || math.IsNaN(outRate) {
		return nil, ErrInvalidRate
	}

	cfg := newConfig(opts)
	up, down := approximateRatio(outRate/inRate, cfg.maxDen)

	return NewRational(up, down, opts...)
}

// Resample converts input by up/down in one call.
func Resample(input []float64, up, down int, opts ...Option) ([]float64, error) {
	r, err := NewRational(up, down, opts...)
	if err != nil {
		return nil, err
	}

	return r.Process(input), nil
}

// Process returns input converted to the output rate. Sample m of the
// result lies at time m*down/up input samples, so an onset keeps its time
// position. input is not modified.
func (r *Resampler) Process(input []float64) []float64 {
	n := r.OutputLen(len(input))
	if n == 0 {
		return nil
	}

	out := make([]float64, n)
	for m := range out {
		// Position in the zero-stuffed input, advanced by the filter delay.
		pos := m*r.down + r.delay
		base := pos / r.up

		var y float64

		for k, c := range r.phases[pos%r.up] {
			idx := base - k
			if idx < 0 {
				break
			}

			if idx < len(input) {
				y += c * input[idx]
			}
		}

		out[m] = y
	}

	return out
}

// OutputLen returns the number of samples Process produces for an input
// of length inputLen.
func (r *Resampler) OutputLen(inputLen int) int {
	if inputLen <= 0 {
		return 0
	}

	return (inputLen*r.up + r.down - 1) / r.down
}

// Ratio returns the reduced conversion factor.
func (r *Resampler) Ratio() (up, down int) {
	return r.up, r.down
}

// Quality returns the profile the resampler was built with.
func (r *Resampler) Quality() Quality {
	return r.quality
}

// Prototype returns a copy of the prototype low-pass filter.
func (r *Resampler) Prototype() []float64 {
	out := make([]float64, len(r.taps))
	copy(out, r.taps)

	return out
}
