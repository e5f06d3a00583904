package micdev

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"slices"

	"github.com/cwbudde/algo-brir/brir/speaker"
	"github.com/cwbudde/algo-brir/dsp/core"
	"github.com/cwbudde/algo-brir/dsp/filter/biquad"
	"github.com/cwbudde/algo-brir/dsp/filter/design"
	"github.com/cwbudde/algo-brir/dsp/spectrum"
	"github.com/cwbudde/algo-brir/measure/ir"
)

// Errors returned by the Corrector.
var (
	ErrInvalidSampleRate = errors.New("micdev: sample rate must be positive")
	ErrNoBands           = errors.New("micdev: no analysis band below Nyquist")
	ErrNoData            = errors.New("micdev: no speaker deviation collected")
	ErrUnknownSpeaker    = errors.New("micdev: unknown speaker")
)

const (
	// silenceDB is reported for bands that cannot be measured.
	silenceDB = -100.0

	bandOrder     = 4
	upperEdgeFrac = 0.95
	minGate       = 16
	maxTaper      = 32
	minFFT        = 512
)

// Band is one analysis band.
type Band struct {
	Center float64
	// Gate is the analysis window length in samples.
	Gate int
	// FilterGainDB is the band filter's gain at Center. Band levels are
	// corrected by it, so they read as the unfiltered level at Center.
	FilterGainDB float64

	valid  bool
	filter *biquad.Chain
}

// Corrector accumulates per-speaker level differences and derives a
// microphone error estimate from them. It is not safe for concurrent use.
type Corrector struct {
	fs       int
	cfg      config
	bands    []Band
	strength float64

	deviations [speaker.NumCodes][]float64
	order      []speaker.Code

	estimate *Estimate
}

// New returns a corrector for responses at sample rate fs.
func New(fs int, opts ...Option) (*Corrector, error) {
	if fs <= 0 {
		return nil, ErrInvalidSampleRate
	}

	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	centers := make([]float64, 0, len(cfg.bands))

	for _, f := range cfg.bands {
		if f > 0 && f < float64(fs)/2 {
			centers = append(centers, f)
		}
	}

	slices.Sort(centers)
	centers = slices.Compact(centers)

	if len(centers) == 0 {
		return nil, ErrNoBands
	}

	c := &Corrector{fs: fs, cfg: cfg, strength: cfg.strength}
	gates := gateLengths(centers, cfg.minGateCycles, cfg.maxGateCycles, fs)

	for i, f := range centers {
		b := Band{Center: f, Gate: gates[i]}

		lo := f / math.Pow(2, 1.0/6)
		hi := min(f*math.Pow(2, 1.0/6), upperEdgeFrac*float64(fs)/2)

		if lo < hi {
			b.valid = true

			coeffs, err := design.ButterworthBandpass(lo, hi, bandOrder, float64(fs))
			if err == nil {
				b.filter = biquad.NewChain(coeffs)
				b.FilterGainDB = b.filter.MagnitudeDB(f, float64(fs))
			} else {
				cfg.logger.Warning("%.0f Hz band filter unavailable, measuring unfiltered: %v", f, err)
			}
		}

		c.bands = append(c.bands, b)
	}

	return c, nil
}

// gateLengths interpolates the cycle count from maxCycles at the lowest
// center to minCycles at the highest on a log-frequency scale and converts
// it to samples clamped to [16, fs/10].
func gateLengths(centers []float64, minCycles, maxCycles float64, fs int) []int {
	out := make([]int, len(centers))
	first, last := centers[0], centers[len(centers)-1]

	for i, f := range centers {
		ratio := 0.5
		if len(centers) > 1 {
			ratio = math.Log10(f/first) / math.Log10(last/first)
		}

		cycles := maxCycles - (maxCycles-minCycles)*ratio
		n := int(cycles * float64(fs) / f)
		out[i] = min(max(n, minGate), fs/10)
	}

	return out
}

// SampleRate returns the sample rate in Hz.
func (c *Corrector) SampleRate() int { return c.fs }

// Bands returns the analysis bands in ascending order.
func (c *Corrector) Bands() []Band {
	return slices.Clone(c.bands)
}

// Strength returns the correction strength that DesignFilters will use.
func (c *Corrector) Strength() float64 { return c.strength }

// Reset discards collected deviations and estimates and restores the
// configured strength.
func (c *Corrector) Reset() {
	c.deviations = [speaker.NumCodes][]float64{}
	c.order = nil
	c.estimate = nil
	c.strength = c.cfg.strength
}

// Collect measures the per-band level difference, left minus right in dB,
// of one speaker and records it, replacing an earlier measurement of the
// same speaker. A negative peak index is replaced by the position of the
// largest sample.
func (c *Corrector) Collect(code speaker.Code, left, right []float64, leftPeak, rightPeak int) ([]float64, error) {
	if !code.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownSpeaker, code)
	}

	if leftPeak < 0 {
		leftPeak = ir.PeakIndex(left)
	}

	if rightPeak < 0 {
		rightPeak = ir.PeakIndex(right)
	}

	dev := make([]float64, len(c.bands))
	for i, b := range c.bands {
		dev[i] = c.bandLevel(b, left, leftPeak) - c.bandLevel(b, right, rightPeak)
	}

	if c.deviations[code] == nil {
		c.order = append(c.order, code)
	}

	c.deviations[code] = dev
	c.estimate = nil

	return slices.Clone(dev), nil
}

// Deviation returns the collected deviation of code per band.
func (c *Corrector) Deviation(code speaker.Code) ([]float64, bool) {
	if !code.Valid() || c.deviations[code] == nil {
		return nil, false
	}

	return slices.Clone(c.deviations[code]), true
}

// Speakers returns the collected speakers in collection order.
func (c *Corrector) Speakers() []speaker.Code {
	return slices.Clone(c.order)
}

// bandLevel band-passes x, gates it from peak and returns the level at
// the band center in dB.
func (c *Corrector) bandLevel(b Band, x []float64, peak int) float64 {
	if !b.valid {
		return silenceDB
	}

	filtered := x
	if b.filter != nil {
		filtered = b.filter.Filter(x)
	}

	gated := gate(filtered, peak, b.Gate)
	n := max(2*b.Gate, minFFT)
	k := spectrum.NearestBin(b.Center, float64(c.fs), n)

	mag := cmplx.Abs(spectrum.Bin(gated, k, n))
	if mag <= 0 {
		return silenceDB
	}

	return core.LinearToDB(mag) - b.FilterGainDB
}

// gate returns length samples of x from start, zero padded, with a linear
// fade to zero over the last min(length/4, 32) samples.
func gate(x []float64, start, length int) []float64 {
	out := make([]float64, length)
	if start >= 0 && start < len(x) {
		copy(out, x[start:])
	}

	fade := min(length/4, maxTaper)
	for j := range fade {
		w := 1.0
		if fade > 1 {
			w = 1 - float64(j)/float64(fade-1)
		}

		out[length-fade+j] *= w
	}

	return out
}
