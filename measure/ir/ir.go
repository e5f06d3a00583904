package ir

import (
	"errors"

	"github.com/cwbudde/algo-brir/dsp/core"
	timestats "github.com/cwbudde/algo-brir/stats/time"
)

// Errors returned by IR analysis functions.
var (
	ErrEmptyIR           = errors.New("ir: impulse response is empty")
	ErrInvalidSampleRate = errors.New("ir: sample rate must be positive")
	ErrInvalidWindow     = errors.New("ir: reflection window must have start < end")
)

// levelEpsilon guards the direct-sound RMS and the level ratio logarithm.
const levelEpsilon = 1e-12

// ReflectionWindows are time spans in milliseconds relative to the IR peak.
type ReflectionWindows struct {
	DirectMs     float64 // direct sound: [0, DirectMs)
	EarlyStartMs float64
	EarlyEndMs   float64
	LateStartMs  float64
	LateEndMs    float64
}

// DefaultReflectionWindows returns direct sound 2 ms, early reflections
// 20–50 ms and late reflections 50–150 ms after the peak.
func DefaultReflectionWindows() ReflectionWindows {
	return ReflectionWindows{
		DirectMs:     2,
		EarlyStartMs: 20,
		EarlyEndMs:   50,
		LateStartMs:  50,
		LateEndMs:    150,
	}
}

func (w ReflectionWindows) validate() error {
	if w.DirectMs <= 0 || w.EarlyStartMs >= w.EarlyEndMs || w.LateStartMs >= w.LateEndMs ||
		w.EarlyStartMs < 0 || w.LateStartMs < 0 {
		return ErrInvalidWindow
	}

	return nil
}

// ReflectionLevels are RMS levels in dB relative to the direct sound.
type ReflectionLevels struct {
	EarlyDB float64
	LateDB  float64
}

// Analyzer computes IR metrics at a fixed sample rate.
type Analyzer struct {
	SampleRate float64
}

// NewAnalyzer creates an IR analyzer with the given sample rate.
func NewAnalyzer(sampleRate float64) *Analyzer {
	return &Analyzer{SampleRate: sampleRate}
}

// PeakIndex returns the index of the largest absolute sample. Ties resolve
// to the first occurrence; an empty IR yields -1.
func PeakIndex(ir []float64) int {
	if len(ir) == 0 {
		return -1
	}

	return timestats.Calculate(ir).PeakPos
}

// ReflectionLevels measures the early and late reflection energy of ir
// relative to its direct sound. Windows extending past the end of ir are
// cut; an empty reflection window reports the level of silence, which is
// 20·log10(ε) dB.
func (a *Analyzer) ReflectionLevels(ir []float64, w ReflectionWindows) (ReflectionLevels, error) {
	if len(ir) == 0 {
		return ReflectionLevels{}, ErrEmptyIR
	}

	if a.SampleRate <= 0 {
		return ReflectionLevels{}, ErrInvalidSampleRate
	}

	if err := w.validate(); err != nil {
		return ReflectionLevels{}, err
	}

	peak := PeakIndex(ir)

	direct := timestats.RMS(a.segment(ir, peak, 0, w.DirectMs))
	if direct < levelEpsilon {
		direct = levelEpsilon
	}

	early := timestats.RMS(a.segment(ir, peak, w.EarlyStartMs, w.EarlyEndMs))
	late := timestats.RMS(a.segment(ir, peak, w.LateStartMs, w.LateEndMs))

	return ReflectionLevels{
		EarlyDB: core.LinearToDB(early/direct + levelEpsilon),
		LateDB:  core.LinearToDB(late/direct + levelEpsilon),
	}, nil
}

func (a *Analyzer) segment(ir []float64, peak int, startMs, endMs float64) []float64 {
	start := min(peak+int(startMs*a.SampleRate/1000), len(ir))
	end := min(peak+int(endMs*a.SampleRate/1000), len(ir))

	return ir[start:max(start, end)]
}
