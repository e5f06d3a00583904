package sweep

import (
	"errors"
	"math"
)

// Errors returned by sweep functions.
var (
	ErrInvalidFrequency  = errors.New("sweep: frequency must be positive")
	ErrInvalidDuration   = errors.New("sweep: duration must be positive")
	ErrInvalidSampleRate = errors.New("sweep: sample rate must be positive")
	ErrFrequencyOrder    = errors.New("sweep: start frequency must be less than end frequency")
)

// LogSweep is an exponential sine sweep from StartFreq to EndFreq.
type LogSweep struct {
	StartFreq float64 // Hz
	EndFreq   float64 // Hz
	Duration  float64 // seconds
	Fs        int     // sample rate in Hz
}

// Validate checks that the sweep parameters are usable.
func (s LogSweep) Validate() error {
	if s.StartFreq <= 0 || s.EndFreq <= 0 {
		return ErrInvalidFrequency
	}

	if s.StartFreq >= s.EndFreq {
		return ErrFrequencyOrder
	}

	if s.Duration <= 0 {
		return ErrInvalidDuration
	}

	if s.Fs <= 0 {
		return ErrInvalidSampleRate
	}

	return nil
}

// SampleRate returns the sweep sample rate in Hz.
func (s LogSweep) SampleRate() int {
	return s.Fs
}

// Len returns the sweep length in samples, or 0 for an invalid sweep.
func (s LogSweep) Len() int {
	if s.Validate() != nil {
		return 0
	}

	return int(math.Round(s.Duration * float64(s.Fs)))
}

// Octaves returns the number of octaves covered, or 0 for an invalid
// sweep.
func (s LogSweep) Octaves() float64 {
	if s.Validate() != nil {
		return 0
	}

	return math.Log2(s.EndFreq / s.StartFreq)
}

// SecondsPerOctave returns the time the sweep spends in each octave.
func (s LogSweep) SecondsPerOctave() float64 {
	return SecondsPerOctave(s.Len(), s.Fs, s.Octaves())
}

// SecondsPerOctave returns the time a logarithmic sweep of length samples
// at fs spends in each of its octaves, or 0 when any argument is not
// positive.
func SecondsPerOctave(length, fs int, octaves float64) float64 {
	if length <= 0 || fs <= 0 || octaves <= 0 {
		return 0
	}

	return float64(length) / float64(fs) / octaves
}
