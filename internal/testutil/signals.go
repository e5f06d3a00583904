// Package testutil holds deterministic signal generators and tolerance
// assertions shared by package tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a sine wave starting at phase zero.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)

	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out
}

// DeterministicNoise generates uniform white noise in [-amplitude, amplitude)
// from a fixed seed.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)

	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out
}

// Impulse generates a unit impulse at pos. Out-of-range positions yield
// silence.
func Impulse(length, pos int) []float64 {
	return ScaledImpulse(length, pos, 1)
}

// ScaledImpulse generates an impulse of the given amplitude at pos.
func ScaledImpulse(length, pos int, amplitude float64) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = amplitude
	}

	return out
}

// RoomIR builds a synthetic impulse response: a direct-sound impulse of
// the given amplitude at pos followed by an exponentially decaying noise
// tail with time constant tau samples. The tail stays below the direct
// sound so the peak is always at pos.
func RoomIR(length, pos int, amplitude, tau float64, seed int64) []float64 {
	out := ScaledImpulse(length, pos, amplitude)
	if pos < 0 || pos >= length || tau <= 0 {
		return out
	}

	noise := DeterministicNoise(seed, 0.3*math.Abs(amplitude), length-pos-1)
	for i, v := range noise {
		out[pos+1+i] = v * math.Exp(-float64(i+1)/tau)
	}

	return out
}

// Delayed returns src shifted right by n samples, keeping the length.
// Negative n shifts left.
func Delayed(src []float64, n int) []float64 {
	out := make([]float64, len(src))
	for i, v := range src {
		if j := i + n; j >= 0 && j < len(out) {
			out[j] = v
		}
	}

	return out
}
