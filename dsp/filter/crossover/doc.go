// Package crossover splits a signal into low and high bands at one
// frequency with Butterworth low-pass and high-pass filters of equal order.
//
// Unlike a Linkwitz-Riley network the two bands do not sum to an allpass:
// both are 3 dB down at the crossover frequency. The split is used where
// each band is processed separately and recombined after gain matching.
//
// Example:
//
//	xo, _ := crossover.New(250, 8, 48000)
//	low, high := xo.Split(ir)
package crossover
