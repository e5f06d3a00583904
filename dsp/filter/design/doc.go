// Package design provides digital IIR filter coefficient designers.
//
// The functions here produce biquad coefficients for dsp/filter/biquad:
// RBJ cookbook lowpass/highpass sections and Butterworth cascades built
// from them. Band-pass responses are realized as a highpass/lowpass
// cascade at the band edges, the same topology used by octave filter banks.
package design
