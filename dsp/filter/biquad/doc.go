// Package biquad provides second-order IIR sections and cascades.
//
// A [Chain] cascades [Coefficients] sets in Direct Form II Transposed,
// which is how the Butterworth designs in dsp/filter/design are realized.
// [Chain.Filter] mirrors an offline "sosfilt": it runs a whole buffer from
// zero state.
package biquad
