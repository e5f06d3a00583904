// Package brir holds a set of binaural room impulse responses, one pair of
// ear signals per loudspeaker position, and the time-domain stages that
// prepare raw measurements for headphone convolution: head cropping under
// interaural time difference constraints, ipsilateral alignment, tail
// equalization, normalization and FIR equalization.
//
// A Store is mutated in place by each stage. Stages never abort the whole
// set for a recoverable problem; they log it through the injected Logger
// and return it as an Advisory.
//
// Frequency-domain stages live in sub-packages: balance (channel balance),
// vbass (virtual bass) and micdev (microphone deviation correction).
package brir
