// Package freqresp models magnitude frequency-response curves on a
// logarithmic frequency grid and turns equalization curves into
// minimum-phase FIR filters.
//
// A Curve carries the measured (Raw) response together with the derived
// Smoothed, Target, Error and Equalization curves used by channel-balance
// and microphone-correction filter design. All curves share the same
// Frequency grid and are expressed in dB.
package freqresp
