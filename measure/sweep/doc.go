// Package sweep describes the logarithmic sine sweeps used to excite
// loudspeakers during binaural measurements.
//
// A LogSweep spends equal time per octave. Downstream processing reads its
// length, sample rate and octave span to derive time constants such as the
// tail fade of cropped impulse responses.
package sweep
