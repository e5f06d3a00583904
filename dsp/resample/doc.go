// Package resample converts impulse responses between sample rates with a
// polyphase Kaiser-windowed sinc filter.
//
// Quality modes:
//   - QualityFast: shorter filter, lower stopband attenuation
//   - QualityBalanced: default mode
//   - QualityBest: longer filter, flatter passband
//
// Default quality matrix:
//
//	mode            taps/phase   nominal stopband
//	QualityFast     16           ~55 dB
//	QualityBalanced 32           ~75 dB
//	QualityBest     64           ~90 dB
//
// Conversion works on whole buffers and compensates the filter delay, so
// the onset of a response stays at the same time after conversion.
package resample
