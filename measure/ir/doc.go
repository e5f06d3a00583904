// Package ir provides impulse response metrics used when post-processing
// binaural measurements: peak detection and the level of early and late
// reflections relative to the direct sound.
//
//	a := ir.NewAnalyzer(48000)
//	levels, err := a.ReflectionLevels(data, ir.DefaultReflectionWindows())
//	fmt.Printf("early %.1f dB, late %.1f dB\n", levels.EarlyDB, levels.LateDB)
package ir
