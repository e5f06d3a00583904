// Package vbass replaces the low-frequency content of binaural responses
// with a synthesized, minimum-phase bass signal.
//
// Below the crossover frequency each response is rebuilt from its own
// low band: polarity corrected, reconstructed as minimum phase, cleaned of
// rumble, gain matched to the high band at the crossover, optionally
// shelved to restore a plausible interaural level difference, and moved to
// the start of the response.
package vbass
