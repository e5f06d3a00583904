// Package spectrum provides one-sided FFT helpers, single-bin DFT
// evaluation and homomorphic minimum-phase reconstruction for real
// signals.
package spectrum
