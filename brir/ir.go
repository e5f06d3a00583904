package brir

import (
	"fmt"
	"slices"

	"github.com/cwbudde/algo-brir/dsp/conv"
	"github.com/cwbudde/algo-brir/dsp/freqresp"
	"github.com/cwbudde/algo-brir/dsp/spectrum"
	"github.com/cwbudde/algo-brir/measure/ir"
)

// ImpulseResponse is a single ear signal and its sample rate. Derived
// views are recomputed on every call.
type ImpulseResponse struct {
	Data []float64
	Fs   int
}

// Len returns the number of samples.
func (r *ImpulseResponse) Len() int {
	return len(r.Data)
}

// Clone returns a deep copy.
func (r *ImpulseResponse) Clone() ImpulseResponse {
	return ImpulseResponse{Data: slices.Clone(r.Data), Fs: r.Fs}
}

// PeakIndex returns the index of the largest absolute sample, first
// occurrence on ties, or -1 when empty.
func (r *ImpulseResponse) PeakIndex() int {
	return ir.PeakIndex(r.Data)
}

// FrequencyResponse returns the magnitude response in dB on a logarithmic
// grid from 20 Hz to Nyquist.
func (r *ImpulseResponse) FrequencyResponse() (*freqresp.Curve, error) {
	return freqresp.FromImpulseResponse(r.Data, float64(r.Fs))
}

// Spectrum returns the one-sided spectrum of the response zero-padded to
// the next power of two.
func (r *ImpulseResponse) Spectrum() ([]complex128, error) {
	return spectrum.RFFT(r.Data, max(spectrum.NextPowerOf2(len(r.Data)), 2))
}

// Equalize convolves the response with fir, keeping the first Len()
// samples of the causal result. An empty fir leaves the data unchanged.
func (r *ImpulseResponse) Equalize(fir []float64) error {
	if len(fir) == 0 || len(r.Data) == 0 {
		return nil
	}

	full, err := conv.Convolve(r.Data, fir)
	if err != nil {
		return fmt.Errorf("brir: equalize: %w", err)
	}

	r.Data = full[:len(r.Data)]

	return nil
}

// EqualizeCentered convolves the response with fir and keeps the Len()
// samples centered on the full result.
func (r *ImpulseResponse) EqualizeCentered(fir []float64) error {
	if len(fir) == 0 || len(r.Data) == 0 {
		return nil
	}

	same, err := conv.ConvolveMode(r.Data, fir, conv.ModeSame)
	if err != nil {
		return fmt.Errorf("brir: equalize: %w", err)
	}

	r.Data = same[:len(r.Data)]

	return nil
}
