package brir

import (
	"fmt"

	"github.com/cwbudde/algo-brir/brir/speaker"
	"github.com/cwbudde/algo-brir/dsp/resample"
)

// Resample converts every response to fs and makes fs the store rate.
// Onsets keep their time position. The attached estimator keeps its rate,
// so CropHeads and CropTails report ErrSampleRateMismatch afterwards.
func (s *Store) Resample(fs int, opts ...resample.Option) error {
	if fs <= 0 {
		return ErrInvalidSampleRate
	}

	if fs == s.fs {
		return nil
	}

	rs, err := resample.NewForRates(float64(s.fs), float64(fs), opts...)
	if err != nil {
		return fmt.Errorf("brir: resample %d Hz to %d Hz: %w", s.fs, fs, err)
	}

	s.Each(func(_ speaker.Code, _ Ear, r *ImpulseResponse) {
		r.Data = rs.Process(r.Data)
		r.Fs = fs
	})

	s.logger.Info("resampled %d speakers from %d Hz to %d Hz", s.Len(), s.fs, fs)
	s.fs = fs

	return nil
}
