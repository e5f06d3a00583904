package brir

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-brir/brir/speaker"
	"github.com/cwbudde/algo-brir/internal/testutil"
	"github.com/cwbudde/algo-brir/measure/sweep"
)

func TestCropHeadsStartsAtNearPeak(t *testing.T) {
	const fs = 48000

	s := newStore(t, fs)
	left := testutil.RoomIR(8192, 1000, 1, 300, 1)
	right := testutil.RoomIR(8192, 1020, 0.7, 300, 2)
	mustSet(t, s, speaker.FL, left, right)

	report, err := s.CropHeads(1)
	if err != nil {
		t.Fatalf("CropHeads: %v", err)
	}

	if report.HeadSamples != 48 {
		t.Fatalf("HeadSamples=%d want 48", report.HeadSamples)
	}

	got := report.Speakers[0]
	if got.Start != 952 || got.NearEar != LeftEar {
		t.Fatalf("crop=%+v want start 952 near left", got)
	}

	testutil.RequireNearlyEqual(t, "ITD", got.ITD, 20.0/fs, 1e-12)

	p, _ := s.Pair(speaker.FL)
	if p.Left.Len() != 8192-952 || p.Right.Len() != 8192-952 {
		t.Fatalf("lengths %d/%d", p.Left.Len(), p.Right.Len())
	}

	if p.Left.PeakIndex() != 48 || p.Right.PeakIndex() != 68 {
		t.Fatalf("peaks %d/%d want 48/68", p.Left.PeakIndex(), p.Right.PeakIndex())
	}

	testutil.RequireSliceNearlyEqual(t, p.Left.Data[48:], left[1000:], 0)

	if len(report.Advisories) != 0 {
		t.Fatalf("unexpected advisories %v", report.Advisories)
	}
}

func TestCropHeadsFadeIsMonotonic(t *testing.T) {
	s := newStore(t, 48000)

	buf := testutil.Impulse(4096, 600)
	for i := range 600 {
		buf[i] = 0.01
	}

	mustSet(t, s, speaker.FC, buf, buf)

	if _, err := s.CropHeads(2); err != nil {
		t.Fatalf("CropHeads: %v", err)
	}

	p, _ := s.Pair(speaker.FC)
	if p.Left.Data[0] != 0 {
		t.Fatalf("first sample %v want 0", p.Left.Data[0])
	}

	for i := 1; i < 96; i++ {
		if p.Left.Data[i] < p.Left.Data[i-1] {
			t.Fatalf("fade-in not monotonic at %d", i)
		}
	}

	if p.Left.Data[96] != 1 {
		t.Fatalf("peak moved: %v", p.Left.Data[96])
	}
}

func TestCropHeadsUsesSpeakerDelay(t *testing.T) {
	var delays speaker.DelayTable
	delays[speaker.SL] = 0.001

	s := newStore(t, 48000, WithDelays(delays))
	mustSet(t, s, speaker.SL, testutil.Impulse(2048, 500), testutil.Impulse(2048, 520))

	report, err := s.CropHeads(1)
	if err != nil {
		t.Fatalf("CropHeads: %v", err)
	}

	if got := report.Speakers[0].Start; got != 500-48-48 {
		t.Fatalf("Start=%d want %d", got, 500-96)
	}
}

func TestCropHeadsITDContradiction(t *testing.T) {
	log := &recordingLogger{}
	s := newStore(t, 48000, WithLogger(log))

	mustSet(t, s, speaker.FL, testutil.Impulse(2048, 540), testutil.Impulse(2048, 500))
	mustSet(t, s, speaker.FR, testutil.Impulse(2048, 540), testutil.Impulse(2048, 500))
	mustSet(t, s, speaker.SL, testutil.Impulse(2048, 500), testutil.Impulse(2048, 500))

	report, err := s.CropHeads(1)
	if err != nil {
		t.Fatalf("CropHeads: %v", err)
	}

	if len(report.Advisories) != 1 {
		t.Fatalf("advisories=%v want one", report.Advisories)
	}

	adv := report.Advisories[0]
	if adv.Kind != AdvisoryITDContradiction || adv.Speaker != speaker.FL || !adv.HasSpeaker {
		t.Fatalf("unexpected advisory %v", adv)
	}

	if len(log.warnings) != 1 {
		t.Fatalf("warnings=%v", log.warnings)
	}

	// Cropping still happened, anchored on the right ear.
	if report.Speakers[0].Start != 452 || report.Speakers[0].NearEar != RightEar {
		t.Fatalf("crop=%+v", report.Speakers[0])
	}

	// Equal peaks treat the right ear as near.
	if report.Speakers[2].NearEar != RightEar {
		t.Fatalf("tie resolved to %s", report.Speakers[2].NearEar)
	}
}

func TestCropSampleRateMismatch(t *testing.T) {
	s := newStore(t, 48000, WithEstimator(sweep.LogSweep{StartFreq: 20, EndFreq: 20000, Duration: 5, Fs: 44100}))
	mustSet(t, s, speaker.FL, testutil.Impulse(64, 10), testutil.Impulse(64, 10))

	if _, err := s.CropHeads(1); !errors.Is(err, ErrSampleRateMismatch) {
		t.Fatalf("CropHeads: expected ErrSampleRateMismatch, got %v", err)
	}

	if _, err := s.CropTails(); !errors.Is(err, ErrSampleRateMismatch) {
		t.Fatalf("CropTails: expected ErrSampleRateMismatch, got %v", err)
	}

	p, _ := s.Pair(speaker.FL)
	if p.Left.Len() != 64 {
		t.Fatal("store modified despite error")
	}
}

func TestCropTailsPadsToLongest(t *testing.T) {
	s := newStore(t, 48000)

	short := testutil.DeterministicNoise(1, 1, 1000)
	long := testutil.DeterministicNoise(2, 1, 1200)
	mustSet(t, s, speaker.FL, short, short)
	mustSet(t, s, speaker.FR, long, long)

	n, err := s.CropTails()
	if err != nil {
		t.Fatalf("CropTails: %v", err)
	}

	if n != 1200 {
		t.Fatalf("common length %d want 1200", n)
	}

	s.Each(func(c speaker.Code, e Ear, r *ImpulseResponse) {
		if r.Len() != 1200 {
			t.Fatalf("%s %s has %d samples", c, e, r.Len())
		}

		if r.Data[r.Len()-1] != 0 {
			t.Fatalf("%s %s last sample %v not faded", c, e, r.Data[r.Len()-1])
		}
	})

	// 5 ms fallback fade touches only the last 240 samples.
	p, _ := s.Pair(speaker.FL)
	testutil.RequireSliceNearlyEqual(t, p.Left.Data[:960], short[:960], 0)
	testutil.RequireSliceNearlyEqual(t, p.Left.Data[1000:], make([]float64, 200), 0)
}

func TestCropTailsSweepFade(t *testing.T) {
	est := fakeEstimator{fs: 48000, n: 48000, octaves: 10}
	s := newStore(t, 48000, WithEstimator(est))

	// 0.1 s per octave, so two 1/24 octave periods are 400 samples.
	if got := s.tailFade(); got != 400 {
		t.Fatalf("tailFade()=%d want 400", got)
	}

	buf := make([]float64, 1000)
	for i := range buf {
		buf[i] = 1
	}

	mustSet(t, s, speaker.FC, buf, buf)

	if _, err := s.CropTails(); err != nil {
		t.Fatalf("CropTails: %v", err)
	}

	p, _ := s.Pair(speaker.FC)
	if p.Left.Data[599] != 1 || p.Left.Data[600] >= 1 {
		t.Fatalf("fade boundary wrong: %v %v", p.Left.Data[599], p.Left.Data[600])
	}
}

func TestCropTailsFadeFromLogSweep(t *testing.T) {
	tests := []struct {
		name string
		est  Estimator
		want int
	}{
		// 0.2 s per octave.
		{"sweep", sweep.LogSweep{StartFreq: 10, EndFreq: 20480, Duration: 2.2, Fs: 48000}, 800},
		{"invalid sweep", sweep.LogSweep{StartFreq: 100, EndFreq: 10, Duration: 1, Fs: 48000}, 240},
		{"no estimator", nil, 240},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []Option
			if tt.est != nil {
				opts = append(opts, WithEstimator(tt.est))
			}

			s := newStore(t, 48000, opts...)
			if got := s.tailFade(); got != tt.want {
				t.Fatalf("tailFade()=%d want %d", got, tt.want)
			}
		})
	}
}
