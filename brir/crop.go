package brir

import (
	"math"

	"github.com/cwbudde/algo-brir/brir/speaker"
	"github.com/cwbudde/algo-brir/dsp/window"
	"github.com/cwbudde/algo-brir/measure/sweep"
)

// defaultFadeSeconds is the tail fade used when the sweep parameters are
// unavailable.
const defaultFadeSeconds = 0.005

// SpeakerCrop describes how one speaker pair was cropped.
type SpeakerCrop struct {
	Speaker speaker.Code
	// Start is the index in the original buffers where the cropped data
	// begins.
	Start int
	// NearEar received the direct sound first.
	NearEar Ear
	// ITD is the interaural time difference in seconds.
	ITD float64
}

// CropReport is the outcome of CropHeads.
type CropReport struct {
	HeadSamples int
	Speakers    []SpeakerCrop
	Advisories  []Advisory
}

// CropHeads removes leading silence. For every speaker both ears are cut at
// nearPeak - delay, where nearPeak is the peak index of the ear that
// received the sound first (the right ear when both peak together) and
// delay is the speaker's expected physical delay plus headMs. The first
// headMs of both ears are then faded in with the rising half of a Hann
// window.
//
// A near ear on the opposite side of the speaker position is reported as
// an AdvisoryITDContradiction; cropping continues.
func (s *Store) CropHeads(headMs float64) (CropReport, error) {
	if err := s.checkEstimator(); err != nil {
		return CropReport{}, err
	}

	head := int(max(headMs, 0) * float64(s.fs) / 1000)
	report := CropReport{HeadSamples: head}

	for _, c := range s.Speakers() {
		p := s.pairs[c]

		peakL := p.Left.PeakIndex()
		peakR := p.Right.PeakIndex()
		itd := math.Abs(float64(peakL-peakR)) / float64(s.fs)

		near, nearPeak := RightEar, peakR
		if peakL < peakR {
			near, nearPeak = LeftEar, peakL
		}

		if contradicts(c.Side(), near, peakL == peakR) {
			adv := NewAdvisory(AdvisoryITDContradiction, c,
				"%s speaker arrives first at the %s ear (ITD %.4f ms); check the measurement or the speaker order",
				c.Side(), near, itd*1000)
			report.Advisories = append(report.Advisories, adv)
			s.logger.Warning("%s", adv)
		}

		delay := int(math.Round(float64(s.fs)*s.delays.Of(c))) + head
		start := max(nearPeak-delay, 0)

		for _, r := range []*ImpulseResponse{&p.Left, &p.Right} {
			r.Data = r.Data[min(start, len(r.Data)):]
			window.FadeIn(r.Data, head)
		}

		report.Speakers = append(report.Speakers, SpeakerCrop{
			Speaker: c,
			Start:   start,
			NearEar: near,
			ITD:     itd,
		})
	}

	return report, nil
}

func contradicts(side speaker.Side, near Ear, tie bool) bool {
	if tie {
		return false
	}

	switch side {
	case speaker.Left:
		return near == RightEar
	case speaker.Right:
		return near == LeftEar
	default:
		return false
	}
}

// CropTails makes every response as long as the longest one by zero
// padding the tail, then fades out the last samples of every response with
// the falling half of a Hann window. The fade lasts two 1/24 octave sweep
// periods when the estimator describes a valid sweep and 5 ms otherwise,
// never more than half the common length. CropTails returns the common
// length.
func (s *Store) CropTails() (int, error) {
	if err := s.checkEstimator(); err != nil {
		return 0, err
	}

	maxLen := s.MaxLen()
	if maxLen == 0 {
		return 0, nil
	}

	fade := s.tailFade()
	if fade > maxLen/2 {
		fade = max(maxLen/2, 1)
	}

	s.Each(func(_ speaker.Code, _ Ear, r *ImpulseResponse) {
		switch {
		case r.Len() < maxLen:
			r.Data = append(r.Data, make([]float64, maxLen-r.Len())...)
		case r.Len() > maxLen:
			r.Data = r.Data[:maxLen]
		}

		window.FadeOut(r.Data, fade)
	})

	return maxLen, nil
}

func (s *Store) tailFade() int {
	fallback := int(float64(s.fs) * defaultFadeSeconds)

	e := s.estimator
	if e == nil || e.Octaves() <= 0 || e.Len() <= 0 {
		return fallback
	}

	spo := sweep.SecondsPerOctave(e.Len(), e.SampleRate(), e.Octaves())

	fade := 2 * int(float64(s.fs)*spo/24)
	if fade <= 0 {
		return fallback
	}

	return fade
}
