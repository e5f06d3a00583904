package micdev

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-brir/brir"
	"github.com/cwbudde/algo-brir/brir/speaker"
)

// Analysis is the outcome of Apply.
type Analysis struct {
	Estimate   Estimate
	Validation Validation
	Filters    Filters
	Speakers   []speaker.Code
	// Strength is the correction strength the filters were designed with.
	Strength float64
	// MeanAbsErrorDB and MaxAbsErrorDB summarize the estimate.
	MeanAbsErrorDB float64
	MaxAbsErrorDB  float64
	// CrossValidated is false in single-speaker mode.
	CrossValidated bool
	Advisories     []brir.Advisory
}

// Apply corrects every response in the store. All speakers are measured
// first. With at least two speakers the error is separated and validated;
// an invalid estimate halves the strength. With a single speaker its own
// deviation is the estimate. Every left ear response is then convolved
// with the left filter and every right ear response with the right one,
// keeping the centered part of the convolution at the original length.
//
// Previously collected data is discarded.
func (c *Corrector) Apply(store *brir.Store) (Analysis, error) {
	if store.SampleRate() != c.fs {
		return Analysis{}, fmt.Errorf("%w: store %d Hz, corrector %d Hz", brir.ErrSampleRateMismatch, store.SampleRate(), c.fs)
	}

	c.Reset()

	log := c.cfg.logger

	var a Analysis

	for _, code := range store.Speakers() {
		p, _ := store.Pair(code)

		lp, rp := p.Left.PeakIndex(), p.Right.PeakIndex()
		if lp < 0 || rp < 0 {
			log.Warning("%s: no peak found, skipped", code)
			continue
		}

		if _, err := c.Collect(code, p.Left.Data, p.Right.Data, lp, rp); err != nil {
			return a, err
		}
	}

	a.Speakers = c.Speakers()

	var err error

	switch len(a.Speakers) {
	case 0:
		return a, ErrNoData
	case 1:
		adv := brir.NewAdvisory(brir.AdvisorySingleSpeaker, a.Speakers[0],
			"only one speaker measured, correcting its own deviation without cross-validation")
		a.Advisories = append(a.Advisories, adv)
		log.Warning("%s", adv)

		a.Estimate, err = c.SingleSpeaker()
		a.Validation = Validation{Reason: "single speaker"}
	default:
		a.CrossValidated = true

		a.Estimate, err = c.Separate()
		if err == nil {
			a.Validation = c.Validate()
			log.Info("microphone error consistency %.2f (%s)", a.Validation.Score, a.Validation.Confidence)

			if !a.Validation.Valid {
				c.strength *= 0.5

				adv := brir.GlobalAdvisory(brir.AdvisoryInconsistent,
					"consistency %.2f is too low, correction strength reduced to %.2f", a.Validation.Score, c.strength)
				a.Advisories = append(a.Advisories, adv)
				log.Warning("%s", adv)
			}
		}
	}

	if err != nil {
		return a, err
	}

	a.Strength = c.strength
	a.MeanAbsErrorDB, a.MaxAbsErrorDB = absStats(a.Estimate.ErrorDB)

	a.Filters, err = c.DesignFilters()
	if err != nil {
		a.Advisories = append(a.Advisories, brir.GlobalAdvisory(brir.AdvisoryIdentityFilter,
			"correction filters could not be designed: %v", err))
	}

	if len(a.Filters.Left) <= 1 || len(a.Filters.Right) <= 1 {
		log.Info("no correction filter, responses unchanged")
		return a, nil
	}

	for _, code := range a.Speakers {
		p, _ := store.Pair(code)
		left, right := p.Left.Clone(), p.Right.Clone()

		if err := left.EqualizeCentered(a.Filters.Left); err != nil {
			a.Advisories = append(a.Advisories, c.convolutionFailed(code, err))
			continue
		}

		if err := right.EqualizeCentered(a.Filters.Right); err != nil {
			a.Advisories = append(a.Advisories, c.convolutionFailed(code, err))
			continue
		}

		p.Left, p.Right = left, right
	}

	log.Success("microphone deviation corrected for %d speakers (mean %.2f dB, max %.2f dB)",
		len(a.Speakers), a.MeanAbsErrorDB, a.MaxAbsErrorDB)

	return a, nil
}

func (c *Corrector) convolutionFailed(code speaker.Code, err error) brir.Advisory {
	adv := brir.NewAdvisory(brir.AdvisoryIdentityFilter, code, "correction not applied: %v", err)
	c.cfg.logger.Error("%s", adv)

	return adv
}

func absStats(x []float64) (mean, peak float64) {
	if len(x) == 0 {
		return 0, 0
	}

	var sum float64

	for _, v := range x {
		sum += math.Abs(v)
		peak = max(peak, math.Abs(v))
	}

	return sum / float64(len(x)), peak
}
