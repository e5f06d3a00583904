package micdev

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-brir/brir/speaker"
)

const (
	// anomalousPrior is the prior magnitude above which a deviation of the
	// opposite sign is attributed to the microphones.
	anomalousPrior = 0.5
	// scoredPrior is the prior magnitude above which a speaker takes part
	// in validation.
	scoredPrior = 0.3
	// neutralDB is the corrected deviation treated as neither agreeing nor
	// disagreeing with a prior.
	neutralDB = 1.0

	validScore       = 0.4
	highConfidence   = 0.7
	mediumConfidence = 0.5
)

// Branch records which speakers a band's estimate was derived from.
type Branch int

const (
	// BranchAnomalous: median of deviations contradicting their prior.
	BranchAnomalous Branch = iota + 1
	// BranchNeutral: median of deviations of speakers without a strong
	// prior.
	BranchNeutral
	// BranchConservative: a fraction of the median of all deviations.
	BranchConservative
	// BranchSingle: the deviation of the only collected speaker.
	BranchSingle
)

func (b Branch) String() string {
	switch b {
	case BranchAnomalous:
		return "anomalous"
	case BranchNeutral:
		return "neutral"
	case BranchConservative:
		return "conservative"
	case BranchSingle:
		return "single"
	default:
		return "none"
	}
}

// Estimate is the microphone error per band, left minus right in dB.
type Estimate struct {
	Bands    []float64
	ErrorDB  []float64
	Branches []Branch
}

// Separate estimates the microphone error of every band from the
// collected deviations. Per band the estimate is the median of the
// deviations contradicting a strong prior; failing that the median of the
// speakers with a weak prior; failing that the conservative factor times
// the median of all deviations.
func (c *Corrector) Separate() (Estimate, error) {
	if len(c.order) == 0 {
		return Estimate{}, ErrNoData
	}

	est := c.newEstimate()

	for i := range c.bands {
		var anomalous, neutral, all []float64

		for _, code := range c.order {
			d := c.deviations[code][i]
			p := c.cfg.priors.Of(code)
			all = append(all, d)

			switch {
			case p > anomalousPrior && d < 0, p < -anomalousPrior && d > 0:
				anomalous = append(anomalous, d)
			case math.Abs(p) <= anomalousPrior:
				neutral = append(neutral, d)
			}
		}

		switch {
		case len(anomalous) > 0:
			est.ErrorDB[i], est.Branches[i] = median(anomalous), BranchAnomalous
		case len(neutral) > 0:
			est.ErrorDB[i], est.Branches[i] = median(neutral), BranchNeutral
		default:
			est.ErrorDB[i], est.Branches[i] = c.cfg.conservativeFactor*median(all), BranchConservative
		}
	}

	c.estimate = &est

	return est, nil
}

// SingleSpeaker takes the deviation of the first collected speaker as the
// estimate, without cross-validation.
func (c *Corrector) SingleSpeaker() (Estimate, error) {
	if len(c.order) == 0 {
		return Estimate{}, ErrNoData
	}

	est := c.newEstimate()
	copy(est.ErrorDB, c.deviations[c.order[0]])

	for i := range est.Branches {
		est.Branches[i] = BranchSingle
	}

	c.estimate = &est

	return est, nil
}

func (c *Corrector) newEstimate() Estimate {
	est := Estimate{
		Bands:    make([]float64, len(c.bands)),
		ErrorDB:  make([]float64, len(c.bands)),
		Branches: make([]Branch, len(c.bands)),
	}

	for i, b := range c.bands {
		est.Bands[i] = b.Center
	}

	return est
}

// Confidence buckets a consistency score.
type Confidence int

const (
	ConfidenceLow Confidence = iota
	ConfidenceMedium
	ConfidenceHigh
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	default:
		return "low"
	}
}

// Score is the validation outcome of one speaker and band.
type Score struct {
	Speaker   speaker.Code
	Band      float64
	Raw       float64
	Corrected float64
	Prior     float64
	// Match is 1 when the corrected deviation has the prior's sign, 0.5
	// when it is within 1 dB of zero and 0 otherwise.
	Match float64
}

// Validation is the outcome of Validate.
type Validation struct {
	Score      float64
	Valid      bool
	Confidence Confidence
	Details    []Score
	// Reason is set when validation could not run.
	Reason string
}

// Validate subtracts the current estimate from every deviation of a
// speaker with a clear prior and scores the agreement of the result with
// the prior. The estimate is valid when the mean score exceeds 0.4.
// Without scored entries the score is a neutral 0.5.
func (c *Corrector) Validate() Validation {
	if c.estimate == nil || len(c.order) == 0 {
		return Validation{Reason: "insufficient data"}
	}

	var (
		v      Validation
		scores []float64
	)

	for i, b := range c.bands {
		e := c.estimate.ErrorDB[i]

		for _, code := range c.order {
			p := c.cfg.priors.Of(code)
			if math.Abs(p) <= scoredPrior {
				continue
			}

			raw := c.deviations[code][i]
			corrected := raw - e

			var match float64

			switch {
			case corrected*p > 0:
				match = 1
			case math.Abs(corrected) < neutralDB:
				match = 0.5
			}

			scores = append(scores, match)
			v.Details = append(v.Details, Score{
				Speaker:   code,
				Band:      b.Center,
				Raw:       raw,
				Corrected: corrected,
				Prior:     p,
				Match:     match,
			})
		}
	}

	v.Score = 0.5
	if len(scores) > 0 {
		v.Score = stat.Mean(scores, nil)
	}

	v.Valid = v.Score > validScore

	switch {
	case v.Score > highConfidence:
		v.Confidence = ConfidenceHigh
	case v.Score > mediumConfidence:
		v.Confidence = ConfidenceMedium
	default:
		v.Confidence = ConfidenceLow
	}

	return v
}

func median(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	s := slices.Clone(x)
	slices.Sort(s)

	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}

	return (s[n/2-1] + s[n/2]) / 2
}
