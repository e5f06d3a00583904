package balance

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-brir/brir"
	"github.com/cwbudde/algo-brir/brir/speaker"
	"github.com/cwbudde/algo-brir/dsp/freqresp"
)

// Groups are the symmetric speaker sets balanced together.
func Groups() [][]speaker.Code {
	return [][]speaker.Code{
		{speaker.FC},
		{speaker.FL, speaker.FR},
		{speaker.SL, speaker.SR},
		{speaker.BL, speaker.BR},
	}
}

// GroupResult describes the filters applied to one group.
type GroupResult struct {
	Speakers []speaker.Code
	// LeftFIR and RightFIR are the filters convolved into the left and
	// right ear responses. An identity filter is used after a failure.
	LeftFIR  []float64
	RightFIR []float64
}

// Report is the outcome of Correct.
type Report struct {
	Method     Method
	Groups     []GroupResult
	Advisories []brir.Advisory
}

// Option configures Correct.
type Option func(*config)

type config struct {
	logger brir.Logger
}

// WithLogger overrides the store's logger. Nil is ignored.
func WithLogger(l brir.Logger) Option {
	return func(cfg *config) {
		if l != nil {
			cfg.logger = l
		}
	}
}

// Correct balances every complete symmetric group of the store with
// method m. For each group the left ear responses of all members are
// averaged, as are the right ear responses; the filter pair derived from
// the two averages is convolved into every member, preserving lengths.
//
// Groups with a missing member are skipped. A filter that cannot be
// designed is replaced by an identity filter and reported as an advisory.
func Correct(store *brir.Store, m Method, opts ...Option) (Report, error) {
	cfg := config{logger: store.Logger()}
	for _, o := range opts {
		o(&cfg)
	}

	if m.Kind < Trend || m.Kind > Fixed {
		return Report{}, fmt.Errorf("%w: %v", ErrInvalidMethod, m)
	}

	report := Report{Method: m}
	fs := store.SampleRate()

	for _, group := range Groups() {
		if !store.Has(group...) {
			continue
		}

		left, right, err := groupFIRs(store, group, m)
		if err != nil {
			adv := brir.NewAdvisory(brir.AdvisoryIdentityFilter, group[0],
				"channel balance filters for %v could not be designed, using identity: %v", group, err)
			report.Advisories = append(report.Advisories, adv)
			cfg.logger.Error("%s", adv)

			left, right = []float64{1}, []float64{1}
		}

		for _, c := range group {
			p, _ := store.Pair(c)

			if err := p.Left.Equalize(left); err != nil {
				return report, fmt.Errorf("balance: %s left: %w", c, err)
			}

			if err := p.Right.Equalize(right); err != nil {
				return report, fmt.Errorf("balance: %s right: %w", c, err)
			}
		}

		cfg.logger.Info("balanced %v with %s (%d taps at %d Hz)", group, m, len(left), fs)
		report.Groups = append(report.Groups, GroupResult{Speakers: group, LeftFIR: left, RightFIR: right})
	}

	return report, nil
}

func groupFIRs(store *brir.Store, group []speaker.Code, m Method) ([]float64, []float64, error) {
	fs := store.SampleRate()

	var n int

	for _, c := range group {
		p, _ := store.Pair(c)
		n = max(n, p.Left.Len(), p.Right.Len())
	}

	if n == 0 {
		return nil, nil, freqresp.ErrEmptyCurve
	}

	var curves [2]*freqresp.Curve

	for _, e := range []brir.Ear{brir.LeftEar, brir.RightEar} {
		avg := make([]float64, n)

		for _, c := range group {
			p, _ := store.Pair(c)
			r := p.Ear(e)
			vecmath.AddBlockInPlace(avg[:r.Len()], r.Data)
		}

		vecmath.ScaleBlockInPlace(avg, 1/float64(len(group)))

		fr, err := freqresp.FromImpulseResponse(avg, float64(fs))
		if err != nil {
			return nil, nil, err
		}

		curves[e] = fr
	}

	return FIRs(curves[brir.LeftEar], curves[brir.RightEar], m, fs)
}
