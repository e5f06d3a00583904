package crossover

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-brir/dsp/filter/biquad"
	"github.com/cwbudde/algo-brir/dsp/filter/design"
)

// ErrInvalidParams is returned by New for unusable parameters.
var ErrInvalidParams = errors.New("crossover: invalid parameters")

// Crossover is a two-way Butterworth band split.
type Crossover struct {
	lp *biquad.Chain
	hp *biquad.Chain
}

// New creates a crossover at freq with Butterworth filters of the given
// order. freq must lie in (0, sampleRate/2).
func New(freq float64, order int, sampleRate float64) (*Crossover, error) {
	if order <= 0 {
		return nil, fmt.Errorf("%w: order must be positive, got %d", ErrInvalidParams, order)
	}

	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be positive, got %v", ErrInvalidParams, sampleRate)
	}

	if freq <= 0 || freq >= sampleRate/2 {
		return nil, fmt.Errorf("%w: frequency must be in (0, %v), got %v", ErrInvalidParams, sampleRate/2, freq)
	}

	return &Crossover{
		lp: biquad.NewChain(design.ButterworthLP(freq, order, sampleRate)),
		hp: biquad.NewChain(design.ButterworthHP(freq, order, sampleRate)),
	}, nil
}

// Split filters src through both bands from a cleared state. src is not
// modified.
func (c *Crossover) Split(src []float64) (low, high []float64) {
	return c.lp.Filter(src), c.hp.Filter(src)
}
