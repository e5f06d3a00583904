package biquad

// Chain is an ordered cascade of biquad sections processed in series.
// It holds no delay-line state, so one Chain can be shared by every
// channel of an offline job.
type Chain struct {
	sections []Coefficients
}

// NewChain creates a cascade from one or more coefficient sets.
func NewChain(coeffs []Coefficients) *Chain {
	c := &Chain{sections: make([]Coefficients, len(coeffs))}
	copy(c.sections, coeffs)

	return c
}

// Filter returns a filtered copy of src computed from zero initial state.
func (c *Chain) Filter(src []float64) []float64 {
	out := make([]float64, len(src))
	copy(out, src)

	for i := range c.sections {
		c.sections[i].filterInPlace(out)
	}

	return out
}
