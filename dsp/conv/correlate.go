package conv

// Correlate computes the full cross-correlation of a and b. Output index k
// corresponds to lag k-(len(b)-1); a positive lag means a trails b.
func Correlate(a, b []float64) ([]float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmptyInput
	}

	reversed := make([]float64, len(b))
	for i, v := range b {
		reversed[len(b)-1-i] = v
	}

	return Convolve(a, reversed)
}

// Delay returns the lag in samples at which the cross-correlation of a and
// b peaks, i.e. argmax(Correlate(a, b)) - (len(b)-1). Ties resolve to the
// smallest lag.
func Delay(a, b []float64) (int, error) {
	corr, err := Correlate(a, b)
	if err != nil {
		return 0, err
	}

	best := 0
	for i, v := range corr {
		if v > corr[best] {
			best = i
		}
	}

	return best - (len(b) - 1), nil
}
