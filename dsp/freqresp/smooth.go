package freqresp

import "math"

// SmoothOption configures fractional-octave smoothing.
type SmoothOption func(*smoothConfig)

type smoothConfig struct {
	trebleLow    float64
	trebleHigh   float64
	trebleWindow float64
	iterations   int
}

func defaultSmoothConfig() smoothConfig {
	return smoothConfig{trebleWindow: 2, iterations: 1}
}

// WithTreble blends towards the treble window between lo and hi Hz. Above
// hi only the treble window applies. Ignored unless 0 < lo < hi.
func WithTreble(lo, hi float64) SmoothOption {
	return func(cfg *smoothConfig) {
		if lo > 0 && hi > lo {
			cfg.trebleLow = lo
			cfg.trebleHigh = hi
		}
	}
}

// WithTrebleWindow sets the treble window width in octaves. Default 2.
func WithTrebleWindow(octaves float64) SmoothOption {
	return func(cfg *smoothConfig) {
		if octaves > 0 {
			cfg.trebleWindow = octaves
		}
	}
}

// WithIterations repeats the moving average n times. Default 1.
func WithIterations(n int) SmoothOption {
	return func(cfg *smoothConfig) {
		if n > 0 {
			cfg.iterations = n
		}
	}
}

// Smoothen applies a fractional-octave moving average of windowOctaves
// width to Raw (into Smoothed) and, when present, to Error (into
// ErrorSmoothed).
func (c *Curve) Smoothen(windowOctaves float64, opts ...SmoothOption) {
	cfg := defaultSmoothConfig()
	for _, o := range opts {
		o(&cfg)
	}

	c.Smoothed = smoothen(c.Frequency, c.Raw, windowOctaves, cfg)
	if len(c.Error) == len(c.Frequency) {
		c.ErrorSmoothed = smoothen(c.Frequency, c.Error, windowOctaves, cfg)
	}
}

// SmoothenHeavyLight smooths Error twice, lightly (1/3 octave, widening in
// the treble) and heavily (2 octaves), and keeps the larger of the two per
// frequency. Narrow dips are filled by the heavy curve while peaks keep the
// light detail, so equalization cuts resonances but does not boost notches.
func (c *Curve) SmoothenHeavyLight() {
	if len(c.Error) != len(c.Frequency) {
		return
	}

	light := defaultSmoothConfig()
	WithTreble(9000, 11500)(&light)

	heavy := defaultSmoothConfig()
	WithTreble(4000, 6000)(&heavy)
	WithTrebleWindow(5)(&heavy)

	l := smoothen(c.Frequency, c.Error, 1.0/3, light)
	h := smoothen(c.Frequency, c.Error, 2, heavy)

	out := make([]float64, len(l))
	for i := range out {
		out[i] = math.Max(l[i], h[i])
	}

	c.ErrorSmoothed = out
}

func smoothen(freq, data []float64, windowOctaves float64, cfg smoothConfig) []float64 {
	out := movingAverage(freq, data, windowOctaves, cfg.iterations)
	if cfg.trebleHigh <= 0 {
		return out
	}

	treble := movingAverage(freq, data, cfg.trebleWindow, cfg.iterations)

	for i, f := range freq {
		k := trebleWeight(f, cfg.trebleLow, cfg.trebleHigh)
		out[i] = (1-k)*out[i] + k*treble[i]
	}

	return out
}

func trebleWeight(f, lo, hi float64) float64 {
	switch {
	case f <= lo:
		return 0
	case f >= hi:
		return 1
	default:
		return (f - lo) / (hi - lo)
	}
}

// movingAverage averages each point over the grid points within
// ±windowOctaves/2 octaves. Windows shrink symmetrically at the edges so
// the average stays centered.
func movingAverage(freq, data []float64, windowOctaves float64, iterations int) []float64 {
	out := make([]float64, len(data))
	copy(out, data)

	if len(freq) < 3 || windowOctaves <= 0 {
		return out
	}

	half := windowOctaves / 2
	prefix := make([]float64, len(out)+1)

	for range iterations {
		prefix[0] = 0
		for i, v := range out {
			prefix[i+1] = prefix[i] + v
		}

		next := make([]float64, len(out))
		lo, hi := 0, 0

		for i, f := range freq {
			fLo := f / math.Exp2(half)
			fHi := f * math.Exp2(half)

			for lo < i && freq[lo] < fLo {
				lo++
			}

			hi = max(hi, i)
			for hi < len(freq)-1 && freq[hi+1] <= fHi {
				hi++
			}

			r := min(i-lo, hi-i)
			next[i] = (prefix[i+r+1] - prefix[i-r]) / float64(2*r+1)
		}

		out = next
	}

	return out
}
