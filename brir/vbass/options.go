package vbass

import "github.com/cwbudde/algo-brir/brir"

// Polarity selects the sign of the synthesized bass.
type Polarity int

const (
	// PolarityAuto takes the sign of the largest low band sample.
	PolarityAuto Polarity = iota
	// PolarityNormal keeps the low band as measured.
	PolarityNormal
	// PolarityInvert flips the low band.
	PolarityInvert
)

func (p Polarity) String() string {
	switch p {
	case PolarityNormal:
		return "normal"
	case PolarityInvert:
		return "invert"
	default:
		return "auto"
	}
}

const (
	defaultCrossover = 250.0
	defaultHeadMs    = 1.0
	defaultHighpass  = 15.0

	// crossoverWarnHz is the crossover above which synthesized bass starts
	// to replace localization cues.
	crossoverWarnHz = 300.0

	crossoverOrder = 8
	rumbleOrder    = 4
	shelfOrder     = 2
)

// Option configures Synthesize.
type Option func(*config)

type config struct {
	crossover float64
	headMs    float64
	highpass  float64
	polarity  Polarity
	logger    brir.Logger
}

func defaultConfig() config {
	return config{
		crossover: defaultCrossover,
		headMs:    defaultHeadMs,
		highpass:  defaultHighpass,
		polarity:  PolarityAuto,
	}
}

// WithCrossover sets the crossover frequency in Hz. Default 250.
func WithCrossover(hz float64) Option {
	return func(cfg *config) {
		if hz > 0 {
			cfg.crossover = hz
		}
	}
}

// WithHeadMs sets where the bass peak is placed, in milliseconds from the
// start of the response. Default 1.
func WithHeadMs(ms float64) Option {
	return func(cfg *config) {
		if ms >= 0 {
			cfg.headMs = ms
		}
	}
}

// WithHighpass sets the rumble filter frequency in Hz. Default 15.
func WithHighpass(hz float64) Option {
	return func(cfg *config) {
		if hz > 0 {
			cfg.highpass = hz
		}
	}
}

// WithPolarity sets the polarity mode. Default PolarityAuto.
func WithPolarity(p Polarity) Option {
	return func(cfg *config) {
		if p >= PolarityAuto && p <= PolarityInvert {
			cfg.polarity = p
		}
	}
}

// WithLogger overrides the store's logger. Nil is ignored.
func WithLogger(l brir.Logger) Option {
	return func(cfg *config) {
		if l != nil {
			cfg.logger = l
		}
	}
}
