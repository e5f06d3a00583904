package micdev

import (
	"github.com/cwbudde/algo-brir/brir"
	"github.com/cwbudde/algo-brir/brir/speaker"
	"github.com/cwbudde/algo-brir/dsp/core"
)

// Defaults.
const (
	DefaultStrength           = 0.7
	DefaultMaxCorrectionDB    = 6.0
	DefaultMinGateCycles      = 2.0
	DefaultMaxGateCycles      = 8.0
	DefaultConservativeFactor = 0.3
)

// DefaultBands returns the default analysis band centers in Hz.
func DefaultBands() []float64 {
	return []float64{250, 500, 1000, 2000, 4000, 8000}
}

// Option configures a Corrector.
type Option func(*config)

type config struct {
	bands              []float64
	strength           float64
	maxCorrectionDB    float64
	minGateCycles      float64
	maxGateCycles      float64
	priors             speaker.PriorTable
	conservativeFactor float64
	logger             brir.Logger
}

func defaultConfig() config {
	return config{
		bands:              DefaultBands(),
		strength:           DefaultStrength,
		maxCorrectionDB:    DefaultMaxCorrectionDB,
		minGateCycles:      DefaultMinGateCycles,
		maxGateCycles:      DefaultMaxGateCycles,
		priors:             speaker.DefaultPriors(),
		conservativeFactor: DefaultConservativeFactor,
		logger:             brir.NopLogger{},
	}
}

// WithBands sets the analysis band centers in Hz. Bands at or above
// Nyquist are dropped when the corrector is created.
func WithBands(hz ...float64) Option {
	return func(cfg *config) {
		if len(hz) > 0 {
			cfg.bands = append([]float64(nil), hz...)
		}
	}
}

// WithStrength sets the fraction of the estimated error that is corrected,
// clipped to [0, 1]. Default 0.7.
func WithStrength(s float64) Option {
	return func(cfg *config) {
		cfg.strength = core.Clamp(s, 0, 1)
	}
}

// WithMaxCorrectionDB limits the correction magnitude. Default 6 dB.
func WithMaxCorrectionDB(db float64) Option {
	return func(cfg *config) {
		if db > 0 {
			cfg.maxCorrectionDB = db
		}
	}
}

// WithGateCycles sets the analysis gate length in periods of the band
// center, from maxCycles at the lowest band down to minCycles at the
// highest. Default 2 and 8.
func WithGateCycles(minCycles, maxCycles float64) Option {
	return func(cfg *config) {
		if minCycles > 0 && maxCycles >= minCycles {
			cfg.minGateCycles = minCycles
			cfg.maxGateCycles = maxCycles
		}
	}
}

// WithPriors replaces the expected level-difference sign table.
func WithPriors(p speaker.PriorTable) Option {
	return func(cfg *config) { cfg.priors = p }
}

// WithConservativeFactor sets the fraction of the median deviation taken
// as microphone error when every speaker agrees with its prior. The
// default of 0.3 is an empirical choice.
func WithConservativeFactor(f float64) Option {
	return func(cfg *config) {
		if f >= 0 {
			cfg.conservativeFactor = f
		}
	}
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l brir.Logger) Option {
	return func(cfg *config) {
		if l != nil {
			cfg.logger = l
		}
	}
}
