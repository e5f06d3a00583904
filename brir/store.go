package brir

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-brir/brir/speaker"
)

// Errors returned by Store operations.
var (
	ErrSampleRateMismatch = errors.New("brir: store sample rate does not match estimator sample rate")
	ErrInvalidSampleRate  = errors.New("brir: sample rate must be positive")
	ErrUnknownSpeaker     = errors.New("brir: unknown speaker")
	ErrEmptyStore         = errors.New("brir: store is empty")
)

// Estimator describes the sweep that produced the impulse responses.
type Estimator interface {
	SampleRate() int
	// Len is the sweep length in samples.
	Len() int
	// Octaves is the number of octaves the sweep covers.
	Octaves() float64
}

// Ear selects one side of a Pair.
type Ear int

const (
	LeftEar Ear = iota
	RightEar
)

func (e Ear) String() string {
	if e == RightEar {
		return "right"
	}

	return "left"
}

// Side returns the speaker side the ear is on.
func (e Ear) Side() speaker.Side {
	if e == RightEar {
		return speaker.Right
	}

	return speaker.Left
}

// Pair holds both ear responses of one speaker.
type Pair struct {
	Left  ImpulseResponse
	Right ImpulseResponse
}

// Ear returns the response of the given ear.
func (p *Pair) Ear(e Ear) *ImpulseResponse {
	if e == RightEar {
		return &p.Right
	}

	return &p.Left
}

// Store maps speaker positions to ear response pairs sharing one sample
// rate. Iteration follows speaker enumeration order.
type Store struct {
	fs        int
	estimator Estimator
	delays    speaker.DelayTable
	logger    Logger

	pairs [speaker.NumCodes]*Pair
}

// Option configures a Store.
type Option func(*Store)

// WithEstimator attaches the sweep descriptor used for the sample-rate
// guard and the tail fade length.
func WithEstimator(e Estimator) Option {
	return func(s *Store) { s.estimator = e }
}

// WithDelays sets the expected physical delay per speaker.
func WithDelays(d speaker.DelayTable) Option {
	return func(s *Store) { s.delays = d }
}

// WithLogger sets the logger used by store operations. Nil is ignored.
func WithLogger(l Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStore returns an empty store at sample rate fs.
func NewStore(fs int, opts ...Option) (*Store, error) {
	if fs <= 0 {
		return nil, ErrInvalidSampleRate
	}

	s := &Store{
		fs:     fs,
		delays: speaker.DefaultDelays(),
		logger: NopLogger{},
	}

	for _, o := range opts {
		o(s)
	}

	return s, nil
}

// SampleRate returns the shared sample rate in Hz.
func (s *Store) SampleRate() int {
	return s.fs
}

// Estimator returns the attached sweep descriptor, if any.
func (s *Store) Estimator() Estimator {
	return s.estimator
}

// Logger returns the store's logger.
func (s *Store) Logger() Logger {
	return s.logger
}

// Set stores copies of left and right as the responses of c.
func (s *Store) Set(c speaker.Code, left, right []float64) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %v", ErrUnknownSpeaker, c)
	}

	s.pairs[c] = &Pair{
		Left:  ImpulseResponse{Data: append([]float64(nil), left...), Fs: s.fs},
		Right: ImpulseResponse{Data: append([]float64(nil), right...), Fs: s.fs},
	}

	return nil
}

// Remove deletes the responses of c.
func (s *Store) Remove(c speaker.Code) {
	if c.Valid() {
		s.pairs[c] = nil
	}
}

// Pair returns the responses of c. The pair is owned by the store and may
// be modified in place.
func (s *Store) Pair(c speaker.Code) (*Pair, bool) {
	if !c.Valid() || s.pairs[c] == nil {
		return nil, false
	}

	return s.pairs[c], true
}

// Has reports whether every given speaker is present.
func (s *Store) Has(codes ...speaker.Code) bool {
	for _, c := range codes {
		if _, ok := s.Pair(c); !ok {
			return false
		}
	}

	return true
}

// Speakers returns the present speakers in enumeration order.
func (s *Store) Speakers() []speaker.Code {
	var out []speaker.Code

	for i, p := range s.pairs {
		if p != nil {
			out = append(out, speaker.Code(i))
		}
	}

	return out
}

// Len returns the number of speakers present.
func (s *Store) Len() int {
	n := 0

	for _, p := range s.pairs {
		if p != nil {
			n++
		}
	}

	return n
}

// MaxLen returns the longest response length in samples.
func (s *Store) MaxLen() int {
	n := 0
	s.Each(func(_ speaker.Code, _ Ear, r *ImpulseResponse) {
		n = max(n, r.Len())
	})

	return n
}

// Copy returns a deep copy sharing estimator, delays and logger.
func (s *Store) Copy() *Store {
	out := &Store{
		fs:        s.fs,
		estimator: s.estimator,
		delays:    s.delays,
		logger:    s.logger,
	}

	for i, p := range s.pairs {
		if p != nil {
			out.pairs[i] = &Pair{Left: p.Left.Clone(), Right: p.Right.Clone()}
		}
	}

	return out
}

// Each visits every response, left ear before right, in speaker order.
func (s *Store) Each(fn func(c speaker.Code, e Ear, r *ImpulseResponse)) {
	for i, p := range s.pairs {
		if p == nil {
			continue
		}

		fn(speaker.Code(i), LeftEar, &p.Left)
		fn(speaker.Code(i), RightEar, &p.Right)
	}
}

func (s *Store) checkEstimator() error {
	if s.estimator == nil {
		return nil
	}

	if got := s.estimator.SampleRate(); got != s.fs {
		return fmt.Errorf("%w: store %d Hz, estimator %d Hz", ErrSampleRateMismatch, s.fs, got)
	}

	return nil
}
