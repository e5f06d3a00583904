package brir

import (
	"fmt"
	"testing"

	"github.com/cwbudde/algo-brir/brir/speaker"
)

type fakeEstimator struct {
	fs      int
	n       int
	octaves float64
}

func (e fakeEstimator) SampleRate() int  { return e.fs }
func (e fakeEstimator) Len() int         { return e.n }
func (e fakeEstimator) Octaves() float64 { return e.octaves }

type recordingLogger struct {
	warnings []string
	infos    []string
}

func (l *recordingLogger) Info(format string, args ...any) {
	l.infos = append(l.infos, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Warning(format string, args ...any) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Error(string, ...any)   {}
func (l *recordingLogger) Success(string, ...any) {}

func newStore(t *testing.T, fs int, opts ...Option) *Store {
	t.Helper()

	s, err := NewStore(fs, opts...)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	return s
}

func mustSet(t *testing.T, s *Store, c speaker.Code, left, right []float64) {
	t.Helper()

	if err := s.Set(c, left, right); err != nil {
		t.Fatalf("Set(%s): %v", c, err)
	}
}
