package brir

import (
	"fmt"

	"github.com/cwbudde/algo-brir/brir/speaker"
)

// Logger receives progress and diagnostic messages from processing stages.
// Methods take printf-style arguments.
type Logger interface {
	Info(format string, args ...any)
	Warning(format string, args ...any)
	Error(format string, args ...any)
	Success(format string, args ...any)
}

// NopLogger discards every message.
type NopLogger struct{}

func (NopLogger) Info(string, ...any)    {}
func (NopLogger) Warning(string, ...any) {}
func (NopLogger) Error(string, ...any)   {}
func (NopLogger) Success(string, ...any) {}

// AdvisoryKind classifies an Advisory.
type AdvisoryKind int

const (
	// AdvisoryITDContradiction: the ear that received the sound first is on
	// the opposite side of the speaker's position.
	AdvisoryITDContradiction AdvisoryKind = iota + 1
	// AdvisoryMinimumPhaseFallback: minimum-phase reconstruction failed and
	// a magnitude-only signal was used.
	AdvisoryMinimumPhaseFallback
	// AdvisoryIdentityFilter: filter design or convolution failed and an
	// identity filter was used.
	AdvisoryIdentityFilter
	// AdvisorySingleSpeaker: too few speakers for cross-validation.
	AdvisorySingleSpeaker
	// AdvisoryInconsistent: cross-validation rejected the estimate and the
	// correction strength was reduced.
	AdvisoryInconsistent
)

func (k AdvisoryKind) String() string {
	switch k {
	case AdvisoryITDContradiction:
		return "itd-contradiction"
	case AdvisoryMinimumPhaseFallback:
		return "minimum-phase-fallback"
	case AdvisoryIdentityFilter:
		return "identity-filter"
	case AdvisorySingleSpeaker:
		return "single-speaker"
	case AdvisoryInconsistent:
		return "inconsistent"
	default:
		return fmt.Sprintf("AdvisoryKind(%d)", int(k))
	}
}

// Advisory is a non-fatal diagnostic produced while processing.
type Advisory struct {
	Kind    AdvisoryKind
	Speaker speaker.Code
	// HasSpeaker is false for advisories about the whole set.
	HasSpeaker bool
	Message    string
}

// NewAdvisory returns an advisory about a single speaker.
func NewAdvisory(kind AdvisoryKind, c speaker.Code, format string, args ...any) Advisory {
	return Advisory{Kind: kind, Speaker: c, HasSpeaker: true, Message: fmt.Sprintf(format, args...)}
}

// GlobalAdvisory returns an advisory about the whole set.
func GlobalAdvisory(kind AdvisoryKind, format string, args ...any) Advisory {
	return Advisory{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (a Advisory) String() string {
	if a.HasSpeaker {
		return fmt.Sprintf("%s %s: %s", a.Kind, a.Speaker, a.Message)
	}

	return fmt.Sprintf("%s: %s", a.Kind, a.Message)
}
