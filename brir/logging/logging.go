// Package logging adapts logrus to the brir.Logger interface.
package logging

import (
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-brir/brir"
)

// Logger forwards processing messages to a logrus entry. Success messages
// are logged at info level with status=success.
type Logger struct {
	entry *logrus.Entry
}

var _ brir.Logger = (*Logger)(nil)

// New returns a Logger writing to l with a component field. A nil l uses
// the logrus standard logger.
func New(l *logrus.Logger, component string) *Logger {
	if l == nil {
		l = logrus.StandardLogger()
	}

	entry := logrus.NewEntry(l)
	if component != "" {
		entry = entry.WithField("component", component)
	}

	return &Logger{entry: entry}
}

// With returns a Logger that adds key=value to every message.
func (l *Logger) With(key string, value any) *Logger {
	return &Logger{entry: l.entry.WithField(key, value)}
}

func (l *Logger) Info(format string, args ...any) {
	l.entry.Infof(format, args...)
}

func (l *Logger) Warning(format string, args ...any) {
	l.entry.Warnf(format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.entry.Errorf(format, args...)
}

func (l *Logger) Success(format string, args ...any) {
	l.entry.WithField("status", "success").Infof(format, args...)
}
