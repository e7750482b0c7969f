// Package logger provides structured logging for the game server.
// Everything the engine does to a pet should be traceable through this.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger wraps a leveled logrus instance with the small surface the rest
// of the server uses.
type Logger struct {
	base *logrus.Logger
}

// NewLogger creates a logger at info level writing to stdout.
func NewLogger() *Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(logrus.InfoLevel)
	return &Logger{base: l}
}

// SetLevel parses and applies a level name ("debug", "info", "warn",
// "error"). Unknown names leave the level unchanged.
func (l *Logger) SetLevel(level string) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		l.base.Warnf("Unknown log level %q, keeping %s", level, l.base.GetLevel())
		return
	}
	l.base.SetLevel(parsed)
}

// Info logs informational messages.
func (l *Logger) Info(msg string) { l.base.Info(msg) }

// Infof logs formatted informational messages.
func (l *Logger) Infof(format string, args ...interface{}) { l.base.Infof(format, args...) }

// Warn logs warning messages.
func (l *Logger) Warn(msg string) { l.base.Warn(msg) }

// Error logs error messages.
func (l *Logger) Error(msg string) { l.base.Error(msg) }

// Event logs a game event with structured fields.
func (l *Logger) Event(eventKind string, actor string, details string) {
	l.base.WithFields(logrus.Fields{
		"event": eventKind,
		"actor": actor,
	}).Info(details)
}
