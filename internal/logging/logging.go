// Package logging provides the structured logger used across drvsync.
//
// Library packages depend only on the Logger interface. The CLI builds a
// logrus-backed implementation with New; tests and callers that do not care
// about output use Nop.
package logging

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger provides structured logging for drvsync operations.
type Logger interface {
	// Debug logs debug-level messages with optional key-value pairs.
	Debug(msg string, keysAndValues ...interface{})

	// Info logs info-level messages with optional key-value pairs.
	Info(msg string, keysAndValues ...interface{})

	// Warn logs warning-level messages with optional key-value pairs.
	Warn(msg string, keysAndValues ...interface{})

	// Error logs error-level messages with optional key-value pairs.
	Error(msg string, keysAndValues ...interface{})
}

// Format selects the log line encoding.
type Format int

const (
	FormatInvalid Format = iota
	FormatText
	FormatJSON
)

const (
	formatTextStr = "text"
	formatJSONStr = "json"
)

// ParseFormat parses "text" or "json" (case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case formatTextStr:
		return FormatText, nil
	case formatJSONStr:
		return FormatJSON, nil
	}
	return FormatInvalid, errors.New("invalid log format: " + s)
}

func (f Format) String() string {
	switch f {
	case FormatText:
		return formatTextStr
	case FormatJSON:
		return formatJSONStr
	}
	return fmt.Sprintf("invalid (%d)", int(f))
}

// ParseLevel validates a level name such as "debug" or "warn".
func ParseLevel(s string) error {
	_, err := logrus.ParseLevel(s)
	return err
}

// Config holds logger settings.
type Config struct {
	Level  string
	Format Format
}

// New creates a logrus-backed Logger writing to output.
func New(cfg Config, output io.Writer) (Logger, error) {
	level := logrus.InfoLevel
	if cfg.Level != "" {
		parsed, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}

	l := logrus.New()
	l.Out = output
	l.Level = level
	switch cfg.Format {
	case FormatJSON:
		l.Formatter = &logrus.JSONFormatter{}
	default:
		l.Formatter = &logrus.TextFormatter{DisableColors: true, FullTimestamp: true}
	}

	return &logrusLogger{entry: logrus.NewEntry(l)}, nil
}

type logrusLogger struct {
	entry *logrus.Entry
}

func (l *logrusLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Debug(msg)
}

func (l *logrusLogger) Info(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Info(msg)
}

func (l *logrusLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Warn(msg)
}

func (l *logrusLogger) Error(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Error(msg)
}

// with converts alternating key-value pairs into logrus fields.
// A dangling key is recorded under "!BADKEY" rather than dropped.
func (l *logrusLogger) with(keysAndValues []interface{}) *logrus.Entry {
	if len(keysAndValues) == 0 {
		return l.entry
	}

	fields := make(logrus.Fields, (len(keysAndValues)+1)/2)
	for i := 0; i < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}
		if i+1 >= len(keysAndValues) {
			fields["!BADKEY"] = key
			break
		}
		fields[key] = keysAndValues[i+1]
	}
	return l.entry.WithFields(fields)
}

// noopLogger is a Logger implementation that does nothing.
type noopLogger struct{}

func (n *noopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (n *noopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (n *noopLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (n *noopLogger) Error(msg string, keysAndValues ...interface{}) {}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return &noopLogger{}
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return Nop()
	}
	return l
}
