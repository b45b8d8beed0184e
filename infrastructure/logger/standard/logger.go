// ABOUTME: Logger implementation backed by sirupsen/logrus
// ABOUTME: Provides structured logging with configurable level and text or JSON output

package standard

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// StandardLogger implements the Logger interface on top of logrus
type StandardLogger struct {
	entry *logrus.Logger
}

// NewStandardLogger creates a text logger at info level writing to stdout
func NewStandardLogger() *StandardLogger {
	logger, _ := New("info", "text", os.Stdout)
	return logger
}

// New creates a logger with the given level (debug, info, warn, error) and
// format (text or json).
func New(level, format string, out io.Writer) (*StandardLogger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(lvl)

	switch format {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}

	return &StandardLogger{entry: l}, nil
}

// Debug logs a debug message
func (l *StandardLogger) Debug(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Debug(msg)
}

// Info logs an info message
func (l *StandardLogger) Info(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Info(msg)
}

// Warn logs a warning message
func (l *StandardLogger) Warn(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Warn(msg)
}

// Error logs an error message
func (l *StandardLogger) Error(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Error(msg)
}
