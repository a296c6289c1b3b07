package logging

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger is the logger passed around the service.
type Logger = *logrus.Logger

// Fields are structured log fields.
type Fields = logrus.Fields

// New returns a JSON logger at the given level ("debug", "info", "warn", "error").
// Unknown levels fall back to info.
func New(level string) Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(ParseLevel(level))
	return logger
}

// ParseLevel maps a config string onto a logrus level.
func ParseLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// Nop returns a logger that writes nothing.
func Nop() Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func Info(logger Logger, msg string, fields Fields) {
	logger.WithFields(fields).Info(msg)
}

func Error(logger Logger, msg string, err error, fields Fields) {
	logger.WithFields(fields).WithError(err).Error(msg)
}
