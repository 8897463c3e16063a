package internal

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// LogLevel represents different logging verbosity levels
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
	LogLevelTrace
)

var logrusLevels = map[LogLevel]logrus.Level{
	LogLevelError: logrus.ErrorLevel,
	LogLevelWarn:  logrus.WarnLevel,
	LogLevelInfo:  logrus.InfoLevel,
	LogLevelDebug: logrus.DebugLevel,
	LogLevelTrace: logrus.TraceLevel,
}

// Logger provides leveled logging on top of logrus.
type Logger struct {
	level LogLevel
	entry *logrus.Entry
}

// NewLogger creates a text logger on stderr with the specified level
func NewLogger(level LogLevel) *Logger {
	return NewLoggerTo(os.Stderr, level, false)
}

// NewLoggerTo creates a logger writing to w, JSON-formatted when json is set.
func NewLoggerTo(w io.Writer, level LogLevel, json bool) *Logger {
	base := logrus.New()
	base.SetOutput(w)
	base.SetLevel(logrusLevels[level])
	if json {
		base.SetFormatter(&logrus.JSONFormatter{})
	} else {
		base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	}
	return &Logger{level: level, entry: logrus.NewEntry(base)}
}

// ParseLogLevel maps ERROR/WARN/INFO/DEBUG/TRACE (any case) to a level,
// defaulting to info.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ERROR":
		return LogLevelError
	case "WARN", "WARNING":
		return LogLevelWarn
	case "DEBUG":
		return LogLevelDebug
	case "TRACE":
		return LogLevelTrace
	default:
		return LogLevelInfo
	}
}

// NewDefaultLogger creates a logger from LOG_LEVEL and LOG_FORMAT (text|json).
func NewDefaultLogger() *Logger {
	return NewLoggerTo(os.Stderr, ParseLogLevel(os.Getenv("LOG_LEVEL")), strings.EqualFold(os.Getenv("LOG_FORMAT"), "json"))
}

// With returns a logger that attaches key=value to every line.
func (l *Logger) With(key string, value interface{}) *Logger {
	return &Logger{level: l.level, entry: l.entry.WithField(key, value)}
}

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	l.entry.Errorf(format, args...)
}

// Warn logs warning messages
func (l *Logger) Warn(format string, args ...interface{}) {
	l.entry.Warnf(format, args...)
}

// Info logs info messages
func (l *Logger) Info(format string, args ...interface{}) {
	l.entry.Infof(format, args...)
}

// Debug logs debug messages
func (l *Logger) Debug(format string, args ...interface{}) {
	l.entry.Debugf(format, args...)
}

// Trace logs trace messages
func (l *Logger) Trace(format string, args ...interface{}) {
	l.entry.Tracef(format, args...)
}

// GetLevel returns the current log level
func (l *Logger) GetLevel() LogLevel {
	return l.level
}

// Global logger instance
var DefaultLogger = NewDefaultLogger()
