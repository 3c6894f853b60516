// ABOUTME: Structured logger implementation backed by logrus
// ABOUTME: Every entry carries system=LinkOff; file output is rotated by lumberjack

package logrus

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// System is attached to every entry.
const System = "LinkOff"

// Config holds logger configuration
type Config struct {
	// Level is one of debug, info, warn, error; anything else means info
	Level string

	// JSON switches to the JSON formatter
	JSON bool

	// File enables rotated file output instead of stderr
	File string

	// Output overrides the destination, mainly for tests
	Output io.Writer
}

// Logger implements interfaces.Logger on a logrus entry
type Logger struct {
	entry *log.Entry
}

// NewLogger creates a logger from config
func NewLogger(cfg Config) *Logger {
	base := log.New()

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}
	base.SetLevel(level)

	if cfg.JSON {
		base.SetFormatter(&log.JSONFormatter{})
	} else {
		base.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	switch {
	case cfg.Output != nil:
		base.SetOutput(cfg.Output)
	case cfg.File != "":
		base.SetOutput(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    50, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
	default:
		base.SetOutput(os.Stderr)
	}

	return &Logger{entry: base.WithField("system", System)}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.with(fields).Debug(msg)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.with(fields).Info(msg)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.with(fields).Warn(msg)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.with(fields).Error(msg)
}

func (l *Logger) with(fields map[string]interface{}) *log.Entry {
	if len(fields) == 0 {
		return l.entry
	}
	return l.entry.WithFields(log.Fields(fields))
}
