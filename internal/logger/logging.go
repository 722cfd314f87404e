// Package logger provides modifications to charmbracelet/log's default logger to be used in various files/packages.
//
// All loggers write to stderr: stdout carries the msgpack stream in server
// mode and the emitted character in the picker.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New derives a prefixed logger from the default one, so it follows the
// level, format and writer chosen by Setup.
func New(prefix string) *log.Logger {
	return log.Default().WithPrefix(prefix)
}

// NewWithConfig creates a new charm log with custom config
func NewWithConfig(w io.Writer, prefix string, level log.Level, caller bool, showTimestamp bool, fmt log.Formatter) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    caller,
		ReportTimestamp: showTimestamp,
		Formatter:       fmt,
	})
}

// Setup replaces the package-level logger used through log.Debug and friends.
// debug lowers the level and adds caller info; json switches to machine-readable output.
func Setup(prefix string, debug, json bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	formatter := log.TextFormatter
	if json {
		formatter = log.JSONFormatter
	}
	l := NewWithConfig(os.Stderr, prefix, level, debug, true, formatter)
	log.SetDefault(l)
	return l
}
