// Package logger builds prefixed charmbracelet/log loggers shared across
// the typeahead packages.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// New returns a prefixed logger writing to stderr at the global level.
// Stderr keeps log output away from the stdout IPC stream in server mode.
func New(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: false,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// Discard returns a logger that swallows everything; used as the default
// when a widget is constructed without one.
func Discard() *log.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{})
	l.SetLevel(log.FatalLevel + 1)
	return l
}
