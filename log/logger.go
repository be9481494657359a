// Package log provides named leveled loggers shared by the curveray packages
// and command. Output goes to stderr at Notice level unless changed.
package log

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

// Level is a logging verbosity. Messages above the set level are dropped.
type Level logging.Level

const (
	Error   = Level(logging.ERROR)
	Warning = Level(logging.WARNING)
	Notice  = Level(logging.NOTICE)
	Info    = Level(logging.INFO)
	Debug   = Level(logging.DEBUG)
)

// Logger is the leveled logging interface used throughout curveray.
// It is satisfied by *logging.Logger.
type Logger interface {
	Debugf(format string, v ...interface{})
	Infof(format string, v ...interface{})
	Noticef(format string, v ...interface{})
	Warningf(format string, v ...interface{})
	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

var (
	format = logging.MustStringFormatter(
		`%{color}%{time:15:04:05.000} %{level:.4s} %{module}:%{color:reset} %{message}`,
	)
	backend logging.LeveledBackend
)

// New returns the logger registered under module.
func New(module string) Logger {
	return logging.MustGetLogger(module)
}

// SetSink replaces the output of all loggers. The level is reset to Notice.
func SetSink(sink io.Writer) {
	formatted := logging.NewBackendFormatter(logging.NewLogBackend(sink, "", 0), format)
	backend = logging.AddModuleLevel(formatted)
	SetLevel(Notice)
	logging.SetBackend(backend)
}

// SetLevel sets the verbosity of all loggers.
func SetLevel(level Level) {
	backend.SetLevel(logging.Level(level), "")
}

// SetModuleLevel sets the verbosity of a single module, overriding SetLevel.
func SetModuleLevel(module string, level Level) {
	backend.SetLevel(logging.Level(level), module)
}

func init() {
	SetSink(os.Stderr)
}
