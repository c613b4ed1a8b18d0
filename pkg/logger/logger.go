package logger

import (
	"io"
	"os"

	logging "github.com/op/go-logging"
)

type Logger interface {
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
	Warnf(format string, v ...any)
	Errorf(format string, v ...any)
}

var format = logging.MustStringFormatter(
	`%{time:2006-01-02 15:04:05.000} [%{level:.4s}] %{module}: %{message}`,
)

type moduleLogger struct {
	l *logging.Logger
}

// New returns a Logger for module writing to stderr. Unknown level names fall back to INFO.
func New(module, level string) Logger {
	return newWithWriter(module, level, os.Stderr)
}

// Nop discards everything.
func Nop() Logger { return newWithWriter("nop", "critical", io.Discard) }

func newWithWriter(module, level string, w io.Writer) Logger {
	lvl, err := logging.LogLevel(level)
	if err != nil {
		lvl = logging.INFO
	}
	backend := logging.NewBackendFormatter(logging.NewLogBackend(w, "", 0), format)
	leveled := logging.AddModuleLevel(backend)
	leveled.SetLevel(lvl, module)

	l := logging.MustGetLogger(module)
	l.SetBackend(leveled)
	return &moduleLogger{l: l}
}

func (m *moduleLogger) Debugf(format string, v ...any) { m.l.Debugf(format, v...) }
func (m *moduleLogger) Infof(format string, v ...any)  { m.l.Infof(format, v...) }
func (m *moduleLogger) Warnf(format string, v ...any)  { m.l.Warningf(format, v...) }
func (m *moduleLogger) Errorf(format string, v ...any) { m.l.Errorf(format, v...) }
