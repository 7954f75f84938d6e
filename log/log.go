package log

import (
	"io"
	stdlog "log"
)

type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

var exported Logger = &nopLogger{}

func SetLogger(logger Logger) {
	if logger == nil {
		logger = &nopLogger{}
	}
	exported = logger
}

func Debugf(format string, args ...any) {
	exported.Debugf(format, args...)
}

func Infof(format string, args ...any) {
	exported.Infof(format, args...)
}

func Warnf(format string, args ...any) {
	exported.Warnf(format, args...)
}

func Errorf(format string, args ...any) {
	exported.Errorf(format, args...)
}

type nopLogger struct{}

func (*nopLogger) Debugf(string, ...any) {
}

func (*nopLogger) Infof(string, ...any) {
}

func (*nopLogger) Warnf(string, ...any) {
}

func (*nopLogger) Errorf(string, ...any) {
}

// StdLogger writes bare lines, without prefix or timestamp, so diagnostics
// can be compared against other tools' stderr output.
type StdLogger struct {
	l     *stdlog.Logger
	debug bool
}

func NewStdLogger(w io.Writer, debug bool) *StdLogger {
	return &StdLogger{
		l:     stdlog.New(w, "", 0),
		debug: debug,
	}
}

func (s *StdLogger) Debugf(format string, args ...any) {
	if s.debug {
		s.l.Printf(format, args...)
	}
}

func (s *StdLogger) Infof(format string, args ...any) {
	s.l.Printf(format, args...)
}

func (s *StdLogger) Warnf(format string, args ...any) {
	s.l.Printf(format, args...)
}

func (s *StdLogger) Errorf(format string, args ...any) {
	s.l.Printf(format, args...)
}
