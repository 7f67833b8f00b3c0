package hses

import (
	"fmt"
	"log"
	"os"
)

// LeveledLogger is the logging interface used throughout this package and
// the mock package. A caller may plug in their own implementation on the
// mock server through the mock.Logger option; the client side instead takes
// a *log.Logger sink through Configuration.Logger. If none is given,
// messages are written to stdout.
type LeveledLogger interface {
	Info(msg string)
	Infof(format string, args ...interface{})
	Warning(msg string)
	Warningf(format string, args ...interface{})
	Error(msg string)
	Errorf(format string, args ...interface{})
}

var _ LeveledLogger = (*logger)(nil)

type logger struct {
	prefix string
	sink   *log.Logger
}

func newLogger(prefix string, sink *log.Logger) *logger {
	if sink == nil {
		sink = log.New(os.Stdout, "", log.LstdFlags)
	}

	return &logger{prefix: prefix, sink: sink}
}

func (l *logger) Info(msg string) {
	l.sink.Printf("%s [info]: %s", l.prefix, msg)
}

func (l *logger) Infof(format string, args ...interface{}) {
	l.sink.Printf("%s [info]: %s", l.prefix, fmt.Sprintf(format, args...))
}

func (l *logger) Warning(msg string) {
	l.sink.Printf("%s [warn]: %s", l.prefix, msg)
}

func (l *logger) Warningf(format string, args ...interface{}) {
	l.sink.Printf("%s [warn]: %s", l.prefix, fmt.Sprintf(format, args...))
}

func (l *logger) Error(msg string) {
	l.sink.Printf("%s [error]: %s", l.prefix, msg)
}

func (l *logger) Errorf(format string, args ...interface{}) {
	l.sink.Printf("%s [error]: %s", l.prefix, fmt.Sprintf(format, args...))
}
