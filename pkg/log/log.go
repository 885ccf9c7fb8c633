package log

import (
	"fmt"
	"os"
)

type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Fatal(str string)
}

type logger struct {
}

func New() Logger {
	return &logger{}
}

func (l *logger) Infof(format string, args ...interface{}) {
	fmt.Printf("[INFO]\t"+format+"\n", args...)
}

func (l *logger) Errorf(format string, args ...interface{}) {
	fmt.Printf("[ERROR]\t"+format+"\n", args...)
}

func (l *logger) Debugf(format string, args ...interface{}) {
	fmt.Printf("[DEBUG]\t"+format+"\n", args...)
}

func (l *logger) Fatal(str string) {
	fmt.Printf("[FATAL]\t%s\n", str)
	os.Exit(1)
}

// Tee duplicates log output to every given logger. Fatal runs in
// reverse order so secondary sinks see the message before the primary
// logger exits the process.
func Tee(loggers ...Logger) Logger {
	return tee(loggers)
}

type tee []Logger

func (t tee) Infof(format string, args ...interface{}) {
	for _, l := range t {
		l.Infof(format, args...)
	}
}

func (t tee) Errorf(format string, args ...interface{}) {
	for _, l := range t {
		l.Errorf(format, args...)
	}
}

func (t tee) Debugf(format string, args ...interface{}) {
	for _, l := range t {
		l.Debugf(format, args...)
	}
}

func (t tee) Fatal(str string) {
	for i := len(t) - 1; i >= 0; i-- {
		t[i].Fatal(str)
	}
}
