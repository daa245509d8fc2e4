package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var defaultLogger = &logrus.Logger{
	Out:       os.Stdout,
	Formatter: new(logrus.JSONFormatter),
	Level:     logrus.InfoLevel,
}

// SetLevel adjusts the minimum level; unknown names are ignored.
func SetLevel(name string) {
	if lvl, err := logrus.ParseLevel(name); err == nil {
		defaultLogger.SetLevel(lvl)
	}
}

// Info logs a message at Info level.
func Info(msg string) {
	defaultLogger.Infoln(msg)
}

// Infof logs a formatted message at Info level.
func Infof(format string, args ...interface{}) {
	defaultLogger.Infof(format, args...)
}

// Error logs an error at Error level.
func Error(err error) {
	defaultLogger.Errorln(err)
}

// Errorf logs a formatted message at Error level.
func Errorf(format string, args ...interface{}) {
	defaultLogger.Errorf(format, args...)
}

// Fatalf logs a formatted message at Fatal level and exits.
func Fatalf(format string, args ...interface{}) {
	defaultLogger.Fatalf(format, args...)
}
