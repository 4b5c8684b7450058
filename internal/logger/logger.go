// Package logger provides the process-wide log facade: human-readable
// console output plus optional rotated JSON file output.
package logger

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type facade struct {
	console *logrus.Logger
	file    *logrus.Logger
}

var (
	mu      sync.RWMutex
	current = newFacade()
)

func newFacade() *facade {
	console := logrus.New()
	console.SetFormatter(&logrus.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	// Console logs go to stderr so command output on stdout stays clean
	// for piping.
	console.SetOutput(os.Stderr)
	console.SetLevel(logrus.InfoLevel)
	return &facade{console: console}
}

// Setup configures log verbosity and, when path is non-empty, enables
// rotated JSON file logging alongside the console.
func Setup(verbose bool, path string) {
	f := newFacade()
	if verbose {
		f.console.SetLevel(logrus.DebugLevel)
	}

	if path != "" {
		file := logrus.New()
		file.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
		file.SetLevel(logrus.DebugLevel)
		file.SetOutput(&lumberjack.Logger{
			Filename:   path,
			MaxSize:    10,
			MaxBackups: 5,
			MaxAge:     30,
			Compress:   true,
		})
		f.file = file
	}

	mu.Lock()
	current = f
	mu.Unlock()
}

func get() *facade {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

func Debugf(format string, args ...any) {
	f := get()
	f.console.Debugf(format, args...)
	if f.file != nil {
		f.file.Debugf(format, args...)
	}
}

func Infof(format string, args ...any) {
	f := get()
	f.console.Infof(format, args...)
	if f.file != nil {
		f.file.Infof(format, args...)
	}
}

func Warnf(format string, args ...any) {
	f := get()
	f.console.Warnf(format, args...)
	if f.file != nil {
		f.file.Warnf(format, args...)
	}
}

func Errorf(format string, args ...any) {
	f := get()
	f.console.Errorf(format, args...)
	if f.file != nil {
		f.file.Errorf(format, args...)
	}
}

func Fatalf(format string, args ...any) {
	f := get()
	if f.file != nil {
		f.file.Errorf(format, args...)
	}
	f.console.Fatalf(format, args...)
}
