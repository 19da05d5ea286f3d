// Package logger configures the process-wide logrus logger
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the process logger; usable before Init with logrus defaults
var Log = logrus.New()

// Init configures Log from LOG_LEVEL (default info) and LOG_FORMAT
// ("json" selects the JSON formatter), writing to stderr
func Init() {
	Configure(Log, os.Stderr, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
}

// Configure applies output, level and format to l
// An empty or unknown level falls back to info
func Configure(l *logrus.Logger, w io.Writer, level, format string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if strings.ToLower(format) == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			DisableColors: true,
		})
	}
	l.SetOutput(w)
}

// New builds an isolated text logger writing to w, for tests and tools
func New(w io.Writer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})
	return l
}

// ToFile redirects Log to an append-only file, for programs that own the terminal
// The returned closer restores stderr and closes the file
func ToFile(path string) (io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	Log.SetOutput(f)
	return closerFunc(func() error {
		Log.SetOutput(os.Stderr)
		return f.Close()
	}), nil
}

// Discard silences Log; terminal programs use it when no log file is given
func Discard() {
	Log.SetOutput(io.Discard)
}

type closerFunc func() error

func (c closerFunc) Close() error { return c() }
