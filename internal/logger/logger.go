// Package logger provides leveled, printf-style logging for the dashboard
// binaries. It wraps the standard log package with level filtering so debug
// chatter from the estimator pipeline can be silenced in normal runs.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Level is a logging severity threshold.
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// ParseLevel maps a config string to a Level. Unknown strings fall back to
// InfoLevel rather than failing, so a typo in config never kills the service.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return DebugLevel
	case "warn":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Logger filters messages below its level before handing them to log.Logger.
type Logger struct {
	level Level
	out   *log.Logger
}

var std = &Logger{level: InfoLevel, out: log.New(os.Stderr, "", log.LstdFlags)}

// Init configures the package-level logger. format "text" adds source
// locations for local debugging; anything else keeps timestamps only.
func Init(level, format string) {
	flags := log.LstdFlags | log.Lmicroseconds
	if strings.ToLower(format) == "text" {
		flags |= log.Lshortfile
	}
	std = &Logger{level: ParseLevel(level), out: log.New(os.Stderr, "", flags)}
}

// SetOutput redirects log output, primarily for tests.
func SetOutput(w io.Writer) {
	std.out.SetOutput(w)
}

func (l *Logger) logf(lv Level, tag, format string, args ...any) {
	if l == nil || l.level > lv {
		return
	}
	_ = l.out.Output(3, tag+fmt.Sprintf(format, args...))
}

// Debug logs at DebugLevel.
func Debug(format string, args ...any) { std.logf(DebugLevel, "[DEBUG] ", format, args...) }

// Info logs at InfoLevel.
func Info(format string, args ...any) { std.logf(InfoLevel, "[INFO] ", format, args...) }

// Warn logs at WarnLevel.
func Warn(format string, args ...any) { std.logf(WarnLevel, "[WARN] ", format, args...) }

// Error logs at ErrorLevel.
func Error(format string, args ...any) { std.logf(ErrorLevel, "[ERROR] ", format, args...) }

// Fatal logs at ErrorLevel and exits the process.
func Fatal(format string, args ...any) {
	std.logf(ErrorLevel, "[FATAL] ", format, args...)
	os.Exit(1)
}
