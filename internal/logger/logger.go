// Package logger provides the leveled logging used across the briefing
// service. Output goes to stderr as either timestamped text or single-line
// JSON, selected from configuration at startup. An uninitialized logger
// drops everything, so library code can log unconditionally.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level orders log severities.
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	case WarnLevel:
		return "warn"
	default:
		return "error"
	}
}

// ParseLevel maps a config string to a level. Unknown strings get info.
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

// Logger filters by level and writes one line per entry.
type Logger struct {
	mu       sync.Mutex
	level    Level
	jsonMode bool
	out      io.Writer
}

var defaultLogger *Logger

// Init configures the package-level logger from the logging config section.
// Format is "json" or "text".
func Init(level, format string) {
	defaultLogger = newLogger(ParseLevel(level), strings.ToLower(format) == "json", os.Stderr)
}

func newLogger(level Level, jsonMode bool, out io.Writer) *Logger {
	return &Logger{level: level, jsonMode: jsonMode, out: out}
}

func (l *Logger) log(lv Level, format string, args ...interface{}) {
	if l == nil || lv < l.level {
		return
	}
	msg := fmt.Sprintf(format, args...)
	ts := time.Now().UTC().Format(time.RFC3339)

	var line string
	if l.jsonMode {
		encoded, err := json.Marshal(map[string]string{
			"ts":    ts,
			"level": lv.String(),
			"msg":   msg,
		})
		if err != nil {
			return
		}
		line = string(encoded)
	} else {
		line = fmt.Sprintf("%s %-5s %s", ts, strings.ToUpper(lv.String()), msg)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.out, line)
}

func Debug(format string, args ...interface{}) {
	defaultLogger.log(DebugLevel, format, args...)
}

func Info(format string, args ...interface{}) {
	defaultLogger.log(InfoLevel, format, args...)
}

func Warn(format string, args ...interface{}) {
	defaultLogger.log(WarnLevel, format, args...)
}

func Error(format string, args ...interface{}) {
	defaultLogger.log(ErrorLevel, format, args...)
}

// Fatal logs at error level and exits. It works before Init so startup
// failures are never silent.
func Fatal(format string, args ...interface{}) {
	if defaultLogger != nil {
		defaultLogger.log(ErrorLevel, format, args...)
	} else {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
	os.Exit(1)
}
