// Package cliutil carries the CLI's structured logging helpers.
package cliutil

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"
)

// LogRecord represents a structured supervisor event ready for JSON encoding.
type LogRecord struct {
	Timestamp time.Time `json:"ts"`
	Level     string    `json:"level"`
	Bot       string    `json:"bot,omitempty"`
	Message   string    `json:"msg"`
}

// Logger writes supervisor lifecycle events. When the destination is a
// terminal it prints plain human-readable lines; otherwise it emits one JSON
// record per line, suitable for log collectors.
type Logger struct {
	w     io.Writer
	enc   *json.Encoder
	plain bool
	now   func() time.Time
}

// NewLogger builds a logger for w, choosing plain output when w is a
// terminal.
func NewLogger(w io.Writer) *Logger {
	plain := false
	if f, ok := w.(*os.File); ok {
		plain = term.IsTerminal(int(f.Fd()))
	}
	return newLogger(w, plain)
}

func newLogger(w io.Writer, plain bool) *Logger {
	return &Logger{w: w, enc: json.NewEncoder(w), plain: plain, now: time.Now}
}

// Infof logs an informational event for the named bot; bot may be empty for
// supervisor-level events.
func (l *Logger) Infof(bot, format string, args ...any) {
	l.log("info", bot, fmt.Sprintf(format, args...))
}

// Warnf logs a warning event.
func (l *Logger) Warnf(bot, format string, args ...any) {
	l.log("warn", bot, fmt.Sprintf(format, args...))
}

func (l *Logger) log(level, bot, msg string) {
	if l == nil {
		return
	}
	record := LogRecord{Timestamp: l.now(), Level: level, Bot: bot, Message: msg}
	if l.plain {
		if bot != "" {
			fmt.Fprintf(l.w, "%s [%s] %s\n", level, bot, msg)
		} else {
			fmt.Fprintf(l.w, "%s %s\n", level, msg)
		}
		return
	}
	if err := l.enc.Encode(&record); err != nil {
		fmt.Fprintf(os.Stderr, "error: encode log: %v\n", err)
	}
}
