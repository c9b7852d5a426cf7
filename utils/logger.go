package utils

import (
	"fmt"
	"log"
	"os"
	"time"
)

// Logger provides structured, leveled logging throughout the application.
// A component tag, when set, is printed after the level so interleaved
// output from different subsystems stays readable.
type Logger struct {
	out *log.Logger
	err *log.Logger
	tag string
}

// NewLogger creates a new Logger writing to stdout/stderr.
func NewLogger() *Logger {
	return &Logger{
		out: log.New(os.Stdout, "", 0),
		err: log.New(os.Stderr, "", 0),
	}
}

// Component returns a child logger whose lines carry the given tag.
func (l *Logger) Component(tag string) *Logger {
	return &Logger{out: l.out, err: l.err, tag: tag}
}

func (l *Logger) prefix(level, color string) string {
	ts := time.Now().Format("2006-01-02 15:04:05")
	if l.tag != "" {
		return fmt.Sprintf("[%s] \033[%sm%-5s\033[0m [%s] ", ts, color, level, l.tag)
	}
	return fmt.Sprintf("[%s] \033[%sm%-5s\033[0m ", ts, color, level)
}

func (l *Logger) Info(format string, args ...any) {
	l.out.Printf(l.prefix("INFO", "32")+format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.out.Printf(l.prefix("WARN", "33")+format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.err.Printf(l.prefix("ERROR", "31")+format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	l.out.Printf(l.prefix("DEBUG", "36")+format, args...)
}
