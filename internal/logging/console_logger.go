package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// ConsoleLogger writes prefixed lines to stderr, or to the writer given to
// NewWriterLogger. It counts warnings so commands can summarize them.
// Safe for concurrent use.
type ConsoleLogger struct {
	out      io.Writer
	verbose  bool
	mu       sync.Mutex
	warnings int
}

// NewConsoleLogger logs to stderr. Verbose messages are dropped unless verbose is set.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	return &ConsoleLogger{out: os.Stderr, verbose: verbose}
}

// NewWriterLogger logs to w.
func NewWriterLogger(w io.Writer, verbose bool) *ConsoleLogger {
	return &ConsoleLogger{out: w, verbose: verbose}
}

func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.write("[VERBOSE] ", format, args)
}

func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.write("", format, args)
}

// Warn reports a recoverable problem, such as an unknown element that was skipped.
func (l *ConsoleLogger) Warn(format string, args ...interface{}) {
	l.mu.Lock()
	l.warnings++
	l.mu.Unlock()
	l.write("[WARNING] ", format, args)
}

func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.write("[ERROR] ", format, args)
}

// Warnings returns how many warnings have been logged.
func (l *ConsoleLogger) Warnings() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.warnings
}

func (l *ConsoleLogger) write(prefix, format string, args []interface{}) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprint(l.out, prefix+msg+"\n")
}
