package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// LogFilePath is the path to the viewer log file, relative to the working directory (project root when run via go run ./cmd/depot3d).
const LogFilePath = "logs/depot3d.txt"

// maxLines bounds the in-memory buffer; older lines are dropped first.
const maxLines = 500

// Fields is an alias so callers do not need to import logrus for structured fields.
type Fields = logrus.Fields

// Logger writes structured entries through logrus and keeps a copy of every formatted line
// in memory so overlays and tests can read recent diagnostics back.
type Logger struct {
	mu    sync.Mutex
	lines []string
	log   *logrus.Logger
	name  string
}

// New returns a named Logger writing to stderr and appending to LogFilePath.
// If the log directory cannot be created, only stderr is used.
func New(name string) *Logger {
	var out io.Writer = os.Stderr
	if err := os.MkdirAll(filepath.Dir(LogFilePath), 0755); err == nil {
		if f, err := os.OpenFile(LogFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err == nil {
			out = io.MultiWriter(os.Stderr, f)
		}
	}
	return NewWithWriter(name, out)
}

// NewWithWriter returns a named Logger writing to w. Use io.Discard in tests.
func NewWithWriter(name string, w io.Writer) *Logger {
	l := &Logger{name: name, lines: make([]string, 0)}
	l.log = &logrus.Logger{
		Out: w,
		Formatter: &logrus.TextFormatter{
			DisableColors:   true,
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		},
		Hooks: make(logrus.LevelHooks),
		Level: logrus.DebugLevel,
	}
	l.log.AddHook(&memoryHook{l: l})
	return l
}

// Discard returns a Logger that only keeps lines in memory.
func Discard() *Logger {
	return NewWithWriter("test", io.Discard)
}

// Log writes line at info level.
func (l *Logger) Log(line string) {
	l.entry(nil).Info(line)
}

// Info writes msg with fields at info level.
func (l *Logger) Info(msg string, fields Fields) {
	l.entry(fields).Info(msg)
}

// Warn writes msg with fields at warn level. Recovered data errors are reported here.
func (l *Logger) Warn(msg string, fields Fields) {
	l.entry(fields).Warn(msg)
}

// Error writes msg with fields at error level.
func (l *Logger) Error(msg string, fields Fields) {
	l.entry(fields).Error(msg)
}

// Debug writes msg with fields at debug level.
func (l *Logger) Debug(msg string, fields Fields) {
	l.entry(fields).Debug(msg)
}

func (l *Logger) entry(fields Fields) *logrus.Entry {
	e := logrus.NewEntry(l.log).WithField("logger", l.name)
	if len(fields) > 0 {
		e = e.WithFields(fields)
	}
	return e
}

// Lines returns a copy of all stored lines.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Count returns how many stored lines contain substr.
func (l *Logger) Count(substr string) int {
	n := 0
	for _, line := range l.Lines() {
		if strings.Contains(line, substr) {
			n++
		}
	}
	return n
}

func (l *Logger) append(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, line)
	if len(l.lines) > maxLines {
		l.lines = append(l.lines[:0:0], l.lines[len(l.lines)-maxLines:]...)
	}
}

// memoryHook mirrors every fired entry into the Logger's line buffer as
// "[level] message key=value ..." with keys sorted.
type memoryHook struct {
	l *Logger
}

func (h *memoryHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *memoryHook) Fire(e *logrus.Entry) error {
	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		if k == "logger" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Level.String(), e.Message)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}
	h.l.append(b.String())
	return nil
}
