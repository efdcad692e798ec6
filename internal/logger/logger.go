// Package logger provides the per-test logger used by the capture pipeline.
//
// Every message goes to a structured console sink immediately and is also kept,
// colour-stripped, in an in-memory buffer that is attached to the test report
// once at the end of the test. Depending on the attach mode single messages are
// attached to the report as they are logged as well.
package logger

import (
	"context"
	"io"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/adactin-qa/hotelsuite/internal/config"
	"github.com/adactin-qa/hotelsuite/internal/report"
)

// DefaultLogsName is the attachment name used by AttachLogs when none is given
const DefaultLogsName = "Pino Logs"

const attachTimeout = 10 * time.Second

// Level is a log level as it appears in the buffer
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
	LevelDebug Level = "DEBUG"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripColours removes ANSI colour escape sequences
func StripColours(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// Options configures a Logger
type Options struct {
	// Name is shown on every console line, usually the test name
	Name string
	// Sink receives attachments; nil disables all report attachments
	Sink report.Sink
	// Output is the console destination, stderr when nil
	Output io.Writer
	// ConsoleLevel filters console output only; defaults to debug
	ConsoleLevel string
	// AttachMode pins the attach mode; when empty it is read from config on every call
	AttachMode string
	// RunID correlates console lines of one test; a uuid is generated when empty
	RunID string
}

// Logger writes to the console and buffers entries for the report.
// One Logger belongs to one test; it is safe for concurrent use.
type Logger struct {
	console    hclog.Logger
	sink       report.Sink
	attachMode string
	runID      string

	mu      sync.Mutex
	entries []string

	pending sync.WaitGroup
}

// New creates a logger for a single test
func New(opts Options) *Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	level := hclog.Debug
	if opts.ConsoleLevel != "" {
		if l := hclog.LevelFromString(opts.ConsoleLevel); l != hclog.NoLevel {
			level = l
		}
	}
	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	console := hclog.New(&hclog.LoggerOptions{
		Name:        opts.Name,
		Level:       level,
		Output:      out,
		Color:       hclog.AutoColor,
		DisableTime: true,
	}).With("run", runID)

	return &Logger{
		console:    console,
		sink:       opts.Sink,
		attachMode: opts.AttachMode,
		runID:      runID,
	}
}

// RunID returns the correlation id printed with every console line
func (l *Logger) RunID() string {
	return l.runID
}

// Info logs at info level
func (l *Logger) Info(msg string) {
	l.console.Info(msg)
	l.record(LevelInfo, msg)
}

// Warn logs at warn level
func (l *Logger) Warn(msg string) {
	l.console.Warn(msg)
	l.record(LevelWarn, msg)
}

// Error logs at error level
func (l *Logger) Error(msg string) {
	l.console.Error(msg)
	l.record(LevelError, msg)
}

// Debug logs at debug level
func (l *Logger) Debug(msg string) {
	l.console.Debug(msg)
	l.record(LevelDebug, msg)
}

func (l *Logger) record(level Level, msg string) {
	clean := StripColours(msg)

	l.mu.Lock()
	l.entries = append(l.entries, string(level)+": "+clean)
	l.mu.Unlock()

	if l.sink == nil || !l.shouldAttach(level) {
		return
	}

	// Fire and forget: a failed single-message attachment never reaches the caller
	l.pending.Add(1)
	go func() {
		defer l.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), attachTimeout)
		defer cancel()
		err := l.sink.Attach(ctx, report.Attachment{
			Name:        "Log",
			Body:        []byte(clean),
			ContentType: report.ContentTypeText,
		})
		if err != nil {
			l.console.Error("failed to attach log to report", "error", err)
		}
	}()
}

func (l *Logger) mode() string {
	if l.attachMode != "" {
		return strings.ToLower(l.attachMode)
	}
	return config.Get().NormalizedAttachMode()
}

func (l *Logger) shouldAttach(level Level) bool {
	switch l.mode() {
	case config.AttachImmediate, config.AttachBuffer:
		return true
	case config.AttachErrorOnly:
		return level == LevelError || level == LevelWarn
	default:
		return true
	}
}

// Entries returns a copy of the buffered, colour-stripped log lines
func (l *Logger) Entries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

// Wait blocks until every in-flight single-message attachment has finished
func (l *Logger) Wait() {
	l.pending.Wait()
}

// AttachLogs attaches the whole buffer as one text artifact.
// It does nothing without a sink or with an empty buffer; sink errors are returned.
func (l *Logger) AttachLogs(ctx context.Context, name string) error {
	if name == "" {
		name = DefaultLogsName
	}
	entries := l.Entries()
	if l.sink == nil || len(entries) == 0 {
		return nil
	}
	return l.sink.Attach(ctx, report.Attachment{
		Name:        name,
		Body:        []byte(strings.Join(entries, "\n")),
		ContentType: report.ContentTypeText,
	})
}

// Attach attaches arbitrary content; failures are only logged to the console
func (l *Logger) Attach(ctx context.Context, name, content, contentType string) {
	if l.sink == nil {
		return
	}
	if contentType == "" {
		contentType = report.ContentTypeText
	}
	err := l.sink.Attach(ctx, report.Attachment{Name: name, Body: []byte(content), ContentType: contentType})
	if err != nil {
		l.console.Warn("failed to attach to report", "name", name, "error", err)
	}
}
