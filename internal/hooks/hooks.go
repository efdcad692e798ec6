// Package hooks wires API capture, logging and report finalization around a single test.
package hooks

import (
	"context"
	"io"
	"runtime/debug"
	"sync"
	"time"

	"github.com/adactin-qa/hotelsuite/internal/browser"
	"github.com/adactin-qa/hotelsuite/internal/capture"
	"github.com/adactin-qa/hotelsuite/internal/config"
	"github.com/adactin-qa/hotelsuite/internal/finalize"
	"github.com/adactin-qa/hotelsuite/internal/logger"
	"github.com/adactin-qa/hotelsuite/internal/metrics"
	"github.com/adactin-qa/hotelsuite/internal/report"
)

// CleanupTimeout bounds the report work done after a test
const CleanupTimeout = 30 * time.Second

// T is the part of testing.TB the hooks need
type T interface {
	Name() string
	Helper()
	Cleanup(func())
	Failed() bool
	Skipped() bool
	Errorf(format string, args ...any)
	FailNow()
}

// Navigator opens a URL in the page under test
type Navigator interface {
	Goto(url string) error
}

// Finisher is implemented by sinks that write a result index once the test is over
type Finisher interface {
	Finish(status string) error
}

// Options configures Setup
type Options struct {
	BaseURL string
	// Prefix is prepended to the API log attachment name
	Prefix    string
	Sink      report.Sink
	Navigator Navigator
	// Switches pins the capture policy; when nil the loaded config is used
	Switches *config.Switches
	Metrics  *metrics.Collector
	Output   io.Writer
}

// Hooks holds the per-test capture state
type Hooks struct {
	Log      *logger.Logger
	Recorder *capture.Recorder

	t         T
	sink      report.Sink
	finalizer *finalize.Finalizer
	started   time.Time

	mu      sync.Mutex
	failure *finalize.TestError
	result  *finalize.Result
}

// Setup starts API capture for t and navigates to the base URL.
// Finalization is registered with t.Cleanup, so it runs even when the test fails.
func Setup(t T, session browser.Session, opts Options) *Hooks {
	t.Helper()

	log := logger.New(logger.Options{
		Name:       t.Name(),
		Sink:       opts.Sink,
		Output:     opts.Output,
		AttachMode: attachMode(opts.Switches),
	})
	h := &Hooks{
		Log: log,
		Recorder: capture.NewRecorder(session, log, capture.Options{
			BodyReadTimeout: bodyTimeout(opts.Switches),
			Metrics:         opts.Metrics,
		}),
		t:    t,
		sink: opts.Sink,
		finalizer: finalize.New(finalize.Options{
			Sink:     opts.Sink,
			Logger:   log,
			Switches: opts.Switches,
			Metrics:  opts.Metrics,
			Prefix:   opts.Prefix,
		}),
		started: time.Now(),
	}
	t.Cleanup(h.finish)

	log.Info("Base Url:" + opts.BaseURL)
	h.Recorder.Start()
	log.Info("Starting test: " + t.Name())

	nav := opts.Navigator
	if nav == nil {
		if n, ok := session.(Navigator); ok {
			nav = n
		}
	}
	if nav != nil && opts.BaseURL != "" {
		log.Info("Navigating to URL: " + opts.BaseURL)
		h.Check(nav.Goto(opts.BaseURL))
	}
	return h
}

// attachMode is empty when unpinned so the logger follows the loaded config
func attachMode(s *config.Switches) string {
	if s == nil {
		return ""
	}
	return s.NormalizedAttachMode()
}

func bodyTimeout(s *config.Switches) time.Duration {
	if s == nil {
		return 0
	}
	return s.BodyReadTimeout
}

// Fail records err as the test failure and marks the test failed.
// Only the first failure is kept.
func (h *Hooks) Fail(err error) {
	h.t.Helper()
	if err == nil {
		return
	}
	h.mu.Lock()
	if h.failure == nil {
		h.failure = &finalize.TestError{Message: err.Error(), Stack: string(debug.Stack())}
	}
	h.mu.Unlock()
	h.Log.Error(err.Error())
	h.t.Errorf("%v", err)
}

// Check fails the test and stops it when err is not nil
func (h *Hooks) Check(err error) {
	h.t.Helper()
	if err == nil {
		return
	}
	h.Fail(err)
	h.t.FailNow()
}

// Outcome describes the test as it stands
func (h *Hooks) Outcome() finalize.Outcome {
	h.mu.Lock()
	failure := h.failure
	h.mu.Unlock()

	status := finalize.StatusPassed
	switch {
	case h.t.Failed():
		status = finalize.StatusFailed
	case h.t.Skipped():
		status = "skipped"
	}
	return finalize.Outcome{
		Title:    h.t.Name(),
		Status:   status,
		Err:      failure,
		Duration: time.Since(h.started),
	}
}

// Result returns what finalization did, nil before the test has finished
func (h *Hooks) Result() *finalize.Result {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.result
}

func (h *Hooks) finish() {
	ctx, cancel := context.WithTimeout(context.Background(), CleanupTimeout)
	defer cancel()

	h.Log.Info("Finished test: " + h.t.Name())
	outcome := h.Outcome()

	result, err := h.finalizer.Finalize(ctx, outcome, h.Recorder)
	if err != nil {
		h.t.Errorf("failed to finalize API capture: %v", err)
	}

	if result == nil || !result.LogsFlushed {
		if err := h.Log.AttachLogs(ctx, logger.DefaultLogsName); err != nil {
			h.t.Errorf("failed to attach logs: %v", err)
		}
	}
	h.Log.Wait()

	if f, ok := h.sink.(Finisher); ok {
		if err := f.Finish(outcome.Status); err != nil {
			h.t.Errorf("failed to finish report: %v", err)
		}
	}

	h.mu.Lock()
	h.result = result
	h.mu.Unlock()
}
