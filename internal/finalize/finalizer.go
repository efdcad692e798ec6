// Package finalize turns the captured traffic of a finished test into report artifacts.
package finalize

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/adactin-qa/hotelsuite/internal/capture"
	"github.com/adactin-qa/hotelsuite/internal/config"
	"github.com/adactin-qa/hotelsuite/internal/logger"
	"github.com/adactin-qa/hotelsuite/internal/metrics"
	"github.com/adactin-qa/hotelsuite/internal/report"
)

// Test statuses
const (
	StatusPassed = "passed"
	StatusFailed = "failed"
)

// Attachment names
const (
	FailureDetailsName = "Test Failure Details"
	FailedCallsName    = "Failed API Calls Details"
)

// TestError is the failure of a test
type TestError struct {
	Message string
	Stack   string
}

// Outcome describes a finished test
type Outcome struct {
	Title    string
	Status   string
	Err      *TestError
	Duration time.Duration
}

// Passed reports whether the status is exactly "passed"
func (o Outcome) Passed() bool {
	return o.Status == StatusPassed
}

// Label returns PASSED or FAILED
func (o Outcome) Label() string {
	if o.Passed() {
		return "PASSED"
	}
	return "FAILED"
}

// Result tells the caller what a finalization did
type Result struct {
	Status string
	// ArtifactPath is empty when no file was written
	ArtifactPath string
	// Skipped is set when a passed test short-circuited
	Skipped bool
	// Disabled is set when report generation is switched off
	Disabled bool
	// LogsFlushed is set when the logger buffer was attached
	LogsFlushed bool
	Summary     capture.Summary
	FailedCalls int
}

type failureDetails struct {
	TestName     string `json:"testName"`
	ErrorMessage string `json:"errorMessage"`
	Stack        string `json:"stack"`
	Status       string `json:"status"`
	Duration     int64  `json:"duration"`
}

// Options configures a Finalizer
type Options struct {
	Sink   report.Sink
	Logger *logger.Logger
	// Switches pins the policy; when nil the current config is read on each Finalize
	Switches *config.Switches
	Metrics  *metrics.Collector
	// Prefix is prepended to the API log attachment name, usually the suite name
	Prefix string
	Now    func() time.Time
}

// Finalizer produces the end-of-test artifacts for one test
type Finalizer struct {
	sink     report.Sink
	log      *logger.Logger
	switches *config.Switches
	metrics  *metrics.Collector
	prefix   string
	now      func() time.Time

	// afterWrite runs between persisting and re-reading the artifact
	afterWrite func(path string)
}

// New creates a Finalizer
func New(opts Options) *Finalizer {
	log := opts.Logger
	if log == nil {
		log = logger.New(logger.Options{Name: "api-handler", Sink: opts.Sink})
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Finalizer{
		sink:     opts.Sink,
		log:      log,
		switches: opts.Switches,
		metrics:  opts.Metrics,
		prefix:   opts.Prefix,
		now:      now,
	}
}

func (f *Finalizer) policy() config.Switches {
	if f.switches != nil {
		return *f.switches
	}
	return config.Get()
}

func (f *Finalizer) attachJSON(ctx context.Context, name string, body []byte) error {
	if f.sink == nil {
		return nil
	}
	return f.sink.Attach(ctx, report.Attachment{Name: name, Body: body, ContentType: report.ContentTypeJSON})
}

// Finalize stops rec and produces the artifacts for outcome.
// The failure details of a failed test are attached whatever the switches say;
// everything after that is skipped when report generation is off.
// File system errors, corrupt artifacts and report attachment errors are returned.
func (f *Finalizer) Finalize(ctx context.Context, outcome Outcome, rec *capture.Recorder) (*Result, error) {
	if rec == nil {
		return &Result{}, nil
	}

	// Stop before reading so no late event lands after the final read
	rec.Stop()

	policy := f.policy()
	status := outcome.Label()
	result := &Result{Status: status}
	logName := f.prefix + "API_Capture_Logs_" + status

	if !outcome.Passed() && outcome.Err != nil {
		if err := f.attachFailureDetails(ctx, outcome); err != nil {
			f.log.Warn(fmt.Sprintf("Failed to attach test failure details: %v", err))
			f.metrics.ObserveFinalization(status, "error")
			return result, err
		}
	}

	if !policy.GenerateReport {
		f.log.Info("Report generation is disabled; skipping API log reporting...")
		rec.Clear()
		result.Disabled = true
		f.metrics.ObserveFinalization(status, "disabled")
		return result, nil
	}

	if outcome.Passed() && !policy.IncludePassLogs {
		f.log.Info("Test passed and includePassLogs is false; skipping complete API log attachment...")
		rec.Clear()
		result.Skipped = true
		f.metrics.ObserveFinalization(status, "skipped")
		return result, nil
	}
	defer rec.Clear()

	if err := f.persistAndAttach(ctx, outcome, rec, policy, logName, result); err != nil {
		f.metrics.ObserveFinalization(status, "error")
		return result, err
	}

	result.Summary = rec.Summary()
	f.log.PrintSummary(status, result.Summary)

	if err := f.reportFailedCalls(ctx, rec, result); err != nil {
		f.metrics.ObserveFinalization(status, "error")
		return result, err
	}

	if err := f.log.AttachLogs(ctx, logger.DefaultLogsName); err != nil {
		f.log.Warn(fmt.Sprintf("Failed to attach logs: %v", err))
		f.metrics.ObserveFinalization(status, "error")
		return result, err
	}
	result.LogsFlushed = true

	f.metrics.ObserveFinalization(status, "reported")
	return result, nil
}

func (f *Finalizer) attachFailureDetails(ctx context.Context, outcome Outcome) error {
	details := failureDetails{
		TestName:     outcome.Title,
		ErrorMessage: outcome.Err.Message,
		Stack:        outcome.Err.Stack,
		Status:       outcome.Status,
		Duration:     outcome.Duration.Milliseconds(),
	}
	if details.ErrorMessage == "" {
		details.ErrorMessage = "No error message"
	}
	if details.Stack == "" {
		details.Stack = "No stack trace"
	}
	body, err := json.MarshalIndent(details, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal failure details: %w", err)
	}
	return f.attachJSON(ctx, FailureDetailsName, body)
}

func (f *Finalizer) persistAndAttach(ctx context.Context, outcome Outcome, rec *capture.Recorder, policy config.Switches, logName string, result *Result) error {
	records := rec.All()
	if len(records) == 0 {
		f.log.Info("No API logs to save.")
		return nil
	}

	artifact := &Artifact{
		TestInfo:  logName,
		Timestamp: FileTimestamp(f.now()),
		Error:     artifactError(outcome),
		Summary:   capture.Summarize(records),
		Logs:      records,
	}

	dir := filepath.Join(policy.ResultsDir, LogsDirName)
	path, size, err := writeArtifact(dir, artifact)
	if err != nil {
		return err
	}
	result.ArtifactPath = path
	f.metrics.ObserveArtifact(size)
	f.log.Info(fmt.Sprintf("API logs saved to %s", path))

	if f.afterWrite != nil {
		f.afterWrite(path)
	}

	f.log.Info("Reading API logs from file for attachment...")
	pretty, err := readArtifact(path)
	if err != nil {
		if pretty != "" {
			f.log.Debug(pretty)
		}
		f.log.Warn(fmt.Sprintf("Failed to read or attach API logs: %v", err))
		return err
	}

	if !policy.AllureReportGenerate {
		return nil
	}
	if err := f.attachJSON(ctx, logName, []byte(pretty)); err != nil {
		f.log.Warn(fmt.Sprintf("Failed to read or attach API logs: %v", err))
		return err
	}
	return nil
}

func artifactError(outcome Outcome) ArtifactError {
	e := ArtifactError{Stack: "No stack trace"}
	switch {
	case outcome.Passed():
		e.Message = "Test passed successfully."
	case outcome.Err != nil:
		e.Message = outcome.Err.Message
	default:
		e.Message = "Test failed without error message."
	}
	if outcome.Err != nil && outcome.Err.Stack != "" {
		e.Stack = outcome.Err.Stack
	}
	if e.Message == "" {
		e.Message = "N/A"
	}
	return e
}

func (f *Finalizer) reportFailedCalls(ctx context.Context, rec *capture.Recorder, result *Result) error {
	failed := rec.FailedResponses()
	result.FailedCalls = len(failed)
	if len(failed) == 0 {
		f.log.PrintSuccessMessage("All API requests were successful!")
		return nil
	}

	body, err := json.MarshalIndent(failed, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal failed API calls: %w", err)
	}
	if err := f.attachJSON(ctx, FailedCallsName, body); err != nil {
		f.log.Warn(fmt.Sprintf("Failed to attach failed API calls: %v", err))
		return err
	}

	views := make([]logger.FailedRequest, len(failed))
	for i, r := range failed {
		views[i] = failedView(r)
	}
	f.log.PrintAPIFailureSummary(views)
	f.log.PrintFailedRequestHeader(len(views))
	for i, v := range views {
		f.log.PrintFailedRequestDetail(i+1, v)
	}
	return nil
}

func failedView(r capture.Record) logger.FailedRequest {
	v := logger.FailedRequest{
		Method:    r.Method,
		URL:       r.URL,
		Status:    r.StatusCode(),
		Timestamp: r.Timestamp,
		Body:      r.Body(),
	}
	if r.StatusText != nil {
		v.StatusText = *r.StatusText
	}
	return v
}
