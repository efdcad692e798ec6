// Package capture records API traffic of a browser session for one test.
package capture

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/adactin-qa/hotelsuite/internal/browser"
	"github.com/adactin-qa/hotelsuite/internal/config"
	"github.com/adactin-qa/hotelsuite/internal/logger"
	"github.com/adactin-qa/hotelsuite/internal/metrics"
)

// Options configures a Recorder
type Options struct {
	// BodyReadTimeout bounds a response body read; zero uses the configured switch
	BodyReadTimeout time.Duration
	Metrics         *metrics.Collector
	// Now overrides the clock used for record timestamps
	Now func() time.Time
}

// Recorder buffers the API requests and responses of one browser session.
// A Recorder belongs to a single test and must not be shared between tests.
type Recorder struct {
	session     browser.Session
	log         *logger.Logger
	metrics     *metrics.Collector
	bodyTimeout time.Duration
	now         func() time.Time

	stateMu   sync.Mutex
	capturing bool
	sub       browser.Subscription

	mu      sync.RWMutex
	records []Record
}

// NewRecorder creates an idle recorder for session
func NewRecorder(session browser.Session, log *logger.Logger, opts Options) *Recorder {
	if log == nil {
		log = logger.New(logger.Options{Name: "api-capture"})
	}
	timeout := opts.BodyReadTimeout
	if timeout <= 0 {
		timeout = config.Get().BodyReadTimeout
	}
	if timeout <= 0 {
		timeout = config.Default().BodyReadTimeout
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Recorder{
		session:     session,
		log:         log,
		metrics:     opts.Metrics,
		bodyTimeout: timeout,
		now:         now,
	}
}

// Start resets the buffer and subscribes to the session. It is a no-op while capturing.
func (r *Recorder) Start() {
	r.stateMu.Lock()
	defer r.stateMu.Unlock()
	if r.capturing {
		return
	}

	r.mu.Lock()
	r.records = nil
	r.mu.Unlock()

	r.sub = r.session.Subscribe(browser.Handlers{
		OnRequest:  r.onRequest,
		OnResponse: r.onResponse,
	})
	r.capturing = true
	r.log.Info("API capture started.")
}

// Stop unsubscribes from the session; the buffer is kept. It is a no-op when idle.
// Once Stop returns no further record is appended.
func (r *Recorder) Stop() {
	r.stateMu.Lock()
	defer r.stateMu.Unlock()
	if !r.capturing {
		return
	}

	r.session.Unsubscribe(r.sub)
	r.capturing = false
	r.log.Info("API capture stopped.")
}

// Capturing reports whether the recorder is subscribed
func (r *Recorder) Capturing() bool {
	r.stateMu.Lock()
	defer r.stateMu.Unlock()
	return r.capturing
}

func (r *Recorder) onRequest(req browser.Request) {
	if !ShouldCapture(req) {
		return
	}
	r.append(Record{
		Type:           KindRequest,
		Timestamp:      timestamp(r.now()),
		URL:            req.URL(),
		Method:         req.Method(),
		RequestHeaders: copyHeaders(req.Headers()),
		RequestBody:    postData(req),
		ResourceType:   req.ResourceType(),
	})
}

func (r *Recorder) onResponse(resp browser.Response) {
	req := resp.Request()
	if req == nil || !ShouldCapture(req) {
		return
	}
	observed := r.now()

	// Copy the originating request now; it may not be valid later
	method := req.Method()
	requestHeaders := copyHeaders(req.Headers())
	requestBody := postData(req)
	resourceType := req.ResourceType()

	responseHeaders := copyHeaders(resp.Headers())
	body := r.readBody(resp, headerValue(responseHeaders, "content-type"))
	status := resp.Status()
	statusText := resp.StatusText()

	r.append(Record{
		Type:            KindResponse,
		Timestamp:       timestamp(observed),
		URL:             resp.URL(),
		Method:          method,
		RequestHeaders:  requestHeaders,
		RequestBody:     requestBody,
		ResponseHeaders: responseHeaders,
		ResponseBody:    &body,
		Status:          &status,
		StatusText:      &statusText,
		ResourceType:    resourceType,
	})
}

type bodyResult struct {
	text string
	err  error
}

// readBody never fails: errors and timeouts degrade to a placeholder
func (r *Recorder) readBody(resp browser.Response, contentType string) string {
	if !capturableContentType(contentType) {
		return notCapturedBody(contentType)
	}

	done := make(chan bodyResult, 1)
	go func() {
		text, err := resp.Text()
		done <- bodyResult{text: text, err: err}
	}()

	timer := time.NewTimer(r.bodyTimeout)
	defer timer.Stop()

	select {
	case res := <-done:
		if res.err != nil {
			r.metrics.ObserveBodyReadFailure()
			r.log.Error(fmt.Sprintf("Failed to capture response body for %s: %v", resp.URL(), res.err))
			return UnreadableBody
		}
		return res.text
	case <-timer.C:
		r.metrics.ObserveBodyReadFailure()
		r.log.Warn(fmt.Sprintf("Timed out after %s reading response body for %s", r.bodyTimeout, resp.URL()))
		return UnreadableBody
	}
}

func (r *Recorder) append(rec Record) {
	r.mu.Lock()
	r.records = append(r.records, rec)
	r.mu.Unlock()
	r.metrics.ObserveRecord(string(rec.Type), rec.StatusCode())
}

func (r *Recorder) filter(keep func(Record) bool) []Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Record, 0, len(r.records))
	for _, rec := range r.records {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// All returns every record in arrival order
func (r *Recorder) All() []Record {
	return r.filter(func(Record) bool { return true })
}

// Requests returns the request records
func (r *Recorder) Requests() []Record {
	return r.filter(func(rec Record) bool { return rec.Type == KindRequest })
}

// Responses returns the response records
func (r *Recorder) Responses() []Record {
	return r.filter(func(rec Record) bool { return rec.Type == KindResponse })
}

// ByURL returns the records whose URL contains substr
func (r *Recorder) ByURL(substr string) []Record {
	return r.filter(func(rec Record) bool { return strings.Contains(rec.URL, substr) })
}

// FailedResponses returns the responses with status >= 400
func (r *Recorder) FailedResponses() []Record {
	return r.filter(Record.IsFailed)
}

// Size returns the number of buffered records
func (r *Recorder) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// Summary counts the buffered records
func (r *Recorder) Summary() Summary {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Summarize(r.records)
}

// Clear empties the buffer
func (r *Recorder) Clear() {
	r.mu.Lock()
	r.records = nil
	r.mu.Unlock()
	r.log.Info("API cache cleared.")
}

// SaveToFile writes the raw buffer as indented JSON. It writes nothing when the buffer is empty.
func (r *Recorder) SaveToFile(path string) (bool, error) {
	records := r.All()
	if len(records) == 0 {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("failed to create capture directory: %w", err)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return false, fmt.Errorf("failed to marshal capture: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return false, fmt.Errorf("failed to write capture: %w", err)
	}
	return true, nil
}
