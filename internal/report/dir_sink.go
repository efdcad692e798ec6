package report

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// AttachmentRef points from a result file to a stored attachment
type AttachmentRef struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	Type   string `json:"type"`
}

// Result is the per-test index written next to the attachments
type Result struct {
	UUID        string          `json:"uuid"`
	Name        string          `json:"name"`
	FullName    string          `json:"fullName"`
	Status      string          `json:"status"`
	Start       int64           `json:"start"`
	Stop        int64           `json:"stop"`
	Attachments []AttachmentRef `json:"attachments"`
}

// DirSink stores attachments as files in an allure-results style directory.
// Each attachment becomes <uuid>-attachment.<ext>; Finish writes <uuid>-result.json.
type DirSink struct {
	dir      string
	testName string
	id       string
	start    time.Time

	mu     sync.Mutex
	refs   []AttachmentRef
	closed bool
}

// NewDirSink creates the results directory and a sink for one test
func NewDirSink(dir, testName string) (*DirSink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create results directory: %w", err)
	}
	return &DirSink{
		dir:      dir,
		testName: testName,
		id:       uuid.NewString(),
		start:    time.Now(),
	}, nil
}

// ID returns the result uuid of this sink
func (d *DirSink) ID() string {
	return d.id
}

// Attach writes the attachment body (or copies Path) into the results directory
func (d *DirSink) Attach(ctx context.Context, a Attachment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body := a.Body
	if a.Path != "" {
		data, err := os.ReadFile(a.Path)
		if err != nil {
			return fmt.Errorf("failed to read attachment %q: %w", a.Path, err)
		}
		body = data
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrSinkClosed
	}

	source := uuid.NewString() + "-attachment" + extensionFor(a.ContentType)
	if err := os.WriteFile(filepath.Join(d.dir, source), body, 0644); err != nil {
		return fmt.Errorf("failed to write attachment %q: %w", a.Name, err)
	}
	d.refs = append(d.refs, AttachmentRef{Name: a.Name, Source: source, Type: a.ContentType})
	return nil
}

// Attachments returns the references written so far
func (d *DirSink) Attachments() []AttachmentRef {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]AttachmentRef, len(d.refs))
	copy(out, d.refs)
	return out
}

// Finish writes the result index and closes the sink
func (d *DirSink) Finish(status string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrSinkClosed
	}
	d.closed = true

	result := Result{
		UUID:        d.id,
		Name:        d.testName,
		FullName:    d.testName,
		Status:      status,
		Start:       d.start.UnixMilli(),
		Stop:        time.Now().UnixMilli(),
		Attachments: d.refs,
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if err := os.WriteFile(filepath.Join(d.dir, d.id+"-result.json"), data, 0644); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}

func extensionFor(contentType string) string {
	switch {
	case strings.Contains(contentType, "json"):
		return ".json"
	case strings.HasPrefix(contentType, "text/plain"):
		return ".txt"
	case strings.Contains(contentType, "html"):
		return ".html"
	case strings.HasPrefix(contentType, "image/png"):
		return ".png"
	default:
		return ".bin"
	}
}
