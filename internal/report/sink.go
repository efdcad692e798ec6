// Package report provides the sinks that store human-reviewable test artifacts.
package report

import (
	"context"
	"errors"
	"sync"
)

// Content types used by the capture pipeline
const (
	ContentTypeJSON = "application/json"
	ContentTypeText = "text/plain"
)

// ErrSinkClosed is returned when attaching to a sink that has already been finished
var ErrSinkClosed = errors.New("report sink is closed")

// Attachment is a single named artifact attached to a test report.
// Either Body or Path is set; Path points to a file that is copied into the report.
type Attachment struct {
	Name        string
	Body        []byte
	Path        string
	ContentType string
}

// Sink accepts attachments for the currently running test
type Sink interface {
	Attach(ctx context.Context, a Attachment) error
}

// MemorySink keeps attachments in memory, in attach order
type MemorySink struct {
	mu          sync.Mutex
	attachments []Attachment
	// Err, when set, is returned from every Attach call
	Err error
}

// NewMemorySink creates an empty in-memory sink
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Attach records the attachment or returns the configured error
func (m *MemorySink) Attach(ctx context.Context, a Attachment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	body := make([]byte, len(a.Body))
	copy(body, a.Body)
	a.Body = body
	m.attachments = append(m.attachments, a)
	return nil
}

// Attachments returns a copy of everything attached so far
func (m *MemorySink) Attachments() []Attachment {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Attachment, len(m.attachments))
	copy(out, m.attachments)
	return out
}

// Named returns the attachments with the given name
func (m *MemorySink) Named(name string) []Attachment {
	var out []Attachment
	for _, a := range m.Attachments() {
		if a.Name == name {
			out = append(out, a)
		}
	}
	return out
}
