package capture

import (
	"strings"
	"time"

	"github.com/adactin-qa/hotelsuite/internal/browser"
)

// Kind tags a record as request or response
type Kind string

const (
	KindRequest  Kind = "request"
	KindResponse Kind = "response"
)

// TimestampLayout is the ISO-8601 layout used for record timestamps
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// UnreadableBody replaces a response body that could not be read in time
const UnreadableBody = "<unable to capture response body>"

// Record is one observed network event. Response-only fields are nil on requests.
type Record struct {
	Type            Kind              `json:"type"`
	Timestamp       string            `json:"timestamp"`
	URL             string            `json:"url"`
	Method          string            `json:"method"`
	RequestHeaders  map[string]string `json:"requestHeaders"`
	RequestBody     *string           `json:"requestBody"`
	ResponseHeaders map[string]string `json:"responseHeaders"`
	ResponseBody    *string           `json:"responseBody"`
	Status          *int              `json:"status"`
	StatusText      *string           `json:"statusText,omitempty"`
	ResourceType    string            `json:"resourceType"`
}

// StatusCode returns the response status, 0 for requests
func (r Record) StatusCode() int {
	if r.Status == nil {
		return 0
	}
	return *r.Status
}

// IsFailed reports whether the record is a response with status >= 400
func (r Record) IsFailed() bool {
	return r.Type == KindResponse && r.StatusCode() >= 400
}

// Body returns the response body or an empty string
func (r Record) Body() string {
	if r.ResponseBody == nil {
		return ""
	}
	return *r.ResponseBody
}

// Summary is derived from the buffer on demand
type Summary struct {
	TotalRequests   int `json:"totalRequests"`
	TotalResponses  int `json:"totalResponses"`
	FailedResponses int `json:"failedResponses"`
}

// Summarize counts requests, responses and failed responses
func Summarize(records []Record) Summary {
	var s Summary
	for _, r := range records {
		switch r.Type {
		case KindRequest:
			s.TotalRequests++
		case KindResponse:
			s.TotalResponses++
			if r.IsFailed() {
				s.FailedResponses++
			}
		}
	}
	return s
}

// ShouldCapture reports whether a request is API traffic.
// Responses are classified by applying it to their originating request.
func ShouldCapture(req browser.Request) bool {
	switch req.ResourceType() {
	case "xhr", "fetch":
		return true
	}
	url := req.URL()
	return strings.Contains(url, "/api/") ||
		strings.Contains(url, "/graphql/") ||
		strings.Contains(url, "/rest/")
}

// capturableContentType reports whether a body of this content type is read as text
func capturableContentType(contentType string) bool {
	return strings.Contains(contentType, "json") ||
		strings.Contains(contentType, "text/") ||
		strings.Contains(contentType, "xml")
}

func notCapturedBody(contentType string) string {
	return "<" + contentType + " content not captured>"
}

func headerValue(headers map[string]string, name string) string {
	if v, ok := headers[name]; ok {
		return v
	}
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

func copyHeaders(h map[string]string) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}

func postData(req browser.Request) *string {
	body, err := req.PostData()
	if err != nil || body == "" {
		return nil
	}
	return &body
}

func timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
