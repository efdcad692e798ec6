package logger

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// BodyPreviewLimit is the number of characters of a response body shown per failed request
const BodyPreviewLimit = 200

// Print helpers always emit colour, terminal or not; buffered entries are stripped
var (
	bright = forceColour(color.New(color.Bold))
	green  = forceColour(color.New(color.FgGreen))
	red    = forceColour(color.New(color.FgRed))
	yellow = forceColour(color.New(color.FgYellow))
	grey   = forceColour(color.New(color.FgHiBlack))
)

func forceColour(c *color.Color) *color.Color {
	c.EnableColor()
	return c
}

// FailedRequest is the view of a failed API call used by the print helpers
type FailedRequest struct {
	Method     string
	URL        string
	Status     int
	StatusText string
	Timestamp  string
	Body       string
}

// TruncateBody shortens body to limit characters and appends "..." when cut
func TruncateBody(body string, limit int) string {
	runes := []rune(body)
	if len(runes) <= limit {
		return body
	}
	return string(runes[:limit]) + "..."
}

// PrintSummary logs the capture summary, coloured by test status
func (l *Logger) PrintSummary(status string, summary any) {
	c := red
	if status == "PASSED" {
		c = green
	}
	data, err := json.Marshal(summary)
	if err != nil {
		data = []byte(fmt.Sprintf("%+v", summary))
	}
	l.Info(fmt.Sprintf("API CAPTURE SUMMARY (%s): %s", bright.Sprint(c.Sprint(status)), data))
}

// PrintFailedRequestHeader logs the number of failed API requests
func (l *Logger) PrintFailedRequestHeader(count int) {
	l.Info("\n" + red.Sprintf("Found %d failed API requests:", count) + "\n")
}

// PrintFailedRequestDetail logs one failed request with a truncated body preview
func (l *Logger) PrintFailedRequestDetail(index int, req FailedRequest) {
	preview := "N/A"
	if req.Body != "" {
		preview = TruncateBody(req.Body, BodyPreviewLimit)
	}

	var b strings.Builder
	b.WriteString(yellow.Sprintf("%d. %s %s", index, req.Method, req.URL) + "\n")
	b.WriteString(grey.Sprint("Status:") + fmt.Sprintf(" %d %s\n", req.Status, req.StatusText))
	b.WriteString(grey.Sprint("Timestamp:") + " " + req.Timestamp + "\n")
	b.WriteString(grey.Sprint("Response:") + " " + preview + "\n")
	l.Info(b.String())
}

// PrintSuccessMessage logs msg in green
func (l *Logger) PrintSuccessMessage(msg string) {
	l.Info("\n" + green.Sprint(msg))
}

// PrintAPIFailureSummary logs one line per failed request between two banners
func (l *Logger) PrintAPIFailureSummary(requests []FailedRequest) {
	banner := "\n" + bright.Sprint("-----API FAILURE SUMMARY-----")
	l.Info(banner)
	for i, req := range requests {
		c := green
		switch {
		case req.Status >= 500:
			c = red
		case req.Status >= 400:
			c = yellow
		}
		l.Info(fmt.Sprintf("%d. %s - %s (%s)", i+1, c.Sprintf("[%s] %d", req.Method, req.Status), req.URL, req.Timestamp))
	}
	l.Info(banner)
}
