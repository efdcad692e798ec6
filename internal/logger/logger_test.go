package logger

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adactin-qa/hotelsuite/internal/config"
	"github.com/adactin-qa/hotelsuite/internal/report"
)

func newTestLogger(t *testing.T, sink report.Sink, mode string) (*Logger, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	l := New(Options{Name: t.Name(), Sink: sink, Output: &out, AttachMode: mode})
	return l, &out
}

func TestStripColours(t *testing.T) {
	assert.Equal(t, "red text", StripColours("\x1b[31mred\x1b[0m text"))
	assert.Equal(t, "bold green", StripColours("\x1b[1m\x1b[32mbold green\x1b[0m"))
	assert.Equal(t, "plain", StripColours("plain"))
}

func TestLoggerBuffersEntries(t *testing.T) {
	l, out := newTestLogger(t, nil, "")

	l.Info("\x1b[32mstarted\x1b[0m")
	l.Warn("slow")
	l.Error("broken")
	l.Debug("details")

	assert.Equal(t, []string{
		"INFO: started",
		"WARN: slow",
		"ERROR: broken",
		"DEBUG: details",
	}, l.Entries())
	assert.Contains(t, out.String(), "started")
	assert.Contains(t, out.String(), "details")
	assert.Contains(t, out.String(), l.RunID())
}

func TestLoggerAttachModes(t *testing.T) {
	testCases := []struct {
		mode     string
		expected []string
	}{
		{config.AttachImmediate, []string{"i", "w", "e", "d"}},
		{config.AttachBuffer, []string{"i", "w", "e", "d"}},
		{config.AttachErrorOnly, []string{"w", "e"}},
		{"unknown-mode", []string{"i", "w", "e", "d"}},
	}

	for _, tc := range testCases {
		t.Run(tc.mode, func(t *testing.T) {
			sink := report.NewMemorySink()
			l, _ := newTestLogger(t, sink, tc.mode)

			l.Info("i")
			l.Warn("w")
			l.Error("e")
			l.Debug("d")
			l.Wait()

			var got []string
			for _, a := range sink.Named("Log") {
				got = append(got, string(a.Body))
				assert.Equal(t, report.ContentTypeText, a.ContentType)
			}
			// Attachments run concurrently; order is not guaranteed
			assert.ElementsMatch(t, tc.expected, got)
		})
	}
}

func TestLoggerReadsAttachModeFromConfig(t *testing.T) {
	prev := config.Get()
	t.Cleanup(func() { config.Set(prev) })

	s := config.Default()
	s.AttachLogs = "ERROR-ONLY"
	config.Set(s)

	sink := report.NewMemorySink()
	l, _ := newTestLogger(t, sink, "")
	l.Info("quiet")
	l.Error("loud")
	l.Wait()

	attached := sink.Named("Log")
	require.Len(t, attached, 1)
	assert.Equal(t, "loud", string(attached[0].Body))

	// Evaluated per call
	s.AttachLogs = config.AttachImmediate
	config.Set(s)
	l.Info("now attached")
	l.Wait()
	assert.Len(t, sink.Named("Log"), 2)
}

func TestLoggerAttachFailureIsSwallowed(t *testing.T) {
	sink := &report.MemorySink{Err: errors.New("sink unavailable")}
	l, out := newTestLogger(t, sink, config.AttachImmediate)

	assert.NotPanics(t, func() { l.Info("hello") })
	l.Wait()

	assert.Equal(t, []string{"INFO: hello"}, l.Entries())
	assert.Contains(t, out.String(), "failed to attach log to report")
	assert.Contains(t, out.String(), "sink unavailable")
}

func TestAttachLogs(t *testing.T) {
	ctx := context.Background()

	t.Run("Attaches joined buffer under default name", func(t *testing.T) {
		sink := report.NewMemorySink()
		l, _ := newTestLogger(t, sink, config.AttachErrorOnly)
		l.Info("one")
		l.Info("two")
		l.Wait()

		require.NoError(t, l.AttachLogs(ctx, ""))
		logs := sink.Named(DefaultLogsName)
		require.Len(t, logs, 1)
		assert.Equal(t, "INFO: one\nINFO: two", string(logs[0].Body))
		assert.Equal(t, report.ContentTypeText, logs[0].ContentType)
	})

	t.Run("Empty buffer attaches nothing", func(t *testing.T) {
		sink := report.NewMemorySink()
		l, _ := newTestLogger(t, sink, "")
		require.NoError(t, l.AttachLogs(ctx, "Custom"))
		assert.Empty(t, sink.Attachments())
	})

	t.Run("No sink is a no-op", func(t *testing.T) {
		l, _ := newTestLogger(t, nil, "")
		l.Info("x")
		assert.NoError(t, l.AttachLogs(ctx, ""))
	})

	t.Run("Sink errors are returned", func(t *testing.T) {
		boom := errors.New("boom")
		sink := &report.MemorySink{}
		l, _ := newTestLogger(t, sink, config.AttachErrorOnly)
		l.Info("x")
		sink.Err = boom
		assert.ErrorIs(t, l.AttachLogs(ctx, ""), boom)
	})
}

func TestAttachSwallowsErrors(t *testing.T) {
	sink := &report.MemorySink{Err: errors.New("nope")}
	l, out := newTestLogger(t, sink, "")

	l.Attach(context.Background(), "screenshot", "data", "")
	assert.Contains(t, out.String(), "failed to attach to report")
}

func TestTruncateBody(t *testing.T) {
	short := strings.Repeat("a", BodyPreviewLimit)
	long := strings.Repeat("b", BodyPreviewLimit+50)

	assert.Equal(t, short, TruncateBody(short, BodyPreviewLimit))
	assert.Equal(t, strings.Repeat("b", BodyPreviewLimit)+"...", TruncateBody(long, BodyPreviewLimit))
	assert.Equal(t, "", TruncateBody("", BodyPreviewLimit))

	// Multi-byte characters are counted as characters
	wide := strings.Repeat("é", BodyPreviewLimit)
	assert.Equal(t, wide, TruncateBody(wide, BodyPreviewLimit))
}

func TestPrintHelpersColourConsoleOnly(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	l, out := newTestLogger(t, nil, "")
	l.PrintSuccessMessage("All API requests were successful!")

	assert.Contains(t, out.String(), "\x1b[32mAll API requests were successful!")
	assert.Equal(t, []string{"INFO: \nAll API requests were successful!"}, l.Entries())
}

func TestPrintHelpers(t *testing.T) {
	t.Run("PrintSummary", func(t *testing.T) {
		l, _ := newTestLogger(t, nil, "")
		l.PrintSummary("PASSED", map[string]int{"totalRequests": 2})
		assert.Equal(t, []string{`INFO: API CAPTURE SUMMARY (PASSED): {"totalRequests":2}`}, l.Entries())
	})

	t.Run("PrintFailedRequestDetail truncates long bodies", func(t *testing.T) {
		l, _ := newTestLogger(t, nil, "")
		body := strings.Repeat("x", 250)
		l.PrintFailedRequestDetail(1, FailedRequest{
			Method: "POST", URL: "https://app/api/book", Status: 500, StatusText: "Internal Server Error",
			Timestamp: "2026-01-01T00:00:00.000Z", Body: body,
		})

		entry := l.Entries()[0]
		assert.Contains(t, entry, "1. POST https://app/api/book")
		assert.Contains(t, entry, "Status: 500 Internal Server Error")
		assert.Contains(t, entry, "Response: "+strings.Repeat("x", 200)+"...\n")
		assert.NotContains(t, entry, strings.Repeat("x", 201))
	})

	t.Run("PrintFailedRequestDetail keeps short bodies", func(t *testing.T) {
		l, _ := newTestLogger(t, nil, "")
		l.PrintFailedRequestDetail(2, FailedRequest{Method: "GET", URL: "/api/x", Status: 404, Body: `{"error":"missing"}`})
		entry := l.Entries()[0]
		assert.Contains(t, entry, `Response: {"error":"missing"}`+"\n")
		assert.NotContains(t, entry, "...")
	})

	t.Run("PrintFailedRequestDetail without body", func(t *testing.T) {
		l, _ := newTestLogger(t, nil, "")
		l.PrintFailedRequestDetail(3, FailedRequest{Method: "GET", URL: "/api/y", Status: 400})
		assert.Contains(t, l.Entries()[0], "Response: N/A")
	})

	t.Run("PrintFailedRequestHeader and success", func(t *testing.T) {
		l, _ := newTestLogger(t, nil, "")
		l.PrintFailedRequestHeader(3)
		l.PrintSuccessMessage("All API requests were successful!")
		entries := l.Entries()
		assert.Equal(t, "INFO: \nFound 3 failed API requests:\n", entries[0])
		assert.Equal(t, "INFO: \nAll API requests were successful!", entries[1])
	})

	t.Run("PrintAPIFailureSummary", func(t *testing.T) {
		l, _ := newTestLogger(t, nil, "")
		l.PrintAPIFailureSummary([]FailedRequest{
			{Method: "GET", URL: "/api/a", Status: 404, Timestamp: "t1"},
			{Method: "POST", URL: "/api/b", Status: 503, Timestamp: "t2"},
		})
		entries := l.Entries()
		require.Len(t, entries, 4)
		assert.Equal(t, "INFO: 1. [GET] 404 - /api/a (t1)", entries[1])
		assert.Equal(t, "INFO: 2. [POST] 503 - /api/b (t2)", entries[2])
		assert.Contains(t, entries[3], "-----API FAILURE SUMMARY-----")
	})
}
