package report

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySink(t *testing.T) {
	ctx := context.Background()

	t.Run("Keeps attachments in order", func(t *testing.T) {
		sink := NewMemorySink()
		require.NoError(t, sink.Attach(ctx, Attachment{Name: "a", Body: []byte("1"), ContentType: ContentTypeText}))
		require.NoError(t, sink.Attach(ctx, Attachment{Name: "b", Body: []byte("2"), ContentType: ContentTypeJSON}))
		require.NoError(t, sink.Attach(ctx, Attachment{Name: "a", Body: []byte("3"), ContentType: ContentTypeText}))

		all := sink.Attachments()
		require.Len(t, all, 3)
		assert.Equal(t, "b", all[1].Name)
		assert.Len(t, sink.Named("a"), 2)
	})

	t.Run("Copies the body", func(t *testing.T) {
		sink := NewMemorySink()
		body := []byte("payload")
		require.NoError(t, sink.Attach(ctx, Attachment{Name: "x", Body: body}))
		body[0] = 'X'
		assert.Equal(t, "payload", string(sink.Attachments()[0].Body))
	})

	t.Run("Returns configured error", func(t *testing.T) {
		boom := errors.New("sink unavailable")
		sink := &MemorySink{Err: boom}
		assert.ErrorIs(t, sink.Attach(ctx, Attachment{Name: "x"}), boom)
		assert.Empty(t, sink.Attachments())
	})

	t.Run("Honours a cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		assert.ErrorIs(t, NewMemorySink().Attach(cctx, Attachment{Name: "x"}), context.Canceled)
	})
}

func TestDirSink(t *testing.T) {
	ctx := context.Background()

	t.Run("Writes attachments and result index", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "allure-results")
		sink, err := NewDirSink(dir, "Search Page Test")
		require.NoError(t, err)
		_, err = uuid.Parse(sink.ID())
		require.NoError(t, err)

		require.NoError(t, sink.Attach(ctx, Attachment{Name: "Pino Logs", Body: []byte("INFO: hi"), ContentType: ContentTypeText}))
		require.NoError(t, sink.Attach(ctx, Attachment{Name: "Failed API Calls Details", Body: []byte("[]"), ContentType: ContentTypeJSON}))

		refs := sink.Attachments()
		require.Len(t, refs, 2)
		assert.Equal(t, ".txt", filepath.Ext(refs[0].Source))
		assert.Equal(t, ".json", filepath.Ext(refs[1].Source))

		data, err := os.ReadFile(filepath.Join(dir, refs[0].Source))
		require.NoError(t, err)
		assert.Equal(t, "INFO: hi", string(data))

		require.NoError(t, sink.Finish("passed"))

		raw, err := os.ReadFile(filepath.Join(dir, sink.ID()+"-result.json"))
		require.NoError(t, err)
		var result Result
		require.NoError(t, json.Unmarshal(raw, &result))
		assert.Equal(t, "Search Page Test", result.Name)
		assert.Equal(t, "passed", result.Status)
		assert.Len(t, result.Attachments, 2)
		assert.LessOrEqual(t, result.Start, result.Stop)
	})

	t.Run("Copies attachments given by path", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(t.TempDir(), "api.json")
		require.NoError(t, os.WriteFile(src, []byte(`{"ok":true}`), 0644))

		sink, err := NewDirSink(dir, "path")
		require.NoError(t, err)
		require.NoError(t, sink.Attach(ctx, Attachment{Name: "api", Path: src, ContentType: ContentTypeJSON}))

		data, err := os.ReadFile(filepath.Join(dir, sink.Attachments()[0].Source))
		require.NoError(t, err)
		assert.JSONEq(t, `{"ok":true}`, string(data))
	})

	t.Run("Missing path is an error", func(t *testing.T) {
		sink, err := NewDirSink(t.TempDir(), "missing")
		require.NoError(t, err)
		err = sink.Attach(ctx, Attachment{Name: "gone", Path: "/non/existent.json"})
		assert.Error(t, err)
		assert.Empty(t, sink.Attachments())
	})

	t.Run("Closed sink rejects attachments", func(t *testing.T) {
		sink, err := NewDirSink(t.TempDir(), "closed")
		require.NoError(t, err)
		require.NoError(t, sink.Finish("failed"))
		assert.ErrorIs(t, sink.Attach(ctx, Attachment{Name: "late"}), ErrSinkClosed)
		assert.ErrorIs(t, sink.Finish("failed"), ErrSinkClosed)
	})

	t.Run("Concurrent attach is safe", func(t *testing.T) {
		sink, err := NewDirSink(t.TempDir(), "concurrent")
		require.NoError(t, err)

		var wg sync.WaitGroup
		for i := 0; i < 25; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = sink.Attach(ctx, Attachment{Name: "Log", Body: []byte("x"), ContentType: ContentTypeText})
			}()
		}
		wg.Wait()
		assert.Len(t, sink.Attachments(), 25)
	})
}

func TestExtensionFor(t *testing.T) {
	testCases := map[string]string{
		"application/json":         ".json",
		"text/plain":               ".txt",
		"text/plain; charset=utf8": ".txt",
		"text/html":                ".html",
		"image/png":                ".png",
		"application/octet-stream": ".bin",
		"":                         ".bin",
	}
	for in, expected := range testCases {
		assert.Equal(t, expected, extensionFor(in), in)
	}
}
