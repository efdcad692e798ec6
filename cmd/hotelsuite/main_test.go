package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/adactin-qa/hotelsuite/internal/capture"
	"github.com/adactin-qa/hotelsuite/internal/config"
	"github.com/adactin-qa/hotelsuite/internal/finalize"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "hotelsuite dev (commit: none, built: unknown)\n", out)
}

func TestResolveRoute(t *testing.T) {
	testCases := []struct {
		route, base, want string
	}{
		{"/", "", "/"},
		{"/", "https://adactinhotelapp.com", "https://adactinhotelapp.com/"},
		{"/SearchHotel.php", "https://adactinhotelapp.com/", "https://adactinhotelapp.com/SearchHotel.php"},
		{"https://example.com/x", "https://adactinhotelapp.com", "https://example.com/x"},
	}
	for _, tc := range testCases {
		got, err := resolveRoute(tc.route, tc.base)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s on %s", tc.route, tc.base)
	}

	_, err := resolveRoute("/", "http://[::1")
	assert.Error(t, err)
}

func TestCodegenEnv(t *testing.T) {
	env := codegenEnv([]string{"PATH=/usr/bin", "ENV=prod", "BASE_URL=https://x"}, "qa")
	assert.Equal(t, []string{"PATH=/usr/bin", "BASE_URL=https://x", "ENV=qa"}, env)
}

func TestSwitchesInit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cfg")

	out, err := execute(t, "switches", "--init", "--config", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Created")

	raw, err := os.ReadFile(filepath.Join(dir, switchesFile))
	require.NoError(t, err)
	var s config.Switches
	require.NoError(t, yaml.Unmarshal(raw, &s))
	assert.Equal(t, config.Default(), s)

	_, err = execute(t, "switches", "--init", "--config", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	// The written file loads through viper
	require.NoError(t, config.LoadFromFile(filepath.Join(dir, switchesFile)))
	t.Cleanup(func() { config.Set(config.Default()) })
	assert.Equal(t, config.Default(), config.Get())
}

func TestPrintSwitches(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)

	s := config.Default()
	s.IncludePassLogs = true
	require.NoError(t, printSwitches(root, s))

	text := out.String()
	assert.Contains(t, text, "include_pass_logs: true")
	assert.Contains(t, text, "attach_logs: immediate")
	assert.Contains(t, text, "body_read_timeout: 5s")
}

func writeArtifactFile(t *testing.T, resultsDir, name string, a finalize.Artifact) string {
	t.Helper()
	dir := filepath.Join(resultsDir, finalize.LogsDirName)
	require.NoError(t, os.MkdirAll(dir, 0755))
	data, err := json.Marshal(a)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestArtifactsCommand(t *testing.T) {
	results := t.TempDir()

	out, err := execute(t, "artifacts", "--results-dir", results)
	require.NoError(t, err)
	assert.Contains(t, out, "No API logs under")

	status := 500
	body := strings.Repeat("x", 250)
	path := writeArtifactFile(t, results, "search-a.json", finalize.Artifact{
		TestInfo:  "Search Page TestsAPI_Capture_Logs_FAILED",
		Timestamp: "2026-10-17T08-15-30-456789000Z",
		Error:     finalize.ArtifactError{Message: "Timeout", Stack: "No stack trace"},
		Summary:   capture.Summary{TotalRequests: 2, TotalResponses: 2, FailedResponses: 1},
		Logs: []capture.Record{
			{Type: capture.KindResponse, URL: "https://app/api/book", Method: "POST", Status: &status, ResponseBody: &body, Timestamp: "t1"},
		},
	})
	writeArtifactFile(t, results, "search-b.json", finalize.Artifact{
		TestInfo:  "Search Page TestsAPI_Capture_Logs_PASSED",
		Timestamp: "2026-10-17T08-16-02-000000000Z",
		Error:     finalize.ArtifactError{Message: "Test passed successfully.", Stack: "No stack trace"},
		Logs:      []capture.Record{},
	})
	require.NoError(t, os.WriteFile(filepath.Join(results, finalize.LogsDirName, "search-c.json"), []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(results, finalize.LogsDirName, "broken.json"), []byte("{"), 0644))

	out, err = execute(t, "artifacts", "--results-dir", results)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "FILE")
	assert.Contains(t, lines[1], "broken.json")
	assert.Contains(t, lines[1], "corrupt API log artifact")
	assert.Regexp(t, `search-a\.json\s+2\s+2\s+1\s+Timeout`, lines[2])
	assert.Regexp(t, `search-b\.json\s+0\s+0\s+0\s+Test passed successfully\.`, lines[3])
	assert.Contains(t, lines[4], "search-c.json")
	assert.Contains(t, lines[4], "corrupt API log artifact")

	out, err = execute(t, "artifacts", "show", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Search Page TestsAPI_Capture_Logs_FAILED (2026-10-17T08-15-30-456789000Z)")
	assert.Contains(t, out, "Found 1 failed API requests:")
	assert.Contains(t, out, "1. [POST] 500 - https://app/api/book (t1)")
	assert.Contains(t, out, "Response: "+strings.Repeat("x", 200)+"...")

	out, err = execute(t, "artifacts", "show", filepath.Join(results, finalize.LogsDirName, "search-b.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "All API requests were successful!")

	_, err = execute(t, "artifacts", "show", filepath.Join(results, finalize.LogsDirName, "search-c.json"))
	assert.ErrorIs(t, err, finalize.ErrCorruptArtifact)
}
