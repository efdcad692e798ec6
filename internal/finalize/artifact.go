package finalize

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/adactin-qa/hotelsuite/internal/capture"
)

// LogsDirName is the directory under the results directory that holds API log artifacts
const LogsDirName = "api-logs"

// ErrCorruptArtifact is returned when a persisted artifact cannot be parsed back
// or does not have the shape of an API log
var ErrCorruptArtifact = errors.New("corrupt API log artifact")

// ArtifactError is the error section of an artifact
type ArtifactError struct {
	Message string `json:"message"`
	Stack   string `json:"stack"`
}

// Artifact is the API log file persisted for a finished test
type Artifact struct {
	TestInfo  string           `json:"testInfo"`
	Timestamp string           `json:"timestamp"`
	Error     ArtifactError    `json:"error"`
	Summary   capture.Summary  `json:"summary"`
	Logs      []capture.Record `json:"logs"`
}

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// SanitizeName makes a test name safe for use as a file name
func SanitizeName(name string) string {
	return strings.ToLower(unsafeName.ReplaceAllString(name, "-"))
}

// FileTimestamp formats t for file names, down to the nanosecond
func FileTimestamp(t time.Time) string {
	s := t.UTC().Format("2006-01-02T15:04:05.000000000Z")
	return strings.NewReplacer(":", "-", ".", "-").Replace(s)
}

// writeArtifact persists a under dir and returns the path and size written.
// An existing file with the same name is never overwritten.
func writeArtifact(dir string, a *Artifact) (string, int, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create API logs directory: %w", err)
	}

	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return "", 0, fmt.Errorf("failed to marshal API logs: %w", err)
	}

	base := SanitizeName(a.TestInfo) + "-" + a.Timestamp
	for attempt := 0; ; attempt++ {
		name := base
		if attempt > 0 {
			name += "-" + strconv.Itoa(attempt)
		}
		path := filepath.Join(dir, name+".json")

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", 0, fmt.Errorf("failed to create API log file: %w", err)
		}
		if _, err := f.Write(data); err != nil {
			f.Close()
			return "", 0, fmt.Errorf("failed to write API log file: %w", err)
		}
		if err := f.Close(); err != nil {
			return "", 0, fmt.Errorf("failed to close API log file: %w", err)
		}
		return path, len(data), nil
	}
}

// LoadArtifact decodes a persisted artifact
func LoadArtifact(path string) (*Artifact, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read API log file: %w", err)
	}
	var a Artifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptArtifact, path, err)
	}
	if err := validateArtifact(path, raw); err != nil {
		return nil, err
	}
	return &a, nil
}

// ListArtifacts returns the artifact files under resultsDir sorted by name.
// A missing logs directory yields no files.
func ListArtifacts(resultsDir string) ([]string, error) {
	dir := filepath.Join(resultsDir, LogsDirName)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list API logs: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}

// readArtifact re-reads a persisted artifact and returns it pretty-printed.
// On a parse or schema error the raw file content is returned together with ErrCorruptArtifact.
func readArtifact(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read API log file: %w", err)
	}

	var a Artifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return string(raw), fmt.Errorf("%w: %s: %v", ErrCorruptArtifact, path, err)
	}
	if err := validateArtifact(path, raw); err != nil {
		return string(raw), err
	}
	pretty, err := json.MarshalIndent(&a, "", "  ")
	if err != nil {
		return string(raw), fmt.Errorf("failed to re-serialize API logs: %w", err)
	}
	return string(pretty), nil
}
