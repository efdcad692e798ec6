package finalize

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

const artifactSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "API Capture Log",
  "type": "object",
  "required": ["testInfo", "timestamp", "error", "summary", "logs"],
  "properties": {
    "testInfo": {"type": "string"},
    "timestamp": {"type": "string"},
    "error": {
      "type": "object",
      "required": ["message", "stack"],
      "properties": {
        "message": {"type": "string"},
        "stack": {"type": "string"}
      }
    },
    "summary": {
      "type": "object",
      "required": ["totalRequests", "totalResponses", "failedResponses"],
      "properties": {
        "totalRequests": {"type": "integer", "minimum": 0},
        "totalResponses": {"type": "integer", "minimum": 0},
        "failedResponses": {"type": "integer", "minimum": 0}
      }
    },
    "logs": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["type", "timestamp", "url", "method"],
        "properties": {
          "type": {"type": "string", "enum": ["request", "response"]},
          "timestamp": {"type": "string"},
          "url": {"type": "string"},
          "method": {"type": "string"},
          "requestHeaders": {"type": ["object", "null"], "additionalProperties": {"type": "string"}},
          "requestBody": {"type": ["string", "null"]},
          "responseHeaders": {"type": ["object", "null"], "additionalProperties": {"type": "string"}},
          "responseBody": {"type": ["string", "null"]},
          "status": {"type": ["integer", "null"]},
          "statusText": {"type": ["string", "null"]},
          "resourceType": {"type": "string"}
        }
      }
    }
  }
}`

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func artifactSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(artifactSchemaJSON))
	})
	return schema, schemaErr
}

// validateArtifact checks raw against the artifact schema.
// A document of the wrong shape yields ErrCorruptArtifact.
func validateArtifact(path string, raw []byte) error {
	s, err := artifactSchema()
	if err != nil {
		return fmt.Errorf("failed to load API log schema: %w", err)
	}
	result, err := s.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorruptArtifact, path, err)
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		problems = append(problems, e.Field()+": "+e.Description())
	}
	return fmt.Errorf("%w: %s: %s", ErrCorruptArtifact, path, strings.Join(problems, "; "))
}
