package setapi

import (
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// setDetailSchema is the contract for a set-detail payload once any "set"
// wrapper has been removed.
const setDetailSchema = `{
  "type": "object",
  "required": ["cards"],
  "properties": {
    "id":      {"type": ["string", "integer"]},
    "name":    {"type": "string"},
    "title":   {"type": "string"},
    "subject": {"type": ["string", "null"]},
    "cards": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["question", "answer"],
        "properties": {
          "id":       {"type": ["string", "integer"]},
          "question": {"type": "string"},
          "answer":   {"type": "string"}
        }
      }
    }
  }
}`

const schemaURL = "schema://set-detail.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func setSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		def, err := jsonschema.UnmarshalJSON(strings.NewReader(setDetailSchema))
		if err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// validateSet checks raw against the set-detail schema.
func validateSet(raw string) error {
	parsed, err := jsonschema.UnmarshalJSON(strings.NewReader(raw))
	if err != nil {
		return &ErrInvalidResponse{Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	schema, err := setSchema()
	if err != nil {
		return &ErrInvalidResponse{Err: fmt.Errorf("compile schema: %w", err)}
	}
	if err := schema.Validate(parsed); err != nil {
		return &ErrInvalidResponse{Err: fmt.Errorf("schema validation failed: %w", err)}
	}
	return nil
}
