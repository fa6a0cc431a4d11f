package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	_ "embed"
)

// SchemaID is the canonical identifier of the page document schema.
const SchemaID = "https://luvatrix.dev/schemas/ui_ir.page.schema.json"

//go:embed ui_ir.page.schema.json
var pageSchemaJSON []byte

// PageSchema returns a decoded copy of the embedded JSON Schema for the
// page document form.
func PageSchema() map[string]any {
	var schema map[string]any
	if err := json.Unmarshal(pageSchemaJSON, &schema); err != nil {
		// The schema is embedded at build time; a decode failure is a
		// packaging bug, not a runtime condition.
		panic(fmt.Sprintf("ir: embedded schema: %v", err))
	}
	return schema
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func pageSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(SchemaID, bytes.NewReader(pageSchemaJSON)); err != nil {
			compileErr = fmt.Errorf("page schema load failed: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(SchemaID)
	})
	return compiledSchema, compileErr
}

// ValidateDocument checks a decoded page document against the embedded
// schema without constructing a page.
func ValidateDocument(payload map[string]any) error {
	schema, err := pageSchema()
	if err != nil {
		return err
	}
	// Round-trip through JSON so the validator sees plain decoded values
	// regardless of how the payload was assembled.
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("page document encode: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("page document decode: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("page schema validation failed: %w", err)
	}
	return nil
}

// ParseDocument schema-validates the document and then builds the page,
// so structural and semantic failures both surface before use.
func ParseDocument(payload map[string]any) (*Page, error) {
	if err := ValidateDocument(payload); err != nil {
		return nil, err
	}
	return FromMap(payload)
}
