package protocol

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Iron-Ham/gridwatch/internal/errors"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

// schemaFiles maps frame types to their schema file.
var schemaFiles = map[string]string{
	TypeStatic: "schemas/static.schema.json",
	TypeStep:   "schemas/step.schema.json",
}

// Validator checks frame content against the embedded JSON schemas.
// It is safe for concurrent use.
type Validator struct {
	schemas map[string]*jsonschema.Schema
}

// NewValidator compiles the embedded schemas.
func NewValidator() (*Validator, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft7

	v := &Validator{schemas: make(map[string]*jsonschema.Schema, len(schemaFiles))}
	for kind, name := range schemaFiles {
		data, err := schemaFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", name, err)
		}
		if err := c.AddResource(name, bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", name, err)
		}
		s, err := c.Compile(name)
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", name, err)
		}
		v.schemas[kind] = s
	}
	return v, nil
}

// Validate checks raw content of the given frame type.
func (v *Validator) Validate(kind string, raw json.RawMessage) error {
	s, ok := v.schemas[kind]
	if !ok {
		return errors.NewFrameError(kind, "no schema for frame type", errors.ErrMalformedFrame)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return errors.NewFrameError(kind, "decode content", fmt.Errorf("%w: %v", errors.ErrMalformedFrame, err))
	}
	if err := s.Validate(doc); err != nil {
		return errors.NewFrameError(kind, "validate content", fmt.Errorf("%w: %v", errors.ErrSchemaViolation, err))
	}
	return nil
}
