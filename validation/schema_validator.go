// Package validation checks output documents against registered JSON schemas.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/reglet-dev/reglet-entities/registry"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// SchemaValidator implements DocumentValidator using a SchemaRegistry.
type SchemaValidator struct {
	registry registry.SchemaRegistry
	name     string

	mu       sync.Mutex
	compiled *jsonschema.Schema
}

// NewSchemaValidator creates a validator for the schema registered under name.
func NewSchemaValidator(reg registry.SchemaRegistry, name string) *SchemaValidator {
	return &SchemaValidator{registry: reg, name: name}
}

// NewDocumentValidator creates a validator for kind registry documents.
func NewDocumentValidator() (*SchemaValidator, error) {
	reg, err := registry.NewDocumentRegistry()
	if err != nil {
		return nil, err
	}
	return NewSchemaValidator(reg, registry.DocumentSchema), nil
}

func (v *SchemaValidator) schema() (*jsonschema.Schema, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.compiled != nil {
		return v.compiled, nil
	}

	src, ok := v.registry.GetSchema(v.name)
	if !ok {
		return nil, fmt.Errorf("no schema registered for %s", v.name)
	}

	url := v.name + ".schema.json"
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(url, strings.NewReader(src)); err != nil {
		return nil, fmt.Errorf("adding schema resource %s: %w", v.name, err)
	}
	s, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compiling schema %s: %w", v.name, err)
	}
	v.compiled = s
	return s, nil
}

// Validate checks a JSON document against the schema.
func (v *SchemaValidator) Validate(document []byte) (*ValidationResult, error) {
	s, err := v.schema()
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(document))
	dec.UseNumber()
	var inst any
	if err := dec.Decode(&inst); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}

	err = s.Validate(inst)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}
	return &ValidationResult{Valid: false, Errors: leafIssues(ve)}, nil
}

// leafIssues flattens the error tree to its most specific causes.
func leafIssues(ve *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Path:    e.InstanceLocation,
				Message: e.Message,
				Keyword: e.KeywordLocation,
			})
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)

	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Path < issues[j].Path
	})
	return issues
}
