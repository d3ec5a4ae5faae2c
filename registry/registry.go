// Package registry implements a schema registry for output documents.
package registry

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/reglet-dev/reglet-entities/entities"
	"github.com/reglet-dev/reglet-entities/values"
)

// DocumentSchema is the name of the kind registry document schema.
const DocumentSchema = "kind-document"

// DocumentSchemaID is the $id of the kind registry document schema.
const DocumentSchemaID = "https://reglet.dev/schemas/entities/kind-document.json"

// Registry implements SchemaRegistry using in-memory storage.
type Registry struct {
	schemas   map[string]string
	mu        sync.RWMutex
	reflector *jsonschema.Reflector
}

// RegistryOption configures the Registry.
type RegistryOption func(*Registry)

// WithReflector replaces the reflector used for Go models.
func WithReflector(r *jsonschema.Reflector) RegistryOption {
	return func(reg *Registry) {
		if r != nil {
			reg.reflector = r
		}
	}
}

// NewRegistry creates an empty schema registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		schemas:   make(map[string]string),
		reflector: &jsonschema.Reflector{ExpandedStruct: true},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewDocumentRegistry creates a registry with the kind document schema registered.
func NewDocumentRegistry(opts ...RegistryOption) (*Registry, error) {
	r := NewRegistry(opts...)
	doc, err := json.MarshalIndent(DocumentModel(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document schema: %w", err)
	}
	if err := r.Register(DocumentSchema, doc); err != nil {
		return nil, err
	}
	return r, nil
}

// Register adds a schema under a name.
// model can be a Go struct (to generate schema) or a raw JSON schema string/map/bytes.
func (r *Registry) Register(name string, model any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.schemas[name]; exists {
		return fmt.Errorf("schema already registered: %s", name)
	}

	var schemaStr string
	switch v := model.(type) {
	case string:
		schemaStr = v
	case []byte:
		schemaStr = string(v)
	case map[string]any:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal schema map: %w", err)
		}
		schemaStr = string(b)
	case *jsonschema.Schema:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal schema: %w", err)
		}
		schemaStr = string(b)
	default:
		t := reflect.TypeOf(model)
		if t == nil {
			return fmt.Errorf("cannot register nil model for %s", name)
		}
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		if t.Kind() != reflect.Struct {
			return fmt.Errorf("cannot generate schema for %s from %T", name, model)
		}

		s := r.reflector.Reflect(model)
		b, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal generated schema: %w", err)
		}
		schemaStr = string(b)
	}

	if !json.Valid([]byte(schemaStr)) {
		return fmt.Errorf("schema %s is not valid JSON", name)
	}
	r.schemas[name] = schemaStr
	return nil
}

// GetSchema retrieves the JSON schema registered under name.
func (r *Registry) GetSchema(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.schemas[name]
	return s, ok
}

// List returns all registered schema names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.schemas))
	for k := range r.schemas {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DocumentModel builds the schema of a kind registry document: an object
// whose values are kind records. Field types are restricted to the known
// value kind tags and bounding box extents must be positive.
func DocumentModel() *jsonschema.Schema {
	reflector := &jsonschema.Reflector{ExpandedStruct: true, Anonymous: true}
	record := reflector.Reflect(&entities.KindRecord{})

	defs := record.Definitions
	record.Definitions = nil
	record.Version = ""
	record.ID = ""

	if field, ok := defs["FieldDescriptor"]; ok {
		if typ, ok := field.Properties.Get("type"); ok {
			for _, k := range values.AllKinds() {
				typ.Enum = append(typ.Enum, k.Tag())
			}
		}
		if idx, ok := field.Properties.Get("index"); ok {
			idx.Minimum = json.Number("0")
		}
	}
	if box, ok := defs["BoundingBox"]; ok {
		for _, axis := range []string{"size_x", "size_y", "size_z"} {
			if p, ok := box.Properties.Get(axis); ok {
				p.ExclusiveMinimum = json.Number("0")
			}
		}
	}

	return &jsonschema.Schema{
		Version:              jsonschema.Version,
		ID:                   DocumentSchemaID,
		Title:                "Entity kind registry",
		Type:                 "object",
		AdditionalProperties: record,
		Definitions:          defs,
	}
}
