// Package snapshot serves a catalogue captured ahead of time. A snapshot
// document lists declaring types, the registered types bound to them and
// each registered type's sampled defaults, and a Source answers the
// catalogue, sampler and attribute ports from it.
package snapshot

// Document is the decoded form of a snapshot file.
type Document struct {
	FormatVersion string          `json:"format_version" yaml:"format_version"`
	Source        string          `json:"source,omitempty" yaml:"source,omitempty"`
	Types         []TypeDoc       `json:"types" yaml:"types"`
	Registered    []RegisteredDoc `json:"registered_types" yaml:"registered_types"`
	// Entries optionally fixes the catalogue order. When empty, the declaring
	// types of Registered are listed in document order.
	Entries []string `json:"entries,omitempty" yaml:"entries,omitempty"`
}

// TypeDoc is one declaring type.
type TypeDoc struct {
	ID           string     `json:"id" yaml:"id"`
	Name         string     `json:"name" yaml:"name"`
	Super        string     `json:"super,omitempty" yaml:"super,omitempty"`
	Capabilities []string   `json:"capabilities,omitempty" yaml:"capabilities,omitempty"`
	Fields       []FieldDoc `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// FieldDoc is one replicated field declaration.
type FieldDoc struct {
	Name  string `json:"name" yaml:"name"`
	Index int    `json:"index" yaml:"index"`
	Kind  string `json:"kind" yaml:"kind"`
}

// RegisteredDoc is a registered type and the state of one sampled instance.
type RegisteredDoc struct {
	ID             string         `json:"id" yaml:"id"`
	Type           string         `json:"type" yaml:"type"`
	TranslationKey string         `json:"translation_key,omitempty" yaml:"translation_key,omitempty"`
	Recipe         string         `json:"recipe,omitempty" yaml:"recipe,omitempty"`
	Bounds         *BoundsDoc     `json:"bounds,omitempty" yaml:"bounds,omitempty"`
	Attributes     []AttributeDoc `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Defaults       []DefaultDoc   `json:"defaults,omitempty" yaml:"defaults,omitempty"`
}

// BoundsDoc is a sampled bounding box.
type BoundsDoc struct {
	SizeX float64 `json:"size_x" yaml:"size_x"`
	SizeY float64 `json:"size_y" yaml:"size_y"`
	SizeZ float64 `json:"size_z" yaml:"size_z"`
}

// AttributeDoc is one default attribute.
type AttributeDoc struct {
	ID        int     `json:"id" yaml:"id"`
	Name      string  `json:"name" yaml:"name"`
	BaseValue float64 `json:"base_value" yaml:"base_value"`
}

// DefaultDoc is the sampled value of the field at a wire index.
// Value is decoded per the field's kind when it is read.
type DefaultDoc struct {
	Index int `json:"index" yaml:"index"`
	Value any `json:"value" yaml:"value"`
}

// Recipe names accepted in RegisteredDoc.Recipe.
const (
	RecipeStandard = "standard"
	RecipePlayer   = "player"
)
