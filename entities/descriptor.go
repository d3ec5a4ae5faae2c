// Package entities holds the extraction domain model: kind descriptors, the
// assembled registry, extraction locks and the error taxonomy.
package entities

import (
	"github.com/reglet-dev/reglet-entities/values"
)

// TypeID is the identity of a declaring type, usually its fully qualified name.
// Registry order is the byte-wise order of TypeIDs.
type TypeID string

// KindDescriptor describes one entity kind.
//
// Invariants:
// - TranslationKey is set iff Type is set
// - Attributes is only meaningful when Living is true
// - BoundingBox is only set when Type is set
type KindDescriptor struct {
	Declaring      TypeID
	Name           string
	Parent         string
	Type           *values.Identifier
	TranslationKey string
	Fields         []FieldDescriptor
	Living         bool
	Attributes     []AttributeDescriptor
	BoundingBox    *BoundingBox
}

// IsRoot reports whether the kind has no ancestor in the entity hierarchy.
func (d KindDescriptor) IsRoot() bool {
	return d.Parent == ""
}

// FieldDescriptor is one replicated field declared directly on a kind.
type FieldDescriptor struct {
	Name         string `json:"name" yaml:"name"`
	Index        int    `json:"index" yaml:"index"`
	Type         string `json:"type" yaml:"type"`
	DefaultValue any    `json:"default_value" yaml:"default_value"`
}

// AttributeDescriptor is one default attribute of a living kind.
type AttributeDescriptor struct {
	ID        int     `json:"id" yaml:"id"`
	Name      string  `json:"name" yaml:"name"`
	BaseValue float64 `json:"base_value" yaml:"base_value"`
}

// BoundingBox holds the default extents of a kind.
type BoundingBox struct {
	SizeX float64 `json:"size_x" yaml:"size_x"`
	SizeY float64 `json:"size_y" yaml:"size_y"`
	SizeZ float64 `json:"size_z" yaml:"size_z"`
}

// KindRecord is the serialized form of a KindDescriptor.
type KindRecord struct {
	Parent             string                 `json:"parent,omitempty" yaml:"parent,omitempty"`
	Type               string                 `json:"type,omitempty" yaml:"type,omitempty"`
	TranslationKey     string                 `json:"translation_key,omitempty" yaml:"translation_key,omitempty"`
	Fields             []FieldDescriptor      `json:"fields" yaml:"fields"`
	Attributes         *[]AttributeDescriptor `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	DefaultBoundingBox *BoundingBox           `json:"default_bounding_box,omitempty" yaml:"default_bounding_box,omitempty"`
}

// Record converts the descriptor to its serialized form.
func (d KindDescriptor) Record() KindRecord {
	rec := KindRecord{
		Parent:         d.Parent,
		TranslationKey: d.TranslationKey,
		Fields:         make([]FieldDescriptor, len(d.Fields)),
	}
	copy(rec.Fields, d.Fields)

	if d.Type != nil {
		rec.Type = d.Type.Path()
	}
	if d.Living {
		attrs := make([]AttributeDescriptor, len(d.Attributes))
		copy(attrs, d.Attributes)
		rec.Attributes = &attrs
	}
	if d.BoundingBox != nil {
		bb := *d.BoundingBox
		rec.DefaultBoundingBox = &bb
	}
	return rec
}

// clone returns a copy that shares no slices or pointers with d.
func (d KindDescriptor) clone() KindDescriptor {
	out := d
	out.Fields = append([]FieldDescriptor(nil), d.Fields...)
	if d.Living || d.Attributes != nil {
		out.Attributes = append([]AttributeDescriptor{}, d.Attributes...)
	}
	if d.Type != nil {
		t := *d.Type
		out.Type = &t
	}
	if d.BoundingBox != nil {
		bb := *d.BoundingBox
		out.BoundingBox = &bb
	}
	return out
}
