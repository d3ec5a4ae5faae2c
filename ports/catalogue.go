// Package ports declares the boundary interfaces the extraction core consumes:
// the kind catalogue, the instance sampler, the default-attribute lookup and
// the output sink.
package ports

import (
	"context"

	"github.com/reglet-dev/reglet-entities/entities"
	"github.com/reglet-dev/reglet-entities/values"
)

// CatalogueSource enumerates declaring types and describes their structure.
type CatalogueSource interface {
	// Entries returns the flat catalogue in its canonical order.
	Entries(ctx context.Context) ([]CatalogueEntry, error)

	// Describe returns a declaring type's structure.
	// Unknown types return an error matching entities.ErrUnknownType.
	Describe(ctx context.Context, id entities.TypeID) (TypeInfo, error)

	// Registered returns the registered type bound to a declaring type, if any.
	Registered(ctx context.Context, id entities.TypeID) (RegisteredType, bool, error)
}

// CatalogueEntry is one declaring type and its optional registered type.
type CatalogueEntry struct {
	Type       entities.TypeID
	Registered *RegisteredType
}

// RegisteredType is an instantiable kind known to the host's type registry.
type RegisteredType struct {
	ID             values.Identifier
	TranslationKey string
}

// TypeInfo is the static structure of a declaring type.
type TypeInfo struct {
	ID entities.TypeID
	// Name is the simple name used as the registry key.
	Name string
	// Super is the immediate supertype, empty when there is none.
	Super        entities.TypeID
	Capabilities values.Capability
	// Fields are the replicated fields declared directly on this type, in declaration order.
	Fields []TrackedField
}

// TrackedField is a replicated field declaration.
type TrackedField struct {
	Name  string
	Index int
	Kind  values.Kind
}
