package ports

import (
	"context"

	"github.com/reglet-dev/reglet-entities/values"
)

// AttributeLookup returns the default attributes of a living registered type.
type AttributeLookup interface {
	// DefaultAttributes returns zero or more defaults in canonical order.
	DefaultAttributes(ctx context.Context, t RegisteredType) ([]AttributeDefault, error)
}

// AttributeDefault is one attribute's registry identity and base value.
type AttributeDefault struct {
	RawID     int
	Attribute values.Identifier
	BaseValue float64
}
