package extractor

import (
	"context"
	"fmt"
	"math"

	"github.com/reglet-dev/reglet-entities/entities"
	"github.com/reglet-dev/reglet-entities/ports"
)

// CollectAttributes resolves the default attributes of a living kind.
// Kinds without a registered type have no defaults and yield an empty list.
func CollectAttributes(
	ctx context.Context,
	lookup ports.AttributeLookup,
	registered *ports.RegisteredType,
) ([]entities.AttributeDescriptor, error) {
	attrs := []entities.AttributeDescriptor{}
	if registered == nil || lookup == nil {
		return attrs, nil
	}

	typeName := registered.ID.String()
	defaults, err := lookup.DefaultAttributes(ctx, *registered)
	if err != nil {
		return nil, &entities.AttributeLookupError{Type: typeName, Err: err}
	}

	seen := make(map[int]bool, len(defaults))
	for i, d := range defaults {
		switch {
		case d.Attribute.IsEmpty():
			return nil, &entities.AttributeLookupError{
				Type:   typeName,
				Reason: fmt.Sprintf("attribute %d has no name", i),
			}
		case d.RawID < 0:
			return nil, &entities.AttributeLookupError{
				Type:   typeName,
				Reason: fmt.Sprintf("attribute %s has negative id %d", d.Attribute, d.RawID),
			}
		case seen[d.RawID]:
			return nil, &entities.AttributeLookupError{
				Type:   typeName,
				Reason: fmt.Sprintf("duplicate attribute id %d", d.RawID),
			}
		case math.IsNaN(d.BaseValue) || math.IsInf(d.BaseValue, 0):
			return nil, &entities.AttributeLookupError{
				Type:   typeName,
				Reason: fmt.Sprintf("attribute %s has non-finite base value", d.Attribute),
			}
		}
		seen[d.RawID] = true

		attrs = append(attrs, entities.AttributeDescriptor{
			ID:        d.RawID,
			Name:      d.Attribute.Path(),
			BaseValue: d.BaseValue,
		})
	}
	return attrs, nil
}
