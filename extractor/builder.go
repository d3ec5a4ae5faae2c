// Package extractor builds the kind registry: it collects attributes, builds
// one descriptor per declaring type and walks the catalogue's inheritance forest.
package extractor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/reglet-dev/reglet-entities/codec"
	"github.com/reglet-dev/reglet-entities/entities"
	"github.com/reglet-dev/reglet-entities/ports"
	"github.com/reglet-dev/reglet-entities/values"
)

// errNoInstance is raised when a type declares fields but no instance was sampled to read them from.
var errNoInstance = errors.New("no sampled instance to read field defaults from")

// BuildInput is everything needed to describe one declaring type.
type BuildInput struct {
	Info ports.TypeInfo
	// Parent is the immediate supertype when it belongs to the entity hierarchy.
	Parent     *ports.TypeInfo
	Registered *ports.RegisteredType
	// Instance must hold post-construction state. It may be nil only when
	// Info declares no fields.
	Instance ports.Instance
}

// BuildDescriptor describes a single declaring type from its static structure and
// a freshly sampled instance.
func BuildDescriptor(ctx context.Context, in BuildInput, lookup ports.AttributeLookup) (entities.KindDescriptor, error) {
	desc := entities.KindDescriptor{
		Declaring: in.Info.ID,
		Name:      in.Info.Name,
		Living:    in.Info.Capabilities.Has(values.CapLiving),
	}

	if in.Parent != nil {
		desc.Parent = in.Parent.Name
	}

	if in.Registered != nil {
		id := in.Registered.ID
		desc.Type = &id
		desc.TranslationKey = in.Registered.TranslationKey
	}

	fields, err := buildFields(in)
	if err != nil {
		return entities.KindDescriptor{}, err
	}
	desc.Fields = fields

	if desc.Living {
		attrs, err := CollectAttributes(ctx, lookup, in.Registered)
		if err != nil {
			return entities.KindDescriptor{}, &entities.ExtractionError{
				DeclaringType: in.Info.ID,
				Op:            "collecting attributes of",
				Err:           err,
			}
		}
		desc.Attributes = attrs
	}

	if in.Registered != nil && in.Instance != nil {
		if box, ok := in.Instance.Bounds(); ok {
			if !box.Valid() {
				return entities.KindDescriptor{}, &entities.ExtractionError{
					DeclaringType: in.Info.ID,
					Op:            "reading bounds of",
					Err:           fmt.Errorf("non-positive extents %gx%gx%g", box.SizeX, box.SizeY, box.SizeZ),
				}
			}
			desc.BoundingBox = &entities.BoundingBox{SizeX: box.SizeX, SizeY: box.SizeY, SizeZ: box.SizeZ}
		}
	}

	return desc, nil
}

func buildFields(in BuildInput) ([]entities.FieldDescriptor, error) {
	fields := make([]entities.FieldDescriptor, 0, len(in.Info.Fields))
	if len(in.Info.Fields) > 0 && in.Instance == nil {
		return nil, &entities.ExtractionError{
			DeclaringType: in.Info.ID,
			Op:            "building",
			Err:           errNoInstance,
		}
	}

	names := make(map[string]bool, len(in.Info.Fields))
	for _, f := range in.Info.Fields {
		name := strings.ToLower(f.Name)
		fieldErr := func(op string, err error) error {
			return &entities.ExtractionError{
				DeclaringType: in.Info.ID,
				Field:         name,
				Index:         f.Index,
				Op:            op,
				Err:           err,
			}
		}

		if f.Index < 0 {
			return nil, fieldErr("indexing", fmt.Errorf("negative wire index"))
		}
		if names[name] {
			return nil, fieldErr("naming", fmt.Errorf("field name declared twice"))
		}
		names[name] = true

		raw, err := in.Instance.Value(f)
		if err != nil {
			return nil, fieldErr("reading", err)
		}
		enc, err := codec.Encode(f.Kind, raw)
		if err != nil {
			return nil, fieldErr("encoding", err)
		}

		fields = append(fields, entities.FieldDescriptor{
			Name:         name,
			Index:        f.Index,
			Type:         enc.Type,
			DefaultValue: enc.Value,
		})
	}
	return fields, nil
}
