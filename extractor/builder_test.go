package extractor_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/reglet-dev/reglet-entities/entities"
	"github.com/reglet-dev/reglet-entities/extractor"
	"github.com/reglet-dev/reglet-entities/ports"
	"github.com/reglet-dev/reglet-entities/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDescriptor(t *testing.T) {
	parent := ports.TypeInfo{ID: baseID, Name: "Base", Capabilities: values.CapEntity}
	in := extractor.BuildInput{
		Info: ports.TypeInfo{
			ID:           childID,
			Name:         "Wolf",
			Super:        baseID,
			Capabilities: values.CapEntity | values.CapLiving,
			Fields: []ports.TrackedField{
				{Name: "OWNER", Index: 18, Kind: values.KindOptionalUUID},
				{Name: "Variant", Index: 19, Kind: values.KindWolfVariant},
			},
		},
		Parent:     &parent,
		Registered: registered("minecraft:wolf"),
		Instance: &fakeInstance{
			values: map[string]any{
				"OWNER":   (*uuid.UUID)(nil),
				"Variant": values.EntryOf(values.MustParseIdentifier("pale")),
			},
			bounds: &values.Box{SizeX: 0.6, SizeY: 0.85, SizeZ: 0.6},
		},
	}

	desc, err := extractor.BuildDescriptor(context.Background(), in, nil)
	require.NoError(t, err)

	assert.Equal(t, "Base", desc.Parent)
	require.NotNil(t, desc.Type)
	assert.Equal(t, "minecraft:wolf", desc.Type.String())
	assert.Equal(t, "entity.minecraft.wolf", desc.TranslationKey)
	assert.Equal(t, []entities.FieldDescriptor{
		{Name: "owner", Index: 18, Type: "optional_uuid", DefaultValue: nil},
		{Name: "variant", Index: 19, Type: "wolf_variant", DefaultValue: "minecraft:pale"},
	}, desc.Fields)
	assert.True(t, desc.Living)
	assert.NotNil(t, desc.Attributes)
	assert.Empty(t, desc.Attributes)
	assert.Equal(t, &entities.BoundingBox{SizeX: 0.6, SizeY: 0.85, SizeZ: 0.6}, desc.BoundingBox)
}

func TestBuildDescriptor_AbstractHasNoBounds(t *testing.T) {
	in := extractor.BuildInput{
		Info:     ports.TypeInfo{ID: baseID, Name: "Base", Capabilities: values.CapEntity},
		Instance: &fakeInstance{bounds: &values.Box{SizeX: 1, SizeY: 1, SizeZ: 1}},
	}

	desc, err := extractor.BuildDescriptor(context.Background(), in, nil)
	require.NoError(t, err)
	assert.Nil(t, desc.BoundingBox)
	assert.Nil(t, desc.Type)
	assert.Empty(t, desc.TranslationKey)
	assert.NotNil(t, desc.Fields)
}

func TestBuildDescriptor_Errors(t *testing.T) {
	field := ports.TrackedField{Name: "Health", Index: 9, Kind: values.KindFloat}

	tests := []struct {
		name  string
		in    extractor.BuildInput
		field string
	}{
		{
			name:  "fields without an instance",
			in:    extractor.BuildInput{Info: ports.TypeInfo{ID: childID, Name: "Child", Fields: []ports.TrackedField{field}}},
			field: "",
		},
		{
			name: "negative index",
			in: extractor.BuildInput{
				Info: ports.TypeInfo{ID: childID, Name: "Child", Fields: []ports.TrackedField{
					{Name: "health", Index: -1, Kind: values.KindFloat},
				}},
				Instance: &fakeInstance{values: map[string]any{"health": float32(1)}},
			},
			field: "health",
		},
		{
			name: "duplicate name after lowercasing",
			in: extractor.BuildInput{
				Info: ports.TypeInfo{ID: childID, Name: "Child", Fields: []ports.TrackedField{
					{Name: "health", Index: 1, Kind: values.KindFloat},
					{Name: "HEALTH", Index: 2, Kind: values.KindFloat},
				}},
				Instance: &fakeInstance{values: map[string]any{"health": float32(1), "HEALTH": float32(2)}},
			},
			field: "health",
		},
		{
			name: "unknown kind",
			in: extractor.BuildInput{
				Info: ports.TypeInfo{ID: childID, Name: "Child", Fields: []ports.TrackedField{
					{Name: "mystery", Index: 3, Kind: values.Kind(99)},
				}},
				Instance: &fakeInstance{values: map[string]any{"mystery": int32(1)}},
			},
			field: "mystery",
		},
		{
			name: "invalid bounds",
			in: extractor.BuildInput{
				Info:       ports.TypeInfo{ID: childID, Name: "Child"},
				Registered: registered("minecraft:child"),
				Instance:   &fakeInstance{bounds: &values.Box{SizeX: 0, SizeY: 1, SizeZ: 1}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := extractor.BuildDescriptor(context.Background(), tt.in, nil)
			require.Error(t, err)

			var extErr *entities.ExtractionError
			require.True(t, errors.As(err, &extErr))
			assert.Equal(t, childID, extErr.DeclaringType)
			assert.Equal(t, tt.field, extErr.Field)
		})
	}
}

func TestBuildDescriptor_UnknownKindIsUnsupported(t *testing.T) {
	in := extractor.BuildInput{
		Info: ports.TypeInfo{ID: childID, Name: "Child", Fields: []ports.TrackedField{
			{Name: "mystery", Index: 3, Kind: values.Kind(99)},
		}},
		Instance: &fakeInstance{values: map[string]any{"mystery": int32(1)}},
	}

	_, err := extractor.BuildDescriptor(context.Background(), in, nil)
	assert.ErrorIs(t, err, entities.ErrUnsupportedValueKind)
	assert.ErrorIs(t, err, entities.ErrExtractionAborted)
}

func TestCollectAttributes(t *testing.T) {
	reg := registered("minecraft:zombie")
	maxHealth := values.MustParseIdentifier("max_health")

	t.Run("no registered type", func(t *testing.T) {
		attrs, err := extractor.CollectAttributes(context.Background(), &fakeLookup{}, nil)
		require.NoError(t, err)
		assert.NotNil(t, attrs)
		assert.Empty(t, attrs)
	})

	t.Run("no defaults", func(t *testing.T) {
		attrs, err := extractor.CollectAttributes(context.Background(), &fakeLookup{}, reg)
		require.NoError(t, err)
		assert.NotNil(t, attrs)
		assert.Empty(t, attrs)
	})

	t.Run("lookup order kept", func(t *testing.T) {
		lookup := &fakeLookup{defaults: map[string][]ports.AttributeDefault{
			"minecraft:zombie": {
				{RawID: 30, Attribute: values.MustParseIdentifier("spawn_reinforcements"), BaseValue: 0},
				{RawID: 17, Attribute: maxHealth, BaseValue: 20},
			},
		}}
		attrs, err := extractor.CollectAttributes(context.Background(), lookup, reg)
		require.NoError(t, err)
		assert.Equal(t, []entities.AttributeDescriptor{
			{ID: 30, Name: "spawn_reinforcements", BaseValue: 0},
			{ID: 17, Name: "max_health", BaseValue: 20},
		}, attrs)
	})

	malformed := map[string][]ports.AttributeDefault{
		"empty name":   {{RawID: 1}},
		"negative id":  {{RawID: -1, Attribute: maxHealth, BaseValue: 1}},
		"duplicate id": {{RawID: 1, Attribute: maxHealth}, {RawID: 1, Attribute: values.MustParseIdentifier("armor")}},
		"nan":          {{RawID: 1, Attribute: maxHealth, BaseValue: math.NaN()}},
		"infinite":     {{RawID: 1, Attribute: maxHealth, BaseValue: math.Inf(1)}},
	}
	for name, defaults := range malformed {
		t.Run(name, func(t *testing.T) {
			lookup := &fakeLookup{defaults: map[string][]ports.AttributeDefault{"minecraft:zombie": defaults}}
			_, err := extractor.CollectAttributes(context.Background(), lookup, reg)
			require.Error(t, err)

			var lookupErr *entities.AttributeLookupError
			require.True(t, errors.As(err, &lookupErr))
			assert.Equal(t, "minecraft:zombie", lookupErr.Type)
			assert.ErrorIs(t, err, entities.ErrAttributeLookupFailed)
		})
	}

	t.Run("lookup error", func(t *testing.T) {
		cause := errors.New("boom")
		_, err := extractor.CollectAttributes(context.Background(), &fakeLookup{err: cause}, reg)
		assert.ErrorIs(t, err, cause)
		assert.ErrorIs(t, err, entities.ErrAttributeLookupFailed)
	})
}
