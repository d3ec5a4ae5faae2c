package entities_test

import (
	"encoding/json"
	"testing"

	"github.com/reglet-dev/reglet-entities/entities"
	"github.com/reglet-dev/reglet-entities/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeID(s string) *values.Identifier {
	id := values.MustParseIdentifier(s)
	return &id
}

func sampleDescriptors() []entities.KindDescriptor {
	return []entities.KindDescriptor{
		{
			Declaring:      "net.sim.entity.passive.ChildEntity",
			Name:           "Child",
			Parent:         "Base",
			Type:           typeID("minecraft:child"),
			TranslationKey: "entity.minecraft.child",
			Fields: []entities.FieldDescriptor{
				{Name: "health", Index: 1, Type: "float", DefaultValue: float32(20)},
			},
			Living: true,
			Attributes: []entities.AttributeDescriptor{
				{ID: 17, Name: "max_health", BaseValue: 20},
			},
			BoundingBox: &entities.BoundingBox{SizeX: 0.6, SizeY: 1.8, SizeZ: 0.6},
		},
		{
			Declaring: "net.sim.entity.Base",
			Name:      "Base",
			Fields: []entities.FieldDescriptor{
				{Name: "flags", Index: 0, Type: "byte", DefaultValue: int8(0)},
			},
		},
	}
}

func TestNewRegistry_SortsByDeclaringType(t *testing.T) {
	reg, err := entities.NewRegistry(sampleDescriptors())
	require.NoError(t, err)

	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, []string{"Base", "Child"}, reg.Names())

	child, ok := reg.Get("Child")
	require.True(t, ok)
	assert.Equal(t, "Base", child.Parent)

	ancestors := reg.Ancestors("Child")
	require.Len(t, ancestors, 1)
	assert.Equal(t, "Base", ancestors[0].Name)
	assert.Nil(t, reg.Ancestors("Missing"))
}

func TestNewRegistry_IsImmutable(t *testing.T) {
	descs := sampleDescriptors()
	reg, err := entities.NewRegistry(descs)
	require.NoError(t, err)

	descs[0].Fields[0].Name = "mutated"
	got, _ := reg.Get("Child")
	assert.Equal(t, "health", got.Fields[0].Name)

	got.Fields[0].Name = "mutated"
	again, _ := reg.Get("Child")
	assert.Equal(t, "health", again.Fields[0].Name)
}

func TestNewRegistry_Invariants(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]entities.KindDescriptor) []entities.KindDescriptor
		errMsg string
	}{
		{
			name: "missing parent",
			mutate: func(d []entities.KindDescriptor) []entities.KindDescriptor {
				return d[:1]
			},
			errMsg: "missing parent",
		},
		{
			name: "duplicate name",
			mutate: func(d []entities.KindDescriptor) []entities.KindDescriptor {
				return append(d, entities.KindDescriptor{Declaring: "other.Base", Name: "Base"})
			},
			errMsg: "shared by",
		},
		{
			name: "duplicate declaring type",
			mutate: func(d []entities.KindDescriptor) []entities.KindDescriptor {
				return append(d, entities.KindDescriptor{Declaring: "net.sim.entity.Base", Name: "Other"})
			},
			errMsg: "more than once",
		},
		{
			name: "cycle",
			mutate: func(d []entities.KindDescriptor) []entities.KindDescriptor {
				d[1].Parent = "Child"
				return d
			},
			errMsg: "cycle",
		},
		{
			name: "repeated field index along chain",
			mutate: func(d []entities.KindDescriptor) []entities.KindDescriptor {
				d[0].Fields[0].Index = 0
				return d
			},
			errMsg: "field index 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := entities.NewRegistry(tt.mutate(sampleDescriptors()))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestRegistry_MarshalJSON(t *testing.T) {
	reg, err := entities.NewRegistry(sampleDescriptors())
	require.NoError(t, err)

	data, err := json.Marshal(reg)
	require.NoError(t, err)

	expected := `{` +
		`"Base":{"fields":[{"name":"flags","index":0,"type":"byte","default_value":0}]},` +
		`"Child":{"parent":"Base","type":"child","translation_key":"entity.minecraft.child",` +
		`"fields":[{"name":"health","index":1,"type":"float","default_value":20}],` +
		`"attributes":[{"id":17,"name":"max_health","base_value":20}],` +
		`"default_bounding_box":{"size_x":0.6,"size_y":1.8,"size_z":0.6}}` +
		`}`
	assert.JSONEq(t, expected, string(data))
	assert.Equal(t, expected, string(data), "key order must follow registry order")
}

func TestKindDescriptor_Record_AttributesPresence(t *testing.T) {
	living := entities.KindDescriptor{Name: "Living", Living: true}
	rec := living.Record()
	require.NotNil(t, rec.Attributes)
	assert.Empty(t, *rec.Attributes)
	assert.NotNil(t, rec.Fields)

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"fields":[],"attributes":[]}`, string(data))

	plain := entities.KindDescriptor{Name: "Plain"}
	data, err = json.Marshal(plain.Record())
	require.NoError(t, err)
	assert.JSONEq(t, `{"fields":[]}`, string(data))
}

func TestRegistry_Document(t *testing.T) {
	reg, err := entities.NewRegistry(sampleDescriptors())
	require.NoError(t, err)

	doc := reg.Document()
	require.Contains(t, doc, "Child")
	assert.Equal(t, "child", doc["Child"].Type)

	records := reg.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "Base", records[0].Name)
}
