package snapshot_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/reglet-dev/reglet-entities/entities"
	"github.com/reglet-dev/reglet-entities/ports"
	"github.com/reglet-dev/reglet-entities/snapshot"
	"github.com/reglet-dev/reglet-entities/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocument() *snapshot.Document {
	return &snapshot.Document{
		FormatVersion: "1.0.0",
		Source:        "unit",
		Types: []snapshot.TypeDoc{
			{
				ID:           "net.sim.entity.Entity",
				Name:         "Entity",
				Capabilities: []string{"entity"},
				Fields:       []snapshot.FieldDoc{{Name: "FLAGS", Index: 0, Kind: "byte"}},
			},
			{
				ID:           "net.sim.entity.LivingEntity",
				Name:         "LivingEntity",
				Super:        "net.sim.entity.Entity",
				Capabilities: []string{"entity", "living"},
				Fields:       []snapshot.FieldDoc{{Name: "HEALTH", Index: 9, Kind: "float"}},
			},
			{
				ID:           "net.sim.entity.player.Player",
				Name:         "Player",
				Super:        "net.sim.entity.LivingEntity",
				Capabilities: []string{"entity", "living", "player"},
			},
			{
				ID:           "net.sim.entity.Odd",
				Name:         "Odd",
				Capabilities: []string{"entity"},
				Fields:       []snapshot.FieldDoc{{Name: "MYSTERY", Index: 3, Kind: "hologram"}},
			},
		},
		Registered: []snapshot.RegisteredDoc{
			{
				ID:     "minecraft:player",
				Type:   "net.sim.entity.player.Player",
				Recipe: snapshot.RecipePlayer,
				Bounds: &snapshot.BoundsDoc{SizeX: 0.6, SizeY: 1.8, SizeZ: 0.6},
				Attributes: []snapshot.AttributeDoc{
					{ID: 17, Name: "max_health", BaseValue: 20},
					{ID: 21, Name: "minecraft:movement_speed", BaseValue: 0.1},
				},
				Defaults: []snapshot.DefaultDoc{
					{Index: 0, Value: 0},
					{Index: 9, Value: 20.0},
				},
			},
		},
	}
}

func newSource(t *testing.T, doc *snapshot.Document) *snapshot.Source {
	t.Helper()
	src, err := snapshot.NewSource(doc)
	require.NoError(t, err)
	return src
}

func TestSource_Catalogue(t *testing.T) {
	ctx := context.Background()
	src := newSource(t, testDocument())

	entries, err := src.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entities.TypeID("net.sim.entity.player.Player"), entries[0].Type)
	require.NotNil(t, entries[0].Registered)
	assert.Equal(t, "entity.minecraft.player", entries[0].Registered.TranslationKey)

	info, err := src.Describe(ctx, "net.sim.entity.LivingEntity")
	require.NoError(t, err)
	assert.Equal(t, "LivingEntity", info.Name)
	assert.Equal(t, entities.TypeID("net.sim.entity.Entity"), info.Super)
	assert.True(t, info.Capabilities.Has(values.CapLiving))
	assert.Equal(t, []ports.TrackedField{{Name: "HEALTH", Index: 9, Kind: values.KindFloat}}, info.Fields)

	_, err = src.Describe(ctx, "net.sim.entity.Missing")
	assert.ErrorIs(t, err, entities.ErrUnknownType)

	_, ok, err := src.Registered(ctx, "net.sim.entity.Entity")
	require.NoError(t, err)
	assert.False(t, ok)

	reg, ok, err := src.Registered(ctx, "net.sim.entity.player.Player")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "minecraft:player", reg.ID.String())
}

func TestSource_DescribeUnknownKindTag(t *testing.T) {
	src := newSource(t, testDocument())

	_, err := src.Describe(context.Background(), "net.sim.entity.Odd")
	require.Error(t, err)

	var kindErr *entities.UnsupportedValueKindError
	require.True(t, errors.As(err, &kindErr))
	assert.Equal(t, "hologram", kindErr.Tag)
}

func TestSource_ExplicitEntries(t *testing.T) {
	doc := testDocument()
	doc.Entries = []string{"net.sim.entity.Entity", "net.sim.entity.player.Player"}
	src := newSource(t, doc)

	entries, err := src.Entries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Nil(t, entries[0].Registered)
	assert.NotNil(t, entries[1].Registered)
}

func TestSource_Sample(t *testing.T) {
	ctx := context.Background()
	src := newSource(t, testDocument())
	player, _, err := src.Registered(ctx, "net.sim.entity.player.Player")
	require.NoError(t, err)

	t.Run("player recipe", func(t *testing.T) {
		inst, err := src.Sample(ctx, ports.NewPlayerRecipe(player))
		require.NoError(t, err)

		v, err := inst.Value(ports.TrackedField{Name: "HEALTH", Index: 9, Kind: values.KindFloat})
		require.NoError(t, err)
		assert.Equal(t, float32(20), v)

		box, ok := inst.Bounds()
		require.True(t, ok)
		assert.Equal(t, values.Box{SizeX: 0.6, SizeY: 1.8, SizeZ: 0.6}, box)

		_, err = inst.Value(ports.TrackedField{Name: "MISSING", Index: 40, Kind: values.KindByte})
		assert.Error(t, err)

		_, err = inst.Value(ports.TrackedField{Name: "FLAGS", Index: 0, Kind: values.KindBlockPos})
		assert.Error(t, err)
	})

	t.Run("standard recipe refused", func(t *testing.T) {
		_, err := src.Sample(ctx, ports.StandardRecipe{Type: player})
		assert.ErrorIs(t, err, snapshot.ErrProfileRequired)
	})

	t.Run("incomplete profile refused", func(t *testing.T) {
		_, err := src.Sample(ctx, ports.PlayerRecipe{Type: player, ProfileID: uuid.Nil, ProfileName: "x"})
		assert.ErrorIs(t, err, snapshot.ErrProfileRequired)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := src.Sample(ctx, ports.StandardRecipe{Type: ports.RegisteredType{ID: values.MustParseIdentifier("pig")}})
		assert.ErrorIs(t, err, entities.ErrUnknownType)
	})
}

func TestSource_DefaultAttributes(t *testing.T) {
	ctx := context.Background()
	src := newSource(t, testDocument())
	player, _, err := src.Registered(ctx, "net.sim.entity.player.Player")
	require.NoError(t, err)

	attrs, err := src.DefaultAttributes(ctx, player)
	require.NoError(t, err)
	require.Len(t, attrs, 2)
	assert.Equal(t, 17, attrs[0].RawID)
	assert.Equal(t, "max_health", attrs[0].Attribute.Path())
	assert.Equal(t, "movement_speed", attrs[1].Attribute.Path())
	assert.Equal(t, 0.1, attrs[1].BaseValue)
}

func TestNewSource_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *snapshot.Document)
	}{
		{"duplicate type", func(d *snapshot.Document) { d.Types = append(d.Types, d.Types[0]) }},
		{"unnamed type", func(d *snapshot.Document) { d.Types[0].Name = "" }},
		{"unknown capability", func(d *snapshot.Document) { d.Types[0].Capabilities = []string{"flying"} }},
		{"registered type without declaring type", func(d *snapshot.Document) { d.Registered[0].Type = "net.sim.Nope" }},
		{"bad registered id", func(d *snapshot.Document) { d.Registered[0].ID = "Player!" }},
		{"duplicate registered id", func(d *snapshot.Document) {
			dup := d.Registered[0]
			dup.Type = "net.sim.entity.Entity"
			d.Registered = append(d.Registered, dup)
		}},
		{"unknown recipe", func(d *snapshot.Document) { d.Registered[0].Recipe = "summon" }},
		{"duplicate default", func(d *snapshot.Document) {
			d.Registered[0].Defaults = append(d.Registered[0].Defaults, snapshot.DefaultDoc{Index: 0, Value: 1})
		}},
		{"bad attribute name", func(d *snapshot.Document) { d.Registered[0].Attributes[0].Name = "Max Health" }},
		{"unknown entry", func(d *snapshot.Document) { d.Entries = []string{"net.sim.Nope"} }},
		{"repeated entry", func(d *snapshot.Document) {
			d.Entries = []string{"net.sim.entity.Entity", "net.sim.entity.Entity"}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := testDocument()
			tt.mutate(doc)
			src, err := snapshot.NewSource(doc)
			assert.Error(t, err)
			assert.Nil(t, src)
		})
	}
}
