package extractor_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/reglet-dev/reglet-entities/entities"
	"github.com/reglet-dev/reglet-entities/ports"
	"github.com/reglet-dev/reglet-entities/values"
	"github.com/stretchr/testify/mock"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeCatalogue implements ports.CatalogueSource over in-memory maps.
type fakeCatalogue struct {
	entries    []ports.CatalogueEntry
	types      map[entities.TypeID]ports.TypeInfo
	registered map[entities.TypeID]ports.RegisteredType

	EntriesErr  error
	DescribeErr error
}

func newFakeCatalogue() *fakeCatalogue {
	return &fakeCatalogue{
		types:      map[entities.TypeID]ports.TypeInfo{},
		registered: map[entities.TypeID]ports.RegisteredType{},
	}
}

// add declares a type and, when listed is true, appends it to the catalogue.
func (c *fakeCatalogue) add(info ports.TypeInfo, reg *ports.RegisteredType, listed bool) *fakeCatalogue {
	if info.Capabilities == 0 {
		info.Capabilities = values.CapEntity
	}
	c.types[info.ID] = info
	if reg != nil {
		c.registered[info.ID] = *reg
	}
	if listed {
		c.entries = append(c.entries, ports.CatalogueEntry{Type: info.ID, Registered: reg})
	}
	return c
}

func (c *fakeCatalogue) Entries(ctx context.Context) ([]ports.CatalogueEntry, error) {
	if c.EntriesErr != nil {
		return nil, c.EntriesErr
	}
	return c.entries, nil
}

func (c *fakeCatalogue) Describe(ctx context.Context, id entities.TypeID) (ports.TypeInfo, error) {
	if c.DescribeErr != nil {
		return ports.TypeInfo{}, c.DescribeErr
	}
	info, ok := c.types[id]
	if !ok {
		return ports.TypeInfo{}, fmt.Errorf("%w: %s", entities.ErrUnknownType, id)
	}
	return info, nil
}

func (c *fakeCatalogue) Registered(ctx context.Context, id entities.TypeID) (ports.RegisteredType, bool, error) {
	reg, ok := c.registered[id]
	return reg, ok, nil
}

// fakeInstance holds field values by lowercase-insensitive field name.
type fakeInstance struct {
	values map[string]any
	bounds *values.Box
}

func (i *fakeInstance) Value(field ports.TrackedField) (any, error) {
	v, ok := i.values[field.Name]
	if !ok {
		return nil, fmt.Errorf("instance has no field %s", field.Name)
	}
	return v, nil
}

func (i *fakeInstance) Bounds() (values.Box, bool) {
	if i.bounds == nil {
		return values.Box{}, false
	}
	return *i.bounds, true
}

// mockSampler records every recipe it is asked to sample.
type mockSampler struct {
	mock.Mock
}

func (m *mockSampler) Sample(ctx context.Context, recipe ports.Recipe) (ports.Instance, error) {
	args := m.Called(ctx, recipe)
	inst, _ := args.Get(0).(ports.Instance)
	return inst, args.Error(1)
}

// fakeLookup returns fixed defaults per registered type.
type fakeLookup struct {
	defaults map[string][]ports.AttributeDefault
	err      error
}

func (l *fakeLookup) DefaultAttributes(ctx context.Context, t ports.RegisteredType) ([]ports.AttributeDefault, error) {
	if l.err != nil {
		return nil, l.err
	}
	return l.defaults[t.ID.String()], nil
}

func registered(id string) *ports.RegisteredType {
	ident := values.MustParseIdentifier(id)
	return &ports.RegisteredType{ID: ident, TranslationKey: "entity." + ident.Namespace() + "." + ident.Path()}
}

// recipeFor matches recipes by target identifier.
func recipeFor(id string) any {
	return mock.MatchedBy(func(r ports.Recipe) bool {
		return r.Target().ID.String() == values.MustParseIdentifier(id).String()
	})
}
