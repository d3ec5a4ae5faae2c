package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/reglet-dev/reglet-entities/entities"
	"github.com/reglet-dev/reglet-entities/ports"
	"github.com/reglet-dev/reglet-entities/values"
)

// ErrProfileRequired is returned when a player-like type is sampled without a profile.
var ErrProfileRequired = errors.New("player-like type requires a profile recipe")

// Source serves the catalogue, sampler and attribute ports from a Document.
// It is read-only after construction and safe for concurrent use.
type Source struct {
	entries    []ports.CatalogueEntry
	types      map[entities.TypeID]TypeDoc
	registered map[entities.TypeID]*registration
	byID       map[string]*registration
	logger     *slog.Logger
}

type registration struct {
	info       ports.RegisteredType
	declaring  entities.TypeID
	recipe     string
	bounds     *values.Box
	attributes []ports.AttributeDefault
	defaults   map[int]any
}

// Option configures a Source.
type Option func(*Source)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Source) { s.logger = l }
}

var (
	_ ports.CatalogueSource = (*Source)(nil)
	_ ports.InstanceSampler = (*Source)(nil)
	_ ports.AttributeLookup = (*Source)(nil)
)

// NewSource indexes a document. Structural problems (duplicate ids, dangling
// references, malformed identifiers) are reported here; field kinds and
// default values are only interpreted when read.
func NewSource(doc *Document, opts ...Option) (*Source, error) {
	s := &Source{
		types:      make(map[entities.TypeID]TypeDoc, len(doc.Types)),
		registered: make(map[entities.TypeID]*registration, len(doc.Registered)),
		byID:       make(map[string]*registration, len(doc.Registered)),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, t := range doc.Types {
		if t.ID == "" || t.Name == "" {
			return nil, fmt.Errorf("type %q: id and name are required", t.ID)
		}
		id := entities.TypeID(t.ID)
		if _, dup := s.types[id]; dup {
			return nil, fmt.Errorf("type %q declared more than once", t.ID)
		}
		if _, err := values.ParseCapabilities(t.Capabilities); err != nil {
			return nil, fmt.Errorf("type %q: %w", t.ID, err)
		}
		s.types[id] = t
	}

	for i, r := range doc.Registered {
		reg, err := s.index(r)
		if err != nil {
			return nil, fmt.Errorf("registered type %d (%s): %w", i, r.ID, err)
		}
		s.registered[reg.declaring] = reg
		s.byID[reg.info.ID.String()] = reg
	}

	if len(doc.Entries) == 0 {
		for _, r := range doc.Registered {
			s.entries = append(s.entries, s.entry(entities.TypeID(r.Type)))
		}
	} else {
		seen := make(map[entities.TypeID]bool, len(doc.Entries))
		for _, e := range doc.Entries {
			id := entities.TypeID(e)
			if _, ok := s.types[id]; !ok {
				return nil, fmt.Errorf("entry %q: %w", e, entities.ErrUnknownType)
			}
			if seen[id] {
				return nil, fmt.Errorf("entry %q listed more than once", e)
			}
			seen[id] = true
			s.entries = append(s.entries, s.entry(id))
		}
	}

	s.logger.Debug("indexed snapshot",
		"source", doc.Source,
		"types", len(s.types),
		"registered", len(s.registered),
		"entries", len(s.entries))
	return s, nil
}

func (s *Source) index(r RegisteredDoc) (*registration, error) {
	id, err := values.ParseIdentifier(r.ID)
	if err != nil {
		return nil, err
	}
	if _, dup := s.byID[id.String()]; dup {
		return nil, fmt.Errorf("registered more than once")
	}

	declaring := entities.TypeID(r.Type)
	if _, ok := s.types[declaring]; !ok {
		return nil, fmt.Errorf("declaring type %q: %w", r.Type, entities.ErrUnknownType)
	}
	if _, dup := s.registered[declaring]; dup {
		return nil, fmt.Errorf("declaring type %q already has a registered type", r.Type)
	}

	recipe := r.Recipe
	if recipe == "" {
		recipe = RecipeStandard
	}
	if recipe != RecipeStandard && recipe != RecipePlayer {
		return nil, fmt.Errorf("unknown recipe %q", r.Recipe)
	}

	translationKey := r.TranslationKey
	if translationKey == "" {
		translationKey = "entity." + id.Namespace() + "." + strings.ReplaceAll(id.Path(), "/", ".")
	}

	reg := &registration{
		info:      ports.RegisteredType{ID: id, TranslationKey: translationKey},
		declaring: declaring,
		recipe:    recipe,
		defaults:  make(map[int]any, len(r.Defaults)),
	}

	if r.Bounds != nil {
		reg.bounds = &values.Box{SizeX: r.Bounds.SizeX, SizeY: r.Bounds.SizeY, SizeZ: r.Bounds.SizeZ}
	}

	for _, a := range r.Attributes {
		attr, err := values.ParseIdentifier(a.Name)
		if err != nil {
			return nil, fmt.Errorf("attribute %d: %w", a.ID, err)
		}
		reg.attributes = append(reg.attributes, ports.AttributeDefault{
			RawID:     a.ID,
			Attribute: attr,
			BaseValue: a.BaseValue,
		})
	}

	for _, d := range r.Defaults {
		if _, dup := reg.defaults[d.Index]; dup {
			return nil, fmt.Errorf("default for index %d given more than once", d.Index)
		}
		reg.defaults[d.Index] = d.Value
	}
	return reg, nil
}

func (s *Source) entry(id entities.TypeID) ports.CatalogueEntry {
	e := ports.CatalogueEntry{Type: id}
	if reg, ok := s.registered[id]; ok {
		info := reg.info
		e.Registered = &info
	}
	return e
}

// Entries returns the catalogue in document order.
func (s *Source) Entries(ctx context.Context) ([]ports.CatalogueEntry, error) {
	out := make([]ports.CatalogueEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// Describe returns a declaring type's structure.
// A field whose kind tag is not recognized yields an UnsupportedValueKindError.
func (s *Source) Describe(ctx context.Context, id entities.TypeID) (ports.TypeInfo, error) {
	t, ok := s.types[id]
	if !ok {
		return ports.TypeInfo{}, fmt.Errorf("%w: %s", entities.ErrUnknownType, id)
	}

	caps, err := values.ParseCapabilities(t.Capabilities)
	if err != nil {
		return ports.TypeInfo{}, err
	}

	info := ports.TypeInfo{
		ID:           id,
		Name:         t.Name,
		Super:        entities.TypeID(t.Super),
		Capabilities: caps,
		Fields:       make([]ports.TrackedField, 0, len(t.Fields)),
	}
	for _, f := range t.Fields {
		kind, ok := values.ParseKind(f.Kind)
		if !ok {
			return ports.TypeInfo{}, fmt.Errorf("field %s: %w", f.Name, &entities.UnsupportedValueKindError{Tag: f.Kind})
		}
		info.Fields = append(info.Fields, ports.TrackedField{Name: f.Name, Index: f.Index, Kind: kind})
	}
	return info, nil
}

// Registered returns the registered type bound to a declaring type.
func (s *Source) Registered(ctx context.Context, id entities.TypeID) (ports.RegisteredType, bool, error) {
	reg, ok := s.registered[id]
	if !ok {
		return ports.RegisteredType{}, false, nil
	}
	return reg.info, true, nil
}

// Sample returns the recorded instance of the recipe's target.
// Types recorded with the player recipe must be sampled with a complete PlayerRecipe.
func (s *Source) Sample(ctx context.Context, recipe ports.Recipe) (ports.Instance, error) {
	target := recipe.Target()
	reg, ok := s.byID[target.ID.String()]
	if !ok {
		return nil, fmt.Errorf("%w: no registered type %s", entities.ErrUnknownType, target.ID)
	}

	switch r := recipe.(type) {
	case ports.PlayerRecipe:
		if r.ProfileID == uuid.Nil || r.ProfileName == "" {
			return nil, fmt.Errorf("%s: %w", target.ID, ErrProfileRequired)
		}
	case ports.StandardRecipe:
		if reg.recipe == RecipePlayer {
			return nil, fmt.Errorf("%s: %w", target.ID, ErrProfileRequired)
		}
	}

	return &instance{reg: reg}, nil
}

// DefaultAttributes returns the recorded default attributes in document order.
func (s *Source) DefaultAttributes(ctx context.Context, t ports.RegisteredType) ([]ports.AttributeDefault, error) {
	reg, ok := s.byID[t.ID.String()]
	if !ok {
		return nil, fmt.Errorf("%w: no registered type %s", entities.ErrUnknownType, t.ID)
	}
	out := make([]ports.AttributeDefault, len(reg.attributes))
	copy(out, reg.attributes)
	return out, nil
}

// instance is a recorded sample. Each Sample call returns a fresh one.
type instance struct {
	reg *registration
}

func (i *instance) Value(field ports.TrackedField) (any, error) {
	raw, ok := i.reg.defaults[field.Index]
	if !ok {
		return nil, fmt.Errorf("no default recorded for index %d of %s", field.Index, i.reg.info.ID)
	}
	v, err := DecodeValue(field.Kind, raw)
	if err != nil {
		return nil, fmt.Errorf("decoding %s value: %w", field.Kind, err)
	}
	return v, nil
}

func (i *instance) Bounds() (values.Box, bool) {
	if i.reg.bounds == nil {
		return values.Box{}, false
	}
	return *i.reg.bounds, true
}
