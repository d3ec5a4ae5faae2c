package extractor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/reglet-dev/reglet-entities/entities"
	"github.com/reglet-dev/reglet-entities/ports"
	"github.com/reglet-dev/reglet-entities/values"
)

// Walker assembles the kind registry from a catalogue.
// A Walker holds no state between walks and may be reused.
type Walker struct {
	source       ports.CatalogueSource
	sampler      ports.InstanceSampler
	lookup       ports.AttributeLookup
	logger       *slog.Logger
	include      []string
	maxDepth     int
	selectRecipe RecipeSelector
}

// NewWalker creates a walker over a catalogue and a sampler.
func NewWalker(source ports.CatalogueSource, sampler ports.InstanceSampler, opts ...WalkerOption) *Walker {
	w := &Walker{
		source:       source,
		sampler:      sampler,
		logger:       slog.Default(),
		maxDepth:     DefaultMaxDepth,
		selectRecipe: DefaultRecipe,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// walk is the state of a single Walk call.
type walk struct {
	*Walker
	visited map[entities.TypeID]bool
	built   []entities.KindDescriptor
	infos   map[entities.TypeID]ports.TypeInfo
	samples int
}

// Walk builds one descriptor per declaring type reachable from the catalogue
// and returns them as a registry. Any failure aborts the walk; no partial
// registry is returned.
func (w *Walker) Walk(ctx context.Context) (*entities.Registry, error) {
	for _, p := range w.include {
		if !doublestar.ValidatePattern(p) {
			return nil, &entities.ExtractionError{Op: "filtering", Err: fmt.Errorf("invalid include pattern %q", p)}
		}
	}

	entries, err := w.source.Entries(ctx)
	if err != nil {
		return nil, &entities.ExtractionError{Op: "listing catalogue", Err: err}
	}

	st := &walk{
		Walker:  w,
		visited: make(map[entities.TypeID]bool, len(entries)),
		infos:   make(map[entities.TypeID]ports.TypeInfo, len(entries)),
	}

	var abstract []ports.CatalogueEntry
	for _, entry := range entries {
		if entry.Registered == nil {
			abstract = append(abstract, entry)
			continue
		}
		if err := st.walkEntry(ctx, entry); err != nil {
			return nil, err
		}
	}
	for _, entry := range abstract {
		if err := st.walkEntry(ctx, entry); err != nil {
			return nil, err
		}
	}

	registry, err := entities.NewRegistry(st.built)
	if err != nil {
		return nil, &entities.ExtractionError{Op: "assembling registry", Err: err}
	}

	w.logger.Info("extracted kind registry",
		"kinds", registry.Len(),
		"entries", len(entries),
		"samples", st.samples)
	return registry, nil
}

func (st *walk) walkEntry(ctx context.Context, entry ports.CatalogueEntry) error {
	if st.visited[entry.Type] {
		return nil
	}

	info, err := st.describe(ctx, entry.Type)
	if err != nil {
		return err
	}
	if !info.Capabilities.Has(values.CapEntity) {
		return &entities.ExtractionError{
			DeclaringType: entry.Type,
			Op:            "walking",
			Err:           fmt.Errorf("catalogue entry is not part of the entity hierarchy"),
		}
	}
	if !st.included(info.Name) {
		return nil
	}

	var instance ports.Instance
	if entry.Registered != nil {
		instance, err = st.sample(ctx, info, *entry.Registered)
		if err != nil {
			return err
		}
	}

	return st.climb(ctx, info, entry.Registered, instance)
}

// climb builds info and then each unbuilt ancestor in turn. Every ancestor,
// registered or not, reads its fields off the descendant's instance. A
// registered ancestor is sampled only when the climb started without one.
func (st *walk) climb(ctx context.Context, info ports.TypeInfo, registered *ports.RegisteredType, instance ports.Instance) error {
	chain := map[entities.TypeID]bool{}
	for depth := 0; ; depth++ {
		if depth >= st.maxDepth {
			return &entities.ExtractionError{
				DeclaringType: info.ID,
				Op:            "climbing",
				Err:           fmt.Errorf("supertype chain deeper than %d", st.maxDepth),
			}
		}
		chain[info.ID] = true

		parent, err := st.parentOf(ctx, info)
		if err != nil {
			return err
		}

		desc, err := BuildDescriptor(ctx, BuildInput{
			Info:       info,
			Parent:     parent,
			Registered: registered,
			Instance:   instance,
		}, st.lookup)
		if err != nil {
			return err
		}
		st.visited[info.ID] = true
		st.built = append(st.built, desc)
		st.logger.Debug("built kind",
			"kind", desc.Name,
			"type", string(desc.Declaring),
			"fields", len(desc.Fields),
			"living", desc.Living)

		if parent == nil {
			return nil
		}
		if chain[parent.ID] {
			return &entities.ExtractionError{
				DeclaringType: parent.ID,
				Op:            "climbing",
				Err:           fmt.Errorf("supertype cycle through %s", info.ID),
			}
		}
		if st.visited[parent.ID] {
			return nil
		}

		reg, ok, err := st.source.Registered(ctx, parent.ID)
		if err != nil {
			return &entities.ExtractionError{DeclaringType: parent.ID, Op: "resolving registration of", Err: err}
		}
		if ok {
			registered = &reg
			if instance == nil {
				instance, err = st.sample(ctx, *parent, reg)
				if err != nil {
					return err
				}
			}
		} else {
			registered = nil
		}
		info = *parent
	}
}

// parentOf returns the immediate supertype when it belongs to the entity hierarchy.
func (st *walk) parentOf(ctx context.Context, info ports.TypeInfo) (*ports.TypeInfo, error) {
	if info.Super == "" {
		return nil, nil
	}
	super, err := st.describe(ctx, info.Super)
	if err != nil {
		return nil, err
	}
	if !super.Capabilities.Has(values.CapEntity) {
		return nil, nil
	}
	return &super, nil
}

func (st *walk) describe(ctx context.Context, id entities.TypeID) (ports.TypeInfo, error) {
	if info, ok := st.infos[id]; ok {
		return info, nil
	}
	info, err := st.source.Describe(ctx, id)
	if err != nil {
		return ports.TypeInfo{}, &entities.ExtractionError{DeclaringType: id, Op: "describing", Err: err}
	}
	st.infos[id] = info
	return info, nil
}

func (st *walk) sample(ctx context.Context, info ports.TypeInfo, registered ports.RegisteredType) (ports.Instance, error) {
	recipe := st.selectRecipe(info, registered)
	instance, err := st.sampler.Sample(ctx, recipe)
	if err != nil {
		return nil, &entities.ExtractionError{
			DeclaringType: info.ID,
			Op:            "sampling",
			Err:           fmt.Errorf("%s: %w", registered.ID, err),
		}
	}
	st.samples++
	return instance, nil
}

func (st *walk) included(name string) bool {
	if len(st.include) == 0 {
		return true
	}
	for _, p := range st.include {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}
