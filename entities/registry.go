package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Registry is the immutable, ordered set of kind descriptors produced by one
// extraction run. Iteration order is the byte-wise order of declaring types.
type Registry struct {
	kinds  []KindDescriptor
	byName map[string]int
}

// NamedRecord pairs a kind name with its serialized descriptor.
type NamedRecord struct {
	Name   string
	Record KindRecord
}

// NewRegistry sorts the descriptors and checks the registry invariants:
// unique declaring types and names, every parent present, no cycles, and no
// field index repeated along an ancestor chain.
func NewRegistry(descriptors []KindDescriptor) (*Registry, error) {
	kinds := make([]KindDescriptor, 0, len(descriptors))
	for _, d := range descriptors {
		kinds = append(kinds, d.clone())
	}
	sort.SliceStable(kinds, func(i, j int) bool {
		return kinds[i].Declaring < kinds[j].Declaring
	})

	r := &Registry{
		kinds:  kinds,
		byName: make(map[string]int, len(kinds)),
	}

	for i, d := range kinds {
		if d.Name == "" {
			return nil, fmt.Errorf("kind %s has no name", d.Declaring)
		}
		if i > 0 && kinds[i-1].Declaring == d.Declaring {
			return nil, fmt.Errorf("declaring type %s appears more than once", d.Declaring)
		}
		if prev, exists := r.byName[d.Name]; exists {
			return nil, fmt.Errorf("kind name %q is shared by %s and %s", d.Name, kinds[prev].Declaring, d.Declaring)
		}
		r.byName[d.Name] = i
	}

	if err := r.verifyForest(); err != nil {
		return nil, err
	}
	if err := r.verifyFieldIndices(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Registry) verifyForest() error {
	for _, d := range r.kinds {
		current := d
		for depth := 0; !current.IsRoot(); depth++ {
			if depth >= len(r.kinds) {
				return fmt.Errorf("kind %q is part of an ancestor cycle", d.Name)
			}
			idx, ok := r.byName[current.Parent]
			if !ok {
				return fmt.Errorf("kind %q names missing parent %q", current.Name, current.Parent)
			}
			current = r.kinds[idx]
		}
	}
	return nil
}

func (r *Registry) verifyFieldIndices() error {
	for _, d := range r.kinds {
		owners := make(map[int]string)
		for _, k := range r.chain(d) {
			for _, f := range k.Fields {
				if owner, dup := owners[f.Index]; dup {
					return fmt.Errorf("field index %d of %q repeats index declared on %q", f.Index, k.Name, owner)
				}
				owners[f.Index] = k.Name
			}
		}
	}
	return nil
}

// chain returns d followed by its ancestors. Only valid after verifyForest.
func (r *Registry) chain(d KindDescriptor) []KindDescriptor {
	out := []KindDescriptor{d}
	for !d.IsRoot() {
		d = r.kinds[r.byName[d.Parent]]
		out = append(out, d)
	}
	return out
}

// Len returns the number of kinds.
func (r *Registry) Len() int {
	return len(r.kinds)
}

// Get returns a copy of the named kind's descriptor.
func (r *Registry) Get(name string) (KindDescriptor, bool) {
	idx, ok := r.byName[name]
	if !ok {
		return KindDescriptor{}, false
	}
	return r.kinds[idx].clone(), true
}

// Names returns kind names in registry order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.kinds))
	for i, d := range r.kinds {
		names[i] = d.Name
	}
	return names
}

// Descriptors returns copies of all descriptors in registry order.
func (r *Registry) Descriptors() []KindDescriptor {
	out := make([]KindDescriptor, len(r.kinds))
	for i, d := range r.kinds {
		out[i] = d.clone()
	}
	return out
}

// Ancestors returns the named kind's ancestors from its parent up to the root.
func (r *Registry) Ancestors(name string) []KindDescriptor {
	idx, ok := r.byName[name]
	if !ok {
		return nil
	}
	chain := r.chain(r.kinds[idx])
	out := make([]KindDescriptor, 0, len(chain)-1)
	for _, d := range chain[1:] {
		out = append(out, d.clone())
	}
	return out
}

// Records returns the serialized descriptors in registry order.
func (r *Registry) Records() []NamedRecord {
	out := make([]NamedRecord, len(r.kinds))
	for i, d := range r.kinds {
		out[i] = NamedRecord{Name: d.Name, Record: d.Record()}
	}
	return out
}

// Document returns the serialized descriptors keyed by name.
// Map encoders impose their own key order; use Records or MarshalJSON to keep registry order.
func (r *Registry) Document() map[string]KindRecord {
	out := make(map[string]KindRecord, len(r.kinds))
	for _, d := range r.kinds {
		out[d.Name] = d.Record()
	}
	return out
}

// MarshalJSON writes the registry as one JSON object keyed by kind name, in registry order.
func (r *Registry) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, nr := range r.Records() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(nr.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(nr.Record)
		if err != nil {
			return nil, fmt.Errorf("encoding kind %q: %w", nr.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
