package values

import (
	"fmt"
	"strings"
)

// Capability is a set of host-defined capability tags carried by a declaring type.
type Capability uint8

const (
	// CapEntity marks types that belong to the entity hierarchy.
	CapEntity Capability = 1 << iota
	// CapLiving marks types with attributes.
	CapLiving
	// CapPlayer marks the player-like family that needs a profile to construct.
	CapPlayer
)

var capabilityNames = []struct {
	cap  Capability
	name string
}{
	{CapEntity, "entity"},
	{CapLiving, "living"},
	{CapPlayer, "player"},
}

// Has reports whether every bit of other is set.
func (c Capability) Has(other Capability) bool {
	return c&other == other
}

// ParseCapabilities folds capability names into a set.
func ParseCapabilities(names []string) (Capability, error) {
	var c Capability
	for _, name := range names {
		found := false
		for _, cn := range capabilityNames {
			if cn.name == name {
				c |= cn.cap
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown capability %q", name)
		}
	}
	return c, nil
}

func (c Capability) String() string {
	var parts []string
	for _, cn := range capabilityNames {
		if c.Has(cn.cap) {
			parts = append(parts, cn.name)
		}
	}
	return strings.Join(parts, "|")
}
