package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/reglet-dev/reglet-entities/values"
)

// InstanceSampler constructs one fresh instance of a registered type.
type InstanceSampler interface {
	// Sample returns an instance whose replicated fields hold their
	// post-construction defaults.
	Sample(ctx context.Context, recipe Recipe) (Instance, error)
}

// Instance is read access to a sampled instance.
type Instance interface {
	// Value returns the current raw value of a replicated field.
	Value(field TrackedField) (any, error)

	// Bounds returns the instance's bounding box, if it has one.
	Bounds() (values.Box, bool)
}

// Recipe describes how to construct an instance. The set of recipes is closed.
type Recipe interface {
	// Target returns the registered type to construct.
	Target() RegisteredType
	isRecipe()
}

// StandardRecipe constructs a registered type with no extra parameters.
type StandardRecipe struct {
	Type RegisteredType
}

func (r StandardRecipe) Target() RegisteredType { return r.Type }
func (StandardRecipe) isRecipe()                {}

// PlayerRecipe constructs a player-like type, which needs a profile and a spawn point.
type PlayerRecipe struct {
	Type        RegisteredType
	ProfileID   uuid.UUID
	ProfileName string
	Spawn       values.BlockPos
}

func (r PlayerRecipe) Target() RegisteredType { return r.Type }
func (PlayerRecipe) isRecipe()                {}

// DefaultProfileName is the profile name given to sampled players.
const DefaultProfileName = "cooldude"

// DefaultSpawn is where sampled players are placed.
var DefaultSpawn = values.BlockPos{X: 0, Y: 70, Z: 0}

// NewPlayerRecipe builds a player recipe with a random profile id.
func NewPlayerRecipe(t RegisteredType) PlayerRecipe {
	return PlayerRecipe{
		Type:        t,
		ProfileID:   uuid.New(),
		ProfileName: DefaultProfileName,
		Spawn:       DefaultSpawn,
	}
}
