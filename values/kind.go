// Package values defines the closed set of replicated value kinds and the raw
// Go types a host simulation hands to the codec for each of them.
package values

import "fmt"

// Kind identifies one of the fixed replicated value kinds.
// The set is closed: adding a kind means extending this list and the codec.
type Kind int

const (
	KindInvalid Kind = iota
	KindByte
	KindInteger
	KindLong
	KindFloat
	KindString
	KindTextComponent
	KindOptionalTextComponent
	KindItemStack
	KindBoolean
	KindRotation
	KindBlockPos
	KindOptionalBlockPos
	KindFacing
	KindOptionalUUID
	KindBlockState
	KindOptionalBlockState
	KindNBTCompound
	KindParticle
	KindParticleList
	KindVillagerData
	KindOptionalInt
	KindEntityPose
	KindCatVariant
	KindWolfVariant
	KindFrogVariant
	KindOptionalGlobalPos
	KindPaintingVariant
	KindSnifferState
	KindArmadilloState
	KindVector3f
	KindQuaternionf

	kindCount
)

var kindTags = [kindCount]string{
	KindInvalid:               "",
	KindByte:                  "byte",
	KindInteger:               "integer",
	KindLong:                  "long",
	KindFloat:                 "float",
	KindString:                "string",
	KindTextComponent:         "text_component",
	KindOptionalTextComponent: "optional_text_component",
	KindItemStack:             "item_stack",
	KindBoolean:               "boolean",
	KindRotation:              "rotation",
	KindBlockPos:              "block_pos",
	KindOptionalBlockPos:      "optional_block_pos",
	KindFacing:                "facing",
	KindOptionalUUID:          "optional_uuid",
	KindBlockState:            "block_state",
	KindOptionalBlockState:    "optional_block_state",
	KindNBTCompound:           "nbt_compound",
	KindParticle:              "particle",
	KindParticleList:          "particle_list",
	KindVillagerData:          "villager_data",
	KindOptionalInt:           "optional_int",
	KindEntityPose:            "entity_pose",
	KindCatVariant:            "cat_variant",
	KindWolfVariant:           "wolf_variant",
	KindFrogVariant:           "frog_variant",
	KindOptionalGlobalPos:     "optional_global_pos",
	KindPaintingVariant:       "painting_variant",
	KindSnifferState:          "sniffer_state",
	KindArmadilloState:        "armadillo_state",
	KindVector3f:              "vector3f",
	KindQuaternionf:           "quaternionf",
}

var kindsByTag = func() map[string]Kind {
	m := make(map[string]Kind, kindCount)
	for k := KindByte; k < kindCount; k++ {
		m[kindTags[k]] = k
	}
	return m
}()

// AllKinds returns every supported kind in declaration order.
func AllKinds() []Kind {
	kinds := make([]Kind, 0, kindCount-1)
	for k := KindByte; k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// ParseKind resolves a wire tag (e.g. "optional_block_pos") to its Kind.
func ParseKind(tag string) (Kind, bool) {
	k, ok := kindsByTag[tag]
	return k, ok
}

// Valid reports whether k belongs to the supported set.
func (k Kind) Valid() bool {
	return k > KindInvalid && k < kindCount
}

// Tag returns the wire tag of the kind, or "" for unsupported kinds.
func (k Kind) Tag() string {
	if !k.Valid() {
		return ""
	}
	return kindTags[k]
}

// String returns the tag, or a numeric placeholder for unsupported kinds.
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindTags[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("cannot marshal unsupported value kind %d", int(k))
	}
	return []byte(kindTags[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, ok := ParseKind(string(text))
	if !ok {
		return fmt.Errorf("unknown value kind %q", string(text))
	}
	*k = parsed
	return nil
}
