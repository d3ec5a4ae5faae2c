// Package codec converts raw replicated values into their structured output
// representation. The set of kinds is closed; every kind in values.AllKinds
// has exactly one encoding here.
package codec

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/reglet-dev/reglet-entities/entities"
	"github.com/reglet-dev/reglet-entities/values"
)

// Encoded is a value's type tag and its structured form.
// Value is nil for absent optional values.
type Encoded struct {
	Type  string
	Value any
}

// RotationValue is the encoding of a rotation.
type RotationValue struct {
	Pitch float32 `json:"pitch" yaml:"pitch"`
	Yaw   float32 `json:"yaw" yaml:"yaw"`
	Roll  float32 `json:"roll" yaml:"roll"`
}

// BlockPosValue is the encoding of a block position.
type BlockPosValue struct {
	X int32 `json:"x" yaml:"x"`
	Y int32 `json:"y" yaml:"y"`
	Z int32 `json:"z" yaml:"z"`
}

// GlobalPosValue is the encoding of a dimension-qualified block position.
type GlobalPosValue struct {
	Dimension string        `json:"dimension" yaml:"dimension"`
	Position  BlockPosValue `json:"position" yaml:"position"`
}

// VillagerDataValue is the encoding of villager data.
type VillagerDataValue struct {
	Type       string `json:"type" yaml:"type"`
	Profession string `json:"profession" yaml:"profession"`
	Level      int32  `json:"level" yaml:"level"`
}

// Vector3fValue is the encoding of a float vector.
type Vector3fValue struct {
	X float32 `json:"x" yaml:"x"`
	Y float32 `json:"y" yaml:"y"`
	Z float32 `json:"z" yaml:"z"`
}

// QuaternionfValue is the encoding of a float quaternion.
type QuaternionfValue struct {
	X float32 `json:"x" yaml:"x"`
	Y float32 `json:"y" yaml:"y"`
	Z float32 `json:"z" yaml:"z"`
	W float32 `json:"w" yaml:"w"`
}

// Encode converts raw, a value of the given kind, into its structured form.
//
// Block states, item stacks and NBT compounds are encoded as debug strings.
// That loses information but matches what existing consumers parse.
func Encode(kind values.Kind, raw any) (Encoded, error) {
	v, err := encodeValue(kind, raw)
	if err != nil {
		return Encoded{}, err
	}
	return Encoded{Type: kind.Tag(), Value: v}, nil
}

func encodeValue(kind values.Kind, raw any) (any, error) {
	switch kind {
	case values.KindByte:
		return expect[int8](kind, raw, "int8")
	case values.KindInteger:
		return expect[int32](kind, raw, "int32")
	case values.KindLong:
		return expect[int64](kind, raw, "int64")
	case values.KindFloat:
		return expect[float32](kind, raw, "float32")
	case values.KindString:
		return expect[string](kind, raw, "string")
	case values.KindBoolean:
		return expect[bool](kind, raw, "bool")

	case values.KindTextComponent:
		return encodeWith(kind, raw, "values.Text", func(t values.Text) any {
			return t.PlainString()
		})
	case values.KindOptionalTextComponent:
		return encodeOptional(kind, raw, "*values.Text", func(t values.Text) any {
			return t.PlainString()
		})

	case values.KindItemStack:
		return encodeWith(kind, raw, "values.ItemStack", func(s values.ItemStack) any {
			return s.String()
		})

	case values.KindRotation:
		return encodeWith(kind, raw, "values.Rotation", func(r values.Rotation) any {
			return RotationValue{Pitch: r.Pitch, Yaw: r.Yaw, Roll: r.Roll}
		})

	case values.KindBlockPos:
		return encodeWith(kind, raw, "values.BlockPos", blockPos)
	case values.KindOptionalBlockPos:
		return encodeOptional(kind, raw, "*values.BlockPos", blockPos)

	case values.KindFacing:
		return encodeWith(kind, raw, "values.Direction", func(d values.Direction) any {
			return d.String()
		})

	case values.KindOptionalUUID:
		return encodeOptional(kind, raw, "*uuid.UUID", func(id uuid.UUID) any {
			return id.String()
		})

	case values.KindBlockState:
		return encodeWith(kind, raw, "values.BlockState", func(s values.BlockState) any {
			return s.String()
		})
	case values.KindOptionalBlockState:
		return encodeOptional(kind, raw, "*values.BlockState", func(s values.BlockState) any {
			return s.String()
		})

	case values.KindNBTCompound:
		return encodeWith(kind, raw, "values.NBTCompound", func(c values.NBTCompound) any {
			return c.String()
		})

	case values.KindParticle:
		return encodeWith(kind, raw, "values.Particle", func(p values.Particle) any {
			return p.Type.Path()
		})
	case values.KindParticleList:
		return encodeWith(kind, raw, "[]values.Particle", func(ps []values.Particle) any {
			out := make([]string, len(ps))
			for i, p := range ps {
				out[i] = p.Type.Path()
			}
			return out
		})

	case values.KindVillagerData:
		return encodeWith(kind, raw, "values.VillagerData", func(vd values.VillagerData) any {
			return VillagerDataValue{
				Type:       vd.Type.Path(),
				Profession: vd.Profession.Path(),
				Level:      vd.Level,
			}
		})

	case values.KindOptionalInt:
		return encodeOptional(kind, raw, "*int32", func(i int32) any {
			return i
		})

	case values.KindEntityPose:
		return encodeWith(kind, raw, "values.Pose", func(p values.Pose) any {
			return p.String()
		})

	case values.KindCatVariant, values.KindWolfVariant, values.KindFrogVariant:
		return encodeWith(kind, raw, "values.RegistryEntry", func(e values.RegistryEntry) any {
			return e.IDString()
		})
	case values.KindPaintingVariant:
		return encodeWith(kind, raw, "values.RegistryEntry", func(e values.RegistryEntry) any {
			if e.Key == nil {
				return ""
			}
			return e.Key.Path()
		})

	case values.KindSnifferState:
		return encodeWith(kind, raw, "values.SnifferState", func(s values.SnifferState) any {
			return s.String()
		})
	case values.KindArmadilloState:
		return encodeWith(kind, raw, "values.ArmadilloState", func(s values.ArmadilloState) any {
			return s.String()
		})

	case values.KindOptionalGlobalPos:
		return encodeOptional(kind, raw, "*values.GlobalPos", func(gp values.GlobalPos) any {
			return GlobalPosValue{
				Dimension: gp.Dimension.String(),
				Position:  blockPos(gp.Pos).(BlockPosValue),
			}
		})

	case values.KindVector3f:
		return encodeWith(kind, raw, "values.Vector3f", func(v values.Vector3f) any {
			return Vector3fValue{X: v.X, Y: v.Y, Z: v.Z}
		})
	case values.KindQuaternionf:
		return encodeWith(kind, raw, "values.Quaternionf", func(q values.Quaternionf) any {
			return QuaternionfValue{X: q.X, Y: q.Y, Z: q.Z, W: q.W}
		})
	}

	return nil, &entities.UnsupportedValueKindError{Kind: kind}
}

func blockPos(p values.BlockPos) any {
	return BlockPosValue{X: p.X, Y: p.Y, Z: p.Z}
}

func expect[T any](kind values.Kind, raw any, expected string) (T, error) {
	v, ok := raw.(T)
	if !ok {
		var zero T
		return zero, &entities.ValueTypeError{Kind: kind, Expected: expected, Got: raw}
	}
	return v, nil
}

func encodeWith[T any](kind values.Kind, raw any, expected string, fn func(T) any) (any, error) {
	v, err := expect[T](kind, raw, expected)
	if err != nil {
		return nil, err
	}
	return fn(v), nil
}

// encodeOptional accepts *T (nil means absent) or an untyped nil.
func encodeOptional[T any](kind values.Kind, raw any, expected string, fn func(T) any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	p, err := expect[*T](kind, raw, expected)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return fn(*p), nil
}

// MustEncode is Encode for values known to be well-typed, such as test fixtures.
func MustEncode(kind values.Kind, raw any) Encoded {
	enc, err := Encode(kind, raw)
	if err != nil {
		panic(fmt.Sprintf("codec: %v", err))
	}
	return enc
}
