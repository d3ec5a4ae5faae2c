package snapshot

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/reglet-dev/reglet-entities/entities"
	"github.com/reglet-dev/reglet-entities/values"
)

// DecodeValue converts a generically decoded snapshot value (as produced by
// encoding/json with UseNumber or by gopkg.in/yaml.v3) into the raw Go type
// the codec expects for kind.
func DecodeValue(kind values.Kind, v any) (any, error) {
	switch kind {
	case values.KindByte:
		n, err := toInt(v, math.MinInt8, math.MaxInt8)
		return int8(n), err
	case values.KindInteger:
		n, err := toInt(v, math.MinInt32, math.MaxInt32)
		return int32(n), err
	case values.KindLong:
		return toInt(v, math.MinInt64, math.MaxInt64)
	case values.KindFloat:
		return toFloat32(v)
	case values.KindString:
		return asString(v)
	case values.KindBoolean:
		b, ok := v.(bool)
		if !ok {
			return nil, typeErr("boolean", v)
		}
		return b, nil

	case values.KindTextComponent:
		return decodeText(v)
	case values.KindOptionalTextComponent:
		return optional(v, decodeText)

	case values.KindItemStack:
		return decodeItemStack(v)

	case values.KindRotation:
		m, err := asMap(v)
		if err != nil {
			return nil, err
		}
		var r values.Rotation
		if r.Pitch, err = float32Field(m, "pitch"); err != nil {
			return nil, err
		}
		if r.Yaw, err = float32Field(m, "yaw"); err != nil {
			return nil, err
		}
		if r.Roll, err = float32Field(m, "roll"); err != nil {
			return nil, err
		}
		return r, nil

	case values.KindBlockPos:
		return decodeBlockPos(v)
	case values.KindOptionalBlockPos:
		return optional(v, decodeBlockPos)

	case values.KindFacing:
		s, err := asString(v)
		if err != nil {
			return nil, err
		}
		return values.ParseDirection(s)

	case values.KindOptionalUUID:
		return optional(v, func(v any) (uuid.UUID, error) {
			s, err := asString(v)
			if err != nil {
				return uuid.Nil, err
			}
			return uuid.Parse(s)
		})

	case values.KindBlockState:
		return decodeBlockState(v)
	case values.KindOptionalBlockState:
		return optional(v, decodeBlockState)

	case values.KindNBTCompound:
		m, err := asMap(v)
		if err != nil {
			return nil, err
		}
		return values.NBTCompound(decodeNBT(m).(map[string]any)), nil

	case values.KindParticle:
		return decodeParticle(v)
	case values.KindParticleList:
		list, ok := v.([]any)
		if !ok {
			return nil, typeErr("list", v)
		}
		out := make([]values.Particle, 0, len(list))
		for i, elem := range list {
			p, err := decodeParticle(elem)
			if err != nil {
				return nil, fmt.Errorf("particle %d: %w", i, err)
			}
			out = append(out, p)
		}
		return out, nil

	case values.KindVillagerData:
		m, err := asMap(v)
		if err != nil {
			return nil, err
		}
		var vd values.VillagerData
		if vd.Type, err = identifierField(m, "type"); err != nil {
			return nil, err
		}
		if vd.Profession, err = identifierField(m, "profession"); err != nil {
			return nil, err
		}
		level, err := toInt(m["level"], math.MinInt32, math.MaxInt32)
		if err != nil {
			return nil, fmt.Errorf("level: %w", err)
		}
		vd.Level = int32(level)
		return vd, nil

	case values.KindOptionalInt:
		return optional(v, func(v any) (int32, error) {
			n, err := toInt(v, math.MinInt32, math.MaxInt32)
			return int32(n), err
		})

	case values.KindEntityPose:
		s, err := asString(v)
		if err != nil {
			return nil, err
		}
		return values.ParsePose(s)

	case values.KindCatVariant, values.KindWolfVariant, values.KindFrogVariant, values.KindPaintingVariant:
		if v == nil {
			return values.RegistryEntry{}, nil
		}
		id, err := decodeIdentifier(v)
		if err != nil {
			return nil, err
		}
		return values.EntryOf(id), nil

	case values.KindSnifferState:
		s, err := asString(v)
		if err != nil {
			return nil, err
		}
		return values.ParseSnifferState(s)
	case values.KindArmadilloState:
		s, err := asString(v)
		if err != nil {
			return nil, err
		}
		return values.ParseArmadilloState(s)

	case values.KindOptionalGlobalPos:
		return optional(v, func(v any) (values.GlobalPos, error) {
			m, err := asMap(v)
			if err != nil {
				return values.GlobalPos{}, err
			}
			dim, err := identifierField(m, "dimension")
			if err != nil {
				return values.GlobalPos{}, err
			}
			pos, err := decodeBlockPos(m["position"])
			if err != nil {
				return values.GlobalPos{}, fmt.Errorf("position: %w", err)
			}
			return values.GlobalPos{Dimension: dim, Pos: pos}, nil
		})

	case values.KindVector3f:
		m, err := asMap(v)
		if err != nil {
			return nil, err
		}
		var vec values.Vector3f
		if vec.X, err = float32Field(m, "x"); err != nil {
			return nil, err
		}
		if vec.Y, err = float32Field(m, "y"); err != nil {
			return nil, err
		}
		if vec.Z, err = float32Field(m, "z"); err != nil {
			return nil, err
		}
		return vec, nil

	case values.KindQuaternionf:
		m, err := asMap(v)
		if err != nil {
			return nil, err
		}
		var q values.Quaternionf
		if q.X, err = float32Field(m, "x"); err != nil {
			return nil, err
		}
		if q.Y, err = float32Field(m, "y"); err != nil {
			return nil, err
		}
		if q.Z, err = float32Field(m, "z"); err != nil {
			return nil, err
		}
		if q.W, err = float32Field(m, "w"); err != nil {
			return nil, err
		}
		return q, nil
	}

	return nil, &entities.UnsupportedValueKindError{Kind: kind}
}

// optional decodes nil as an absent *T.
func optional[T any](v any, decode func(any) (T, error)) (any, error) {
	if v == nil {
		return (*T)(nil), nil
	}
	out, err := decode(v)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func typeErr(expected string, v any) error {
	return fmt.Errorf("expected %s, got %T", expected, v)
}

func asString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", typeErr("string", v)
	}
	return s, nil
}

func asMap(v any) (map[string]any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, typeErr("object", v)
	}
	return m, nil
}

func toInt(v any, lo, hi int64) (int64, error) {
	var n int64
	switch t := v.(type) {
	case int:
		n = int64(t)
	case int32:
		n = int64(t)
	case int64:
		n = t
	case uint64:
		if t > math.MaxInt64 {
			return 0, fmt.Errorf("%d out of range", t)
		}
		n = int64(t)
	case float64:
		if t != math.Trunc(t) || t < -0x1p63 || t >= 0x1p63 {
			return 0, fmt.Errorf("%v is not an integer", t)
		}
		n = int64(t)
	case json.Number:
		i, err := t.Int64()
		if err != nil {
			return 0, fmt.Errorf("%s is not an integer", t)
		}
		n = i
	default:
		return 0, typeErr("integer", v)
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("%d out of range [%d, %d]", n, lo, hi)
	}
	return n, nil
}

func toFloat(v any) (float64, error) {
	switch t := v.(type) {
	case int:
		return float64(t), nil
	case int32:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case uint64:
		return float64(t), nil
	case float64:
		return t, nil
	case json.Number:
		return t.Float64()
	}
	return 0, typeErr("number", v)
}

func toFloat32(v any) (float32, error) {
	f, err := toFloat(v)
	if err != nil {
		return 0, err
	}
	if math.Abs(f) > math.MaxFloat32 {
		return 0, fmt.Errorf("%v out of float range", f)
	}
	return float32(f), nil
}

func float32Field(m map[string]any, key string) (float32, error) {
	f, err := toFloat32(m[key])
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func identifierField(m map[string]any, key string) (values.Identifier, error) {
	id, err := decodeIdentifier(m[key])
	if err != nil {
		return values.Identifier{}, fmt.Errorf("%s: %w", key, err)
	}
	return id, nil
}

func decodeIdentifier(v any) (values.Identifier, error) {
	s, err := asString(v)
	if err != nil {
		return values.Identifier{}, err
	}
	return values.ParseIdentifier(s)
}

// decodeText accepts a plain string or {"text", "style", "extra"}.
func decodeText(v any) (values.Text, error) {
	if s, ok := v.(string); ok {
		return values.PlainText(s), nil
	}
	m, err := asMap(v)
	if err != nil {
		return values.Text{}, err
	}

	var t values.Text
	if raw, ok := m["text"]; ok {
		if t.Content, err = asString(raw); err != nil {
			return values.Text{}, fmt.Errorf("text: %w", err)
		}
	}
	if raw, ok := m["style"]; ok {
		style, err := asMap(raw)
		if err != nil {
			return values.Text{}, fmt.Errorf("style: %w", err)
		}
		t.Style = make(map[string]string, len(style))
		for k, sv := range style {
			t.Style[k] = fmt.Sprint(sv)
		}
	}
	if raw, ok := m["extra"]; ok {
		list, ok := raw.([]any)
		if !ok {
			return values.Text{}, fmt.Errorf("extra: %w", typeErr("list", raw))
		}
		for i, elem := range list {
			child, err := decodeText(elem)
			if err != nil {
				return values.Text{}, fmt.Errorf("extra %d: %w", i, err)
			}
			t.Extra = append(t.Extra, child)
		}
	}
	return t, nil
}

// decodeItemStack accepts null (the empty stack) or {"item", "count"}.
func decodeItemStack(v any) (values.ItemStack, error) {
	if v == nil {
		return values.EmptyItemStack, nil
	}
	m, err := asMap(v)
	if err != nil {
		return values.ItemStack{}, err
	}
	item, err := identifierField(m, "item")
	if err != nil {
		return values.ItemStack{}, err
	}
	count := int64(1)
	if raw, ok := m["count"]; ok {
		if count, err = toInt(raw, 0, math.MaxInt32); err != nil {
			return values.ItemStack{}, fmt.Errorf("count: %w", err)
		}
	}
	return values.ItemStack{Item: item, Count: int(count)}, nil
}

func decodeBlockPos(v any) (values.BlockPos, error) {
	m, err := asMap(v)
	if err != nil {
		return values.BlockPos{}, err
	}
	var coords [3]int32
	for i, key := range []string{"x", "y", "z"} {
		n, err := toInt(m[key], math.MinInt32, math.MaxInt32)
		if err != nil {
			return values.BlockPos{}, fmt.Errorf("%s: %w", key, err)
		}
		coords[i] = int32(n)
	}
	return values.BlockPos{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}

// decodeBlockState accepts a bare block identifier or {"block", "properties"}.
func decodeBlockState(v any) (values.BlockState, error) {
	if s, ok := v.(string); ok {
		id, err := values.ParseIdentifier(s)
		return values.BlockState{Block: id}, err
	}
	m, err := asMap(v)
	if err != nil {
		return values.BlockState{}, err
	}
	block, err := identifierField(m, "block")
	if err != nil {
		return values.BlockState{}, err
	}
	state := values.BlockState{Block: block}
	if raw, ok := m["properties"]; ok {
		props, err := asMap(raw)
		if err != nil {
			return values.BlockState{}, fmt.Errorf("properties: %w", err)
		}
		state.Properties = make(map[string]string, len(props))
		for k, pv := range props {
			state.Properties[k] = fmt.Sprint(pv)
		}
	}
	return state, nil
}

func decodeParticle(v any) (values.Particle, error) {
	id, err := decodeIdentifier(v)
	if err != nil {
		return values.Particle{}, err
	}
	return values.Particle{Type: id}, nil
}

// decodeNBT normalizes numbers: integers that fit become int32, everything
// else float64. A whole float such as 1.0 stays a float in every input format.
func decodeNBT(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, elem := range t {
			out[k] = decodeNBT(elem)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, elem := range t {
			out[i] = decodeNBT(elem)
		}
		return out
	case bool, string:
		return t
	case int, int32, int64, uint64:
		if n, err := toInt(v, math.MinInt32, math.MaxInt32); err == nil {
			return int32(n)
		}
	case json.Number:
		if !strings.ContainsAny(string(t), ".eE") {
			if n, err := toInt(v, math.MinInt32, math.MaxInt32); err == nil {
				return int32(n)
			}
		}
	}
	if f, err := toFloat(v); err == nil {
		return f
	}
	return v
}
