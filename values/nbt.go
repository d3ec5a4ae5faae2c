package values

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// NBTCompound is structured compound data. Values may be int8, int16, int32,
// int64, float32, float64, bool, string, NBTCompound, or []any of those.
type NBTCompound map[string]any

// String renders the compound as SNBT with keys in sorted order.
func (c NBTCompound) String() string {
	var b strings.Builder
	writeSNBT(&b, c)
	return b.String()
}

func writeSNBT(b *strings.Builder, v any) {
	switch t := v.(type) {
	case NBTCompound:
		writeCompound(b, t)
	case map[string]any:
		writeCompound(b, NBTCompound(t))
	case []any:
		b.WriteString("[")
		for i, elem := range t {
			if i > 0 {
				b.WriteString(",")
			}
			writeSNBT(b, elem)
		}
		b.WriteString("]")
	case bool:
		if t {
			b.WriteString("1b")
		} else {
			b.WriteString("0b")
		}
	case int8:
		b.WriteString(strconv.FormatInt(int64(t), 10) + "b")
	case int16:
		b.WriteString(strconv.FormatInt(int64(t), 10) + "s")
	case int32:
		b.WriteString(strconv.FormatInt(int64(t), 10))
	case int:
		b.WriteString(strconv.Itoa(t))
	case int64:
		b.WriteString(strconv.FormatInt(t, 10) + "L")
	case float32:
		b.WriteString(formatSNBTFloat(float64(t), 32) + "f")
	case float64:
		b.WriteString(formatSNBTFloat(t, 64) + "d")
	case string:
		b.WriteString(quoteSNBT(t))
	default:
		b.WriteString(quoteSNBT(fmt.Sprint(t)))
	}
}

func writeCompound(b *strings.Builder, c NBTCompound) {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b.WriteString("{")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(",")
		}
		if isBareSNBTKey(k) {
			b.WriteString(k)
		} else {
			b.WriteString(quoteSNBT(k))
		}
		b.WriteString(":")
		writeSNBT(b, c[k])
	}
	b.WriteString("}")
}

func formatSNBTFloat(f float64, bits int) string {
	s := strconv.FormatFloat(f, 'g', -1, bits)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

func quoteSNBT(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

func isBareSNBTKey(k string) bool {
	if k == "" {
		return false
	}
	for _, r := range k {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_', r == '-', r == '.', r == '+':
		default:
			return false
		}
	}
	return true
}
