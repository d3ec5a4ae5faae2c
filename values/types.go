package values

import (
	"fmt"
	"sort"
	"strings"
)

// Text is a rich chat component. Only its plain rendering reaches the output.
type Text struct {
	Content string
	// Style carries formatting keys (color, bold, ...) that the codec discards.
	Style map[string]string
	Extra []Text
}

// PlainText returns a Text without formatting.
func PlainText(s string) Text {
	return Text{Content: s}
}

// PlainString renders the component and its siblings depth-first, dropping style.
func (t Text) PlainString() string {
	var b strings.Builder
	t.render(&b)
	return b.String()
}

func (t Text) render(b *strings.Builder) {
	b.WriteString(t.Content)
	for _, extra := range t.Extra {
		extra.render(b)
	}
}

// ItemStack is an item and a count.
type ItemStack struct {
	Item  Identifier
	Count int
}

// EmptyItemStack is the stack every tracked item slot starts with.
var EmptyItemStack = ItemStack{Item: Identifier{namespace: DefaultNamespace, path: "air"}, Count: 0}

// String returns the debug form "<count> <item>".
func (s ItemStack) String() string {
	return fmt.Sprintf("%d %s", s.Count, s.Item.String())
}

// Rotation holds Euler angles in degrees.
type Rotation struct {
	Pitch float32
	Yaw   float32
	Roll  float32
}

// BlockPos is an integer block coordinate.
type BlockPos struct {
	X int32
	Y int32
	Z int32
}

// GlobalPos is a block position inside a named dimension.
type GlobalPos struct {
	Dimension Identifier
	Pos       BlockPos
}

// BlockState is a block with its property assignments.
type BlockState struct {
	Block      Identifier
	Properties map[string]string
}

// String returns the debug form "Block{ns:path}[k=v,...]" with properties sorted by key.
func (s BlockState) String() string {
	var b strings.Builder
	b.WriteString("Block{")
	b.WriteString(s.Block.String())
	b.WriteString("}")
	if len(s.Properties) == 0 {
		return b.String()
	}
	keys := make([]string, 0, len(s.Properties))
	for k := range s.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	b.WriteString("[")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(s.Properties[k])
	}
	b.WriteString("]")
	return b.String()
}

// Particle is a particle effect; only its type is replicated in the output.
type Particle struct {
	Type Identifier
}

// VillagerData describes a villager's biome type, profession and level.
type VillagerData struct {
	Type       Identifier
	Profession Identifier
	Level      int32
}

// RegistryEntry is a reference into a dynamic registry. Key is nil for
// direct (unregistered) entries.
type RegistryEntry struct {
	Key *Identifier
}

// EntryOf returns a keyed registry entry.
func EntryOf(id Identifier) RegistryEntry {
	return RegistryEntry{Key: &id}
}

// IDString returns the full key, or "[unregistered]" for direct entries.
func (e RegistryEntry) IDString() string {
	if e.Key == nil {
		return "[unregistered]"
	}
	return e.Key.String()
}

// Vector3f is a three component float vector.
type Vector3f struct {
	X float32
	Y float32
	Z float32
}

// Quaternionf is a float quaternion.
type Quaternionf struct {
	X float32
	Y float32
	Z float32
	W float32
}

// IdentityQuaternion is the no-rotation quaternion.
var IdentityQuaternion = Quaternionf{W: 1}

// Box is an axis-aligned bounding box given by its extents.
type Box struct {
	SizeX float64
	SizeY float64
	SizeZ float64
}

// Valid reports whether every extent is strictly positive.
func (b Box) Valid() bool {
	return b.SizeX > 0 && b.SizeY > 0 && b.SizeZ > 0
}
