package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText_PlainString(t *testing.T) {
	text := Text{
		Content: "Hello",
		Style:   map[string]string{"color": "red"},
		Extra: []Text{
			{Content: ", "},
			{Content: "world", Extra: []Text{{Content: "!"}}},
		},
	}
	assert.Equal(t, "Hello, world!", text.PlainString())
	assert.Equal(t, "", Text{}.PlainString())
}

func TestBlockState_String(t *testing.T) {
	plain := BlockState{Block: MustParseIdentifier("minecraft:air")}
	assert.Equal(t, "Block{minecraft:air}", plain.String())

	withProps := BlockState{
		Block:      MustParseIdentifier("minecraft:oak_stairs"),
		Properties: map[string]string{"half": "bottom", "facing": "north"},
	}
	assert.Equal(t, "Block{minecraft:oak_stairs}[facing=north,half=bottom]", withProps.String())
}

func TestItemStack_String(t *testing.T) {
	assert.Equal(t, "0 minecraft:air", EmptyItemStack.String())
}

func TestRegistryEntry_IDString(t *testing.T) {
	assert.Equal(t, "minecraft:tabby", EntryOf(MustParseIdentifier("tabby")).IDString())
	assert.Equal(t, "[unregistered]", RegistryEntry{}.IDString())
}

func TestNBTCompound_String(t *testing.T) {
	c := NBTCompound{
		"id":     "minecraft:stone",
		"Count":  int8(1),
		"damage": int16(3),
		"big":    int64(7),
		"ratio":  float32(1),
		"scale":  0.5,
		"flag":   true,
		"nested": NBTCompound{"a b": int32(2)},
		"list":   []any{int32(1), int32(2)},
	}
	assert.Equal(t,
		`{Count:1b,big:7L,damage:3s,flag:1b,id:"minecraft:stone",list:[1,2],nested:{"a b":2},ratio:1.0f,scale:0.5d}`,
		c.String())
	assert.Equal(t, "{}", NBTCompound{}.String())
}

func TestEnums(t *testing.T) {
	assert.Equal(t, "north", North.String())
	assert.Equal(t, "fall_flying", PoseFallFlying.String())
	assert.Equal(t, "feeling_happy", SnifferFeelingHappy.String())
	assert.Equal(t, "unrolling", ArmadilloUnrolling.String())
	assert.Equal(t, "unknown(42)", Pose(42).String())

	d, err := ParseDirection("east")
	assert.NoError(t, err)
	assert.Equal(t, East, d)

	_, err = ParsePose("flying")
	assert.Error(t, err)
}

func TestBox_Valid(t *testing.T) {
	assert.True(t, Box{0.6, 1.8, 0.6}.Valid())
	assert.False(t, Box{0, 1, 1}.Valid())
}
