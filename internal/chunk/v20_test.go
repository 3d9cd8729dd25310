package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcproxy/internal/convert"
	"mcproxy/internal/nbt"
	"mcproxy/internal/protocol"
	"mcproxy/internal/version"
)

func TestV20EncodeSectionAndBiomeLayout(t *testing.T) {
	col := &Column{Pos: Pos{X: 0, Z: 0}, Full: true}
	col.Sections[0] = buildSection(4, []int32{0, 6}, 1)
	col.Biomes[0] = buildBiomes(2, []int32{4, 5})
	for i := 1; i < 16; i++ {
		col.Biomes[i] = buildBiomes(0, []int32{0})
	}

	conv := convert.New()
	encoded := v20Encoder{}.Encode(col, conv, version.Canonical)

	buf := protocol.NewBuffer(encoded, version.Canonical)

	_, _, n, err := nbt.Decode(buf.Bytes()[buf.Index():])
	require.NoError(t, err)
	buf.Seek(buf.Index() + n)

	sectionLen, err := buf.ReadVarInt()
	require.NoError(t, err)
	assert.Greater(t, int(sectionLen), 0)

	nonAir, err := buf.ReadU16()
	require.NoError(t, err)
	assert.Equal(t, uint16(4096), nonAir)

	bpe, err := buf.ReadU8()
	require.NoError(t, err)
	assert.Equal(t, uint8(4), bpe)

	paletteLen, err := buf.ReadVarInt()
	require.NoError(t, err)
	assert.Equal(t, int32(2), paletteLen)
	for i := int32(0); i < paletteLen; i++ {
		_, err := buf.ReadVarInt()
		require.NoError(t, err)
	}
	longCount, err := buf.ReadVarInt()
	require.NoError(t, err)
	for i := int32(0); i < longCount; i++ {
		_, err := buf.ReadU64()
		require.NoError(t, err)
	}

	biomeBPE, err := buf.ReadU8()
	require.NoError(t, err)
	assert.Equal(t, uint8(2), biomeBPE)

	biomePaletteLen, err := buf.ReadVarInt()
	require.NoError(t, err)
	assert.Equal(t, int32(2), biomePaletteLen)
}

// TestV20EncodeSingleValuedSectionNoLengthPrefix mirrors the v18 case: a
// homogeneous non-air section must write its one palette value directly,
// with no palette-length varint, and a uniform non-zero biome must keep
// its real ID rather than collapsing to 0.
func TestV20EncodeSingleValuedSectionNoLengthPrefix(t *testing.T) {
	col := &Column{Pos: Pos{X: 0, Z: 0}, Full: true}
	col.Sections[0] = &Section{
		BitsPerEntry: 0,
		Palette:      []int32{9},
		Data:         NewBitStorage(0, 4096),
		NonAirCount:  4096,
	}
	col.Biomes[0] = buildBiomes(0, []int32{3})
	for i := 1; i < 16; i++ {
		col.Biomes[i] = buildBiomes(0, []int32{0})
	}

	conv := convert.New()
	encoded := v20Encoder{}.Encode(col, conv, version.Canonical)

	buf := protocol.NewBuffer(encoded, version.Canonical)
	_, _, n, err := nbt.Decode(buf.Bytes()[buf.Index():])
	require.NoError(t, err)
	buf.Seek(buf.Index() + n)

	if _, err := buf.ReadVarInt(); err != nil { // section bytes length
		require.NoError(t, err)
	}

	nonAir, err := buf.ReadU16()
	require.NoError(t, err)
	assert.Equal(t, uint16(4096), nonAir)

	bpe, err := buf.ReadU8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0), bpe)

	single, err := buf.ReadVarInt()
	require.NoError(t, err)
	assert.Equal(t, int32(9), single)

	dataLen, err := buf.ReadVarInt()
	require.NoError(t, err)
	assert.Equal(t, int32(0), dataLen)

	biomeBPE, err := buf.ReadU8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0), biomeBPE)

	biomeSingle, err := buf.ReadVarInt()
	require.NoError(t, err)
	assert.Equal(t, int32(3), biomeSingle)
}

func TestV20EncodeAbsentSectionWritesZeros(t *testing.T) {
	col := &Column{Pos: Pos{X: 0, Z: 0}, Full: false}

	conv := convert.New()
	encoded := v20Encoder{}.Encode(col, conv, version.Canonical)

	buf := protocol.NewBuffer(encoded, version.Canonical)
	_, _, n, err := nbt.Decode(buf.Bytes()[buf.Index():])
	require.NoError(t, err)
	buf.Seek(buf.Index() + n)

	sectionLen, err := buf.ReadVarInt()
	require.NoError(t, err)

	sectionBytes, err := buf.ReadBytes(int(sectionLen))
	require.NoError(t, err)
	// Every one of the 16 absent sections writes a fixed 8-byte all-zero
	// skeleton (u16 nonAir, u8 bpe, 2 empty varints, u8 biome bpe, 2 empty
	// biome varints) when Full is false.
	assert.Equal(t, 16*8, len(sectionBytes))
	for _, b := range sectionBytes {
		assert.Equal(t, byte(0), b)
	}
}
