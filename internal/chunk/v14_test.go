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

func TestV14EncodeHeightmapThenBiomesThenSections(t *testing.T) {
	col := &Column{Pos: Pos{X: 0, Z: 0}, Full: true}
	col.Sections[0] = buildSection(4, []int32{0, 11}, 1)

	conv := convert.New()
	encoded := v14Encoder{}.Encode(col, conv, version.V1_15)

	buf := protocol.NewBuffer(encoded, version.V1_15)

	bitmap, err := buf.ReadU16()
	require.NoError(t, err)
	assert.Equal(t, uint16(1), bitmap)

	// Heightmap NBT compound: decode it back to confirm it parses and
	// carries the MOTION_BLOCKING long array.
	_, tag, n, err := nbt.Decode(buf.Bytes()[buf.Index():])
	require.NoError(t, err)
	_, hasKey := tag.Compound["MOTION_BLOCKING"]
	assert.True(t, hasKey)
	buf.Seek(buf.Index() + n)

	// 1.15+ writes 256 raw ints, no length prefix.
	for i := 0; i < 256; i++ {
		_, err := buf.ReadI32()
		require.NoError(t, err)
	}

	sectionLen, err := buf.ReadVarInt()
	require.NoError(t, err)
	assert.Greater(t, int(sectionLen), 0)

	nonAir, err := buf.ReadU16()
	require.NoError(t, err)
	assert.Equal(t, uint16(4096), nonAir)

	bpe, err := buf.ReadU8()
	require.NoError(t, err)
	assert.Equal(t, uint8(4), bpe)
}

func TestV14EncodePre115UsesLengthPrefixedBiomes(t *testing.T) {
	col := &Column{Pos: Pos{X: 0, Z: 0}, Full: true}

	conv := convert.New()
	encoded := v14Encoder{}.Encode(col, conv, version.V1_14_4)

	buf := protocol.NewBuffer(encoded, version.V1_14_4)
	_, err := buf.ReadU16()
	require.NoError(t, err)

	_, _, n, err := nbt.Decode(buf.Bytes()[buf.Index():])
	require.NoError(t, err)
	buf.Seek(buf.Index() + n)

	biomeCount, err := buf.ReadVarInt()
	require.NoError(t, err)
	assert.Equal(t, int32(1024), biomeCount)
}
