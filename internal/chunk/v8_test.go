package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcproxy/internal/convert"
	"mcproxy/internal/protocol"
	"mcproxy/internal/version"
)

func TestV8EncodeBitmapAndLength(t *testing.T) {
	col := &Column{Pos: Pos{X: 1, Z: 1}, Full: true}
	col.Sections[0] = buildSection(4, []int32{0, 5}, 1)
	col.Sections[2] = buildSection(4, []int32{0, 5}, 1)

	conv := convert.New()
	encoded := v8Encoder{}.Encode(col, conv, version.Canonical)

	buf := protocol.NewBuffer(encoded, version.Canonical)
	bitmap, err := buf.ReadU16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0b101), bitmap)

	dataLen, err := buf.ReadVarInt()
	require.NoError(t, err)
	// 2 sections * 16*16*16 * 2 bytes/block + 2 sections of block+sky light
	// nibbles (each 16*16*16/2 bytes) + 256-byte biome array (Full).
	wantLen := 2*16*16*16*2 + 2*16*16*16/2*2 + 256
	assert.Equal(t, int32(wantLen), dataLen)

	blockData, err := buf.ReadBytes(2 * 16 * 16 * 16 * 2)
	require.NoError(t, err)
	// Every populated voxel in both sections holds palette index 1 (block
	// ID 5), little-endian u16: low byte 5, high byte 0.
	assert.Equal(t, byte(5), blockData[0])
	assert.Equal(t, byte(0), blockData[1])

	blockLight, err := buf.ReadBytes(2 * 16 * 16 * 16 / 2)
	require.NoError(t, err)
	for _, b := range blockLight {
		assert.Equal(t, byte(0xFF), b)
	}

	skyLight, err := buf.ReadBytes(2 * 16 * 16 * 16 / 2)
	require.NoError(t, err)
	for _, b := range skyLight {
		assert.Equal(t, byte(0xFF), b)
	}

	biomes, err := buf.ReadBytes(256)
	require.NoError(t, err)
	for _, b := range biomes {
		assert.Equal(t, byte(127), b)
	}

	assert.Equal(t, 0, buf.Remaining())
}

func TestV8EncodeEmptyColumnWritesSentinelSection(t *testing.T) {
	col := &Column{Pos: Pos{X: 0, Z: 0}, Full: false}

	conv := convert.New()
	encoded := v8Encoder{}.Encode(col, conv, version.Canonical)

	buf := protocol.NewBuffer(encoded, version.Canonical)
	bitmap, err := buf.ReadU16()
	require.NoError(t, err)
	assert.Equal(t, uint16(1), bitmap)

	dataLen, err := buf.ReadVarInt()
	require.NoError(t, err)
	assert.Equal(t, int32(16*16*16*2+16*16*16/2*2), dataLen)
}

func TestV8EncodeRemapsBlockIDsViaConvert(t *testing.T) {
	col := &Column{Pos: Pos{X: 0, Z: 0}}
	col.Sections[0] = buildSection(4, []int32{0, 9}, 1)

	conv := convert.New()
	conv.Set(convert.FamilyBlock, version.V1_8, &convert.VersionTable{
		ToOld: []int32{0, 0, 0, 0, 0, 0, 0, 0, 0, 42},
		ToNew: []int32{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	})

	encoded := v8Encoder{}.Encode(col, conv, version.V1_8)
	buf := protocol.NewBuffer(encoded, version.V1_8)
	_, err := buf.ReadU16()
	require.NoError(t, err)
	_, err = buf.ReadVarInt()
	require.NoError(t, err)

	blockData, err := buf.ReadBytes(16 * 16 * 16 * 2)
	require.NoError(t, err)
	assert.Equal(t, byte(42), blockData[0])
	assert.Equal(t, byte(0), blockData[1])
}
