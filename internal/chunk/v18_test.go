package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcproxy/internal/convert"
	"mcproxy/internal/version"
)

func buildSection(bpe int, palette []int32, fill int64) *Section {
	data := NewBitStorage(bpe, 4096)
	for i := 0; i < 4096; i++ {
		data.Set(i, fill)
	}
	nonAir := 0
	if fill != 0 || (len(palette) > 0 && palette[0] != 0) {
		nonAir = 4096
	}
	return &Section{BitsPerEntry: bpe, Palette: palette, Data: data, NonAirCount: nonAir}
}

func buildBiomes(bpe int, palette []int32) *Biomes {
	data := NewBitStorage(bpe, 64)
	for i := 0; i < 64; i++ {
		data.Set(i, 0)
	}
	return &Biomes{BitsPerEntry: bpe, Palette: palette, Data: data}
}

func TestV18EncodeDecodeRoundTrip(t *testing.T) {
	col := &Column{Pos: Pos{X: 3, Z: -2}, Full: true}
	col.Sections[0] = buildSection(4, []int32{0, 10, 20}, 1)
	col.Sections[5] = buildSection(8, []int32{0, 77}, 1)
	for i := range col.Biomes {
		col.Biomes[i] = buildBiomes(2, []int32{1, 2, 3})
	}
	col.SkyLight[0] = make([]byte, 2048)
	col.BlockLight[0] = make([]byte, 2048)

	conv := convert.New()
	encoded := v18Encoder{}.Encode(col, conv, version.Canonical)

	got, err := DecodeCanonical(encoded)
	require.NoError(t, err)

	require.NotNil(t, got.Sections[0])
	assert.Equal(t, 4, got.Sections[0].BitsPerEntry)
	assert.Equal(t, []int32{0, 10, 20}, got.Sections[0].Palette)
	assert.Equal(t, 4096, got.Sections[0].NonAirCount)

	require.NotNil(t, got.Sections[5])
	assert.Equal(t, 8, got.Sections[5].BitsPerEntry)

	assert.Nil(t, got.Sections[1])

	require.NotNil(t, got.Biomes[0])
	assert.Equal(t, []int32{1, 2, 3}, got.Biomes[0].Palette)

	require.Len(t, got.SkyLight, 16)
	assert.Equal(t, col.SkyLight[0], got.SkyLight[0])
	assert.Equal(t, col.BlockLight[0], got.BlockLight[0])
}

// TestV18SingleValuedSectionHasNoLengthPrefix proves a homogeneous,
// non-air section (bpe=0) is written the way vanilla expects: the single
// palette value goes straight on the wire, not behind a length varint.
func TestV18SingleValuedSectionHasNoLengthPrefix(t *testing.T) {
	col := &Column{Pos: Pos{X: 1, Z: 1}, Full: true}
	col.Sections[2] = &Section{
		BitsPerEntry: 0,
		Palette:      []int32{5}, // stone, not air
		Data:         NewBitStorage(0, 4096),
		NonAirCount:  4096,
	}
	col.Biomes[2] = buildBiomes(0, []int32{7}) // non-zero biome, not "the default"
	for i := range col.Biomes {
		if i != 2 {
			col.Biomes[i] = buildBiomes(0, []int32{0})
		}
	}

	conv := convert.New()
	encoded := v18Encoder{}.Encode(col, conv, version.Canonical)

	got, err := DecodeCanonical(encoded)
	require.NoError(t, err)

	require.NotNil(t, got.Sections[2])
	assert.Equal(t, 0, got.Sections[2].BitsPerEntry)
	assert.Equal(t, []int32{5}, got.Sections[2].Palette)

	require.NotNil(t, got.Biomes[2])
	assert.Equal(t, 0, got.Biomes[2].BitsPerEntry)
	assert.Equal(t, []int32{7}, got.Biomes[2].Palette)
}

func TestV18EmptyColumnRoundTrip(t *testing.T) {
	col := &Column{Pos: Pos{X: 0, Z: 0}, Full: true}
	for i := range col.Biomes {
		col.Biomes[i] = buildBiomes(0, nil)
	}

	conv := convert.New()
	encoded := v18Encoder{}.Encode(col, conv, version.Canonical)

	got, err := DecodeCanonical(encoded)
	require.NoError(t, err)
	for i := 0; i < 16; i++ {
		assert.Nil(t, got.Sections[i])
	}
}
