package chunk

import (
	"mcproxy/internal/convert"
	"mcproxy/internal/nbt"
	"mcproxy/internal/protocol"
	"mcproxy/internal/version"
)

// v14Encoder implements the 1.14-1.17 chunk format: a u16 section bitmap,
// a heightmap NBT compound, an optional biome array (256 ints in 1.15+,
// else a length-prefixed 1024-int array in 1.14), a varint section-data
// length, then per-section a u16 non-air count + palette + packed longs.
// ForEra routes Era1_14 through Era1_17 here, so this encoder is shared
// across 1.14-1.17; from 1.17 on, light travels in the same packet instead
// of a separate Update Light packet. Section data is repacked at the
// written bits-per-entry: spanning (packOldStyle) before 1.16, no-split
// BitStorage packing from 1.16 on.
type v14Encoder struct{}

func (v14Encoder) Encode(c *Column, conv *convert.Tables, ver version.Protocol) []byte {
	body := protocol.NewWriteBuffer(ver)
	body.WriteU16(c.bitMap())

	heightmapLongs := buildMotionBlockingHeightmap(c)
	heightmap := nbt.Compound(nbt.Entry("MOTION_BLOCKING", nbt.LongArray(heightmapLongs)))
	body.WriteBytes(nbt.Encode("", heightmap))

	if c.Full {
		if ver >= version.V1_15 {
			for _, id := range columnBiomesOrDefault(c, 256) {
				body.WriteI32(id)
			}
		} else {
			biomes := columnBiomesOrDefault(c, 1024)
			body.WriteVarInt(int32(len(biomes)))
			for _, id := range biomes {
				body.WriteI32(id)
			}
		}
	}

	sectionsBuf := protocol.NewWriteBuffer(ver)
	for _, s := range c.Sections {
		if s == nil {
			continue
		}
		writeSection1_14(sectionsBuf, s, conv, ver)
	}
	sectionBytes := sectionsBuf.Bytes()
	body.WriteVarInt(int32(len(sectionBytes)))
	body.WriteBytes(sectionBytes)
	body.WriteVarInt(0) // no block entities

	if ver >= version.V1_17 {
		writeLightBitsets(body, c.SkyLight, c.BlockLight)
	}

	return body.Bytes()
}

func columnBiomesOrDefault(c *Column, n int) []int32 {
	if len(c.ColumnBiomes) == 0 {
		return make([]int32, n)
	}
	out := make([]int32, len(c.ColumnBiomes))
	for i, b := range c.ColumnBiomes {
		out[i] = int32(b)
	}
	return out
}

func writeSection1_14(buf *protocol.Buffer, s *Section, conv *convert.Tables, ver version.Protocol) {
	buf.WriteU16(uint16(s.NonAirCount))

	oldPalette := make([]int32, len(s.Palette))
	for i, canon := range s.Palette {
		oldPalette[i] = conv.ToOld(convert.FamilyBlock, ver, canon)
	}
	bpe := s.BitsPerEntry
	if bpe < 4 {
		bpe = 4
	}
	buf.WriteU8(uint8(bpe))
	if bpe <= 8 {
		buf.WriteVarInt(int32(len(oldPalette)))
		for _, id := range oldPalette {
			buf.WriteVarInt(id)
		}
	}
	values := make([]int32, 4096)
	for i := range values {
		values[i] = int32(s.Data.Get(i))
	}
	var longs []uint64
	if ver < version.V1_16 {
		longs = packOldStyle(bpe, values)
	} else {
		repacked := NewBitStorage(bpe, 4096)
		for i, v := range values {
			repacked.Set(i, int64(v))
		}
		longs = repacked.Longs()
	}
	buf.WriteVarInt(int32(len(longs)))
	for _, l := range longs {
		buf.WriteU64(l)
	}
}
