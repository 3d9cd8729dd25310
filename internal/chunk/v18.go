package chunk

import (
	"mcproxy/internal/convert"
	"mcproxy/internal/nbt"
	"mcproxy/internal/protocol"
	"mcproxy/internal/version"
)

// v18Encoder implements the 1.18/1.19 chunk format: no bitmap, every one
// of the 16 sections is always emitted (empty sections use the fixed
// "0 non-air, bpe 0, single-value palette, zero data longs" shape), each
// section additionally carries a paletted biome container, and light data
// (four bitsets + nibble arrays) is appended at the end with a leading
// "is non-edge chunk" bool. Grounded line-for-line on
// bb_proxy/src/packet/v1_18.rs's chunk function.
type v18Encoder struct{}

func (v18Encoder) Encode(c *Column, conv *convert.Tables, ver version.Protocol) []byte {
	chunkBuf := protocol.NewWriteBuffer(ver)
	for i := 0; i < 16; i++ {
		s := c.Sections[i]
		if s == nil {
			chunkBuf.WriteU16(0)
			chunkBuf.WriteU8(0)
			chunkBuf.WriteVarInt(0)
			chunkBuf.WriteVarInt(0)
			chunkBuf.WriteU8(0)
			chunkBuf.WriteVarInt(0)
			chunkBuf.WriteVarInt(0)
			continue
		}
		chunkBuf.WriteU16(uint16(s.NonAirCount))

		oldPalette := make([]int32, len(s.Palette))
		for j, canon := range s.Palette {
			oldPalette[j] = conv.ToOld(convert.FamilyBlock, ver, canon)
		}
		chunkBuf.WriteU8(uint8(s.BitsPerEntry))
		switch {
		case s.BitsPerEntry == 0:
			// Single-valued section: the one palette entry goes straight on
			// the wire, no length prefix.
			var single int32
			if len(oldPalette) > 0 {
				single = oldPalette[0]
			}
			chunkBuf.WriteVarInt(single)
		case s.BitsPerEntry <= 8:
			chunkBuf.WriteVarInt(int32(len(oldPalette)))
			for _, id := range oldPalette {
				chunkBuf.WriteVarInt(id)
			}
		}
		longs := s.Data.Longs()
		chunkBuf.WriteVarInt(int32(len(longs)))
		for _, l := range longs {
			chunkBuf.WriteU64(l)
		}

		if c.Full {
			b := c.Biomes[i]
			switch {
			case b == nil:
				chunkBuf.WriteU8(0)
				chunkBuf.WriteVarInt(0)
				chunkBuf.WriteVarInt(0)
			case b.BitsPerEntry == 0:
				var single int32
				if len(b.Palette) > 0 {
					single = b.Palette[0]
				}
				chunkBuf.WriteU8(0)
				chunkBuf.WriteVarInt(single)
				chunkBuf.WriteVarInt(0)
			default:
				chunkBuf.WriteU8(uint8(b.BitsPerEntry))
				chunkBuf.WriteVarInt(int32(len(b.Palette)))
				for _, id := range b.Palette {
					chunkBuf.WriteVarInt(id)
				}
				bl := b.Data.Longs()
				chunkBuf.WriteVarInt(int32(len(bl)))
				for _, l := range bl {
					chunkBuf.WriteU64(l)
				}
			}
		}
	}

	heightmapLongs := buildMotionBlockingHeightmap(c)
	heightmap := nbt.Compound(nbt.Entry("MOTION_BLOCKING", nbt.LongArray(heightmapLongs)))

	body := protocol.NewWriteBuffer(ver)
	body.WriteBytes(nbt.Encode("", heightmap))

	chunkData := chunkBuf.Bytes()
	body.WriteVarInt(int32(len(chunkData)))
	body.WriteBytes(chunkData)
	body.WriteVarInt(0) // no block entities

	body.WriteBool(true) // non-edge chunk, the "trust edges" flag
	writeLightBitsets(body, c.SkyLight, c.BlockLight)

	return body.Bytes()
}
