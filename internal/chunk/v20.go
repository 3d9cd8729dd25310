package chunk

import (
	"mcproxy/internal/convert"
	"mcproxy/internal/nbt"
	"mcproxy/internal/protocol"
	"mcproxy/internal/version"
)

// v20Encoder is identical to v18Encoder's section/biome/heightmap layout
// except it omits the trailing "trust edges" boolean in the light
// subsection: 1.20 is the same as 1.18 but drops the "trust edges"
// boolean -- this resolves the ambiguous half-implemented
// original behavior noted as a REDESIGN FLAG (see DESIGN.md's Open
// Question decisions).
type v20Encoder struct{}

func (v20Encoder) Encode(c *Column, conv *convert.Tables, ver version.Protocol) []byte {
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

	// No "trust edges" bool here, unlike v18Encoder.
	writeLightBitsets(body, c.SkyLight, c.BlockLight)

	return body.Bytes()
}
